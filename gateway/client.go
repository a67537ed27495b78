// Package gateway is the test suite's client for the API gateway.
//
// It has two kinds of methods. Do returns errors and never fails a test; it is meant for
// cleanup code and load generation. Request, JSON and WaitFor take a require.TestingT and fail
// the calling test with a descriptive message, so that test bodies read as a plain sequence of
// calls.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/config"
	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/probe"
	"github.com/selimhorri/ecommerce-contract-tests/readiness"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// DefaultExpectedStatus is what Request, JSON and WaitFor expect unless told otherwise.
const DefaultExpectedStatus = http.StatusOK

// Client makes requests relative to the gateway's base URL. Its state is never modified after
// creation, so one Client can be shared by every test in a session.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	prober           probe.HTTPProber
	readinessTimeout time.Duration
	pollInterval     time.Duration
	clock            readiness.Clock
	logger           framework.Logger
}

// Response is a fully read HTTP response.
type Response struct {
	Method string
	URL    string
	Status int
	Header http.Header
	Body   []byte
}

// NewClient creates a Client for cfg.GatewayBaseURL. A nil httpClient means a new
// *http.Client; either way the client's own timeout is left alone and cfg.RequestTimeout is
// applied per request.
func NewClient(cfg config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:          cfg.GatewayBaseURL,
		httpClient:       httpClient,
		prober:           probe.NewHTTPProber(httpClient, cfg.RequestTimeout),
		readinessTimeout: cfg.ReadinessTimeout,
		pollInterval:     cfg.PollInterval,
		clock:            readiness.RealClock(),
		logger:           framework.NullLogger(),
	}
}

// WithLogger returns a copy of the client that logs every request to logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	c1 := *c
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1.logger = logger
	return &c1
}

// WithClock returns a copy of the client whose WaitFor uses clock.
func (c *Client) WithClock(clock readiness.Clock) *Client {
	c1 := *c
	c1.clock = clock
	return &c1
}

// CloseIdleConnections releases the idle connections of the shared HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// URL joins the base URL and path with exactly one slash between them.
func (c *Client) URL(path string) string {
	return BuildURL(c.baseURL, path)
}

// BuildURL joins base and path with exactly one slash between them.
func BuildURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Do makes one request. It returns a *TransportError if there was no response, or a
// *StatusMismatchError (along with the response) if the status was not the expected one.
func (c *Client) Do(ctx context.Context, method, path string, opts ...Option) (*Response, error) {
	o, err := c.resolve(opts)
	if err != nil {
		return nil, err
	}
	req := c.probeRequest(method, path, o)

	prober := c.prober
	if o.timeout > 0 {
		prober.Timeout = o.timeout
	}
	c.logger.Printf("%s %s", req.Method, req.URL)
	outcome := prober.Probe(ctx, req)
	if outcome.Kind == probe.TransportError {
		c.logger.Printf("%s %s failed: %s", req.Method, req.URL, outcome.Err)
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: outcome.Err}
	}
	c.logger.Printf("%s %s -> %d", req.Method, req.URL, outcome.Status)
	resp := &Response{Method: req.Method, URL: req.URL, Status: outcome.Status, Body: outcome.Body}
	if outcome.Kind == probe.WrongStatus {
		expected, _ := req.ExpectedStatus.Get()
		return resp, &StatusMismatchError{
			Method:   req.Method,
			URL:      req.URL,
			Status:   outcome.Status,
			Expected: expected,
			Body:     outcome.Body,
		}
	}
	return resp, nil
}

// Request makes one request and fails the test if it did not get the expected status, which
// is 200 unless specified with WithExpectedStatus or WithAnyStatus.
func (c *Client) Request(t require.TestingT, method, path string, opts ...Option) *Response {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	resp, err := c.Do(context.Background(), method, path, opts...)
	if err != nil {
		fail(t, err)
	}
	return resp
}

// JSON is like Request, but also decodes the body. If the body is not valid JSON, the test
// fails with a *MalformedBodyError rather than a status error.
func (c *Client) JSON(t require.TestingT, method, path string, opts ...Option) ldvalue.Value {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	opts = append([]Option{WithHeader("Accept", "application/json")}, opts...)
	resp := c.Request(t, method, path, opts...)
	v, err := resp.JSON()
	if err != nil {
		fail(t, err)
	}
	return v
}

// WaitFor polls until the route responds with the expected status, or fails the test when the
// readiness timeout is reached.
func (c *Client) WaitFor(t require.TestingT, method, path string, opts ...Option) *Response {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	target, err := c.Target(method, path, opts...)
	if err != nil {
		fail(t, err)
	}
	poller := readiness.Poller{Prober: c.prober, Clock: c.clock, Logger: c.logger}
	result := poller.Poll(context.Background(), target)
	if err := result.Err(target); err != nil {
		fail(t, err)
	}
	return &Response{Method: target.Method, URL: target.URL, Status: result.Last.Status, Body: result.Last.Body}
}

// Target builds the readiness target that WaitFor would poll.
func (c *Client) Target(method, path string, opts ...Option) (readiness.Target, error) {
	o, err := c.resolve(opts)
	if err != nil {
		return readiness.Target{}, err
	}
	req := c.probeRequest(method, path, o)
	timeout, interval := o.timeout, o.interval
	if timeout <= 0 {
		timeout = c.readinessTimeout
	}
	if interval <= 0 {
		interval = c.pollInterval
	}
	return readiness.Target{
		Method:         req.Method,
		URL:            req.URL,
		Header:         req.Header,
		Body:           req.Body,
		ExpectedStatus: req.ExpectedStatus,
		Interval:       interval,
		Timeout:        timeout,
		Condition:      o.condition,
	}, nil
}

func (c *Client) probeRequest(method, path string, o requestOptions) probe.Request {
	return probe.Request{
		Method:         strings.ToUpper(method),
		URL:            c.URL(path),
		Header:         o.header,
		Body:           o.body,
		ExpectedStatus: o.expectedStatus,
	}
}

// JSON decodes the response body.
func (r *Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), &MalformedBodyError{Method: r.Method, URL: r.URL, Status: r.Status, Body: r.Body, Err: err}
	}
	return v, nil
}

func fail(t require.TestingT, err error) {
	t.Errorf("%s", err)
	t.FailNow()
}
