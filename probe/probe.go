// Package probe issues single HTTP requests and classifies what came back.
//
// A probe never returns an error to its caller. Connection failures, timeouts and unreadable
// bodies are all reported as a TransportError outcome, so that polling logic can treat "the
// service is not listening yet" the same way as "the service answered with the wrong status".
package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Request describes one HTTP call to make.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	// ExpectedStatus, if defined, is the only status that counts as a success. If it is not
	// defined, any 2xx status is a success.
	ExpectedStatus ldvalue.OptionalInt
}

// Prober is anything that can perform a single probe.
type Prober interface {
	Probe(ctx context.Context, req Request) Outcome
}

// HTTPProber probes with a shared *http.Client. The client is never modified.
type HTTPProber struct {
	Client *http.Client

	// Timeout bounds the whole exchange, including reading the body. Zero means no limit
	// other than the one configured on Client.
	Timeout time.Duration
}

// NewHTTPProber creates an HTTPProber. A nil client means http.DefaultClient.
func NewHTTPProber(client *http.Client, timeout time.Duration) HTTPProber {
	if client == nil {
		client = http.DefaultClient
	}
	return HTTPProber{Client: client, Timeout: timeout}
}

// Probe makes exactly one attempt.
func (p HTTPProber) Probe(ctx context.Context, req Request) Outcome {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return TransportFailure(fmt.Errorf("invalid request: %w", err))
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return TransportFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportFailure(fmt.Errorf("error reading response body (status %d): %w", resp.StatusCode, err))
	}
	return Classify(resp.StatusCode, data, req.ExpectedStatus)
}

// Classify turns a received status and body into a Success or WrongStatus outcome.
func Classify(status int, body []byte, expected ldvalue.OptionalInt) Outcome {
	ok := status >= 200 && status < 300
	if want, defined := expected.Get(); defined {
		ok = status == want
	}
	if ok {
		return Outcome{Kind: Success, Status: status, Body: body}
	}
	return Outcome{Kind: WrongStatus, Status: status, Body: body}
}
