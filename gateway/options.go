package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/probe"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Option customizes a single call.
type Option func(*requestOptions) error

type requestOptions struct {
	expectedStatus ldvalue.OptionalInt
	header         http.Header
	body           []byte
	timeout        time.Duration
	interval       time.Duration
	condition      func(probe.Outcome) bool
}

func (c *Client) resolve(opts []Option) (requestOptions, error) {
	o := requestOptions{expectedStatus: ldvalue.NewOptionalInt(DefaultExpectedStatus)}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

// WithExpectedStatus sets the status that counts as success.
func WithExpectedStatus(status int) Option {
	return func(o *requestOptions) error {
		o.expectedStatus = ldvalue.NewOptionalInt(status)
		return nil
	}
}

// WithAnyStatus accepts any 2xx status.
func WithAnyStatus() Option {
	return func(o *requestOptions) error {
		o.expectedStatus = ldvalue.OptionalInt{}
		return nil
	}
}

// WithJSONBody sends v encoded as JSON.
func WithJSONBody(v interface{}) Option {
	return func(o *requestOptions) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cannot encode request body: %w", err)
		}
		o.body = data
		return nil
	}
}

// WithHeader adds a request header.
func WithHeader(name, value string) Option {
	return func(o *requestOptions) error {
		if o.header == nil {
			o.header = make(http.Header)
		}
		o.header.Add(name, value)
		return nil
	}
}

// WithTimeout overrides the per-request timeout for Do/Request/JSON, or the overall deadline
// for WaitFor.
func WithTimeout(d time.Duration) Option {
	return func(o *requestOptions) error {
		o.timeout = d
		return nil
	}
}

// WithInterval overrides the delay between WaitFor attempts.
func WithInterval(d time.Duration) Option {
	return func(o *requestOptions) error {
		o.interval = d
		return nil
	}
}

// WithCondition makes WaitFor also require that a successful response satisfies f.
func WithCondition(f func(probe.Outcome) bool) Option {
	return func(o *requestOptions) error {
		o.condition = f
		return nil
	}
}
