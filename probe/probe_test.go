package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSuccess(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(200, nil, []byte(`{"status":"UP"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		o := NewHTTPProber(nil, time.Second).Probe(context.Background(), Request{Method: "GET", URL: server.URL})
		assert.Equal(t, Success, o.Kind)
		assert.Equal(t, 200, o.Status)
		assert.Equal(t, `{"status":"UP"}`, string(o.Body))
		assert.NoError(t, o.Err)
	})
}

func TestProbeWrongStatus(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(503, nil, []byte("unavailable"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		o := NewHTTPProber(nil, time.Second).Probe(context.Background(), Request{Method: "GET", URL: server.URL})
		assert.Equal(t, WrongStatus, o.Kind)
		assert.Equal(t, 503, o.Status)
		assert.True(t, o.GotResponse())
		assert.Equal(t, "status 503, body: unavailable", o.String())
	})
}

func TestProbeExpectedStatus(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(201), func(server *httptest.Server) {
		p := NewHTTPProber(nil, time.Second)

		o := p.Probe(context.Background(), Request{Method: "POST", URL: server.URL, ExpectedStatus: ldvalue.NewOptionalInt(200)})
		assert.Equal(t, WrongStatus, o.Kind)

		o = p.Probe(context.Background(), Request{Method: "POST", URL: server.URL, ExpectedStatus: ldvalue.NewOptionalInt(201)})
		assert.Equal(t, Success, o.Kind)

		o = p.Probe(context.Background(), Request{Method: "POST", URL: server.URL})
		assert.Equal(t, Success, o.Kind, "any 2xx status is a success when no status is expected")
	})
}

func TestProbeSendsBodyAndHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		header := make(http.Header)
		header.Set("X-Test", "yes")
		o := NewHTTPProber(nil, time.Second).Probe(context.Background(), Request{
			Method: "PUT",
			URL:    server.URL + "/things",
			Header: header,
			Body:   []byte(`{"a":1}`),
		})
		require.Equal(t, Success, o.Kind)

		r := <-requestsCh
		assert.Equal(t, "PUT", r.Request.Method)
		assert.Equal(t, "/things", r.Request.URL.Path)
		assert.Equal(t, "yes", r.Request.Header.Get("X-Test"))
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, `{"a":1}`, string(r.Body))
	})
}

func TestProbeTransportErrorIsNotReturnedAsError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	o := NewHTTPProber(nil, time.Second).Probe(context.Background(), Request{Method: "GET", URL: url})
	assert.Equal(t, TransportError, o.Kind)
	assert.Error(t, o.Err)
	assert.False(t, o.GotResponse())
	assert.True(t, strings.HasPrefix(o.String(), "transport error: "))
}

func TestProbeInvalidURLIsTransportError(t *testing.T) {
	o := NewHTTPProber(nil, time.Second).Probe(context.Background(), Request{Method: "GET", URL: "://nope"})
	assert.Equal(t, TransportError, o.Kind)
}

func TestProbeTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(200)
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		o := NewHTTPProber(nil, 50*time.Millisecond).Probe(context.Background(), Request{Method: "GET", URL: server.URL})
		assert.Equal(t, TransportError, o.Kind)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "<empty>", Excerpt(nil))
	assert.Equal(t, "short", Excerpt([]byte("  short\n")))

	long := strings.Repeat("é", 400)
	e := Excerpt([]byte(long))
	assert.Equal(t, MaxExcerptLength, len([]rune(e)))
	assert.True(t, strings.HasSuffix(e, "..."))
}
