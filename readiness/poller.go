// Package readiness waits for an HTTP endpoint to reach an expected state.
//
// A single primitive, Poller.Poll, serves both "wait until this service is healthy" and "wait
// until this route works". It probes repeatedly at a fixed interval until the probe succeeds
// or the deadline passes; transport failures and wrong statuses are retried alike.
package readiness

import (
	"context"
	"net/http"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/probe"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Target is a declarative description of one condition to wait for.
type Target struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	// ExpectedStatus is the status that counts as ready. If undefined, any 2xx status does.
	ExpectedStatus ldvalue.OptionalInt

	// Interval is the delay between two attempts.
	Interval time.Duration

	// Timeout is measured from the start of the poll. It cannot be changed once polling starts.
	Timeout time.Duration

	// Condition optionally inspects a successful outcome. If it returns false, the attempt
	// counts as not ready and is retried.
	Condition func(probe.Outcome) bool

	// Description is used in log and error messages instead of the URL, if set.
	Description string
}

// Result is what one call to Poll produces.
type Result struct {
	Matched bool

	// Last is the outcome of the final attempt; HasLast is false only if no attempt was made.
	Last    probe.Outcome
	HasLast bool

	Elapsed  time.Duration
	Attempts int
}

// Clock abstracts time so the polling loop can be tested without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

// Poller repeatedly probes a Target.
type Poller struct {
	Prober probe.Prober
	Clock  Clock

	// Logger, if set, receives a line for every failed attempt.
	Logger framework.Logger
}

// NewPoller creates a Poller using the real clock.
func NewPoller(prober probe.Prober) Poller {
	return Poller{Prober: prober, Clock: RealClock()}
}

// Poll probes target until it is ready or until its deadline has passed.
//
// The first attempt is always made. After a failed attempt, Poll sleeps for the interval and
// then gives up if the deadline has been reached, so it never runs for more than one interval
// (plus the duration of a single request) past the deadline.
func (p Poller) Poll(ctx context.Context, target Target) Result {
	clock := p.Clock
	if clock == nil {
		clock = RealClock()
	}
	req := probe.Request{
		Method:         target.Method,
		URL:            target.URL,
		Header:         target.Header,
		Body:           target.Body,
		ExpectedStatus: target.ExpectedStatus,
	}

	state := startPoll(clock.Now(), target.Timeout)
	for {
		outcome := p.Prober.Probe(ctx, req)
		var v verdict
		state, v = state.observe(clock.Now(), outcome, target.accepts(outcome))
		if v == verdictMatched {
			return state.result(true)
		}
		if p.Logger != nil {
			p.Logger.Printf("%s %s not ready (attempt %d): %s", target.Method, target.Name(), state.attempts, outcome)
		}
		clock.Sleep(target.Interval)
		state = state.tick(clock.Now())
		if state.expired() {
			return state.result(false)
		}
	}
}

func (t Target) accepts(o probe.Outcome) bool {
	if !o.OK() {
		return false
	}
	return t.Condition == nil || t.Condition(o)
}

// Name is the Description if set, or else the URL.
func (t Target) Name() string {
	if t.Description != "" {
		return t.Description
	}
	return t.URL
}
