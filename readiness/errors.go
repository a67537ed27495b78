package readiness

import (
	"fmt"
	"strings"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/probe"
)

// TimeoutError means a poll reached its deadline without the target becoming ready.
type TimeoutError struct {
	Method   string
	URL      string
	Expected string
	Elapsed  time.Duration
	Attempts int
	Last     probe.Outcome
	HasLast  bool
}

// Err returns nil if the poll matched, or a *TimeoutError describing target otherwise.
func (r Result) Err(target Target) error {
	if r.Matched {
		return nil
	}
	expected := "any 2xx status"
	if status, ok := target.ExpectedStatus.Get(); ok {
		expected = fmt.Sprintf("status %d", status)
	}
	if target.Condition != nil {
		expected += " and a matching body"
	}
	return &TimeoutError{
		Method:   strings.ToUpper(target.Method),
		URL:      target.URL,
		Expected: expected,
		Elapsed:  r.Elapsed,
		Attempts: r.Attempts,
		Last:     r.Last,
		HasLast:  r.HasLast,
	}
}

func (e *TimeoutError) Error() string {
	elapsed := e.Elapsed.Round(time.Millisecond)
	switch {
	case !e.HasLast:
		return fmt.Sprintf("%s %s was not ready after %s: no attempt was made", e.Method, e.URL, elapsed)
	case e.Last.GotResponse():
		return fmt.Sprintf("%s %s did not respond with %s after %s (%d attempts); last response: status %d, expected %s, body: %s",
			e.Method, e.URL, e.Expected, elapsed, e.Attempts, e.Last.Status, e.Expected, probe.Excerpt(e.Last.Body))
	default:
		return fmt.Sprintf("%s %s was not reachable after %s (%d attempts); last error: %s",
			e.Method, e.URL, elapsed, e.Attempts, e.Last.Err)
	}
}

// NeverResponded distinguishes "service never came up" from "service up but wrong answer".
func (e *TimeoutError) NeverResponded() bool {
	return !e.HasLast || !e.Last.GotResponse()
}
