package readiness

import (
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/probe"
)

type verdict int

const (
	verdictRetry verdict = iota
	verdictMatched
)

// pollState is everything the polling loop knows. Its methods are pure: they take the current
// time as a parameter and return a new state.
type pollState struct {
	started  time.Time
	deadline time.Time
	now      time.Time
	attempts int
	last     probe.Outcome
	hasLast  bool
}

func startPoll(now time.Time, timeout time.Duration) pollState {
	return pollState{started: now, deadline: now.Add(timeout), now: now}
}

// observe records the outcome of one attempt.
func (s pollState) observe(now time.Time, outcome probe.Outcome, accepted bool) (pollState, verdict) {
	s.now = now
	s.attempts++
	s.last = outcome
	s.hasLast = true
	if accepted {
		return s, verdictMatched
	}
	return s, verdictRetry
}

// tick advances the state's notion of the current time.
func (s pollState) tick(now time.Time) pollState {
	s.now = now
	return s
}

func (s pollState) expired() bool {
	return !s.now.Before(s.deadline)
}

func (s pollState) result(matched bool) Result {
	return Result{
		Matched:  matched,
		Last:     s.last,
		HasLast:  s.hasLast,
		Elapsed:  s.now.Sub(s.started),
		Attempts: s.attempts,
	}
}
