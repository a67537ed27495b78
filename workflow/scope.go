// Package workflow runs a multi-step business scenario and guarantees that every resource it
// created is deleted afterward, newest first, however the scenario ends.
package workflow

import (
	"context"
	"fmt"
)

// State is the lifecycle of a Scope.
type State int

const (
	Pending State = iota
	Running
	Compensating
	Completed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Compensating:
		return "compensating"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Compensator deletes the resource a handle refers to.
type Compensator interface {
	Compensate(ctx context.Context, h Handle) error
}

// CompensatorFunc adapts a function to Compensator.
type CompensatorFunc func(ctx context.Context, h Handle) error

func (f CompensatorFunc) Compensate(ctx context.Context, h Handle) error {
	return f(ctx, h)
}

// Observer is told the result of every compensation: err is nil on success, or a
// *CompensationError.
type Observer func(h Handle, err error)

// CompensationError describes a compensation that failed or panicked. It is only ever passed
// to an Observer.
type CompensationError struct {
	Handle Handle
	Err    error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("could not delete %s: %s", e.Handle, e.Err)
}

func (e *CompensationError) Unwrap() error {
	return e.Err
}

// Scope collects the handles of one workflow run.
type Scope struct {
	registry Registry
	state    State
}

// Record registers a resource that was just created. It must only be called once the creation
// has succeeded and the identifiers are known; it returns an error, and records nothing, if
// any identifier is empty or the number of identifiers is wrong for the kind.
func (s *Scope) Record(kind Kind, key ...string) error {
	if s.state != Running {
		return fmt.Errorf("cannot record %s while workflow is %s", kind, s.state)
	}
	if len(key) != kind.KeyLength() {
		return fmt.Errorf("%s needs %d identifier(s), got %d", kind, kind.KeyLength(), len(key))
	}
	for _, k := range key {
		if k == "" {
			return fmt.Errorf("%s was created without an identifier", kind)
		}
	}
	return s.registry.Add(Handle{Kind: kind, Key: append([]string(nil), key...)})
}

// Handles returns the recorded handles in creation order.
func (s *Scope) Handles() []Handle {
	return s.registry.Handles()
}

// State returns the current lifecycle state.
func (s *Scope) State() State {
	return s.state
}

// Run executes body and then compensates every handle it recorded, in reverse order. The
// compensations happen however body exits: by returning, by panicking (which is how a test's
// FailNow works), or through runtime.Goexit. Compensation failures and panics are reported to
// observer, which may be nil, and never reach the caller; a panic from body is re-raised
// after compensation.
func Run(ctx context.Context, compensator Compensator, observer Observer, body func(*Scope)) {
	s := &Scope{}
	defer s.compensate(ctx, compensator, observer)
	s.state = Running
	body(s)
}

func (s *Scope) compensate(ctx context.Context, compensator Compensator, observer Observer) {
	if s.state == Compensating || s.state == Completed {
		return
	}
	s.state = Compensating
	// The body's context may have been cancelled; deletions still have to be attempted.
	ctx = context.WithoutCancel(ctx)
	for _, h := range s.registry.Drain() {
		err := compensateOne(ctx, compensator, h)
		notify(observer, h, err)
	}
	s.state = Completed
}

func compensateOne(ctx context.Context, compensator Compensator, h Handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CompensationError{Handle: h, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if e := compensator.Compensate(ctx, h); e != nil {
		return &CompensationError{Handle: h, Err: e}
	}
	return nil
}

func notify(observer Observer, h Handle, err error) {
	if observer == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	observer(h, err)
}
