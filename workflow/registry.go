package workflow

import "errors"

// ErrDrained is returned when adding to a Registry that has already been drained.
var ErrDrained = errors.New("resources have already been released")

// Registry is an append-only list of handles, released exactly once in reverse order of
// creation. It is not safe for concurrent use; a workflow runs on a single goroutine.
type Registry struct {
	handles []Handle
	drained bool
}

// Add appends h.
func (r *Registry) Add(h Handle) error {
	if r.drained {
		return ErrDrained
	}
	r.handles = append(r.handles, h)
	return nil
}

// Handles returns the handles in creation order.
func (r *Registry) Handles() []Handle {
	return append([]Handle(nil), r.handles...)
}

// Len returns the number of handles added so far.
func (r *Registry) Len() int {
	return len(r.handles)
}

// Drain returns the handles in reverse creation order. Every call after the first returns nil.
func (r *Registry) Drain() []Handle {
	if r.drained {
		return nil
	}
	r.drained = true
	ret := make([]Handle, 0, len(r.handles))
	for i := len(r.handles) - 1; i >= 0; i-- {
		ret = append(ret, r.handles[i])
	}
	return ret
}
