package workflow

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCompensator struct {
	deleted []string
	fail    map[string]error
	panics  map[string]bool
}

func (c *recordingCompensator) Compensate(ctx context.Context, h Handle) error {
	c.deleted = append(c.deleted, h.String())
	if c.panics[h.String()] {
		panic("boom")
	}
	return c.fail[h.String()]
}

type observed struct {
	handle Handle
	err    error
}

func observeInto(list *[]observed) Observer {
	return func(h Handle, err error) {
		*list = append(*list, observed{h, err})
	}
}

func TestCompensationRunsInReverseOrder(t *testing.T) {
	c := &recordingCompensator{}
	Run(context.Background(), c, nil, func(s *Scope) {
		require.NoError(t, s.Record(User, "1"))
		require.NoError(t, s.Record(Cart, "2"))
		require.NoError(t, s.Record(ShippingItem, "5", "3"))
		require.NoError(t, s.Record(Payment, "9"))
	})
	assert.Equal(t, []string{"Payment 9", "ShippingItem 5/3", "Cart 2", "User 1"}, c.deleted)
}

func TestNothingRecordedMeansNothingCompensated(t *testing.T) {
	c := &recordingCompensator{}
	var obs []observed
	Run(context.Background(), c, observeInto(&obs), func(s *Scope) {})
	assert.Empty(t, c.deleted)
	assert.Empty(t, obs)
}

func TestCompensationFailureDoesNotStopTheRest(t *testing.T) {
	failure := errors.New("500 Internal Server Error")
	c := &recordingCompensator{fail: map[string]error{"Cart 2": failure}}
	var obs []observed
	Run(context.Background(), c, observeInto(&obs), func(s *Scope) {
		require.NoError(t, s.Record(User, "1"))
		require.NoError(t, s.Record(Cart, "2"))
		require.NoError(t, s.Record(Order, "3"))
	})

	assert.Equal(t, []string{"Order 3", "Cart 2", "User 1"}, c.deleted)
	require.Len(t, obs, 3)
	assert.NoError(t, obs[0].err)
	assert.NoError(t, obs[2].err)

	var compErr *CompensationError
	require.True(t, errors.As(obs[1].err, &compErr))
	assert.Equal(t, Cart, compErr.Handle.Kind)
	assert.True(t, errors.Is(obs[1].err, failure))
}

func TestCompensationPanicIsContained(t *testing.T) {
	c := &recordingCompensator{panics: map[string]bool{"Product 7": true}}
	var obs []observed
	assert.NotPanics(t, func() {
		Run(context.Background(), c, observeInto(&obs), func(s *Scope) {
			require.NoError(t, s.Record(Category, "6"))
			require.NoError(t, s.Record(Product, "7"))
		})
	})
	assert.Equal(t, []string{"Product 7", "Category 6"}, c.deleted)
	require.Len(t, obs, 2)
	assert.Error(t, obs[0].err)
	assert.Contains(t, obs[0].err.Error(), "panic: boom")
}

func TestObserverPanicIsContained(t *testing.T) {
	c := &recordingCompensator{}
	assert.NotPanics(t, func() {
		Run(context.Background(), c, func(Handle, error) { panic("observer") }, func(s *Scope) {
			require.NoError(t, s.Record(User, "1"))
			require.NoError(t, s.Record(Cart, "2"))
		})
	})
	assert.Equal(t, []string{"Cart 2", "User 1"}, c.deleted)
}

func TestCompensationRunsWhenBodyPanics(t *testing.T) {
	type failNow struct{}
	c := &recordingCompensator{}
	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		Run(context.Background(), c, nil, func(s *Scope) {
			_ = s.Record(User, "1")
			_ = s.Record(Cart, "2")
			panic(failNow{})
		})
	}()
	assert.Equal(t, failNow{}, recovered)
	assert.Equal(t, []string{"Cart 2", "User 1"}, c.deleted)
}

func TestCompensationRunsOnGoexit(t *testing.T) {
	c := &recordingCompensator{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(context.Background(), c, nil, func(s *Scope) {
			_ = s.Record(Product, "4")
			runtime.Goexit()
		})
	}()
	<-done
	assert.Equal(t, []string{"Product 4"}, c.deleted)
}

func TestCompensationUsesUncancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var errs []error
	c := CompensatorFunc(func(ctx context.Context, h Handle) error {
		errs = append(errs, ctx.Err())
		return nil
	})
	Run(ctx, c, nil, func(s *Scope) {
		_ = s.Record(User, "1")
		cancel()
	})
	assert.Equal(t, []error{nil}, errs)
}

func TestRecordRejectsMissingIdentifiers(t *testing.T) {
	c := &recordingCompensator{}
	Run(context.Background(), c, nil, func(s *Scope) {
		assert.Error(t, s.Record(User, ""))
		assert.Error(t, s.Record(User))
		assert.Error(t, s.Record(ShippingItem, "1"))
		assert.Error(t, s.Record(ShippingItem, "1", ""))
		assert.Empty(t, s.Handles())
	})
	assert.Empty(t, c.deleted)
}

func TestScopeStates(t *testing.T) {
	var scope *Scope
	Run(context.Background(), &recordingCompensator{}, func(Handle, error) {
		assert.Equal(t, Compensating, scope.State())
	}, func(s *Scope) {
		scope = s
		assert.Equal(t, Running, s.State())
		_ = s.Record(User, "1")
	})
	assert.Equal(t, Completed, scope.State())
	assert.Error(t, scope.Record(User, "2"))
}
