package loadtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource returns 0, 1, 2, ... from Intn, wrapping at n.
type sequenceSource struct {
	next int
}

func (s *sequenceSource) Intn(n int) int {
	v := s.next % n
	s.next++
	return v
}

func (s *sequenceSource) Int63n(n int64) int64 {
	return int64(s.Intn(int(n)))
}

func TestDefaultWorkloadWeights(t *testing.T) {
	w := DefaultWorkload()
	require.Equal(t, 9, w.TotalWeight())

	tasks := w.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "list products", tasks[0].Name)
	assert.Equal(t, 5, tasks[0].Weight)
	tasks[0].Weight = 100
	assert.Equal(t, 9, w.TotalWeight())
	assert.Equal(t, 5, w.Tasks()[0].Weight)

	counts := make(map[string]int)
	src := &sequenceSource{}
	for i := 0; i < 9*100; i++ {
		counts[w.Pick(src).Name]++
	}
	assert.Equal(t, 500, counts["list products"])
	assert.Equal(t, 300, counts["list categories"])
	assert.Equal(t, 100, counts["create then delete product"])
}

func TestPickUsesCumulativeWeights(t *testing.T) {
	w, err := NewWorkload(
		Task{Name: "a", Weight: 2},
		Task{Name: "b", Weight: 1},
	)
	require.NoError(t, err)
	src := &sequenceSource{}
	assert.Equal(t, "a", w.Pick(src).Name)
	assert.Equal(t, "a", w.Pick(src).Name)
	assert.Equal(t, "b", w.Pick(src).Name)
}

func TestNewWorkloadValidation(t *testing.T) {
	_, err := NewWorkload()
	assert.Error(t, err)

	_, err = NewWorkload(Task{Name: "a", Weight: 0, Run: func(context.Context, *User) {}})
	assert.Error(t, err)
}
