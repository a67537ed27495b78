package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDrainsInReverseOrderExactlyOnce(t *testing.T) {
	var r Registry
	require.NoError(t, r.Add(Handle{Kind: User, Key: []string{"1"}}))
	require.NoError(t, r.Add(Handle{Kind: Cart, Key: []string{"2"}}))
	assert.Equal(t, 2, r.Len())

	drained := r.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, Cart, drained[0].Kind)
	assert.Equal(t, User, drained[1].Kind)

	assert.Nil(t, r.Drain())
	assert.Equal(t, ErrDrained, r.Add(Handle{Kind: Order, Key: []string{"3"}}))
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "ShippingItem 3/7", Handle{Kind: ShippingItem, Key: []string{"3", "7"}}.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
