package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, filters.MustMatch.SetAll([]string{"checkout", "catalog"}))
	require.NoError(t, filters.MustNotMatch.Set("update"))

	assert.True(t, filters.AsFilter(TestID{Path: []string{"workflows", "checkout"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"catalog lifecycle"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"catalog lifecycle", "update"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"health"}}))
	assert.Equal(t, []string{"checkout", "catalog"}, filters.MustMatch.Patterns())
}

func TestInvalidRegex(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("slow"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), `skip any matching "slow"`)
}
