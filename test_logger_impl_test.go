package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/selimhorri/ecommerce-contract-tests/framework"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleTestLoggerShowsDebugOutputOnlyOnFailure(t *testing.T) {
	var buf bytes.Buffer
	console := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	framework.Run(nil, console, func(c *framework.Context) {
		c.Run("quiet", func(c *framework.Context) { c.Debug("hidden line") })
		c.Run("loud", func(c *framework.Context) {
			c.Debug("shown line")
			c.Errorf("broken")
		})
	})

	out := buf.String()
	assert.Contains(t, out, "[loud]")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "shown line")
	assert.NotContains(t, out, "hidden line")
}

func TestSessionTestLoggerReportsOutcomes(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	session := sessionTestLogger{entry: log.NewEntry(logger)}

	framework.Run(nil, session, func(c *framework.Context) {
		c.Run("ok", func(c *framework.Context) {})
		c.Run("bad", func(c *framework.Context) { c.Errorf("%s", errors.New("boom")) })
		c.Run("later", func(c *framework.Context) { c.SkipWithReason("not ready") })
	})

	var warnings, skips []*log.Entry
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "Test failed":
			warnings = append(warnings, e)
		case "Test skipped":
			skips = append(skips, e)
		}
	}
	require.Len(t, warnings, 1)
	assert.Equal(t, log.WarnLevel, warnings[0].Level)
	assert.Equal(t, "bad", warnings[0].Data["test"])
	require.Len(t, skips, 1)
	assert.Equal(t, "not ready", skips[0].Data["reason"])
}
