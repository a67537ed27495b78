package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/selimhorri/ecommerce-contract-tests/framework"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).Sprint("FAILED")
	skippedLabel = color.New(color.FgYellow).Sprint("SKIPPED")
)

// ConsoleTestLogger prints test progress, and the captured debug output of tests according to
// its settings.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", failedLabel, id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", skippedLabel, id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", skippedLabel, id, reason)
	}
}

// sessionTestLogger reports test outcomes to the session log, so they appear alongside the
// readiness gate output.
type sessionTestLogger struct {
	entry *log.Entry
}

func (s sessionTestLogger) TestStarted(id framework.TestID) {
	s.entry.WithField("test", id.String()).Debug("Test started")
}

func (s sessionTestLogger) TestError(id framework.TestID, err error) {
	s.entry.WithField("test", id.String()).WithError(err).Debug("Test error")
}

func (s sessionTestLogger) TestFinished(id framework.TestID, failed bool, _ framework.CapturedOutput) {
	if failed {
		s.entry.WithField("test", id.String()).Warn("Test failed")
		return
	}
	s.entry.WithField("test", id.String()).Debug("Test passed")
}

func (s sessionTestLogger) TestSkipped(id framework.TestID, reason string) {
	s.entry.WithFields(log.Fields{"test": id.String(), "reason": reason}).Info("Test skipped")
}
