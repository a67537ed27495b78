package framework

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	passColor = color.New(color.FgGreen, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// PrintResults writes a summary of a test run, listing every failure with its errors.
func PrintResults(out io.Writer, results Results) {
	skipped := results.Skipped()
	ran := len(results.Tests) - len(skipped)
	if len(results.Failures) == 0 {
		passColor.Fprintf(out, "All tests passed")
		fmt.Fprintf(out, " (%d run, %d skipped)\n", ran, len(skipped))
		return
	}
	failColor.Fprintf(out, "FAILED TESTS (%d of %d):\n", len(results.Failures), ran)
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  - %s\n", f.TestID)
		for _, err := range f.Errors {
			fmt.Fprintf(out, "      %s\n", err)
		}
	}
	if len(skipped) > 0 {
		skipColor.Fprintf(out, "%d tests skipped\n", len(skipped))
	}
}
