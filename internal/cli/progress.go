package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/kinship/internal/importer"
)

// CLIProgressReporter implements importer.ProgressReporter with progress bars.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	scanBar   *progressbar.ProgressBar
	importBar *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) newBar(max int, description, unit string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnScanStart() {
	if c.quiet {
		return
	}
	// The line count is unknown until the scan ends: -1 shows a spinner.
	c.scanBar = c.newBar(-1, "Scanning", "lines/s")
}

func (c *CLIProgressReporter) OnScanStep() {
	if c.scanBar != nil {
		c.scanBar.Add(1)
	}
}

func (c *CLIProgressReporter) SetTotal(lines int) {
	if c.quiet {
		return
	}
	if c.scanBar != nil {
		c.scanBar.Finish()
		c.scanBar = nil
	}
	c.importBar = c.newBar(lines, "Importing", "lines/s")
}

func (c *CLIProgressReporter) Step() {
	if c.importBar != nil {
		c.importBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnRepairStart() {
	if c.quiet {
		return
	}
	if c.importBar != nil {
		c.importBar.Finish()
		c.importBar = nil
	}
	fmt.Fprintln(c.out, "Repairing cross references...")
}

func (c *CLIProgressReporter) OnComplete(report *importer.Report) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "✓ Import complete: %s records in %.1fs\n",
		formatNumber(totalCreated(report)), time.Since(c.startTime).Seconds())
	fmt.Fprintf(c.out, "  Warnings:           %s\n", formatNumber(report.Warnings()))
	fmt.Fprintf(c.out, "  Missing references: %s\n", formatNumber(report.MissingReferences))
}

func totalCreated(report *importer.Report) int {
	n := 0
	for _, c := range report.Created {
		n += c
	}
	return n
}

// formatNumber formats a number with thousand separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, ch)
	}
	return string(out)
}
