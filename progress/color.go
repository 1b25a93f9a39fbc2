package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// ColorReporter prints timestamped status lines for interactive runs.
type ColorReporter struct {
	start time.Time

	update *color.Color
	finish *color.Color
	fail   *color.Color
}

func NewColorReporter() *ColorReporter {
	return &ColorReporter{
		start:  time.Now(),
		update: color.New(color.FgCyan),
		finish: color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
	}
}

func (r *ColorReporter) Elapsed() time.Duration {
	return time.Since(r.start)
}

func (r *ColorReporter) Update(format string, args ...interface{}) {
	prefix := r.update.Sprint("[*]")
	fmt.Printf("%s [%.2fs] %s\n", prefix, r.Elapsed().Seconds(), fmt.Sprintf(format, args...))
}

func (r *ColorReporter) Finish(format string, args ...interface{}) {
	prefix := r.finish.Sprint("[+]")
	fmt.Printf("%s [%.2fs] %s\n", prefix, r.Elapsed().Seconds(), fmt.Sprintf(format, args...))
}

func (r *ColorReporter) Error(format string, args ...interface{}) {
	prefix := r.fail.Sprint("[!]")
	fmt.Fprintf(os.Stderr, "%s [%.2fs] %s\n", prefix, r.Elapsed().Seconds(), fmt.Sprintf(format, args...))
}
