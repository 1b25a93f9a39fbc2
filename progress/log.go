package progress

import "log"

// LogReporter writes progress through the standard logger. Update lines
// are suppressed unless verbose is set; errors always come through.
type LogReporter struct {
	verbose bool
}

func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

func (r *LogReporter) SetVerbose(verbose bool) *LogReporter {
	r.verbose = verbose
	return r
}

func (r *LogReporter) Update(format string, args ...interface{}) {
	if r.verbose {
		log.Printf("[*] "+format, args...)
	}
}

func (r *LogReporter) Finish(format string, args ...interface{}) {
	log.Printf("[+] "+format, args...)
}

func (r *LogReporter) Error(format string, args ...interface{}) {
	log.Printf("[!] "+format, args...)
}
