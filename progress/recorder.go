package progress

import (
	"fmt"
	"sync"
)

// Recorder captures reported lines for assertions in tests.
type Recorder struct {
	mu sync.Mutex

	Updates  []string
	Finishes []string
	Errors   []string
}

func (r *Recorder) Update(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updates = append(r.Updates, fmt.Sprintf(format, args...))
}

func (r *Recorder) Finish(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finishes = append(r.Finishes, fmt.Sprintf(format, args...))
}

func (r *Recorder) Error(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
