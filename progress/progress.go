// Package progress is the operator-feedback side channel. Orchestrators
// receive a Reporter explicitly instead of logging through a global, so
// the core can run silent under test.
package progress

type Reporter interface {
	Update(format string, args ...interface{})
	Finish(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Discard drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Update(string, ...interface{}) {}
func (discard) Finish(string, ...interface{}) {}
func (discard) Error(string, ...interface{})  {}
