package resolver

import "errors"

type ErrorKind int

const (
	ResolutionError = ErrorKind(iota)
	IOError
	AddrParseError
	TimeoutError
)

// Error is the typed failure surface of the resolver. Callers that only
// tolerate specific failure classes switch on Kind.
type Error interface {
	error
	Unwrap() error
	Kind() ErrorKind
}

// ErrNoRecords marks the specific "query succeeded, nothing there"
// condition. Wrapped into a ResolutionError so callers can tell record
// absence apart from a genuine failure with errors.Is.
var ErrNoRecords = errors.New("no records found")

type lookupError struct {
	wrapped error
	kind    ErrorKind
}

func newError(kind ErrorKind, err error) *lookupError {
	return &lookupError{
		wrapped: err,
		kind:    kind,
	}
}

func (e *lookupError) Error() string {
	return e.wrapped.Error()
}

func (e *lookupError) Unwrap() error {
	return e.wrapped
}

func (e *lookupError) Kind() ErrorKind {
	return e.kind
}
