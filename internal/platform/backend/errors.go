package backend

import "github.com/go-faster/errors"

var (
	ErrTransport   = errors.New("backend unreachable")
	ErrHTTPStatus  = errors.New("backend returned a non-2xx status")
	ErrApplication = errors.New("backend rejected the request")
	ErrParse       = errors.New("backend response is malformed")
)

// Error is a categorized backend failure. Message is what the user sees.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
