package loader

import (
	"fmt"
)

// ErrorKind classifies why a load failed.
type ErrorKind string

const (
	// KindFetch covers transport failures, unreadable files and timeouts.
	KindFetch ErrorKind = "fetch"
	// KindStatus is a completed HTTP exchange with a non-2xx status.
	KindStatus ErrorKind = "status"
	// KindParse is a body that is not valid JSON or CSV.
	KindParse ErrorKind = "parse"
	// KindShape is valid JSON that does not hold a list of records.
	KindShape ErrorKind = "shape"
)

// LoadError is returned by Load when the record collection could not be
// obtained. It is never swallowed by the fallback.
type LoadError struct {
	Kind       ErrorKind `json:"kind"`
	Location   string    `json:"location"`
	StatusCode int       `json:"statusCode,omitempty"`
	Err        error     `json:"-"`
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Location, e.Kind)
	if e.Kind == KindStatus {
		msg = fmt.Sprintf("%s %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Retryable reports whether retrying the same source may succeed.
func (e *LoadError) Retryable() bool {
	switch e.Kind {
	case KindFetch:
		return true
	case KindStatus:
		return e.StatusCode >= 500 || e.StatusCode == 429
	default:
		return false
	}
}
