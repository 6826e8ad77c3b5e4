package client

import (
	"errors"
	"fmt"
)

// Kind classifies why a backend call failed.
type Kind int

const (
	// KindTransport is a network failure; no response was read.
	KindTransport Kind = iota
	// KindDecode is a response body that could not be parsed.
	KindDecode
	// KindBackend is a failure the backend reported itself.
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindBackend:
		return "backend"
	}
	return "unknown"
}

// Error is returned by every Client method that fails.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a client Error of kind k.
func IsKind(err error, k Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == k
}

// BackendMessage returns the message the backend attached to a failure, if any.
func BackendMessage(err error) string {
	var ce *Error
	if errors.As(err, &ce) && ce.Kind == KindBackend {
		return ce.Message
	}
	return ""
}
