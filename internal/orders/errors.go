package orders

import (
	"errors"
	"fmt"
)

// Kind classifies order source failures.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindNetwork        Kind = "network"
)

// Sentinels for errors.Is.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrNetwork        = errors.New("network failure")
)

// Error is returned by every Source. Message is shown to the user as is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}

func authError(msg string) error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func networkError(msg string, err error) error {
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Message
	}
	return "Unexpected error: " + err.Error()
}
