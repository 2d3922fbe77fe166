// Package wmerr defines the closed set of error kinds the manager
// surfaces to IPC callers and the log.
package wmerr

import (
	"errors"
	"fmt"
)

// Kind is one of the manager's closed set of error kinds.
type Kind string

const (
	ConfigInvalid     Kind = "ConfigInvalid"
	OsCallFailed      Kind = "OsCallFailed"
	ProtocolError     Kind = "ProtocolError"
	MessageTooLarge   Kind = "MessageTooLarge"
	UnknownCommand    Kind = "UnknownCommand"
	UnknownWorkspace  Kind = "UnknownWorkspace"
	UnknownMonitor    Kind = "UnknownMonitor"
	NoFocusedWindow   Kind = "NoFocusedWindow"
	RuleCompileError  Kind = "RuleCompileError"
	PersistenceError  Kind = "PersistenceError"
)

// code maps each Kind to its stable wire string.
var code = map[Kind]string{
	ConfigInvalid:    "ERR_INVALID_CONFIG",
	OsCallFailed:     "ERR_OS_CALL_FAILED",
	ProtocolError:    "ERR_PROTOCOL",
	MessageTooLarge:  "ERR_TOO_LARGE",
	UnknownCommand:   "ERR_UNKNOWN_COMMAND",
	UnknownWorkspace: "ERR_NOT_FOUND",
	UnknownMonitor:   "ERR_NOT_FOUND",
	NoFocusedWindow:  "ERR_NOT_FOUND",
	RuleCompileError: "ERR_INVALID_CONFIG",
	PersistenceError: "ERR_PERSISTENCE",
}

// Error is a manager error carrying a stable kind/code alongside the
// underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Code returns the stable wire code for e's kind.
func (e *Error) Code() string {
	if c, ok := code[e.Kind]; ok {
		return c
	}
	return "ERR_INTERNAL"
}

// New constructs an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// CodeOf returns the wire code for err, defaulting to ERR_INTERNAL when err
// does not wrap a *wmerr.Error. No Kind maps to ERR_INVALID_ARG, so it is
// never produced; invalid IPC arguments are reported as ProtocolError.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return "ERR_INTERNAL"
}

// MessageOf returns a human-readable message for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
