package lang

import (
	"errors"
	"log/slog"
	"slices"
)

// Sentinel errors. Every failure surfaced by [Translate] or [Definitions]
// wraps exactly one of these.
var (
	ErrLex             = NewError("lexical error")
	ErrUnexpectedToken = NewError("unexpected token")
	ErrExpectedToken   = NewError("expected token")
	ErrUnknownConstant = NewError("unknown constant")
	ErrTrailingInput   = NewError("trailing input after value")
)

// Error is a translation failure carrying structured logging attributes.
// It implements both the error and [slog.LogValuer] interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error formats the message and wrapped cause, omitting whichever is unset.
func (e *Error) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()

	case e.msg != "":
		return e.msg

	case e.err != nil:
		return e.err.Error()
	}

	return ""
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches errors derived from the same sentinel. Derived errors created
// with [Error.Wrap] or [Error.With] share the sentinel's message, so
// errors.Is(err, ErrLex) holds for any error built from ErrLex.
func (e *Error) Is(target error) bool {
	var te *Error
	if !errors.As(target, &te) {
		return false
	}

	return e.msg == te.msg
}

// LogValue renders the error as a group of logging attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with err recorded as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e carrying the additional logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: slices.Concat(e.attrs, attrs),
	}
}
