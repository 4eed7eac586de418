package cmd

import (
	"log/slog"
	"slices"
)

// Error is a command failure that renders itself as structured logging
// attributes via [Error.LogValue].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

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

func (e *Error) Unwrap() error { return e.err }

// Is matches errors derived from the same sentinel through [Error.Wrap] or
// [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

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

var (
	ErrReadSource = NewError("read source")
	ErrEncodeJSON = NewError("encode JSON")
	ErrEncodeYAML = NewError("encode YAML")
	ErrFormat     = NewError("format source")
)
