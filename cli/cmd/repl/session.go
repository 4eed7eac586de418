package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

// session holds the constant definitions accumulated during a REPL run.
// The prelude source is prepended to every translated input, so values may
// reference any constant defined earlier in the session.
type session struct {
	src  string       // accumulated definition prelude
	defs []lang.Field // bindings in definition order
	log  log.Logger
}

func newSession(ctx context.Context, prelude string, logger log.Logger) (*session, error) {
	s := &session{log: logger}

	prelude = strings.TrimSpace(prelude)
	if prelude == "" {
		return s, nil
	}

	defs, err := lang.Definitions(ctx, prelude, lang.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	s.src = prelude
	s.defs = defs

	return s, nil
}

// define appends input, which must consist solely of constant definitions,
// to the session prelude. The session is unchanged when input does not
// translate.
func (s *session) define(ctx context.Context, input string) error {
	src := s.src
	if src != "" {
		src += "\n"
	}

	src += input

	defs, err := lang.Definitions(ctx, src, lang.WithLogger(s.log))
	if err != nil {
		return err
	}

	s.src = src
	s.defs = defs

	return nil
}

// replace swaps the session prelude for an already-validated source and its
// bindings. Used by the external editor loop.
func (s *session) replace(src string, defs []lang.Field) {
	s.src = strings.TrimSpace(src)
	s.defs = defs
}

// translate runs input against the session prelude and returns the value.
func (s *session) translate(ctx context.Context, input string) (lang.Value, error) {
	src := input
	if s.src != "" {
		src = s.src + "\n" + input
	}

	return lang.Translate(ctx, src, lang.WithLogger(s.log))
}

// names returns the defined constant names in definition order.
func (s *session) names() []string {
	names := make([]string, len(s.defs))
	for i, def := range s.defs {
		names[i] = def.Key
	}

	return names
}

// preview renders a short single-line description of a value for the list
// command.
func preview(v lang.Value) string {
	switch v.Type {
	case lang.TypeInt:
		return fmt.Sprintf("%d (0b%b)", v.Int, v.Int)

	case lang.TypeText:
		text := v.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}

		return "[[" + text + "]]"

	case lang.TypeArray:
		return fmt.Sprintf("array(%d elements)", len(v.Array))

	case lang.TypeDict:
		return fmt.Sprintf("@{ %d fields }", len(v.Dict))

	default:
		return "<unknown>"
	}
}
