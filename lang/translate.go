package lang

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/binconf/lang/lexer"
	"github.com/ardnew/binconf/lang/token"
	"github.com/ardnew/binconf/log"
)

// config holds the options for a single translation.
type config struct {
	log log.Logger
}

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithLogger returns a functional option that sets the logger used for
// translation diagnostics. Without it, translation is silent.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.log = logger

		return c
	}
}

// Translate converts a complete program in source text into its value tree.
//
// The source must consist of zero or more constant definitions followed by
// exactly one value. Constants are resolved eagerly while parsing, so the
// returned Value contains no references. The first error encountered aborts
// the translation; every returned error wraps one of the package sentinels
// ([ErrLex], [ErrUnexpectedToken], [ErrExpectedToken], [ErrUnknownConstant],
// [ErrTrailingInput]).
//
// Each call uses its own constant table, so concurrent calls on independent
// inputs are safe.
func Translate(ctx context.Context, src string, opts ...Option) (Value, error) {
	cfg := apply(config{}, opts...)

	tokens, err := lexer.Scan(src)
	if err != nil {
		return Value{}, ErrLex.Wrap(err)
	}

	cfg.log.TraceContext(ctx, "source scanned",
		slog.Int("bytes", len(src)),
		slog.Int("tokens", len(tokens)),
	)

	val, err := newParser(tokens, cfg.log).parseProgram(ctx)
	if err != nil {
		return Value{}, err
	}

	cfg.log.TraceContext(ctx, "source translated",
		slog.String("type", val.Type.String()),
	)

	return val, nil
}

// Definitions translates a source consisting solely of constant definitions
// and returns the bindings in effect afterward, ordered by first definition.
// A redefined name keeps its original position with its latest value.
//
// Interactive sessions use this to maintain a definition prelude separately
// from the values translated against it.
func Definitions(
	ctx context.Context,
	src string,
	opts ...Option,
) ([]Field, error) {
	cfg := apply(config{}, opts...)

	tokens, err := lexer.Scan(src)
	if err != nil {
		return nil, ErrLex.Wrap(err)
	}

	p := newParser(tokens, cfg.log)

	var names []string

	for p.current().Kind == token.ParenOpen &&
		p.peek().Kind == token.KeywordDef {
		name, err := p.parseConstDef(ctx)
		if err != nil {
			return nil, err
		}

		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	if tok := p.current(); tok.Kind != token.EOF {
		return nil, trailingInput(tok)
	}

	defs := make([]Field, len(names))
	for i, name := range names {
		defs[i] = Field{Key: name, Value: p.consts[name]}
	}

	return defs, nil
}
