package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/binconf/cli/cmd/repl"
	"github.com/ardnew/binconf/log"
)

// Repl starts an interactive translation session.
type Repl struct {
	Input string `help:"Source file of constant definitions to preload, or '-' for stdin" short:"i"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var prelude string

	if r.Input != "" {
		src, err := readSource(r.Input)
		if err != nil {
			return ErrReadSource.
				With(slog.String("input", r.Input)).
				Wrap(err)
		}

		prelude = string(src)
	}

	cache := "."

	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cache = dir
		}
	}

	return repl.Run(ctx, prelude, cache, log.Default())
}
