package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

// Fmt reformats a configuration source to canonical syntax on stdout.
// Constant references are resolved during translation, so the output
// contains only literal values.
type Fmt struct {
	Input  string `default:"-" help:"Input source file or '-' for stdin" short:"i"`
	Indent int    `default:"2" help:"Indent width for dictionaries (0 for single-line)"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return f.format(ctx, os.Stdout)
}

func (f *Fmt) format(ctx context.Context, w io.Writer) error {
	src, err := readSource(f.Input)
	if err != nil {
		return ErrReadSource.
			With(slog.String("input", f.Input)).
			Wrap(err)
	}

	val, err := lang.Translate(ctx, string(src),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	err = val.Format(w, f.Indent)
	if err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}
