package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

// Translate translates a configuration source to JSON or YAML on stdout.
type Translate struct {
	Input    string `default:"-"    help:"Input source file or '-' for stdin" short:"i"`
	Format   string `default:"json" help:"Output format"                      short:"f" enum:"json,yaml"`
	Indent   int    `default:"2"    help:"Indent width for output (0 for compact)"`
	RunTests bool   `               help:"Run built-in self-tests and exit"             name:"run-tests"`
}

// Run executes the translate command.
func (t *Translate) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if t.RunTests {
		return runSelftest(ctx, os.Stdout)
	}

	return t.translate(ctx, os.Stdout)
}

// translate runs the full pipeline and writes the result to w.
func (t *Translate) translate(ctx context.Context, w io.Writer) error {
	src, err := readSource(t.Input)
	if err != nil {
		return ErrReadSource.
			With(slog.String("input", t.Input)).
			Wrap(err)
	}

	val, err := lang.Translate(ctx, string(src),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "source translated",
		slog.String("input", t.Input),
		slog.String("format", t.Format),
	)

	if t.Format == "yaml" {
		err = val.EncodeYAML(ctx, w, t.Indent)
		if err != nil {
			return ErrEncodeYAML.Wrap(err)
		}

		return nil
	}

	err = val.EncodeJSON(w, t.Indent)
	if err != nil {
		return ErrEncodeJSON.Wrap(err)
	}

	return nil
}
