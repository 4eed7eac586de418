package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/binconf/cli"
	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Translation failures report on stderr as a syntax error;
		// everything else is an operational failure.
		var langErr *lang.Error
		if errors.As(err, &langErr) {
			fmt.Fprintln(os.Stderr, "syntax error:", err)
			os.Exit(1)
		}

		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(1)
	}
}
