package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

const defaultEditor = "vi"

// editSessionCommand implements [tea.ExecCommand] for the prelude
// edit-translate-retry loop. It writes the session's definition source to a
// temp file, opens the user's editor, and re-translates the result. On a
// translation error the user is prompted to re-edit; declining exits the
// program.
type editSessionCommand struct {
	src     string
	ctxFunc func() context.Context
	newSrc  string
	newDefs []lang.Field
	edited  bool
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSessionCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSessionCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSessionCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-translate-retry loop. If the user declines to
// re-edit after an error, it returns [ErrEditDeclined]. An emptied file is
// treated as a cancelled edit.
func (c *editSessionCommand) Run() error {
	ctx := c.ctxFunc()

	content := c.src
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "binconf-repl-*.bc")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		// Write current content to temp file.
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		// An emptied file cancels the edit.
		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		defs, transErr := lang.Definitions(
			ctx,
			string(data),
			lang.WithLogger(c.logger),
		)
		c.logger.TraceContext(
			ctx,
			"editor translate attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", transErr == nil),
		)

		if transErr == nil {
			c.newSrc = string(data)
			c.newDefs = defs
			c.edited = true

			return nil
		}

		// Show error and prompt.
		fmt.Fprintf(c.stderr, "\nTranslation error: %s\n", transErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Keep the (failed) content for the next editor iteration.
		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
