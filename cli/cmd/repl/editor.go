package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/monkey/lang"
	"github.com/ardnew/monkey/lang/eval"
	"github.com/ardnew/monkey/log"
)

const defaultEditor = "vi"

// ErrEditDeclined signals that the user chose not to re-edit after a parse
// failure.
var ErrEditDeclined = errors.New("decline edit")

// editScriptCommand implements [tea.ExecCommand] for the scratch-script
// edit-parse-retry loop. It opens the user's editor on an empty temp file,
// then parses and evaluates the result against the session environment. On
// parse error the user is prompted to re-edit; declining exits the program.
type editScriptCommand struct {
	session   *lang.Session
	ctxFunc   func() context.Context
	result    eval.Object
	evaluated bool
	logger    log.Logger
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editScriptCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editScriptCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editScriptCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. It opens the editor, evaluates the
// saved script, and prompts on parse error. If the user declines to re-edit,
// it returns [ErrEditDeclined]. A parse error never touches the session
// environment, so re-editing resumes from a clean slate.
func (c *editScriptCommand) Run() error {
	ctx := c.ctxFunc()

	// Scratch buffer starts empty.
	content := ""

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "monkey-repl-*.mky")
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

		// Launch editor and get a reader over the result.
		r, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// Check for empty file (user cleared content or saved nothing).
		br := bufio.NewReader(r)
		if _, err := br.Peek(1); err != nil {
			// EOF or read error; treat as cancelled edit.
			return nil
		}

		data, err := io.ReadAll(br)
		if err != nil {
			return err
		}

		result, evalErr := c.session.Eval(ctx, string(data))
		c.logger.TraceContext(
			ctx,
			"editor eval attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", evalErr == nil),
		)

		if evalErr == nil {
			c.result = result
			c.evaluated = true

			return nil
		}

		var parseErr *lang.ParseError
		if !errors.As(evalErr, &parseErr) {
			return evalErr
		}

		// Show error and prompt.
		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Re-read the (failed) content for the next editor iteration.
		data, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return readErr
		}

		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path and returns a
// reader over the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (io.Reader, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}
