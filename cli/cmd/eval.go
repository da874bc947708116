package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/monkey/lang"
	"github.com/ardnew/monkey/lang/eval"
)

// Eval evaluates one or more scripts as a single program and prints the
// final value.
type Eval struct {
	Scripts []string `arg:"" help:"Script files, bare script names, or '-' for stdin" name:"script" optional:""`
}

// Run executes the eval command.
//
// Scripts are deduplicated and concatenated in argument order, parsed as one
// program, and evaluated in a fresh environment. With no arguments the
// program is read from stdin. A runtime error result is reported as a
// command error so the process exits non-zero.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	scripts := e.Scripts
	if len(scripts) == 0 {
		scripts = []string{stdinSource}
	}

	dirs := scriptSearchDirs(ctx)

	resolved := make([]string, 0, len(scripts))

	for _, name := range scripts {
		path, ok := resolveScript(name, dirs)
		if !ok {
			return ErrScriptNotFound.
				With(slog.String("script", name))
		}

		resolved = append(resolved, path)
	}

	srcs := NewSourceFiles(resolved...)
	if srcs == nil {
		return ErrNoInput
	}

	result, err := lang.EvalReader(ctx, srcs)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	if errObj, ok := result.(*eval.Error); ok {
		return ErrRuntime.
			With(slog.String("message", errObj.Message))
	}

	if result != nil {
		fmt.Println(result.String())
	}

	return nil
}
