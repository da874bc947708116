package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/monkey/cli/cmd/repl"
	"github.com/ardnew/monkey/log"
)

// Repl starts an interactive read-eval-print loop.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	// History persists under the cache directory when it is known.
	var dir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		dir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, dir, log.With(slog.String("component", "repl")))
}
