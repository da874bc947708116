package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/monkey/lang/ast"
	"github.com/ardnew/monkey/lang/lexer"
	"github.com/ardnew/monkey/lang/parser"
)

// ParseString parses a program from source text.
//
// The parser records diagnostics instead of stopping at the first problem;
// if any were recorded, the partial tree is discarded and all diagnostics
// are returned together as a *ParseError. Callers that want the partial
// tree alongside its diagnostics use the parser package directly.
func ParseString(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	return parseProgram(ctx, source, applyOptions(opts...))
}

// parseProgram runs the lexer and parser over source with the effective
// configuration.
func parseProgram(ctx context.Context, source string, cfg config) (*ast.Program, error) {
	p := parser.New(
		lexer.New(source),
		parser.WithMaxDepth(cfg.maxNesting),
		parser.WithLogger(cfg.logger),
	)

	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return nil, NewParseError(errs, source)
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(program.Statements)))

	return program, nil
}
