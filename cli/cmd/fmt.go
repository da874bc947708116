package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/monkey/lang"
)

// Fmt reads a script, parses it, and prints one representation of the
// parsed program.
type Fmt struct {
	Source Source `cmd:"" default:"withargs" help:"Print the program as canonical source (default)."`
	Tokens Tokens `cmd:""                    help:"Print the lexer token stream."`
	AST    AST    `cmd:""                    help:"Print the abstract syntax tree."`
	JSON   JSON   `cmd:""                    help:"Print the program as JSON."`
	YAML   YAML   `cmd:""                    help:"Print the program as YAML."`
}

// Source prints the parsed program as canonical source text.
type Source struct {
	Script string `arg:"" default:"-" help:"Script file, bare script name, or '-' for stdin." name:"script"`
}

// Run executes the source command.
func (f *Source) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openScript(ctx, f.Script)
	if err != nil {
		return err
	}
	defer file.Close()

	program, err := lang.ParseReader(ctx, file)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "source"))
	}

	return lang.FormatSource(ctx, os.Stdout, program)
}

// Tokens prints the lexer token stream, one token per line.
type Tokens struct {
	Script string `arg:"" default:"-" help:"Script file, bare script name, or '-' for stdin." name:"script"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openScript(ctx, t.Script)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return lang.ErrReadInput.Wrap(err).
			With(slog.String("format", "tokens"))
	}

	return lang.FormatTokens(ctx, os.Stdout, string(data))
}

// AST prints an indented structural view of the abstract syntax tree.
type AST struct {
	Script string `arg:"" default:"-" help:"Script file, bare script name, or '-' for stdin." name:"script"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openScript(ctx, a.Script)
	if err != nil {
		return err
	}
	defer file.Close()

	program, err := lang.ParseReader(ctx, file)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "ast"))
	}

	lang.PrintTree(os.Stdout, program)

	return nil
}

// JSON prints the parsed program as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Script string `arg:"" default:"-" help:"Script file, bare script name, or '-' for stdin." name:"script"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openScript(ctx, j.Script)
	if err != nil {
		return err
	}
	defer file.Close()

	program, err := lang.ParseReader(ctx, file)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "json"))
	}

	return lang.FormatJSON(ctx, os.Stdout, program, j.Indent)
}

// YAML prints the parsed program as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Script string `arg:"" default:"-" help:"Script file, bare script name, or '-' for stdin." name:"script"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openScript(ctx, y.Script)
	if err != nil {
		return err
	}
	defer file.Close()

	program, err := lang.ParseReader(ctx, file)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return lang.FormatYAML(ctx, os.Stdout, program, y.Indent)
}
