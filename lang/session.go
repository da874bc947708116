package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/monkey/lang/eval"
	"github.com/ardnew/monkey/log"
)

// Session evaluates successive programs against one persistent environment.
// Bindings made by an earlier Eval remain visible to every later Eval,
// which is what lets an interactive session build definitions line by line.
type Session struct {
	evaluator *eval.Evaluator
	logger    log.Logger
	cfg       config
}

// NewSession creates a Session. Unless WithEnvironment supplies one, the
// session starts from a fresh empty environment.
func NewSession(opts ...Option) *Session {
	cfg := applyOptions(opts...)

	env := cfg.env
	if env == nil {
		env = eval.NewEnvironment()
	}

	return &Session{
		evaluator: eval.New(env,
			eval.WithMaxDepth(cfg.maxCallDepth),
			eval.WithLogger(cfg.logger),
		),
		logger: cfg.logger,
		cfg:    cfg,
	}
}

// Eval parses and evaluates one source input against the session
// environment.
//
// A failed parse returns a *ParseError and leaves the environment
// untouched. Runtime errors are not Go errors: they come back as an
// *eval.Error result value, exactly as a program would observe them. A
// program that produces no value returns a nil result.
func (s *Session) Eval(ctx context.Context, source string) (eval.Object, error) {
	program, err := parseProgram(ctx, source, s.cfg)
	if err != nil {
		return nil, err
	}

	result := s.evaluator.Eval(program)

	s.logger.TraceContext(ctx, "session eval",
		slog.Int("statement_count", len(program.Statements)),
		slog.String("result_type", resultTypeName(result)),
	)

	return result, nil
}

// Environment returns the session's persistent environment.
func (s *Session) Environment() *eval.Environment {
	return s.evaluator.Environment()
}

// EvalString parses and evaluates source text in a fresh session.
func EvalString(
	ctx context.Context,
	source string,
	opts ...Option,
) (eval.Object, error) {
	return NewSession(opts...).Eval(ctx, source)
}

// EvalReader parses and evaluates a program from an io.Reader in a fresh
// session.
func EvalReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (eval.Object, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return EvalString(ctx, string(data), opts...)
}
