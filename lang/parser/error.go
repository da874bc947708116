package parser

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/monkey/lang/token"
)

// ErrorKind classifies parser diagnostics.
type ErrorKind int

const (
	// UnexpectedToken reports a failed expected-token check: the next token
	// was not the one the grammar requires.
	UnexpectedToken ErrorKind = iota

	// NestingTooDeep reports an expression nested beyond the parser's
	// configured depth bound.
	NestingTooDeep
)

// String returns the display name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "Unexpected Token"

	case NestingTooDeep:
		return "Nesting Too Deep"

	default:
		return "Unknown"
	}
}

// Error is a single parser diagnostic. Parsing never stops at the first
// diagnostic; the parser accumulates one Error per failed construct and
// resumes at the next token.
type Error struct {
	Got      token.Token    // observed token (UnexpectedToken)
	Pos      token.Position // source position of the diagnostic
	Expected token.Kind     // required token kind (UnexpectedToken)
	Depth    int            // configured bound (NestingTooDeep)
	Kind     ErrorKind
}

// Message returns the diagnostic text without the kind prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case NestingTooDeep:
		return "expression nesting exceeds " + strconv.Itoa(e.Depth) + " levels"

	default:
		return "expected next token to be " + e.Expected.String() +
			", got " + e.Got.String() + " instead"
	}
}

// Error implements the error interface as "<kind>: <message>".
func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message()
}

// String returns the same form as Error.
func (e *Error) String() string { return e.Error() }

// LogValue implements slog.LogValuer for structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	}

	switch e.Kind {
	case NestingTooDeep:
		attrs = append(attrs, slog.Int("depth", e.Depth))

	default:
		attrs = append(attrs,
			slog.String("expected", e.Expected.String()),
			slog.String("got", e.Got.String()),
		)
	}

	return slog.GroupValue(attrs...)
}
