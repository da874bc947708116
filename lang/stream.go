package lang

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"slices"

	"github.com/klauspost/readahead"

	"github.com/ardnew/monkey/lang/ast"
)

// Stream provides streaming access to the statements and top-level bindings
// of one source input. It parses on demand and caches individual let
// statements by name, so repeated binding lookups never reparse.
type Stream struct {
	reader    io.Reader
	source    string
	sourceKey string
	metadata  *state
	cfg       config
}

// NewStream creates a streaming parser from an io.Reader.
// The reader will not be consumed until first statement access.
func NewStream(r io.Reader, opts ...Option) *Stream {
	var s Stream

	s.reader = r
	s.metadata = new(state)
	s.cfg = applyOptions(opts...)

	return &s
}

// NewStreamFromString creates a streaming parser from source text. Streams
// over identical source share one parse through the global registry.
func NewStreamFromString(source string, opts ...Option) *Stream {
	cfg := applyOptions(opts...)

	// Create source key (hash) for caching - using xxhash3 for performance
	_, _, sourceKey := sourceKeyOf(source, cfg)

	// Get or create metadata entry
	entry := new(state)
	value, _ := globalRegistry.LoadOrStore(sourceKey, entry)
	metadata, ok := value.(*state)
	if !ok {
		metadata = entry
	}

	return &Stream{
		source:    source,
		sourceKey: sourceKey,
		metadata:  metadata,
		cfg:       cfg,
	}
}

// ensureParsed ensures the source has been read and parsed.
// This extracts and caches individual bindings on first access.
func (s *Stream) ensureParsed() error {
	s.metadata.once.Do(func() {
		// Read source if from reader
		if s.source == "" && s.reader != nil {
			// Wrap reader with async read-ahead for concurrent I/O.
			ra := readahead.NewReader(s.reader)
			defer ra.Close()

			data, err := io.ReadAll(ra)
			if err != nil {
				s.metadata.err = ErrReadInput.Wrap(err).
					With(slog.String("source", "reader"))

				return
			}

			s.source = string(data)
			_, _, s.sourceKey = sourceKeyOf(s.source, s.cfg)
		}

		s.metadata.parse(context.Background(), s.sourceKey, s.source, s.cfg)
	})

	return s.metadata.err
}

// GetBinding retrieves a top-level let statement by its bound name.
// Returns an error if parsing fails or the name is not bound at top level.
func (s *Stream) GetBinding(name string) (*ast.LetStatement, error) {
	err := s.ensureParsed()
	if err != nil {
		return nil, err
	}

	cacheKey := s.sourceKey + ":" + name
	if value, ok := globalCache.Load(cacheKey); ok {
		if let, ok := value.(*ast.LetStatement); ok {
			return let, nil
		}
	}

	return nil, ErrBindingNotFound.
		With(slog.String("name", name))
}

// Bindings returns an iterator over the top-level let statements in source
// order. If parsing fails, the iterator yields no values.
func (s *Stream) Bindings() iter.Seq[*ast.LetStatement] {
	return func(yield func(*ast.LetStatement) bool) {
		err := s.ensureParsed()
		if err != nil {
			return
		}

		for _, name := range s.metadata.names {
			cacheKey := s.sourceKey + ":" + name
			if value, ok := globalCache.Load(cacheKey); ok {
				if let, ok := value.(*ast.LetStatement); ok {
					if !yield(let) {
						return
					}
				}
			}
		}
	}
}

// Statements returns an iterator over all top-level statements in source
// order. If parsing fails, the iterator yields no values.
func (s *Stream) Statements() iter.Seq[ast.Statement] {
	return func(yield func(ast.Statement) bool) {
		err := s.ensureParsed()
		if err != nil {
			return
		}

		for _, stmt := range s.metadata.statements {
			if !yield(stmt) {
				return
			}
		}
	}
}

// Program returns the complete parsed program. The wrapper is fresh but the
// statements are shared with the stream's cache; treat them as immutable.
func (s *Stream) Program() (*ast.Program, error) {
	err := s.ensureParsed()
	if err != nil {
		return nil, err
	}

	return &ast.Program{
		Statements: slices.Clone(s.metadata.statements),
	}, nil
}

// Functional-style interfaces for direct use without creating a Stream
// instance.

// BindingFrom retrieves a top-level let statement by name from an io.Reader.
func BindingFrom(r io.Reader, name string) (*ast.LetStatement, error) {
	return NewStream(r).GetBinding(name)
}

// StatementsFrom returns an iterator over all top-level statements from an
// io.Reader.
func StatementsFrom(r io.Reader) iter.Seq[ast.Statement] {
	return NewStream(r).Statements()
}
