package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/monkey/lang/ast"
	"github.com/ardnew/monkey/lang/parser"
)

var (
	// globalCache stores top-level let statements keyed by
	// (source_hash:name). This allows binding lookup without keeping full
	// programs in memory.
	globalCache sync.Map

	// globalRegistry tracks source metadata by source hash.
	globalRegistry sync.Map
)

// state tracks parsing state and top-level results for one source.
type state struct {
	once       sync.Once
	statements []ast.Statement
	names      []string // top-level let binding names, in order
	err        error
}

// parse parses source and records the results. It runs at most once per
// state; wrap calls in state.once.
func (s *state) parse(ctx context.Context, sourceKey, source string, cfg config) {
	program, err := parseProgram(ctx, source, cfg)
	if err != nil {
		s.err = WrapError(err).With(
			slog.Int("source_length", len(source)),
		)

		return
	}

	s.statements = program.Statements

	// Cache each top-level let statement individually by name
	for _, stmt := range program.Statements {
		let, ok := stmt.(*ast.LetStatement)
		if !ok || let.Name == nil {
			continue
		}

		s.names = append(s.names, let.Name.Name)
		globalCache.Store(sourceKey+":"+let.Name.Name, let)
	}
}

// hashOptions encodes the parse-relevant options using gob and hashes with
// xxh3. Returns a hash that uniquely identifies the options configuration.
func hashOptions(cfg config) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	// Encode relevant options fields
	_ = enc.Encode(cfg.maxNesting)

	return xxh3.Hash(buf.Bytes())
}

// sourceKeyOf derives the cache key for a source under the given options.
func sourceKeyOf(source string, cfg config) (sourceHash, optsHash uint64, key string) {
	sourceHash = xxh3.Hash([]byte(source))
	optsHash = hashOptions(cfg)

	return sourceHash, optsHash, strconv.FormatUint(sourceHash^optsHash, 36)
}

// ParseReader parses a program from an io.Reader.
// The reader content is cached after first parse for efficiency.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*ast.Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	// This allows data to be pre-fetched while we process previous chunks.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	cfg := applyOptions(opts...)

	cfg.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	// If options differ from defaults, bypass cache
	if cfg.maxNesting != parser.DefaultMaxDepth {
		cfg.logger.TraceContext(
			ctx,
			"cache bypass",
			slog.Int("max_nesting", cfg.maxNesting),
		)

		return parseProgram(ctx, string(data), cfg)
	}

	return parseCached(ctx, string(data), cfg)
}

// parseCached parses a string with caching. Repeated parses of identical
// source under identical options share one underlying statement list; the
// returned Program wrapper is fresh each time.
func parseCached(
	ctx context.Context,
	source string,
	cfg config,
) (*ast.Program, error) {
	// Generate source key (hash) for caching - using xxhash3 for performance
	// Combine source hash with options hash for cache key uniqueness
	sourceHash, optsHash, sourceKey := sourceKeyOf(source, cfg)

	// Get or create metadata entry
	entry := new(state)
	value, cacheHit := globalRegistry.LoadOrStore(sourceKey, entry)

	metadata, ok := value.(*state)
	if !ok {
		return nil, ErrCacheState.
			With(slog.String("issue", "invalid metadata type in cache"))
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	// Ensure the source has been parsed
	metadata.once.Do(func() {
		metadata.parse(ctx, sourceKey, source, cfg)
	})

	if metadata.err != nil {
		return nil, metadata.err
	}

	return &ast.Program{
		Statements: slices.Clone(metadata.statements),
	}, nil
}

// ClearCache removes all cached statements and source metadata.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
	globalRegistry = sync.Map{}
}
