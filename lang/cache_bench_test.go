package lang

import (
	"context"
	"strings"
	"testing"
)

const benchSource = `
let fib = fn(n) {
  if (n < 2) { n } else { fib(n - 1) + fib(n - 2) }
};
let makeAdder = fn(x) { fn(y) { x + y } };
let addTen = makeAdder(10);
addTen(fib(10))
`

func BenchmarkParseString(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := ParseString(ctx, benchSource)
		if err != nil {
			b.Fatalf("parse error: %v", err)
		}
	}
}

func BenchmarkParseReader_Warm(b *testing.B) {
	ctx := context.Background()

	ClearCache()

	// Prime the cache
	if _, err := ParseReader(ctx, strings.NewReader(benchSource)); err != nil {
		b.Fatalf("parse error: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := ParseReader(ctx, strings.NewReader(benchSource))
		if err != nil {
			b.Fatalf("parse error: %v", err)
		}
	}
}

func BenchmarkEvalString(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := EvalString(ctx, benchSource)
		if err != nil {
			b.Fatalf("eval error: %v", err)
		}
	}
}
