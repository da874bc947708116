package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_ReturnsConfig(t *testing.T) {
	config := `
log-level: debug
log-format: text
`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Verify values by creating mock flags and using Resolve
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "debug" {
		t.Errorf("expected log-level=debug, got %v", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log-format"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "text" {
		t.Errorf("expected log-format=text, got %v", val2)
	}
}

func TestResolve_UnderscoreHyphenMapping(t *testing.T) {
	config := `log_level: debug`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Test underscore version (as stored in config)
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	// Test hyphen version (should also work via underscore mapping)
	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "debug" {
		t.Errorf("expected log-level=debug, got %v", val2)
	}
}

func TestResolve_NumbersAsStrings(t *testing.T) {
	config := `
indent: 4
ratio: 1.5
`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Kong's flag parser expects numeric values as strings
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "indent"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "4" {
		t.Errorf("expected indent=%q, got %v (%T)", "4", val, val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "ratio"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "1.5" {
		t.Errorf("expected ratio=%q, got %v (%T)", "1.5", val2, val2)
	}
}

func TestResolve_BoolPassthrough(t *testing.T) {
	config := `log-pretty: true`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-pretty"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != true {
		t.Errorf("expected log-pretty=true, got %v (%T)", val, val)
	}
}

func TestResolve_MissingKey(t *testing.T) {
	config := `log-level: debug`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Missing keys resolve to nil so Kong falls back to defaults
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-format"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil for missing key, got %v", val)
	}
}

func TestResolve_MalformedYAML(t *testing.T) {
	config := "log-level: [unclosed\n\tnot: yaml: at: all"

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve should not fail on malformed input: %v", err)
	}

	// Malformed input degrades to an empty configuration
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil from empty config, got %v", val)
	}
}

func TestResolve_ReadError(t *testing.T) {
	errReader := &errorReader{err: bytes.ErrTooLarge}

	resolver, err := resolve(errReader)
	if err != nil {
		t.Fatalf("resolve should not fail on read error: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil from empty config, got %v", val)
	}
}

func TestResolve_Validate(t *testing.T) {
	resolver, err := resolve(strings.NewReader(`log-level: debug`))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if err := resolver.Validate(nil); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

// errorReader is a reader that always returns an error.
type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

// BenchmarkResolve measures config loading and flag resolution together.
func BenchmarkResolve(b *testing.B) {
	config := `
log-level: debug
log-format: json
log-pretty: true
indent: 2
`
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resolver, err := resolve(strings.NewReader(config))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := resolver.Resolve(nil, nil, mockFlag); err != nil {
			b.Fatal(err)
		}
	}
}
