package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

// TestSourceFmtValidSyntax tests that valid syntax is formatted correctly.
func TestSourceFmtValidSyntax(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "simple let",
			input:    "let x = 5",
			contains: "let x = 5;",
		},
		{
			name:     "grouping made explicit",
			input:    "1 + 2 * 3",
			contains: "(1 + (2 * 3))",
		},
		{
			name:     "multiple statements",
			input:    "let a = 1; let b = 2;",
			contains: "let a = 1;",
		},
		{
			name:     "function literal",
			input:    "let id = fn(x) { x }",
			contains: "let id = fn(x) { x };",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", tt.input)

			source := &Source{Script: script}

			var err error

			out := captureStdout(t, func() {
				err = source.Run(context.Background())
			})

			if err != nil {
				t.Fatalf("Source.Run() unexpected error = %v", err)
			}

			if !strings.Contains(out, tt.contains) {
				t.Errorf("Source.Run() output = %q, want to contain %q", out, tt.contains)
			}
		})
	}
}

// TestSourceFmtInvalidSyntax tests that invalid syntax produces parse errors.
func TestSourceFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "missing binding name",
			input: "let = 5",
		},
		{
			name:  "missing assign",
			input: "let x 5",
		},
		{
			name:  "unclosed condition",
			input: "if (true { 1 }",
		},
		{
			name:  "dangling operator",
			input: "1 +",
		},
		{
			name:  "invalid token",
			input: "let x = @invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", tt.input)

			source := &Source{Script: script}

			err := source.Run(context.Background())
			if err == nil {
				t.Error("Source.Run() expected error but got nil")
			}
		})
	}
}

// TestSourceFmtStdin tests reading from stdin.
func TestSourceFmtStdin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid from stdin",
			input:   "let x = 5",
			wantErr: false,
		},
		{
			name:    "invalid from stdin",
			input:   "let x 5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore stdin
			oldStdin := os.Stdin
			defer func() { os.Stdin = oldStdin }()

			// Create a pipe to simulate stdin
			r, w, err := os.Pipe()
			if err != nil {
				t.Fatal(err)
			}
			os.Stdin = r

			// Write input to pipe in goroutine
			go func() {
				defer w.Close()
				io.WriteString(w, tt.input)
			}()

			source := &Source{Script: "-"}

			var runErr error

			captureStdout(t, func() {
				runErr = source.Run(context.Background())
			})

			if (runErr != nil) != tt.wantErr {
				t.Errorf("Source.Run() error = %v, wantErr %v", runErr, tt.wantErr)
			}
		})
	}
}

// TestTokensFmtOutput tests the token stream listing.
func TestTokensFmtOutput(t *testing.T) {
	script := writeScript(t, t.TempDir(), "script.mky", "let x = 5;")

	tokens := &Tokens{Script: script}

	var err error

	out := captureStdout(t, func() {
		err = tokens.Run(context.Background())
	})

	if err != nil {
		t.Fatalf("Tokens.Run() unexpected error = %v", err)
	}

	for _, expected := range []string{
		"1:1\tLet",
		`Ident("x")`,
		"Assign",
		"Int(5)",
		"Semicolon",
		"Eof",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("Tokens.Run() output = %q, want to contain %q", out, expected)
		}
	}
}

// TestTokensFmtIllegalInput tests that the token listing reports illegal
// characters instead of failing.
func TestTokensFmtIllegalInput(t *testing.T) {
	script := writeScript(t, t.TempDir(), "script.mky", "let x = @")

	tokens := &Tokens{Script: script}

	var err error

	out := captureStdout(t, func() {
		err = tokens.Run(context.Background())
	})

	if err != nil {
		t.Fatalf("Tokens.Run() unexpected error = %v", err)
	}

	if !strings.Contains(out, "Illegal") {
		t.Errorf("Tokens.Run() output = %q, want to contain Illegal", out)
	}
}

// TestASTFmtInvalidSyntax tests that the tree format also catches parse
// errors.
func TestASTFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "missing assign",
			input:   "let x 5",
			wantErr: true,
		},
		{
			name:    "valid syntax",
			input:   "let x = 5",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", tt.input)

			ast := &AST{Script: script}

			var err error

			captureStdout(t, func() {
				err = ast.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("AST.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestASTFmtOutput tests the indented tree listing.
func TestASTFmtOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:  "let with infix value",
			input: "let x = 1 + 2;",
			contains: []string{
				"Let: x",
				"Infix: +",
				"Int: 1",
				"Int: 2",
			},
		},
		{
			name:  "conditional",
			input: "if (x < y) { x } else { y }",
			contains: []string{
				"If",
				"Condition:",
				"Infix: <",
				"Consequence:",
				"Alternative:",
				"Ident: x",
			},
		},
		{
			name:  "function call",
			input: "add(1, 2)",
			contains: []string{
				"Call",
				"Callee:",
				"Ident: add",
				"Arguments:",
				"Int: 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", tt.input)

			ast := &AST{Script: script}

			var err error

			out := captureStdout(t, func() {
				err = ast.Run(context.Background())
			})

			if err != nil {
				t.Fatalf("AST.Run() unexpected error = %v", err)
			}

			for _, expected := range tt.contains {
				if !strings.Contains(out, expected) {
					t.Errorf("AST.Run() output = %q, want to contain %q", out, expected)
				}
			}
		})
	}
}

// TestJSONFmtInvalidSyntax tests that JSON format also catches parse errors.
func TestJSONFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "missing assign",
			input:   "let x 5",
			wantErr: true,
		},
		{
			name:    "valid syntax",
			input:   "let x = 5",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", tt.input)

			json := &JSON{Indent: 2, Script: script}

			var err error

			captureStdout(t, func() {
				err = json.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("JSON.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestJSONFmtOutput tests the JSON structure with and without indentation.
func TestJSONFmtOutput(t *testing.T) {
	tests := []struct {
		name     string
		indent   int
		contains []string
	}{
		{
			name:   "indented",
			indent: 2,
			contains: []string{
				`"statements"`,
				`"kind": "let"`,
				`"name": "x"`,
				`"kind": "int"`,
			},
		},
		{
			name:   "compact",
			indent: 0,
			contains: []string{
				`"kind":"let"`,
				`"name":"x"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", "let x = 5;")

			json := &JSON{Indent: tt.indent, Script: script}

			var err error

			out := captureStdout(t, func() {
				err = json.Run(context.Background())
			})

			if err != nil {
				t.Fatalf("JSON.Run() unexpected error = %v", err)
			}

			for _, expected := range tt.contains {
				if !strings.Contains(out, expected) {
					t.Errorf("JSON.Run() output = %q, want to contain %q", out, expected)
				}
			}
		})
	}
}

// TestYAMLFmtInvalidSyntax tests that YAML format also catches parse errors.
func TestYAMLFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "missing assign",
			input:   "let x 5",
			wantErr: true,
		},
		{
			name:    "valid syntax",
			input:   "let x = 5",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", tt.input)

			yaml := &YAML{Indent: 2, Script: script}

			var err error

			captureStdout(t, func() {
				err = yaml.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("YAML.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestYAMLFmtOutput tests the YAML structure in block and flow styles.
func TestYAMLFmtOutput(t *testing.T) {
	tests := []struct {
		name     string
		indent   int
		contains []string
	}{
		{
			name:   "block style",
			indent: 2,
			contains: []string{
				"statements",
				"kind: let",
				"name: x",
			},
		},
		{
			name:   "flow style",
			indent: 0,
			contains: []string{
				"statements",
				"kind: let",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, t.TempDir(), "script.mky", "let x = 5;")

			yaml := &YAML{Indent: tt.indent, Script: script}

			var err error

			out := captureStdout(t, func() {
				err = yaml.Run(context.Background())
			})

			if err != nil {
				t.Fatalf("YAML.Run() unexpected error = %v", err)
			}

			for _, expected := range tt.contains {
				if !strings.Contains(out, expected) {
					t.Errorf("YAML.Run() output = %q, want to contain %q", out, expected)
				}
			}
		})
	}
}

// TestFmtScriptNotFound tests that an unresolvable script name fails before
// parsing.
func TestFmtScriptNotFound(t *testing.T) {
	source := &Source{Script: "no_such_script_xyz"}

	err := source.Run(context.Background())
	if err == nil {
		t.Fatal("Source.Run() expected error for missing script, got nil")
	}

	if !strings.Contains(err.Error(), "script not found") {
		t.Errorf("Source.Run() error = %v, want script not found", err)
	}
}
