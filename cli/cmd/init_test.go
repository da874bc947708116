package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr bool
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil, // no pre-existing file
			wantErr: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				// Create existing file
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				// Create existing file
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true, // should fail because file exists
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			// Run setup if provided
			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			// Create a Kong context with vars
			var cli struct{}
			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			// Create context with kong context
			ctx := WithContext(context.Background(), kctx)

			// Run init command
			initCmd := &Init{Force: tt.force}
			err = initCmd.Run(ctx)

			if (err != nil) != tt.wantErr {
				t.Errorf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if !errors.Is(err, ErrFileExists) {
					t.Errorf("Init.Run() error = %v, want wrapped %v", err, ErrFileExists)
				}
				return
			}

			// Verify file was created if no error expected
			if _, err := os.Stat(confPath); os.IsNotExist(err) {
				t.Error("Init.Run() did not create config file")
			}

			// Verify file content is valid YAML
			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var decoded map[string]any
			if err := yaml.Unmarshal(content, &decoded); err != nil {
				t.Errorf("Generated config is not valid YAML: %v", err)
			}
		})
	}
}

// TestInitBuildConfig tests that buildConfig maps flag values by flag name.
func TestInitBuildConfig(t *testing.T) {
	t.Parallel()

	// Create a minimal Kong context with some flags
	var cli struct {
		Verbose bool   `name:"verbose" help:"Enable verbose output"`
		Output  string `name:"output" help:"Output file"`
		Count   int    `name:"count" help:"Number of items"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	// Parse with some values
	kctx, err := parser.Parse([]string{"--verbose", "--output=test.txt", "--count=5"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	initCmd := &Init{}
	values := initCmd.buildConfig(ctx)

	if values == nil {
		t.Fatal("buildConfig() returned nil")
	}

	if v, ok := values["verbose"]; !ok || v != true {
		t.Errorf("buildConfig()[verbose] = %v, want true", v)
	}

	if v, ok := values["output"]; !ok || v != "test.txt" {
		t.Errorf("buildConfig()[output] = %v, want test.txt", v)
	}

	if v, ok := values["count"]; !ok || v != 5 {
		t.Errorf("buildConfig()[count] = %v, want 5", v)
	}

	// The implicit help flag must not leak into the config.
	if _, ok := values["help"]; ok {
		t.Error("buildConfig() included help flag")
	}
}

// TestInitBuildConfigSkipsEmpty tests that unset string flags are omitted.
func TestInitBuildConfigSkipsEmpty(t *testing.T) {
	t.Parallel()

	var cli struct {
		Output string   `name:"output" help:"Output file"`
		Tags   []string `name:"tags" help:"Tag list"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	values := (&Init{}).buildConfig(ctx)

	if _, ok := values["output"]; ok {
		t.Error("buildConfig() included empty string flag")
	}

	if _, ok := values["tags"]; ok {
		t.Error("buildConfig() included empty slice flag")
	}
}

// TestInitWithInvalidPath tests init with an invalid file path.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	// Use an invalid path (directory that doesn't exist)
	invalidPath := filepath.Join(t.TempDir(), "nonexistent", "config.yaml")

	// Create a Kong context with vars
	var cli struct{}
	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: invalidPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	// Run init command
	initCmd := &Init{Force: false}
	err = initCmd.Run(ctx)

	// Should fail because directory doesn't exist
	if err == nil {
		t.Error("Init.Run() expected error for invalid path, got nil")
	}
}

// TestInitRoundTrip tests that a generated file resolves the same flag values
// it was built from.
func TestInitRoundTrip(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "config.yaml")

	var cli struct {
		LogLevel  string `name:"log-level" default:"info" help:"Log level"`
		LogFormat string `name:"log-format" default:"json" help:"Log format"`
	}
	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: confPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{"--log-level=debug"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	if err := (&Init{}).Run(ctx); err != nil {
		t.Fatalf("Init.Run() unexpected error = %v", err)
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("Generated config is not valid YAML: %v", err)
	}

	if v, ok := decoded["log-level"]; !ok || v != "debug" {
		t.Errorf("decoded[log-level] = %v, want debug", v)
	}

	if v, ok := decoded["log-format"]; !ok || v != "json" {
		t.Errorf("decoded[log-format] = %v, want json", v)
	}

	output := string(content)

	// Verify proper indentation (should be 2 spaces by default)
	if !strings.Contains(output, ":") {
		t.Errorf("Output missing key separators, got: %s", output)
	}
}
