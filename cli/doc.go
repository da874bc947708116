// Package cli contains the command line interface for monkey.
//
// # Usage
//
// Running monkey with no arguments starts an interactive session:
//
//	monkey
//
// Scripts are evaluated with the eval command, which accepts file paths,
// bare script names resolved against the script search path, or '-' for
// stdin:
//
//	monkey eval fib.mky
//	echo 'let x = 5; x * x' | monkey eval
//
// The fmt command renders a script in several representations:
//
//	monkey fmt source script.mky
//	monkey fmt tokens script.mky
//	monkey fmt ast script.mky
//	monkey fmt json --indent=4 script.mky
//	monkey fmt yaml script.mky
//
// # Parser
//
// The package uses the lang package's streaming parser with both method-based
// and functional interfaces for efficient access to top-level bindings:
//
// Method-based interface (recommended):
//   - [lang.NewStream]: Create a parser from an io.Reader
//   - [lang.NewStreamFromString]: Create a parser from a string
//   - [lang.Stream.GetBinding]: Retrieve a specific let binding by name
//   - [lang.Stream.Bindings]: Iterate over all let bindings using iter.Seq
//   - [lang.Stream.Program]: Access the complete parsed program
//
// Functional interface:
//   - [lang.BindingFrom]: Directly retrieve a binding from an io.Reader
//   - [lang.StatementsFrom]: Get an iterator over statements from an io.Reader
//
// Utility:
//   - [lang.ClearCache]: Clear all cached programs (useful for testing)
//
// The parser caches parsed programs by source content, ensuring identical
// content is parsed only once even when accessed from multiple goroutines.
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// YAML config files and converts them to Kong flag values. A default config
// file is written by the init command.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include callsite information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//		go build -tags pprof -o monkey .
//
//	  - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//	    heap, mem, mutex, thread, trace)
//	  - --pprof-dir: Set profile output directory (default:
//
// ~/.cache/monkey/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	monkey --log-level=debug --pprof-mode=cpu
//
//	# Text format with heap profiling
//	monkey eval --log-format=text --pprof-mode=heap script.mky
//
//	# Custom profile directory
//	monkey --pprof-mode=allocs --pprof-dir=/tmp/profiles
package cli
