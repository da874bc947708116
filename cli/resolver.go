package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses config files written in
// YAML, the format produced by the init command.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The YAML document is interpreted as follows:
//   - The top-level mapping becomes a flat configuration map
//   - Flag names with hyphens (e.g., "log-level") may use underscores
//     in the config file (e.g., "log_level")
//   - Numbers are converted to strings for Kong's flag parser
//   - Unparseable files resolve to an empty configuration
//
// Example config file:
//
//	log-level: debug
//	log-format: json
//	log-pretty: true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		// Unreadable config - return empty config
		return config{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// Parse error - return empty config
		return config{}, nil
	}

	values := make(map[string]any, len(raw))
	for key, val := range raw {
		// Kong requires numbers as strings for parsing
		switch num := val.(type) {
		case int:
			values[key] = strconv.Itoa(num)
		case int64:
			values[key] = strconv.FormatInt(num, 10)
		case uint64:
			values[key] = strconv.FormatUint(num, 10)
		case float64:
			values[key] = strconv.FormatFloat(num, 'f', -1, 64)
		default:
			values[key] = val
		}
	}

	return config(values), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
