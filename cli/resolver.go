package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/pkg"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Top-level keys set application flags. A mapping named after a command
// sets the flags of that command and takes precedence over top-level keys:
//
//	log-level: debug
//	env:
//	  out-dir: src
//	  format: false
//
// Keys may use underscores in place of hyphens. Command-line flags override
// configuration values. A malformed file is logged and ignored.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	err := yaml.NewDecoder(r).Decode(&m)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn("ignoring configuration file",
			slog.Any("error", pkg.ErrYAMLDecode.Wrap(err)))

		return config{}, nil
	}

	return config(m), nil
}

// config implements [kong.Resolver] for decoded YAML configuration.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := r[parent.Command.Name].(map[string]any); ok {
			if v, ok := lookup(section, flag.Name); ok {
				return v, nil
			}
		}
	}

	if v, ok := lookup(r, flag.Name); ok {
		return v, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// lookup returns the value of the flag name in m, trying the hyphenated
// name first and then its underscore variant.
func lookup(m map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if v, ok := m[key]; ok && v != nil {
			return normalize(v), true
		}
	}

	return nil, false
}

// normalize converts YAML numbers to strings, which Kong parses with the
// mapper of the flag type.
func normalize(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = normalize(e)
		}

		return list
	default:
		return v
	}
}
