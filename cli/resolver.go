package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/callcheck/cli/cmd"
)

// configLoader loads the configuration file at path with [resolve]. Kong
// reports loader errors as plain text, so the structured error is kept
// for [configLoader.failure].
type configLoader struct {
	path string
	err  error
}

func (c *configLoader) load(r io.Reader) (kong.Resolver, error) {
	res, err := resolve(r)
	if err != nil {
		var e *cmd.Error
		if !errors.As(err, &e) {
			e = cmd.ErrReadConfig.Wrap(err)
		}

		c.err = e.With(slog.String("file", c.path))

		return nil, c.err
	}

	return res, nil
}

// failure returns the structured configuration error behind err, if the
// loader produced one, or err itself.
func (c *configLoader) failure(err error) error {
	if c.err != nil {
		return c.err
	}

	return err
}

// resolve is a [kong.ConfigurationLoader] that reads flag values from a
// YAML configuration file:
//
//	log-level: debug
//	log:
//	  pretty: false
//	lib:
//	  - ~/.local/share/callcheck
//
// Nested mappings are joined to flag names with "-", so the two log
// settings above resolve --log-level and --log-pretty. Underscores may be
// used in place of hyphens. Command-line flags override file values.
//
// A file that cannot be parsed is reported as an error rather than
// silently ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cmd.ErrReadConfig.Wrap(err)
	}

	var doc map[string]any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, cmd.ErrReadConfig.Wrap(err)
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened configuration values.
type config map[string]any

// flatten stores every leaf of m under its hyphen-joined key path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if nested, ok := value.(map[string]any); ok {
			c.flatten(key, nested)

			continue
		}

		c[key] = flagValue(value)
	}
}

// flagValue converts a decoded YAML value to the textual form Kong parses.
// Sequences become comma-separated lists.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v

	case int:
		return strconv.Itoa(v)

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		items := make([]string, 0, len(v))

		for _, item := range v {
			items = append(items, fmt.Sprint(flagValue(item)))
		}

		return strings.Join(items, ",")

	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found: let Kong use defaults.
	return nil, nil
}
