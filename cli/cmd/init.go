package cmd

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/callcheck/log"
	"github.com/ardnew/callcheck/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, i.settings(ktx), yaml.Indent(2))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrYAMLMarshal.Wrap(err))
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// settings returns the current value of every configurable flag, keyed by
// flag name. Help, version and profiling flags are not configurable.
func (i *Init) settings(ktx *kong.Context) yaml.MapSlice {
	prefixIgnore := []string{"help", "version", profile.Tag}

	var out yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := settingValue(ktx.FlagValue(flag)); val != nil {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return out
}

// settingValue returns v as written to the configuration file, or nil when
// the flag is unset. Named string types such as log levels are written as
// plain strings.
func settingValue(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}

		return rv.String()

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}

		out := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			if elem := settingValue(rv.Index(i).Interface()); elem != nil {
				out = append(out, elem)
			}
		}

		return out

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v

	default:
		return nil
	}
}
