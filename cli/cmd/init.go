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

	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// ignoredFlags are never written to the configuration file.
var ignoredFlags = []string{"help", "version", "force"}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := kongVar(ctx, ConfigIdentifier)
	if !ok {
		panic("internal error: configuration path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(configValues(ktx), yaml.Indent(2))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// configValues returns the current values of the application flags,
// followed by one section per command holding its flags.
func configValues(ktx *kong.Context) yaml.MapSlice {
	items := flagValues(ktx, ktx.Model.Flags)

	for _, child := range ktx.Model.Children {
		if child.Type != kong.CommandNode || child.Hidden {
			continue
		}

		if section := flagValues(ktx, child.Flags); len(section) > 0 {
			items = append(items, yaml.MapItem{Key: child.Name, Value: section})
		}
	}

	return items
}

func flagValues(ktx *kong.Context, flags []*kong.Flag) yaml.MapSlice {
	var items yaml.MapSlice

	for _, flag := range flags {
		if flag.Hidden || slices.Contains(ignoredFlags, flag.Name) ||
			strings.HasPrefix(flag.Name, profile.Tag) {
			continue
		}

		if val := configValue(ktx.FlagValue(flag)); val != nil {
			items = append(items, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return items
}

// configValue converts a flag value to its configuration file form, or nil
// if the value is empty.
func configValue(val any) any {
	if val == nil {
		return nil
	}

	v := reflect.ValueOf(val)

	switch v.Kind() {
	case reflect.String:
		if v.Len() == 0 {
			return nil
		}

		return v.String()

	case reflect.Bool:
		return v.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()

	case reflect.Float32, reflect.Float64:
		return v.Float()

	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}

		list := make([]any, 0, v.Len())
		for n := range v.Len() {
			if item := configValue(v.Index(n).Interface()); item != nil {
				list = append(list, item)
			}
		}

		return list

	default:
		return nil
	}
}
