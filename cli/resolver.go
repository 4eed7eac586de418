package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/binconf/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the binconf language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.bc")
//
// The root value of the config file must be a dictionary. Its keys map to
// flag names, where flag names with hyphens (e.g., "log-level") may use
// underscores in the config file (e.g., "log_level"). Nested dictionaries
// and arrays convert to objects and arrays, and numbers must be written as
// binary literals.
//
// Example config file:
//
//	@{
//	  log_level  = [[debug]];
//	  log_format = [[json]];
//	  indent     = 0b100;
//	}
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--indent=4
//
// Command-line flags override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		val, err := lang.Translate(ctx, string(src))
		if err != nil {
			// Unparsable config file - fall back to flag defaults
			return config{}, nil
		}

		if val.Type != lang.TypeDict {
			// Root is not a dictionary - fall back to flag defaults
			return config{}, nil
		}

		return config(dictToMap(val.Dict)), nil
	}
}

// config implements [kong.Resolver] for binconf language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// The config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but binconf identifiers
	// only allow underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	underscoreName := strings.ReplaceAll(flag.Name, "-", "_")
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - let Kong use defaults
	return nil, nil
}

// dictToMap converts dictionary fields to a native map representation.
func dictToMap(fields []lang.Field) map[string]any {
	result := make(map[string]any, len(fields))

	for _, field := range fields {
		result[field.Key] = resolverValue(field.Value)
	}

	return result
}

// resolverValue converts a translated value to the representation Kong
// expects from a resolver. Kong requires numbers as strings for parsing.
func resolverValue(v lang.Value) any {
	switch v.Type {
	case lang.TypeInt:
		return strconv.FormatInt(v.Int, 10)

	case lang.TypeText:
		return v.Text

	case lang.TypeArray:
		elems := make([]any, len(v.Array))
		for i, e := range v.Array {
			elems[i] = resolverValue(e)
		}

		return elems

	case lang.TypeDict:
		return dictToMap(v.Dict)

	default:
		return nil
	}
}
