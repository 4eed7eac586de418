package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler.
// Dictionaries render as JSON objects preserving key insertion order, and
// string values pass valid UTF-8 through without escaping non-ASCII runes.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if err := appendJSON(&buf, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// appendJSON writes the compact JSON encoding of v to buf.
func appendJSON(buf *bytes.Buffer, v Value) error {
	switch v.Type {
	case TypeInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))

	case TypeText:
		return appendQuoted(buf, v.Text)

	case TypeArray:
		buf.WriteByte('[')

		for i, elem := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := appendJSON(buf, elem); err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	case TypeDict:
		buf.WriteByte('{')

		for i, field := range v.Dict {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := appendQuoted(buf, field.Key); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := appendJSON(buf, field.Value); err != nil {
				return err
			}
		}

		buf.WriteByte('}')

	default:
		return fmt.Errorf("cannot marshal value of type %s", v.Type)
	}

	return nil
}

// appendQuoted writes s as a JSON string without HTML escaping, leaving
// non-ASCII runes intact.
func appendQuoted(buf *bytes.Buffer, s string) error {
	var out bytes.Buffer

	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	// Encode appends a trailing newline.
	buf.Write(bytes.TrimRight(out.Bytes(), "\n"))

	return nil
}

// EncodeJSON writes the JSON encoding of v to w followed by a newline.
// An indent of zero produces compact output.
func (v Value) EncodeJSON(w io.Writer, indent int) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}

	if indent > 0 {
		var buf bytes.Buffer

		err = json.Indent(&buf, data, "", strings.Repeat(" ", indent))
		if err != nil {
			return err
		}

		data = buf.Bytes()
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// EncodeYAML writes the YAML encoding of v to w.
// Dictionaries preserve key insertion order.
func (v Value) EncodeYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// ToNative converts a Value to its native Go representation: int64, string,
// []any, or [yaml.MapSlice] for dictionaries (an ordered map).
func (v Value) ToNative() any {
	switch v.Type {
	case TypeInt:
		return v.Int

	case TypeText:
		return v.Text

	case TypeArray:
		out := make([]any, len(v.Array))
		for i, elem := range v.Array {
			out[i] = elem.ToNative()
		}

		return out

	case TypeDict:
		out := make(yaml.MapSlice, len(v.Dict))
		for i, field := range v.Dict {
			out[i] = yaml.MapItem{
				Key:   field.Key,
				Value: field.Value.ToNative(),
			}
		}

		return out

	default:
		return nil
	}
}
