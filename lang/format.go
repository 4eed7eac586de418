package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format writes v in canonical source syntax to w, followed by a newline.
// An indent of zero renders everything on a single line; otherwise nested
// dictionaries are indented by that many spaces per depth.
//
// Constant definitions do not survive translation, so formatted output is
// always a single self-contained value.
func (v Value) Format(w io.Writer, indent int) error {
	if err := formatValue(w, v, indent, 0); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)

	return err
}

func formatValue(w io.Writer, v Value, indent, depth int) error {
	switch v.Type {
	case TypeInt:
		_, err := fmt.Fprint(w, "0b", strconv.FormatInt(v.Int, 2))

		return err

	case TypeText:
		_, err := fmt.Fprint(w, "[[", v.Text, "]]")

		return err

	case TypeArray:
		return formatArray(w, v, indent, depth)

	case TypeDict:
		return formatDict(w, v, indent, depth)

	default:
		return fmt.Errorf("cannot format value of type %s", v.Type)
	}
}

// formatArray renders array(...) with elements on one line.
func formatArray(w io.Writer, v Value, indent, depth int) error {
	if _, err := fmt.Fprint(w, "array("); err != nil {
		return err
	}

	for i, elem := range v.Array {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return err
			}
		}

		if err := formatValue(w, elem, indent, depth); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, ")")

	return err
}

// formatDict renders @{ ... } with one field per line when indenting.
func formatDict(w io.Writer, v Value, indent, depth int) error {
	if len(v.Dict) == 0 {
		_, err := fmt.Fprint(w, "@{ }")

		return err
	}

	if _, err := fmt.Fprint(w, "@{"); err != nil {
		return err
	}

	pad, closePad := " ", " "
	if indent > 0 {
		pad = "\n" + strings.Repeat(" ", (depth+1)*indent)
		closePad = "\n" + strings.Repeat(" ", depth*indent)
	}

	for _, field := range v.Dict {
		if _, err := fmt.Fprint(w, pad, field.Key, " = "); err != nil {
			return err
		}

		if err := formatValue(w, field.Value, indent, depth+1); err != nil {
			return err
		}

		if _, err := fmt.Fprint(w, ";"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, closePad, "}")

	return err
}
