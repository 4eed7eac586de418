package lang_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ardnew/binconf/lang"
)

func format(t *testing.T, v lang.Value, indent int) string {
	t.Helper()

	var buf bytes.Buffer
	if err := v.Format(&buf, indent); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	return buf.String()
}

func TestFormatScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  lang.Value
		want string
	}{
		{"int", lang.IntValue(4056), "0b111111011000\n"},
		{"zero", lang.IntValue(0), "0b0\n"},
		{"text", lang.TextValue("localhost"), "[[localhost]]\n"},
		{"empty text", lang.TextValue(""), "[[]]\n"},
		{"empty array", lang.ArrayValue(), "array()\n"},
		{
			"array",
			lang.ArrayValue(lang.IntValue(1), lang.TextValue("x")),
			"array(0b1, [[x]])\n",
		},
		{"empty dict", lang.DictValue(), "@{ }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := format(t, tt.val, 2); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDictIndented(t *testing.T) {
	t.Parallel()

	val := lang.DictValue(
		lang.Field{Key: "port", Value: lang.IntValue(1)},
		lang.Field{Key: "inner", Value: lang.DictValue(
			lang.Field{Key: "name", Value: lang.TextValue("x")},
		)},
	)

	want := "@{\n" +
		"  port = 0b1;\n" +
		"  inner = @{\n" +
		"    name = [[x]];\n" +
		"  };\n" +
		"}\n"

	if got := format(t, val, 2); got != want {
		t.Errorf("Format:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatDictCompact(t *testing.T) {
	t.Parallel()

	val := lang.DictValue(
		lang.Field{Key: "a", Value: lang.IntValue(1)},
		lang.Field{Key: "b", Value: lang.TextValue("x")},
	)

	want := "@{ a = 0b1; b = [[x]]; }\n"
	if got := format(t, val, 0); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"0b101",
		"[[with spaces]]",
		"array(0b1, array([[nested]]), @{ k = 0b0; })",
		"@{ a = 0b1; b = [[x]]; c = @{ d = array(); }; }",
	}

	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			val, err := lang.Translate(t.Context(), src)
			if err != nil {
				t.Fatalf("Translate(%q) failed: %v", src, err)
			}

			reval, err := lang.Translate(t.Context(), format(t, val, 2))
			if err != nil {
				t.Fatalf("formatted output does not re-translate: %v", err)
			}

			a, err := json.Marshal(val)
			if err != nil {
				t.Fatal(err)
			}

			b, err := json.Marshal(reval)
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(a, b) {
				t.Errorf("round trip changed value: %s != %s", a, b)
			}
		})
	}
}
