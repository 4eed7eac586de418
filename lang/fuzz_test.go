package lang_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/ardnew/binconf/lang"
)

// FuzzTranslate exercises the full pipeline with arbitrary inputs.
// Translation must never panic, and any value it accepts must survive
// marshaling and a format round trip.
func FuzzTranslate(f *testing.F) {
	// Seed corpus with known valid and near-valid inputs.
	f.Add("0b1010")
	f.Add("[[hello]]")
	f.Add("array()")
	f.Add("array(0b1, 0b10)")
	f.Add("@{ }")
	f.Add("@{ port = 0b111111011000; host = [[localhost]]; }")
	f.Add("(def x 0b1); $x$")
	f.Add("(def x 0b1); (def y $x$); array($x$, $y$)")
	f.Add("@{ nested = @{ deep = array(@{ k = [[v]]; }); }; }")
	f.Add("$undefined$")
	f.Add("0b")
	f.Add("[[unterminated")
	f.Add("@{ a = 0b1 }")
	f.Add("0b1 0b1")
	f.Add("{}")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		val, err := lang.Translate(t.Context(), input)
		if err != nil {
			// Rejected input; the error must still render.
			if err.Error() == "" {
				t.Errorf("empty error message for input %q", input)
			}

			return
		}

		data, err := json.Marshal(val)
		if err != nil {
			t.Fatalf("accepted value failed to marshal: %v", err)
		}

		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("marshaled output is not valid JSON: %s", data)
		}

		// Canonical formatting must re-translate to the same value.
		var buf bytes.Buffer
		if err := val.Format(&buf, 2); err != nil {
			t.Fatalf("accepted value failed to format: %v", err)
		}

		reval, err := lang.Translate(t.Context(), buf.String())
		if err != nil {
			t.Fatalf(
				"formatted output %q does not re-translate: %v",
				buf.String(), err,
			)
		}

		redata, err := json.Marshal(reval)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(data, redata) {
			t.Errorf("format round trip changed value: %s != %s", data, redata)
		}
	})
}
