package lang_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/binconf/lang"
)

func TestMarshalJSONPreservesOrder(t *testing.T) {
	t.Parallel()

	val := lang.DictValue(
		lang.Field{Key: "zebra", Value: lang.IntValue(1)},
		lang.Field{Key: "apple", Value: lang.IntValue(2)},
		lang.Field{Key: "mango", Value: lang.IntValue(3)},
	)

	data, err := json.Marshal(val)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"zebra":1,"apple":2,"mango":3}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}

func TestMarshalJSONNoHTMLEscaping(t *testing.T) {
	t.Parallel()

	val := lang.TextValue(`a <b> & "c"`)

	data, err := json.Marshal(val)
	if err != nil {
		t.Fatal(err)
	}

	out := string(data)
	if !strings.Contains(out, `<b>`) || !strings.Contains(out, `&`) {
		t.Errorf("HTML characters escaped: %s", out)
	}

	if strings.Contains(out, `\u00`) {
		t.Errorf("unexpected unicode escapes: %s", out)
	}

	if !strings.Contains(out, `\"c\"`) {
		t.Errorf("quote not escaped: %s", out)
	}
}

func TestEncodeJSONIndented(t *testing.T) {
	t.Parallel()

	val, err := lang.Translate(t.Context(), `
	@{
	  port = 0b111111011000;
	  host = [[localhost]];
	}
	`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := val.EncodeJSON(&buf, 2); err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"port\": 4056,\n  \"host\": \"localhost\"\n}\n"
	if buf.String() != want {
		t.Errorf("EncodeJSON output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEncodeJSONCompact(t *testing.T) {
	t.Parallel()

	val := lang.ArrayValue(lang.IntValue(1), lang.TextValue("x"))

	var buf bytes.Buffer
	if err := val.EncodeJSON(&buf, 0); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "[1,\"x\"]\n" {
		t.Errorf("EncodeJSON compact = %q", got)
	}
}

func TestEncodeYAMLPreservesOrder(t *testing.T) {
	t.Parallel()

	val, err := lang.Translate(t.Context(), `
	@{
	  zebra = 0b1;
	  apple = array([[x]], [[y]]);
	  mango = @{ ripe = 0b1; };
	}
	`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := val.EncodeYAML(t.Context(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	zebra := strings.Index(out, "zebra")
	apple := strings.Index(out, "apple")
	mango := strings.Index(out, "mango")

	if zebra < 0 || apple < 0 || mango < 0 {
		t.Fatalf("missing keys in YAML output:\n%s", out)
	}

	if !(zebra < apple && apple < mango) {
		t.Errorf("YAML keys out of order:\n%s", out)
	}
}

func TestToNative(t *testing.T) {
	t.Parallel()

	val := lang.DictValue(
		lang.Field{Key: "n", Value: lang.IntValue(7)},
		lang.Field{Key: "s", Value: lang.TextValue("txt")},
		lang.Field{Key: "a", Value: lang.ArrayValue(lang.IntValue(1))},
	)

	native, ok := val.ToNative().(yaml.MapSlice)
	if !ok {
		t.Fatalf("ToNative() type %T, want yaml.MapSlice", val.ToNative())
	}

	if len(native) != 3 {
		t.Fatalf("ToNative() has %d items, want 3", len(native))
	}

	if native[0].Key != "n" || native[0].Value != int64(7) {
		t.Errorf("item 0 = %v", native[0])
	}

	if native[1].Value != "txt" {
		t.Errorf("item 1 = %v", native[1])
	}

	arr, ok := native[2].Value.([]any)
	if !ok || len(arr) != 1 || arr[0] != int64(1) {
		t.Errorf("item 2 = %v", native[2])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	src := `
	(def default_port 0b1010001011);
	(def base_hp 0b1100100);

	@{
	  network = @{
	    name = [[main_server]];
	    port = $default_port$;
	    tags = array([[web]], [[prod]]);
	  };
	  game = @{
	    player = [[Hero]];
	    hp = $base_hp$;
	  };
	}
	`

	val, err := lang.Translate(t.Context(), src)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(val)
	if err != nil {
		t.Fatal(err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	// Re-encoding the decoded structure must not lose information.
	redata, err := json.Marshal(decoded)
	if err != nil {
		t.Fatal(err)
	}

	var redecoded any
	if err := json.Unmarshal(redata, &redecoded); err != nil {
		t.Fatal(err)
	}

	if !jsonEqual(decoded, redecoded) {
		t.Errorf("round trip changed structure:\n%v\n%v", decoded, redecoded)
	}
}

func jsonEqual(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}

	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var av, bv any

	if json.Unmarshal(ab, &av) != nil || json.Unmarshal(bb, &bv) != nil {
		return false
	}

	return string(ab) == string(bb) || deepEqualJSON(av, bv)
}

func deepEqualJSON(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for k, v := range av {
			if !deepEqualJSON(v, bv[k]) {
				return false
			}
		}

		return true

	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !deepEqualJSON(av[i], bv[i]) {
				return false
			}
		}

		return true

	default:
		return a == b
	}
}
