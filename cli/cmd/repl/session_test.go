package repl

import (
	"reflect"
	"testing"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

func TestSessionDefineAndTranslate(t *testing.T) {
	t.Parallel()

	sess, err := newSession(t.Context(), "", log.Logger{})
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}

	if err := sess.define(t.Context(), "(def port 0b1010);"); err != nil {
		t.Fatalf("define failed: %v", err)
	}

	if err := sess.define(t.Context(), "(def host [[localhost]]);"); err != nil {
		t.Fatalf("define failed: %v", err)
	}

	if got := sess.names(); !reflect.DeepEqual(got, []string{"port", "host"}) {
		t.Errorf("names = %v", got)
	}

	val, err := sess.translate(t.Context(), "@{ p = $port$; h = $host$; }")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	p, ok := val.Get("p")
	if !ok || p.Int != 10 {
		t.Errorf("p = %v", p)
	}

	h, ok := val.Get("h")
	if !ok || h.Text != "localhost" {
		t.Errorf("h = %v", h)
	}
}

func TestSessionDefineErrorLeavesSessionUnchanged(t *testing.T) {
	t.Parallel()

	sess, err := newSession(t.Context(), "(def x 0b1);", log.Logger{})
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}

	// A definition plus a trailing value is not a valid prelude.
	if err := sess.define(t.Context(), "(def y 0b1); 0b0"); err == nil {
		t.Fatal("define succeeded with trailing value")
	}

	if got := sess.names(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("names after failed define = %v", got)
	}
}

func TestSessionPrelude(t *testing.T) {
	t.Parallel()

	sess, err := newSession(t.Context(), `
	(def base 0b100);
	(def tags array([[web]]));
	`, log.Logger{})
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}

	if got := sess.names(); !reflect.DeepEqual(got, []string{"base", "tags"}) {
		t.Errorf("names = %v", got)
	}

	val, err := sess.translate(t.Context(), "$base$")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	if val.Int != 4 {
		t.Errorf("base = %d, want 4", val.Int)
	}
}

func TestSessionPreludeError(t *testing.T) {
	t.Parallel()

	if _, err := newSession(t.Context(), "@{ }", log.Logger{}); err == nil {
		t.Fatal("newSession accepted a non-definition prelude")
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  lang.Value
		want string
	}{
		{"int", lang.IntValue(10), "10 (0b1010)"},
		{"text", lang.TextValue("localhost"), "[[localhost]]"},
		{
			"array",
			lang.ArrayValue(lang.IntValue(1), lang.IntValue(2)),
			"array(2 elements)",
		},
		{
			"dict",
			lang.DictValue(lang.Field{Key: "a", Value: lang.IntValue(1)}),
			"@{ 1 fields }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := preview(tt.val); got != tt.want {
				t.Errorf("preview = %q, want %q", got, tt.want)
			}
		})
	}
}
