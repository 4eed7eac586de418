package lexer

import (
	"errors"
	"testing"

	"github.com/ardnew/binconf/lang/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}

	return out
}

func TestScanKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "empty",
			input: "",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "whitespace only",
			input: " \t\r\n",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "binary number",
			input: "0b1010",
			want:  []token.Kind{token.Number, token.EOF},
		},
		{
			name:  "uppercase marker",
			input: "0B01",
			want:  []token.Kind{token.Number, token.EOF},
		},
		{
			name:  "string literal",
			input: "[[hello world]]",
			want:  []token.Kind{token.String, token.EOF},
		},
		{
			name:  "empty string literal",
			input: "[[]]",
			want:  []token.Kind{token.String, token.EOF},
		},
		{
			name:  "const ref",
			input: "$base_port$",
			want:  []token.Kind{token.ConstRef, token.EOF},
		},
		{
			name:  "keywords",
			input: "array def",
			want: []token.Kind{
				token.KeywordArray, token.KeywordDef, token.EOF,
			},
		},
		{
			name:  "keyword prefix is identifier",
			input: "arrays define",
			want:  []token.Kind{token.Ident, token.Ident, token.EOF},
		},
		{
			name:  "dict tokens",
			input: "@{ port = 0b1; }",
			want: []token.Kind{
				token.DictOpen, token.Ident, token.Equals, token.Number,
				token.Semicolon, token.BraceClose, token.EOF,
			},
		},
		{
			name:  "const def tokens",
			input: "(def x 0b0);",
			want: []token.Kind{
				token.ParenOpen, token.KeywordDef, token.Ident, token.Number,
				token.ParenClose, token.Semicolon, token.EOF,
			},
		},
		{
			name:  "array tokens",
			input: "array(0b1, 0b10)",
			want: []token.Kind{
				token.KeywordArray, token.ParenOpen, token.Number, token.Comma,
				token.Number, token.ParenClose, token.EOF,
			},
		},
		{
			name:  "bare brace",
			input: "{",
			want:  []token.Kind{token.BraceOpen, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) failed: %v", tt.input, err)
			}

			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("Scan(%q) kinds = %v, want %v", tt.input, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf(
						"Scan(%q) token %d = %v, want %v",
						tt.input, i, got[i], tt.want[i],
					)
				}
			}
		})
	}
}

func TestScanText(t *testing.T) {
	t.Parallel()

	tokens, err := Scan("@{ host = [[localhost]]; }")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"@{", "host", "=", "[[localhost]]", ";", "}", ""}
	for i, tok := range tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d text = %q, want %q", i, tok.Text, want[i])
		}
	}
}

func TestScanStringInterior(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		text  string
	}{
		{"plain", "[[abc]]", "[[abc]]"},
		{"spaces kept", "[[  a b  ]]", "[[  a b  ]]"},
		{"non-ascii", "[[ごはん]]", "[[ごはん]]"},
		{"single bracket inside", "[[a]b]]", "[[a]b]]"},
		{"newline inside", "[[a\nb]]", "[[a\nb]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) failed: %v", tt.input, err)
			}

			if tokens[0].Text != tt.text {
				t.Errorf("string text = %q, want %q", tokens[0].Text, tt.text)
			}
		})
	}
}

func TestScanNonGreedyString(t *testing.T) {
	t.Parallel()

	// The literal ends at the first closing pair; the rest is lexed normally.
	tokens, err := Scan("[[a]] , [[b]]")
	if err != nil {
		t.Fatal(err)
	}

	want := []token.Kind{token.String, token.Comma, token.String, token.EOF}
	got := kinds(tokens)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}

	if tokens[0].Text != "[[a]]" || tokens[2].Text != "[[b]]" {
		t.Errorf("texts = %q, %q", tokens[0].Text, tokens[2].Text)
	}
}

func TestScanOffsets(t *testing.T) {
	t.Parallel()

	tokens, err := Scan("def  x")
	if err != nil {
		t.Fatal(err)
	}

	if tokens[0].Offset != 0 || tokens[1].Offset != 5 {
		t.Errorf(
			"offsets = %d, %d; want 0, 5",
			tokens[0].Offset, tokens[1].Offset,
		)
	}

	if tokens[2].Kind != token.EOF || tokens[2].Offset != 6 {
		t.Errorf("EOF offset = %d, want 6", tokens[2].Offset)
	}
}

func TestScanPositions(t *testing.T) {
	t.Parallel()

	tokens, err := Scan("@{\n  port = 0b1;\n}")
	if err != nil {
		t.Fatal(err)
	}

	// port begins on line 2 at rune column 3.
	port := tokens[1]
	if port.Line != 2 || port.Column != 3 {
		t.Errorf("port at line %d column %d, want 2:3", port.Line, port.Column)
	}

	closing := tokens[len(tokens)-2]
	if closing.Kind != token.BraceClose || closing.Line != 3 {
		t.Errorf("closing brace at line %d, want 3", closing.Line)
	}
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		rune   rune
		offset int
	}{
		{"unknown punctuation", "@{ port : 0b1; }", ':', 8},
		{"decimal number", "123", '1', 0},
		{"missing binary digits", "0b", '0', 0},
		{"non-binary digits", "0b2", '0', 0},
		{"lone at sign", "@port", '@', 0},
		{"single bracket", "[abc]", '[', 0},
		{"unterminated string", "[[abc", '[', 0},
		{"unterminated const ref", "$abc", '$', 0},
		{"empty const ref", "$$", '$', 0},
		{"const ref digit start", "$1a$", '$', 0},
		{"stray bracket after value", "0b1 ]", ']', 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Scan(tt.input)
			if err == nil {
				t.Fatalf("Scan(%q) succeeded, want error", tt.input)
			}

			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("Scan(%q) error type %T", tt.input, err)
			}

			if lexErr.Rune != tt.rune || lexErr.Offset != tt.offset {
				t.Errorf(
					"Scan(%q) error %q at %d, want %q at %d",
					tt.input, lexErr.Rune, lexErr.Offset, tt.rune, tt.offset,
				)
			}
		})
	}
}
