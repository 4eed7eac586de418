// Package token defines the lexical tokens of the binconf configuration
// language.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	DictOpen
	BraceOpen
	BraceClose
	ParenOpen
	ParenClose
	Comma
	Equals
	Semicolon
	KeywordArray
	KeywordDef
	ConstRef
	String
	Number
	Ident
)

// String returns a human-readable name for the token kind, used in
// diagnostics.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case DictOpen:
		return "'@{'"
	case BraceOpen:
		return "'{'"
	case BraceClose:
		return "'}'"
	case ParenOpen:
		return "'('"
	case ParenClose:
		return "')'"
	case Comma:
		return "','"
	case Equals:
		return "'='"
	case Semicolon:
		return "';'"
	case KeywordArray:
		return "keyword 'array'"
	case KeywordDef:
		return "keyword 'def'"
	case ConstRef:
		return "constant reference"
	case String:
		return "string literal"
	case Number:
		return "binary number"
	case Ident:
		return "identifier"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a single lexeme scanned from source text.
type Token struct {
	// Text is the raw source text of the token, delimiters included.
	Text string
	// Kind is the lexical class of the token.
	Kind Kind
	// Offset is the byte offset of the first byte of the token in the source.
	Offset int
	// Line and Column locate the token for diagnostics, both 1-based.
	// Column counts runes, not bytes.
	Line, Column int
}

// String renders the token for diagnostics.
// Tokens with source text are quoted; EOF uses the kind name alone.
func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}

	return fmt.Sprintf("%q", t.Text)
}
