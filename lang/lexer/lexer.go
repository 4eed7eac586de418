// Package lexer converts binconf source text into a token sequence.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/binconf/lang/token"
)

// Error describes a character of input that does not begin any token.
type Error struct {
	Rune   rune
	Offset int
	Line   int
	Column int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf(
		"unexpected character %q at offset %d (line %d, column %d)",
		e.Rune, e.Offset, e.Line, e.Column,
	)
}

// scanner walks the source text rune by rune, tracking position.
type scanner struct {
	src    string
	pos    int // byte offset of the next rune
	line   int // 1-based line of the next rune
	column int // 1-based rune column of the next rune
}

// Scan converts source text into a token sequence terminated by a single EOF
// token. Tokens are matched left to right with a fixed rule priority:
// whitespace is discarded, punctuation and keywords are matched before
// identifiers, and each rule consumes the longest possible lexeme. The first
// unmatched character aborts the scan with an [*Error].
func Scan(src string) ([]token.Token, error) {
	s := scanner{src: src, line: 1, column: 1}

	tokens := make([]token.Token, 0, len(src)/4+1)

	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])

		if isSpace(r) {
			s.step(r, size)

			continue
		}

		tok, err := s.scanToken(r)
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}

	tokens = append(tokens, token.Token{
		Kind:   token.EOF,
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	})

	return tokens, nil
}

// scanToken matches the single token beginning at the scanner position.
// The rune r has already been decoded from that position.
func (s *scanner) scanToken(r rune) (token.Token, error) {
	start, line, column := s.pos, s.line, s.column

	// emit advances the scanner past end and produces the matched token.
	emit := func(kind token.Kind, end int) token.Token {
		s.stepTo(end)

		return token.Token{
			Kind:   kind,
			Text:   s.src[start:end],
			Offset: start,
			Line:   line,
			Column: column,
		}
	}

	switch {
	case r == '@':
		if start+1 < len(s.src) && s.src[start+1] == '{' {
			return emit(token.DictOpen, start+2), nil
		}

		return token.Token{}, s.errHere(r)

	case r == '{':
		return emit(token.BraceOpen, start+1), nil

	case r == '}':
		return emit(token.BraceClose, start+1), nil

	case r == '(':
		return emit(token.ParenOpen, start+1), nil

	case r == ')':
		return emit(token.ParenClose, start+1), nil

	case r == ',':
		return emit(token.Comma, start+1), nil

	case r == '=':
		return emit(token.Equals, start+1), nil

	case r == ';':
		return emit(token.Semicolon, start+1), nil

	case r == '[':
		// String literals are delimited by double brackets and contain no
		// escape sequences. The interior extends to the first closing pair.
		if strings.HasPrefix(s.src[start:], "[[") {
			if n := strings.Index(s.src[start+2:], "]]"); n >= 0 {
				return emit(token.String, start+2+n+2), nil
			}
		}

		return token.Token{}, s.errHere(r)

	case r == '0':
		// Binary literals are the only numeric form.
		if start+2 < len(s.src) &&
			(s.src[start+1] == 'b' || s.src[start+1] == 'B') &&
			isBinary(s.src[start+2]) {
			end := start + 3
			for end < len(s.src) && isBinary(s.src[end]) {
				end++
			}

			return emit(token.Number, end), nil
		}

		return token.Token{}, s.errHere(r)

	case r == '$':
		// Constant references are an identifier enclosed in dollar signs.
		if n := identLen(s.src[start+1:]); n > 0 {
			if start+1+n < len(s.src) && s.src[start+1+n] == '$' {
				return emit(token.ConstRef, start+1+n+1), nil
			}
		}

		return token.Token{}, s.errHere(r)

	case isIdentStart(r):
		end := start + identLen(s.src[start:])

		// Keywords take priority over identifiers, but only on an exact
		// match; the longest identifier lexeme has already been taken.
		kind := token.Ident

		switch s.src[start:end] {
		case "array":
			kind = token.KeywordArray
		case "def":
			kind = token.KeywordDef
		}

		return emit(kind, end), nil

	default:
		return token.Token{}, s.errHere(r)
	}
}

// errHere reports the rune at the current scanner position as unmatchable.
func (s *scanner) errHere(r rune) *Error {
	return &Error{
		Rune:   r,
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

// step advances past one already-decoded rune.
func (s *scanner) step(r rune, size int) {
	s.pos += size

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
}

// stepTo advances rune by rune until the scanner reaches the byte offset end.
// String literals may span lines, so position bookkeeping must inspect every
// rune consumed.
func (s *scanner) stepTo(end int) {
	for s.pos < end {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.step(r, size)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isBinary(b byte) bool {
	return b == '0' || b == '1'
}

func isIdentStart(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// identLen returns the byte length of the identifier prefix of s, or zero if
// s does not begin with an identifier.
func identLen(s string) int {
	if s == "" {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s)
	if !isIdentStart(r) {
		return 0
	}

	n := 1
	for n < len(s) && isIdentByte(s[n]) {
		n++
	}

	return n
}
