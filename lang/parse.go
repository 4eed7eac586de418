package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ardnew/binconf/lang/token"
	"github.com/ardnew/binconf/log"
)

// parser consumes a token sequence by recursive descent with one token of
// lookahead. Constant definitions are evaluated while parsing, so the parser
// produces a finished [Value] rather than a syntax tree.
type parser struct {
	tokens []token.Token
	consts map[string]Value
	log    log.Logger
	pos    int
}

// newParser creates a parser over tokens. The token slice must be non-empty
// and terminated by an EOF token, which [lexer.Scan] guarantees.
func newParser(tokens []token.Token, logger log.Logger) *parser {
	return &parser{
		tokens: tokens,
		consts: make(map[string]Value),
		log:    logger,
	}
}

// current returns the token at the cursor without consuming it.
func (p *parser) current() token.Token {
	return p.tokens[p.pos]
}

// peek returns the token after the cursor without consuming anything.
// At the end of input it returns the EOF token.
func (p *parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}

	return p.tokens[len(p.tokens)-1]
}

// advance moves the cursor forward one token. The cursor never moves past
// the terminating EOF token.
func (p *parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// eat consumes and returns the current token if it has the expected kind.
// On a mismatch the cursor does not move and an error derived from
// [ErrExpectedToken] is returned.
func (p *parser) eat(kind token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return token.Token{}, expectedToken(kind, tok)
	}

	p.advance()

	return tok, nil
}

// parseProgram parses const_def* value EOF.
func (p *parser) parseProgram(ctx context.Context) (Value, error) {
	for p.current().Kind == token.ParenOpen &&
		p.peek().Kind == token.KeywordDef {
		if _, err := p.parseConstDef(ctx); err != nil {
			return Value{}, err
		}
	}

	val, err := p.parseValue(ctx)
	if err != nil {
		return Value{}, err
	}

	if tok := p.current(); tok.Kind != token.EOF {
		return Value{}, trailingInput(tok)
	}

	return val, nil
}

// parseConstDef parses "(" "def" IDENT value ")" ";" and binds the constant,
// returning its name. A redefinition silently overwrites the previous
// binding.
func (p *parser) parseConstDef(ctx context.Context) (string, error) {
	if _, err := p.eat(token.ParenOpen); err != nil {
		return "", err
	}

	if _, err := p.eat(token.KeywordDef); err != nil {
		return "", err
	}

	name, err := p.eat(token.Ident)
	if err != nil {
		return "", err
	}

	val, err := p.parseValue(ctx)
	if err != nil {
		return "", err
	}

	if _, err := p.eat(token.ParenClose); err != nil {
		return "", err
	}

	if _, err := p.eat(token.Semicolon); err != nil {
		return "", err
	}

	if _, exists := p.consts[name.Text]; exists {
		p.log.DebugContext(ctx, "constant redefined",
			slog.String("name", name.Text),
			slog.Int("offset", name.Offset),
		)
	}

	p.consts[name.Text] = val

	p.log.TraceContext(ctx, "constant defined",
		slog.String("name", name.Text),
		slog.String("type", val.Type.String()),
	)

	return name.Text, nil
}

// parseValue parses number | string | array | dict | const_ref.
func (p *parser) parseValue(ctx context.Context) (Value, error) {
	tok := p.current()

	switch tok.Kind {
	case token.Number:
		return p.parseNumber()

	case token.String:
		p.advance()

		// Interior is verbatim; the delimiters are the only syntax.
		return TextValue(tok.Text[2 : len(tok.Text)-2]), nil

	case token.ConstRef:
		return p.parseConstRef(ctx)

	case token.KeywordArray:
		return p.parseArray(ctx)

	case token.DictOpen:
		return p.parseDict(ctx)

	default:
		return Value{}, unexpectedToken(tok)
	}
}

// parseNumber decodes a binary literal. The lexer guarantees the lexeme is
// a "0b" or "0B" marker followed by one or more binary digits.
func (p *parser) parseNumber() (Value, error) {
	tok := p.current()

	n, err := strconv.ParseInt(tok.Text[2:], 2, 64)
	if err != nil {
		// Only possible failure is a literal too wide for int64.
		return Value{}, unexpectedToken(tok).Wrap(
			fmt.Errorf("binary literal %s overflows 64-bit integer", tok),
		)
	}

	p.advance()

	return IntValue(n), nil
}

// parseConstRef resolves a constant reference against the bindings made by
// strictly earlier definitions. Forward references do not resolve.
func (p *parser) parseConstRef(ctx context.Context) (Value, error) {
	tok := p.current()
	name := tok.Text[1 : len(tok.Text)-1]

	val, ok := p.consts[name]
	if !ok {
		return Value{}, unknownConstant(name, tok)
	}

	p.advance()

	p.log.TraceContext(ctx, "constant resolved",
		slog.String("name", name),
		slog.String("type", val.Type.String()),
	)

	return val, nil
}

// parseArray parses "array" "(" [value ("," value)*] ")".
func (p *parser) parseArray(ctx context.Context) (Value, error) {
	if _, err := p.eat(token.KeywordArray); err != nil {
		return Value{}, err
	}

	if _, err := p.eat(token.ParenOpen); err != nil {
		return Value{}, err
	}

	arr := Value{Type: TypeArray}

	if p.current().Kind != token.ParenClose {
		for {
			elem, err := p.parseValue(ctx)
			if err != nil {
				return Value{}, err
			}

			arr.Array = append(arr.Array, elem)

			if p.current().Kind != token.Comma {
				break
			}

			p.advance()
		}
	}

	if _, err := p.eat(token.ParenClose); err != nil {
		return Value{}, err
	}

	return arr, nil
}

// parseDict parses "@{" (IDENT "=" value ";")* "}".
// Fields are kept in insertion order; a duplicate key overwrites the earlier
// value in place.
func (p *parser) parseDict(ctx context.Context) (Value, error) {
	if _, err := p.eat(token.DictOpen); err != nil {
		return Value{}, err
	}

	dict := Value{Type: TypeDict}

	for p.current().Kind == token.Ident {
		key, err := p.eat(token.Ident)
		if err != nil {
			return Value{}, err
		}

		if _, err := p.eat(token.Equals); err != nil {
			return Value{}, err
		}

		val, err := p.parseValue(ctx)
		if err != nil {
			return Value{}, err
		}

		if _, err := p.eat(token.Semicolon); err != nil {
			return Value{}, err
		}

		if dict.Set(key.Text, val) {
			p.log.DebugContext(ctx, "dictionary key overwritten",
				slog.String("key", key.Text),
				slog.Int("offset", key.Offset),
			)
		}
	}

	if _, err := p.eat(token.BraceClose); err != nil {
		return Value{}, err
	}

	return dict, nil
}

// unexpectedToken reports a token that cannot begin the expected production.
func unexpectedToken(tok token.Token) *Error {
	return ErrUnexpectedToken.
		Wrap(fmt.Errorf(
			"%s at line %d, column %d", tok, tok.Line, tok.Column,
		)).
		With(slog.Int("offset", tok.Offset))
}

// expectedToken reports a token of the wrong kind where a specific kind is
// required.
func expectedToken(want token.Kind, have token.Token) *Error {
	return ErrExpectedToken.
		Wrap(fmt.Errorf(
			"want %s, have %s at line %d, column %d",
			want, have, have.Line, have.Column,
		)).
		With(slog.Int("offset", have.Offset))
}

// unknownConstant reports a reference to a name with no earlier definition.
func unknownConstant(name string, tok token.Token) *Error {
	return ErrUnknownConstant.
		Wrap(fmt.Errorf(
			"%s at line %d, column %d", name, tok.Line, tok.Column,
		)).
		With(slog.Int("offset", tok.Offset))
}

// trailingInput reports leftover tokens after the root value.
func trailingInput(tok token.Token) *Error {
	return ErrTrailingInput.
		Wrap(fmt.Errorf(
			"%s at line %d, column %d", tok, tok.Line, tok.Column,
		)).
		With(slog.Int("offset", tok.Offset))
}
