package search

import (
	"fmt"
	"strings"
)

// ParseError is the type of error returned by Parse.
type ParseError struct {
	// Source column position where the error occurred.
	Position int
	// Error message.
	Message string
}

// Error returns a formatted version of the error, including the position.
func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Position, e.Message)
}

type parser struct {
	lexer *lexer
	pos   int    // position of last token (tok)
	tok   Token  // last lexed token
	val   string // string value of last token (or "")
}

// Parse parses a scoped-search query into an Expression.
//
// It uses panic/recover internally so the recursive-descent methods can
// signal errors without threading (Expression, error) through every call.
// ParseError panics are caught here and returned as normal errors; any
// other panic (bug) is re-raised.
func Parse(src []byte) (expr Expression, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(ParseError); ok {
				expr = nil
				err = pe
			} else {
				panic(r)
			}
		}
	}()

	lexer := newLexer(src)
	p := parser{lexer: lexer}
	p.next()

	expr = p.expression()
	p.expect(eol)

	return expr, err
}

// Normalize parses query and renders it back in canonical form: lower-case
// field names, quoted values, single-spaced operators. The round trip also
// rejects malformed queries before they reach the remote tool.
func Normalize(query string) (string, error) {
	expr, err := Parse([]byte(query))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	expr.render(&sb, eol)
	return sb.String(), nil
}

// Eq builds the canonical equality query for one field, the form used by
// existence probes (`name = "Foo Bar"`).
func Eq(field, value string) string {
	return strings.ToLower(field) + " " + equal.Text() + " " + quote(value)
}

// expression parses a logic expression.
//
// term ( "or" term )*
func (p *parser) expression() Expression {
	expr := p.term()

	for p.matches(or) {
		op := p.tok
		p.next()
		right := p.term()
		expr = &binaryExpression{Left: expr, Op: op, Right: right}
	}

	return expr
}

// term parses an AND expression.
//
// factor ( "and" factor )*
func (p *parser) term() Expression {
	expr := p.factor()

	for p.matches(and) {
		op := p.tok
		p.next()
		right := p.factor()
		expr = &binaryExpression{Left: expr, Op: op, Right: right}
	}

	return expr
}

// factor parses a single comparison or grouped expression.
//
// comparison | "(" expression ")"
func (p *parser) factor() Expression {
	if p.matches(lbracket) {
		p.next()
		expr := p.expression()
		p.expect(rbracket)
		p.next()
		return expr
	}

	return p.comparison()
}

// comparison parses one field comparison.
//
// IDENTIFIER ( "=" | "!=" | "~" | "!~" | "^" | "!^" | "<" | "<=" | ">" | ">=" ) value
func (p *parser) comparison() Expression {
	p.expect(identifier)
	left := &fieldExpression{Name: p.val}
	p.next()

	var op Token
	switch p.tok {
	case equal, notEqual, like, notLike, prefix, notPrefix, less, lte, greater, gte:
		op = p.tok
		p.next()
	default:
		panic(p.errorf("expected operator instead of %s", p.tok))
	}

	right := p.value()

	return &binaryExpression{Left: left, Op: op, Right: right}
}

// value parses a comparison value: a quoted string or a bare word.
func (p *parser) value() Expression {
	var expr Expression

	switch p.tok {
	case stringLit, identifier:
		expr = &valueExpression{Value: p.val}
	default:
		panic(p.errorf("expected value instead of %s", p.tok))
	}

	p.next()
	return expr
}

// next parses the next token into p.tok.
func (p *parser) next() {
	p.pos, p.tok, p.val = p.lexer.Scan()
	if p.tok == illegal {
		panic(p.errorf("%s", p.val))
	}
}

// matches reports whether the current token is tok.
func (p *parser) matches(tok Token) bool {
	return p.tok == tok
}

// expect panics with a ParseError if the current token is not tok.
func (p *parser) expect(tok Token) {
	if p.tok != tok {
		panic(p.errorf("expected %s instead of %s", tok, p.tok))
	}
}

func (p *parser) errorf(format string, args ...any) ParseError {
	return ParseError{Position: p.pos, Message: fmt.Sprintf(format, args...)}
}
