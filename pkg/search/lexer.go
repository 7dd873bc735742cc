package search

import "strings"

type lexer struct {
	src     []byte
	ch      byte
	offset  int
	pos     int
	nextPos int
}

func newLexer(src []byte) *lexer {
	l := &lexer{src: src}
	l.next()

	return l
}

func (l *lexer) Scan() (int, Token, string) {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.next()
	}

	if l.ch == 0 {
		return l.pos, eol, ""
	}

	tok := illegal
	pos := l.pos
	val := ""

	ch := l.ch
	l.next()

	// keywords, field names and bare values
	if isWordStart(ch) {
		start := l.tokenStart()
		for isWord(l.ch) {
			l.next()
		}
		name := string(l.src[start:l.tokenEnd()])
		switch strings.ToLower(name) {
		case "and":
			tok = and
		case "or":
			tok = or
		default:
			tok = identifier
			val = name
		}
		return pos, tok, val
	}

	switch ch {
	case '(':
		tok = lbracket
	case ')':
		tok = rbracket
	case '=':
		tok = equal
	case '~':
		tok = like
	case '^':
		tok = prefix
	case '!':
		switch l.ch {
		case '=':
			tok = notEqual
			l.next()
		case '~':
			tok = notLike
			l.next()
		case '^':
			tok = notPrefix
			l.next()
		default:
			tok = illegal
			val = "expected =, ~ or ^ after !"
		}
	case '<':
		switch l.ch {
		case '=':
			tok = lte
			l.next()
		default:
			tok = less
		}
	case '>':
		switch l.ch {
		case '=':
			tok = gte
			l.next()
		default:
			tok = greater
		}
	case '"', '\'':
		chars := make([]byte, 0, 32)
		for l.ch != ch {
			if l.ch == 0 {
				return pos, illegal, "unclosed string"
			}
			if l.ch == '\\' && l.offset < len(l.src) && l.src[l.offset] == ch {
				l.next()
			}
			chars = append(chars, l.ch)
			l.next()
		}
		l.next()
		tok = stringLit
		val = string(chars)
	default:
		tok = illegal
		val = "unexpected char"
	}

	return pos, tok, val
}

// Load the next character into l.ch (or 0 on end of input) and update position.
func (l *lexer) next() {
	l.pos = l.nextPos
	if l.offset >= len(l.src) {
		if l.ch != 0 {
			l.ch = 0
			l.offset++
			l.nextPos++
		}
		return
	}
	ch := l.src[l.offset]
	l.ch = ch
	l.nextPos++
	l.offset++
}

func (l *lexer) tokenStart() int {
	return l.offset - 2
}

func (l *lexer) tokenEnd() int {
	return l.offset - 1
}

// Bare words cover field names (name, subnet.network) and unquoted values,
// which may be any run of non-space bytes outside the operator set. UTF-8
// continuation bytes fall through here, so unquoted multibyte values scan
// as single words.
func isWordStart(ch byte) bool {
	return isWord(ch)
}

func isWord(ch byte) bool {
	switch ch {
	case 0, ' ', '\t', '\n', '\r', '(', ')', '=', '!', '~', '^', '<', '>', '"', '\'':
		return false
	default:
		return true
	}
}
