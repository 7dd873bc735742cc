package search

import "strings"

// Expression is a parsed scoped-search query node.
type Expression interface {
	render(sb *strings.Builder, parent Token)
}

type binaryExpression struct {
	Left  Expression
	Op    Token
	Right Expression
}

func (e *binaryExpression) render(sb *strings.Builder, parent Token) {
	logical := e.Op == and || e.Op == or
	// an OR nested under an AND keeps its brackets
	brackets := logical && parent == and && e.Op == or
	if brackets {
		sb.WriteByte('(')
	}
	e.Left.render(sb, e.Op)
	sb.WriteByte(' ')
	sb.WriteString(e.Op.Text())
	sb.WriteByte(' ')
	e.Right.render(sb, e.Op)
	if brackets {
		sb.WriteByte(')')
	}
}

type fieldExpression struct {
	Name string
}

func (e *fieldExpression) render(sb *strings.Builder, parent Token) {
	sb.WriteString(strings.ToLower(e.Name))
}

type valueExpression struct {
	Value string
}

func (e *valueExpression) render(sb *strings.Builder, parent Token) {
	sb.WriteString(quote(e.Value))
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}
