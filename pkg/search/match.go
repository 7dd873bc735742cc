package search

import (
	"strconv"
	"strings"
)

// Matches evaluates expr against an entity whose field values are supplied
// by get. A field may carry several values (a multi-valued listing);
// comparison operators succeed when any value matches.
//
// Operator semantics mirror the server's scoped search: = and != compare
// exactly, ~ and !~ match case-insensitive substrings, ^ and !^ match
// prefixes, and the ordering operators compare numerically when both sides
// parse as numbers, lexically otherwise.
func Matches(expr Expression, get func(field string) []string) bool {
	switch e := expr.(type) {
	case *binaryExpression:
		switch e.Op {
		case and:
			return Matches(e.Left, get) && Matches(e.Right, get)
		case or:
			return Matches(e.Left, get) || Matches(e.Right, get)
		default:
			return matchComparison(e, get)
		}
	default:
		return false
	}
}

func matchComparison(e *binaryExpression, get func(field string) []string) bool {
	field, ok := e.Left.(*fieldExpression)
	if !ok {
		return false
	}
	value, ok := e.Right.(*valueExpression)
	if !ok {
		return false
	}

	for _, have := range get(strings.ToLower(field.Name)) {
		if compareValue(e.Op, have, value.Value) {
			return true
		}
	}
	return false
}

func compareValue(op Token, have, want string) bool {
	switch op {
	case equal:
		return have == want
	case notEqual:
		return have != want
	case like:
		return strings.Contains(strings.ToLower(have), strings.ToLower(want))
	case notLike:
		return !strings.Contains(strings.ToLower(have), strings.ToLower(want))
	case prefix:
		return strings.HasPrefix(have, want)
	case notPrefix:
		return !strings.HasPrefix(have, want)
	case less, lte, greater, gte:
		return compareOrdered(op, have, want)
	default:
		return false
	}
}

func compareOrdered(op Token, have, want string) bool {
	var cmp int
	h, herr := strconv.ParseFloat(have, 64)
	w, werr := strconv.ParseFloat(want, 64)
	if herr == nil && werr == nil {
		switch {
		case h < w:
			cmp = -1
		case h > w:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(have, want)
	}

	switch op {
	case less:
		return cmp < 0
	case lte:
		return cmp <= 0
	case greater:
		return cmp > 0
	default:
		return cmp >= 0
	}
}
