package search

type Token int

const (
	illegal Token = iota
	eol
	and
	or
	equal
	notEqual
	like
	notLike
	prefix
	notPrefix
	less
	lte
	greater
	gte
	lbracket
	rbracket
	identifier
	stringLit
)

var tokenNames = map[Token]string{
	illegal:    "illegal",
	eol:        "eol",
	and:        "and",
	or:         "or",
	equal:      "equal",
	notEqual:   "notEqual",
	like:       "like",
	notLike:    "notLike",
	prefix:     "prefix",
	notPrefix:  "notPrefix",
	less:       "less",
	lte:        "lte",
	greater:    "greater",
	gte:        "gte",
	lbracket:   "lbracket",
	rbracket:   "rbracket",
	identifier: "identifier",
	stringLit:  "stringLit",
}

func (t Token) String() string {
	return tokenNames[t]
}

// operator glyphs as the server's scoped-search syntax spells them
var tokenText = map[Token]string{
	and:       "and",
	or:        "or",
	equal:     "=",
	notEqual:  "!=",
	like:      "~",
	notLike:   "!~",
	prefix:    "^",
	notPrefix: "!^",
	less:      "<",
	lte:       "<=",
	greater:   ">",
	gte:       ">=",
}

func (t Token) Text() string {
	return tokenText[t]
}
