package search

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lexer", func() {
	Context("Scan", func() {
		type testCase struct {
			input  string
			output string
		}

		tests := []testCase{
			// ===== OPERATORS =====
			// Equality operators
			{input: "=", output: "equal eol"},
			{input: "!=", output: "notEqual eol"},

			// Comparison operators
			{input: "<", output: "less eol"},
			{input: "<=", output: "lte eol"},
			{input: ">", output: "greater eol"},
			{input: ">=", output: "gte eol"},

			// Pattern operators
			{input: "~", output: "like eol"},
			{input: "!~", output: "notLike eol"},
			{input: "^", output: "prefix eol"},
			{input: "!^", output: "notPrefix eol"},

			// All operators together
			{input: "= != < <= > >= ~ !~ ^ !^", output: "equal notEqual less lte greater gte like notLike prefix notPrefix eol"},

			// ===== LOGICAL OPERATORS =====
			{input: "and", output: "and eol"},
			{input: "or", output: "or eol"},
			{input: "AND", output: "and eol"},
			{input: "OR", output: "or eol"},
			{input: "And", output: "and eol"},
			{input: "Or", output: "or eol"},

			// ===== BRACKETS =====
			{input: "(", output: "lbracket eol"},
			{input: ")", output: "rbracket eol"},
			{input: "( )", output: "lbracket rbracket eol"},

			// ===== STRINGS =====
			{input: "'test'", output: "stringLit eol"},
			{input: "'hello world'", output: "stringLit eol"},
			{input: `"test"`, output: "stringLit eol"},
			{input: `"hello world"`, output: "stringLit eol"},
			{input: `"with = and ~ inside"`, output: "stringLit eol"},
			{input: `"escaped \" quote"`, output: "stringLit eol"},

			// Empty strings are valid (blank name searches)
			{input: "''", output: "stringLit eol"},
			{input: `""`, output: "stringLit eol"},

			// ===== IDENTIFIERS AND BARE VALUES =====
			{input: "name", output: "identifier eol"},
			{input: "Name", output: "identifier eol"},
			{input: "description", output: "identifier eol"},
			{input: "subnet.network", output: "identifier eol"},
			{input: "100", output: "identifier eol"},
			{input: "my-org", output: "identifier eol"},

			// Multibyte bare words scan as one identifier
			{input: "организация", output: "identifier eol"},
			{input: "組織", output: "identifier eol"},

			// Keywords embedded in longer words stay identifiers
			{input: "android", output: "identifier eol"},
			{input: "order", output: "identifier eol"},

			// ===== WHITESPACE HANDLING =====
			{input: "", output: "eol"},
			{input: "   ", output: "eol"},
			{input: "\t\t", output: "eol"},
			{input: "  name  ", output: "identifier eol"},
			{input: "name   =   'test'", output: "identifier equal stringLit eol"},

			// ===== COMPLETE QUERIES =====
			{input: "name = 'test'", output: "identifier equal stringLit eol"},
			{input: "name != 'test'", output: "identifier notEqual stringLit eol"},
			{input: "name ~ prod", output: "identifier like identifier eol"},
			{input: "name ^ prod", output: "identifier prefix identifier eol"},
			{input: "id >= 10", output: "identifier gte identifier eol"},

			// Operators without surrounding spaces
			{input: "name='test'", output: "identifier equal stringLit eol"},
			{input: "id>=10", output: "identifier gte identifier eol"},

			{
				input:  "name = 'test' and label = 'test_label' or id > 5",
				output: "identifier equal stringLit and identifier equal stringLit or identifier greater identifier eol",
			},
			{
				input:  "(name ~ prod or name ~ stage) and location = 'Default'",
				output: "lbracket identifier like identifier or identifier like identifier rbracket and identifier equal stringLit eol",
			},

			// ===== ILLEGAL TOKENS =====
			{input: "!", output: "illegal eol"}, // incomplete !=, !~ or !^
			{input: "'unclosed", output: "illegal eol"},
			{input: `"unclosed`, output: "illegal eol"},
		}

		for _, test := range tests {
			test := test // capture range variable
			It("should tokenize: "+test.input, func() {
				l := newLexer([]byte(test.input))

				tokens := []string{}
				for {
					_, tok, _ := l.Scan()
					tokens = append(tokens, tok.String())
					if tok == eol || tok == illegal {
						break
					}
				}
				if tokens[len(tokens)-1] == "illegal" {
					tokens = append(tokens, "eol")
				}

				output := strings.Join(tokens, " ")
				Expect(strings.TrimSpace(output)).To(Equal(test.output))
			})
		}
	})

	Context("string values", func() {
		It("should strip the quotes from the value", func() {
			l := newLexer([]byte(`"hello world"`))
			_, tok, val := l.Scan()
			Expect(tok).To(Equal(stringLit))
			Expect(val).To(Equal("hello world"))
		})

		It("should unescape the closing quote character", func() {
			l := newLexer([]byte(`"a \" b"`))
			_, tok, val := l.Scan()
			Expect(tok).To(Equal(stringLit))
			Expect(val).To(Equal(`a " b`))
		})

		It("should keep the bare word as the identifier value", func() {
			l := newLexer([]byte("subnet.network"))
			_, tok, val := l.Scan()
			Expect(tok).To(Equal(identifier))
			Expect(val).To(Equal("subnet.network"))
		})
	})
})
