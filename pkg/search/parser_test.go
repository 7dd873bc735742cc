package search

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	Context("Valid queries", func() {
		type testCase struct {
			input  string
			output string
		}

		tests := []testCase{
			// ===== SIMPLE COMPARISONS =====
			{input: "name = 'test'", output: `name = "test"`},
			{input: `name = "test"`, output: `name = "test"`},
			{input: "name != 'test'", output: `name != "test"`},
			{input: "name ~ prod", output: `name ~ "prod"`},
			{input: "name !~ prod", output: `name !~ "prod"`},
			{input: "name ^ prod", output: `name ^ "prod"`},
			{input: "name !^ prod", output: `name !^ "prod"`},
			{input: "id < 10", output: `id < "10"`},
			{input: "id <= 10", output: `id <= "10"`},
			{input: "id > 10", output: `id > "10"`},
			{input: "id >= 10", output: `id >= "10"`},

			// ===== CANONICALIZATION =====
			// Field names are lowered
			{input: "Name = 'test'", output: `name = "test"`},
			{input: "LABEL = 'x'", output: `label = "x"`},
			// Bare values are quoted
			{input: "id = 42", output: `id = "42"`},
			{input: "name = my-org", output: `name = "my-org"`},
			// Whitespace collapses to single spaces
			{input: "name    =     'test'", output: `name = "test"`},
			{input: "name='test'", output: `name = "test"`},
			// Embedded quotes are escaped
			{input: `name = 'say "hi"'`, output: `name = "say \"hi\""`},
			// Empty values survive
			{input: `name = ""`, output: `name = ""`},

			// ===== DOTTED FIELDS =====
			{input: "subnet.network = '192.168.100.0'", output: `subnet.network = "192.168.100.0"`},

			// ===== AND / OR =====
			{input: "a = 1 and b = 2", output: `a = "1" and b = "2"`},
			{input: "a = 1 AND b = 2", output: `a = "1" and b = "2"`},
			{input: "a = 1 or b = 2", output: `a = "1" or b = "2"`},
			{input: "a = 1 Or b = 2", output: `a = "1" or b = "2"`},
			{input: "a = 1 and b = 2 and c = 3", output: `a = "1" and b = "2" and c = "3"`},

			// ===== PRECEDENCE (AND binds tighter) =====
			{input: "a = 1 or b = 2 and c = 3", output: `a = "1" or b = "2" and c = "3"`},
			{input: "a = 1 and b = 2 or c = 3", output: `a = "1" and b = "2" or c = "3"`},

			// Redundant brackets drop out
			{input: "(a = 1)", output: `a = "1"`},
			{input: "((a = 1))", output: `a = "1"`},
			{input: "(a = 1 and b = 2) or c = 3", output: `a = "1" and b = "2" or c = "3"`},

			// Brackets that change precedence are kept
			{input: "(a = 1 or b = 2) and c = 3", output: `(a = "1" or b = "2") and c = "3"`},
			{input: "a = 1 and (b = 2 or c = 3)", output: `a = "1" and (b = "2" or c = "3")`},

			// ===== MULTIBYTE VALUES =====
			{input: "name = 'организация'", output: `name = "организация"`},
			{input: "name = 組織", output: `name = "組織"`},
		}

		for _, test := range tests {
			test := test // capture range variable
			It("should normalize: "+test.input, func() {
				output, err := Normalize(test.input)
				Expect(err).NotTo(HaveOccurred())
				Expect(output).To(Equal(test.output))
			})
		}

		It("should be stable under a second round trip", func() {
			first, err := Normalize("(a = 1 or b = 2) and Name ~ prod")
			Expect(err).NotTo(HaveOccurred())
			second, err := Normalize(first)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Context("Invalid queries", func() {
		type testCase struct {
			input    string
			position int
		}

		tests := []testCase{
			{input: "", position: 0},
			{input: "name", position: 4},
			{input: "name =", position: 6},
			{input: "= 'test'", position: 0},
			{input: "name = 'test' and", position: 17},
			{input: "name = 'test' or", position: 16},
			{input: "(name = 'test'", position: 14},
			{input: "name = 'test')", position: 13},
			{input: "name ! 'test'", position: 5},
			{input: "name = 'unclosed", position: 7},
			{input: "name = = 'test'", position: 7},
		}

		for _, test := range tests {
			test := test // capture range variable
			It("should reject: "+test.input, func() {
				_, err := Parse([]byte(test.input))
				Expect(err).To(HaveOccurred())

				var parseErr ParseError
				Expect(errors.As(err, &parseErr)).To(BeTrue())
				Expect(parseErr.Position).To(Equal(test.position))
			})
		}
	})

	Context("Eq", func() {
		It("should build a canonical equality query", func() {
			Expect(Eq("name", "Foo Bar")).To(Equal(`name = "Foo Bar"`))
		})

		It("should lower the field and escape quotes in the value", func() {
			Expect(Eq("Name", `a "b"`)).To(Equal(`name = "a \"b\""`))
		})
	})
})
