package hammer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kryndex/robottelo/pkg/hammer"
)

var _ = Describe("Invocation", func() {
	base := hammer.Invocation{
		Binary:   "hammer",
		Username: "admin",
		Password: "changeme",
		Entity:   "organization",
		Action:   "list",
		Format:   hammer.FormatCSV,
	}

	Context("Args", func() {
		It("should place credentials and output format before the command", func() {
			inv := base
			Expect(inv.Args()).To(Equal([]string{
				"hammer", "-u", "admin", "-p", "changeme",
				"--output", "csv", "organization", "list",
			}))
		})

		It("should omit credential flags when unset", func() {
			inv := base
			inv.Username = ""
			inv.Password = ""
			Expect(inv.Args()).To(Equal([]string{
				"hammer", "--output", "csv", "organization", "list",
			}))
		})

		It("should sort options by name", func() {
			inv := base
			inv.Action = "create"
			inv.Format = hammer.FormatBase
			inv.Options = hammer.Options{
				"name":        "Acme",
				"description": "test org",
				"label":       "acme",
			}
			Expect(inv.Args()).To(Equal([]string{
				"hammer", "-u", "admin", "-p", "changeme",
				"--output", "base", "organization", "create",
				"--description", "test org",
				"--label", "acme",
				"--name", "Acme",
			}))
		})

		It("should comma-join list values into one flag occurrence", func() {
			inv := base
			inv.Options = hammer.Options{"subnet-ids": []string{"1", "2", "3"}}
			Expect(inv.Args()).To(ContainElement("--subnet-ids"))
			Expect(inv.Args()).To(ContainElement("1,2,3"))
		})

		It("should emit a bare flag for true booleans and drop false ones", func() {
			inv := base
			inv.Options = hammer.Options{"full-details": true, "dry-run": false}
			args := inv.Args()
			Expect(args).To(ContainElement("--full-details"))
			Expect(args).NotTo(ContainElement("--dry-run"))
			Expect(args[len(args)-1]).To(Equal("--full-details"))
		})

		It("should format integer values", func() {
			inv := base
			inv.Options = hammer.Options{"per-page": 100}
			Expect(inv.Args()).To(ContainElement("100"))
		})

		It("should skip nil option values", func() {
			inv := base
			inv.Options = hammer.Options{"search": nil}
			Expect(inv.Args()).NotTo(ContainElement("--search"))
		})

		It("should short-circuit help requests", func() {
			inv := base
			inv.Action = "info"
			inv.Options = hammer.Options{hammer.HelpOption: true, "id": "1"}
			Expect(inv.Args()).To(Equal([]string{
				"hammer", "-u", "admin", "-p", "changeme",
				"organization", "info", "--help",
			}))
		})

		It("should build the same vector twice for the same invocation", func() {
			inv := base
			inv.Options = hammer.Options{"b": "2", "a": "1", "c": "3"}
			Expect(inv.Args()).To(Equal(inv.Args()))
		})
	})

	Context("QuoteArgs", func() {
		It("should leave plain arguments untouched", func() {
			Expect(hammer.QuoteArgs([]string{"hammer", "--output", "csv"})).
				To(Equal("hammer --output csv"))
		})

		It("should quote arguments with spaces and metacharacters", func() {
			Expect(hammer.QuoteArgs([]string{"--name", "Acme Corp"})).
				To(Equal("--name 'Acme Corp'"))
			Expect(hammer.QuoteArgs([]string{"--search", `name = "x"`})).
				To(Equal(`--search 'name = "x"'`))
		})

		It("should quote empty arguments", func() {
			Expect(hammer.QuoteArgs([]string{"--name", ""})).To(Equal("--name ''"))
		})

		It("should escape single quotes inside a quoted argument", func() {
			Expect(hammer.QuoteArgs([]string{"it's"})).To(Equal(`'it'"'"'s'`))
		})
	})
})
