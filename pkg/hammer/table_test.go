package hammer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/hammer"
	"github.com/Kryndex/robottelo/pkg/textwidth"
)

var _ = Describe("DecodeTable", func() {
	It("should split rows on the header's column boundaries", func() {
		records, err := hammer.DecodeTable([]string{
			"Id   Name      Description",
			"---  --------  ------------",
			"1    Acme      first org",
			"2    Globex    second org",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Field("id")).To(Equal("1"))
		Expect(records[0].Field("name")).To(Equal("Acme"))
		Expect(records[0].Field("description")).To(Equal("first org"))
		Expect(records[1].Field("description")).To(Equal("second org"))
	})

	It("should keep single spaces inside header names and values", func() {
		records, err := hammer.DecodeTable([]string{
			"Id   Compute Resources",
			"---  ------------------",
			"1    kvm host one",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].Field("compute-resources")).To(Equal("kvm host one"))
	})

	It("should align CJK values against an ASCII header", func() {
		// 組織 is four display cells wide but only two runes
		records, err := hammer.DecodeTable([]string{
			"Id   Name    Description",
			"---  ------  ------------",
			"1    組織    cjk org",
			"2    ascii   plain org",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].Field("name")).To(Equal("組織"))
		Expect(records[0].Field("description")).To(Equal("cjk org"))
		Expect(records[1].Field("name")).To(Equal("ascii"))
	})

	It("should skip dashed separator rows", func() {
		records, err := hammer.DecodeTable([]string{
			"Id   Name",
			"---|------",
			"1    Acme",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
	})

	It("should decode an empty table to an empty list", func() {
		records, err := hammer.DecodeTable([]string{"Id   Name", "---  ----"})
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should reject a row wider than the header", func() {
		_, err := hammer.DecodeTable([]string{
			"Id   Name",
			"1    a value that runs far past the header width",
		})
		Expect(err).To(HaveOccurred())
		Expect(errors.IsDecodeError(err)).To(BeTrue())
	})
})

var _ = Describe("EncodeTable", func() {
	It("should pad every line to the same display width", func() {
		lines := hammer.EncodeTable(
			[]string{"Id", "Name", "Description"},
			[][]string{
				{"1", "組織", "cjk"},
				{"2", "организация", "cyrillic"},
				{"3", "plain", "ascii"},
			},
		)
		Expect(len(lines)).To(Equal(5))

		want := textwidth.Width(lines[0])
		for _, line := range lines[1:] {
			Expect(textwidth.Width(line)).To(Equal(want))
		}
	})

	It("should widen columns to the widest cell", func() {
		lines := hammer.EncodeTable(
			[]string{"Id", "Name"},
			[][]string{{"1", "a rather long name"}},
		)
		Expect(lines[0]).To(Equal("Id  Name              "))
		Expect(lines[1]).To(Equal("--  ------------------"))
		Expect(lines[2]).To(Equal("1   a rather long name"))
	})

	It("should round trip through DecodeTable", func() {
		headers := []string{"Id", "Name", "Description"}
		rows := [][]string{
			{"1", "組織", "cjk org"},
			{"2", "plain", "ascii org"},
		}
		records, err := hammer.DecodeTable(hammer.EncodeTable(headers, rows))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Field("name")).To(Equal("組織"))
		Expect(records[0].Field("description")).To(Equal("cjk org"))
		Expect(records[1].Field("name")).To(Equal("plain"))
	})
})
