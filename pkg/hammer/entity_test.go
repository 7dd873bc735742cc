package hammer_test

import (
	"context"
	goerrors "errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

var _ = Describe("Entity", func() {
	var (
		ctx      context.Context
		captured [][]string
		canned   []*hammer.Result
	)

	BeforeEach(func() {
		ctx = context.Background()
		captured = nil
		canned = nil
	})

	// replies with the canned results in order, repeating the last one
	newClient := func() *hammer.Client {
		exec := hammer.ExecutorFunc(func(_ context.Context, args []string) (*hammer.Result, error) {
			captured = append(captured, args)
			res := canned[0]
			if len(canned) > 1 {
				canned = canned[1:]
			}
			return res, nil
		})
		return hammer.NewClient(exec)
	}

	ok := func(lines ...string) *hammer.Result {
		return &hammer.Result{ExitStatus: 0, Stdout: lines}
	}

	Context("NewEntity", func() {
		It("should reject an invalid command keyword", func() {
			_, err := hammer.NewEntity(newClient(), hammer.Descriptor{Command: "Organization"})
			Expect(err).To(HaveOccurred())
		})

		It("should reject an invalid relation keyword", func() {
			_, err := hammer.NewEntity(newClient(), hammer.Descriptor{
				Command:   "organization",
				Relations: []string{"Smart Proxy"},
			})
			Expect(err).To(HaveOccurred())
		})

		It("should reject duplicate relations", func() {
			_, err := hammer.NewEntity(newClient(), hammer.Descriptor{
				Command:   "organization",
				Relations: []string{"subnet", "subnet"},
			})
			Expect(err).To(HaveOccurred())
		})

		It("should accept a well-formed descriptor", func() {
			e, err := hammer.NewEntity(newClient(), hammer.Descriptor{
				Command:   "organization",
				Relations: []string{"subnet", "smart-proxy"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Command()).To(Equal("organization"))
		})
	})

	Context("Exists", func() {
		entity := func() *hammer.Entity {
			return hammer.MustEntity(newClient(), hammer.Descriptor{Command: "organization"})
		}

		It("should probe with a canonical equality search", func() {
			canned = []*hammer.Result{ok("Id,Name", "1,Acme")}
			rec, found, err := entity().Exists(ctx, "name", "Acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(rec.Field("id")).To(Equal("1"))
			Expect(strings.Join(captured[0], " ")).To(ContainSubstring(`name = "Acme"`))
		})

		It("should report absence without error", func() {
			canned = []*hammer.Result{ok("Id,Name")}
			rec, found, err := entity().Exists(ctx, "name", "Missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(rec).To(BeNil())
		})

		It("should return the first record when several match", func() {
			canned = []*hammer.Result{ok("Id,Name", "1,Acme", "2,Acme")}
			rec, found, err := entity().Exists(ctx, "name", "Acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(rec.Field("id")).To(Equal("1"))
		})
	})

	Context("List", func() {
		entity := func() *hammer.Entity {
			return hammer.MustEntity(newClient(), hammer.Descriptor{Command: "organization"})
		}

		It("should canonicalize the search option before sending it", func() {
			canned = []*hammer.Result{ok("Id,Name")}
			_, err := entity().List(ctx, hammer.Options{"search": "Name=Acme"})
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Join(captured[0], " ")).To(ContainSubstring(`name = "Acme"`))
		})

		It("should reject a malformed search locally", func() {
			canned = []*hammer.Result{ok()}
			_, err := entity().List(ctx, hammer.Options{"search": "name ="})
			Expect(err).To(HaveOccurred())
			Expect(captured).To(BeEmpty())
		})

		It("should not mutate the caller's options", func() {
			canned = []*hammer.Result{ok("Id,Name")}
			opts := hammer.Options{"search": "Name=Acme"}
			_, err := entity().List(ctx, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts["search"]).To(Equal("Name=Acme"))
		})
	})

	Context("relations", func() {
		entity := func() *hammer.Entity {
			return hammer.MustEntity(newClient(), hammer.Descriptor{
				Command:   "organization",
				Relations: []string{"subnet", "user"},
			})
		}

		It("should run add-<relation> for registered relations", func() {
			canned = []*hammer.Result{ok("The subnet has been added.")}
			err := entity().AddRelation(ctx, "subnet", hammer.Options{"id": "1", "subnet": "net1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(captured[0]).To(ContainElement("add-subnet"))
		})

		It("should run remove-<relation> symmetrically", func() {
			canned = []*hammer.Result{ok("The subnet has been removed.")}
			err := entity().RemoveRelation(ctx, "subnet", hammer.Options{"id": "1", "subnet-id": "2"})
			Expect(err).NotTo(HaveOccurred())
			Expect(captured[0]).To(ContainElement("remove-subnet"))
		})

		It("should reject unregistered relations without executing", func() {
			canned = []*hammer.Result{ok()}
			err := entity().AddRelation(ctx, "hostgroup", hammer.Options{"id": "1"})
			Expect(err).To(HaveOccurred())
			Expect(errors.IsUnknownRelationError(err)).To(BeTrue())
			Expect(captured).To(BeEmpty())

			var relErr *errors.UnknownRelationError
			Expect(goerrors.As(err, &relErr)).To(BeTrue())
			Expect(relErr.Entity).To(Equal("organization"))
			Expect(relErr.Relation).To(Equal("hostgroup"))
		})
	})

	Context("Help", func() {
		entity := func() *hammer.Entity {
			return hammer.MustEntity(newClient(), hammer.Descriptor{Command: "organization"})
		}

		It("should request --help without an output format", func() {
			canned = []*hammer.Result{ok("Usage:", "    hammer organization list [OPTIONS]")}
			_, err := entity().Help(ctx, "list")
			Expect(err).NotTo(HaveOccurred())
			Expect(captured[0]).To(Equal([]string{"hammer", "organization", "list", "--help"}))
		})

		It("should decode list help as literal lines", func() {
			canned = []*hammer.Result{ok("Usage:", "--search SEARCH  Filter results")}
			help, err := entity().Help(ctx, "list")
			Expect(err).NotTo(HaveOccurred())
			Expect(help.Lines).To(HaveLen(2))
			Expect(help.Options).To(BeEmpty())
		})

		It("should decode info help through the Options: section", func() {
			canned = []*hammer.Result{ok(
				"Usage:",
				"",
				"Options:",
				" --id ID      Numeric identifier",
				" --name NAME  Search by name",
			)}
			help, err := entity().Help(ctx, "info")
			Expect(err).NotTo(HaveOccurred())
			Expect(help.Options).To(Equal([]string{
				"--id ID Numeric identifier",
				"--name NAME Search by name",
			}))
		})
	})

	Context("field decoders", func() {
		It("should post-process declared fields", func() {
			client := newClient()
			entity := hammer.MustEntity(client, hammer.Descriptor{
				Command: "organization",
				FieldDecoders: map[string]hammer.FieldDecoder{
					"parameters": func(values []string) (any, error) {
						out := map[string]string{}
						for _, v := range values {
							name, value, _ := strings.Cut(v, " => ")
							out[name] = value
						}
						return out, nil
					},
				},
			})

			canned = []*hammer.Result{ok(
				"Id: 1",
				"Parameters: owner => qa",
				"Parameters: tier => gold",
			)}
			rec, err := entity.Info(ctx, hammer.Options{"id": "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Map("parameters")).To(Equal(map[string]string{
				"owner": "qa",
				"tier":  "gold",
			}))
		})
	})
})
