package main

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kryndex/robottelo/internal/entities"
	"github.com/Kryndex/robottelo/internal/factory"
	"github.com/Kryndex/robottelo/internal/remote"
	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

var _ = Describe("Organization e2e tests", Ordered, func() {
	var (
		sshExec *remote.SSHExecutor
		client  *hammer.Client
		fac     *factory.Factory
		cleaner *factory.Cleaner
		org     *hammer.Entity
	)

	BeforeAll(func() {
		var err error
		GinkgoWriter.Printf("Connecting to %s...\n", cfg.Address())
		sshExec, err = remote.NewSSHExecutor(cfg.Server)
		Expect(err).ToNot(HaveOccurred(), "failed to connect to target")

		client = hammer.NewClient(sshExec,
			hammer.WithBinary(cfg.Hammer.Binary),
			hammer.WithCredentials(cfg.Hammer.Username, cfg.Hammer.Password),
		)
		cleaner = factory.NewCleaner(cfg.Workers)
		fac = factory.New(client, factory.WithCleaner(cleaner), factory.WithUploader(sshExec))
		org = entities.Organization(client)
	})

	AfterAll(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := cleaner.Run(ctx); err != nil {
			GinkgoWriter.Printf("cleanup incomplete: %v\n", err)
		}
		cleaner.Close()
		_ = sshExec.Close()
	})

	Context("lifecycle", func() {
		var created hammer.Record

		It("should create an organization", func(ctx SpecContext) {
			var err error
			created, err = fac.MakeOrg(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Field("id")).ToNot(BeEmpty())
			Expect(created.Field("name")).ToNot(BeEmpty())
		})

		It("should fetch it back by name", func(ctx SpecContext) {
			rec, err := org.Info(ctx, hammer.Options{"name": created.Field("name")})
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Field("id")).To(Equal(created.Field("id")))
		})

		It("should find it through a search", func(ctx SpecContext) {
			rec, found, err := org.Exists(ctx, "name", created.Field("name"))
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(rec.Field("id")).To(Equal(created.Field("id")))
		})

		It("should update the description", func(ctx SpecContext) {
			err := org.Update(ctx, hammer.Options{
				"id":          created.Field("id"),
				"description": "e2e run",
			})
			Expect(err).ToNot(HaveOccurred())

			rec, err := org.Info(ctx, hammer.Options{"id": created.Field("id")})
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Field("description")).To(Equal("e2e run"))
		})

		It("should reject a duplicate name", func(ctx SpecContext) {
			_, err := org.Create(ctx, hammer.Options{"name": created.Field("name")})
			Expect(err).To(HaveOccurred())
			Expect(errors.IsInvocationError(err)).To(BeTrue())
		})
	})

	Context("relations", func() {
		It("should attach and detach a user", func(ctx SpecContext) {
			parent, err := fac.MakeOrg(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			user, err := fac.MakeUser(ctx, nil)
			Expect(err).ToNot(HaveOccurred())

			err = org.AddRelation(ctx, "user", hammer.Options{
				"id":   parent.Field("id"),
				"user": user.Field("login"),
			})
			Expect(err).ToNot(HaveOccurred())

			rec, err := org.Info(ctx, hammer.Options{"id": parent.Field("id")})
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.List("users")).To(ContainElement(user.Field("login")))

			err = org.RemoveRelation(ctx, "user", hammer.Options{
				"id":   parent.Field("id"),
				"user": user.Field("login"),
			})
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Context("parameters", func() {
		It("should set and delete a parameter", func(ctx SpecContext) {
			parent, err := fac.MakeOrg(ctx, nil)
			Expect(err).ToNot(HaveOccurred())

			err = org.Action(ctx, "set-parameter", hammer.Options{
				"organization-id": parent.Field("id"),
				"name":            "e2e",
				"value":           "1",
			})
			Expect(err).ToNot(HaveOccurred())

			rec, err := org.Info(ctx, hammer.Options{"id": parent.Field("id")})
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Map("parameters")).To(HaveKeyWithValue("e2e", "1"))

			err = org.Action(ctx, "delete-parameter", hammer.Options{
				"organization-id": parent.Field("id"),
				"name":            "e2e",
			})
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Context("help", func() {
		It("should render list help without duplicate lines", func(ctx SpecContext) {
			help, err := org.Help(ctx, "list")
			Expect(err).ToNot(HaveOccurred())
			Expect(help.Lines).ToNot(BeEmpty())

			seen := map[string]bool{}
			for _, line := range help.Lines {
				if line == "" {
					continue
				}
				Expect(seen[line]).To(BeFalse(), fmt.Sprintf("duplicate help line %q", line))
				seen[line] = true
			}
		})
	})
})
