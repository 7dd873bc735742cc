package hammer_test

import (
	"context"
	goerrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

var _ = Describe("Client", func() {
	var (
		ctx      context.Context
		captured []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		captured = nil
	})

	newClient := func(res *hammer.Result, execErr error) *hammer.Client {
		exec := hammer.ExecutorFunc(func(_ context.Context, args []string) (*hammer.Result, error) {
			captured = args
			return res, execErr
		})
		return hammer.NewClient(exec, hammer.WithCredentials("admin", "changeme"))
	}

	entity := func(c *hammer.Client) *hammer.Entity {
		return hammer.MustEntity(c, hammer.Descriptor{Command: "organization"})
	}

	Context("success", func() {
		It("should hand stdout to the decoder", func() {
			c := newClient(&hammer.Result{
				ExitStatus: 0,
				Stdout:     []string{"Id: 1", "Name: Acme"},
			}, nil)

			rec, err := entity(c).Info(ctx, hammer.Options{"id": "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Field("name")).To(Equal("Acme"))
			Expect(captured).To(Equal([]string{
				"hammer", "-u", "admin", "-p", "changeme",
				"--output", "base", "organization", "info", "--id", "1",
			}))
		})

		It("should use the configured binary", func() {
			exec := hammer.ExecutorFunc(func(_ context.Context, args []string) (*hammer.Result, error) {
				captured = args
				return &hammer.Result{ExitStatus: 0}, nil
			})
			c := hammer.NewClient(exec, hammer.WithBinary("/usr/bin/hammer"))
			_ = hammer.MustEntity(c, hammer.Descriptor{Command: "organization"}).
				Delete(ctx, hammer.Options{"id": "1"})
			Expect(captured[0]).To(Equal("/usr/bin/hammer"))
		})
	})

	Context("failure classification", func() {
		It("should wrap executor errors as transport errors", func() {
			boom := goerrors.New("connection refused")
			c := newClient(nil, boom)

			_, err := entity(c).Info(ctx, hammer.Options{"id": "1"})
			Expect(err).To(HaveOccurred())
			Expect(errors.IsTransportError(err)).To(BeTrue())
			Expect(errors.IsInvocationError(err)).To(BeFalse())
			Expect(goerrors.Is(err, boom)).To(BeTrue())
		})

		It("should turn a non-zero exit into an invocation error carrying stderr", func() {
			c := newClient(&hammer.Result{
				ExitStatus: 70,
				Stderr:     []string{"Validation failed: Name has already been taken"},
			}, nil)

			_, err := entity(c).Create(ctx, hammer.Options{"name": "Acme"})
			Expect(err).To(HaveOccurred())
			Expect(errors.IsInvocationError(err)).To(BeTrue())
			Expect(errors.IsTransportError(err)).To(BeFalse())

			var invErr *errors.InvocationError
			Expect(goerrors.As(err, &invErr)).To(BeTrue())
			Expect(invErr.Status).To(Equal(70))
			Expect(invErr.Stderr).To(ContainSubstring("Name has already been taken"))
		})

		It("should not treat stderr noise on exit zero as a failure", func() {
			c := newClient(&hammer.Result{
				ExitStatus: 0,
				Stdout:     []string{"Id: 1", "Name: Acme"},
				Stderr:     []string{"Warning: deprecated flag"},
			}, nil)

			rec, err := entity(c).Info(ctx, hammer.Options{"id": "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Field("id")).To(Equal("1"))
		})
	})
})
