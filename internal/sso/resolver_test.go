package sso

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal"
)

var _ = ginkgo.Describe("EmailResolver", func() {
	var (
		resolver *EmailResolver
		dir      *mockDirectory
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		dir = newMockDirectory()
		resolver = NewEmailResolver(internal.SSOConfig{Secret: "x"}, dir)
		ctx = context.Background()
	})

	ginkgo.Context("when the email claim is present", func() {
		ginkgo.It("should return it without touching the directory", func() {
			email, err := resolver.Resolve(ctx, jwt.MapClaims{
				"email":       "dika@taskhub.dev",
				"sub":         "sari@taskhub.dev",
				"employee_id": "1001",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(email).To(gomega.Equal("dika@taskhub.dev"))
			gomega.Expect(dir.idCalls).To(gomega.BeZero())
		})
	})

	ginkgo.Context("when only the subject claim is present", func() {
		ginkgo.It("should fall back to sub", func() {
			email, err := resolver.Resolve(ctx, jwt.MapClaims{
				"sub": "sari@taskhub.dev",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(email).To(gomega.Equal("sari@taskhub.dev"))
		})
	})

	ginkgo.Context("when only the employee id claim is present", func() {
		ginkgo.It("should resolve through the directory", func() {
			dir.byEmployeeID["1001"] = dirRecord("bayu@taskhub.dev", "Bayu", "")

			email, err := resolver.Resolve(ctx, jwt.MapClaims{
				"employee_id": "1001",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(email).To(gomega.Equal("bayu@taskhub.dev"))
			gomega.Expect(dir.idCalls).To(gomega.Equal(1))
		})

		ginkgo.It("should accept a numeric employee id claim", func() {
			dir.byEmployeeID["1001"] = dirRecord("bayu@taskhub.dev", "Bayu", "")

			email, err := resolver.Resolve(ctx, jwt.MapClaims{
				"employee_id": float64(1001),
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(email).To(gomega.Equal("bayu@taskhub.dev"))
		})

		ginkgo.It("should report an unknown employee distinctly", func() {
			_, err := resolver.Resolve(ctx, jwt.MapClaims{
				"employee_id": "9999",
			})

			gomega.Expect(err).To(gomega.MatchError(ErrEmployeeNotFound))
		})

		ginkgo.It("should propagate directory failures", func() {
			dirErr := errors.New("link down")
			dir.failWith = dirErr

			_, err := resolver.Resolve(ctx, jwt.MapClaims{
				"employee_id": "1001",
			})

			gomega.Expect(err).To(gomega.MatchError(dirErr))
		})
	})

	ginkgo.Context("when no identity claim is usable", func() {
		ginkgo.It("should fail with the resolve error", func() {
			_, err := resolver.Resolve(ctx, jwt.MapClaims{
				"aud": "taskhub",
			})

			gomega.Expect(err).To(gomega.MatchError(ErrEmailResolve))
		})

		ginkgo.It("should fail when the directory row carries no email", func() {
			dir.byEmployeeID["1001"] = dirRecord("", "Bayu", "")

			_, err := resolver.Resolve(ctx, jwt.MapClaims{
				"employee_id": "1001",
			})

			gomega.Expect(err).To(gomega.MatchError(ErrEmailResolve))
		})
	})

	ginkgo.Context("with custom claim names", func() {
		ginkgo.It("should honor the configured claims", func() {
			custom := NewEmailResolver(internal.SSOConfig{
				Secret:          "x",
				EmailClaim:      "mail",
				EmployeeIDClaim: "nik",
			}, dir)
			dir.byEmployeeID["7"] = dirRecord("tia@taskhub.dev", "Tia", "")

			email, err := custom.Resolve(ctx, jwt.MapClaims{"nik": "7"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(email).To(gomega.Equal("tia@taskhub.dev"))
		})
	})
})
