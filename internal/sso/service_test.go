package sso

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/user"
)

var _ = ginkgo.Describe("Service", func() {
	var (
		service *Service
		repo    *mockUserRepository
		dir     *mockDirectory
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		dir = newMockDirectory()
		service = NewService(internal.SSOConfig{Secret: testSecret, Algorithm: "HS256"}, dir, repo, testLogger())
		ctx = context.Background()
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should run the full pipeline and provision a user", func() {
			dir.byEmail["dika@taskhub.dev"] = dirRecord("dika@taskhub.dev", "Dika Pradikta", "")
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "dika@taskhub.dev",
				"exp":   time.Now().Add(time.Hour).Unix(),
			})

			u, err := service.Authenticate(ctx, token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Email).To(gomega.Equal("dika@taskhub.dev"))
			gomega.Expect(u.FullName).To(gomega.Equal("Dika Pradikta"))
		})

		ginkgo.It("should refuse an inactive user after provisioning", func() {
			repo.byEmail["dika@taskhub.dev"] = &user.User{
				ID: 1, Email: "dika@taskhub.dev", IsActive: false,
			}
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "dika@taskhub.dev",
				"exp":   time.Now().Add(time.Hour).Unix(),
			})

			_, err := service.Authenticate(ctx, token)

			gomega.Expect(err).To(gomega.MatchError(ErrUserInactive))
		})

		ginkgo.It("should surface token errors untouched", func() {
			_, err := service.Authenticate(ctx, "broken")

			gomega.Expect(err).To(gomega.MatchError(ErrMalformedToken))
		})
	})

	ginkgo.Describe("AuthenticateSocket", func() {
		ginkgo.It("should look up by numeric subject without provisioning", func() {
			repo.byEmail["dika@taskhub.dev"] = &user.User{
				ID: 42, Email: "dika@taskhub.dev", IsActive: true,
			}
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "42",
				"exp": time.Now().Add(time.Hour).Unix(),
			})

			u, err := service.AuthenticateSocket(ctx, token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).To(gomega.Equal(int64(42)))
			gomega.Expect(repo.createCalls).To(gomega.BeZero())
		})

		ginkgo.It("should fall back to email lookup for non-numeric subjects", func() {
			repo.byEmail["dika@taskhub.dev"] = &user.User{
				ID: 42, Email: "dika@taskhub.dev", IsActive: true,
			}
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "dika@taskhub.dev",
				"exp": time.Now().Add(time.Hour).Unix(),
			})

			u, err := service.AuthenticateSocket(ctx, token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).To(gomega.Equal(int64(42)))
		})

		ginkgo.It("should refuse a subject with no local user", func() {
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "999",
				"exp": time.Now().Add(time.Hour).Unix(),
			})

			_, err := service.AuthenticateSocket(ctx, token)

			gomega.Expect(err).To(gomega.MatchError(ErrEmailResolve))
		})

		ginkgo.It("should refuse an inactive user", func() {
			repo.byEmail["dika@taskhub.dev"] = &user.User{
				ID: 42, Email: "dika@taskhub.dev", IsActive: false,
			}
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "42",
				"exp": time.Now().Add(time.Hour).Unix(),
			})

			_, err := service.AuthenticateSocket(ctx, token)

			gomega.Expect(err).To(gomega.MatchError(ErrUserInactive))
		})
	})
})
