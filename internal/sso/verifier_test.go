package sso

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal"
)

const testSecret = "test-sso-secret"

func signToken(secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	return signed
}

var _ = ginkgo.Describe("TokenVerifier", func() {
	var verifier *TokenVerifier

	ginkgo.BeforeEach(func() {
		verifier = NewTokenVerifier(internal.SSOConfig{Secret: testSecret, Algorithm: "HS256"})
	})

	ginkgo.Describe("Verify", func() {
		ginkgo.It("should accept a token signed with the shared secret", func() {
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "dika@taskhub.dev",
				"exp":   time.Now().Add(time.Hour).Unix(),
			})

			claims, err := verifier.Verify(token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims["email"]).To(gomega.Equal("dika@taskhub.dev"))
		})

		ginkgo.It("should reject garbage as malformed", func() {
			_, err := verifier.Verify("not-a-jwt")

			gomega.Expect(err).To(gomega.MatchError(ErrMalformedToken))
		})

		ginkgo.It("should reject an expired token", func() {
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "dika@taskhub.dev",
				"exp":   time.Now().Add(-time.Hour).Unix(),
			})

			_, err := verifier.Verify(token)

			gomega.Expect(err).To(gomega.MatchError(ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			token := signToken("some-other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "dika@taskhub.dev",
				"exp":   time.Now().Add(time.Hour).Unix(),
			})

			_, err := verifier.Verify(token)

			gomega.Expect(err).To(gomega.MatchError(ErrInvalidSignature))
		})

		ginkgo.It("should reject a disallowed signing method", func() {
			token := signToken(testSecret, jwt.SigningMethodHS512, jwt.MapClaims{
				"email": "dika@taskhub.dev",
				"exp":   time.Now().Add(time.Hour).Unix(),
			})

			_, err := verifier.Verify(token)

			gomega.Expect(err).To(gomega.MatchError(ErrInvalidSignature))
		})

		ginkgo.It("should accept a token when the configured secret carries quotes", func() {
			quoted := NewTokenVerifier(internal.SSOConfig{Secret: `  "` + testSecret + `"  `, Algorithm: "HS256"})
			token := signToken(testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "42",
				"exp": time.Now().Add(time.Hour).Unix(),
			})

			_, err := quoted.Verify(token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("SanitizeSecret", func() {
		ginkgo.It("should strip whitespace and surrounding quotes", func() {
			gomega.Expect(SanitizeSecret(`  "secret"  `)).To(gomega.Equal("secret"))
			gomega.Expect(SanitizeSecret(`'secret'`)).To(gomega.Equal("secret"))
			gomega.Expect(SanitizeSecret(" secret ")).To(gomega.Equal("secret"))
			gomega.Expect(SanitizeSecret(`" secret "`)).To(gomega.Equal("secret"))
		})

		ginkgo.It("should leave interior quotes alone", func() {
			gomega.Expect(SanitizeSecret(`sec"ret`)).To(gomega.Equal(`sec"ret`))
		})
	})
})
