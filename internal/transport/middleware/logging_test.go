package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal/transport/middleware"
)

var _ = Describe("LoggingMiddleware", func() {
	var (
		buf     *bytes.Buffer
		handler http.Handler
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		lg := slog.New(slog.NewTextHandler(buf, nil))
		handler = middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	})

	It("should log method, path and status", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)

		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(buf.String()).To(ContainSubstring("http request"))
		Expect(buf.String()).To(ContainSubstring("method=GET"))
		Expect(buf.String()).To(ContainSubstring("path=/api/v1/teams"))
		Expect(buf.String()).To(ContainSubstring("status=200"))
	})

	It("should never log a bearer token riding in the query string", func() {
		req := httptest.NewRequest(http.MethodGet, "/ws/teams/1?token=eyJhbGciOiJIUzI1NiJ9.SECRETCLAIMS.SIGNATURE&limit=5", nil)

		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(buf.String()).NotTo(ContainSubstring("SECRETCLAIMS"))
		Expect(buf.String()).NotTo(ContainSubstring("SIGNATURE"))
		Expect(buf.String()).To(ContainSubstring("token=REDACTED"))
		Expect(buf.String()).To(ContainSubstring("limit=5"))
	})

	It("should redact credential parameters regardless of case", func() {
		req := httptest.NewRequest(http.MethodGet, "/ws/teams/1?Access_Token=supersecret", nil)

		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(buf.String()).NotTo(ContainSubstring("supersecret"))
		Expect(buf.String()).To(ContainSubstring("REDACTED"))
	})
})
