package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal/transport/middleware"
)

var _ = Describe("OriginPolicy", func() {
	It("should allow everything when configured with a wildcard", func() {
		policy := middleware.NewOriginPolicy("*")

		Expect(policy.Allows("http://anywhere.example.com")).To(BeTrue())
	})

	It("should allow only the listed origins otherwise", func() {
		policy := middleware.NewOriginPolicy("http://app.taskhub.dev, http://admin.taskhub.dev")

		Expect(policy.Allows("http://app.taskhub.dev")).To(BeTrue())
		Expect(policy.Allows("http://admin.taskhub.dev")).To(BeTrue())
		Expect(policy.Allows("http://evil.example.com")).To(BeFalse())
	})

	It("should pass requests that carry no origin at all", func() {
		policy := middleware.NewOriginPolicy("http://app.taskhub.dev")

		Expect(policy.Allows("")).To(BeTrue())
	})
})

var _ = Describe("CORSWithOrigins", func() {
	newHandler := func(allowed string) http.Handler {
		return middleware.CORSWithOrigins(allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}

	It("should echo an allowed origin back", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		req.Header.Set("Origin", "http://app.taskhub.dev")

		newHandler("http://app.taskhub.dev").ServeHTTP(rec, req)

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://app.taskhub.dev"))
	})

	It("should set no CORS headers for a disallowed origin", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		req.Header.Set("Origin", "http://evil.example.com")

		newHandler("http://app.taskhub.dev").ServeHTTP(rec, req)

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("should short-circuit preflight requests", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
		req.Header.Set("Origin", "http://app.taskhub.dev")

		newHandler("http://app.taskhub.dev").ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
	})
})
