package chat

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/sso"
	"github.com/pradikta/taskhub/internal/transport"
	"github.com/pradikta/taskhub/internal/transport/middleware"
	"github.com/pradikta/taskhub/internal/user"
)

type stubSocketAuth struct {
	user *user.User
	err  error
}

func (s *stubSocketAuth) AuthenticateSocket(_ context.Context, _ string) (*user.User, error) {
	return s.user, s.err
}

type stubMembership struct {
	member bool
}

func (s *stubMembership) IsMember(_ context.Context, _, _ int64) bool {
	return s.member
}

var _ = ginkgo.Describe("Handler", func() {
	var (
		hub     *Hub
		auth    *stubSocketAuth
		teams   *stubMembership
		handler *Handler
	)

	ginkgo.BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(ginkgo.GinkgoWriter, nil))
		hub = NewHub(lg)
		auth = &stubSocketAuth{user: &user.User{ID: 1, FullName: "Dika", IsActive: true}}
		teams = &stubMembership{member: true}
		handler = NewHandler(
			transport.NewBaseHandler(lg),
			hub,
			auth,
			teams,
			middleware.NewOriginPolicy("http://app.taskhub.dev"),
			internal.ChatConfig{},
		)
	})

	handshake := func(token, origin string) *httptest.ResponseRecorder {
		target := "/ws/teams/100"
		if token != "" {
			target += "?token=" + token
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		req.Header.Set("Sec-WebSocket-Version", "13")
		req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
		if origin != "" {
			req.Header.Set("Origin", origin)
		}

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("teamID", "100")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rec := httptest.NewRecorder()
		handler.ServeRoom(rec, req)
		return rec
	}

	ginkgo.Describe("ServeRoom", func() {
		ginkgo.It("should refuse a handshake without a token", func() {
			rec := handshake("", "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("missing authorization token"))
		})

		ginkgo.It("should refuse a bad token without detail", func() {
			auth.err = sso.ErrInvalidSignature

			rec := handshake("bad-token", "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("authentication failed"))
		})

		ginkgo.It("should refuse a non-member", func() {
			teams.member = false

			rec := handshake("good-token", "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should refuse an origin outside the configured allow list", func() {
			rec := handshake("good-token", "http://evil.example.com")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("origin not allowed"))
			gomega.Expect(hub.RoomSize(100)).To(gomega.BeZero())
		})
	})
})
