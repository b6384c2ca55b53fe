package chat

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/transport"
	"github.com/pradikta/taskhub/internal/transport/middleware"
	"github.com/pradikta/taskhub/internal/user"
)

// SocketAuthenticator is the handshake-time token check; the sso service
// implements it.
type SocketAuthenticator interface {
	AuthenticateSocket(ctx context.Context, token string) (*user.User, error)
}

// Membership gates room entry to team members.
type Membership interface {
	IsMember(ctx context.Context, teamID, userID int64) bool
}

type Handler struct {
	*transport.BaseHandler
	hub      *Hub
	auth     SocketAuthenticator
	teams    Membership
	cfg      internal.ChatConfig
	upgrader websocket.Upgrader
}

func NewHandler(baseHandler *transport.BaseHandler, hub *Hub, auth SocketAuthenticator, teams Membership, origins *middleware.OriginPolicy, cfg internal.ChatConfig) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		hub:         hub,
		auth:        auth,
		teams:       teams,
		cfg:         cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return origins.Allows(r.Header.Get("Origin"))
			},
		},
	}
}

// ServeRoom upgrades the connection and joins the caller to their team's
// room. Authentication happens before the upgrade: browsers cannot set an
// Authorization header on a websocket handshake, so the token rides in
// the query string.
func (h *Handler) ServeRoom(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		token = h.ExtractTokenFromHeader(r)
	}
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	u, err := h.auth.AuthenticateSocket(r.Context(), token)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	if !h.teams.IsMember(r.Context(), teamID, u.ID) {
		h.WriteError(w, http.StatusForbidden, "not a member of this team")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", "team_id", teamID, "user_id", u.ID, "error", err)
		return
	}

	c := newClient(h.hub, conn, teamID, u.ID, u.FullName, h.cfg)
	h.hub.register(c)

	h.hub.Broadcast(teamID, Message{
		Type:       MessageTypeSystem,
		TeamID:     teamID,
		SenderID:   u.ID,
		SenderName: u.FullName,
		Body:       u.FullName + " joined",
		SentAt:     time.Now(),
	})

	go c.writePump()
	go c.readPump()
}
