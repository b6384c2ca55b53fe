package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/pradikta/taskhub/internal/project"
	"github.com/pradikta/taskhub/internal/team"
	"github.com/pradikta/taskhub/internal/transport"
	"github.com/pradikta/taskhub/internal/user"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) ProjectSummary(w http.ResponseWriter, r *http.Request) {
	u, projectID, ok := h.projectRequester(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.ProjectSummary(r.Context(), projectID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) AssigneeLoads(w http.ResponseWriter, r *http.Request) {
	u, projectID, ok := h.projectRequester(w, r)
	if !ok {
		return
	}

	loads, err := h.Service.AssigneeLoads(r.Context(), projectID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assignees": loads})
}

func (h *Handler) TeamActivity(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	activity, err := h.Service.TeamActivity(r.Context(), teamID, u.ID, days)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"activity": activity})
}

func (h *Handler) projectRequester(w http.ResponseWriter, r *http.Request) (*user.User, int64, bool) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, 0, false
	}

	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return nil, 0, false
	}

	return u, projectID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, team.ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "team not found")
	case errors.Is(err, team.ErrNotMember):
		h.WriteError(w, http.StatusForbidden, "not a member of this team")
	default:
		h.Logger.Error("analytics handler: unexpected error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
