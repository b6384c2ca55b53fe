package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/pradikta/taskhub/internal/team"
	"github.com/pradikta/taskhub/internal/transport"
	"github.com/pradikta/taskhub/internal/user"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(r.Context(), dto, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p.ToResponse())
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	u, projectID, ok := h.requester(w, r)
	if !ok {
		return
	}

	p, err := h.Service.Get(r.Context(), projectID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	teamID, err := strconv.ParseInt(r.URL.Query().Get("team_id"), 10, 64)
	if err != nil || teamID == 0 {
		h.WriteError(w, http.StatusBadRequest, "team_id query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	projects, err := h.Service.ListByTeam(r.Context(), teamID, u.ID, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := ProjectsResponse{Projects: make([]ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, p.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	u, projectID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(r.Context(), projectID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	u, projectID, ok := h.requester(w, r)
	if !ok {
		return
	}

	p, err := h.Service.Archive(r.Context(), projectID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) RestoreProject(w http.ResponseWriter, r *http.Request) {
	u, projectID, ok := h.requester(w, r)
	if !ok {
		return
	}

	p, err := h.Service.Restore(r.Context(), projectID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (*user.User, int64, bool) {
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
	var vErr ValidationError
	switch {
	case errors.As(err, &vErr):
		h.WriteError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, team.ErrNotMember):
		h.WriteError(w, http.StatusForbidden, "not a member of this team")
	default:
		h.Logger.Error("project handler: unexpected error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
