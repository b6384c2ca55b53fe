package page

import (
	"encoding/json"
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

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreatePageDTO
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

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	projectID, err := strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		h.WriteError(w, http.StatusBadRequest, "project_id query parameter is required")
		return
	}

	pages, err := h.Service.ListByProject(r.Context(), projectID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := PagesResponse{Pages: make([]PageResponse, 0, len(pages))}
	for _, p := range pages {
		resp.Pages = append(resp.Pages, p.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	u, pageID, ok := h.requester(w, r)
	if !ok {
		return
	}

	p, err := h.Service.Get(r.Context(), pageID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

// GetPageBySlug sits behind the optional auth middleware so public
// pages stay readable without a token.
func (h *Handler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	slug := chi.URLParam(r, "slug")

	var userID int64
	if u, ok := user.FromContext(r.Context()); ok {
		userID = u.ID
	}

	p, err := h.Service.GetBySlug(r.Context(), projectID, slug, userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	u, pageID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto UpdatePageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(r.Context(), pageID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	u, pageID, ok := h.requester(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), pageID, u.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (*user.User, int64, bool) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, 0, false
	}

	pageID, err := strconv.ParseInt(chi.URLParam(r, "pageID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid page id")
		return nil, 0, false
	}

	return u, pageID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var vErr ValidationError
	switch {
	case errors.As(err, &vErr):
		h.WriteError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "page not found")
	case errors.Is(err, ErrDuplicateSlug):
		h.WriteError(w, http.StatusConflict, "a page with this slug already exists")
	case errors.Is(err, project.ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, team.ErrNotMember):
		h.WriteError(w, http.StatusForbidden, "not a member of this team")
	default:
		h.Logger.Error("page handler: unexpected error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
