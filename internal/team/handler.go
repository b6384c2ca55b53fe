package team

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
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

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(r.Context(), dto, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t.ToResponse())
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	teams, err := h.Service.ListForUser(r.Context(), u.ID)
	if err != nil {
		h.Logger.Error("ListTeams: failed to list teams", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list teams")
		return
	}

	resp := TeamsResponse{Teams: make([]TeamResponse, 0, len(teams))}
	for _, t := range teams {
		resp.Teams = append(resp.Teams, t.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	u, teamID, ok := h.requester(w, r)
	if !ok {
		return
	}

	t, err := h.Service.GetForMember(r.Context(), teamID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t.ToResponse())
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	u, teamID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto UpdateTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(r.Context(), teamID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t.ToResponse())
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	u, teamID, ok := h.requester(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), teamID, u.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	u, teamID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto AddMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.AddMember(r.Context(), teamID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m.ToResponse())
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	u, teamID, ok := h.requester(w, r)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.RemoveMember(r.Context(), teamID, u.ID, userID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	u, teamID, ok := h.requester(w, r)
	if !ok {
		return
	}

	members, err := h.Service.ListMembers(r.Context(), teamID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := MembersResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, m.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (*user.User, int64, bool) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, 0, false
	}

	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team id")
		return nil, 0, false
	}

	return u, teamID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var vErr ValidationError
	switch {
	case errors.As(err, &vErr):
		h.WriteError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "team not found")
	case errors.Is(err, ErrNotMember):
		h.WriteError(w, http.StatusForbidden, "not a member of this team")
	case errors.Is(err, ErrOwnerOnly), errors.Is(err, ErrCannotDropOwner):
		h.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrAlreadyMember):
		h.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.Logger.Error("team handler: unexpected error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
