package task

import (
	"encoding/json"
	"errors"
	"io"
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
	Service       *Service
	Store         *DiskStore
	MaxUploadSize int64
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, store *DiskStore, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = 10 << 20
	}
	return &Handler{
		BaseHandler:   baseHandler,
		Service:       service,
		Store:         store,
		MaxUploadSize: maxUploadSize,
	}
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateTaskDTO
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

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
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
	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tasks, err := h.Service.ListByProject(r.Context(), projectID, u.ID, status, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := TasksResponse{Tasks: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, t.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	t, err := h.Service.Get(r.Context(), taskID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t.ToResponse())
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto UpdateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(r.Context(), taskID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t.ToResponse())
}

func (h *Handler) MoveTask(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto MoveTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Move(r.Context(), taskID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t.ToResponse())
}

func (h *Handler) AssignTask(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto AssignTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Assign(r.Context(), taskID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t.ToResponse())
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), taskID, u.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.AddComment(r.Context(), taskID, u.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c.ToResponse())
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	comments, err := h.Service.ListComments(r.Context(), taskID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := CommentsResponse{Comments: make([]CommentResponse, 0, len(comments))}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, c.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.Service.DeleteComment(r.Context(), taskID, commentID, u.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "file exceeds maximum upload size")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	key, size, err := h.Store.Save(file)
	if err != nil {
		h.Logger.Error("UploadAttachment: failed to store file", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to store attachment")
		return
	}

	a := &Attachment{
		TaskID:      taskID,
		UploaderID:  u.ID,
		FileName:    header.Filename,
		StorageKey:  key,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   size,
	}
	if err := h.Service.AddAttachment(r.Context(), a, u.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a.ToResponse())
}

func (h *Handler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	attachments, err := h.Service.ListAttachments(r.Context(), taskID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := AttachmentsResponse{Attachments: make([]AttachmentResponse, 0, len(attachments))}
	for _, a := range attachments {
		resp.Attachments = append(resp.Attachments, a.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	u, taskID, ok := h.requester(w, r)
	if !ok {
		return
	}

	attachmentID, err := strconv.ParseInt(chi.URLParam(r, "attachmentID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attachment id")
		return
	}

	a, err := h.Service.GetAttachment(r.Context(), taskID, attachmentID, u.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	f, err := h.Store.Open(a.StorageKey)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	defer f.Close()

	if a.ContentType != "" {
		w.Header().Set("Content-Type", a.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.FileName+`"`)
	io.Copy(w, f)
}

func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (*user.User, int64, bool) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, 0, false
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid task id")
		return nil, 0, false
	}

	return u, taskID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var vErr ValidationError
	switch {
	case errors.As(err, &vErr):
		h.WriteError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, ErrCommentNotFound):
		h.WriteError(w, http.StatusNotFound, "comment not found")
	case errors.Is(err, ErrAttachmentNotFound):
		h.WriteError(w, http.StatusNotFound, "attachment not found")
	case errors.Is(err, project.ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, team.ErrNotMember):
		h.WriteError(w, http.StatusForbidden, "not a member of this team")
	default:
		h.Logger.Error("task handler: unexpected error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
