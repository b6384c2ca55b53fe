package task

import "time"

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

type CreateTaskDTO struct {
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssigneeID  *int64     `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

func (d CreateTaskDTO) Validate() error {
	if d.ProjectID == 0 {
		return ValidationError{Msg: "project_id is required"}
	}
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if len(d.Title) > 200 {
		return ValidationError{Msg: "title must not exceed 200 characters"}
	}
	if d.Priority != "" && !ValidPriority(d.Priority) {
		return ValidationError{Msg: "priority must be low, medium or high"}
	}
	return nil
}

type UpdateTaskDTO struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (d UpdateTaskDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return ValidationError{Msg: "title must not be empty"}
	}
	if d.Priority != nil && !ValidPriority(*d.Priority) {
		return ValidationError{Msg: "priority must be low, medium or high"}
	}
	return nil
}

type MoveTaskDTO struct {
	Status string `json:"status"`
}

func (d MoveTaskDTO) Validate() error {
	if !ValidStatus(d.Status) {
		return ValidationError{Msg: "status must be todo, in_progress or done"}
	}
	return nil
}

type AssignTaskDTO struct {
	AssigneeID int64 `json:"assignee_id"`
}

func (d AssignTaskDTO) Validate() error {
	if d.AssigneeID == 0 {
		return ValidationError{Msg: "assignee_id is required"}
	}
	return nil
}

type CreateCommentDTO struct {
	Body string `json:"body"`
}

func (d CreateCommentDTO) Validate() error {
	if d.Body == "" {
		return ValidationError{Msg: "body is required"}
	}
	if len(d.Body) > 4000 {
		return ValidationError{Msg: "body must not exceed 4000 characters"}
	}
	return nil
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *int64     `json:"assignee_id"`
	CreatedBy   int64      `json:"created_by"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

type AttachmentResponse struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"task_id"`
	UploaderID  int64     `json:"uploader_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttachmentsResponse struct {
	Attachments []AttachmentResponse `json:"attachments"`
}

func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		CreatedBy:   t.CreatedBy,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func (a *Attachment) ToResponse() AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		TaskID:      a.TaskID,
		UploaderID:  a.UploaderID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		CreatedAt:   a.CreatedAt,
	}
}
