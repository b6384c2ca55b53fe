package task

import (
	"context"
	"errors"
	"time"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	ProjectID   int64      `json:"project_id" gorm:"column:project_id;not null;index"`
	Title       string     `json:"title" gorm:"column:title;not null"`
	Description string     `json:"description" gorm:"column:description"`
	Status      string     `json:"status" gorm:"column:status;default:todo"`
	Priority    string     `json:"priority" gorm:"column:priority;default:medium"`
	AssigneeID  *int64     `json:"assignee_id" gorm:"column:assignee_id"`
	CreatedBy   int64      `json:"created_by" gorm:"column:created_by;not null"`
	DueDate     *time.Time `json:"due_date" gorm:"column:due_date"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TaskID    int64     `json:"task_id" gorm:"column:task_id;not null;index"`
	AuthorID  int64     `json:"author_id" gorm:"column:author_id;not null"`
	Body      string    `json:"body" gorm:"column:body;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Comment) TableName() string {
	return "task_comments"
}

type Attachment struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TaskID      int64     `json:"task_id" gorm:"column:task_id;not null;index"`
	UploaderID  int64     `json:"uploader_id" gorm:"column:uploader_id;not null"`
	FileName    string    `json:"file_name" gorm:"column:file_name;not null"`
	StorageKey  string    `json:"-" gorm:"column:storage_key;not null"`
	ContentType string    `json:"content_type" gorm:"column:content_type"`
	SizeBytes   int64     `json:"size_bytes" gorm:"column:size_bytes"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Attachment) TableName() string {
	return "task_attachments"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

var (
	ErrNotFound           = errors.New("task not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
)

type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	ListByProject(ctx context.Context, projectID int64, status string, limit, offset int) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, taskID int64) ([]*Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	GetComment(ctx context.Context, id int64) (*Comment, error)

	CreateAttachment(ctx context.Context, a *Attachment) error
	GetAttachment(ctx context.Context, id int64) (*Attachment, error)
	ListAttachments(ctx context.Context, taskID int64) ([]*Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) error
}

// ProjectGuard resolves a project and its owning team for tenancy checks.
type ProjectGuard interface {
	TeamForProject(ctx context.Context, projectID, userID int64) (int64, error)
}
