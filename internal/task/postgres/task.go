package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pradikta/taskhub/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements the task.Repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	var t task.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64, status string, limit, offset int) ([]*task.Task, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var tasks []*task.Task
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&task.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&task.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task.Task{}, id).Error
	})
}

func (r *TaskRepository) CreateComment(ctx context.Context, c *task.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *TaskRepository) ListComments(ctx context.Context, taskID int64) ([]*task.Comment, error) {
	var comments []*task.Comment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *TaskRepository) GetComment(ctx context.Context, id int64) (*task.Comment, error) {
	var c task.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *TaskRepository) DeleteComment(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&task.Comment{}, id).Error
}

func (r *TaskRepository) CreateAttachment(ctx context.Context, a *task.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *TaskRepository) GetAttachment(ctx context.Context, id int64) (*task.Attachment, error) {
	var a task.Attachment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrAttachmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *TaskRepository) ListAttachments(ctx context.Context, taskID int64) ([]*task.Attachment, error) {
	var attachments []*task.Attachment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *TaskRepository) DeleteAttachment(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&task.Attachment{}, id).Error
}
