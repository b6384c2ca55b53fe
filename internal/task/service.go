package task

import (
	"context"
	"log/slog"

	"github.com/pradikta/taskhub/internal/core/events"
)

type Service struct {
	repo     Repository
	projects ProjectGuard
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectGuard, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		bus:      bus,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CreateTaskDTO, userID int64) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	teamID, err := s.projects.TeamForProject(ctx, dto.ProjectID, userID)
	if err != nil {
		return nil, err
	}

	priority := dto.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		ProjectID:   dto.ProjectID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      StatusTodo,
		Priority:    priority,
		AssigneeID:  dto.AssigneeID,
		CreatedBy:   userID,
		DueDate:     dto.DueDate,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create task", "project_id", dto.ProjectID, "error", err)
		return nil, err
	}

	s.bus.Publish(ctx, events.NewTaskCreatedEvent(t.ID, t.ProjectID, teamID, userID, t.Title))
	if t.AssigneeID != nil {
		s.bus.Publish(ctx, events.NewTaskAssignedEvent(t.ID, t.ProjectID, teamID, *t.AssigneeID, userID))
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, taskID, userID int64) (*Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.TeamForProject(ctx, t.ProjectID, userID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID, userID int64, status string, limit, offset int) ([]*Task, error) {
	if _, err := s.projects.TeamForProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if status != "" && !ValidStatus(status) {
		return nil, ValidationError{Msg: "status must be todo, in_progress or done"}
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByProject(ctx, projectID, status, limit, offset)
}

func (s *Service) Update(ctx context.Context, taskID, userID int64, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.DueDate != nil {
		t.DueDate = dto.DueDate
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Move(ctx context.Context, taskID, userID int64, dto MoveTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	teamID, err := s.projects.TeamForProject(ctx, t.ProjectID, userID)
	if err != nil {
		return nil, err
	}

	if t.Status == dto.Status {
		return t, nil
	}

	oldStatus := t.Status
	t.Status = dto.Status
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.NewTaskStatusChangedEvent(t.ID, t.ProjectID, teamID, userID, oldStatus, t.Status))
	return t, nil
}

func (s *Service) Assign(ctx context.Context, taskID, userID int64, dto AssignTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	teamID, err := s.projects.TeamForProject(ctx, t.ProjectID, userID)
	if err != nil {
		return nil, err
	}

	assigneeID := dto.AssigneeID
	t.AssigneeID = &assigneeID
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.NewTaskAssignedEvent(t.ID, t.ProjectID, teamID, assigneeID, userID))
	return t, nil
}

func (s *Service) Delete(ctx context.Context, taskID, userID int64) error {
	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, taskID)
}

func (s *Service) AddComment(ctx context.Context, taskID, userID int64, dto CreateCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	teamID, err := s.projects.TeamForProject(ctx, t.ProjectID, userID)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		TaskID:   taskID,
		AuthorID: userID,
		Body:     dto.Body,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.NewCommentAddedEvent(taskID, t.ProjectID, teamID, c.ID, userID))
	return c, nil
}

func (s *Service) ListComments(ctx context.Context, taskID, userID int64) ([]*Comment, error) {
	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, taskID)
}

func (s *Service) DeleteComment(ctx context.Context, taskID, commentID, userID int64) error {
	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return err
	}

	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.TaskID != taskID {
		return ErrCommentNotFound
	}
	if c.AuthorID != userID {
		return ValidationError{Msg: "only the author may delete a comment"}
	}
	return s.repo.DeleteComment(ctx, commentID)
}

func (s *Service) AddAttachment(ctx context.Context, a *Attachment, userID int64) error {
	if _, err := s.Get(ctx, a.TaskID, userID); err != nil {
		return err
	}
	return s.repo.CreateAttachment(ctx, a)
}

func (s *Service) GetAttachment(ctx context.Context, taskID, attachmentID, userID int64) (*Attachment, error) {
	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if a.TaskID != taskID {
		return nil, ErrAttachmentNotFound
	}
	return a, nil
}

func (s *Service) ListAttachments(ctx context.Context, taskID, userID int64) ([]*Attachment, error) {
	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListAttachments(ctx, taskID)
}
