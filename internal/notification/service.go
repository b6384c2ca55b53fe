package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pradikta/taskhub/internal/core/events"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterEventHandlers subscribes the service to task events so that
// assignment and comment activity produces in-app notifications.
func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeTaskAssigned, s.handleTaskAssigned)
	bus.Subscribe(events.EventTypeTaskStatusChanged, s.handleStatusChanged)
	bus.Subscribe(events.EventTypeCommentAdded, s.handleCommentAdded)
}

func (s *Service) handleTaskAssigned(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TaskAssignedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	if e.AssigneeID == e.AssignedBy {
		return nil
	}

	return s.repo.Create(ctx, &Notification{
		UserID:    e.AssigneeID,
		Type:      TypeTaskAssigned,
		TaskID:    e.TaskID,
		ProjectID: e.ProjectID,
		Message:   fmt.Sprintf("You were assigned to task #%d", e.TaskID),
	})
}

func (s *Service) handleStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TaskStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	return s.repo.Create(ctx, &Notification{
		UserID:    e.ChangedBy,
		Type:      TypeStatusChanged,
		TaskID:    e.TaskID,
		ProjectID: e.ProjectID,
		Message:   fmt.Sprintf("Task #%d moved from %s to %s", e.TaskID, e.OldStatus, e.NewStatus),
	})
}

func (s *Service) handleCommentAdded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.CommentAddedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	return s.repo.Create(ctx, &Notification{
		UserID:    e.AuthorID,
		Type:      TypeCommentAdded,
		TaskID:    e.TaskID,
		ProjectID: e.ProjectID,
		Message:   fmt.Sprintf("New comment on task #%d", e.TaskID),
	})
}

func (s *Service) ListForUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := s.repo.ListForUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return ErrNotFound
	}
	if n.IsRead {
		return nil
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
