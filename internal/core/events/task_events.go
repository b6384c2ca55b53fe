package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTaskCreated       = "task.created"
	EventTypeTaskStatusChanged = "task.status_changed"
	EventTypeTaskAssigned      = "task.assigned"
	EventTypeCommentAdded      = "task.comment_added"
)

type TaskCreatedEvent struct {
	BaseEvent
	TaskID    int64  `json:"task_id"`
	ProjectID int64  `json:"project_id"`
	TeamID    int64  `json:"team_id"`
	Title     string `json:"title"`
	CreatedBy int64  `json:"created_by"`
}

func NewTaskCreatedEvent(taskID, projectID, teamID, createdBy int64, title string) *TaskCreatedEvent {
	return &TaskCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":    taskID,
				"project_id": projectID,
				"team_id":    teamID,
				"title":      title,
				"created_by": createdBy,
			},
		},
		TaskID:    taskID,
		ProjectID: projectID,
		TeamID:    teamID,
		Title:     title,
		CreatedBy: createdBy,
	}
}

type TaskStatusChangedEvent struct {
	BaseEvent
	TaskID    int64  `json:"task_id"`
	ProjectID int64  `json:"project_id"`
	TeamID    int64  `json:"team_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy int64  `json:"changed_by"`
}

func NewTaskStatusChangedEvent(taskID, projectID, teamID, changedBy int64, oldStatus, newStatus string) *TaskStatusChangedEvent {
	return &TaskStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":    taskID,
				"project_id": projectID,
				"team_id":    teamID,
				"old_status": oldStatus,
				"new_status": newStatus,
				"changed_by": changedBy,
			},
		},
		TaskID:    taskID,
		ProjectID: projectID,
		TeamID:    teamID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
	}
}

type TaskAssignedEvent struct {
	BaseEvent
	TaskID     int64 `json:"task_id"`
	ProjectID  int64 `json:"project_id"`
	TeamID     int64 `json:"team_id"`
	AssigneeID int64 `json:"assignee_id"`
	AssignedBy int64 `json:"assigned_by"`
}

func NewTaskAssignedEvent(taskID, projectID, teamID, assigneeID, assignedBy int64) *TaskAssignedEvent {
	return &TaskAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":     taskID,
				"project_id":  projectID,
				"team_id":     teamID,
				"assignee_id": assigneeID,
				"assigned_by": assignedBy,
			},
		},
		TaskID:     taskID,
		ProjectID:  projectID,
		TeamID:     teamID,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
	}
}

type CommentAddedEvent struct {
	BaseEvent
	TaskID    int64 `json:"task_id"`
	ProjectID int64 `json:"project_id"`
	TeamID    int64 `json:"team_id"`
	CommentID int64 `json:"comment_id"`
	AuthorID  int64 `json:"author_id"`
}

func NewCommentAddedEvent(taskID, projectID, teamID, commentID, authorID int64) *CommentAddedEvent {
	return &CommentAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCommentAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":    taskID,
				"project_id": projectID,
				"team_id":    teamID,
				"comment_id": commentID,
				"author_id":  authorID,
			},
		},
		TaskID:    taskID,
		ProjectID: projectID,
		TeamID:    teamID,
		CommentID: commentID,
		AuthorID:  authorID,
	}
}
