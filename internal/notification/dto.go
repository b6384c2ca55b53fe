package notification

import "time"

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	TaskID    int64     `json:"task_id"`
	ProjectID int64     `json:"project_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		TaskID:    n.TaskID,
		ProjectID: n.ProjectID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
