package project

import (
	"context"
	"errors"
	"time"
)

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

type Project struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TeamID      int64     `json:"team_id" gorm:"column:team_id;not null;index"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description string    `json:"description" gorm:"column:description"`
	Status      string    `json:"status" gorm:"column:status;default:active"`
	CreatedBy   int64     `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsArchived() bool {
	return p.Status == StatusArchived
}

var ErrNotFound = errors.New("project not found")

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	ListByTeam(ctx context.Context, teamID int64, limit, offset int) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// TeamGuard is the slice of the team service project needs for tenancy checks.
type TeamGuard interface {
	RequireMember(ctx context.Context, teamID, userID int64) error
}
