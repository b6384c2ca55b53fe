package team

import (
	"context"
	"errors"
	"time"
)

const (
	MemberRoleOwner  = "owner"
	MemberRoleMember = "member"
)

// Team is the tenancy boundary: projects, chat rooms and analytics all hang
// off a team.
type Team struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description string    `json:"description" gorm:"column:description"`
	OwnerID     int64     `json:"owner_id" gorm:"column:owner_id;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

type Member struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TeamID    int64     `json:"team_id" gorm:"column:team_id;not null;uniqueIndex:idx_team_member"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_team_member"`
	Role      string    `json:"role" gorm:"column:role;default:member"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Member) TableName() string {
	return "team_members"
}

var (
	ErrNotFound        = errors.New("team not found")
	ErrNotMember       = errors.New("user is not a member of this team")
	ErrAlreadyMember   = errors.New("user is already a member of this team")
	ErrOwnerOnly       = errors.New("only the team owner may perform this action")
	ErrCannotDropOwner = errors.New("the team owner cannot be removed")
)

type Repository interface {
	Create(ctx context.Context, t *Team, owner *Member) error
	GetByID(ctx context.Context, id int64) (*Team, error)
	ListForUser(ctx context.Context, userID int64) ([]*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id int64) error

	AddMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, teamID, userID int64) error
	GetMember(ctx context.Context, teamID, userID int64) (*Member, error)
	ListMembers(ctx context.Context, teamID int64) ([]*Member, error)
}
