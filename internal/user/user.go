package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is the local identity record. Email is the join key to the SSO
// provider's employee directory; exactly one user exists per email.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"column:username"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	FullName     string    `json:"full_name" gorm:"column:full_name"`
	AvatarURL    string    `json:"avatar_url" gorm:"column:avatar_url"`
	Role         string    `json:"role" gorm:"column:role;default:member"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

// LocalPart returns the text before the @ of an email address, used to derive
// username and fallback display name during provisioning.
func LocalPart(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateProfile(ctx context.Context, id int64, fullName, avatarURL string) error
	List(ctx context.Context, limit, offset int) ([]*User, error)
}
