package page

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("page not found")
	ErrDuplicateSlug  = errors.New("a page with this slug already exists in the project")
	slugStripPattern  = regexp.MustCompile(`[^a-z0-9]+`)
	slugSquashPattern = regexp.MustCompile(`-{2,}`)
)

// Page is a wiki document scoped to a project. Slugs are unique per
// project and derived from the title when not supplied.
type Page struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProjectID int64     `json:"project_id" gorm:"not null;uniqueIndex:idx_project_slug"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex:idx_project_slug"`
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body"`
	IsPublic  bool      `json:"is_public" gorm:"default:false"`
	CreatedBy int64     `json:"created_by" gorm:"not null"`
	UpdatedBy int64     `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string {
	return "pages"
}

// Slugify lowercases the title and collapses everything that is not a
// letter or digit into single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripPattern.ReplaceAllString(s, "-")
	s = slugSquashPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

type Repository interface {
	Create(ctx context.Context, p *Page) error
	GetByID(ctx context.Context, id int64) (*Page, error)
	GetBySlug(ctx context.Context, projectID int64, slug string) (*Page, error)
	ListByProject(ctx context.Context, projectID int64) ([]*Page, error)
	Update(ctx context.Context, p *Page) error
	Delete(ctx context.Context, id int64) error
}

// ProjectGuard reports the owning team of a project if the user is a
// member, mirroring the guard the task service uses.
type ProjectGuard interface {
	TeamForProject(ctx context.Context, projectID, userID int64) (int64, error)
}
