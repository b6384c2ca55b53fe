package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pradikta/taskhub/internal/page"
	"gorm.io/gorm"
)

// PageRepository implements the page.Repository interface using GORM
type PageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) page.Repository {
	return &PageRepository{db: db}
}

func (r *PageRepository) Create(ctx context.Context, p *page.Page) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return page.ErrDuplicateSlug
	}
	return err
}

func (r *PageRepository) GetByID(ctx context.Context, id int64) (*page.Page, error) {
	var p page.Page
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, page.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PageRepository) GetBySlug(ctx context.Context, projectID int64, slug string) (*page.Page, error) {
	var p page.Page
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND slug = ?", projectID, slug).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, page.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PageRepository) ListByProject(ctx context.Context, projectID int64) ([]*page.Page, error) {
	var pages []*page.Page
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("title ASC").
		Find(&pages).Error
	return pages, err
}

func (r *PageRepository) Update(ctx context.Context, p *page.Page) error {
	p.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&page.Page{}, id).Error
}
