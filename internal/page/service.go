package page

import (
	"context"
	"log/slog"
)

type Service struct {
	repo     Repository
	projects ProjectGuard
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectGuard, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreatePageDTO, userID int64) (*Page, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.TeamForProject(ctx, dto.ProjectID, userID); err != nil {
		return nil, err
	}

	slug := dto.Slug
	if slug == "" {
		slug = Slugify(dto.Title)
	}
	if slug == "" {
		return nil, ValidationError{Msg: "title does not produce a usable slug"}
	}

	p := &Page{
		ProjectID: dto.ProjectID,
		Slug:      slug,
		Title:     dto.Title,
		Body:      dto.Body,
		IsPublic:  dto.IsPublic,
		CreatedBy: userID,
		UpdatedBy: userID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, pageID, userID int64) (*Page, error) {
	p, err := s.repo.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.TeamForProject(ctx, p.ProjectID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetBySlug serves both authenticated and anonymous readers. Anonymous
// callers pass userID 0 and only see pages marked public.
func (s *Service) GetBySlug(ctx context.Context, projectID int64, slug string, userID int64) (*Page, error) {
	p, err := s.repo.GetBySlug(ctx, projectID, slug)
	if err != nil {
		return nil, err
	}
	if p.IsPublic {
		return p, nil
	}
	if userID == 0 {
		return nil, ErrNotFound
	}
	if _, err := s.projects.TeamForProject(ctx, p.ProjectID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID, userID int64) ([]*Page, error) {
	if _, err := s.projects.TeamForProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) Update(ctx context.Context, pageID, userID int64, dto UpdatePageDTO) (*Page, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, pageID, userID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Body != nil {
		p.Body = *dto.Body
	}
	if dto.IsPublic != nil {
		p.IsPublic = *dto.IsPublic
	}
	p.UpdatedBy = userID

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, pageID, userID int64) error {
	if _, err := s.Get(ctx, pageID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, pageID)
}
