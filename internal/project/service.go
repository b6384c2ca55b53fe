package project

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	teams  TeamGuard
	logger *slog.Logger
}

func NewService(repo Repository, teams TeamGuard, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		teams:  teams,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO, userID int64) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.teams.RequireMember(ctx, dto.TeamID, userID); err != nil {
		return nil, err
	}

	p := &Project{
		TeamID:      dto.TeamID,
		Name:        dto.Name,
		Description: dto.Description,
		Status:      StatusActive,
		CreatedBy:   userID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create project", "team_id", dto.TeamID, "error", err)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "team_id", p.TeamID)
	return p, nil
}

func (s *Service) Get(ctx context.Context, projectID, userID int64) (*Project, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.teams.RequireMember(ctx, p.TeamID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByTeam(ctx context.Context, teamID, userID int64, limit, offset int) ([]*Project, error) {
	if err := s.teams.RequireMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByTeam(ctx, teamID, limit, offset)
}

// TeamForProject resolves the owning team after verifying the requester's
// membership; the task and page services use it as their tenancy guard.
func (s *Service) TeamForProject(ctx context.Context, projectID, userID int64) (int64, error) {
	p, err := s.Get(ctx, projectID, userID)
	if err != nil {
		return 0, err
	}
	return p.TeamID, nil
}

func (s *Service) Update(ctx context.Context, projectID, userID int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Archive(ctx context.Context, projectID, userID int64) (*Project, error) {
	p, err := s.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, projectID, StatusArchived); err != nil {
		return nil, err
	}
	p.Status = StatusArchived
	return p, nil
}

func (s *Service) Restore(ctx context.Context, projectID, userID int64) (*Project, error) {
	p, err := s.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, projectID, StatusActive); err != nil {
		return nil, err
	}
	p.Status = StatusActive
	return p, nil
}
