package analytics

import (
	"context"
	"log/slog"
)

type Service struct {
	repo     Repository
	projects ProjectGuard
	teams    TeamGuard
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectGuard, teams TeamGuard, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		teams:    teams,
		logger:   logger,
	}
}

func (s *Service) ProjectSummary(ctx context.Context, projectID, userID int64) (*ProjectSummary, error) {
	if _, err := s.projects.TeamForProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.repo.ProjectSummary(ctx, projectID)
}

func (s *Service) AssigneeLoads(ctx context.Context, projectID, userID int64) ([]AssigneeLoad, error) {
	if _, err := s.projects.TeamForProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.repo.AssigneeLoads(ctx, projectID)
}

func (s *Service) TeamActivity(ctx context.Context, teamID, userID int64, days int) ([]TeamActivity, error) {
	if err := s.teams.RequireMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	if days <= 0 || days > 90 {
		days = 7
	}
	return s.repo.TeamActivity(ctx, teamID, days)
}
