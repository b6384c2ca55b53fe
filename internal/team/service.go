package team

import (
	"context"
	"errors"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CreateTeamDTO, ownerID int64) (*Team, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t := &Team{
		Name:        dto.Name,
		Description: dto.Description,
		OwnerID:     ownerID,
	}
	owner := &Member{
		UserID: ownerID,
		Role:   MemberRoleOwner,
	}

	if err := s.repo.Create(ctx, t, owner); err != nil {
		s.logger.Error("failed to create team", "error", err)
		return nil, err
	}

	s.logger.Info("team created", "team_id", t.ID, "owner_id", ownerID)
	return t, nil
}

func (s *Service) GetForMember(ctx context.Context, teamID, userID int64) (*Team, error) {
	if err := s.RequireMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, teamID)
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*Team, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, teamID, userID int64, dto UpdateTeamDTO) (*Team, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != userID {
		return nil, ErrOwnerOnly
	}

	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, teamID, userID int64) error {
	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if t.OwnerID != userID {
		return ErrOwnerOnly
	}
	return s.repo.Delete(ctx, teamID)
}

func (s *Service) AddMember(ctx context.Context, teamID, requesterID int64, dto AddMemberDTO) (*Member, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != requesterID {
		return nil, ErrOwnerOnly
	}

	role := dto.Role
	if role == "" {
		role = MemberRoleMember
	}

	m := &Member{
		TeamID: teamID,
		UserID: dto.UserID,
		Role:   role,
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) RemoveMember(ctx context.Context, teamID, requesterID, userID int64) error {
	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if t.OwnerID != requesterID && requesterID != userID {
		return ErrOwnerOnly
	}
	if t.OwnerID == userID {
		return ErrCannotDropOwner
	}
	return s.repo.RemoveMember(ctx, teamID, userID)
}

func (s *Service) ListMembers(ctx context.Context, teamID, requesterID int64) ([]*Member, error) {
	if err := s.RequireMember(ctx, teamID, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, teamID)
}

// RequireMember verifies membership; project, task, page and chat all call
// this before touching anything team-scoped.
func (s *Service) RequireMember(ctx context.Context, teamID, userID int64) error {
	_, err := s.repo.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}

// IsMember reports membership without distinguishing lookup failures; used by
// the chat handshake where any failure refuses the connection.
func (s *Service) IsMember(ctx context.Context, teamID, userID int64) bool {
	return s.RequireMember(ctx, teamID, userID) == nil
}
