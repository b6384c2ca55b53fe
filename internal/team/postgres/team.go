package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pradikta/taskhub/internal/team"
	"gorm.io/gorm"
)

// TeamRepository implements the team.Repository interface using GORM
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.Repository {
	return &TeamRepository{db: db}
}

// Create inserts the team and its owner membership in one transaction.
func (r *TeamRepository) Create(ctx context.Context, t *team.Team, owner *team.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		owner.TeamID = t.ID
		return tx.Create(owner).Error
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	var t team.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, team.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) ListForUser(ctx context.Context, userID int64) ([]*team.Team, error) {
	var teams []*team.Team
	err := r.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	t.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&team.Member{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team.Team{}, id).Error
	})
}

func (r *TeamRepository) AddMember(ctx context.Context, m *team.Member) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return team.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&team.Member{}).Error
}

func (r *TeamRepository) GetMember(ctx context.Context, teamID, userID int64) (*team.Member, error) {
	var m team.Member
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, team.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID int64) ([]*team.Member, error) {
	var members []*team.Member
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}
