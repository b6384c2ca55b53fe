package team

import "time"

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

type CreateTeamDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreateTeamDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if len(d.Name) > 120 {
		return ValidationError{Msg: "name must not exceed 120 characters"}
	}
	return nil
}

type UpdateTeamDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (d UpdateTeamDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return ValidationError{Msg: "name must not be empty"}
	}
	if d.Name != nil && len(*d.Name) > 120 {
		return ValidationError{Msg: "name must not exceed 120 characters"}
	}
	return nil
}

type AddMemberDTO struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (d AddMemberDTO) Validate() error {
	if d.UserID == 0 {
		return ValidationError{Msg: "user_id is required"}
	}
	if d.Role != "" && d.Role != MemberRoleOwner && d.Role != MemberRoleMember {
		return ValidationError{Msg: "role must be owner or member"}
	}
	return nil
}

type TeamResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

type MemberResponse struct {
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type MembersResponse struct {
	Members []MemberResponse `json:"members"`
}

func (t *Team) ToResponse() TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
