package project

import "time"

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

type CreateProjectDTO struct {
	TeamID      int64  `json:"team_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreateProjectDTO) Validate() error {
	if d.TeamID == 0 {
		return ValidationError{Msg: "team_id is required"}
	}
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if len(d.Name) > 150 {
		return ValidationError{Msg: "name must not exceed 150 characters"}
	}
	return nil
}

type UpdateProjectDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (d UpdateProjectDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return ValidationError{Msg: "name must not be empty"}
	}
	return nil
}

type ProjectResponse struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

func (p *Project) ToResponse() ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
