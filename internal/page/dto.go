package page

import "time"

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

type CreatePageDTO struct {
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	IsPublic  bool   `json:"is_public"`
}

func (d CreatePageDTO) Validate() error {
	if d.ProjectID == 0 {
		return ValidationError{Msg: "project_id is required"}
	}
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if len(d.Title) > 200 {
		return ValidationError{Msg: "title must not exceed 200 characters"}
	}
	if d.Slug != "" && Slugify(d.Slug) != d.Slug {
		return ValidationError{Msg: "slug may only contain lowercase letters, digits and hyphens"}
	}
	return nil
}

type UpdatePageDTO struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	IsPublic *bool   `json:"is_public"`
}

func (d UpdatePageDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return ValidationError{Msg: "title must not be empty"}
	}
	return nil
}

type PageResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsPublic  bool      `json:"is_public"`
	CreatedBy int64     `json:"created_by"`
	UpdatedBy int64     `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PagesResponse struct {
	Pages []PageResponse `json:"pages"`
}

func (p *Page) ToResponse() PageResponse {
	return PageResponse{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Slug:      p.Slug,
		Title:     p.Title,
		Body:      p.Body,
		IsPublic:  p.IsPublic,
		CreatedBy: p.CreatedBy,
		UpdatedBy: p.UpdatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
