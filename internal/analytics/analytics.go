package analytics

import "context"

// ProjectSummary aggregates the state of a project's task board.
type ProjectSummary struct {
	ProjectID  int64 `json:"project_id" db:"project_id"`
	TotalTasks int64 `json:"total_tasks" db:"total_tasks"`
	Todo       int64 `json:"todo" db:"todo"`
	InProgress int64 `json:"in_progress" db:"in_progress"`
	Done       int64 `json:"done" db:"done"`
	Overdue    int64 `json:"overdue" db:"overdue"`
}

// AssigneeLoad is the per-user slice of open work inside a project.
type AssigneeLoad struct {
	AssigneeID int64  `json:"assignee_id" db:"assignee_id"`
	FullName   string `json:"full_name" db:"full_name"`
	OpenTasks  int64  `json:"open_tasks" db:"open_tasks"`
	DoneTasks  int64  `json:"done_tasks" db:"done_tasks"`
}

// TeamActivity counts recent task and comment events per project of a team.
type TeamActivity struct {
	ProjectID    int64  `json:"project_id" db:"project_id"`
	ProjectName  string `json:"project_name" db:"project_name"`
	TasksCreated int64  `json:"tasks_created" db:"tasks_created"`
	TasksDone    int64  `json:"tasks_done" db:"tasks_done"`
	Comments     int64  `json:"comments" db:"comments"`
}

type Repository interface {
	ProjectSummary(ctx context.Context, projectID int64) (*ProjectSummary, error)
	AssigneeLoads(ctx context.Context, projectID int64) ([]AssigneeLoad, error)
	TeamActivity(ctx context.Context, teamID int64, days int) ([]TeamActivity, error)
}

// ProjectGuard reports the owning team of a project if the user is a member.
type ProjectGuard interface {
	TeamForProject(ctx context.Context, projectID, userID int64) (int64, error)
}

// TeamGuard verifies team membership for team-level reports.
type TeamGuard interface {
	RequireMember(ctx context.Context, teamID, userID int64) error
}
