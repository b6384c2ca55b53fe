package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pradikta/taskhub/internal/analytics"
)

// AnalyticsRepository runs the aggregate reporting queries directly
// against Postgres with sqlx; GORM stays out of the reporting path.
type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) analytics.Repository {
	return &AnalyticsRepository{db: db}
}

const projectSummaryQuery = `
SELECT
    $1::bigint AS project_id,
    COUNT(*) AS total_tasks,
    COUNT(*) FILTER (WHERE status = 'todo') AS todo,
    COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
    COUNT(*) FILTER (WHERE status = 'done') AS done,
    COUNT(*) FILTER (WHERE status <> 'done' AND due_date IS NOT NULL AND due_date < NOW()) AS overdue
FROM tasks
WHERE project_id = $1`

func (r *AnalyticsRepository) ProjectSummary(ctx context.Context, projectID int64) (*analytics.ProjectSummary, error) {
	var s analytics.ProjectSummary
	if err := r.db.GetContext(ctx, &s, projectSummaryQuery, projectID); err != nil {
		return nil, fmt.Errorf("project summary query: %w", err)
	}
	return &s, nil
}

const assigneeLoadsQuery = `
SELECT
    t.assignee_id,
    u.full_name,
    COUNT(*) FILTER (WHERE t.status <> 'done') AS open_tasks,
    COUNT(*) FILTER (WHERE t.status = 'done') AS done_tasks
FROM tasks t
JOIN users u ON u.id = t.assignee_id
WHERE t.project_id = $1 AND t.assignee_id IS NOT NULL
GROUP BY t.assignee_id, u.full_name
ORDER BY open_tasks DESC, u.full_name ASC`

func (r *AnalyticsRepository) AssigneeLoads(ctx context.Context, projectID int64) ([]analytics.AssigneeLoad, error) {
	loads := []analytics.AssigneeLoad{}
	if err := r.db.SelectContext(ctx, &loads, assigneeLoadsQuery, projectID); err != nil {
		return nil, fmt.Errorf("assignee loads query: %w", err)
	}
	return loads, nil
}

const teamActivityQuery = `
SELECT
    p.id AS project_id,
    p.name AS project_name,
    COUNT(DISTINCT t.id) FILTER (WHERE t.created_at >= NOW() - ($2 || ' days')::interval) AS tasks_created,
    COUNT(DISTINCT t.id) FILTER (WHERE t.status = 'done' AND t.updated_at >= NOW() - ($2 || ' days')::interval) AS tasks_done,
    COUNT(DISTINCT c.id) FILTER (WHERE c.created_at >= NOW() - ($2 || ' days')::interval) AS comments
FROM projects p
LEFT JOIN tasks t ON t.project_id = p.id
LEFT JOIN task_comments c ON c.task_id = t.id
WHERE p.team_id = $1
GROUP BY p.id, p.name
ORDER BY p.name ASC`

func (r *AnalyticsRepository) TeamActivity(ctx context.Context, teamID int64, days int) ([]analytics.TeamActivity, error) {
	activity := []analytics.TeamActivity{}
	if err := r.db.SelectContext(ctx, &activity, teamActivityQuery, teamID, days); err != nil {
		return nil, fmt.Errorf("team activity query: %w", err)
	}
	return activity, nil
}
