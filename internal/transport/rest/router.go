package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/analytics"
	"github.com/pradikta/taskhub/internal/chat"
	"github.com/pradikta/taskhub/internal/notification"
	"github.com/pradikta/taskhub/internal/page"
	"github.com/pradikta/taskhub/internal/project"
	"github.com/pradikta/taskhub/internal/task"
	"github.com/pradikta/taskhub/internal/team"
	"github.com/pradikta/taskhub/internal/transport/middleware"
	"github.com/pradikta/taskhub/internal/transport/swagger"
	"github.com/pradikta/taskhub/internal/user"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything RegisterAllRoutes mounts.
type Handlers struct {
	User         *user.Handler
	Team         *team.Handler
	Project      *project.Handler
	Task         *task.Handler
	Notification *notification.Handler
	Page         *page.Handler
	Analytics    *analytics.Handler
	Chat         *chat.Handler
}

func RegisterAllRoutes(router *chi.Mux, cfg *internal.Config, db *sql.DB, dir DirectoryPinger, authMW *middleware.AuthMiddleware, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, dir)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if cfg.Observability.Metrics.Enabled {
		router.Use(middleware.Metrics)
		router.Handle(cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Websocket rooms live outside the REST prefix; the handshake does its
	// own authentication.
	if h.Chat != nil {
		router.Get("/ws/teams/{teamID}", h.Chat.ServeRoom)
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public page reads carry an optional token; private pages need one.
		if h.Page != nil {
			r.Group(func(or chi.Router) {
				or.Use(authMW.OptionalAuth)
				or.Get("/projects/{projectID}/pages/{slug}", h.Page.GetPageBySlug)
			})
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireAdmin(logger))
					ar.Get("/users", h.User.ListUsers)
				})
			}

			if h.Team != nil {
				pr.Route("/teams", func(tr chi.Router) {
					tr.Post("/", h.Team.CreateTeam)
					tr.Get("/", h.Team.ListTeams)
					tr.Get("/{teamID}", h.Team.GetTeam)
					tr.Patch("/{teamID}", h.Team.UpdateTeam)
					tr.Delete("/{teamID}", h.Team.DeleteTeam)
					tr.Post("/{teamID}/members", h.Team.AddMember)
					tr.Get("/{teamID}/members", h.Team.ListMembers)
					tr.Delete("/{teamID}/members/{userID}", h.Team.RemoveMember)
					if h.Analytics != nil {
						tr.Get("/{teamID}/activity", h.Analytics.TeamActivity)
					}
				})
			}

			if h.Project != nil {
				pr.Route("/projects", func(jr chi.Router) {
					jr.Post("/", h.Project.CreateProject)
					jr.Get("/", h.Project.ListProjects)
					jr.Get("/{projectID}", h.Project.GetProject)
					jr.Patch("/{projectID}", h.Project.UpdateProject)
					jr.Post("/{projectID}/archive", h.Project.ArchiveProject)
					jr.Post("/{projectID}/restore", h.Project.RestoreProject)
					if h.Analytics != nil {
						jr.Get("/{projectID}/summary", h.Analytics.ProjectSummary)
						jr.Get("/{projectID}/assignees", h.Analytics.AssigneeLoads)
					}
				})
			}

			if h.Task != nil {
				pr.Route("/tasks", func(tr chi.Router) {
					tr.Post("/", h.Task.CreateTask)
					tr.Get("/", h.Task.ListTasks)
					tr.Get("/{taskID}", h.Task.GetTask)
					tr.Patch("/{taskID}", h.Task.UpdateTask)
					tr.Delete("/{taskID}", h.Task.DeleteTask)
					tr.Post("/{taskID}/move", h.Task.MoveTask)
					tr.Post("/{taskID}/assign", h.Task.AssignTask)
					tr.Post("/{taskID}/comments", h.Task.AddComment)
					tr.Get("/{taskID}/comments", h.Task.ListComments)
					tr.Delete("/{taskID}/comments/{commentID}", h.Task.DeleteComment)
					tr.Post("/{taskID}/attachments", h.Task.UploadAttachment)
					tr.Get("/{taskID}/attachments", h.Task.ListAttachments)
					tr.Get("/{taskID}/attachments/{attachmentID}", h.Task.DownloadAttachment)
				})
			}

			if h.Page != nil {
				pr.Route("/pages", func(wr chi.Router) {
					wr.Post("/", h.Page.CreatePage)
					wr.Get("/", h.Page.ListPages)
					wr.Get("/{pageID}", h.Page.GetPage)
					wr.Patch("/{pageID}", h.Page.UpdatePage)
					wr.Delete("/{pageID}", h.Page.DeletePage)
				})
			}

			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.Get("/", h.Notification.ListNotifications)
					nr.Post("/read-all", h.Notification.MarkAllRead)
					nr.Post("/{notificationID}/read", h.Notification.MarkRead)
				})
			}
		})
	})
}
