package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/analytics"
	analyticspg "github.com/pradikta/taskhub/internal/analytics/postgres"
	"github.com/pradikta/taskhub/internal/chat"
	"github.com/pradikta/taskhub/internal/core/events"
	"github.com/pradikta/taskhub/internal/directory"
	"github.com/pradikta/taskhub/internal/notification"
	notificationpg "github.com/pradikta/taskhub/internal/notification/postgres"
	"github.com/pradikta/taskhub/internal/page"
	pagepg "github.com/pradikta/taskhub/internal/page/postgres"
	"github.com/pradikta/taskhub/internal/project"
	projectpg "github.com/pradikta/taskhub/internal/project/postgres"
	"github.com/pradikta/taskhub/internal/sso"
	"github.com/pradikta/taskhub/internal/task"
	taskpg "github.com/pradikta/taskhub/internal/task/postgres"
	"github.com/pradikta/taskhub/internal/team"
	teampg "github.com/pradikta/taskhub/internal/team/postgres"
	"github.com/pradikta/taskhub/internal/transport"
	"github.com/pradikta/taskhub/internal/transport/middleware"
	"github.com/pradikta/taskhub/internal/transport/rest"
	"github.com/pradikta/taskhub/internal/transport/swagger"
	"github.com/pradikta/taskhub/internal/user"
	userpg "github.com/pradikta/taskhub/internal/user/postgres"
	"github.com/pradikta/taskhub/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Directory *directory.Client
	Router    *chi.Mux
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same pgx pool; TranslateError turns unique
	// violations into gorm.ErrDuplicatedKey for the repositories.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		lg.Warn("openapi spec validation failed", "error", err)
	}

	// The employee directory is reached through a dblink held open on the
	// application database; the client connects lazily on first lookup.
	dirClient := directory.NewClient(db, config.Directory, lg)

	bus := events.NewEventBus(lg)
	baseHandler := transport.NewBaseHandler(lg)

	userRepo := userpg.NewUserRepository(gormDB)
	teamRepo := teampg.NewTeamRepository(gormDB)
	projectRepo := projectpg.NewProjectRepository(gormDB)
	taskRepo := taskpg.NewTaskRepository(gormDB)
	notificationRepo := notificationpg.NewNotificationRepository(gormDB)
	pageRepo := pagepg.NewPageRepository(gormDB)
	analyticsRepo := analyticspg.NewAnalyticsRepository(db)

	ssoService := sso.NewService(config.SSO, dirClient, userRepo, lg)
	userService := user.NewService(userRepo, lg)
	teamService := team.NewService(teamRepo, lg)
	projectService := project.NewService(projectRepo, teamService, lg)
	taskService := task.NewService(taskRepo, projectService, bus, lg)
	notificationService := notification.NewService(notificationRepo, lg)
	pageService := page.NewService(pageRepo, projectService, lg)
	analyticsService := analytics.NewService(analyticsRepo, projectService, teamService, lg)

	notificationService.RegisterEventHandlers(bus)

	hub := chat.NewHub(lg)
	hub.RegisterEventHandlers(bus)

	store, err := task.NewDiskStore(config.Storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize attachment store: %w", err)
	}

	authMW := middleware.NewAuthMiddleware(baseHandler, ssoService)

	handlers := rest.Handlers{
		User:         user.NewHandler(baseHandler, userService),
		Team:         team.NewHandler(baseHandler, teamService),
		Project:      project.NewHandler(baseHandler, projectService),
		Task:         task.NewHandler(baseHandler, taskService, store, config.Storage.MaxUploadSize),
		Notification: notification.NewHandler(baseHandler, notificationService),
		Page:         page.NewHandler(baseHandler, pageService),
		Analytics:    analytics.NewHandler(baseHandler, analyticsService),
		Chat:         chat.NewHandler(baseHandler, hub, ssoService, teamService, middleware.NewOriginPolicy(config.Server.AllowedOrigins), config.Chat),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, config, db.DB, dirClient, authMW, handlers, lg)

	return &Dependencies{
		Config:    config,
		Logger:    lg,
		DB:        db,
		Directory: dirClient,
		Router:    router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
