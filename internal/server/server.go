// Package server assembles the HTTP API: it wires every service to its
// collaborators, mounts the routes on a gin engine and runs it until the
// process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/auth"
	cfmodel "github.com/escrowline/backend/internal/casefile/model"
	cfrouter "github.com/escrowline/backend/internal/casefile/router"
	cfservice "github.com/escrowline/backend/internal/casefile/service"
	"github.com/escrowline/backend/internal/config"
	"github.com/escrowline/backend/internal/database"
	"github.com/escrowline/backend/internal/middleware"
	"github.com/escrowline/backend/internal/notify"
	"github.com/escrowline/backend/internal/uploads"
	wfmodel "github.com/escrowline/backend/internal/workflow/model"
	wfrouter "github.com/escrowline/backend/internal/workflow/router"
	wfservice "github.com/escrowline/backend/internal/workflow/service"
)

// Models lists every table of the application for migration.
func Models() []any {
	models := []any{&wfmodel.Stage{}, &wfmodel.Task{}, &wfmodel.Template{}, &auth.User{}}
	return append(models, cfmodel.Models()...)
}

// Server is the assembled API.
type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	engine *gin.Engine
}

// New builds the services and routes. The storage driver and the mailer are
// created from cfg.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Server, error) {
	storage, err := uploads.NewStorageFromConfig(ctx, cfg.Storage, cfg.Server.ServiceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}
	mailer, err := notify.NewMailerFromConfig(ctx, cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	return NewWithDependencies(cfg, db, storage, mailer), nil
}

// NewWithDependencies builds the server around an existing storage driver and
// mailer.
func NewWithDependencies(cfg *config.Config, db *gorm.DB, storage uploads.StorageDriver, mailer notify.Mailer) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(&cfg.CORS))

	// Case file
	cases := cfservice.NewCaseService(db)
	casefileRouter := cfrouter.NewCasefileRouter(cfrouter.Services{
		Addresses:     cfservice.NewAddressService(db),
		Clients:       cfservice.NewClientService(db),
		Organizations: cfservice.NewOrganizationService(db),
		Contacts:      cfservice.NewContactService(db),
		Premises:      cfservice.NewPremisesService(db),
		Cases:         cases,
	})

	// Workflow
	templates := wfservice.NewTemplateService(db)
	tasks := wfservice.NewTaskService(db, templates)
	stages := wfservice.NewStageService(wfservice.NewStageStore(db), tasks, cases)
	workflowRouter := wfrouter.NewWorkflowRouter(stages, tasks, templates)

	// Documents
	documents := uploads.NewHTTPHandler(uploads.NewDocumentService(storage), tasks)

	// Auth
	authService := auth.NewAuthService(db,
		auth.NewPasswordHasher(cfg.Auth.PasswordKey),
		auth.NewTokenService(cfg.Auth),
		mailer,
		cfg.Mail.ResetURL,
	)

	s := &Server{cfg: cfg, db: db, engine: engine}
	engine.GET("/health", s.handleHealth)

	v1 := engine.Group("/v1")
	casefileRouter.Register(v1)
	workflowRouter.Register(v1)
	auth.NewRouter(authService).Register(v1)
	v1.POST("/task/:taskId/upload", documents.HandleUploadTaskDocument)
	v1.GET("/uploads/:key", documents.HandleDownload)

	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := database.HealthCheck(ctx, s.db); err != nil {
		api.Fail(c, apperr.Internal(err, "database unavailable"))
		return
	}
	api.Success(c, "healthy", nil)
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", s.cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("server gracefully stopped")
	return nil
}
