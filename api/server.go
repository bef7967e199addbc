// Package api serves the run status over HTTP and triggers runs on demand or
// on a cron schedule.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"breathbot/workflow"
)

// OptionsFunc builds run options for a profile; "" selects the active profile.
type OptionsFunc func(profile string) (workflow.Options, error)

// Server is the status API plus the cron trigger.
type Server struct {
	runner     *workflow.Runner
	options    OptionsFunc
	logger     *slog.Logger
	httpServer *http.Server
	cron       *cron.Cron
	cronID     cron.EntryID
	mu         sync.Mutex

	// runs started by the API or cron stop between items once ctx is cancelled
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates the server; it does not listen until Start.
func NewServer(runner *workflow.Runner, options OptionsFunc, port string, logger *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		runner:  runner,
		options: options,
		logger:  logger,
		cron:    cron.New(),
		ctx:     ctx,
		cancel:  cancel,
	}

	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: NewRouter(s),
	}
	return s
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	RegisterRunRoutes(r, s)
	RegisterProgressRoutes(r, s)
	return r
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens in the background.
func (s *Server) Start() {
	s.logger.Info("🌐 Starting status server", "addr", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("❌ HTTP server error", "error", err)
		}
	}()
}

// StartCron runs the active profile on the given schedule, skipping ticks
// while a run is in progress.
func (s *Server) StartCron(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, func() {
		if s.runner.Busy() {
			s.logger.Info("⏭️ Cron skipped: a run is in progress")
			return
		}
		s.logger.Info("⏰ Cron triggered: starting run")
		s.run("")
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cronID = id
	s.cron.Start()
	s.logger.Info("⏰ Cron job started", "schedule", spec)
	return nil
}

// run executes one run synchronously; errors are logged.
func (s *Server) run(profile string) {
	opts, err := s.options(profile)
	if err != nil {
		s.logger.Error("❌ Cannot build run options", "profile", profile, "error", err)
		return
	}
	if _, err := s.runner.Run(s.ctx, opts); err != nil {
		if errors.Is(err, workflow.ErrBusy) {
			s.logger.Info("⏭️ Run skipped: another run is in progress")
			return
		}
		s.logger.Error("❌ Run failed", "profile", opts.Profile, "error", err)
	}
}

// Shutdown stops the cron, asks in-flight runs to stop after their current
// item and closes the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("🛑 Shutting down status server")

	s.cancel()
	cronDone := s.cron.Stop()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	select {
	case <-cronDone.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
