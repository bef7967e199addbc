package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"breathbot/workflow"
)

// RegisterRunRoutes registers run trigger and status endpoints.
func RegisterRunRoutes(r *gin.Engine, s *Server) {
	g := r.Group("/api")
	g.GET("/status", s.handleStatus)
	g.POST("/run", s.handleRun)
}

// RunRequest selects the profile to run; both fields are optional.
type RunRequest struct {
	Profile string `json:"profile"`
	DryRun  *bool  `json:"dry_run"`
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.runner.Status().GetStatus())
}

// handleRun handles POST /api/run
func (s *Server) handleRun(c *gin.Context) {
	var req RunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	opts, err := s.options(req.Profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DryRun != nil {
		opts.DryRun = *req.DryRun
	}

	err = s.runner.Start(s.ctx, opts, func(_ workflow.Summary, err error) {
		if err != nil {
			s.logger.Error("❌ Run failed", "profile", opts.Profile, "error", err)
		}
	})
	if errors.Is(err, workflow.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "started",
		"profile": opts.Profile,
		"dry_run": opts.DryRun,
	})
}
