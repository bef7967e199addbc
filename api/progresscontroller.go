package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterProgressRoutes registers progress read endpoints.
func RegisterProgressRoutes(r *gin.Engine, s *Server) {
	r.GET("/api/progress/:profile", s.handleGetProgress)
}

// handleGetProgress returns the stored progress of one profile.
func (s *Server) handleGetProgress(c *gin.Context) {
	profile := c.Param("profile")

	state, err := s.runner.Store().Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress: " + err.Error()})
		return
	}

	cs, ok := state[profile]
	if !ok || cs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no progress recorded for profile " + profile})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"count":    cs.Count(),
		"progress": cs,
	})
}
