package web

import (
	_ "embed"
	"errors"
	"net/http"
	"strconv"
	"time"

	"content-monitor/shared/ai"
	"content-monitor/youtube"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var dashboardHTML []byte

func (s *Server) home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", dashboardHTML)
}

func (s *Server) health(c *gin.Context) {
	status := http.StatusOK
	state := "healthy"
	if !s.monitor.IsHealthy() {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status": state,
		"detail": s.monitor.StatusSummary(),
	})
}

func (s *Server) analyzeLatest(c *gin.Context) {
	start := time.Now()

	result, err := s.analyzer.AnalyzeLatest(c.Request.Context())
	switch {
	case errors.Is(err, ai.ErrNoWatchHistory):
		// Empty history is a normal outcome, not an upstream fault.
		analysisRequestsTotal.WithLabelValues("empty_history").Inc()
		s.monitor.RecordSuccess("GET /api/analyze-latest", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		analysisRequestsTotal.WithLabelValues("error").Inc()
		s.monitor.RecordFailure("GET /api/analyze-latest", err, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		analysisRequestsTotal.WithLabelValues("success").Inc()
		s.monitor.RecordSuccess("GET /api/analyze-latest", time.Since(start))
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) watchHistory(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}

	entries, err := s.history.GetWatchHistory(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) subscriptions(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}

	entries, err := s.history.GetSubscriptions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) watchTimeStats(c *gin.Context) {
	stats, err := s.history.GetWatchTimeStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func limitParam(c *gin.Context) (int64, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(youtube.DefaultListLimit))
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}
