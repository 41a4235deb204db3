package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"content-monitor/internal/models"
	"content-monitor/shared/config"
	"content-monitor/shared/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HistoryService is the listing and aggregation surface the API exposes.
type HistoryService interface {
	GetWatchHistory(ctx context.Context, limit int64) ([]models.WatchHistoryEntry, error)
	GetSubscriptions(ctx context.Context, limit int64) ([]models.SubscriptionEntry, error)
	GetWatchTimeStats(ctx context.Context) (models.WatchTimeStats, error)
}

// Analyzer assesses the most recently watched video.
type Analyzer interface {
	AnalyzeLatest(ctx context.Context) (*models.VideoAnalysis, error)
}

// Server is the HTTP boundary. It is the only component that translates
// errors into HTTP status codes; everything below it returns errors
// undecorated.
type Server struct {
	engine   *gin.Engine
	history  HistoryService
	analyzer Analyzer
	monitor  *monitoring.Monitor
	addr     string
}

func NewServer(cfg *config.ServerConfig, history HistoryService, analyzer Analyzer, monitor *monitoring.Monitor) *Server {
	engine := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	engine.Use(cors.New(corsConfig))
	engine.Use(prometheusMiddleware())

	s := &Server{
		engine:   engine,
		history:  history,
		analyzer: analyzer,
		monitor:  monitor,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}

	engine.GET("/", s.home)
	engine.GET("/health", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/analyze-latest", s.analyzeLatest)
		api.GET("/watch-history", s.watchHistory)
		api.GET("/subscriptions", s.subscriptions)
		api.GET("/watch-time-stats", s.watchTimeStats)
	}

	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", s.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
