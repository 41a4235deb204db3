package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"content-monitor/internal/models"
	"content-monitor/shared/ai"
	"content-monitor/shared/config"
	"content-monitor/shared/monitoring"

	"github.com/gin-gonic/gin"
)

type fakeHistoryService struct {
	entries       []models.WatchHistoryEntry
	subscriptions []models.SubscriptionEntry
	stats         models.WatchTimeStats
	err           error
}

func (f *fakeHistoryService) GetWatchHistory(ctx context.Context, limit int64) ([]models.WatchHistoryEntry, error) {
	return f.entries, f.err
}

func (f *fakeHistoryService) GetSubscriptions(ctx context.Context, limit int64) ([]models.SubscriptionEntry, error) {
	return f.subscriptions, f.err
}

func (f *fakeHistoryService) GetWatchTimeStats(ctx context.Context) (models.WatchTimeStats, error) {
	return f.stats, f.err
}

type fakeAnalyzer struct {
	result *models.VideoAnalysis
	err    error
}

func (f *fakeAnalyzer) AnalyzeLatest(ctx context.Context) (*models.VideoAnalysis, error) {
	return f.result, f.err
}

func newTestServer(history HistoryService, analyzer Analyzer) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 8000}
	return NewServer(cfg, history, analyzer, monitoring.NewMonitor())
}

func doRequest(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.engine.ServeHTTP(w, req)
	return w
}

func TestAnalyzeLatestRoute(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		result := &models.VideoAnalysis{
			VideoID: "vid-1",
			Title:   "A video",
			Channel: "A channel",
			AIAnalysis: models.AIAnalysis{
				EducationalScore:   7,
				Topics:             []string{"science"},
				AgeAppropriateness: "All Ages",
				LearningPotential:  "Medium",
				Concerns:           []string{},
				Explanation:        "Solid overview.",
			},
		}
		s := newTestServer(&fakeHistoryService{}, &fakeAnalyzer{result: result})

		w := doRequest(s, "/api/analyze-latest")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var decoded models.VideoAnalysis
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if decoded.VideoID != "vid-1" || decoded.AIAnalysis.EducationalScore != 7 {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("Empty history maps to 400", func(t *testing.T) {
		s := newTestServer(&fakeHistoryService{}, &fakeAnalyzer{err: ai.ErrNoWatchHistory})

		w := doRequest(s, "/api/analyze-latest")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if body["error"] != "No watch history found" {
			t.Errorf(`error = %q, want "No watch history found"`, body["error"])
		}
	})

	t.Run("Upstream fault maps to 500", func(t *testing.T) {
		s := newTestServer(&fakeHistoryService{}, &fakeAnalyzer{err: errors.New("quota exceeded")})

		w := doRequest(s, "/api/analyze-latest")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		if !strings.Contains(w.Body.String(), "quota exceeded") {
			t.Errorf("body should carry the fault message, got %s", w.Body.String())
		}
	})
}

func TestListingRoutes(t *testing.T) {
	history := &fakeHistoryService{
		entries: []models.WatchHistoryEntry{
			{Title: "Watched", VideoID: "vid-1"},
		},
		subscriptions: []models.SubscriptionEntry{
			{ChannelTitle: "Chan", ChannelID: "UC-1"},
		},
		stats: models.WatchTimeStats{TotalSeconds: 180, TotalHours: 0.05, VideoCount: 2, AverageDuration: 90},
	}
	s := newTestServer(history, &fakeAnalyzer{})

	t.Run("Watch history", func(t *testing.T) {
		w := doRequest(s, "/api/watch-history?limit=3")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var entries []models.WatchHistoryEntry
		if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(entries) != 1 || entries[0].VideoID != "vid-1" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("Invalid limit", func(t *testing.T) {
		w := doRequest(s, "/api/watch-history?limit=bogus")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Subscriptions", func(t *testing.T) {
		w := doRequest(s, "/api/subscriptions")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var entries []models.SubscriptionEntry
		if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(entries) != 1 || entries[0].ChannelID != "UC-1" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("Watch time stats", func(t *testing.T) {
		w := doRequest(s, "/api/watch-time-stats")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var stats models.WatchTimeStats
		if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if stats.VideoCount != 2 || stats.AverageDuration != 90 {
			t.Errorf("stats = %+v", stats)
		}
	})

	t.Run("Listing fault maps to 500", func(t *testing.T) {
		failing := newTestServer(&fakeHistoryService{err: errors.New("backend down")}, &fakeAnalyzer{})
		w := doRequest(failing, "/api/watch-time-stats")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}

func TestDashboardAndHealth(t *testing.T) {
	s := newTestServer(&fakeHistoryService{}, &fakeAnalyzer{})

	t.Run("Dashboard page", func(t *testing.T) {
		w := doRequest(s, "/")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q", ct)
		}
		if !strings.Contains(w.Body.String(), "YouTube Content Monitor") {
			t.Error("dashboard HTML missing title")
		}
	})

	t.Run("Health", func(t *testing.T) {
		w := doRequest(s, "/health")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "healthy") {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}
