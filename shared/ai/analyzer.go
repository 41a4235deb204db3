package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"content-monitor/internal/models"
)

// ErrNoWatchHistory signals that the user has no recent watch activity to
// analyze. It is an expected outcome, not an upstream fault.
var ErrNoWatchHistory = errors.New("No watch history found")

const systemPrompt = "You are an expert in educational content analysis, " +
	"with deep knowledge of how games and interactive content can provide " +
	"educational value. Consider both direct educational content and " +
	"indirect learning benefits when analyzing content."

// HistoryProvider supplies the most recent watch-history entries.
type HistoryProvider interface {
	GetWatchHistory(ctx context.Context, limit int64) ([]models.WatchHistoryEntry, error)
}

// TextGenerator is the text-generation capability the analyzer calls.
type TextGenerator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Analyzer assesses the educational value of the most recently watched
// video. Each invocation ends in exactly one of two outcomes: a merged
// analysis, or an error (ErrNoWatchHistory for the empty-history case).
type Analyzer struct {
	history   HistoryProvider
	generator TextGenerator
}

func NewAnalyzer(history HistoryProvider, generator TextGenerator) *Analyzer {
	return &Analyzer{
		history:   history,
		generator: generator,
	}
}

// AnalyzeLatest fetches the single most recent watch-history entry, asks the
// model for a structured assessment, and merges the reply with the video's
// metadata.
func (a *Analyzer) AnalyzeLatest(ctx context.Context) (*models.VideoAnalysis, error) {
	entries, err := a.history.GetWatchHistory(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch history: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoWatchHistory
	}

	video := entries[0]
	log.Printf("Analyzing latest video: %s (%s)", video.Title, video.ChannelTitle)

	reply, err := a.generator.Complete(ctx, systemPrompt, buildAnalysisPrompt(video))
	if err != nil {
		return nil, err
	}

	analysis, err := parseAnalysisReply(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &models.VideoAnalysis{
		VideoID:     video.VideoID,
		Title:       video.Title,
		PublishedAt: video.PublishedAt,
		Description: video.Description,
		Channel:     video.ChannelTitle,
		AIAnalysis:  *analysis,
	}, nil
}

func buildAnalysisPrompt(video models.WatchHistoryEntry) string {
	return fmt.Sprintf(`Based on the text content from a video, analyze its educational value:

Title: %s
Channel: %s
Description: %s

Please analyze this content and provide:
1. Educational value (score 0-10)
2. Main topics/subjects covered
3. Age appropriateness
4. Learning potential
5. Any potential concerns

Important considerations for board games and educational content:
- Board games often teach multiple subjects simultaneously
  (e.g., mythology, history, strategy, critical thinking)
- They can develop various skills (problem-solving, decision-making, social interaction)
- Even entertainment-focused games can have significant educational value
- Consider both direct educational content (e.g., historical facts) and indirect learning
  (e.g., strategic thinking)

Format the response as a JSON object with these fields:
- educational_score (number 0-10)
- topics (array of strings, include both primary and secondary topics)
- age_appropriateness (string: "Young Children", "Teens", "Adults", or "All Ages")
- learning_potential (string: "High", "Medium", or "Low")
- concerns (array of strings, empty if none)
- explanation (string explaining the score and analysis, including both direct and indirect
  educational benefits)

Note: You are analyzing the provided text content only, not watching any video.`,
		video.Title,
		video.ChannelTitle,
		video.Description,
	)
}

// parseAnalysisReply decodes the model's structured reply. A reply that does
// not parse is a fatal error for the request; no default analysis is ever
// fabricated.
func parseAnalysisReply(reply string) (*models.AIAnalysis, error) {
	payload := extractJSON(reply)

	var analysis models.AIAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}

	return &analysis, nil
}

// extractJSON strips a ```json fenced code block when the model wrapped its
// reply in one; otherwise the reply is returned as-is.
func extractJSON(reply string) string {
	const fence = "```json"

	start := strings.Index(reply, fence)
	if start == -1 {
		return reply
	}

	payload := reply[start+len(fence):]
	if end := strings.Index(payload, "```"); end != -1 {
		payload = payload[:end]
	}

	return strings.TrimSpace(payload)
}
