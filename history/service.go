package history

import (
	"context"
	"fmt"
	"log"
	"math"

	"content-monitor/internal/models"
	"content-monitor/youtube"

	ytapi "google.golang.org/api/youtube/v3"
)

// Platform is the slice of the YouTube client the service depends on.
type Platform interface {
	ListActivities(ctx context.Context, maxResults int64) ([]*youtube.Activity, error)
	ListSubscriptions(ctx context.Context, maxResults int64) ([]*ytapi.Subscription, error)
	GetVideo(ctx context.Context, videoID string) (*ytapi.Video, error)
}

// Service turns raw platform records into normalized watch-history entries
// and aggregate watch-time statistics. It holds no state of its own; every
// call re-fetches from upstream.
type Service struct {
	platform Platform
}

func NewService(platform Platform) *Service {
	return &Service{platform: platform}
}

// GetWatchHistory returns up to limit recent watch events, newest first as
// the upstream returns them. Activities that do not resolve to a video id
// (subscription notifications and the like) are filtered out; repeated
// watches of the same video stay as separate entries.
func (s *Service) GetWatchHistory(ctx context.Context, limit int64) ([]models.WatchHistoryEntry, error) {
	if limit <= 0 {
		limit = youtube.DefaultListLimit
	}

	activities, err := s.platform.ListActivities(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	entries := make([]models.WatchHistoryEntry, 0, len(activities))
	for _, activity := range activities {
		if activity.VideoID() == "" {
			continue
		}
		entries = append(entries, youtube.FormatActivity(activity))
	}

	return entries, nil
}

// GetSubscriptions returns up to limit recent channel subscriptions in
// upstream order.
func (s *Service) GetSubscriptions(ctx context.Context, limit int64) ([]models.SubscriptionEntry, error) {
	if limit <= 0 {
		limit = youtube.DefaultListLimit
	}

	subscriptions, err := s.platform.ListSubscriptions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entries := make([]models.SubscriptionEntry, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		entries = append(entries, youtube.FormatSubscription(subscription))
	}

	return entries, nil
}

// GetWatchTimeStats aggregates watch time over the user's recent activity.
// A zero parsed duration means the length is unknown, not that the video is
// zero seconds long, so those videos count toward neither the total nor the
// average.
func (s *Service) GetWatchTimeStats(ctx context.Context) (models.WatchTimeStats, error) {
	activities, err := s.platform.ListActivities(ctx, youtube.DefaultPageSize)
	if err != nil {
		return models.WatchTimeStats{}, fmt.Errorf("failed to list activities: %w", err)
	}

	var totalSeconds, videoCount int
	for _, activity := range activities {
		videoID := activity.VideoID()
		if videoID == "" {
			continue
		}

		video, err := s.platform.GetVideo(ctx, videoID)
		if err != nil {
			return models.WatchTimeStats{}, fmt.Errorf("failed to fetch video details: %w", err)
		}
		if video == nil {
			log.Printf("Video %s not found, skipping", videoID)
			continue
		}

		duration := "PT0S"
		if video.ContentDetails != nil && video.ContentDetails.Duration != "" {
			duration = video.ContentDetails.Duration
		}

		seconds := youtube.ParseDuration(duration)
		if seconds == 0 {
			continue
		}

		totalSeconds += seconds
		videoCount++
	}

	stats := models.WatchTimeStats{
		TotalSeconds: totalSeconds,
		TotalHours:   round2(float64(totalSeconds) / 3600),
		VideoCount:   videoCount,
	}
	if videoCount > 0 {
		stats.AverageDuration = round2(float64(totalSeconds) / float64(videoCount))
	}

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
