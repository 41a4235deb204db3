package youtube

import (
	"content-monitor/internal/models"

	ytapi "google.golang.org/api/youtube/v3"
)

// FormatActivity flattens a raw activity into a watch-history entry. It is
// total: every missing nested field becomes an empty string, never a panic.
func FormatActivity(activity *Activity) models.WatchHistoryEntry {
	var entry models.WatchHistoryEntry
	if activity == nil {
		return entry
	}

	if s := activity.Snippet; s != nil {
		entry.Title = s.Title
		entry.Description = s.Description
		entry.ChannelTitle = s.ChannelTitle
		entry.PublishedAt = s.PublishedAt
	}
	entry.VideoID = activity.VideoID()

	return entry
}

// FormatSubscription flattens a raw subscription record, defaulting every
// missing nested field to an empty string.
func FormatSubscription(subscription *ytapi.Subscription) models.SubscriptionEntry {
	var entry models.SubscriptionEntry
	if subscription == nil || subscription.Snippet == nil {
		return entry
	}

	s := subscription.Snippet
	entry.ChannelTitle = s.Title
	entry.SubscribedAt = s.PublishedAt
	if s.ResourceId != nil {
		entry.ChannelID = s.ResourceId.ChannelId
	}

	return entry
}
