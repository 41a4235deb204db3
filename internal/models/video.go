package models

// WatchHistoryEntry is one normalized watch-history item. VideoID is empty
// when neither of the two upstream id locations was populated; entries
// returned by the history service always carry a non-empty id.
type WatchHistoryEntry struct {
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	PublishedAt  string `json:"published_at"`
	ChannelTitle string `json:"channel_title"`
	Description  string `json:"description"`
}

// SubscriptionEntry is one normalized channel subscription.
type SubscriptionEntry struct {
	ChannelTitle string `json:"channel_title"`
	ChannelID    string `json:"channel_id"`
	SubscribedAt string `json:"subscribed_at"`
}

// WatchTimeStats holds aggregate watch-time figures computed over the
// user's recent activity. Videos whose duration could not be resolved are
// excluded from both the total and the count.
type WatchTimeStats struct {
	TotalSeconds    int     `json:"total_seconds"`
	TotalHours      float64 `json:"total_hours"`
	VideoCount      int     `json:"video_count"`
	AverageDuration float64 `json:"average_duration"`
}

// AIAnalysis is the structured educational assessment returned by the
// language model.
type AIAnalysis struct {
	EducationalScore   float64  `json:"educational_score"`
	Topics             []string `json:"topics"`
	AgeAppropriateness string   `json:"age_appropriateness"`
	LearningPotential  string   `json:"learning_potential"`
	Concerns           []string `json:"concerns"`
	Explanation        string   `json:"explanation"`
}

// VideoAnalysis combines a watched video's metadata with its AI assessment.
type VideoAnalysis struct {
	VideoID     string     `json:"video_id"`
	Title       string     `json:"title"`
	PublishedAt string     `json:"published_at"`
	Description string     `json:"description"`
	Channel     string     `json:"channel"`
	AIAnalysis  AIAnalysis `json:"ai_analysis"`
}
