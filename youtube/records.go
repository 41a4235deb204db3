package youtube

// The activities endpoint still returns a "watch" content-details shape for
// accounts with watch-history access, which the published youtube/v3 schema
// no longer models. Activities are therefore decoded into these local
// structs instead of the generated API types.

// Activity is one entry from the activities list endpoint.
type Activity struct {
	Snippet        *ActivitySnippet        `json:"snippet,omitempty"`
	ContentDetails *ActivityContentDetails `json:"contentDetails,omitempty"`
}

// ActivitySnippet carries the human-readable metadata of an activity.
type ActivitySnippet struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
}

// ActivityContentDetails holds at most one of the two video-bearing shapes.
// Both absent means the activity is not a watch event (e.g. a subscription
// notification).
type ActivityContentDetails struct {
	Watch        *ActivityWatch        `json:"watch,omitempty"`
	PlaylistItem *ActivityPlaylistItem `json:"playlistItem,omitempty"`
}

// ActivityWatch attaches a video id directly.
type ActivityWatch struct {
	VideoID string `json:"videoId,omitempty"`
}

// ActivityPlaylistItem attaches a video id through a resource reference.
type ActivityPlaylistItem struct {
	ResourceID *ResourceID `json:"resourceId,omitempty"`
}

// ResourceID identifies the resource an activity points at.
type ResourceID struct {
	Kind    string `json:"kind,omitempty"`
	VideoID string `json:"videoId,omitempty"`
}

// VideoID resolves the watched video's id, preferring the watch shape over
// the playlist-item shape. Returns "" when the activity carries neither,
// which marks it as a non-watch activity.
func (a *Activity) VideoID() string {
	if a == nil || a.ContentDetails == nil {
		return ""
	}
	if w := a.ContentDetails.Watch; w != nil && w.VideoID != "" {
		return w.VideoID
	}
	if p := a.ContentDetails.PlaylistItem; p != nil && p.ResourceID != nil {
		return p.ResourceID.VideoID
	}
	return ""
}

type activityListResponse struct {
	Items []*Activity `json:"items"`
}
