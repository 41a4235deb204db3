package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"content-monitor/shared/config"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

const (
	readonlyScope = "https://www.googleapis.com/auth/youtube.readonly"
	apiBaseURL    = "https://www.googleapis.com/youtube/v3"

	// DefaultPageSize is the upstream page size used when no explicit limit
	// is given; it is also the API's maximum.
	DefaultPageSize = 50

	// DefaultListLimit bounds the history and subscription listings when the
	// caller does not pass a limit.
	DefaultListLimit = 5
)

// Client wraps the YouTube Data API with the read-only scope. Subscriptions
// and videos go through the generated service; activities are fetched over
// the REST endpoint directly (see records.go for why).
type Client struct {
	service    *ytapi.Service
	httpClient *http.Client
	baseURL    string
}

// NewClient builds an authenticated client from static credentials. Token
// refresh is handled by the oauth2 token source; an expired access token
// with a valid refresh token is refreshed transparently on first use.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{readonlyScope},
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURI},
	}

	token := &oauth2.Token{
		AccessToken:  cfg.Token,
		RefreshToken: cfg.RefreshToken,
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	service, err := ytapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:    service,
		httpClient: httpClient,
		baseURL:    apiBaseURL,
	}, nil
}

// ListActivities fetches the user's most recent activities, newest first.
// maxResults is clamped to the API page-size ceiling.
func (c *Client) ListActivities(ctx context.Context, maxResults int64) ([]*Activity, error) {
	if maxResults <= 0 || maxResults > DefaultPageSize {
		maxResults = DefaultPageSize
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("mine", "true")
	params.Set("maxResults", strconv.FormatInt(maxResults, 10))

	endpoint := c.baseURL + "/activities?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create activities request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("activities request returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var list activityListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode activities response: %w", err)
	}

	log.Printf("Fetched %d activities", len(list.Items))
	return list.Items, nil
}

// ListSubscriptions fetches the user's channel subscriptions.
func (c *Client) ListSubscriptions(ctx context.Context, maxResults int64) ([]*ytapi.Subscription, error) {
	if maxResults <= 0 || maxResults > DefaultPageSize {
		maxResults = DefaultPageSize
	}

	resp, err := c.service.Subscriptions.List([]string{"snippet"}).
		Mine(true).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	return resp.Items, nil
}

// GetVideo fetches one video's metadata. Returns (nil, nil) when the video
// does not exist or is not visible to the caller.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*ytapi.Video, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}
	return resp.Items[0], nil
}
