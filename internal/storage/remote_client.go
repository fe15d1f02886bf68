// ABOUTME: HTTP client for the remote team diary API.
// ABOUTME: Syncs local diary entries to a remote API and reads remote entries back.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/2389-research/daybook/internal/models"
)

// Retry policy for entry creation. Only network errors and 5xx responses are retried.
const (
	createRetryBase = 50 * time.Millisecond
	createRetries   = 2
)

// RemoteClient talks to the remote diary API.
type RemoteClient struct {
	apiURL  string
	apiKey  string
	teamID  string
	client  *http.Client
	backoff func() retry.Backoff
}

// NewRemoteClient creates a remote client with the given credentials.
func NewRemoteClient(apiURL, apiKey, teamID string) *RemoteClient {
	return &RemoteClient{
		apiURL:  NormalizeAPIURL(apiURL),
		apiKey:  apiKey,
		teamID:  teamID,
		client:  &http.Client{Timeout: 30 * time.Second},
		backoff: createBackoff,
	}
}

func createBackoff() retry.Backoff {
	return retry.WithMaxRetries(createRetries, retry.NewFibonacci(createRetryBase))
}

// NormalizeAPIURL strips trailing slashes and a trailing /v1 from an API URL.
func NormalizeAPIURL(apiURL string) string {
	apiURL = strings.TrimRight(apiURL, "/")
	return strings.TrimSuffix(apiURL, "/v1")
}

// remoteEntryPayload is the JSON body sent when creating an entry.
type remoteEntryPayload struct {
	ID        string `json:"id"`
	TeamID    string `json:"team_id"`
	Timestamp int64  `json:"timestamp"`
	Author    string `json:"author,omitempty"`
	Mood      string `json:"mood,omitempty"`
	Content   string `json:"content"`
}

// remoteEntryResponse maps a single diary entry from the remote API response.
type remoteEntryResponse struct {
	ID        string `json:"id"`
	TeamID    string `json:"team_id"`
	Timestamp int64  `json:"timestamp"`
	Author    string `json:"author"`
	Mood      string `json:"mood"`
	Content   string `json:"content"`
}

// remoteListResponse is the top-level envelope from GET /teams/{teamID}/diary/entries.
type remoteListResponse struct {
	Entries    []remoteEntryResponse `json:"entries"`
	TotalCount int                   `json:"total_count"`
	HasMore    bool                  `json:"has_more"`
	NextCursor string                `json:"next_cursor"`
}

func (r *RemoteClient) entriesURL() string {
	return r.apiURL + "/teams/" + r.teamID + "/diary/entries"
}

// CreateDiaryEntry posts a diary entry to the remote API.
func (r *RemoteClient) CreateDiaryEntry(ctx context.Context, entry *models.DiaryEntry) error {
	payload := remoteEntryPayload{
		ID:        entry.ID.String(),
		TeamID:    r.teamID,
		Timestamp: entry.CreatedAt.UnixMilli(),
		Author:    entry.Author,
		Mood:      entry.Mood,
		Content:   entry.Content,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal diary entry: %w", err)
	}

	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		return r.postEntry(ctx, body)
	})
}

func (r *RemoteClient) postEntry(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, "POST", r.entriesURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("remote API request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		err := fmt.Errorf("remote API returned %d: %s", resp.StatusCode, string(respBody))
		if resp.StatusCode >= 500 {
			return retry.RetryableError(err)
		}
		return err
	}
	return nil
}

// ReadDiaryEntries fetches diary entries from the remote API, most recent first.
func (r *RemoteClient) ReadDiaryEntries(ctx context.Context, limit int) ([]*models.DiaryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.entriesURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", r.apiKey)

	q := req.URL.Query()
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	req.URL.RawQuery = q.Encode()

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, fmt.Errorf("remote API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var listResp remoteListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	entries := make([]*models.DiaryEntry, 0, len(listResp.Entries))
	for _, re := range listResp.Entries {
		id, err := uuid.Parse(re.ID)
		if err != nil {
			// Entries without a stable ID cannot be keyed in the timeline.
			continue
		}
		entry := &models.DiaryEntry{
			ID:      id,
			Author:  re.Author,
			Mood:    re.Mood,
			Content: re.Content,
			Source:  models.SourceRemote,
		}
		// Timestamp is Unix milliseconds
		if re.Timestamp > 0 {
			entry.CreatedAt = time.UnixMilli(re.Timestamp)
		}
		entries = append(entries, entry)
	}

	SortNewestFirst(entries)
	return entries, nil
}
