// ABOUTME: Connection validation for the remote diary API.
// ABOUTME: Tests credentials by reading a single entry through the storage client.
package tui

import (
	"context"
	"fmt"

	"github.com/2389-research/daybook/internal/storage"
)

// ValidateConnection tests the API connection by fetching entries with the given credentials.
// The response must decode as a diary listing, so a login page answering 200 still fails.
// The context allows cancellation when the user quits during validation.
func ValidateConnection(ctx context.Context, apiURL, apiKey, teamID string) error {
	client := storage.NewRemoteClient(apiURL, apiKey, teamID)
	if _, err := client.ReadDiaryEntries(ctx, 1); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	return nil
}
