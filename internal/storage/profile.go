// ABOUTME: Persistence for the local user profile.
// ABOUTME: Stores the display nickname in a small YAML file next to the diary.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileStore persists the user's display name.
type ProfileStore struct {
	path string
}

// profileFile is the YAML structure for profile.yaml.
type profileFile struct {
	Nickname string `yaml:"nickname"`
}

// NewProfileStore creates a profile store backed by <dataDir>/profile.yaml.
func NewProfileStore(dataDir string) *ProfileStore {
	return &ProfileStore{path: filepath.Join(dataDir, "profile.yaml")}
}

// GetNickname returns the stored nickname, or an empty string if unset.
func (p *ProfileStore) GetNickname() (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read profile: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return "", fmt.Errorf("failed to parse profile: %w", err)
	}
	return pf.Nickname, nil
}

// SetNickname persists the nickname.
func (p *ProfileStore) SetNickname(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("nickname must not be empty")
	}

	data, err := yaml.Marshal(profileFile{Nickname: name})
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return atomicWrite(p.path, data)
}
