// Package credstore persists sandbox API credentials so the console can
// silently re-authenticate after token expiry. This is the only durable
// state in the system; everything else lives in memory or at the vendor.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

// Credentials holds a cached client id and secret
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Store reads and writes credentials at a fixed path
type Store struct {
	path string
}

// New creates a store backed by the given file path
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user credentials file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "bookctl", "credentials.json"), nil
}

// Save writes credentials with owner-only permissions
func (s *Store) Save(creds Credentials) error {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return apperrors.NewValidationError("client_id and client_secret are required")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Load reads previously saved credentials. A missing file is reported
// as os.ErrNotExist so callers can fall back to prompting.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("credentials file is incomplete")
	}
	return &creds, nil
}

// Clear removes the cached credentials
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}
