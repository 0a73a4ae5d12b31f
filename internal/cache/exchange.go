// Package cache persists prompt/response exchanges for debugging.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sdkwatch/sdkwatch/internal/config"
)

// Exchange represents a prompt/response pair for caching
type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider"` // e.g. "anthropic"
	Model     string    `json:"model"`
	SessionID string    `json:"session_id,omitempty"` // empty for standalone calls
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Error     string    `json:"error,omitempty"`
}

// ExchangeDir returns the path to the exchange cache directory.
// On macOS this is ~/Library/Caches/sdkwatch/llm/
func ExchangeDir() (string, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "llm"), nil
}

// SaveExchange serializes an exchange to JSON and writes it to a
// timestamped file. Returns the path to the saved file.
func SaveExchange(exchange Exchange) (string, error) {
	dir, err := ExchangeDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Dashes instead of colons for filesystem compatibility.
	filename := exchange.Timestamp.Format("2006-01-02T15-04-05.000") + ".json"
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(exchange, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}
