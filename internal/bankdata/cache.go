package bankdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveCache writes a fetched payload to disk so later pipeline runs can work
// offline.
func SaveCache(path string, payload UserPayload) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding payload cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing payload cache: %w", err)
	}
	return nil
}

// LoadCache reads a previously saved payload.
func LoadCache(path string) (UserPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UserPayload{}, fmt.Errorf("reading payload cache: %w", err)
	}
	var payload UserPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return UserPayload{}, fmt.Errorf("parsing payload cache: %w", err)
	}
	return payload, nil
}
