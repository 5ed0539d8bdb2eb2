package chrome

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoEndpoint is returned when no running listener published a browser URL.
var ErrNoEndpoint = errors.New("no browser endpoint published; start `sitestyle run` or set browser.remote_url")

// WriteEndpoint publishes the DevTools URL so short-lived commands can reach
// the browser driven by the listener.
func WriteEndpoint(path, controlURL string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if err := os.WriteFile(path, []byte(controlURL+"\n"), 0o600); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	return nil
}

// ReadEndpoint returns the published DevTools URL.
func ReadEndpoint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoEndpoint
	}
	if err != nil {
		return "", fmt.Errorf("endpoint: %w", err)
	}
	url := strings.TrimSpace(string(data))
	if url == "" {
		return "", ErrNoEndpoint
	}
	return url, nil
}

// RemoveEndpoint deletes the published URL. A missing file is not an error.
func RemoveEndpoint(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("endpoint: %w", err)
	}
	return nil
}

// ResolveRemoteURL picks the configured URL, falling back to the published one.
func ResolveRemoteURL(configured, endpointPath string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return ReadEndpoint(endpointPath)
}
