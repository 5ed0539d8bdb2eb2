// Package url provides URL helpers for matching pages to domain settings.
package url

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNoHost is returned for URLs that carry no hostname (about:blank,
// chrome://newtab, data: URLs, malformed input).
var ErrNoHost = errors.New("url has no host")

// Normalize adds an https:// prefix to bare host/path input such as
// "shop.example/page". Input that already has a scheme is returned unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if strings.Contains(input, "://") || strings.HasPrefix(input, "about:") || strings.HasPrefix(input, "data:") {
		return input
	}

	// Contains a dot and no spaces = likely a URL
	if strings.Contains(input, ".") && !strings.Contains(input, " ") {
		return "https://" + input
	}
	return input
}

// Hostname returns the hostname of a page URL, the key under which display
// settings are stored. Matching is exact: no port, no www folding, no
// subdomain folding. Internal browser pages yield ErrNoHost.
func Hostname(rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrNoHost
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	switch parsed.Scheme {
	case "http", "https", "file", "ftp", "ws", "wss":
	default:
		return "", fmt.Errorf("%w: %s", ErrNoHost, rawURL)
	}
	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("%w: %s", ErrNoHost, rawURL)
	}
	return strings.ToLower(host), nil
}

// SameHost reports whether rawURL points at domain. Unparseable URLs never match.
func SameHost(rawURL, domain string) bool {
	host, err := Hostname(rawURL)
	if err != nil {
		return false
	}
	return host == strings.ToLower(domain)
}
