package urlutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/statscope/statscope/pkg/models"
)

// supportedPattern is the allow-list applied to inbound scrape URLs.
var supportedPattern = regexp.MustCompile(`(?i)^https?://(www\.)?(instagram\.com|twitter\.com|x\.com)`)

// ValidateURL performs basic URL validation.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// Supported reports whether the URL belongs to a platform this service
// can scrape.
func Supported(urlStr string) bool {
	return supportedPattern.MatchString(urlStr)
}

// ResolveTarget validates urlStr and maps it to a platform by hostname
// substring, mirroring the allow-list.
func ResolveTarget(urlStr string) (models.ScrapeTarget, error) {
	if err := ValidateURL(urlStr); err != nil {
		return models.ScrapeTarget{}, err
	}
	if !Supported(urlStr) {
		return models.ScrapeTarget{}, fmt.Errorf("unsupported platform: only Instagram, Twitter, and X.com are supported")
	}

	target := models.ScrapeTarget{URL: urlStr}
	switch {
	case strings.Contains(urlStr, "instagram.com"):
		target.Platform = models.PlatformInstagram
	case strings.Contains(urlStr, "twitter.com"), strings.Contains(urlStr, "x.com"):
		target.Platform = models.PlatformTwitterX
	default:
		return models.ScrapeTarget{}, fmt.Errorf("unsupported platform: only Instagram, Twitter, and X.com are supported")
	}
	return target, nil
}

// ResolveURL resolves a possibly-relative href against a base URL.
func ResolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}
