// internal/scrape/parse.go
package scrape

import (
	"regexp"
	"strings"

	"github.com/statscope/statscope/internal/numfmt"
	"github.com/statscope/statscope/pkg/models"
)

// Each upstream text format gets one named parser around one pattern, so
// platform markup drift is a one-function change.

// Instagram og:description, e.g. "1,234 Followers, 56 Following, 7 Posts -
// ...". Surrounding phrasing varies; only the order is fixed.
var instagramProfileRe = regexp.MustCompile(`(?s)([\d.,]+[KkMm]?)[^\d]+Followers.*?([\d.,]+[KkMm]?)[^\d]+Following.*?([\d.,]+[KkMm]?)[^\d]+Posts`)

// Instagram post description meta, e.g. `1,215 likes, 21 comments - user on
// January 1, 2024: "caption text"`.
var instagramPostRe = regexp.MustCompile(`(?s)([\d.,]+[KkMm]?)[^\d]+likes.*?([\d.,]+[KkMm]?)[^\d]+comments.*?"([^"]+)"`)

// Twitter/X metrics group aria-label, tried most-specific first. Views drop
// off old tweets and bookmarks off some locales, hence the fallbacks.
var (
	tweetMetricsFullRe    = regexp.MustCompile(`(?i)(\d[\d,]*) replies, (\d[\d,]*) reposts, (\d[\d,]*) likes, (\d[\d,]*) bookmarks, (\d[\d,]*) views`)
	tweetMetricsPartialRe = regexp.MustCompile(`(?i)(\d[\d,]*) replies, (\d[\d,]*) reposts, (\d[\d,]*) likes, (\d[\d,]*) bookmarks`)
	tweetMetricsMinimalRe = regexp.MustCompile(`(?i)(\d[\d,]*) replies, (\d[\d,]*) reposts, (\d[\d,]*) likes`)
)

// parseProfileDescription extracts follower/following/post counts from an
// Instagram og:description. No match yields all zeros, never an error.
func parseProfileDescription(content string) models.ProfileStats {
	m := instagramProfileRe.FindStringSubmatch(content)
	if m == nil {
		return models.ProfileStats{}
	}
	return models.ProfileStats{
		Followers: numfmt.ParseCount(m[1]),
		Following: numfmt.ParseCount(m[2]),
		PostCount: numfmt.ParseCount(m[3]),
	}
}

// parsePostDescription extracts like/comment counts and the quoted caption
// from an Instagram post description meta. No match defaults everything,
// mirroring the profile parser: a post page we could load is still an item.
func parsePostDescription(content string) (likes, comments int, caption string) {
	m := instagramPostRe.FindStringSubmatch(content)
	if m == nil {
		return 0, 0, ""
	}
	return numfmt.ParseCount(m[1]), numfmt.ParseCount(m[2]), strings.TrimSpace(m[3])
}

// tweetMetrics holds one timeline item's counters as the source rendered
// them: literal comma-grouped numeral strings, not re-normalized.
type tweetMetrics struct {
	Replies   string
	Reposts   string
	Likes     string
	Bookmarks string
	Views     string
}

// parseTweetMetrics parses a metrics-group accessible label, taking the most
// specific matching pattern and defaulting any ungrouped metric to "0".
func parseTweetMetrics(label string) tweetMetrics {
	m := tweetMetrics{Replies: "0", Reposts: "0", Likes: "0", Bookmarks: "0", Views: "0"}
	if label == "" {
		return m
	}

	if g := tweetMetricsFullRe.FindStringSubmatch(label); g != nil {
		m.Replies, m.Reposts, m.Likes, m.Bookmarks, m.Views = g[1], g[2], g[3], g[4], g[5]
	} else if g := tweetMetricsPartialRe.FindStringSubmatch(label); g != nil {
		m.Replies, m.Reposts, m.Likes, m.Bookmarks = g[1], g[2], g[3], g[4]
	} else if g := tweetMetricsMinimalRe.FindStringSubmatch(label); g != nil {
		m.Replies, m.Reposts, m.Likes = g[1], g[2], g[3]
	}
	return m
}
