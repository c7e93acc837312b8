// Package numfmt converts between shorthand count strings ("1.2K", "4.5M",
// "12,345") and integers. Every count in the pipeline, profile-level or
// per-item, goes through this one implementation.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseCount parses a human-shorthand count into an integer.
// "1.2k" -> 1200, "4.5M" -> 4500000, "12,345" -> 12345.
// Unparseable or empty input yields 0, never an error.
func ParseCount(text string) int {
	text = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(text)), ",", "")
	if text == "" {
		return 0
	}

	if n, ok := suffixed(text, "m", 1_000_000); ok {
		return n
	}
	if n, ok := suffixed(text, "k", 1_000); ok {
		return n
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}

// suffixed parses "<float><suffix>" and scales by mult, rounding to nearest.
func suffixed(text, suffix string, mult float64) (int, bool) {
	if !strings.HasSuffix(text, suffix) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(text, suffix), 64)
	if err != nil {
		return 0, true
	}
	return int(math.Round(f * mult)), true
}

// FormatCount renders n with thousands grouping: 12345 -> "12,345".
// No rounding and no shorthand re-introduction.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
