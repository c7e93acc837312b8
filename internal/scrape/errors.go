// internal/scrape/errors.go
package scrape

import (
	"errors"
	"fmt"
)

// Common pipeline errors
var (
	// ErrProfileParse means the Twitter/X profile structured data was missing
	// or corrupt. There is no safe zero-default for it, so the request fails.
	ErrProfileParse = errors.New("could not extract profile data")

	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ErrorCode classifies a pipeline failure
type ErrorCode string

const (
	CodeLaunch       ErrorCode = "LAUNCH"
	CodeNavigation   ErrorCode = "NAVIGATION"
	CodeProfileParse ErrorCode = "PROFILE_PARSE"
)

// ScrapeError wraps a pipeline failure with its classification. It is the
// only error shape that crosses the request boundary.
type ScrapeError struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

func (e *ScrapeError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Underlying
}

// Is matches on code so callers can compare against a bare-code target.
func (e *ScrapeError) Is(target error) bool {
	if t, ok := target.(*ScrapeError); ok {
		return e.Code == t.Code
	}
	return false
}

func newScrapeError(code ErrorCode, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Underlying: err}
}
