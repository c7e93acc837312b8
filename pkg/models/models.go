package models

// Platform identifies a supported social platform
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTwitterX  Platform = "twitterx"
)

// ScrapeTarget is a validated URL paired with the platform it resolved to.
// It is immutable once built from the inbound request.
type ScrapeTarget struct {
	URL      string
	Platform Platform
}

// ProfileStats holds the raw profile counters extracted from a profile page.
// All fields default to 0 when the source markup yields nothing parseable.
type ProfileStats struct {
	Followers int
	Following int
	// PostCount is the post count on Instagram and the tweet count on Twitter/X
	PostCount int
}

// InstagramPost is one collected post. Likes and Comments are
// display-formatted strings (comma-grouped), which is the output contract.
type InstagramPost struct {
	Post     string `json:"post"`
	Likes    string `json:"likes"`
	Comments string `json:"comments"`
}

// Tweet is one collected timeline item. Metric fields are kept as the
// numeral strings rendered by the source, already comma-grouped.
type Tweet struct {
	Post      string `json:"post"`
	Likes     string `json:"likes"`
	Retweets  string `json:"retweets"`
	Replies   string `json:"replies"`
	Bookmarks string `json:"bookmarks"`
	Views     string `json:"views"`
}

// ScrapeResult is the aggregate response payload for one scrape request.
// Exactly one of Posts/Tweets (and PostCount/TweetCount) is populated,
// depending on the platform.
type ScrapeResult struct {
	Platform   Platform        `json:"platform"`
	Followers  string          `json:"followers"`
	Following  string          `json:"following"`
	PostCount  string          `json:"postCount,omitempty"`
	TweetCount string          `json:"tweetCount,omitempty"`
	Posts      []InstagramPost `json:"posts,omitempty"`
	Tweets     []Tweet         `json:"tweets,omitempty"`
}
