package scrape

import (
	"context"
	"errors"
	"testing"
)

const twProfileHTML = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json" data-testid="UserProfileSchema-test">
{"mainEntity":{"interactionStatistic":[
	{"name":"Follows","userInteractionCount":1234567},
	{"name":"Friends","userInteractionCount":42},
	{"name":"Tweets","userInteractionCount":9876}
]}}
</script>
</head><body></body></html>`

func newTestTwitter(launcher Launcher) *Twitter {
	s := NewTwitter(launcher, testRetryConfig())
	s.scrollPause = 0
	return s
}

func TestTwitter_Scrape(t *testing.T) {
	page := &fakePage{
		htmlBody: twProfileHTML,
		snapshots: [][]tweetNode{{
			{Text: "First tweet", Label: "12 replies, 34 reposts, 56 likes, 7 bookmarks, 8 views"},
			{Text: "Second tweet", Label: "1 replies, 2 reposts, 3 likes"},
			{Text: noTextSentinel, Label: "9 replies, 9 reposts, 9 likes"},
			{Text: "", Label: ""},
		}},
	}
	sess := &fakeSession{pages: []*fakePage{page}}
	launcher := &fakeLauncher{session: sess}

	result, err := newTestTwitter(launcher).Scrape(context.Background(), "https://x.com/nasa")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if result.Followers != "1,234,567" {
		t.Errorf("Followers = %q, want \"1,234,567\"", result.Followers)
	}
	if result.Following != "42" {
		t.Errorf("Following = %q, want \"42\"", result.Following)
	}
	if result.TweetCount != "9,876" {
		t.Errorf("TweetCount = %q, want \"9,876\"", result.TweetCount)
	}

	// The sentinel and empty-text items never count, so each of the 10
	// scroll iterations re-collects the same two rendered tweets
	if len(result.Tweets) == 0 {
		t.Fatal("Expected tweets to be collected")
	}
	first := result.Tweets[0]
	if first.Post != "First tweet" {
		t.Errorf("Post = %q", first.Post)
	}
	if first.Replies != "12" || first.Retweets != "34" || first.Likes != "56" || first.Bookmarks != "7" || first.Views != "8" {
		t.Errorf("Unexpected metrics: %+v", first)
	}
	second := result.Tweets[1]
	if second.Bookmarks != "0" || second.Views != "0" {
		t.Errorf("Expected defaulted metrics, got %+v", second)
	}

	if sess.closes != 1 {
		t.Errorf("Session closes = %d, want 1", sess.closes)
	}
}

func TestTwitter_TimelineCap(t *testing.T) {
	// 30 rendered items, but the batch never exceeds 15
	nodes := make([]tweetNode, 30)
	for i := range nodes {
		nodes[i] = tweetNode{Text: "tweet", Label: "1 replies, 2 reposts, 3 likes"}
	}
	page := &fakePage{htmlBody: twProfileHTML, snapshots: [][]tweetNode{nodes}}
	sess := &fakeSession{pages: []*fakePage{page}}

	result, err := newTestTwitter(&fakeLauncher{session: sess}).Scrape(context.Background(), "https://x.com/nasa")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if len(result.Tweets) != 15 {
		t.Errorf("Expected 15 tweets, got %d", len(result.Tweets))
	}
	// Cap reached on the first pass, so the page never scrolled
	if page.scrolls != 0 {
		t.Errorf("scrolls = %d, want 0", page.scrolls)
	}
}

func TestTwitter_ScrollBudget(t *testing.T) {
	// Nothing ever renders: the loop stops after the scroll budget
	page := &fakePage{htmlBody: twProfileHTML, snapshots: [][]tweetNode{{}}}
	sess := &fakeSession{pages: []*fakePage{page}}

	result, err := newTestTwitter(&fakeLauncher{session: sess}).Scrape(context.Background(), "https://x.com/empty")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if len(result.Tweets) != 0 {
		t.Errorf("Expected no tweets, got %d", len(result.Tweets))
	}
	if page.evalCalls != 10 {
		t.Errorf("Expected 10 snapshot attempts, got %d", page.evalCalls)
	}
	if page.scrolls != 10 {
		t.Errorf("Expected 10 scrolls, got %d", page.scrolls)
	}
}

func TestTwitter_ProfileSchemaMissing(t *testing.T) {
	// Schema script absent: the request fails, there is no safe default
	page := &fakePage{htmlBody: "<html><head></head><body></body></html>"}
	sess := &fakeSession{pages: []*fakePage{page}}

	_, err := newTestTwitter(&fakeLauncher{session: sess}).Scrape(context.Background(), "https://x.com/nasa")
	if err == nil {
		t.Fatal("Expected profile parse error")
	}
	if !errors.Is(err, &ScrapeError{Code: CodeProfileParse}) {
		t.Errorf("Expected PROFILE_PARSE error, got %v", err)
	}
	if sess.closes != 1 {
		t.Errorf("Session closes = %d, want 1", sess.closes)
	}
}

func TestTwitter_ProfileSchemaCorrupt(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json" data-testid="UserProfileSchema-test">{not json</script>
</head><body></body></html>`
	page := &fakePage{htmlBody: html}
	sess := &fakeSession{pages: []*fakePage{page}}

	_, err := newTestTwitter(&fakeLauncher{session: sess}).Scrape(context.Background(), "https://x.com/nasa")
	if !errors.Is(err, &ScrapeError{Code: CodeProfileParse}) {
		t.Errorf("Expected PROFILE_PARSE error, got %v", err)
	}
}

func TestTwitter_MissingStatsDefaultToZero(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json" data-testid="UserProfileSchema-test">
{"mainEntity":{"interactionStatistic":[{"name":"Follows","userInteractionCount":10}]}}
</script>
</head><body></body></html>`
	page := &fakePage{htmlBody: html, snapshots: [][]tweetNode{{}}}
	sess := &fakeSession{pages: []*fakePage{page}}

	result, err := newTestTwitter(&fakeLauncher{session: sess}).Scrape(context.Background(), "https://x.com/nasa")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if result.Followers != "10" || result.Following != "0" || result.TweetCount != "0" {
		t.Errorf("Expected missing stats defaulted, got %+v", result)
	}
}
