// internal/scrape/twitter.go
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/statscope/statscope/internal/numfmt"
	"github.com/statscope/statscope/internal/retry"
	"github.com/statscope/statscope/internal/scrape/metadata"
	"github.com/statscope/statscope/pkg/models"
)

// profileSchemaTestID identifies the ld+json script carrying the user
// profile schema.
const profileSchemaTestID = "UserProfileSchema-test"

const profileSchemaSelector = `script[type="application/ld+json"][data-testid="` + profileSchemaTestID + `"]`

// tweetSnapshotJS reads every currently-rendered timeline item: its text
// body (with a sentinel when absent) and its metrics group's accessible
// label. Parsing of the label happens host-side.
const tweetSnapshotJS = `Array.from(document.querySelectorAll('[data-testid="tweet"]')).map(function(t) {
	var body = t.querySelector('div[lang]');
	var group = t.querySelector('div[role="group"][aria-label]');
	return {
		text: body && body.textContent ? body.textContent.trim() : 'No text available',
		label: group ? (group.getAttribute('aria-label') || '') : ''
	};
})`

type tweetNode struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// userProfileSchema is the subset of the embedded profile schema we read.
type userProfileSchema struct {
	MainEntity struct {
		InteractionStatistic []struct {
			Name                 string `json:"name"`
			UserInteractionCount int    `json:"userInteractionCount"`
		} `json:"interactionStatistic"`
	} `json:"mainEntity"`
}

func (p *userProfileSchema) stat(name string) int {
	for _, s := range p.MainEntity.InteractionStatistic {
		if s.Name == name {
			return s.UserInteractionCount
		}
	}
	return 0
}

// Twitter scrapes a Twitter/X profile via its embedded structured data, then
// collects timeline items by repeated scroll-and-scrape.
type Twitter struct {
	launcher Launcher
	retry    retry.Config

	// scrollPause is overridable so scroll-loop tests need not sleep
	scrollPause time.Duration
}

// NewTwitter creates the Twitter/X pipeline.
func NewTwitter(launcher Launcher, retryCfg retry.Config) *Twitter {
	return &Twitter{launcher: launcher, retry: retryCfg, scrollPause: scrollPause}
}

func (s *Twitter) Platform() models.Platform {
	return models.PlatformTwitterX
}

// Scrape runs the full pipeline for one profile URL. The browser session is
// released on every exit path.
func (s *Twitter) Scrape(ctx context.Context, url string) (*models.ScrapeResult, error) {
	sess, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, newScrapeError(CodeLaunch, "failed to launch browser", err)
	}
	defer sess.Close()

	page, err := sess.NewPage()
	if err != nil {
		return nil, newScrapeError(CodeLaunch, "failed to open page", err)
	}
	defer page.Close()

	// DOM-content-loaded wait only: the platform keeps connections open, so
	// a network-idle style settle would burn the whole timeout every time.
	err = retry.Do(ctx, s.retry, func() error {
		return page.Navigate(url, navTimeout, domSettle)
	})
	if err != nil {
		return nil, newScrapeError(CodeNavigation, fmt.Sprintf("failed to load %s", url), err)
	}

	profile, err := s.extractProfile(ctx, page)
	if err != nil {
		// No safe zero-default exists for the profile schema
		return nil, newScrapeError(CodeProfileParse, ErrProfileParse.Error(), err)
	}

	tweets := s.collectTweets(ctx, page)

	followers := profile.stat("Follows")
	following := profile.stat("Friends")
	tweetCount := profile.stat("Tweets")

	log.Info().
		Str("url", url).
		Int("followers", followers).
		Int("tweets_collected", len(tweets)).
		Msg("Twitter scrape completed")

	return &models.ScrapeResult{
		Platform:   models.PlatformTwitterX,
		Followers:  numfmt.FormatCount(followers),
		Following:  numfmt.FormatCount(following),
		TweetCount: numfmt.FormatCount(tweetCount),
		Tweets:     tweets,
	}, nil
}

// extractProfile waits for the profile structured-data script and
// deserializes it. Missing or corrupt data is an error; the caller fails the
// request.
func (s *Twitter) extractProfile(ctx context.Context, page Page) (*userProfileSchema, error) {
	return retry.DoValue(ctx, s.retry, func() (*userProfileSchema, error) {
		if err := page.WaitReady(profileSchemaSelector, schemaWaitTimeout); err != nil {
			return nil, err
		}
		html, err := page.HTML()
		if err != nil {
			return nil, err
		}
		doc, err := metadata.Parse(html)
		if err != nil {
			return nil, err
		}

		body, ok := metadata.JSONLD(doc, profileSchemaTestID)
		if !ok {
			return nil, ErrProfileParse
		}

		var schema userProfileSchema
		if err := json.Unmarshal([]byte(body), &schema); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileParse, err)
		}
		return &schema, nil
	})
}

// collectTweets scrapes currently-rendered timeline items, scrolling one
// viewport at a time, until maxItems are collected or the scroll budget runs
// out. A single item's failure is isolated to that item.
func (s *Twitter) collectTweets(ctx context.Context, page Page) []models.Tweet {
	tweets := make([]models.Tweet, 0, maxItems)

	for attempts := 0; len(tweets) < maxItems && attempts < maxScrollAttempts; attempts++ {
		var nodes []tweetNode
		if err := page.Evaluate(tweetSnapshotJS, &nodes); err != nil {
			log.Warn().Err(err).Int("scroll_attempt", attempts).Msg("Timeline snapshot failed")
		}

		for _, node := range nodes {
			if len(tweets) >= maxItems {
				break
			}
			// Only items with a readable text body count
			if node.Text == "" || node.Text == noTextSentinel {
				continue
			}

			m := parseTweetMetrics(node.Label)
			tweets = append(tweets, models.Tweet{
				Post:      node.Text,
				Likes:     m.Likes,
				Retweets:  m.Reposts,
				Replies:   m.Replies,
				Bookmarks: m.Bookmarks,
				Views:     m.Views,
			})
		}

		if len(tweets) < maxItems {
			if err := page.ScrollPage(); err != nil {
				log.Warn().Err(err).Msg("Scroll failed")
			}
			select {
			case <-time.After(s.scrollPause):
			case <-ctx.Done():
				return tweets
			}
		}
	}

	return tweets
}
