// internal/scrape/instagram.go
package scrape

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/statscope/statscope/internal/numfmt"
	"github.com/statscope/statscope/internal/ratelimit"
	"github.com/statscope/statscope/internal/retry"
	"github.com/statscope/statscope/internal/scrape/metadata"
	urlutil "github.com/statscope/statscope/internal/utils/url"
	"github.com/statscope/statscope/pkg/models"
)

const instagramBaseURL = "https://www.instagram.com"

// Instagram scrapes a profile page for follower statistics, then follows
// discovered post links one page at a time to collect per-post engagement.
type Instagram struct {
	launcher Launcher
	limiter  ratelimit.RateLimiter
	retry    retry.Config
}

// NewInstagram creates the Instagram pipeline.
func NewInstagram(launcher Launcher, limiter ratelimit.RateLimiter, retryCfg retry.Config) *Instagram {
	return &Instagram{launcher: launcher, limiter: limiter, retry: retryCfg}
}

func (s *Instagram) Platform() models.Platform {
	return models.PlatformInstagram
}

// Scrape runs the full pipeline for one profile URL. The browser session is
// released on every exit path.
func (s *Instagram) Scrape(ctx context.Context, url string) (*models.ScrapeResult, error) {
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

	err = retry.Do(ctx, s.retry, func() error {
		if err := page.Navigate(url, navTimeout, networkSettle); err != nil {
			return err
		}
		dismissPopup(page)
		return nil
	})
	if err != nil {
		return nil, newScrapeError(CodeNavigation, fmt.Sprintf("failed to load %s", url), err)
	}

	stats := s.extractProfile(ctx, page)
	posts := s.collectPosts(ctx, sess, page)

	log.Info().
		Str("url", url).
		Int("followers", stats.Followers).
		Int("posts_collected", len(posts)).
		Msg("Instagram scrape completed")

	return &models.ScrapeResult{
		Platform:  models.PlatformInstagram,
		Followers: numfmt.FormatCount(stats.Followers),
		Following: numfmt.FormatCount(stats.Following),
		PostCount: numfmt.FormatCount(stats.PostCount),
		Posts:     posts,
	}, nil
}

// extractProfile reads follower/following/post counts from the profile page
// metadata. Never fails the request: a missing or unmatched tag degrades to
// all-zero stats after the fallbacks are exhausted.
func (s *Instagram) extractProfile(ctx context.Context, page Page) models.ProfileStats {
	stats, err := retry.DoValue(ctx, s.retry, func() (models.ProfileStats, error) {
		if err := page.WaitReady(`meta[property="og:description"]`, metaWaitTimeout); err != nil {
			return models.ProfileStats{}, err
		}
		html, err := page.HTML()
		if err != nil {
			return models.ProfileStats{}, err
		}
		doc, err := metadata.Parse(html)
		if err != nil {
			return models.ProfileStats{}, err
		}

		if content, ok := metadata.MetaProperty(doc, "og:description"); ok {
			return parseProfileDescription(content), nil
		}

		// Meta tag attached but empty/stripped: run the page's inline
		// scripts in the sandbox and scan their globals for the same text.
		for _, global := range metadata.InlineGlobals(doc) {
			if fallback := parseProfileDescription(global); fallback != (models.ProfileStats{}) {
				log.Debug().Msg("Profile stats recovered from inline script globals")
				return fallback, nil
			}
		}
		return models.ProfileStats{}, nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Profile metadata unavailable, defaulting stats to zero")
		return models.ProfileStats{}
	}
	return stats
}

// collectPosts gathers up to maxLinkCandidates post hrefs from the loaded
// profile page, then visits the first maxItems of them. One post's failure
// never aborts the batch.
func (s *Instagram) collectPosts(ctx context.Context, sess Session, page Page) []models.InstagramPost {
	links, err := retry.DoValue(ctx, s.retry, func() ([]string, error) {
		return page.Hrefs("article a", maxLinkCandidates)
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to discover post links")
		return nil
	}
	if len(links) > maxItems {
		links = links[:maxItems]
	}

	posts := make([]models.InstagramPost, 0, len(links))
	for _, href := range links {
		postURL := urlutil.ResolveURL(instagramBaseURL, href)

		// Courtesy pacing between consecutive post loads
		if err := s.limiter.Wait(ctx, postURL); err != nil {
			log.Warn().Err(err).Msg("Pacing wait cancelled, stopping post collection")
			break
		}

		post, err := s.scrapePost(ctx, sess, postURL)
		if err != nil {
			log.Warn().Err(err).Str("post_url", postURL).Msg("Skipping post")
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

// scrapePost opens one post in a new page of the same browsing context and
// extracts its engagement counts. The page is closed whether or not
// extraction succeeded.
func (s *Instagram) scrapePost(ctx context.Context, sess Session, postURL string) (models.InstagramPost, error) {
	page, err := sess.NewPage()
	if err != nil {
		return models.InstagramPost{}, err
	}
	defer page.Close()

	err = retry.Do(ctx, s.retry, func() error {
		if err := page.Navigate(postURL, navTimeout, networkSettle); err != nil {
			return err
		}
		dismissPopup(page)
		return nil
	})
	if err != nil {
		return models.InstagramPost{}, err
	}

	return retry.DoValue(ctx, s.retry, func() (models.InstagramPost, error) {
		html, err := page.HTML()
		if err != nil {
			return models.InstagramPost{}, err
		}
		doc, err := metadata.Parse(html)
		if err != nil {
			return models.InstagramPost{}, err
		}

		content, _ := metadata.MetaName(doc, "description")
		likes, comments, caption := parsePostDescription(content)

		return models.InstagramPost{
			Post:     caption,
			Likes:    numfmt.FormatCount(likes),
			Comments: numfmt.FormatCount(comments),
		}, nil
	})
}
