// Package browser owns the headless Chrome lifecycle: one process per scrape
// request, an isolated browsing context with a rotated user agent and
// automation-fingerprint masking, and tab open/close within that context.
package browser

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/statscope/statscope/internal/proxy"
)

// ErrLaunch indicates the browser process could not start. This is an
// environment problem, not a transient network blip, and is never retried.
var ErrLaunch = errors.New("browser launch failed")

// stealthScript masks the automation-detection navigator flag before any
// page script runs.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', { get: () => false });`

// Launcher creates browser sessions. It holds the process-wide pieces of
// session construction: the user-agent pool, the proxy rotation, and the
// resolved Chrome path.
type Launcher struct {
	chromePath string
	headless   bool
	userAgents []string
	proxies    *proxy.Pool
}

// Options configures a Launcher.
type Options struct {
	ChromePath string
	Headless   bool
	UserAgents []string
	Proxies    *proxy.Pool
}

// NewLauncher creates a Launcher, resolving the Chrome executable once.
func NewLauncher(opts Options) *Launcher {
	if opts.Proxies == nil {
		opts.Proxies = proxy.NewPool(nil)
	}
	return &Launcher{
		chromePath: FindChrome(opts.ChromePath),
		headless:   opts.Headless,
		userAgents: opts.UserAgents,
		proxies:    opts.Proxies,
	}
}

// Session is a live browser process plus one isolated browsing context.
// It is exclusively owned by a single in-flight scrape request and must be
// closed exactly once, on every exit path.
type Session struct {
	browserCtx  context.Context
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
	userAgent   string
	proxyAddr   string
	closed      bool
}

// Launch starts a sandboxed headless browser with a randomly chosen user
// agent, optionally routed through the next healthy proxy. Failure to start
// is wrapped in ErrLaunch.
func (l *Launcher) Launch(ctx context.Context) (*Session, error) {
	var ua string
	if len(l.userAgents) > 0 {
		ua = l.userAgents[rand.Intn(len(l.userAgents))]
	}
	proxyAddr := l.proxies.Next()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if ua != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(ua))
	}
	if l.chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(l.chromePath)}, allocOpts...)
	}
	if l.headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if proxyAddr != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(proxyAddr))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	// Warm up: forces the process to actually start so a broken environment
	// fails here instead of mid-extraction.
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		ctxCancel()
		allocCancel()
		if proxyAddr != "" {
			l.proxies.MarkFailed(proxyAddr)
		}
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	if proxyAddr != "" {
		l.proxies.MarkHealthy(proxyAddr)
	}

	log.Debug().
		Str("user_agent", ua).
		Str("proxy", proxyAddr).
		Msg("Browser session started")

	return &Session{
		browserCtx:  browserCtx,
		allocCancel: allocCancel,
		ctxCancel:   ctxCancel,
		userAgent:   ua,
		proxyAddr:   proxyAddr,
	}, nil
}

// NewPage opens a new tab in the session's browsing context with the stealth
// init script installed before any page script runs.
func (s *Session) NewPage() (*Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)

	if err := installStealth(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Page{ctx: tabCtx, cancel: tabCancel}, nil
}

// UserAgent returns the signature this session was created with.
func (s *Session) UserAgent() string { return s.userAgent }

// Proxy returns the upstream proxy this session was created with, if any.
func (s *Session) Proxy() string { return s.proxyAddr }

// Close releases the browser process. Safe to call more than once; only the
// first call does anything.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ctxCancel()
	s.allocCancel()
	log.Debug().Msg("Browser session closed")
}
