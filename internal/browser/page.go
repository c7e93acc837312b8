// internal/browser/page.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Page is one tab within a session's browsing context.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// installStealth registers the fingerprint-masking script to run in every
// document of the tab before page scripts execute.
func installStealth(ctx context.Context) error {
	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	}))
}

// Navigate loads url within timeout, then pauses settle to let late-loading
// content land. Platforms here render almost everything after the load event,
// so the settle pause stands in for a network-idle wait.
func (p *Page) Navigate(url string, timeout, settle time.Duration) error {
	tctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}

	if settle > 0 {
		select {
		case <-time.After(settle):
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	}
	return nil
}

// WaitReady blocks until a node matching selector is attached, or timeout.
func (p *Page) WaitReady(selector string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	return nil
}

// HTML returns the full rendered document.
func (p *Page) HTML() (string, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("snapshot failed: %w", err)
	}
	return html, nil
}

// Evaluate runs expr in the page and unmarshals the result into out.
func (p *Page) Evaluate(expr string, out any) error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(expr, out))
}

// Click waits for selector to become visible and clicks it, all within
// timeout. Selector may be CSS or XPath.
func (p *Page) Click(selector string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	return chromedp.Run(tctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.Click(selector, chromedp.BySearch),
	)
}

// Hrefs collects up to limit href attributes from anchors matching selector,
// in document order. A page with no matches yields an empty slice.
func (p *Page) Hrefs(selector string, limit int) ([]string, error) {
	var nodes []*cdp.Node
	err := chromedp.Run(p.ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("query %q failed: %w", selector, err)
	}

	hrefs := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if len(hrefs) >= limit {
			break
		}
		if href, ok := node.Attribute("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	}
	return hrefs, nil
}

// ScrollPage scrolls down by one viewport height.
func (p *Page) ScrollPage() error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(`window.scrollBy(0, window.innerHeight); true`, nil))
}

// Close closes the tab. The session's browsing context stays alive.
func (p *Page) Close() error {
	err := chromedp.Cancel(p.ctx)
	p.cancel()
	return err
}
