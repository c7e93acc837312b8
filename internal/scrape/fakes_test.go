package scrape

import (
	"context"
	"errors"
	"time"

	"github.com/statscope/statscope/internal/retry"
)

// fakePage implements Page for extractor tests.
type fakePage struct {
	navigateErr  error
	waitReadyErr error
	htmlBody     string
	htmlErr      error
	hrefs        []string
	hrefsErr     error
	snapshots    [][]tweetNode
	evalErr      error
	evalCalls    int
	scrolls      int
	closes       int
}

func (p *fakePage) Navigate(url string, timeout, settle time.Duration) error {
	return p.navigateErr
}

func (p *fakePage) WaitReady(selector string, timeout time.Duration) error {
	return p.waitReadyErr
}

func (p *fakePage) HTML() (string, error) {
	return p.htmlBody, p.htmlErr
}

func (p *fakePage) Evaluate(expr string, out any) error {
	call := p.evalCalls
	p.evalCalls++
	if p.evalErr != nil {
		return p.evalErr
	}
	if nodes, ok := out.(*[]tweetNode); ok && len(p.snapshots) > 0 {
		// Repeat the last snapshot once the scripted ones run out, the way a
		// page keeps re-rendering the same items
		if call >= len(p.snapshots) {
			call = len(p.snapshots) - 1
		}
		*nodes = p.snapshots[call]
	}
	return nil
}

func (p *fakePage) Click(selector string, timeout time.Duration) error {
	return errors.New("no popup")
}

func (p *fakePage) Hrefs(selector string, limit int) ([]string, error) {
	if p.hrefsErr != nil {
		return nil, p.hrefsErr
	}
	if len(p.hrefs) > limit {
		return p.hrefs[:limit], nil
	}
	return p.hrefs, nil
}

func (p *fakePage) ScrollPage() error {
	p.scrolls++
	return nil
}

func (p *fakePage) Close() error {
	p.closes++
	return nil
}

// fakeSession hands out scripted pages first, then auto-creates pages with
// defaultHTML (recorded so tests can assert they were closed).
type fakeSession struct {
	pages       []*fakePage
	idx         int
	extra       []*fakePage
	pageErr     error
	defaultHTML string
	closes      int
}

func (s *fakeSession) NewPage() (Page, error) {
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	if s.idx < len(s.pages) {
		p := s.pages[s.idx]
		s.idx++
		return p, nil
	}
	p := &fakePage{htmlBody: s.defaultHTML}
	s.extra = append(s.extra, p)
	return p, nil
}

func (s *fakeSession) Close() {
	s.closes++
}

type fakeLauncher struct {
	session  *fakeSession
	err      error
	launches int
}

func (l *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	l.launches++
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

func testRetryConfig() retry.Config {
	return retry.Config{MaxAttempts: 3, Delay: time.Millisecond}
}
