// internal/scrape/chrome.go
package scrape

import (
	"context"

	"github.com/statscope/statscope/internal/browser"
)

// ChromeLauncher adapts *browser.Launcher to the Launcher interface.
type ChromeLauncher struct {
	Launcher *browser.Launcher
}

func (c ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	s, err := c.Launcher.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return chromeSession{s}, nil
}

type chromeSession struct {
	s *browser.Session
}

func (cs chromeSession) NewPage() (Page, error) {
	p, err := cs.s.NewPage()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (cs chromeSession) Close() {
	cs.s.Close()
}
