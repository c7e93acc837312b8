// internal/scrape/popup.go
package scrape

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Selector strategies for interstitial/login dialog close buttons, tried in
// order. The last entry is the role-based fallback, expressed as XPath.
var popupSelectors = []string{
	`button[aria-label="Close"]`,
	`div[role="button"][aria-label="Close"]`,
	`svg[aria-label="Close"]`,
	`[data-testid="closeButton"]`,
	`//button[normalize-space()="Close"]`,
}

const popupClickTimeout = 2 * time.Second

// dismissPopup makes a best-effort attempt to close an interstitial dialog,
// stopping at the first strategy that clicks. Absence of a popup, or failure
// to close one, is a no-op; subsequent steps never depend on it.
func dismissPopup(page Page) {
	for _, sel := range popupSelectors {
		if err := page.Click(sel, popupClickTimeout); err == nil {
			log.Debug().Str("selector", sel).Msg("Closed popup")
			return
		}
	}
}
