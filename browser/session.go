package browser

import (
	"context"
	"log/slog"
	"time"
)

// loginPollInterval is how often the session gate re-checks the page for a
// result listing while the human works through the login.
const loginPollInterval = 2 * time.Second

// genericListingMarkers are tried alongside the configured row selector, so
// the gate still opens when the configured selector is wrong but a listing
// is plainly visible.
var genericListingMarkers = []string{
	"table tr",
	".results",
	`[class*="directory"]`,
	`[class*="member"]`,
}

// WaitForLogin blocks until a plausible result listing appears on the page,
// polling while the operator completes the login by hand. The wait is
// bounded by timeout; on expiry it logs a warning and reports false, and
// the caller proceeds optimistically — the listing may be present without
// any of the markers matching.
func WaitForLogin(ctx context.Context, page Page, rowSelector string, timeout time.Duration) bool {
	markers := append([]string{rowSelector}, genericListingMarkers...)

	slog.Info("waiting for login to complete", "timeout", timeout)
	deadline := time.Now().Add(timeout)

	for {
		for _, marker := range markers {
			els, err := page.Find(marker)
			if err != nil {
				continue
			}
			if len(els) > 0 {
				slog.Info("result listing detected", "marker", marker, "matches", len(els))
				return true
			}
		}

		if time.Now().After(deadline) {
			slog.Warn("login wait timed out, proceeding anyway", "timeout", timeout)
			return false
		}

		select {
		case <-ctx.Done():
			slog.Warn("login wait canceled, proceeding anyway")
			return false
		case <-time.After(loginPollInterval):
		}
	}
}
