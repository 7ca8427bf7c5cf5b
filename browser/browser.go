// Package browser owns the Rod browser lifecycle and the page automation
// interface the crawler and setup tool are built on.
package browser

import (
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/harvestly/dircomb/config"
	"github.com/harvestly/dircomb/models"
)

// Browser manages a single browser process with a single page. The whole
// crawl rides one authenticated tab, so there is no page pool here.
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
}

// New launches the browser and opens its single page. The browser runs
// visible by default: a human has to complete the directory login in it.
func New(cfg config.BrowserConfig, navTimeout time.Duration) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL, "headless", cfg.Headless)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.MustClose()
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}

	if cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr)
		}
	}

	if cfg.UserAgent != "" {
		if uaErr := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: cfg.UserAgent,
		}); uaErr != nil {
			slog.Warn("user agent override failed", "error", uaErr)
		}
	}

	return &Browser{browser: b, page: page}, nil
}

// Page returns the browser's single automation page, bounded by navTimeout
// for navigation waits.
func (b *Browser) Page(navTimeout time.Duration) Page {
	return &rodPage{page: b.page, navTimeout: navTimeout}
}

// Close kills the browser process. Call on shutdown to prevent zombie
// Chrome processes.
func (b *Browser) Close() {
	slog.Info("closing browser")
	b.browser.MustClose()
}
