// Package crawler sequences the crawl: session gating, per-page
// extraction, per-row detail visits, and pagination, with page and count
// ceilings and checkpointed persistence.
package crawler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/harvestly/dircomb/browser"
	"github.com/harvestly/dircomb/config"
	"github.com/harvestly/dircomb/extract"
	"github.com/harvestly/dircomb/models"
	"github.com/harvestly/dircomb/writer"
)

// Crawler drives one sequential crawl over a single authenticated browser
// page. Nothing here is concurrent: parallel fetching would multiply
// login/session risk on the target.
type Crawler struct {
	page    browser.Page
	sel     *config.SelectorConfig
	cfg     config.CrawlConfig
	writer  *writer.Writer
	limiter *rate.Limiter
}

// New assembles a crawler. The rate limiter enforces the inter-row
// politeness delay.
func New(page browser.Page, sel *config.SelectorConfig, cfg config.CrawlConfig, w *writer.Writer) *Crawler {
	return &Crawler{
		page:    page,
		sel:     sel,
		cfg:     cfg,
		writer:  w,
		limiter: rate.NewLimiter(rate.Every(cfg.RowDelay), 1),
	}
}

// Run executes the crawl to completion. On any fatal error it performs one
// unconditional flush of whatever was accumulated before returning; partial
// results are never discarded. There are no automatic retries.
func (c *Crawler) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			slog.Error("crawl aborted, flushing partial results",
				"records", c.writer.Count(), "error", err)
			if ferr := c.writer.Flush(); ferr != nil {
				slog.Error("emergency flush failed", "error", ferr)
			}
		}
	}()

	start := time.Now()

	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = c.sel.BaseURL
	}
	if baseURL == "" {
		return models.NewCrawlError(models.ErrCodeInvalidConfig, "no base URL configured", nil)
	}

	if err := c.page.Navigate(baseURL); err != nil {
		return err
	}

	browser.WaitForLogin(ctx, c.page, c.sel.Selectors.ContactRow, c.cfg.LoginTimeout)

	pageNum := 1
	emails := 0
	for {
		scrollToBottom(c.page)

		extractions, err := extract.FromPage(c.page, c.sel.Selectors)
		if err != nil {
			return err
		}
		slog.Info("results page extracted", "page", pageNum, "rows", len(extractions))

		resultsURL := c.page.URL()
		for _, ex := range extractions {
			rec := ex.Record

			if ex.Row.DetailHref != "" {
				email, derr := VisitDetail(c.page, ex.Row.DetailHref, c.sel.Selectors.Email, resultsURL)
				if derr != nil {
					return derr
				}
				rec.Email = email
				if email != "" {
					emails++
				}
			}

			if err := c.writer.Append(rec); err != nil {
				return err
			}

			if err := c.limiter.Wait(ctx); err != nil {
				return models.NewCrawlError(models.ErrCodeTimeout, "crawl canceled", err)
			}
		}

		if pageNum >= c.cfg.MaxPages {
			slog.Info("page ceiling reached", "maxPages", c.cfg.MaxPages)
			break
		}
		if !NextPage(c.page, c.sel.Selectors.NextPage, c.cfg.PageDelay, c.cfg.NavTimeout) {
			break
		}
		pageNum++
	}

	if err := c.writer.Flush(); err != nil {
		return err
	}

	slog.Info("crawl completed",
		"pages", pageNum,
		"records", c.writer.Count(),
		"emails", emails,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// scrollToBottom nudges lazily rendered listings into the DOM before
// extraction. Pages that cannot evaluate JS just extract what is already
// there.
func scrollToBottom(page browser.Page) {
	res, err := page.Eval(`() => {
		window.scrollTo(0, document.body.scrollHeight);
		return document.body.scrollHeight;
	}`)
	if err != nil {
		slog.Debug("scroll evaluation unavailable", "error", err)
		return
	}
	slog.Debug("scrolled results page", "height", res.Int())
}
