package browser

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/harvestly/dircomb/models"
)

// Page is the automation capability the crawler and the setup tool share.
// The production implementation drives a live Rod page; tests substitute a
// static-HTML fake.
type Page interface {
	// Navigate loads the URL and waits for the DOM to settle.
	Navigate(url string) error

	// URL returns the page's current address, or "" when unavailable.
	URL() string

	// HTML returns the full rendered document HTML.
	HTML() (string, error)

	// Text returns the visible body text.
	Text() (string, error)

	// Find returns every element matching the CSS selector. An empty
	// result is not an error.
	Find(selector string) ([]Element, error)

	// Eval runs a JS function in the page and returns its result.
	Eval(js string) (gson.JSON, error)

	// WaitStable blocks until the DOM stops mutating or the timeout passes.
	WaitStable(timeout time.Duration) error
}

// Element is a single matched page element.
type Element interface {
	Text() (string, error)
	Attr(name string) (value string, ok bool) // ok is false when absent
	Find(selector string) ([]Element, error)
	Click() error
	Highlight() error // visual confirmation aid for the setup tool
}

// rodPage adapts a *rod.Page to the Page interface. All navigation waits
// are bounded by navTimeout.
type rodPage struct {
	page       *rod.Page
	navTimeout time.Duration
}

func (p *rodPage) Navigate(url string) error {
	rp := p.page.Timeout(p.navTimeout)
	if err := rp.Navigate(url); err != nil {
		return categorizeError(err, "navigation failed")
	}
	if err := rp.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		// A restless DOM is not fatal; proceed with whatever loaded.
		return nil
	}
	return nil
}

func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *rodPage) HTML() (string, error) {
	return p.page.HTML()
}

func (p *rodPage) Text() (string, error) {
	res, err := p.page.Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *rodPage) Find(selector string) ([]Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

func (p *rodPage) Eval(js string) (gson.JSON, error) {
	res, err := p.page.Eval(js)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

func (p *rodPage) WaitStable(timeout time.Duration) error {
	return p.page.Timeout(timeout).WaitDOMStable(300*time.Millisecond, 0.1)
}

// rodElement adapts a *rod.Element to the Element interface.
type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attr(name string) (string, bool) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (e *rodElement) Find(selector string) ([]Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Highlight() error {
	_, err := e.el.Eval(`() => {
		this.style.outline = "3px solid #e8491d";
		this.style.outlineOffset = "1px";
	}`)
	return err
}

// categorizeError wraps raw errors into typed CrawlErrors so callers can
// distinguish timeouts from hard navigation failures.
func categorizeError(err error, msg string) *models.CrawlError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCrawlError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCrawlError(models.ErrCodeTimeout, "operation canceled", err)
	default:
		return models.NewCrawlError(models.ErrCodeNavigation, msg, err)
	}
}
