// Package testutil provides a static-HTML implementation of the
// browser.Page automation interface, so extraction, pagination and detail
// visiting can be tested without a live browser.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/ysmood/gson"
	"golang.org/x/net/html"

	"github.com/harvestly/dircomb/browser"
)

// FakePage serves static HTML documents keyed by URL through the
// browser.Page interface.
type FakePage struct {
	// Docs maps URL to document HTML. Navigate fails for unknown URLs.
	Docs map[string]string

	// OnClick, when set, is invoked with the clicked node. Pagination
	// tests use it to swap the current document.
	OnClick func(n *html.Node) error

	// OnEval, when set, answers Eval calls. Without it the fake reports
	// that it cannot run JS, the way a static document can't.
	OnEval func(js string) (gson.JSON, error)

	// NavigateErr, when set, fails every Navigate with this error.
	NavigateErr error

	current string
	root    *html.Node
}

// NewFakePage creates a fake page already navigated to startURL.
func NewFakePage(docs map[string]string, startURL string) (*FakePage, error) {
	p := &FakePage{Docs: docs}
	if err := p.Navigate(startURL); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FakePage) Navigate(url string) error {
	if p.NavigateErr != nil {
		return p.NavigateErr
	}
	doc, ok := p.Docs[url]
	if !ok {
		return fmt.Errorf("no document for %s", url)
	}
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return err
	}
	p.current = url
	p.root = root
	return nil
}

// SetHTML replaces the current document without a navigation, the way a
// clicked control would.
func (p *FakePage) SetHTML(doc string) error {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return err
	}
	p.root = root
	return nil
}

func (p *FakePage) URL() string { return p.current }

func (p *FakePage) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, p.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *FakePage) Text() (string, error) {
	if body := findTag(p.root, "body"); body != nil {
		return visibleText(body), nil
	}
	return visibleText(p.root), nil
}

func (p *FakePage) Find(selector string) ([]browser.Element, error) {
	return findIn(p, p.root, selector)
}

func (p *FakePage) Eval(js string) (gson.JSON, error) {
	if p.OnEval != nil {
		return p.OnEval(js)
	}
	return gson.New(nil), errors.New("fake page does not evaluate JS")
}

func (p *FakePage) WaitStable(time.Duration) error { return nil }

// fakeElement wraps a single parsed node.
type fakeElement struct {
	node *html.Node
	page *FakePage
}

func (e *fakeElement) Text() (string, error) {
	return visibleText(e.node), nil
}

func (e *fakeElement) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *fakeElement) Find(selector string) ([]browser.Element, error) {
	return findIn(e.page, e.node, selector)
}

func (e *fakeElement) Click() error {
	if e.page.OnClick == nil {
		return errors.New("no click handler installed")
	}
	return e.page.OnClick(e.node)
}

func (e *fakeElement) Highlight() error { return nil }

func findIn(p *FakePage, scope *html.Node, selector string) ([]browser.Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	var out []browser.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n != scope && n.Type == html.ElementNode && group.Match(n) {
			out = append(out, &fakeElement{node: n, page: p})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(scope)
	return out, nil
}

func findTag(root *html.Node, tag string) *html.Node {
	if root.Type == html.ElementNode && root.Data == tag {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// visibleText approximates innerText: <br> and block-level boundaries
// become newlines so multi-line address cells keep their line structure.
func visibleText(n *html.Node) string {
	var b strings.Builder
	walkText(n, &b)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "tr": true, "td": true,
	"th": true, "li": true, "ul": true, "ol": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "section": true,
}

func walkText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
		if blockTags[n.Data] {
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, b)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteString("\n")
	}
}
