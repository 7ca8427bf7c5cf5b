package crawler

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ysmood/gson"
	"golang.org/x/net/html"

	"github.com/harvestly/dircomb/config"
	"github.com/harvestly/dircomb/testutil"
	"github.com/harvestly/dircomb/writer"
)

const (
	membersURL = "https://directory.example.com/members"
	page2URL   = "https://directory.example.com/members?page=2"
	janeURL    = "https://directory.example.com/member/1"
	bobURL     = "https://directory.example.com/member/2"
)

const membersPage1 = `<html><body><table>
<tr><th>Name</th><th>Address</th><th>City</th><th>Phone</th></tr>
<tr>
  <td><a href="/member/1">Jane Q. Doe</a></td>
  <td>123 Main St</td>
  <td>Springfield, IL 62704</td>
  <td>(555) 123-4567</td>
</tr>
</table>
<a rel="next" href="?page=2">Next</a>
</body></html>`

const membersPage2 = `<html><body><table>
<tr><th>Name</th><th>Address</th><th>City</th><th>Phone</th></tr>
<tr>
  <td><a href="/member/2">Bob Jones</a></td>
  <td>9 Oak Ave</td>
  <td>Portland, OR 97201</td>
  <td>555-987-6543</td>
</tr>
</table>
</body></html>`

func directoryPage(t *testing.T) *testutil.FakePage {
	t.Helper()
	page, err := testutil.NewFakePage(map[string]string{
		membersURL: membersPage1,
		page2URL:   membersPage2,
		janeURL:    `<html><body><a href="mailto:jane.doe@example.com">Email Jane</a></body></html>`,
		bobURL:     `<html><body><p>Reach Bob at bob.jones@example.com</p></body></html>`,
	}, membersURL)
	if err != nil {
		t.Fatal(err)
	}
	// Clicking the pagination control loads the second results page.
	page.OnClick = func(*html.Node) error {
		return page.Navigate(page2URL)
	}
	return page
}

func crawlConfig(t *testing.T, maxPages int) (config.CrawlConfig, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "contacts.csv")
	return config.CrawlConfig{
		BaseURL:      membersURL,
		OutputFile:   out,
		MaxPages:     maxPages,
		RowDelay:     time.Millisecond,
		PageDelay:    0,
		NavTimeout:   time.Second,
		LoginTimeout: 0,
		FlushEvery:   10,
	}, out
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestRun_TwoPages(t *testing.T) {
	page := directoryPage(t)
	cfg, out := crawlConfig(t, 5)
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, out)
	if len(rows) != 3 {
		t.Fatalf("got %d CSV rows, want header plus 2 records", len(rows))
	}

	jane := rows[1]
	want := []string{"Jane", "Q", "Doe", "123 Main St", "", "Springfield", "IL", "62704", "(555) 123-4567", "jane.doe@example.com"}
	for i, w := range want {
		if jane[i] != w {
			t.Errorf("jane[%d] = %q, want %q", i, jane[i], w)
		}
	}

	bob := rows[2]
	if bob[0] != "Bob" || bob[2] != "Jones" {
		t.Errorf("bob name = %q %q", bob[0], bob[2])
	}
	if bob[9] != "bob.jones@example.com" {
		t.Errorf("bob email = %q", bob[9])
	}
}

func TestRun_PageCeiling(t *testing.T) {
	page := directoryPage(t)
	cfg, out := crawlConfig(t, 1)
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	clicked := false
	page.OnClick = func(*html.Node) error {
		clicked = true
		return page.Navigate(page2URL)
	}

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if clicked {
		t.Error("pagination must stop at the page ceiling")
	}
	if rows := readCSV(t, out); len(rows) != 2 {
		t.Errorf("got %d CSV rows, want header plus 1 record", len(rows))
	}
}

func TestRun_ZeroRowsCompletes(t *testing.T) {
	page, err := testutil.NewFakePage(map[string]string{
		membersURL: `<html><body><div>No members found.</div></body></html>`,
	}, membersURL)
	if err != nil {
		t.Fatal(err)
	}
	cfg, out := crawlConfig(t, 5)
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if rows := readCSV(t, out); len(rows) != 1 {
		t.Errorf("got %d CSV rows, want header only", len(rows))
	}
}

func TestRun_NoBaseURL(t *testing.T) {
	page := directoryPage(t)
	cfg, out := crawlConfig(t, 5)
	cfg.BaseURL = ""
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(context.Background()); err == nil {
		t.Fatal("expected an error with no base URL anywhere")
	}
}

func TestRun_ScrollsBeforeExtraction(t *testing.T) {
	page := directoryPage(t)
	cfg, out := crawlConfig(t, 5)
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	var evals []string
	page.OnEval = func(js string) (gson.JSON, error) {
		evals = append(evals, js)
		return gson.New(2400), nil
	}

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	// One lazy-load nudge per results page.
	if len(evals) != 2 {
		t.Fatalf("got %d scroll evaluations, want one per page", len(evals))
	}
	if !strings.Contains(evals[0], "scrollTo") {
		t.Errorf("evaluation %q does not scroll", evals[0])
	}
}

func TestRun_StaticPageCannotScroll(t *testing.T) {
	// No OnEval: the page reports it cannot run JS. Extraction must
	// proceed with whatever is already in the DOM.
	page := directoryPage(t)
	cfg, out := crawlConfig(t, 5)
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if rows := readCSV(t, out); len(rows) != 3 {
		t.Errorf("got %d CSV rows, want header plus 2 records", len(rows))
	}
}

func TestRun_CancelFlushesPartialResults(t *testing.T) {
	page := directoryPage(t)
	cfg, out := crawlConfig(t, 5)
	sel := &config.SelectorConfig{Selectors: config.DefaultSelectors}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(page, sel, cfg, writer.New(out, cfg.FlushEvery))
	if err := c.Run(ctx); err == nil {
		t.Fatal("expected cancellation to surface as an error")
	}

	// The first record was appended before the cancellation check; the
	// abort path must still write it out.
	rows := readCSV(t, out)
	if len(rows) != 2 {
		t.Fatalf("got %d CSV rows, want header plus the flushed partial record", len(rows))
	}
	if rows[1][0] != "Jane" {
		t.Errorf("partial record name = %q, want Jane", rows[1][0])
	}
}
