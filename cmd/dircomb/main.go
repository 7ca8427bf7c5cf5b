package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harvestly/dircomb/browser"
	"github.com/harvestly/dircomb/config"
	"github.com/harvestly/dircomb/crawler"
	"github.com/harvestly/dircomb/models"
	"github.com/harvestly/dircomb/setup"
	"github.com/harvestly/dircomb/writer"
)

var (
	flagURL       string
	flagHeadless  bool
	flagOutput    string
	flagSelectors string
	flagMaxPages  int
)

func main() {
	root := &cobra.Command{
		Use:   "dircomb",
		Short: "Harvest contact records from a session-gated web directory",
		Long: `dircomb drives a real browser through a paginated member directory,
extracts one contact record per listing row, visits each detail page for
an email address, and writes results to a checkpointed CSV file.

Login is never automated: the browser opens visibly and waits for you to
sign in before the crawl starts.`,
		SilenceUsage: true,
		// Errors are already logged where they happen; cobra printing
		// them again would double every failure message.
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagURL, "url", "", "directory base URL (overrides DIRCOMB_BASE_URL)")
	root.PersistentFlags().BoolVar(&flagHeadless, "headless", false, "run the browser headless (no interactive login possible)")
	root.PersistentFlags().StringVar(&flagSelectors, "selectors", "", "selector configuration file (overrides DIRCOMB_SELECTORS)")

	crawlCmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run the directory crawl",
		RunE:  runCrawl,
	}
	crawlCmd.Flags().StringVar(&flagOutput, "output", "", "output CSV path (overrides DIRCOMB_OUTPUT)")
	crawlCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "result-page ceiling (overrides DIRCOMB_MAX_PAGES)")

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively discover and save the selector configuration",
		RunE:  runSetup,
	}

	root.AddCommand(crawlCmd, setupCmd)

	if err := root.Execute(); err != nil {
		slog.Error("dircomb failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: env first, then any
// explicitly set flags on top.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()

	if cmd.Flags().Changed("url") {
		cfg.Crawl.BaseURL = flagURL
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = flagHeadless
	}
	if cmd.Flags().Changed("selectors") {
		cfg.Crawl.SelectorsFile = flagSelectors
	}
	if cmd.Flags().Changed("output") {
		cfg.Crawl.OutputFile = flagOutput
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.Crawl.MaxPages = flagMaxPages
	}
	return cfg
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	// ── 1. Configuration and logging ────────────────────────────────
	cfg := loadConfig(cmd)
	initLogger(cfg.Log)
	slog.Info("dircomb starting",
		"output", cfg.Crawl.OutputFile,
		"selectors", cfg.Crawl.SelectorsFile,
		"maxPages", cfg.Crawl.MaxPages,
		"headless", cfg.Browser.Headless,
	)

	sel := config.LoadSelectors(cfg.Crawl.SelectorsFile)

	// ── 2. Launch the browser ───────────────────────────────────────
	b, err := browser.New(cfg.Browser, cfg.Crawl.NavTimeout)
	if err != nil {
		return err
	}
	defer b.Close()

	// ── 3. Crawl; Ctrl-C aborts and the partial flush keeps what we
	// already collected ─────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := writer.New(cfg.Crawl.OutputFile, cfg.Crawl.FlushEvery)
	c := crawler.New(b.Page(cfg.Crawl.NavTimeout), sel, cfg.Crawl, w)
	return c.Run(ctx)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd)
	initLogger(cfg.Log)

	baseURL := cfg.Crawl.BaseURL
	if baseURL == "" {
		return models.NewCrawlError(models.ErrCodeInvalidConfig,
			"setup needs a directory URL (--url or DIRCOMB_BASE_URL)", nil)
	}

	b, err := browser.New(cfg.Browser, cfg.Crawl.NavTimeout)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	page := b.Page(cfg.Crawl.NavTimeout)
	if err := page.Navigate(baseURL); err != nil {
		return err
	}
	browser.WaitForLogin(ctx, page, config.DefaultSelectors.ContactRow, cfg.Crawl.LoginTimeout)

	return setup.New(page, os.Stdin, os.Stdout).Run(baseURL, cfg.Crawl.SelectorsFile)
}

func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
