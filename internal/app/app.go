package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stockroom/internal/config"
	"github.com/five82/stockroom/internal/inventory"
	"github.com/five82/stockroom/internal/prefs"
	"github.com/five82/stockroom/internal/state"
	"github.com/five82/stockroom/internal/ui"
	"github.com/five82/stockroom/internal/upc"
)

// Options configure the Stockroom application.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/stockroom/prefs.toml
	PollEvery  int       // seconds; zero uses default
	Shelf      string    // overrides the remembered and configured shelf
	Out        io.Writer // command output; nil uses stdout
}

// env holds what every command needs once config is resolved.
type env struct {
	cfg    config.Config
	inv    *inventory.Client
	lookup *upc.LookupClient
	shelf  string
	out    io.Writer
}

func setup(opts Options) (env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return env{}, fmt.Errorf("load config: %w", err)
	}

	// The poller and UI commands share the client, so the transport is
	// supplied up front rather than created lazily.
	inv, err := inventory.NewClient(cfg.InventoryURL,
		inventory.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	if err != nil {
		return env{}, fmt.Errorf("init inventory client: %w", err)
	}
	lookup, err := upc.NewLookupClient(cfg.LookupURL, &http.Client{Timeout: cfg.RequestTimeout})
	if err != nil {
		return env{}, fmt.Errorf("init lookup client: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return env{
		cfg:    cfg,
		inv:    inv,
		lookup: lookup,
		shelf:  firstNonEmpty(opts.Shelf, cfg.DefaultShelf),
		out:    out,
	}, nil
}

// Run boots the scanning station until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(e.cfg.UILogPath()), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := tea.LogToFile(e.cfg.UILogPath(), "stockroom")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("load prefs: %v", err)
	}

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, e.inv, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Inventory: e.inv,
		Lookup:    e.lookup,
		Store:     store,
		PollTick:  time.Second,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Shelf:     firstNonEmpty(opts.Shelf, userPrefs.LastShelf, e.cfg.DefaultShelf),
	}
	return ui.Run(uiOpts)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
