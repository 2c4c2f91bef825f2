// Package ui provides a Bubble Tea-based scanning station for Stockroom.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stockroom/internal/inventory"
	"github.com/five82/stockroom/internal/prefs"
	"github.com/five82/stockroom/internal/state"
	"github.com/five82/stockroom/internal/upc"
)

// View represents the current active view.
type View int

const (
	ViewStock View = iota
	ViewShelf
)

// ScanMode selects what a scan does to the current shelf.
type ScanMode int

const (
	ScanAdd ScanMode = iota
	ScanRemove
)

func (s ScanMode) String() string {
	if s == ScanRemove {
		return "REMOVE"
	}
	return "ADD"
}

type inputMode int

const (
	inputNone inputMode = iota
	inputScan
	inputShelf
)

// Lookup resolves catalog records for scanned codes.
type Lookup interface {
	Get(ctx context.Context, code string) (upc.CatalogItem, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Inventory inventory.API
	Lookup    Lookup
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Shelf     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	inv       inventory.API
	lookup    Lookup
	store     *state.Store
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys        keyMap
	help        help.Model
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	stockTable  table.Model
	counts      map[string]inventory.ItemCount
	shelfState  shelfState

	// Scan state
	input       textinput.Model
	inputMode   inputMode
	shelf       string
	scanMode    ScanMode
	lastCatalog *upc.CatalogItem
	notice      notice
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.CharLimit = 32
	input.Prompt = "> "

	return Model{
		ctx:        ctx,
		inv:        opts.Inventory,
		lookup:     opts.Lookup,
		store:      opts.Store,
		prefsPath:  prefsPath,
		pollTick:   pollTick,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		theme:      GetTheme(opts.ThemeName),
		stockTable: newStockTable(),
		counts:     make(map[string]inventory.ItemCount),
		input:      input,
		shelf:      strings.TrimSpace(opts.Shelf),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeStockTable()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.updateStockTable()
		return m, nil

	case scanResultMsg:
		return m.handleScanResult(msg)

	case countMsg:
		m.handleCount(msg)
		return m, nil

	case shelfMsg:
		m.handleShelf(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewStock {
			m.currentView = ViewShelf
			cmd := m.loadShelf()
			return m, cmd
		}
		m.currentView = ViewStock
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmds := []tea.Cmd{m.refreshStock()}
		if m.currentView == ViewShelf {
			cmds = append(cmds, m.loadShelf())
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Scan):
		cmd := m.openInput(inputScan)
		return m, cmd

	case key.Matches(msg, m.keys.Shelf):
		cmd := m.openInput(inputShelf)
		return m, cmd

	case key.Matches(msg, m.keys.ToggleMode):
		if m.scanMode == ScanAdd {
			m.scanMode = ScanRemove
		} else {
			m.scanMode = ScanAdd
		}
		return m, nil

	case key.Matches(msg, m.keys.Count):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, countCmd(m.ctx, m.inv, item.UPC)

	case key.Matches(msg, m.keys.Remove):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, scanCmd(m.ctx, m.inv, nil, item.UPC, item.Shelf, ScanRemove)
	}

	if m.currentView == ViewStock {
		return m.handleStockKey(msg)
	}
	return m, nil
}

// handleStockKey moves the stock table cursor.
func (m Model) handleStockKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.stockTable.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.stockTable.MoveDown(1)
	case key.Matches(msg, m.keys.Top):
		m.stockTable.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.stockTable.GotoBottom()
	}
	return m, nil
}

// savePrefs persists theme and shelf; failures are not fatal to the UI.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, LastShelf: m.shelf})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.currentView {
	case ViewShelf:
		b.WriteString(m.renderShelf())
	default:
		b.WriteString(m.renderStock())
	}
	b.WriteString("\n")

	if line := m.renderNotice(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.inputMode != inputNone {
		b.WriteString(m.renderInput())
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Styles().Footer.Render(m.help.View(m.keys)))

	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshStock lists stock immediately instead of waiting for the poller.
func (m Model) refreshStock() tea.Cmd {
	if m.inv == nil || m.store == nil {
		return nil
	}
	ctx, inv, store := m.ctx, m.inv, m.store
	return func() tea.Msg {
		list, err := inv.ListStock(ctx, inventory.ListOptions{})
		store.Update(list, err)
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
