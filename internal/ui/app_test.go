package ui

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stockroom/internal/inventory"
	"github.com/five82/stockroom/internal/prefs"
	"github.com/five82/stockroom/internal/state"
	"github.com/five82/stockroom/internal/upc"
)

type stockCall struct {
	upc   string
	shelf string
}

type fakeInventory struct {
	mu        sync.Mutex
	adds      []stockCall
	removes   []stockCall
	removeErr error
	count     *inventory.ItemCount
	shelf     *inventory.Shelf
	items     *inventory.ItemList
	itemsOpts inventory.ShelfItemsOptions
}

func (f *fakeInventory) AddStock(_ context.Context, code, shelf string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, stockCall{code, shelf})
	return nil
}

func (f *fakeInventory) RemoveStock(_ context.Context, code, shelf string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, stockCall{code, shelf})
	return f.removeErr
}

func (f *fakeInventory) CountStock(context.Context, string) (*inventory.ItemCount, error) {
	return f.count, nil
}

func (f *fakeInventory) ListStock(context.Context, inventory.ListOptions) (*inventory.ItemList, error) {
	return &inventory.ItemList{}, nil
}

func (f *fakeInventory) CreateShelf(context.Context, string, string) error { return nil }

func (f *fakeInventory) DeleteShelf(context.Context, string, bool) error { return nil }

func (f *fakeInventory) GetShelf(context.Context, string, inventory.ListOptions) (*inventory.Shelf, error) {
	return f.shelf, nil
}

func (f *fakeInventory) ShelfItems(_ context.Context, _ string, opts inventory.ShelfItemsOptions) (*inventory.ItemList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemsOpts = opts
	return f.items, nil
}

type fakeLookup struct {
	item upc.CatalogItem
	err  error
}

func (f fakeLookup) Get(context.Context, string) (upc.CatalogItem, error) {
	return f.item, f.err
}

func newTestModel(t *testing.T, inv inventory.API, lookup Lookup, shelf string) (Model, string) {
	t.Helper()
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Inventory: inv,
		Lookup:    lookup,
		Store:     &state.Store{},
		PrefsPath: prefsPath,
		Shelf:     shelf,
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, prefsPath
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want ui.Model", next)
	}
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func scan(t *testing.T, m Model, code string) (Model, tea.Cmd) {
	t.Helper()
	if m.inputMode != inputScan {
		m, _ = update(t, m, runes("s"))
	}
	m, _ = update(t, m, runes(code))
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestScanAddsNormalizedCodeToShelf(t *testing.T) {
	inv := &fakeInventory{}
	lookup := fakeLookup{item: upc.CatalogItem{UPC: "012345000065", Name: "Rolled Oats"}}
	m, _ := newTestModel(t, inv, lookup, "pantry")

	m, cmd := scan(t, m, "01234565")
	if cmd == nil {
		t.Fatalf("expected scan command")
	}
	if m.inputMode != inputScan {
		t.Fatalf("inputMode = %v, want scan prompt to stay open", m.inputMode)
	}

	msg, ok := cmd().(scanResultMsg)
	if !ok {
		t.Fatalf("command returned %T, want scanResultMsg", msg)
	}
	if len(inv.adds) != 1 || inv.adds[0] != (stockCall{"012345000065", "pantry"}) {
		t.Fatalf("adds = %v, want [{012345000065 pantry}]", inv.adds)
	}

	m, _ = update(t, m, msg)
	if m.lastCatalog == nil || m.lastCatalog.Name != "Rolled Oats" {
		t.Fatalf("lastCatalog = %v, want Rolled Oats", m.lastCatalog)
	}
	if !strings.Contains(m.notice.text, "Added 012345000065 (Rolled Oats) to pantry") {
		t.Fatalf("notice = %q", m.notice.text)
	}
	if m.notice.level != noticeSuccess {
		t.Fatalf("notice level = %v, want success", m.notice.level)
	}
}

func TestScanLookupFailureStillRecordsStock(t *testing.T) {
	inv := &fakeInventory{}
	lookup := fakeLookup{err: errors.New("dial tcp: refused")}
	m, _ := newTestModel(t, inv, lookup, "pantry")

	_, cmd := scan(t, m, "042100005264")
	msg := cmd().(scanResultMsg)
	if msg.Err != nil {
		t.Fatalf("Err = %v, want nil", msg.Err)
	}
	if msg.Item != nil {
		t.Fatalf("Item = %v, want nil", msg.Item)
	}
	if len(inv.adds) != 1 {
		t.Fatalf("adds = %v, want one call", inv.adds)
	}
}

func TestScanRejectsInvalidCode(t *testing.T) {
	inv := &fakeInventory{}
	m, _ := newTestModel(t, inv, nil, "pantry")

	m, cmd := scan(t, m, "01234566")
	if cmd != nil {
		t.Fatalf("expected no command for bad checksum")
	}
	if m.notice.level != noticeWarn || !strings.Contains(m.notice.text, "not a valid UPC") {
		t.Fatalf("notice = %+v", m.notice)
	}
}

func TestScanRequiresShelf(t *testing.T) {
	m, _ := newTestModel(t, &fakeInventory{}, nil, "")

	m, cmd := scan(t, m, "012345000065")
	if cmd != nil {
		t.Fatalf("expected no command without a shelf")
	}
	if !strings.Contains(m.notice.text, "Choose a shelf") {
		t.Fatalf("notice = %q", m.notice.text)
	}
}

func TestRemoveModeReportsMissingStock(t *testing.T) {
	inv := &fakeInventory{removeErr: &inventory.StatusError{Op: "remove stock", StatusCode: http.StatusNotFound}}
	m, _ := newTestModel(t, inv, nil, "pantry")

	m, _ = update(t, m, runes("m"))
	if m.scanMode != ScanRemove {
		t.Fatalf("scanMode = %v, want REMOVE", m.scanMode)
	}

	m, cmd := scan(t, m, "012345000065")
	msg := cmd().(scanResultMsg)
	if len(inv.removes) != 1 {
		t.Fatalf("removes = %v, want one call", inv.removes)
	}
	m, _ = update(t, m, msg)
	if m.notice.level != noticeWarn || !strings.Contains(m.notice.text, "not stocked on pantry") {
		t.Fatalf("notice = %+v", m.notice)
	}
}

func TestShelfPromptPersistsShelf(t *testing.T) {
	m, prefsPath := newTestModel(t, &fakeInventory{}, nil, "")

	m, _ = update(t, m, runes("S"))
	if m.inputMode != inputShelf {
		t.Fatalf("inputMode = %v, want shelf prompt", m.inputMode)
	}
	m, _ = update(t, m, runes("garage"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.shelf != "garage" {
		t.Fatalf("shelf = %q, want garage", m.shelf)
	}
	if m.inputMode != inputNone {
		t.Fatalf("inputMode = %v, want closed", m.inputMode)
	}
	p, err := prefs.Load(prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.LastShelf != "garage" {
		t.Fatalf("LastShelf = %q, want garage", p.LastShelf)
	}
}

func TestEscapeClosesPrompt(t *testing.T) {
	m, _ := newTestModel(t, &fakeInventory{}, nil, "pantry")
	m, _ = update(t, m, runes("s"))
	m, _ = update(t, m, runes("0123"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inputMode != inputNone {
		t.Fatalf("inputMode = %v, want closed", m.inputMode)
	}
	if m.input.Value() != "" {
		t.Fatalf("input = %q, want cleared", m.input.Value())
	}
}

func TestCountAndRemoveSelectedItem(t *testing.T) {
	inv := &fakeInventory{count: &inventory.ItemCount{Count: 3, Shelves: map[string]int{"pantry": 2, "garage": 1}}}
	m, _ := newTestModel(t, inv, nil, "pantry")

	m, _ = update(t, m, snapshotMsg(state.Snapshot{
		Items: []inventory.Item{
			{UPC: "012345000065", Shelf: "pantry", Hash: "a1"},
			{UPC: "042100005264", Shelf: "garage", Hash: "b2"},
		},
		Total:    2,
		HasStock: true,
	}))
	m, _ = update(t, m, runes("j"))

	item, ok := m.selectedItem()
	if !ok || item.UPC != "042100005264" {
		t.Fatalf("selectedItem = %v, %v; want 042100005264", item, ok)
	}

	m, cmd := update(t, m, runes("c"))
	if cmd == nil {
		t.Fatalf("expected count command")
	}
	m, _ = update(t, m, cmd())
	if got := m.counts["042100005264"].Count; got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
	if !strings.Contains(m.notice.text, "3 in stock (garage: 1, pantry: 2)") {
		t.Fatalf("notice = %q", m.notice.text)
	}

	_, cmd = update(t, m, runes("x"))
	if cmd == nil {
		t.Fatalf("expected remove command")
	}
	cmd()
	if len(inv.removes) != 1 || inv.removes[0] != (stockCall{"042100005264", "garage"}) {
		t.Fatalf("removes = %v, want [{042100005264 garage}]", inv.removes)
	}
}

func TestShelfViewLoadsShelfAndItems(t *testing.T) {
	inv := &fakeInventory{
		shelf: &inventory.Shelf{
			Name:       "pantry",
			Count:      2,
			Subshelves: []inventory.SubShelf{{Name: "pantry/top", Count: 1}},
		},
		items: &inventory.ItemList{
			Count: 2,
			Items: []inventory.Item{
				{UPC: "012345000065", Shelf: "pantry", Hash: "a1"},
				{UPC: "042100005264", Shelf: "pantry/top", Hash: "b2"},
			},
		},
	}
	m, _ := newTestModel(t, inv, nil, "pantry")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.currentView != ViewShelf {
		t.Fatalf("currentView = %v, want shelf", m.currentView)
	}
	if !m.shelfState.loading {
		t.Fatalf("expected shelf to be loading")
	}
	m, _ = update(t, m, cmd())

	if !inv.itemsOpts.IncludeSubshelves {
		t.Fatalf("ShelfItems called without IncludeSubshelves")
	}
	out := m.View()
	for _, want := range []string{"pantry/top", "042100005264", "2 units"} {
		if !strings.Contains(out, want) {
			t.Fatalf("shelf view missing %q:\n%s", want, out)
		}
	}
}

func TestHandleShelfDropsStaleResults(t *testing.T) {
	m, _ := newTestModel(t, &fakeInventory{}, nil, "pantry")
	m, _ = update(t, m, shelfMsg{Name: "garage", Shelf: &inventory.Shelf{Name: "garage"}})
	if m.shelfState.shelf != nil {
		t.Fatalf("stale shelf result was applied")
	}
}

func TestHeaderShowsShelfAndMode(t *testing.T) {
	m, _ := newTestModel(t, &fakeInventory{}, nil, "pantry")
	out := m.View()
	for _, want := range []string{"stockroom", "pantry", "ADD"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}
