package ui

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stockroom/internal/inventory"
)

type shelfState struct {
	name    string
	shelf   *inventory.Shelf
	items   *inventory.ItemList
	err     error
	loading bool
}

type shelfMsg struct {
	Name  string
	Shelf *inventory.Shelf
	Items *inventory.ItemList
	Err   error
}

type countMsg struct {
	UPC   string
	Count *inventory.ItemCount
	Err   error
}

// loadShelf fetches the active shelf and the items on it and its children.
func (m *Model) loadShelf() tea.Cmd {
	if m.inv == nil || m.shelf == "" {
		return nil
	}
	m.shelfState.name = m.shelf
	m.shelfState.loading = true

	ctx, inv, name := m.ctx, m.inv, m.shelf
	return func() tea.Msg {
		shelf, err := inv.GetShelf(ctx, name, inventory.ListOptions{})
		if err != nil {
			return shelfMsg{Name: name, Err: err}
		}
		items, err := inv.ShelfItems(ctx, name, inventory.ShelfItemsOptions{IncludeSubshelves: true})
		return shelfMsg{Name: name, Shelf: shelf, Items: items, Err: err}
	}
}

func (m *Model) handleShelf(msg shelfMsg) {
	// Drop results for a shelf the operator has already left.
	if msg.Name != m.shelf {
		return
	}
	m.shelfState = shelfState{
		name:  msg.Name,
		shelf: msg.Shelf,
		items: msg.Items,
		err:   msg.Err,
	}
}

func countCmd(ctx context.Context, inv inventory.API, code string) tea.Cmd {
	if inv == nil {
		return nil
	}
	return func() tea.Msg {
		count, err := inv.CountStock(ctx, code)
		return countMsg{UPC: code, Count: count, Err: err}
	}
}

func (m *Model) handleCount(msg countMsg) {
	if msg.Err != nil {
		m.setNotice(noticeError, "count %s failed: %v", msg.UPC, msg.Err)
		return
	}
	if msg.Count == nil {
		return
	}
	m.counts[msg.UPC] = *msg.Count
	m.setNotice(noticeInfo, "%s: %d in stock%s", msg.UPC, msg.Count.Count, formatShelfCounts(msg.Count.Shelves))
}

func (m Model) renderShelf() string {
	styles := m.theme.Styles()
	if m.shelf == "" {
		return styles.MutedText.Render("No shelf selected. Press S to choose one.")
	}
	st := m.shelfState
	if st.err != nil {
		if inventory.IsStatus(st.err, http.StatusNotFound) {
			return styles.WarningText.Render(fmt.Sprintf("Shelf %s does not exist yet.", m.shelf))
		}
		return styles.DangerText.Render("Shelf unavailable: " + st.err.Error())
	}
	if st.shelf == nil {
		if !st.loading {
			return styles.MutedText.Render("Press R to load shelf " + m.shelf + ".")
		}
		return styles.MutedText.Render("Loading shelf " + m.shelf + "...")
	}

	var b strings.Builder
	title := fmt.Sprintf("%s  %d units", st.shelf.Name, st.shelf.Count)
	if len(st.shelf.Subshelves) > 0 {
		title += fmt.Sprintf("  ·  %d in %d subshelves", st.shelf.SubshelfTotal(), len(st.shelf.Subshelves))
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n")

	for _, sub := range st.shelf.Subshelves {
		b.WriteString(styles.FaintText.Render("  ├ "))
		b.WriteString(styles.Text.Render(fmt.Sprintf("%-24s %d", truncate(sub.Name, 24), sub.Count)))
		b.WriteString("\n")
	}

	if st.items == nil || len(st.items.Items) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing stocked here."))
		return b.String()
	}

	// Leave room for header, notice, input and footer.
	budget := maxInt(m.height-chromeHeight-len(st.shelf.Subshelves)-2, 3)
	order, groups := st.items.ByShelf()
	lines := 0
	for _, name := range order {
		if lines >= budget {
			break
		}
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(name))
		lines++
		for _, item := range groups[name] {
			if lines >= budget {
				break
			}
			b.WriteString("\n  ")
			b.WriteString(styles.Text.Render(item.UPC))
			b.WriteString("  ")
			b.WriteString(styles.FaintText.Render(item.Hash))
			lines++
		}
	}
	if st.items.HasMore(0) {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("showing %d of %d", len(st.items.Items), st.items.Count)))
	}
	return b.String()
}
