package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stockroom/internal/inventory"
)

// chromeHeight is the rows taken by header, notice, input and footer.
const chromeHeight = 7

func newStockTable() table.Model {
	return table.New(
		table.WithColumns(stockColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}

// stockColumns sizes the columns for the terminal width. The hash column is
// dropped on narrow terminals.
func stockColumns(width int) []table.Column {
	if width < LayoutCompactWidth {
		shelf := maxInt(width-16-6, 10)
		return []table.Column{
			{Title: "UPC", Width: 14},
			{Title: "Shelf", Width: shelf},
		}
	}
	shelf := maxInt((width-16-8)/2, 12)
	return []table.Column{
		{Title: "UPC", Width: 14},
		{Title: "Shelf", Width: shelf},
		{Title: "Hash", Width: maxInt(width-16-shelf-8, 8)},
	}
}

func stockRows(items []inventory.Item, wide bool) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		if wide {
			rows = append(rows, table.Row{item.UPC, item.Shelf, item.Hash})
			continue
		}
		rows = append(rows, table.Row{item.UPC, item.Shelf})
	}
	return rows
}

func (m *Model) resizeStockTable() {
	// Rows must match the column count before columns shrink.
	m.stockTable.SetRows(nil)
	m.stockTable.SetColumns(stockColumns(m.width))
	m.stockTable.SetWidth(m.width)
	m.stockTable.SetHeight(maxInt(m.height-chromeHeight, 3))
	m.updateStockTable()
}

func (m *Model) updateStockTable() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = m.theme.Styles().Selected
	m.stockTable.SetStyles(styles)

	m.stockTable.SetRows(stockRows(m.snapshot.Items, m.width >= LayoutCompactWidth))
	if cursor := m.stockTable.Cursor(); cursor >= len(m.snapshot.Items) && len(m.snapshot.Items) > 0 {
		m.stockTable.SetCursor(len(m.snapshot.Items) - 1)
	}
}

// selectedItem returns the stock row under the cursor.
func (m Model) selectedItem() (inventory.Item, bool) {
	if m.currentView != ViewStock {
		return inventory.Item{}, false
	}
	cursor := m.stockTable.Cursor()
	if cursor < 0 || cursor >= len(m.snapshot.Items) {
		return inventory.Item{}, false
	}
	return m.snapshot.Items[cursor], true
}

func (m Model) renderStock() string {
	styles := m.theme.Styles()
	if !m.snapshot.HasStock {
		if m.snapshot.LastError != nil {
			return styles.DangerText.Render("Inventory unavailable: " + m.snapshot.LastError.Error())
		}
		return styles.MutedText.Render("Waiting for stock list...")
	}
	if len(m.snapshot.Items) == 0 {
		return styles.MutedText.Render("No stock recorded. Press s to scan.")
	}

	var b strings.Builder
	b.WriteString(m.stockTable.View())
	b.WriteString("\n")
	summary := fmt.Sprintf("showing %d of %d", len(m.snapshot.Items), m.snapshot.Total)
	if item, ok := m.selectedItem(); ok {
		if count, ok := m.counts[item.UPC]; ok {
			summary += fmt.Sprintf("  ·  %s: %d in stock%s", item.UPC, count.Count, formatShelfCounts(count.Shelves))
		}
	}
	b.WriteString(styles.FaintText.Render(summary))
	return b.String()
}
