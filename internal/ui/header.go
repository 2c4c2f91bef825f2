package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: shelf, scan mode, connectivity and totals.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	surface := lipgloss.Color(m.theme.Surface)
	on := func(s lipgloss.Style) lipgloss.Style { return s.Background(surface) }
	sep := on(lipgloss.NewStyle()).Render("  ")

	shelf := m.shelf
	if shelf == "" {
		shelf = "(none)"
	}

	modeStyle := on(styles.SuccessText)
	if m.scanMode == ScanRemove {
		modeStyle = on(styles.DangerText)
	}

	parts := []string{
		on(styles.Logo).Render("stockroom"),
		on(styles.FaintText).Render("shelf") + on(lipgloss.NewStyle()).Render(" ") +
			on(styles.AccentText).Render(truncate(shelf, 32)),
		modeStyle.Render(m.scanMode.String()),
	}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, on(styles.DangerText).Render("OFFLINE"))
	case m.snapshot.LastError != nil:
		parts = append(parts, on(styles.WarningText).Render("Retrying..."))
	case m.snapshot.HasStock:
		parts = append(parts, on(styles.SuccessText).Render("ONLINE"))
	default:
		parts = append(parts, on(styles.MutedText).Render("connecting"))
	}

	if m.snapshot.HasStock {
		parts = append(parts, on(styles.Text).Render(fmt.Sprintf("%d units", m.snapshot.Total)))
	}
	if m.width >= LayoutUpdatedWidth && !m.snapshot.LastUpdated.IsZero() {
		age := humanizeDuration(time.Since(m.snapshot.LastUpdated))
		parts = append(parts, on(styles.FaintText).Render("updated "+age+" ago"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}
