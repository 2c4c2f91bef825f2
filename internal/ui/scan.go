package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stockroom/internal/inventory"
	"github.com/five82/stockroom/internal/upc"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeWarn
	noticeError
)

// notice is the one-line status shown under the main view.
type notice struct {
	text  string
	level noticeLevel
	at    time.Time
}

// scanResultMsg reports the outcome of an add or remove.
type scanResultMsg struct {
	UPC   string
	Shelf string
	Mode  ScanMode
	Item  *upc.CatalogItem
	Err   error
}

// scanCmd optionally resolves the catalog record, then records the stock change.
// Lookup failures never block the stock change.
func scanCmd(ctx context.Context, inv inventory.API, lookup Lookup, code, shelf string, mode ScanMode) tea.Cmd {
	return func() tea.Msg {
		res := scanResultMsg{UPC: code, Shelf: shelf, Mode: mode}
		if lookup != nil {
			item, err := lookup.Get(ctx, code)
			switch {
			case err == nil:
				res.Item = &item
			case !errors.Is(err, upc.ErrNotFound):
				log.Printf("catalog lookup %s: %v", code, err)
			}
		}
		if inv == nil {
			res.Err = errors.New("inventory client not configured")
			return res
		}
		if mode == ScanRemove {
			res.Err = inv.RemoveStock(ctx, code, shelf)
		} else {
			res.Err = inv.AddStock(ctx, code, shelf)
		}
		return res
	}
}

func (m *Model) setNotice(level noticeLevel, format string, args ...any) {
	m.notice = notice{text: fmt.Sprintf(format, args...), level: level, at: time.Now()}
}

// openInput focuses the prompt for a scan or a shelf change.
func (m *Model) openInput(mode inputMode) tea.Cmd {
	m.inputMode = mode
	m.input.Reset()
	switch mode {
	case inputShelf:
		m.input.Placeholder = "shelf name"
		m.input.SetValue(m.shelf)
		m.input.CursorEnd()
	default:
		m.input.Placeholder = "scan or type a UPC"
	}
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.Reset()
}

// handleInputKey routes keys while the prompt has focus. The scan prompt
// stays open after each submit so a scanner can keep feeding codes.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.submitInput()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())

	if m.inputMode == inputShelf {
		m.closeInput()
		if value == "" {
			return nil
		}
		m.setShelf(value)
		if m.currentView == ViewShelf {
			return m.loadShelf()
		}
		return nil
	}

	m.input.Reset()
	if value == "" {
		return nil
	}
	if m.shelf == "" {
		m.setNotice(noticeWarn, "Choose a shelf first (S)")
		return nil
	}
	code, err := upc.Normalize(value)
	if err != nil {
		m.setNotice(noticeWarn, "%s is not a valid UPC: %v", value, err)
		return nil
	}
	m.setNotice(noticeInfo, "%s %s...", strings.ToLower(m.scanMode.String()), code)
	return scanCmd(m.ctx, m.inv, m.lookup, code, m.shelf, m.scanMode)
}

// setShelf switches the active shelf and remembers it across sessions.
func (m *Model) setShelf(name string) {
	if name == m.shelf {
		return
	}
	m.shelf = name
	m.shelfState = shelfState{}
	m.savePrefs()
	m.setNotice(noticeInfo, "Shelf set to %s", name)
}

func (m Model) handleScanResult(msg scanResultMsg) (tea.Model, tea.Cmd) {
	label := msg.UPC
	if msg.Item != nil {
		m.lastCatalog = msg.Item
		if name := strings.TrimSpace(msg.Item.Name); name != "" {
			label = fmt.Sprintf("%s (%s)", msg.UPC, truncate(name, 40))
		}
	}

	if msg.Err != nil {
		switch {
		case msg.Mode == ScanRemove && inventory.IsStatus(msg.Err, http.StatusNotFound):
			m.setNotice(noticeWarn, "%s is not stocked on %s", label, msg.Shelf)
		default:
			log.Printf("%s %s on %s: %v", strings.ToLower(msg.Mode.String()), msg.UPC, msg.Shelf, msg.Err)
			m.setNotice(noticeError, "%s failed for %s: %v", strings.ToLower(msg.Mode.String()), label, msg.Err)
		}
		return m, nil
	}

	if msg.Mode == ScanRemove {
		m.setNotice(noticeSuccess, "Removed %s from %s", label, msg.Shelf)
	} else {
		m.setNotice(noticeSuccess, "Added %s to %s", label, msg.Shelf)
	}
	delete(m.counts, msg.UPC)

	cmds := []tea.Cmd{m.refreshStock()}
	if m.currentView == ViewShelf {
		cmds = append(cmds, m.loadShelf())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) renderNotice() string {
	if m.notice.text == "" || time.Since(m.notice.at) > NoticeTTL {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.MutedText
	switch m.notice.level {
	case noticeSuccess:
		style = styles.SuccessText
	case noticeWarn:
		style = styles.WarningText
	case noticeError:
		style = styles.DangerText
	}
	return " " + style.Render(truncate(m.notice.text, maxInt(m.width-2, 20)))
}

func (m Model) renderInput() string {
	styles := m.theme.Styles()
	label := "Shelf"
	if m.inputMode == inputScan {
		label = fmt.Sprintf("Scan %s → %s", m.scanMode, m.shelf)
		if m.shelf == "" {
			label = fmt.Sprintf("Scan %s", m.scanMode)
		}
	}
	return " " + styles.AccentText.Render(label) + " " + m.input.View()
}
