package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/five82/stockroom/internal/upc"
)

// StockAdder is the slice of inventory.API the importer needs.
type StockAdder interface {
	AddStock(ctx context.Context, upc, shelf string) error
}

// LineError reports a single import line that was not added.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Text, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// ImportReport summarises a bulk import.
type ImportReport struct {
	Total  int
	Added  int
	Failed []LineError
}

type importEntry struct {
	line  int
	text  string
	upc   string
	shelf string
}

// Import adds one unit per line of r. Lines are "upc" or "upc,shelf"; blank
// lines and lines starting with # are skipped. Lines without a shelf use
// defaultShelf. Progress is drawn on progress and nothing else is written
// there; failures are returned in the report. A failed line does not stop the
// import; cancellation does.
func Import(ctx context.Context, inv StockAdder, r io.Reader, defaultShelf string, progress io.Writer) (ImportReport, error) {
	entries, report, err := parseImport(r, defaultShelf)
	if err != nil {
		return report, err
	}
	if len(entries) == 0 {
		return report, nil
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	defer func() { _ = bar.Finish() }()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := inv.AddStock(ctx, entry.upc, entry.shelf); err != nil {
			report.Failed = append(report.Failed, LineError{Line: entry.line, Text: entry.text, Err: err})
		} else {
			report.Added++
		}
		_ = bar.Add(1)
	}
	return report, nil
}

// parseImport validates every line up front so the bar knows its length.
func parseImport(r io.Reader, defaultShelf string) ([]importEntry, ImportReport, error) {
	var (
		entries []importEntry
		report  ImportReport
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		report.Total++

		code, shelf, _ := strings.Cut(text, ",")
		shelf = strings.TrimSpace(shelf)
		if shelf == "" {
			shelf = defaultShelf
		}
		normalized, err := upc.Normalize(code)
		if err != nil {
			report.Failed = append(report.Failed, LineError{Line: lineNo, Text: text, Err: err})
			continue
		}
		if shelf == "" {
			report.Failed = append(report.Failed, LineError{Line: lineNo, Text: text, Err: fmt.Errorf("no shelf")})
			continue
		}
		entries = append(entries, importEntry{line: lineNo, text: text, upc: normalized, shelf: shelf})
	}
	if err := scanner.Err(); err != nil {
		return nil, report, fmt.Errorf("read import: %w", err)
	}
	return entries, report, nil
}
