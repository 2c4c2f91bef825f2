package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/stockroom/internal/inventory"
	"github.com/five82/stockroom/internal/upc"
)

// ErrUsage marks command-line mistakes, as opposed to service failures.
var ErrUsage = errors.New("usage")

type command struct {
	usage string
	run   func(ctx context.Context, e env, args []string) error
}

var commands = map[string]command{
	"add":          {"add <upc> [shelf]", runAdd},
	"remove":       {"remove <upc> [shelf]", runRemove},
	"count":        {"count <upc>", runCount},
	"list":         {"list [-limit N] [-offset N]", runList},
	"shelf-create": {"shelf-create <name> [parent]", runShelfCreate},
	"shelf-delete": {"shelf-delete [-keep-items] <name>", runShelfDelete},
	"shelf-get":    {"shelf-get <name>", runShelfGet},
	"shelf-items":  {"shelf-items [-sub] [-recurse] [-limit N] [-offset N] <name>", runShelfItems},
	"lookup":       {"lookup <upc>", runLookup},
	"check":        {"check <code>", runCheck},
	"import":       {"import <file>", runImport},
}

// Usage lists the available commands.
func Usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: stockroom [flags] [command] [args]\n\ncommands:\n")
	b.WriteString("  ui (default)\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", commands[name].usage)
	}
	return b.String()
}

// Exec runs a single command. No command, or "ui", starts the scanning station.
func Exec(ctx context.Context, opts Options, args []string) error {
	if len(args) == 0 || args[0] == "ui" {
		return Run(ctx, opts)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	e, err := setup(opts)
	if err != nil {
		return err
	}
	if err := cmd.run(ctx, e, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w: stockroom %s", err, cmd.usage)
		}
		return err
	}
	return nil
}

func newFlagSet(name string, e env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// normalizeArg validates a scanned code, expanding UPC-E.
func normalizeArg(code string) (string, error) {
	normalized, err := upc.Normalize(code)
	if err != nil {
		return "", fmt.Errorf("%s: %w", code, err)
	}
	return normalized, nil
}

// stockArgs resolves "<upc> [shelf]", falling back to the configured shelf.
func stockArgs(e env, args []string) (string, string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", ErrUsage
	}
	code, err := normalizeArg(args[0])
	if err != nil {
		return "", "", err
	}
	shelf := e.shelf
	if len(args) == 2 {
		shelf = strings.TrimSpace(args[1])
	}
	if shelf == "" {
		return "", "", fmt.Errorf("%w: no shelf given and no default_shelf configured", ErrUsage)
	}
	return code, shelf, nil
}

func runAdd(ctx context.Context, e env, args []string) error {
	code, shelf, err := stockArgs(e, args)
	if err != nil {
		return err
	}
	if err := e.inv.AddStock(ctx, code, shelf); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "added %s to %s\n", code, shelf)
	return nil
}

func runRemove(ctx context.Context, e env, args []string) error {
	code, shelf, err := stockArgs(e, args)
	if err != nil {
		return err
	}
	if err := e.inv.RemoveStock(ctx, code, shelf); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "removed %s from %s\n", code, shelf)
	return nil
}

func runCount(ctx context.Context, e env, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	code, err := normalizeArg(args[0])
	if err != nil {
		return err
	}
	count, err := e.inv.CountStock(ctx, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s: %d\n", code, count.Count)
	for _, shelf := range sortedKeys(count.Shelves) {
		fmt.Fprintf(e.out, "  %s: %d\n", shelf, count.Shelves[shelf])
	}
	return nil
}

func runList(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("list", e)
	limit := fs.Int("limit", inventory.DefaultLimit, "page size")
	offset := fs.Int("offset", 0, "items to skip")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return ErrUsage
	}
	list, err := e.inv.ListStock(ctx, inventory.ListOptions{Limit: *limit, Offset: *offset})
	if err != nil {
		return err
	}
	writeItems(e.out, list, *offset)
	return nil
}

func runShelfCreate(ctx context.Context, e env, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	name, parent := args[0], ""
	if len(args) == 2 {
		parent = args[1]
	}
	if err := e.inv.CreateShelf(ctx, name, parent); err != nil {
		return err
	}
	if parent != "" {
		fmt.Fprintf(e.out, "created shelf %s under %s\n", name, parent)
		return nil
	}
	fmt.Fprintf(e.out, "created shelf %s\n", name)
	return nil
}

func runShelfDelete(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("shelf-delete", e)
	keepItems := fs.Bool("keep-items", false, "leave the shelf's items in place")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return ErrUsage
	}
	name := fs.Arg(0)
	if err := e.inv.DeleteShelf(ctx, name, !*keepItems); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "deleted shelf %s\n", name)
	return nil
}

func runShelfGet(ctx context.Context, e env, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	shelf, err := e.inv.GetShelf(ctx, args[0], inventory.ListOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s: %d\n", shelf.Name, shelf.Count)
	for _, sub := range shelf.Subshelves {
		fmt.Fprintf(e.out, "  %s: %d\n", sub.Name, sub.Count)
	}
	return nil
}

func runShelfItems(ctx context.Context, e env, args []string) error {
	fs := newFlagSet("shelf-items", e)
	sub := fs.Bool("sub", false, "include direct subshelves")
	recurse := fs.Bool("recurse", false, "include all nested subshelves")
	limit := fs.Int("limit", inventory.DefaultLimit, "page size")
	offset := fs.Int("offset", 0, "items to skip")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return ErrUsage
	}
	list, err := e.inv.ShelfItems(ctx, fs.Arg(0), inventory.ShelfItemsOptions{
		ListOptions:       inventory.ListOptions{Limit: *limit, Offset: *offset},
		IncludeSubshelves: *sub,
		RecurseSubshelves: *recurse,
	})
	if err != nil {
		return err
	}
	writeItems(e.out, list, *offset)
	return nil
}

func runLookup(ctx context.Context, e env, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	code, err := normalizeArg(args[0])
	if err != nil {
		return err
	}
	item, err := e.lookup.Get(ctx, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "UPC:  %s\n", item.UPC)
	if item.Name != "" {
		fmt.Fprintf(e.out, "Name: %s\n", item.Name)
	}
	if size := item.Size(); size != "" {
		fmt.Fprintf(e.out, "Size: %s\n", size)
	}
	return nil
}

func runCheck(_ context.Context, e env, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	code := strings.TrimSpace(args[0])
	normalized, err := upc.Normalize(code)
	if err != nil {
		return fmt.Errorf("%s: %w", code, err)
	}
	if normalized != code {
		fmt.Fprintf(e.out, "%s: UPC-E, expands to %s\n", code, normalized)
		return nil
	}
	fmt.Fprintf(e.out, "%s: valid UPC-A\n", code)
	return nil
}

func runImport(ctx context.Context, e env, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	report, err := Import(ctx, e.inv, f, e.shelf, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "imported %d of %d lines\n", report.Added, report.Total)
	for _, failure := range report.Failed {
		fmt.Fprintf(e.out, "  %v\n", failure)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d import lines failed", len(report.Failed))
	}
	return nil
}

func writeItems(w io.Writer, list *inventory.ItemList, offset int) {
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "no items")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("UPC", "SHELF", "HASH")
	for _, item := range list.Items {
		t.Row(item.UPC, item.Shelf, item.Hash)
	}
	fmt.Fprintln(w, t.String())
	if list.HasMore(offset) {
		fmt.Fprintf(w, "showing %d-%d of %d\n", offset+1, offset+len(list.Items), list.Count)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
