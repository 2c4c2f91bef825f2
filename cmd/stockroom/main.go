package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/stockroom/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	pollSeconds := flag.Int("poll", 0, "stock refresh interval in seconds (optional, defaults to 2s)")
	shelf := flag.String("shelf", "", "shelf to scan into (optional, defaults to the last used shelf)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), app.Usage())
		fmt.Fprintln(flag.CommandLine.Output(), "\nflags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Shelf: *shelf}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Exec(ctx, opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "stockroom: %v\n", err)
		if errors.Is(err, app.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
