// Command snapshots inspects and maintains the persisted snapshot store:
// list stored envelopes, print the latest snapshot, or purge old entries.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	insights "github.com/goliatone/go-insights"
	extractcmd "github.com/goliatone/go-insights/internal/commands/extract"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("snapshots: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("snapshots", flag.ExitOnError)
	dsn := fs.String("dsn", "file:insights.db?_fk=1", "SQLite DSN of the snapshot store")
	list := fs.Bool("list", false, "List stored snapshot envelopes, newest first")
	limit := fs.Int("limit", 20, "Maximum entries returned by -list")
	latest := fs.Bool("latest", false, "Print the most recent snapshot as JSON")
	purge := fs.Bool("purge", false, "Delete all but the newest -keep snapshots")
	keep := fs.Int("keep", 30, "Snapshots retained by -purge")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*list && !*latest && !*purge {
		return fmt.Errorf("one of -list, -latest or -purge is required")
	}

	cfg := insights.DefaultConfig()
	cfg.Storage.DSN = *dsn

	ctx := context.Background()

	store, err := insights.OpenSnapshotStore(ctx, cfg.Storage, nil)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	switch {
	case *list:
		infos, err := store.List(ctx, *limit)
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}
		for _, info := range infos {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", info.ID, info.GeneratedAt, info.Title)
		}
		if len(infos) == 0 {
			fmt.Fprintln(stdout, "no snapshots stored")
		}
	case *latest:
		snap, err := store.Latest(ctx)
		if err != nil {
			if errors.Is(err, insights.ErrNoSnapshots) {
				return fmt.Errorf("no snapshots stored")
			}
			return fmt.Errorf("load latest snapshot: %w", err)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case *purge:
		handler := extractcmd.NewPurgeSnapshotsHandler(store, nil)
		if err := handler.Execute(ctx, extractcmd.PurgeSnapshotsCommand{Keep: *keep}); err != nil {
			return fmt.Errorf("execute purge command: %w", err)
		}
		fmt.Fprintf(stdout, "purged snapshots, kept newest %d\n", *keep)
	}

	return nil
}
