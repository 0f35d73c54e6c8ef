// Command reportextract runs the Markdown report extraction pipeline over a
// file (or stdin) and prints the resulting snapshot JSON. With -persist the
// snapshot is also stored in the configured SQLite database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	insights "github.com/goliatone/go-insights"
	extractcmd "github.com/goliatone/go-insights/internal/commands/extract"
	"github.com/goliatone/go-insights/internal/report"
)

func main() {
	if err := runExtract(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("report extract: %v", err)
	}
}

func runExtract(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("report-extract", flag.ExitOnError)
	input := fs.String("input", "", "Path to the markdown report (reads stdin when empty)")
	generatedAt := fs.String("generated-at", "", "Report timestamp recorded in the snapshot envelope")
	logLevel := fs.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: json, console, pretty")
	skipValidation := fs.Bool("skip-validation", false, "Skip JSON Schema validation of the snapshot")
	persist := fs.Bool("persist", false, "Store the snapshot in the SQLite database")
	dsn := fs.String("dsn", "file:insights.db?_fk=1", "SQLite DSN used with -persist")
	pretty := fs.Bool("pretty", true, "Indent the emitted JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := readSource(*input, stdin)
	if err != nil {
		return err
	}

	cfg := insights.DefaultConfig()
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	cfg.Validation.Enabled = !*skipValidation

	pipeline, err := insights.New(cfg)
	if err != nil {
		return fmt.Errorf("configure pipeline: %w", err)
	}

	ctx := context.Background()

	var store extractcmd.SnapshotStore
	if *persist {
		cfg.Storage.DSN = *dsn
		snapshotStore, err := insights.OpenSnapshotStore(ctx, cfg.Storage, pipeline.LoggerProvider())
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		defer snapshotStore.Close()
		store = snapshotStore
	}

	var extracted *report.Snapshot
	handler := extractcmd.NewExtractReportHandler(pipeline, store, nil,
		extractcmd.WithResultSink(func(_ context.Context, snap *report.Snapshot) {
			extracted = snap
		}),
	)

	cmd := extractcmd.ExtractReportCommand{
		Markdown:    string(source),
		GeneratedAt: *generatedAt,
		Persist:     *persist,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute extract command: %w", err)
	}
	if extracted == nil {
		return fmt.Errorf("extract command produced no snapshot")
	}

	return writeSnapshot(stdout, extracted, *pretty)
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeSnapshot(w io.Writer, snap *report.Snapshot, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(snap)
}
