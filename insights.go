// Package insights turns Markdown status reports into a fixed JSON snapshot
// schema. Tables are discovered from the parsed block tree, classified by
// heading context and column headers, and merged with tolerant prose metric
// extraction; anything the report does not state stays null.
package insights

import (
	"context"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-insights/internal/classify"
	"github.com/goliatone/go-insights/internal/logging"
	"github.com/goliatone/go-insights/internal/logging/gologger"
	"github.com/goliatone/go-insights/internal/markdown"
	"github.com/goliatone/go-insights/internal/metrics"
	"github.com/goliatone/go-insights/internal/report"
	"github.com/goliatone/go-insights/internal/tables"
	"github.com/goliatone/go-insights/internal/validation"
	"github.com/goliatone/go-insights/pkg/interfaces"
)

// Snapshot exports the extracted snapshot schema.
type Snapshot = report.Snapshot

// Meta exports the snapshot envelope metadata.
type Meta = report.Meta

// ExtraSection exports the preserved unknown-table payload.
type ExtraSection = report.ExtraSection

// Row exports the header-keyed table row representation.
type Row = tables.Row

// ValidationIssue exports a single schema validation failure.
type ValidationIssue = validation.ValidationIssue

// ValidationIssues extracts schema issues from an extraction error, if any.
func ValidationIssues(err error) []ValidationIssue {
	return validation.Issues(err)
}

const (
	reportParseFailedCode = "REPORT_PARSE_FAILED"
	snapshotInvalidCode   = "SNAPSHOT_INVALID"
)

// Pipeline is the top level extraction facade.
type Pipeline struct {
	parser   interfaces.TreeParser
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	validate bool
}

// Option customises Pipeline construction.
type Option func(*Pipeline)

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(p *Pipeline) {
		p.provider = provider
	}
}

// WithTreeParser overrides the Markdown block tree parser.
func WithTreeParser(parser interfaces.TreeParser) Option {
	return func(p *Pipeline) {
		if parser != nil {
			p.parser = parser
		}
	}
}

// New constructs an extraction pipeline from the provided configuration.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		parser:   markdown.NewTreeAdapter(),
		validate: cfg.Validation.Enabled,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		p.provider = provider
	}
	p.logger = logging.PipelineLogger(p.provider)

	return p, nil
}

// LoggerProvider exposes the configured provider so hosts and commands can
// derive module loggers from the same sink.
func (p *Pipeline) LoggerProvider() interfaces.LoggerProvider {
	return p.provider
}

// Extract runs the full pipeline over a Markdown report body. Zero-valued
// meta fields are filled in: a random envelope id, the front matter date (or
// current time) as generated_at, and the document title.
func (p *Pipeline) Extract(ctx context.Context, source []byte, meta Meta) (*Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	front, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		// Malformed front matter falls back to treating the whole
		// document as body.
		p.logger.Warn("report.frontmatter.invalid", "error", err)
		front = interfaces.ReportFrontMatter{}
		body = source
	}

	tree, err := p.parser.ParseTree(body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "report parse failed").
			WithTextCode(reportParseFailedCode)
	}

	raw := tables.Collect(tree)
	classified := make([]report.ClassifiedTable, 0, len(raw))
	for _, table := range raw {
		heading := tables.ContextFor(tree, table.BlockIndex)
		classified = append(classified, report.ClassifiedTable{
			RawTable: table,
			Context:  heading,
			Tag:      classify.Classify(table.Headers, heading),
		})
	}

	values := metrics.Extract(string(body))

	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.GeneratedAt == "" {
		if !front.Date.IsZero() {
			meta.GeneratedAt = front.Date.UTC().Format(time.RFC3339)
		} else {
			meta.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
		}
	}
	if meta.Title == "" {
		meta.Title = markdown.DocumentTitle(front, tree)
	}

	snap := report.Build(classified, values, meta)

	if p.validate {
		payload, err := json.Marshal(snap)
		if err != nil {
			return nil, err
		}
		if err := validation.ValidateSnapshotJSON(payload); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "snapshot schema validation failed").
				WithTextCode(snapshotInvalidCode)
		}
	}

	logging.WithReportContext(p.logger, snap.ID, snap.GeneratedAt).Info("report.extract.completed",
		"table_count", len(raw),
		"extra_count", len(snap.Extras),
	)
	return snap, nil
}
