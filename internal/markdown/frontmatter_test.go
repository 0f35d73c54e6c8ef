package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-insights/pkg/interfaces"
)

const frontMatterDoc = `---
title: Weekly Fleet Report
fleet: pacific-northwest
date: 2026-08-20T00:00:00Z
region: west
---
# Body Heading

Body text.
`

func TestParseFrontMatterExtractsEnvelope(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte(frontMatterDoc))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Title != "Weekly Fleet Report" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.Fleet != "pacific-northwest" {
		t.Fatalf("unexpected fleet: %q", meta.Fleet)
	}
	want := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if !meta.Date.Equal(want) {
		t.Fatalf("unexpected date: %v", meta.Date)
	}
	if meta.Custom["region"] != "west" {
		t.Fatalf("expected inline custom field, got %v", meta.Custom)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "# Body Heading") {
		t.Fatalf("body should start after frontmatter, got %q", string(body))
	}
}

func TestParseFrontMatterPassThroughWithoutBlock(t *testing.T) {
	source := []byte("# Plain Report\n\nNo metadata here.\n")
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Title != "" || !meta.Date.IsZero() {
		t.Fatalf("expected zero metadata, got %+v", meta)
	}
	if string(body) != string(source) {
		t.Fatalf("body should be unchanged, got %q", string(body))
	}
}

func TestDocumentTitlePrecedence(t *testing.T) {
	tree := &interfaces.BlockTree{Blocks: []interfaces.Block{
		interfaces.Heading{Level: 2, Text: "Subsection"},
		interfaces.Heading{Level: 1, Text: "Top Heading"},
	}}

	if got := DocumentTitle(interfaces.ReportFrontMatter{Title: "From Frontmatter"}, tree); got != "From Frontmatter" {
		t.Fatalf("expected frontmatter title, got %q", got)
	}
	if got := DocumentTitle(interfaces.ReportFrontMatter{}, tree); got != "Top Heading" {
		t.Fatalf("expected level-1 heading, got %q", got)
	}

	noH1 := &interfaces.BlockTree{Blocks: []interfaces.Block{
		interfaces.Heading{Level: 3, Text: "Only Subsection"},
	}}
	if got := DocumentTitle(interfaces.ReportFrontMatter{}, noH1); got != "Only Subsection" {
		t.Fatalf("expected first heading fallback, got %q", got)
	}
	if got := DocumentTitle(interfaces.ReportFrontMatter{}, &interfaces.BlockTree{}); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
