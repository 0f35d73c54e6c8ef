package extractcmd

import (
	"testing"

	command "github.com/goliatone/go-command"
)

func TestExtractReportCommandType(t *testing.T) {
	if got := command.GetMessageType(ExtractReportCommand{}); got != "insights.report.extract" {
		t.Fatalf("unexpected message type: %q", got)
	}
	if got := command.GetMessageType(PurgeSnapshotsCommand{}); got != "insights.snapshots.purge" {
		t.Fatalf("unexpected message type: %q", got)
	}
}

func TestExtractReportCommandValidation(t *testing.T) {
	if err := (ExtractReportCommand{Markdown: "# Report"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (ExtractReportCommand{}).Validate(); err == nil {
		t.Fatal("expected error for empty markdown")
	}
	if err := (ExtractReportCommand{Markdown: "   \n\t"}).Validate(); err == nil {
		t.Fatal("expected error for blank markdown")
	}
}

func TestPurgeSnapshotsCommandValidation(t *testing.T) {
	if err := (PurgeSnapshotsCommand{Keep: 0}).Validate(); err != nil {
		t.Fatalf("expected zero keep to validate, got %v", err)
	}
	if err := (PurgeSnapshotsCommand{Keep: 10}).Validate(); err != nil {
		t.Fatalf("expected positive keep to validate, got %v", err)
	}
	if err := (PurgeSnapshotsCommand{Keep: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative keep")
	}
}
