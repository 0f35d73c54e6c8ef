// Package extractcmd exposes the extraction pipeline through go-command
// messages so hosts can dispatch report processing the same way they
// dispatch any other command.
package extractcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	extractReportMessageType  = "insights.report.extract"
	purgeSnapshotsMessageType = "insights.snapshots.purge"
)

// ExtractReportCommand runs the Markdown-to-snapshot pipeline over the
// supplied report body. GeneratedAt is an opaque timestamp passed through to
// the snapshot envelope.
type ExtractReportCommand struct {
	// Markdown is the raw report body.
	Markdown string `json:"markdown"`
	// GeneratedAt is the report timestamp supplied by the calling layer.
	GeneratedAt string `json:"generated_at,omitempty"`
	// SnapshotID pins the envelope id; a random id is assigned when nil.
	SnapshotID uuid.UUID `json:"snapshot_id,omitempty"`
	// Persist stores the resulting snapshot when a store is configured.
	Persist bool `json:"persist,omitempty"`
}

// Type implements command.Message.
func (ExtractReportCommand) Type() string { return extractReportMessageType }

// Validate ensures a report body is present before handlers execute.
func (cmd ExtractReportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Markdown, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("insights.report.extract.markdown_required", "markdown body is required")
			}
			return nil
		})),
	)
}

// PurgeSnapshotsCommand trims persisted snapshots down to the newest Keep
// entries.
type PurgeSnapshotsCommand struct {
	// Keep is the number of most recent snapshots to retain.
	Keep int `json:"keep"`
}

// Type implements command.Message.
func (PurgeSnapshotsCommand) Type() string { return purgeSnapshotsMessageType }

// Validate rejects negative retention counts.
func (cmd PurgeSnapshotsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Keep, validation.Min(0)),
	)
}
