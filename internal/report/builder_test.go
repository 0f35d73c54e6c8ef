package report

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-insights/internal/classify"
	"github.com/goliatone/go-insights/internal/metrics"
	"github.com/goliatone/go-insights/internal/tables"
)

func fptr(v float64) *float64 { return &v }

func fleetTable() ClassifiedTable {
	return ClassifiedTable{
		RawTable: tables.RawTable{
			Position: 0,
			Headers:  []string{"Vehicle ID", "Status"},
			Rows: []tables.Row{
				{"Vehicle ID": "V-1001", "Status": "Critical"},
				{"Vehicle ID": "V-1002", "Status": "Warning"},
				{"Vehicle ID": "V-1003", "Status": "OK"},
			},
		},
		Context: "fleet health overview",
		Tag:     classify.TagFleet,
	}
}

func TestBuildRoutesTablesByTag(t *testing.T) {
	classified := []ClassifiedTable{
		fleetTable(),
		{
			RawTable: tables.RawTable{
				Position: 1,
				Headers:  []string{"Component", "Risk Level"},
				Rows: []tables.Row{
					{"Component": "Brakes", "Risk Level": "High"},
					{"Component": "Battery", "Risk Level": "Low"},
				},
			},
			Context: "failure predictions",
			Tag:     classify.TagFailures,
		},
	}

	snap := Build(classified, nil, Meta{ID: "snap-1", GeneratedAt: "2026-08-20T00:00:00Z"})

	if len(snap.FleetMetrics.Vehicles) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(snap.FleetMetrics.Vehicles))
	}
	if len(snap.FailurePredictions.Predictions) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(snap.FailurePredictions.Predictions))
	}
	if len(snap.Extras) != 0 {
		t.Fatalf("expected no extras, got %d", len(snap.Extras))
	}
}

func TestBuildDerivesCountsOnlyForSeenCategories(t *testing.T) {
	snap := Build([]ClassifiedTable{fleetTable()}, nil, Meta{})

	if snap.FleetMetrics.CriticalCount == nil || *snap.FleetMetrics.CriticalCount != 1 {
		t.Fatalf("critical count = %v, want 1", snap.FleetMetrics.CriticalCount)
	}
	if snap.FleetMetrics.WarningCount == nil || *snap.FleetMetrics.WarningCount != 1 {
		t.Fatalf("warning count = %v, want 1", snap.FleetMetrics.WarningCount)
	}
	// No failures table in the document: the aggregate stays nil, never 0.
	if snap.FailurePredictions.HighRiskCount != nil {
		t.Fatalf("high risk count = %v, want nil", *snap.FailurePredictions.HighRiskCount)
	}
}

func TestBuildCountsRowOncePreferringCritical(t *testing.T) {
	table := ClassifiedTable{
		RawTable: tables.RawTable{
			Headers: []string{"Vehicle ID", "Status"},
			Rows: []tables.Row{
				{"Vehicle ID": "V-1", "Status": "Critical - warning signs"},
			},
		},
		Tag: classify.TagFleet,
	}

	snap := Build([]ClassifiedTable{table}, nil, Meta{})
	if *snap.FleetMetrics.CriticalCount != 1 || *snap.FleetMetrics.WarningCount != 0 {
		t.Fatalf("row counted twice: critical=%v warning=%v",
			*snap.FleetMetrics.CriticalCount, *snap.FleetMetrics.WarningCount)
	}
}

func TestBuildHighRiskCountsHighAndCritical(t *testing.T) {
	table := ClassifiedTable{
		RawTable: tables.RawTable{
			Headers: []string{"Component", "Risk Level"},
			Rows: []tables.Row{
				{"Component": "Brakes", "Risk Level": "High"},
				{"Component": "Battery", "Risk Level": "Critical"},
				{"Component": "Tires", "Risk Level": "Medium"},
			},
		},
		Tag: classify.TagFailures,
	}

	snap := Build([]ClassifiedTable{table}, nil, Meta{})
	if *snap.FailurePredictions.HighRiskCount != 2 {
		t.Fatalf("high risk count = %v, want 2", *snap.FailurePredictions.HighRiskCount)
	}
}

func TestBuildAppliesExtractedMetrics(t *testing.T) {
	values := metrics.Values{
		metrics.FleetHealthScore:  fptr(87),
		metrics.VehiclesMonitored: fptr(1250),
		metrics.NPS:               fptr(42),
	}

	snap := Build(nil, values, Meta{})
	if *snap.FleetMetrics.FleetHealthScore != 87 {
		t.Fatalf("fleet health = %v", snap.FleetMetrics.FleetHealthScore)
	}
	if *snap.FleetMetrics.VehiclesMonitored != 1250 {
		t.Fatalf("vehicles monitored = %v", snap.FleetMetrics.VehiclesMonitored)
	}
	if *snap.Quality.NPS != 42 {
		t.Fatalf("nps = %v", snap.Quality.NPS)
	}
	if snap.FleetMetrics.ActiveAlerts != nil {
		t.Fatalf("active alerts should stay nil, got %v", *snap.FleetMetrics.ActiveAlerts)
	}
}

func TestBuildKPIRowsOverrideProseMetrics(t *testing.T) {
	values := metrics.Values{metrics.FleetHealthScore: fptr(87)}
	kpi := ClassifiedTable{
		RawTable: tables.RawTable{
			Headers: []string{"Metric", "Value"},
			Rows: []tables.Row{
				{"Metric": "Fleet Health Score", "Value": "0.91"},
				{"Metric": "Fleet Availability", "Value": "N/A"},
			},
		},
		Context: "key performance indicators",
		Tag:     classify.TagKPIs,
	}

	snap := Build([]ClassifiedTable{kpi}, values, Meta{})

	// Structured table data wins over the prose extraction.
	if *snap.FleetMetrics.FleetHealthScore != 91 {
		t.Fatalf("fleet health = %v, want 91", *snap.FleetMetrics.FleetHealthScore)
	}
	// Unparsable cell leaves the leaf untouched instead of nulling it.
	if snap.BusinessIntelligence.FleetAvailability != nil {
		t.Fatalf("availability = %v, want nil", *snap.BusinessIntelligence.FleetAvailability)
	}
	if len(snap.BusinessIntelligence.KPIs) != 2 {
		t.Fatalf("kpi rows = %d, want 2", len(snap.BusinessIntelligence.KPIs))
	}
}

func TestBuildPreservesUnknownTablesAsExtras(t *testing.T) {
	unknown := ClassifiedTable{
		RawTable: tables.RawTable{
			Position: 3,
			Headers:  []string{"Topic", "Notes"},
			Rows:     []tables.Row{{"Topic": "Weather", "Notes": "Heavy rain"}},
		},
		Context: "Random Notes",
		Tag:     classify.TagUnknown,
	}

	snap := Build([]ClassifiedTable{unknown}, nil, Meta{})
	if len(snap.Extras) != 1 {
		t.Fatalf("expected 1 extra section, got %d", len(snap.Extras))
	}
	extra := snap.Extras[0]
	if extra.Section != "random-notes" {
		t.Fatalf("unexpected section key: %q", extra.Section)
	}
	if len(extra.Rows) != 1 || extra.Rows[0]["Topic"] != "Weather" {
		t.Fatalf("unexpected extra rows: %v", extra.Rows)
	}
}

func TestBuildExtraWithoutContextUsesPosition(t *testing.T) {
	unknown := ClassifiedTable{
		RawTable: tables.RawTable{Position: 2, Headers: []string{"A"}, Rows: []tables.Row{{"A": "1"}}},
		Tag:      classify.TagUnknown,
	}

	snap := Build([]ClassifiedTable{unknown}, nil, Meta{})
	if snap.Extras[0].Section != "table-2" {
		t.Fatalf("unexpected section key: %q", snap.Extras[0].Section)
	}
}

func TestBuildRepeatedCategoryTablesAppendInOrder(t *testing.T) {
	first := fleetTable()
	second := ClassifiedTable{
		RawTable: tables.RawTable{
			Position: 1,
			Headers:  []string{"Vehicle ID", "Status"},
			Rows:     []tables.Row{{"Vehicle ID": "V-2001", "Status": "OK"}},
		},
		Tag: classify.TagFleet,
	}

	snap := Build([]ClassifiedTable{first, second}, nil, Meta{})
	if len(snap.FleetMetrics.Vehicles) != 4 {
		t.Fatalf("expected appended rows, got %d", len(snap.FleetMetrics.Vehicles))
	}
	if snap.FleetMetrics.Vehicles[3]["Vehicle ID"] != "V-2001" {
		t.Fatalf("document order lost: %v", snap.FleetMetrics.Vehicles[3])
	}
}

func TestBuildEmptyInputsEmitNullLeavesAndEmptyLists(t *testing.T) {
	snap := Build(nil, metrics.Extract(""), Meta{GeneratedAt: "2026-08-20T00:00:00Z"})

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(data)

	if !strings.Contains(payload, `"fleet_health_score":null`) {
		t.Fatalf("expected null leaf, got %s", payload)
	}
	if !strings.Contains(payload, `"vehicles":[]`) {
		t.Fatalf("expected empty list, got %s", payload)
	}
	if !strings.Contains(payload, `"extras":[]`) {
		t.Fatalf("expected empty extras, got %s", payload)
	}
	if strings.Contains(payload, `"critical_count":0`) {
		t.Fatalf("absent fleet table must not manufacture a zero: %s", payload)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	classified := []ClassifiedTable{fleetTable()}
	values := metrics.Values{metrics.FleetHealthScore: fptr(87)}
	meta := Meta{ID: "snap-1", GeneratedAt: "2026-08-20T00:00:00Z", Title: "Weekly"}

	first := Build(classified, values, meta)
	second := Build(classified, values, meta)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same inputs produced different snapshots")
	}
}

func TestBuildDoesNotAliasInputRows(t *testing.T) {
	table := fleetTable()
	snap := Build([]ClassifiedTable{table}, nil, Meta{})

	snap.FleetMetrics.Vehicles[0]["Status"] = "mutated"
	if table.Rows[0]["Status"] != "Critical" {
		t.Fatalf("snapshot rows share storage with input: %v", table.Rows[0])
	}
}
