package report

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-insights/internal/classify"
	"github.com/goliatone/go-insights/internal/metrics"
	"github.com/goliatone/go-insights/internal/numeric"
	"github.com/goliatone/go-insights/internal/tables"
)

// ClassifiedTable pairs a collected table with its heading context and the
// category the classifier assigned.
type ClassifiedTable struct {
	tables.RawTable
	Context string
	Tag     classify.Tag
}

// Meta carries the pass-through envelope values supplied by the caller.
type Meta struct {
	ID          string
	GeneratedAt string
	Title       string
}

// Build merges classified tables and extracted metrics into a fresh
// snapshot. Tables are routed in document order: list fields append across
// repeated tables of a category, singleton fields (the KPI-table mappings)
// overwrite so the later table wins. Derived aggregates are computed once,
// after every table has merged, never incrementally.
func Build(classified []ClassifiedTable, extracted metrics.Values, meta Meta) *Snapshot {
	snap := NewSnapshot()
	snap.ID = meta.ID
	snap.GeneratedAt = meta.GeneratedAt
	snap.Title = meta.Title

	applyMetrics(snap, extracted)

	seen := map[classify.Tag]bool{}
	for _, table := range classified {
		seen[table.Tag] = true
		switch table.Tag {
		case classify.TagFleet:
			snap.FleetMetrics.Vehicles = appendRows(snap.FleetMetrics.Vehicles, table.Rows)
		case classify.TagSystems:
			snap.SystemMonitoring.Systems = appendRows(snap.SystemMonitoring.Systems, table.Rows)
		case classify.TagFailures:
			snap.FailurePredictions.Predictions = appendRows(snap.FailurePredictions.Predictions, table.Rows)
		case classify.TagEngagement:
			snap.Engagement.Customers = appendRows(snap.Engagement.Customers, table.Rows)
		case classify.TagScheduling:
			snap.Scheduling.Appointments = appendRows(snap.Scheduling.Appointments, table.Rows)
		case classify.TagQuality:
			snap.Quality.Feedback = appendRows(snap.Quality.Feedback, table.Rows)
		case classify.TagManufacturing:
			snap.Manufacturing.RecurringIssues = appendRows(snap.Manufacturing.RecurringIssues, table.Rows)
		case classify.TagKPIs:
			snap.BusinessIntelligence.KPIs = appendRows(snap.BusinessIntelligence.KPIs, table.Rows)
			applyKPIRows(snap, table.Rows)
		default:
			snap.Extras = append(snap.Extras, ExtraSection{
				Section: sectionKey(table),
				Headers: table.Headers,
				Rows:    appendRows([]tables.Row{}, table.Rows),
			})
		}
	}

	deriveAggregates(snap, seen)
	return snap
}

func applyMetrics(snap *Snapshot, extracted metrics.Values) {
	if extracted == nil {
		return
	}
	snap.FleetMetrics.FleetHealthScore = extracted[metrics.FleetHealthScore]
	snap.FleetMetrics.VehiclesMonitored = extracted[metrics.VehiclesMonitored]
	snap.FleetMetrics.ActiveAlerts = extracted[metrics.ActiveAlerts]
	snap.FleetMetrics.DataQualityScore = extracted[metrics.DataQualityScore]
	snap.FailurePredictions.PredictionAccuracy = extracted[metrics.PredictionAccuracy]
	snap.FailurePredictions.ComponentFailureRate = extracted[metrics.ComponentFailureRate]
	snap.Engagement.NotificationsSent = extracted[metrics.NotificationsSent]
	snap.Engagement.ResponseRate = extracted[metrics.ResponseRate]
	snap.Engagement.EngagementScore = extracted[metrics.EngagementScore]
	snap.Scheduling.AppointmentsScheduled = extracted[metrics.AppointmentsScheduled]
	snap.Scheduling.ServiceCenterUtilization = extracted[metrics.ServiceCenterUtilization]
	snap.Scheduling.AvgLeadTimeDays = extracted[metrics.AvgLeadTimeDays]
	snap.Quality.CustomerSatisfaction = extracted[metrics.CustomerSatisfaction]
	snap.Quality.FeedbackResponseRate = extracted[metrics.FeedbackResponseRate]
	snap.Quality.NPS = extracted[metrics.NPS]
	snap.Manufacturing.DefectRate = extracted[metrics.DefectRate]
	snap.Manufacturing.WarrantyClaims = extracted[metrics.WarrantyClaims]
	snap.BusinessIntelligence.EstimatedCostSavings = extracted[metrics.EstimatedCostSavings]
	snap.BusinessIntelligence.ROIPercent = extracted[metrics.ROIPercent]
	snap.BusinessIntelligence.FleetAvailability = extracted[metrics.FleetAvailability]
}

// kpiLeaf routes a KPI-table row label onto a singleton schema leaf. Percent
// leaves go through the shared percent scale rule.
type kpiLeaf struct {
	keywords []string
	percent  bool
	assign   func(*Snapshot, *float64)
}

var kpiLeaves = []kpiLeaf{
	{[]string{"fleet health"}, true, func(s *Snapshot, v *float64) { s.FleetMetrics.FleetHealthScore = v }},
	{[]string{"vehicles monitored", "fleet size"}, false, func(s *Snapshot, v *float64) { s.FleetMetrics.VehiclesMonitored = v }},
	{[]string{"active alert"}, false, func(s *Snapshot, v *float64) { s.FleetMetrics.ActiveAlerts = v }},
	{[]string{"prediction accuracy"}, true, func(s *Snapshot, v *float64) { s.FailurePredictions.PredictionAccuracy = v }},
	{[]string{"response rate"}, true, func(s *Snapshot, v *float64) { s.Engagement.ResponseRate = v }},
	{[]string{"utilization"}, true, func(s *Snapshot, v *float64) { s.Scheduling.ServiceCenterUtilization = v }},
	{[]string{"satisfaction", "csat"}, true, func(s *Snapshot, v *float64) { s.Quality.CustomerSatisfaction = v }},
	{[]string{"cost saving"}, false, func(s *Snapshot, v *float64) { s.BusinessIntelligence.EstimatedCostSavings = v }},
	{[]string{"roi", "return on investment"}, true, func(s *Snapshot, v *float64) { s.BusinessIntelligence.ROIPercent = v }},
	{[]string{"availability"}, true, func(s *Snapshot, v *float64) { s.BusinessIntelligence.FleetAvailability = v }},
}

// applyKPIRows lifts metric/value rows from a KPI table onto their singleton
// leaves. Structured table values overwrite prose-extracted metrics; a row
// whose value does not parse leaves the leaf untouched rather than nulling
// evidence found elsewhere.
func applyKPIRows(snap *Snapshot, rows []tables.Row) {
	for _, row := range rows {
		label, ok := row.Field("metric", "kpi", "indicator", "measure", "name")
		if !ok {
			continue
		}
		rawValue, ok := row.Field("value", "result", "current", "score")
		if !ok {
			continue
		}
		lowered := strings.ToLower(label)
		for _, leaf := range kpiLeaves {
			if !containsAny(lowered, leaf.keywords) {
				continue
			}
			var parsed *float64
			if leaf.percent {
				parsed = numeric.NullablePercent(rawValue)
			} else {
				parsed = numeric.NullableFloat(rawValue)
			}
			if parsed != nil {
				leaf.assign(snap, parsed)
			}
			break
		}
	}
}

// deriveAggregates computes row-derived counts in one pass over the finished
// lists. Counts stay nil for categories with no table in the document, so an
// absent table never manufactures a zero.
func deriveAggregates(snap *Snapshot, seen map[classify.Tag]bool) {
	if seen[classify.TagFleet] {
		critical, warning := 0.0, 0.0
		for _, row := range snap.FleetMetrics.Vehicles {
			if rowMatches(row, []string{"status", "priority", "condition", "health"}, "critical") {
				critical++
			} else if rowMatches(row, []string{"status", "priority", "condition", "health"}, "warning") {
				warning++
			}
		}
		snap.FleetMetrics.CriticalCount = &critical
		snap.FleetMetrics.WarningCount = &warning
	}

	if seen[classify.TagFailures] {
		high := 0.0
		for _, row := range snap.FailurePredictions.Predictions {
			if rowMatches(row, []string{"risk", "severity", "priority"}, "high") ||
				rowMatches(row, []string{"risk", "severity", "priority"}, "critical") {
				high++
			}
		}
		snap.FailurePredictions.HighRiskCount = &high
	}
}

// rowMatches reports whether any of the row's semantically matched fields
// contains the needle, case-insensitively.
func rowMatches(row tables.Row, candidates []string, needle string) bool {
	value, ok := row.Field(candidates...)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(value), needle)
}

func sectionKey(table ClassifiedTable) string {
	context := strings.TrimSpace(table.Context)
	if context == "" {
		return fmt.Sprintf("table-%d", table.Position)
	}
	if normalized, err := slug.Normalize(context); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(context)
}

func appendRows(dst []tables.Row, rows []tables.Row) []tables.Row {
	for _, row := range rows {
		dst = append(dst, row.Clone())
	}
	return dst
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
