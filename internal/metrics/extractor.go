// Package metrics scans the raw Markdown text, not the block tree, with a
// library of tolerant patterns that pull named scalar metrics out of prose.
// Every pattern accepts flexible label punctuation (colon, hyphen, en dash,
// em dash, linking words), optional currency symbols, thousands separators,
// decimals, ranges, and a trailing percent sign. Absence of a match leaves
// the metric nil; extraction never fabricates a default.
package metrics

import (
	"regexp"

	"github.com/goliatone/go-insights/internal/numeric"
)

// Metric names, stable keys shared with the schema builder.
const (
	FleetHealthScore         = "fleet_health_score"
	VehiclesMonitored        = "vehicles_monitored"
	ActiveAlerts             = "active_alerts"
	DataQualityScore         = "data_quality_score"
	PredictionAccuracy       = "prediction_accuracy"
	ComponentFailureRate     = "component_failure_rate"
	NotificationsSent        = "notifications_sent"
	ResponseRate             = "response_rate"
	EngagementScore          = "engagement_score"
	AppointmentsScheduled    = "appointments_scheduled"
	ServiceCenterUtilization = "service_center_utilization"
	AvgLeadTimeDays          = "avg_lead_time_days"
	CustomerSatisfaction     = "customer_satisfaction"
	FeedbackResponseRate     = "feedback_response_rate"
	NPS                      = "nps"
	DefectRate               = "defect_rate"
	WarrantyClaims           = "warranty_claims"
	EstimatedCostSavings     = "estimated_cost_savings"
	ROIPercent               = "roi_percent"
	FleetAvailability        = "fleet_availability"
)

// Values maps metric name to extracted scalar. Every known metric is present
// in the map; nil means the pattern did not match this document.
type Values map[string]*float64

type kind int

const (
	kindNumber kind = iota
	kindPercent
	kindCount
	kindCurrency
)

type pattern struct {
	name string
	kind kind
	re   *regexp.Regexp
}

// value captures the scalar snippet after a label: optional currency symbol,
// digit groups with separators, optional decimal, optional range, optional
// percent sign. The snippet is handed to the numeric package so range and
// scale policy live in exactly one place.
const value = `((?:[$€£₹]\s*)?\d[\d,]*(?:\.\d+)?(?:\s*[-\x{2013}\x{2014}]\s*(?:[$€£₹]\s*)?\d[\d,]*(?:\.\d+)?)?\s*%?)`

// sep tolerates the punctuation and linking words report authors put between
// a label and its value, without crossing a line boundary.
const sep = `[^\d\n]{0,24}?`

func compile(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)(?:` + label + `)` + sep + value)
}

// patterns is ordered: more specific labels run before generic ones so a
// "feedback response rate" line is consumed by the feedback metric and not
// mistaken for the engagement response rate (which is line-anchored for the
// same reason).
var patterns = []pattern{
	{FleetHealthScore, kindPercent, compile(`(?:overall\s+)?fleet\s+health(?:\s+score)?`)},
	{VehiclesMonitored, kindCount, compile(`(?:total\s+)?vehicles\s+monitored|total\s+vehicles|fleet\s+size`)},
	{ActiveAlerts, kindCount, compile(`active\s+(?:alerts|warnings)`)},
	{DataQualityScore, kindPercent, compile(`data\s+quality(?:\s+score)?`)},
	{PredictionAccuracy, kindPercent, compile(`(?:prediction|model)\s+accuracy`)},
	{ComponentFailureRate, kindPercent, compile(`(?:component\s+)?failure\s+rate`)},
	{NotificationsSent, kindCount, compile(`(?:notifications|alerts|messages)\s+sent`)},
	{FeedbackResponseRate, kindPercent, compile(`(?:feedback|survey)\s+response\s+rate`)},
	{ResponseRate, kindPercent, compile(`^[\s*-]*(?:customer\s+)?response\s+rate`)},
	{EngagementScore, kindPercent, compile(`engagement\s+(?:score|rate)`)},
	{AppointmentsScheduled, kindCount, compile(`appointments\s+(?:scheduled|booked)`)},
	{ServiceCenterUtilization, kindPercent, compile(`(?:service\s+center\s+|center\s+)?utilization(?:\s+rate)?`)},
	{AvgLeadTimeDays, kindNumber, compile(`(?:average|avg\.?)\s+(?:scheduling\s+)?lead\s+time`)},
	{CustomerSatisfaction, kindPercent, compile(`customer\s+satisfaction(?:\s+(?:score|rate))?|csat`)},
	{NPS, kindNumber, compile(`net\s+promoter\s+score|\bnps\b`)},
	{DefectRate, kindPercent, compile(`defect\s+rate`)},
	{WarrantyClaims, kindCount, compile(`warranty\s+claims?`)},
	{EstimatedCostSavings, kindCurrency, compile(`(?:estimated\s+|projected\s+)?cost\s+savings?`)},
	{ROIPercent, kindPercent, compile(`\broi\b|return\s+on\s+investment`)},
	{FleetAvailability, kindPercent, compile(`fleet\s+availability`)},
}

// Extract runs every pattern against the raw report text. The result always
// contains every metric name; unmatched metrics stay nil.
func Extract(raw string) Values {
	out := make(Values, len(patterns))
	for _, p := range patterns {
		out[p.name] = nil
		match := p.re.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		snippet := match[len(match)-1]
		switch p.kind {
		case kindPercent:
			out[p.name] = numeric.NullablePercent(snippet)
		default:
			out[p.name] = numeric.NullableFloat(snippet)
		}
	}
	return out
}

// Names returns the known metric names in pattern order, for diagnostics and
// tests.
func Names() []string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.name
	}
	return names
}
