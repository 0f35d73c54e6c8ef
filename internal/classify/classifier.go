// Package classify assigns each collected table to exactly one semantic
// category using a hand-written decision list: an ordered slice of keyword
// rules where the first satisfied rule wins. The order is the tie-break
// policy; new categories are inserted at a specific priority rather than
// appended.
package classify

import "strings"

// Tag is a table category drawn from a closed set.
type Tag string

const (
	TagFleet         Tag = "fleet"
	TagSystems       Tag = "systems"
	TagFailures      Tag = "failures"
	TagEngagement    Tag = "engagement"
	TagScheduling    Tag = "scheduling"
	TagQuality       Tag = "quality"
	TagManufacturing Tag = "manufacturing"
	TagKPIs          Tag = "kpis"
	TagUnknown       Tag = "unknown"
)

// Rule tests a table against one category. A rule with no header keywords
// matches on context only.
type Rule struct {
	Tag     Tag
	Context []string
	Headers []string
}

// Rules is evaluated top to bottom; the first match wins and later rules are
// not consulted. Exported so the tie-break order is a visible, testable data
// structure.
var Rules = []Rule{
	{
		Tag:     TagFleet,
		Context: []string{"fleet health", "fleet overview", "vehicle health", "fleet status", "fleet data"},
		Headers: []string{"vehicle id", "vin", "health score", "odometer"},
	},
	{
		Tag:     TagSystems,
		Context: []string{"system monitoring", "system status", "component status", "per-system", "telematics"},
		Headers: []string{"system", "component health", "sensor"},
	},
	{
		Tag:     TagFailures,
		Context: []string{"failure prediction", "predicted failures", "diagnosis", "risk assessment", "component failure"},
		Headers: []string{"failure", "risk", "probability", "predicted", "time to failure"},
	},
	{
		Tag:     TagEngagement,
		Context: []string{"customer engagement", "engagement", "notifications", "outreach", "alerts sent"},
		Headers: []string{"customer", "notification", "channel", "response"},
	},
	{
		Tag:     TagScheduling,
		Context: []string{"scheduling", "appointments", "service center", "maintenance schedule"},
		Headers: []string{"appointment", "scheduled", "service center", "slot", "technician"},
	},
	{
		Tag:     TagQuality,
		Context: []string{"feedback", "satisfaction", "service quality", "survey"},
		Headers: []string{"rating", "satisfaction", "feedback", "nps"},
	},
	{
		Tag:     TagManufacturing,
		Context: []string{"manufacturing", "warranty", "defect", "quality insights", "recurring issues"},
		Headers: []string{"defect", "warranty", "batch", "recall", "part number"},
	},
	{
		// KPI tables carry arbitrary metric/value columns, so headers are
		// useless as a signal here: context only.
		Tag:     TagKPIs,
		Context: []string{"kpi", "key performance", "business intelligence", "executive summary", "dashboard"},
	},
}

// Classify concatenates the header strings, lower-cases them together with
// the context, and applies the ordered rule list. Context keywords are
// evaluated in a full pass before any header keyword is consulted: heading
// text is author-curated while column names are noisy (a bare "Status"
// column appears in nearly every table), so the priority is explicit rather
// than incidental to rule ordering. Returns TagUnknown when no rule passes.
// Given fixed inputs the result is always the same; the classifier holds no
// state.
func Classify(headers []string, context string) Tag {
	headerText := strings.ToLower(strings.Join(headers, " "))
	contextText := strings.ToLower(strings.TrimSpace(context))

	for _, r := range Rules {
		if matchAny(contextText, r.Context) {
			return r.Tag
		}
	}
	for _, r := range Rules {
		if matchAny(headerText, r.Headers) {
			return r.Tag
		}
	}
	return TagUnknown
}

func matchAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
