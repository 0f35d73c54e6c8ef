// Package report defines the fixed-shape snapshot consumed by rendering code
// and the single-pass builder that assembles it from classified tables and
// extracted metrics. Every numeric leaf is nullable and every collection
// leaf is a possibly-empty list; renderers must tolerate any leaf being
// absent.
package report

import "github.com/goliatone/go-insights/internal/tables"

// Snapshot is the JSON-serializable output envelope. A fresh snapshot is
// built per document; it is never mutated in place from a previous run.
type Snapshot struct {
	ID          string `json:"id,omitempty"`
	GeneratedAt string `json:"generated_at"`
	Title       string `json:"title,omitempty"`

	FleetMetrics         FleetMetrics         `json:"fleet_metrics"`
	SystemMonitoring     SystemMonitoring     `json:"system_monitoring"`
	FailurePredictions   FailurePredictions   `json:"failure_predictions"`
	Engagement           Engagement           `json:"engagement"`
	Scheduling           Scheduling           `json:"scheduling"`
	Quality              Quality              `json:"quality"`
	Manufacturing        Manufacturing        `json:"manufacturing"`
	BusinessIntelligence BusinessIntelligence `json:"business_intelligence"`

	// Extras preserves unclassified tables so no table is ever silently
	// discarded; renderers show them as generic sections.
	Extras []ExtraSection `json:"extras"`
}

// FleetMetrics covers fleet-wide health. CriticalCount and WarningCount are
// derived from the vehicle rows after all tables merge and stay nil when no
// fleet table exists in the document.
type FleetMetrics struct {
	FleetHealthScore  *float64     `json:"fleet_health_score"`
	VehiclesMonitored *float64     `json:"vehicles_monitored"`
	ActiveAlerts      *float64     `json:"active_alerts"`
	DataQualityScore  *float64     `json:"data_quality_score"`
	Vehicles          []tables.Row `json:"vehicles"`
	CriticalCount     *float64     `json:"critical_count"`
	WarningCount      *float64     `json:"warning_count"`
}

// SystemMonitoring lists per-system rows (engine, brakes, battery, ...).
type SystemMonitoring struct {
	Systems []tables.Row `json:"systems"`
}

// FailurePredictions covers the diagnosis output. HighRiskCount is derived.
type FailurePredictions struct {
	PredictionAccuracy   *float64     `json:"prediction_accuracy"`
	ComponentFailureRate *float64     `json:"component_failure_rate"`
	Predictions          []tables.Row `json:"predictions"`
	HighRiskCount        *float64     `json:"high_risk_count"`
}

// Engagement covers customer notification outcomes.
type Engagement struct {
	NotificationsSent *float64     `json:"notifications_sent"`
	ResponseRate      *float64     `json:"response_rate"`
	EngagementScore   *float64     `json:"engagement_score"`
	Customers         []tables.Row `json:"customers"`
}

// Scheduling covers appointment booking and service center load.
type Scheduling struct {
	AppointmentsScheduled    *float64     `json:"appointments_scheduled"`
	ServiceCenterUtilization *float64     `json:"service_center_utilization"`
	AvgLeadTimeDays          *float64     `json:"avg_lead_time_days"`
	Appointments             []tables.Row `json:"appointments"`
}

// Quality covers post-service feedback.
type Quality struct {
	CustomerSatisfaction *float64     `json:"customer_satisfaction"`
	FeedbackResponseRate *float64     `json:"feedback_response_rate"`
	NPS                  *float64     `json:"nps"`
	Feedback             []tables.Row `json:"feedback"`
}

// Manufacturing covers defect and warranty insight.
type Manufacturing struct {
	DefectRate      *float64     `json:"defect_rate"`
	WarrantyClaims  *float64     `json:"warranty_claims"`
	RecurringIssues []tables.Row `json:"recurring_issues"`
}

// BusinessIntelligence covers the executive dashboard figures.
type BusinessIntelligence struct {
	EstimatedCostSavings *float64     `json:"estimated_cost_savings"`
	ROIPercent           *float64     `json:"roi_percent"`
	FleetAvailability    *float64     `json:"fleet_availability"`
	KPIs                 []tables.Row `json:"kpis"`
}

// ExtraSection keeps an unclassified table addressable by a slug of its
// heading context.
type ExtraSection struct {
	Section string       `json:"section"`
	Headers []string     `json:"headers"`
	Rows    []tables.Row `json:"rows"`
}

// NewSnapshot returns a snapshot with every leaf at its null/empty default.
// List fields are non-nil so they serialize as [] rather than null.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		FleetMetrics:         FleetMetrics{Vehicles: []tables.Row{}},
		SystemMonitoring:     SystemMonitoring{Systems: []tables.Row{}},
		FailurePredictions:   FailurePredictions{Predictions: []tables.Row{}},
		Engagement:           Engagement{Customers: []tables.Row{}},
		Scheduling:           Scheduling{Appointments: []tables.Row{}},
		Quality:              Quality{Feedback: []tables.Row{}},
		Manufacturing:        Manufacturing{RecurringIssues: []tables.Row{}},
		BusinessIntelligence: BusinessIntelligence{KPIs: []tables.Row{}},
		Extras:               []ExtraSection{},
	}
}
