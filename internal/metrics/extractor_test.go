package metrics

import "testing"

const sampleReport = `# Weekly Fleet Report

## Executive Summary

- Overall Fleet Health: 87%
- Vehicles Monitored: 1,250
- Active Alerts: 23
- Data Quality Score: 0.94

## Failure Predictions

Prediction Accuracy - 92.5%

## Customer Engagement

- Notifications Sent: 340
- Response Rate: 68%
- Feedback Response Rate: 0.42

## Business Impact

Estimated Cost Savings: $2,500-$3,200
Average Lead Time: 4.5 days
`

func mustValue(t *testing.T, values Values, name string) float64 {
	t.Helper()
	v, ok := values[name]
	if !ok {
		t.Fatalf("metric %q missing from values map", name)
	}
	if v == nil {
		t.Fatalf("metric %q is nil", name)
	}
	return *v
}

func TestExtractProseMetrics(t *testing.T) {
	values := Extract(sampleReport)

	expected := map[string]float64{
		FleetHealthScore:     87,
		VehiclesMonitored:    1250,
		ActiveAlerts:         23,
		DataQualityScore:     94,
		PredictionAccuracy:   92.5,
		NotificationsSent:    340,
		ResponseRate:         68,
		FeedbackResponseRate: 42,
		EstimatedCostSavings: 3200,
		AvgLeadTimeDays:      4.5,
	}
	for name, want := range expected {
		if got := mustValue(t, values, name); got != want {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestExtractAbsentMetricsStayNil(t *testing.T) {
	values := Extract(sampleReport)

	for _, name := range []string{NPS, DefectRate, WarrantyClaims, ROIPercent, FleetAvailability, CustomerSatisfaction} {
		v, ok := values[name]
		if !ok {
			t.Fatalf("metric %q missing from values map", name)
		}
		if v != nil {
			t.Fatalf("metric %q = %v, want nil for absent data", name, *v)
		}
	}
}

func TestExtractEmptyDocumentFillsEveryName(t *testing.T) {
	values := Extract("")
	if len(values) != len(Names()) {
		t.Fatalf("expected %d entries, got %d", len(Names()), len(values))
	}
	for name, v := range values {
		if v != nil {
			t.Fatalf("metric %q = %v on empty input", name, *v)
		}
	}
}

func TestExtractFeedbackRateDoesNotShadowResponseRate(t *testing.T) {
	doc := "Feedback Response Rate: 42%\n"
	values := Extract(doc)

	if got := mustValue(t, values, FeedbackResponseRate); got != 42 {
		t.Fatalf("feedback response rate = %v, want 42", got)
	}
	if values[ResponseRate] != nil {
		t.Fatalf("response rate = %v, want nil: feedback line must not leak", *values[ResponseRate])
	}
}

func TestExtractToleratesLabelPunctuation(t *testing.T) {
	for _, doc := range []string{
		"Fleet Health Score: 91%",
		"Fleet Health Score - 91",
		"fleet health score is 91",
		"**Fleet Health**: 91%",
	} {
		values := Extract(doc)
		if got := mustValue(t, values, FleetHealthScore); got != 91 {
			t.Fatalf("doc %q: fleet health = %v, want 91", doc, got)
		}
	}
}

func TestExtractRangeResolvesToUpperBound(t *testing.T) {
	values := Extract("Estimated Cost Savings: $2,500 - $3,200")
	if got := mustValue(t, values, EstimatedCostSavings); got != 3200 {
		t.Fatalf("cost savings = %v, want upper bound 3200", got)
	}
}
