package classify

import "testing"

func TestClassifyContextBeatsHeaders(t *testing.T) {
	// Headers point at fleet, heading points at engagement: heading text is
	// curated, so it wins.
	tag := Classify([]string{"Vehicle ID", "Health Score"}, "customer engagement")
	if tag != TagEngagement {
		t.Fatalf("expected engagement, got %s", tag)
	}
}

func TestClassifyFallsBackToHeaders(t *testing.T) {
	tag := Classify([]string{"VIN", "Odometer"}, "weekly summary")
	if tag != TagFleet {
		t.Fatalf("expected fleet from headers, got %s", tag)
	}
}

func TestClassifyFirstMatchingRuleWins(t *testing.T) {
	// Both failure and engagement header keywords are present; the failures
	// rule is earlier in the list.
	tag := Classify([]string{"Risk", "Customer"}, "")
	if tag != TagFailures {
		t.Fatalf("expected failures to win the tie, got %s", tag)
	}
}

func TestClassifyKPIsMatchOnContextOnly(t *testing.T) {
	if tag := Classify([]string{"Metric", "Value"}, "executive summary"); tag != TagKPIs {
		t.Fatalf("expected kpis from context, got %s", tag)
	}
	// Generic metric/value headers alone carry no signal.
	if tag := Classify([]string{"Metric", "Value"}, ""); tag != TagUnknown {
		t.Fatalf("expected unknown without kpi context, got %s", tag)
	}
}

func TestClassifyUnknown(t *testing.T) {
	if tag := Classify([]string{"Topic", "Remarks"}, "random section"); tag != TagUnknown {
		t.Fatalf("expected unknown, got %s", tag)
	}
	if tag := Classify(nil, ""); tag != TagUnknown {
		t.Fatalf("expected unknown for empty input, got %s", tag)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	if tag := Classify([]string{"SYSTEM", "STATUS"}, ""); tag != TagSystems {
		t.Fatalf("expected systems, got %s", tag)
	}
	if tag := Classify(nil, "FLEET HEALTH OVERVIEW"); tag != TagFleet {
		t.Fatalf("expected fleet, got %s", tag)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	headers := []string{"Component", "Risk Level", "Probability"}
	first := Classify(headers, "failure predictions")
	for i := 0; i < 10; i++ {
		if got := Classify(headers, "failure predictions"); got != first {
			t.Fatalf("classification changed between runs: %s then %s", first, got)
		}
	}
}
