package main

import (
	"strings"
	"testing"
	"time"

	"github.com/airflow-ai/congestion-dashboard/internal/congestion"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

func TestRenderListsZonesAndLegend(t *testing.T) {
	f := domain.Forecast{
		{Timestamp: "2024-05-01T15:00:00Z", UtilizationRate: 50, RiskLevel: domain.RiskMedium},
		{Timestamp: "2024-05-01T16:00:00Z", UtilizationRate: 95, RiskLevel: domain.RiskCritical},
	}
	h := congestion.BuildHeatmap(f, domain.DefaultZones(), 0, time.UTC)
	out := render(h, domain.RiskCritical)

	for _, want := range []string{"CRITICAL", "3 PM", "4 PM", "90%+ Critical", "0-25% Low"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, z := range domain.DefaultZones() {
		if !strings.Contains(out, z.Name) {
			t.Errorf("output missing zone %q", z.Name)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	h := congestion.BuildHeatmap(nil, domain.DefaultZones(), 0, time.UTC)
	if got := render(h, domain.RiskLow); got != "No forecast data." {
		t.Fatalf("got %q", got)
	}
}
