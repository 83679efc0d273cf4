package cloud

import (
	"strings"
	"testing"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

func TestCriticalAlert(t *testing.T) {
	res := &domain.AnalysisResult{
		CurrentMetrics: domain.CurrentMetrics{CCTVCount: 930, TerminalCapacity: 1000, UtilizationRate: 93},
		Forecast: domain.Forecast{
			{Timestamp: "2024-05-01T10:00:00", UtilizationRate: 94},
			{Timestamp: "2024-05-01T10:15:00", UtilizationRate: 98.5},
		},
		RiskLevel:       domain.RiskCritical,
		Recommendations: []string{"Open all security lanes", "Deploy floor staff"},
	}

	subject, body := CriticalAlert("run-1", res)
	if subject != "Terminal congestion CRITICAL" {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, want := range []string{"Run: run-1", "930 / 1000", "Utilization: 93.0%", "Peak forecast: 98.5% at 2024-05-01T10:15:00", "2. Deploy floor staff"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}
