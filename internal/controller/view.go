package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/airflow-ai/congestion-dashboard/internal/congestion"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

// Summary feeds the metric cards above the charts.
type Summary struct {
	CurrentPassengers int                       `json:"current_passengers"`
	TerminalCapacity  int                       `json:"terminal_capacity"`
	Utilization       string                    `json:"utilization"`
	UtilizationClass  congestion.Classification `json:"utilization_class"`
	RiskLevel         domain.RiskLevel          `json:"risk_level"`
	RiskColor         string                    `json:"risk_color"`
	Insights          []string                  `json:"insights"`
	Recommendations   []string                  `json:"recommendations"`
}

// View holds everything derived from one AnalysisResult. It is rebuilt from
// scratch for every result and swapped in whole.
type View struct {
	RunID      string                 `json:"run_id"`
	Generation uint64                 `json:"generation"`
	ReceivedAt time.Time              `json:"received_at"`
	Summary    Summary                `json:"summary"`
	Heatmap    congestion.Heatmap     `json:"heatmap"`
	Charts     congestion.Charts      `json:"charts"`
	Result     *domain.AnalysisResult `json:"result"`
}

func buildView(res *domain.AnalysisResult, zones []domain.Zone, step time.Duration, loc *time.Location) *View {
	m := res.CurrentMetrics
	return &View{
		Summary: Summary{
			CurrentPassengers: m.CCTVCount,
			TerminalCapacity:  m.TerminalCapacity,
			Utilization:       fmt.Sprintf("%.1f%%", m.UtilizationRate),
			UtilizationClass:  congestion.Classify(m.UtilizationRate),
			RiskLevel:         res.RiskLevel,
			RiskColor:         res.RiskLevel.Color(),
			Insights:          strings.Split(res.InsightsText, "\n"),
			Recommendations:   res.Recommendations,
		},
		Heatmap: congestion.BuildHeatmap(res.Forecast, zones, step, loc),
		Charts:  congestion.ComposeCharts(res.Forecast, loc),
		Result:  res,
	}
}

func (v *View) clone() *View {
	if v == nil {
		return nil
	}
	cp := *v
	cp.Heatmap = v.Heatmap.Clone()
	return &cp
}
