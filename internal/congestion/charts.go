package congestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

// ChartRow feeds the passenger-count area chart and the utilization line
// chart.
type ChartRow struct {
	Time            string           `json:"time"`
	PredictedCount  int              `json:"predicted_count"`
	Utilization     float64          `json:"utilization"`
	ConfidenceLower int              `json:"confidence_lower"`
	ConfidenceUpper int              `json:"confidence_upper"`
	Risk            domain.RiskLevel `json:"risk"`
}

type RiskCount struct {
	Level domain.RiskLevel `json:"level"`
	Count int              `json:"count"`
}

type DetailRow struct {
	Time            string           `json:"time"`
	PredictedCount  int              `json:"predicted_count"`
	Utilization     string           `json:"utilization"`
	Risk            domain.RiskLevel `json:"risk"`
	Badge           string           `json:"badge"`
	ConfidenceRange string           `json:"confidence_range"`
}

type Charts struct {
	Rows      []ChartRow  `json:"rows"`
	Histogram []RiskCount `json:"histogram"`
	Detail    []DetailRow `json:"detail"`
}

// ComposeCharts reshapes the whole forecast into chart rows and the risk
// histogram. The detail table only covers the first HorizonSlots points.
func ComposeCharts(f domain.Forecast, loc *time.Location) Charts {
	return Charts{
		Rows:      ChartRows(f, loc),
		Histogram: RiskHistogram(f),
		Detail:    DetailRows(f, loc),
	}
}

func ChartRows(f domain.Forecast, loc *time.Location) []ChartRow {
	rows := make([]ChartRow, 0, len(f))
	for _, p := range f {
		rows = append(rows, ChartRow{
			Time:            ChartLabel(p.Timestamp, loc),
			PredictedCount:  p.PredictedCount,
			Utilization:     p.UtilizationRate,
			ConfidenceLower: p.ConfidenceInterval.Lower,
			ConfidenceUpper: p.ConfidenceInterval.Upper,
			Risk:            p.RiskLevel,
		})
	}
	return rows
}

// RiskHistogram counts points per risk level in order of first occurrence.
// Levels that never occur are omitted.
func RiskHistogram(f domain.Forecast) []RiskCount {
	out := make([]RiskCount, 0, 4)
	index := make(map[domain.RiskLevel]int, 4)
	for _, p := range f {
		i, ok := index[p.RiskLevel]
		if !ok {
			i = len(out)
			index[p.RiskLevel] = i
			out = append(out, RiskCount{Level: p.RiskLevel})
		}
		out[i].Count++
	}
	return out
}

func DetailRows(f domain.Forecast, loc *time.Location) []DetailRow {
	window := f.Window(HorizonSlots)
	rows := make([]DetailRow, 0, len(window))
	for _, p := range window {
		rows = append(rows, DetailRow{
			Time:            ChartLabel(p.Timestamp, loc),
			PredictedCount:  p.PredictedCount,
			Utilization:     fmt.Sprintf("%.1f%%", p.UtilizationRate),
			Risk:            p.RiskLevel,
			Badge:           strings.ToLower(string(p.RiskLevel)),
			ConfidenceRange: fmt.Sprintf("%d - %d", p.ConfidenceInterval.Lower, p.ConfidenceInterval.Upper),
		})
	}
	return rows
}
