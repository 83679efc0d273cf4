package web

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/airflow-ai/congestion-dashboard/internal/congestion"
)

// ErrNoChartData is returned when a chart has too few points to draw.
var ErrNoChartData = errors.New("not enough data to plot")

const (
	chartWidth  = 900
	chartHeight = 300
	maxXTicks   = 12
)

func seriesStyle(stroke, fill string) chart.Style {
	st := chart.Style{
		StrokeColor: drawing.ColorFromHex(stroke),
		StrokeWidth: 2,
	}
	if fill != "" {
		st.FillColor = drawing.ColorFromHex(fill)
	}
	return st
}

// timeTicks labels at most maxXTicks evenly spaced rows.
func timeTicks(rows []congestion.ChartRow) []chart.Tick {
	every := int(math.Ceil(float64(len(rows)) / maxXTicks))
	if every < 1 {
		every = 1
	}
	ticks := make([]chart.Tick, 0, maxXTicks+1)
	for i := 0; i < len(rows); i += every {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: rows[i].Time})
	}
	return ticks
}

func indexes(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// RenderForecastChart draws the predicted count with its confidence band.
func RenderForecastChart(w io.Writer, rows []congestion.ChartRow) error {
	if len(rows) < 2 {
		return ErrNoChartData
	}
	xs := indexes(len(rows))
	upper := make([]float64, len(rows))
	predicted := make([]float64, len(rows))
	lower := make([]float64, len(rows))
	top := 0.0
	for i, r := range rows {
		upper[i] = float64(r.ConfidenceUpper)
		predicted[i] = float64(r.PredictedCount)
		lower[i] = float64(r.ConfidenceLower)
		top = math.Max(top, math.Max(upper[i], predicted[i]))
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.Chart{
		Title:  "Predicted Passenger Count",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Ticks: timeTicks(rows)},
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Upper Bound", XValues: xs, YValues: upper, Style: seriesStyle("93c5fd", "dbeafe")},
			chart.ContinuousSeries{Name: "Predicted Count", XValues: xs, YValues: predicted, Style: seriesStyle("3b82f6", "60a5fa")},
			chart.ContinuousSeries{Name: "Lower Bound", XValues: xs, YValues: lower, Style: seriesStyle("93c5fd", "dbeafe")},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}

// RenderUtilizationChart draws utilization on a fixed 0-100 axis. Values
// above 100 are drawn as supplied.
func RenderUtilizationChart(w io.Writer, rows []congestion.ChartRow) error {
	if len(rows) < 2 {
		return ErrNoChartData
	}
	ys := make([]float64, len(rows))
	top := 100.0
	for i, r := range rows {
		ys[i] = r.Utilization
		top = math.Max(top, r.Utilization)
	}
	st := seriesStyle("8b5cf6", "")
	st.DotWidth = 3
	st.DotColor = drawing.ColorFromHex("8b5cf6")

	graph := chart.Chart{
		Title:  "Terminal Utilization Rate (%)",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Ticks: timeTicks(rows)},
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Utilization %", XValues: indexes(len(rows)), YValues: ys, Style: st},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}

// RenderRiskChart draws the risk-level histogram.
func RenderRiskChart(w io.Writer, hist []congestion.RiskCount) error {
	if len(hist) == 0 {
		return ErrNoChartData
	}
	bars := make([]chart.Value, 0, len(hist))
	top := 0
	for _, h := range hist {
		if h.Count > top {
			top = h.Count
		}
		color := drawing.ColorFromHex(h.Level.Color()[1:])
		bars = append(bars, chart.Value{
			Label: string(h.Level),
			Value: float64(h.Count),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	bc := chart.BarChart{
		Title:      "Risk Level Distribution",
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   60,
		BarSpacing: 40,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(top)}},
		Bars:       bars,
	}
	return bc.Render(chart.SVG, w)
}
