package congestion

import (
	"math"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

// HorizonSlots is the number of forecast points projected onto zones:
// three hours at 15-minute spacing.
const HorizonSlots = 12

// ProjectZone scales the terminal-wide utilization by the zone multiplier
// and clamps the result to [0, 100].
func ProjectZone(baseUtilization float64, zone domain.Zone) float64 {
	return clamp(baseUtilization*zone.Multiplier, 0, 100)
}

// ProjectForecast returns one row per zone with a projected percentage for
// each point in the first HorizonSlots points of f.
func ProjectForecast(f domain.Forecast, zones []domain.Zone) [][]float64 {
	window := f.Window(HorizonSlots)
	out := make([][]float64, len(zones))
	for z, zone := range zones {
		row := make([]float64, len(window))
		for t, p := range window {
			row[t] = ProjectZone(p.UtilizationRate, zone)
		}
		out[z] = row
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
