package congestion

import (
	"fmt"
	"time"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
	"github.com/airflow-ai/congestion-dashboard/internal/reveal"
)

type Cell struct {
	Zone      string           `json:"zone"`
	ZoneIndex int              `json:"zone_index"`
	TimeIndex int              `json:"time_index"`
	TimeLabel string           `json:"time_label"`
	Percent   float64          `json:"percent"`
	Band      Band             `json:"band"`
	Color     string           `json:"color"`
	Marker    Marker           `json:"marker"`
	Risk      domain.RiskLevel `json:"risk"`
	DelayMS   int64            `json:"delay_ms"`
	Revealed  bool             `json:"revealed"`
}

// Value is the cell caption, rounded to a whole percent.
func (c Cell) Value() string { return fmt.Sprintf("%.0f%%", c.Percent) }

func (c Cell) Glyph() string { return c.Marker.Glyph() }

func (c Cell) Tooltip() string {
	return fmt.Sprintf("%s at %s\n%.1f%% capacity\nRisk: %s", c.Zone, c.TimeLabel, c.Percent, c.Risk)
}

type HeatmapRow struct {
	Zone  domain.Zone `json:"zone"`
	Cells []Cell      `json:"cells"`
}

// Heatmap is the zone x time grid for the first HorizonSlots forecast
// points. A new Heatmap is built for every forecast; only the Revealed flags
// change afterwards.
type Heatmap struct {
	TimeSlots []string       `json:"time_slots"`
	Rows      []HeatmapRow   `json:"rows"`
	Legend    []LegendEntry  `json:"legend"`
	Schedule  []reveal.Entry `json:"-"`
}

// BuildHeatmap projects every (zone, slot) pair, classifies the projected
// value and attaches the reveal delay for the cell.
func BuildHeatmap(f domain.Forecast, zones []domain.Zone, step time.Duration, loc *time.Location) Heatmap {
	window := f.Window(HorizonSlots)
	projected := ProjectForecast(window, zones)

	slots := make([]string, len(window))
	for t, p := range window {
		slots[t] = HeatmapLabel(p.Timestamp, loc)
	}

	schedule := reveal.Schedule(len(zones), len(window), step)

	rows := make([]HeatmapRow, len(zones))
	for z, zone := range zones {
		cells := make([]Cell, len(window))
		for t, p := range window {
			pct := projected[z][t]
			cls := Classify(pct)
			cells[t] = Cell{
				Zone:      zone.Name,
				ZoneIndex: z,
				TimeIndex: t,
				TimeLabel: slots[t],
				Percent:   pct,
				Band:      cls.Band,
				Color:     cls.Color,
				Marker:    cls.Marker,
				Risk:      p.RiskLevel,
				DelayMS:   schedule[z*len(window)+t].Delay.Milliseconds(),
			}
		}
		rows[z] = HeatmapRow{Zone: zone, Cells: cells}
	}

	return Heatmap{
		TimeSlots: slots,
		Rows:      rows,
		Legend:    Legend(),
		Schedule:  schedule,
	}
}

// CellCount is zones x slots.
func (h Heatmap) CellCount() int {
	if len(h.Rows) == 0 {
		return 0
	}
	return len(h.Rows) * len(h.TimeSlots)
}

// Reveal marks cell (zone, slot) as revealed and reports whether it
// changed. Out-of-range indices panic.
func (h *Heatmap) Reveal(zone, slot int) bool {
	c := &h.Rows[zone].Cells[slot]
	if c.Revealed {
		return false
	}
	c.Revealed = true
	return true
}

// RevealedCount counts cells already disclosed.
func (h Heatmap) RevealedCount() int {
	n := 0
	for _, r := range h.Rows {
		for _, c := range r.Cells {
			if c.Revealed {
				n++
			}
		}
	}
	return n
}

// Clone copies the grid so the copy can be read while the original keeps
// being revealed.
func (h Heatmap) Clone() Heatmap {
	out := Heatmap{
		TimeSlots: h.TimeSlots,
		Legend:    h.Legend,
		Schedule:  h.Schedule,
		Rows:      make([]HeatmapRow, len(h.Rows)),
	}
	for i, r := range h.Rows {
		cells := make([]Cell, len(r.Cells))
		copy(cells, r.Cells)
		out.Rows[i] = HeatmapRow{Zone: r.Zone, Cells: cells}
	}
	return out
}
