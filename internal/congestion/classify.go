// Package congestion derives display-ready structures from a terminal
// forecast: severity bands, per-zone projections, the heatmap grid and the
// chart rows.
package congestion

// Band is one of the five utilization severity bands, ordered from Low to
// Critical.
type Band int

const (
	BandLow Band = iota
	BandNormal
	BandMedium
	BandHigh
	BandCritical
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "Low"
	case BandNormal:
		return "Normal"
	case BandMedium:
		return "Medium"
	case BandHigh:
		return "High"
	case BandCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Color is the fill colour of the band.
func (b Band) Color() string {
	switch b {
	case BandCritical:
		return "#ef4444"
	case BandHigh:
		return "#f97316"
	case BandMedium:
		return "#eab308"
	case BandNormal:
		return "#84cc16"
	default:
		return "#22c55e"
	}
}

func (b Band) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Marker flags extreme values. Its ladder is separate from the band ladder.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerRising
	MarkerWarning
	MarkerFire
)

// Glyph is the symbol drawn next to a cell value.
func (m Marker) Glyph() string {
	switch m {
	case MarkerFire:
		return "🔥"
	case MarkerWarning:
		return "⚠️"
	case MarkerRising:
		return "📈"
	default:
		return ""
	}
}

func (m Marker) String() string {
	switch m {
	case MarkerFire:
		return "fire"
	case MarkerWarning:
		return "warning"
	case MarkerRising:
		return "rising"
	default:
		return "none"
	}
}

func (m Marker) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Classification is the result of Classify. Value keeps the caller's input
// unclamped so over-capacity figures can still be displayed.
type Classification struct {
	Value  float64 `json:"value"`
	Band   Band    `json:"band"`
	Color  string  `json:"color"`
	Marker Marker  `json:"marker"`
}

// Classify maps a utilization percentage to its band, colour and marker.
// It is total: negative values and NaN fall into BandLow with no marker.
func Classify(utilization float64) Classification {
	b := BandFor(utilization)
	return Classification{
		Value:  utilization,
		Band:   b,
		Color:  b.Color(),
		Marker: MarkerFor(utilization),
	}
}

// BandFor evaluates the band ladder highest-first with exclusive lower
// bounds.
func BandFor(utilization float64) Band {
	switch {
	case utilization > 90:
		return BandCritical
	case utilization > 75:
		return BandHigh
	case utilization > 50:
		return BandMedium
	case utilization > 25:
		return BandNormal
	default:
		return BandLow
	}
}

func MarkerFor(utilization float64) Marker {
	switch {
	case utilization > 95:
		return MarkerFire
	case utilization > 90:
		return MarkerWarning
	case utilization > 80:
		return MarkerRising
	default:
		return MarkerNone
	}
}

// LegendEntry describes one band for the heatmap legend.
type LegendEntry struct {
	Band  Band    `json:"band"`
	Color string  `json:"color"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Legend lists the five bands in ascending order. The Critical entry is
// open-ended; Max is only the nominal top of the scale.
func Legend() []LegendEntry {
	return []LegendEntry{
		{Band: BandLow, Color: BandLow.Color(), Label: "0-25% Low", Min: 0, Max: 25},
		{Band: BandNormal, Color: BandNormal.Color(), Label: "25-50% Normal", Min: 25, Max: 50},
		{Band: BandMedium, Color: BandMedium.Color(), Label: "50-75% Medium", Min: 50, Max: 75},
		{Band: BandHigh, Color: BandHigh.Color(), Label: "75-90% High", Min: 75, Max: 90},
		{Band: BandCritical, Color: BandCritical.Color(), Label: "90%+ Critical", Min: 90, Max: 100},
	}
}
