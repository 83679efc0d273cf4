package congestion

import (
	"math"
	"testing"
)

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		in     float64
		band   Band
		color  string
		marker Marker
	}{
		{-10, BandLow, "#22c55e", MarkerNone},
		{0, BandLow, "#22c55e", MarkerNone},
		{25, BandLow, "#22c55e", MarkerNone},
		{25.01, BandNormal, "#84cc16", MarkerNone},
		{50, BandNormal, "#84cc16", MarkerNone},
		{50.5, BandMedium, "#eab308", MarkerNone},
		{75, BandMedium, "#eab308", MarkerNone},
		{76, BandHigh, "#f97316", MarkerNone},
		{80, BandHigh, "#f97316", MarkerNone},
		{81, BandHigh, "#f97316", MarkerRising},
		{90, BandHigh, "#f97316", MarkerRising},
		{90.5, BandCritical, "#ef4444", MarkerWarning},
		{95, BandCritical, "#ef4444", MarkerWarning},
		{96, BandCritical, "#ef4444", MarkerFire},
		{120, BandCritical, "#ef4444", MarkerFire},
	}
	for _, tc := range cases {
		got := Classify(tc.in)
		if got.Band != tc.band || got.Color != tc.color || got.Marker != tc.marker {
			t.Fatalf("Classify(%v) = %+v, want band=%s color=%s marker=%s", tc.in, got, tc.band, tc.color, tc.marker)
		}
		if got.Value != tc.in {
			t.Fatalf("Classify(%v) must keep the raw value, got %v", tc.in, got.Value)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prevBand, prevMarker := BandLow, MarkerNone
	for u := -20.0; u <= 150; u += 0.25 {
		c := Classify(u)
		if c.Band < prevBand {
			t.Fatalf("band decreased at %v: %s -> %s", u, prevBand, c.Band)
		}
		if c.Marker < prevMarker {
			t.Fatalf("marker decreased at %v: %s -> %s", u, prevMarker, c.Marker)
		}
		if c.Band < BandLow || c.Band > BandCritical {
			t.Fatalf("band out of range at %v: %d", u, c.Band)
		}
		prevBand, prevMarker = c.Band, c.Marker
	}
}

func TestClassifyNaN(t *testing.T) {
	c := Classify(math.NaN())
	if c.Band != BandLow || c.Marker != MarkerNone {
		t.Fatalf("NaN should classify as Low with no marker, got %+v", c)
	}
}

func TestMarkerGlyphs(t *testing.T) {
	if MarkerFor(97).Glyph() != "🔥" || MarkerFor(92).Glyph() != "⚠️" || MarkerFor(85).Glyph() != "📈" || MarkerFor(10).Glyph() != "" {
		t.Fatalf("unexpected glyph ladder")
	}
}

func TestLegend(t *testing.T) {
	l := Legend()
	if len(l) != 5 {
		t.Fatalf("expected five legend entries, got %d", len(l))
	}
	wantLabels := []string{"0-25% Low", "25-50% Normal", "50-75% Medium", "75-90% High", "90%+ Critical"}
	for i, e := range l {
		if e.Label != wantLabels[i] {
			t.Fatalf("legend %d: got %q want %q", i, e.Label, wantLabels[i])
		}
		if e.Color != e.Band.Color() {
			t.Fatalf("legend %d colour mismatch", i)
		}
		if i > 0 && e.Min != l[i-1].Max {
			t.Fatalf("legend ranges must be contiguous at %d", i)
		}
	}
}
