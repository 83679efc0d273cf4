package congestion

import "time"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

const invalidLabel = "--"

// ParseTimestamp accepts ISO-8601 timestamps with or without a zone offset.
// Timestamps without an offset are read as wall-clock time in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// HeatmapLabel formats a slot header as a 12-hour, hour-only label ("3 PM").
func HeatmapLabel(ts string, loc *time.Location) string {
	t, ok := ParseTimestamp(ts, loc)
	if !ok {
		return invalidLabel
	}
	return t.Format("3 PM")
}

// ChartLabel formats a chart axis label as 24-hour "HH:MM".
func ChartLabel(ts string, loc *time.Location) string {
	t, ok := ParseTimestamp(ts, loc)
	if !ok {
		return invalidLabel
	}
	return t.Format("15:04")
}
