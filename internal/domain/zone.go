package domain

// Zone scales terminal-wide utilization to one physical area.
type Zone struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

var defaultZones = [...]Zone{
	{Name: "Security Checkpoints", Multiplier: 1.2},
	{Name: "Check-in Counters", Multiplier: 0.9},
	{Name: "Departure Gates", Multiplier: 1.0},
	{Name: "Arrival Hall", Multiplier: 0.7},
	{Name: "Baggage Claim", Multiplier: 0.8},
}

// DefaultZones returns a copy of the fixed terminal zone catalog.
func DefaultZones() []Zone {
	out := make([]Zone, len(defaultZones))
	copy(out, defaultZones[:])
	return out
}
