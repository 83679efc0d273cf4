// Package reveal computes and plays back the staggered disclosure of a
// zone x time grid.
package reveal

import "time"

// Entry reveals cell (Zone, Slot) Delay after the schedule starts.
type Entry struct {
	Zone  int           `json:"zone"`
	Slot  int           `json:"slot"`
	Delay time.Duration `json:"delay"`
}

// Schedule orders cells row-major: the first zone's row is fully revealed
// before the next zone starts. Cell (z, t) gets delay (z*slots + t) * step.
func Schedule(zones, slots int, step time.Duration) []Entry {
	if zones <= 0 || slots <= 0 {
		return nil
	}
	out := make([]Entry, 0, zones*slots)
	for z := 0; z < zones; z++ {
		for t := 0; t < slots; t++ {
			out = append(out, Entry{
				Zone:  z,
				Slot:  t,
				Delay: time.Duration(z*slots+t) * step,
			})
		}
	}
	return out
}
