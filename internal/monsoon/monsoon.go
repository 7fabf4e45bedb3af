// Package monsoon provides the cyclical wind-season state machine that
// governs voyage favorability across the trade network.
package monsoon

import "fmt"

// Wind is the prevailing wind season.
type Wind uint8

const (
	WindNortheast Wind = iota
	WindSouthwest
	WindCalm
)

// String returns the wind season label used in results and the API.
func (w Wind) String() string {
	switch w {
	case WindNortheast:
		return "northeast"
	case WindSouthwest:
		return "southwest"
	case WindCalm:
		return "calm"
	default:
		return "unknown"
	}
}

// ParseWind converts a wind label back to its Wind value.
func ParseWind(s string) (Wind, error) {
	switch s {
	case "northeast":
		return WindNortheast, nil
	case "southwest":
		return WindSouthwest, nil
	case "calm":
		return WindCalm, nil
	default:
		return 0, fmt.Errorf("unknown wind season %q", s)
	}
}

// Model is the monsoon state machine. The cycle counter only ever grows;
// the wind label is derived from it on each advance. A fresh model starts
// at cycle 0 with the northeast monsoon blowing.
type Model struct {
	cycle uint64
	wind  Wind
}

// NewModel returns a model in its initial state.
func NewModel() *Model {
	return &Model{cycle: 0, wind: WindNortheast}
}

// Advance moves the machine one season forward. The label follows the
// six-step cycle: 0 northeast, 3 southwest, 2 and 5 calm. Remainders 1
// and 4 assign nothing, so the prior directional wind holds for one
// extra step before the calm window. Season histories depend on this
// exact sequence.
func (m *Model) Advance() {
	m.cycle++
	switch m.cycle % 6 {
	case 0:
		m.wind = WindNortheast
	case 3:
		m.wind = WindSouthwest
	case 2, 5:
		m.wind = WindCalm
	}
}

// Wind returns the current wind season.
func (m *Model) Wind() Wind {
	return m.wind
}

// Cycle returns the number of advances since creation or reset.
func (m *Model) Cycle() uint64 {
	return m.cycle
}

// Reset restores the initial state: cycle 0, northeast wind.
func (m *Model) Reset() {
	m.cycle = 0
	m.wind = WindNortheast
}
