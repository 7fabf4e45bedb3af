// Package config loads scenario files, the YAML descriptions of an
// archipelago: the island roster, curated passage factors, and the
// monsoon corridors a simulation is built from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talverin/tradewinds/internal/archipelago"
	"github.com/talverin/tradewinds/internal/monsoon"
)

// Scenario is one scenario file. Seed is optional; a nil seed defers to
// the command line or the clock.
type Scenario struct {
	Name      string          `yaml:"name"`
	Seed      *int64          `yaml:"seed,omitempty"`
	Islands   []IslandEntry   `yaml:"islands"`
	Distances []DistanceEntry `yaml:"distances"`
	Corridors []CorridorEntry `yaml:"corridors"`
}

// IslandEntry is one roster line.
type IslandEntry struct {
	ID         string  `yaml:"id"`
	Type       string  `yaml:"type"` // port_city, trading, cultural, agricultural
	Navigation float64 `yaml:"navigation"`
	Trade      int     `yaml:"trade"`
	Culture    float64 `yaml:"culture"`
}

// DistanceEntry is one curated directed passage factor.
type DistanceEntry struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Factor float64 `yaml:"factor"`
}

// CorridorEntry marks a directed pair favorable under one monsoon.
type CorridorEntry struct {
	Monsoon string `yaml:"monsoon"` // northeast or southwest
	From    string `yaml:"from"`
	To      string `yaml:"to"`
}

// Inputs is a scenario converted to the values a simulation is built
// from.
type Inputs struct {
	Definitions []archipelago.Definition
	Distances   []archipelago.DistanceEntry
	Corridors   []monsoon.Corridor
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse unmarshals and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports the first problem with the scenario, if any.
func (s *Scenario) Validate() error {
	_, err := s.Inputs()
	return err
}

// Inputs validates the scenario and converts it in one pass. Entries
// are checked in file order and the first offender is named in the
// error.
func (s *Scenario) Inputs() (Inputs, error) {
	if len(s.Islands) < 2 {
		return Inputs{}, fmt.Errorf("scenario needs at least two islands, got %d", len(s.Islands))
	}

	var in Inputs
	known := make(map[archipelago.IslandID]bool, len(s.Islands))

	for i, e := range s.Islands {
		if e.ID == "" {
			return Inputs{}, fmt.Errorf("islands[%d]: empty id", i)
		}
		id := archipelago.IslandID(e.ID)
		if known[id] {
			return Inputs{}, fmt.Errorf("island %q: duplicate id", e.ID)
		}
		typ, err := archipelago.ParseIslandType(e.Type)
		if err != nil {
			return Inputs{}, fmt.Errorf("island %q: %w", e.ID, err)
		}
		if e.Navigation < 0 || e.Navigation > 1 {
			return Inputs{}, fmt.Errorf("island %q: navigation %.2f outside [0,1]", e.ID, e.Navigation)
		}
		if e.Trade < 0 {
			return Inputs{}, fmt.Errorf("island %q: negative trade capacity %d", e.ID, e.Trade)
		}
		if e.Culture < 0 || e.Culture > 1 {
			return Inputs{}, fmt.Errorf("island %q: culture %.2f outside [0,1]", e.ID, e.Culture)
		}
		known[id] = true
		in.Definitions = append(in.Definitions, archipelago.Definition{
			ID:         id,
			Type:       typ,
			Navigation: e.Navigation,
			Trade:      e.Trade,
			Culture:    e.Culture,
		})
	}

	for i, d := range s.Distances {
		if !known[archipelago.IslandID(d.From)] {
			return Inputs{}, fmt.Errorf("distances[%d]: unknown island %q", i, d.From)
		}
		if !known[archipelago.IslandID(d.To)] {
			return Inputs{}, fmt.Errorf("distances[%d]: unknown island %q", i, d.To)
		}
		if d.From == d.To {
			return Inputs{}, fmt.Errorf("distances[%d]: %q paired with itself", i, d.From)
		}
		if d.Factor < 0 || d.Factor > 1 {
			return Inputs{}, fmt.Errorf("distances[%d]: factor %.2f outside [0,1]", i, d.Factor)
		}
		in.Distances = append(in.Distances, archipelago.DistanceEntry{
			From:   archipelago.IslandID(d.From),
			To:     archipelago.IslandID(d.To),
			Factor: d.Factor,
		})
	}

	for i, c := range s.Corridors {
		wind, err := monsoon.ParseWind(c.Monsoon)
		if err != nil {
			return Inputs{}, fmt.Errorf("corridors[%d]: %w", i, err)
		}
		if wind == monsoon.WindCalm {
			return Inputs{}, fmt.Errorf("corridors[%d]: calm seasons carry no corridors", i)
		}
		if !known[archipelago.IslandID(c.From)] {
			return Inputs{}, fmt.Errorf("corridors[%d]: unknown island %q", i, c.From)
		}
		if !known[archipelago.IslandID(c.To)] {
			return Inputs{}, fmt.Errorf("corridors[%d]: unknown island %q", i, c.To)
		}
		if c.From == c.To {
			return Inputs{}, fmt.Errorf("corridors[%d]: %q paired with itself", i, c.From)
		}
		in.Corridors = append(in.Corridors, monsoon.Corridor{Wind: wind, From: c.From, To: c.To})
	}

	return in, nil
}
