// Simulation ties together the island registry, passage table, and
// monsoon machine, and owns all mutable trade-network state.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/talverin/tradewinds/internal/archipelago"
	"github.com/talverin/tradewinds/internal/monsoon"
)

// Config holds everything a fresh simulation is built from.
type Config struct {
	Definitions []archipelago.Definition
	Distances   []archipelago.DistanceEntry
	Corridors   []monsoon.Corridor
	Seed        int64
}

// Simulation is the complete trade-network state: islands, routes,
// running totals, season history, and the monsoon machine. All fields
// are private — reads go through accessors and every mutation goes
// through AttemptVoyage, RunSeason, or Reset, keeping the symmetry and
// totals invariants in one place. Calls are not internally synchronized;
// a caller exposing the simulation across goroutines must serialize
// mutations itself.
type Simulation struct {
	registry  *archipelago.Registry
	distances *archipelago.DistanceTable
	corridors *monsoon.CorridorSet
	monsoon   *monsoon.Model
	rng       *rand.Rand
	seed      int64

	routes       map[routeRecord]bool // Directed pairs, first success wins
	tradeTotal   int
	cultureTotal int
	history      []SeasonResult
	events       []Event
}

// routeRecord is one directed route entry.
type routeRecord struct {
	origin, destination archipelago.IslandID
}

// Route is a recorded directed route for presentation.
type Route struct {
	Origin      archipelago.IslandID `json:"origin"`
	Destination archipelago.IslandID `json:"destination"`
}

// Event is a notable occurrence in the network.
type Event struct {
	Season      uint64 `json:"season"`
	Description string `json:"description"`
	Category    string `json:"category"` // "network", "season", "system"
}

// maxEvents caps the in-memory event log.
const maxEvents = 500

// NewSimulation builds a simulation from the config. The registry
// applies type floors; the monsoon starts northeast at cycle 0; the
// random stream is derived from the seed, so two simulations built from
// the same config behave identically.
func NewSimulation(cfg Config) (*Simulation, error) {
	registry, err := archipelago.NewRegistry(cfg.Definitions)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	return &Simulation{
		registry:  registry,
		distances: archipelago.NewDistanceTable(cfg.Distances),
		corridors: monsoon.NewCorridorSet(cfg.Corridors),
		monsoon:   monsoon.NewModel(),
		rng:       newRNG(cfg.Seed),
		seed:      cfg.Seed,
		routes:    make(map[routeRecord]bool),
	}, nil
}

// Island returns the island with the given id.
func (s *Simulation) Island(id archipelago.IslandID) (*archipelago.Island, error) {
	return s.registry.Get(id)
}

// Islands returns every island in roster order.
func (s *Simulation) Islands() []*archipelago.Island {
	return s.registry.All()
}

// IslandCount returns the number of registered islands.
func (s *Simulation) IslandCount() int {
	return s.registry.Len()
}

// Seed returns the seed the random stream was built from.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Wind returns the current monsoon wind.
func (s *Simulation) Wind() monsoon.Wind {
	return s.monsoon.Wind()
}

// Cycle returns the monsoon cycle counter.
func (s *Simulation) Cycle() uint64 {
	return s.monsoon.Cycle()
}

// TradeTotal returns the running trade volume across all seasons.
func (s *Simulation) TradeTotal() int {
	return s.tradeTotal
}

// CulturalTotal returns the running count of cultural exchanges.
func (s *Simulation) CulturalTotal() int {
	return s.cultureTotal
}

// RouteExists reports whether a route between the pair is recorded in
// either direction.
func (s *Simulation) RouteExists(a, b archipelago.IslandID) bool {
	return s.routes[routeRecord{origin: a, destination: b}] ||
		s.routes[routeRecord{origin: b, destination: a}]
}

// RouteCount returns the number of recorded directed routes.
func (s *Simulation) RouteCount() int {
	return len(s.routes)
}

// Routes returns the recorded directed routes sorted by origin then
// destination.
func (s *Simulation) Routes() []Route {
	out := make([]Route, 0, len(s.routes))
	for r := range s.routes {
		out = append(out, Route{Origin: r.origin, Destination: r.destination})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}

// History returns a copy of the season results in run order.
func (s *Simulation) History() []SeasonResult {
	return append([]SeasonResult(nil), s.history...)
}

// SeasonCount returns the number of completed seasons.
func (s *Simulation) SeasonCount() int {
	return len(s.history)
}

// Events returns up to limit of the most recent events.
func (s *Simulation) Events(limit int) []Event {
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	return append([]Event(nil), s.events[len(s.events)-limit:]...)
}

func (s *Simulation) addEvent(category, format string, args ...any) {
	s.events = append(s.events, Event{
		Season:      uint64(len(s.history)) + 1,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}

// Reset clears all emergent state in place: connections, routes, totals,
// history, and events are emptied and the monsoon returns to cycle 0,
// northeast. Island static attributes and the random stream are left
// untouched. Safe to call repeatedly.
func (s *Simulation) Reset() {
	s.registry.ClearConnections()
	s.routes = make(map[routeRecord]bool)
	s.tradeTotal = 0
	s.cultureTotal = 0
	s.history = nil
	s.events = nil
	s.monsoon.Reset()
	s.addEvent("system", "the network was reset; all routes forgotten")
	slog.Info("simulation reset", "islands", s.registry.Len())
}
