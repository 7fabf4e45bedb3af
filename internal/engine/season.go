// Season scheduling — the fixed batch of voyage attempts that makes one
// trading season, and the multi-season batch runner.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talverin/tradewinds/internal/archipelago"
)

// VoyagesPerSeason is the fixed number of voyage attempts in one season.
const VoyagesPerSeason = 20

// tradeBiasChance is the probability an attempt's origin is drawn from
// the seafaring pool rather than the whole roster.
const tradeBiasChance = 0.7

// ErrTooFewIslands is returned when a season cannot draw a distinct
// destination for any origin.
var ErrTooFewIslands = errors.New("season needs at least two islands")

// SeasonResult aggregates one season's batch of voyage attempts.
type SeasonResult struct {
	Season      int     `json:"season"` // 1-based position in the history
	Wind        string  `json:"wind"`   // Monsoon that governed the season
	Attempts    int     `json:"attempts"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
	Trade       int     `json:"trade"`
	Cultural    int     `json:"cultural"`
	Routes      int     `json:"routes"` // Cumulative directed routes at season end
}

// RunSeason performs the fixed batch of voyage attempts, advances the
// monsoon exactly once, and appends the aggregated result to the season
// history. The call either completes the whole batch or fails before
// any attempt is made.
func (s *Simulation) RunSeason() (SeasonResult, error) {
	if s.registry.Len() < 2 {
		return SeasonResult{}, fmt.Errorf("%d island(s) registered: %w", s.registry.Len(), ErrTooFewIslands)
	}

	result := SeasonResult{
		Season:   len(s.history) + 1,
		Wind:     s.monsoon.Wind().String(),
		Attempts: VoyagesPerSeason,
	}

	for i := 0; i < VoyagesPerSeason; i++ {
		origin := s.pickOrigin()
		destination := s.pickDestination(origin)
		voyage, err := s.AttemptVoyage(origin.ID, destination.ID)
		if err != nil {
			// Unreachable: both endpoints come from the registry.
			return SeasonResult{}, fmt.Errorf("season attempt %d: %w", i+1, err)
		}
		if !voyage.Success {
			continue
		}
		result.Successes++
		result.Trade += voyage.Trade
		if voyage.Cultural {
			result.Cultural++
		}
	}

	s.monsoon.Advance()

	result.SuccessRate = float64(result.Successes) / float64(result.Attempts)
	result.Routes = len(s.routes)
	s.history = append(s.history, result)

	slog.Info("season complete",
		"season", result.Season,
		"wind", result.Wind,
		"successes", result.Successes,
		"trade", result.Trade,
		"cultural", result.Cultural,
		"routes", result.Routes,
	)
	return result, nil
}

// RunBatch runs n seasons back to back, returning their results in
// order. A zero or negative n runs nothing.
func (s *Simulation) RunBatch(n int) ([]SeasonResult, error) {
	if n < 0 {
		n = 0
	}
	results := make([]SeasonResult, 0, n)
	for i := 0; i < n; i++ {
		result, err := s.RunSeason()
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// pickOrigin draws the origin for one attempt: usually from the
// seafaring pool, otherwise uniformly over the whole roster.
func (s *Simulation) pickOrigin() *archipelago.Island {
	all := s.registry.All()
	if s.rng.Float64() < tradeBiasChance {
		if pool := seafaring(all); len(pool) > 0 {
			return pool[s.rng.IntN(len(pool))]
		}
	}
	return all[s.rng.IntN(len(all))]
}

// seafaring filters the roster to the trade-biased origin candidates:
// port cities and trading islands.
func seafaring(islands []*archipelago.Island) []*archipelago.Island {
	var pool []*archipelago.Island
	for _, isl := range islands {
		if isl.Type == archipelago.TypePortCity || isl.Type == archipelago.TypeTrading {
			pool = append(pool, isl)
		}
	}
	return pool
}

// pickDestination draws uniformly over the roster excluding the origin.
// An index draw over n-1 slots remaps a hit on the origin to the last
// island, which keeps the distribution uniform.
func (s *Simulation) pickDestination(origin *archipelago.Island) *archipelago.Island {
	all := s.registry.All()
	idx := s.rng.IntN(len(all) - 1)
	if all[idx].ID == origin.ID {
		idx = len(all) - 1
	}
	return all[idx]
}
