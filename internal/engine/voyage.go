// Voyage resolution — success probability and the all-or-nothing commit
// of a single crossing.
package engine

import (
	"errors"
	"fmt"

	"github.com/talverin/tradewinds/internal/archipelago"
	"github.com/talverin/tradewinds/internal/monsoon"
)

// Probability weights and bounds. Navigation, passage difficulty, and
// wind favorability are blended, then an established route adds a flat
// bonus before clamping.
const (
	navWeight     = 0.4
	distWeight    = 0.3
	monsoonWeight = 0.3

	establishedBonus = 0.2

	minSuccessChance = 0.05
	maxSuccessChance = 0.95
)

// Wind favorability factors for the ordered passage origin→destination.
const (
	windCalmFactor      = 0.6
	windFavorableFactor = 0.9
	windAgainstFactor   = 0.3
	windNeutralFactor   = 0.5
)

// Trade volume bounds for one successful voyage, before the origin's
// capacity cap is applied.
const (
	tradeMin = 20
	tradeMax = 100
)

// ErrSameIsland is returned when a voyage names one island as both
// origin and destination.
var ErrSameIsland = errors.New("origin and destination are the same island")

// Voyage is the record of one attempt. Trade stays 0 and Cultural stays
// false unless the crossing succeeded.
type Voyage struct {
	Origin      archipelago.IslandID `json:"origin"`
	Destination archipelago.IslandID `json:"destination"`
	Success     bool                 `json:"success"`
	Trade       int                  `json:"trade"`
	Cultural    bool                 `json:"cultural"`
}

// SuccessProbability computes the chance that a voyage from origin to
// destination succeeds under the current wind and network state. The
// result is always within [0.05, 0.95], so no passage is ever hopeless
// or guaranteed.
func (s *Simulation) SuccessProbability(originID, destinationID archipelago.IslandID) (float64, error) {
	origin, destination, err := s.voyagePair(originID, destinationID)
	if err != nil {
		return 0, err
	}
	return s.successChance(origin, destination), nil
}

// voyagePair validates a voyage's endpoints and resolves both islands.
func (s *Simulation) voyagePair(originID, destinationID archipelago.IslandID) (*archipelago.Island, *archipelago.Island, error) {
	if originID == destinationID {
		return nil, nil, fmt.Errorf("voyage from %q: %w", originID, ErrSameIsland)
	}
	origin, err := s.registry.Get(originID)
	if err != nil {
		return nil, nil, fmt.Errorf("voyage origin: %w", err)
	}
	destination, err := s.registry.Get(destinationID)
	if err != nil {
		return nil, nil, fmt.Errorf("voyage destination: %w", err)
	}
	return origin, destination, nil
}

// successChance blends the voyage factors for an already-validated pair.
func (s *Simulation) successChance(origin, destination *archipelago.Island) float64 {
	navFactor := origin.Navigation
	distFactor := s.distances.Distance(origin.ID, destination.ID)
	windFactor := s.windFactor(origin.ID, destination.ID)

	chance := navFactor*navWeight + distFactor*distWeight + windFactor*monsoonWeight
	if s.RouteExists(origin.ID, destination.ID) {
		chance += establishedBonus
	}
	return clamp(chance, minSuccessChance, maxSuccessChance)
}

// windFactor scores the ordered passage under the current wind: calm is
// mildly helpful everywhere, a favorable corridor is a strong push, the
// reverse of one is sailing against the monsoon.
func (s *Simulation) windFactor(originID, destinationID archipelago.IslandID) float64 {
	wind := s.monsoon.Wind()
	if wind == monsoon.WindCalm {
		return windCalmFactor
	}
	if s.corridors.Favorable(wind, string(originID), string(destinationID)) {
		return windFavorableFactor
	}
	if s.corridors.Favorable(wind, string(destinationID), string(originID)) {
		return windAgainstFactor
	}
	return windNeutralFactor
}

// AttemptVoyage resolves one crossing. A failed voyage commits nothing.
// A successful voyage commits everything together: the directed route is
// recorded, both islands gain the symmetric connection, a trade volume
// capped by the origin's capacity is added to the running total, and a
// cultural exchange may raise the culture total. Draw order is fixed
// (success, trade, culture) so a seed replays identically.
func (s *Simulation) AttemptVoyage(originID, destinationID archipelago.IslandID) (Voyage, error) {
	origin, destination, err := s.voyagePair(originID, destinationID)
	if err != nil {
		return Voyage{}, err
	}

	voyage := Voyage{Origin: originID, Destination: destinationID}
	if s.rng.Float64() >= s.successChance(origin, destination) {
		return voyage, nil
	}
	voyage.Success = true

	if err := s.registry.Connect(originID, destinationID); err != nil {
		return Voyage{}, fmt.Errorf("connect voyage pair: %w", err)
	}
	if !s.RouteExists(originID, destinationID) {
		s.addEvent("network", "a route opened between %s and %s", originID, destinationID)
	}
	s.routes[routeRecord{origin: originID, destination: destinationID}] = true

	voyage.Trade = tradeMin + s.rng.IntN(tradeMax-tradeMin+1)
	if voyage.Trade > origin.TradeCapacity {
		voyage.Trade = origin.TradeCapacity
	}
	s.tradeTotal += voyage.Trade

	exchangeChance := (origin.CultureAffinity + destination.CultureAffinity) / 2
	if s.rng.Float64() < exchangeChance {
		voyage.Cultural = true
		s.cultureTotal++
	}

	return voyage, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
