// Network statistics — per-island centrality and global connectivity,
// computed on demand from the current state.
package engine

import "github.com/talverin/tradewinds/internal/archipelago"

// IslandStats is one island's slice of a network snapshot.
type IslandStats struct {
	ID              archipelago.IslandID   `json:"id"`
	Type            string                 `json:"type"`
	Navigation      float64                `json:"navigation"`
	TradeCapacity   int                    `json:"trade_capacity"`
	CultureAffinity float64                `json:"culture_affinity"`
	Connections     []archipelago.IslandID `json:"connections"`
	Centrality      float64                `json:"centrality"`
}

// NetworkStats is a read-only snapshot of the whole trade network.
type NetworkStats struct {
	Islands       []IslandStats `json:"islands"`
	RouteCount    int           `json:"route_count"`  // Directed route records
	RoutePairs    int           `json:"route_pairs"`  // Distinct unordered pairs
	Connectivity  float64       `json:"connectivity"` // Pair density in [0,1]
	TradeTotal    int           `json:"trade_total"`
	CulturalTotal int           `json:"cultural_total"`
	Wind          string        `json:"wind"`
	Cycle         uint64        `json:"cycle"`
	Seasons       int           `json:"seasons"`
}

// NetworkStats computes the current snapshot. Centrality is an island's
// connection count over the N-1 possible peers; connectivity is the
// distinct unordered route pairs over the N(N-1)/2 possible pairs, so a
// crossing recorded in both directions counts once. Never mutates.
func (s *Simulation) NetworkStats() NetworkStats {
	islands := s.registry.All()
	n := len(islands)

	stats := NetworkStats{
		Islands:       make([]IslandStats, 0, n),
		RouteCount:    len(s.routes),
		RoutePairs:    s.routePairCount(),
		TradeTotal:    s.tradeTotal,
		CulturalTotal: s.cultureTotal,
		Wind:          s.monsoon.Wind().String(),
		Cycle:         s.monsoon.Cycle(),
		Seasons:       len(s.history),
	}

	for _, isl := range islands {
		entry := IslandStats{
			ID:              isl.ID,
			Type:            isl.Type.String(),
			Navigation:      isl.Navigation,
			TradeCapacity:   isl.TradeCapacity,
			CultureAffinity: isl.CultureAffinity,
			Connections:     isl.Connections(),
		}
		if n > 1 {
			entry.Centrality = float64(isl.ConnectionCount()) / float64(n-1)
		}
		stats.Islands = append(stats.Islands, entry)
	}

	if n > 1 {
		possiblePairs := n * (n - 1) / 2
		stats.Connectivity = float64(stats.RoutePairs) / float64(possiblePairs)
	}

	return stats
}

// routePairCount collapses the directed route records onto unordered
// pairs with a canonical key.
func (s *Simulation) routePairCount() int {
	pairs := make(map[routeRecord]bool, len(s.routes))
	for r := range s.routes {
		if r.destination < r.origin {
			r.origin, r.destination = r.destination, r.origin
		}
		pairs[r] = true
	}
	return len(pairs)
}
