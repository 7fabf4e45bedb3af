// Distance table — curated difficulty factors for known passages.
package archipelago

// DefaultDistanceFactor is returned for any pair without a curated
// entry, including the reverse of a listed pair.
const DefaultDistanceFactor = 0.4

// DistanceEntry is one curated directed passage and its difficulty
// factor. Factors are dimensionless in [0,1]; higher means an easier
// crossing.
type DistanceEntry struct {
	From   IslandID
	To     IslandID
	Factor float64
}

type passage struct {
	from, to IslandID
}

// DistanceTable is a static lookup of passage difficulty factors.
// Entries are directed: listing a→b says nothing about b→a.
type DistanceTable struct {
	factors map[passage]float64
}

// NewDistanceTable builds a table from curated entries. Later entries
// for the same directed pair override earlier ones.
func NewDistanceTable(entries []DistanceEntry) *DistanceTable {
	t := &DistanceTable{factors: make(map[passage]float64, len(entries))}
	for _, e := range entries {
		t.factors[passage{from: e.From, to: e.To}] = e.Factor
	}
	return t
}

// Distance returns the difficulty factor for the directed pair from→to,
// or DefaultDistanceFactor when the pair is not listed.
func (t *DistanceTable) Distance(from, to IslandID) float64 {
	if f, ok := t.factors[passage{from: from, to: to}]; ok {
		return f
	}
	return DefaultDistanceFactor
}

// Len returns the number of curated entries.
func (t *DistanceTable) Len() int {
	return len(t.factors)
}
