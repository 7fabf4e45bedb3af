// Favorable wind corridors — ordered island pairs that each directional
// monsoon carries ships along.
package monsoon

// Corridor marks the ordered pair from→to as favorable under a wind.
// Sailing the pair against that wind is penalized instead.
type Corridor struct {
	Wind Wind
	From string
	To   string
}

type corridorKey struct {
	wind     Wind
	from, to string
}

// CorridorSet answers favorability lookups for ordered island pairs.
// Calm seasons have no corridors by definition.
type CorridorSet struct {
	favorable map[corridorKey]bool
}

// NewCorridorSet builds a lookup set from corridor definitions.
// Corridors declared for calm winds are ignored.
func NewCorridorSet(corridors []Corridor) *CorridorSet {
	set := &CorridorSet{favorable: make(map[corridorKey]bool, len(corridors))}
	for _, c := range corridors {
		if c.Wind == WindCalm {
			continue
		}
		set.favorable[corridorKey{wind: c.Wind, from: c.From, to: c.To}] = true
	}
	return set
}

// Favorable reports whether the ordered pair from→to rides the given wind.
func (s *CorridorSet) Favorable(w Wind, from, to string) bool {
	return s.favorable[corridorKey{wind: w, from: from, to: to}]
}

// Len returns the number of corridors in the set.
func (s *CorridorSet) Len() int {
	return len(s.favorable)
}
