// Package archipelago provides the island data model, the registry that
// owns it, and procedural archipelago generation.
package archipelago

import (
	"errors"
	"fmt"
	"sort"
)

// IslandID is a unique identifier for an island.
type IslandID string

// IslandType categorizes an island's economic character.
type IslandType uint8

const (
	TypePortCity IslandType = iota
	TypeTrading
	TypeCultural
	TypeAgricultural
)

// String returns the island type label used in scenarios and the API.
func (t IslandType) String() string {
	switch t {
	case TypePortCity:
		return "port_city"
	case TypeTrading:
		return "trading"
	case TypeCultural:
		return "cultural"
	case TypeAgricultural:
		return "agricultural"
	default:
		return "unknown"
	}
}

// ParseIslandType converts a type label back to its IslandType value.
func ParseIslandType(s string) (IslandType, error) {
	switch s {
	case "port_city":
		return TypePortCity, nil
	case "trading":
		return TypeTrading, nil
	case "cultural":
		return TypeCultural, nil
	case "agricultural":
		return TypeAgricultural, nil
	default:
		return 0, fmt.Errorf("unknown island type %q", s)
	}
}

// Type floors guaranteed at registration. Port cities never sail below
// competent navigation, trading islands never open below a viable
// capacity, cultural islands never fall below a strong affinity.
const (
	FloorPortNavigation   = 0.7
	FloorTradingCapacity  = 100
	FloorCulturalAffinity = 0.6
)

// Definition is the raw roster entry an island is created from.
// Attribute floors are applied when the registry is built, not here.
type Definition struct {
	ID         IslandID
	Type       IslandType
	Navigation float64 // Sailing skill, 0.0–1.0
	Trade      int     // Trade capacity, non-negative
	Culture    float64 // Culture affinity, 0.0–1.0
}

// Island is an agent in the trade network. Static attributes are fixed
// at creation; the connection set grows only through Registry.Connect so
// symmetry is enforced in one place.
type Island struct {
	ID              IslandID   `json:"id"`
	Type            IslandType `json:"type"`
	Navigation      float64    `json:"navigation"`
	TradeCapacity   int        `json:"trade_capacity"`
	CultureAffinity float64    `json:"culture_affinity"`

	connections map[IslandID]bool
}

// ConnectedTo reports whether the island holds a connection to id.
func (i *Island) ConnectedTo(id IslandID) bool {
	return i.connections[id]
}

// ConnectionCount returns the number of connected peers.
func (i *Island) ConnectionCount() int {
	return len(i.connections)
}

// Connections returns the connected peer ids in sorted order, so output
// and iteration stay deterministic.
func (i *Island) Connections() []IslandID {
	ids := make([]IslandID, 0, len(i.connections))
	for id := range i.connections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// ErrNotFound is returned when an island id is not registered.
var ErrNotFound = errors.New("island not found")

// Registry holds all islands keyed by id. Islands keep their roster
// order so every walk over the registry is deterministic.
type Registry struct {
	islands map[IslandID]*Island
	order   []IslandID
}

// NewRegistry builds a registry from roster definitions, applying type
// floors exactly once: port_city navigation ≥ 0.7, trading capacity
// ≥ 100, cultural affinity ≥ 0.6.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		islands: make(map[IslandID]*Island, len(defs)),
		order:   make([]IslandID, 0, len(defs)),
	}

	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("island definition with empty id")
		}
		if _, exists := r.islands[d.ID]; exists {
			return nil, fmt.Errorf("duplicate island id %q", d.ID)
		}

		isl := &Island{
			ID:              d.ID,
			Type:            d.Type,
			Navigation:      d.Navigation,
			TradeCapacity:   d.Trade,
			CultureAffinity: d.Culture,
			connections:     make(map[IslandID]bool),
		}

		switch d.Type {
		case TypePortCity:
			if isl.Navigation < FloorPortNavigation {
				isl.Navigation = FloorPortNavigation
			}
		case TypeTrading:
			if isl.TradeCapacity < FloorTradingCapacity {
				isl.TradeCapacity = FloorTradingCapacity
			}
		case TypeCultural:
			if isl.CultureAffinity < FloorCulturalAffinity {
				isl.CultureAffinity = FloorCulturalAffinity
			}
		}

		r.islands[d.ID] = isl
		r.order = append(r.order, d.ID)
	}

	return r, nil
}

// Get returns the island with the given id.
func (r *Registry) Get(id IslandID) (*Island, error) {
	isl, ok := r.islands[id]
	if !ok {
		return nil, fmt.Errorf("island %q: %w", id, ErrNotFound)
	}
	return isl, nil
}

// Len returns the number of registered islands.
func (r *Registry) Len() int {
	return len(r.islands)
}

// All returns every island in roster order.
func (r *Registry) All() []*Island {
	out := make([]*Island, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.islands[id])
	}
	return out
}

// Connect records a symmetric connection between two islands. Both sides
// are written together, which is the only way connections change, so
// B ∈ A.connections ⟺ A ∈ B.connections holds at every instant.
func (r *Registry) Connect(a, b IslandID) error {
	if a == b {
		return fmt.Errorf("island %q cannot connect to itself", a)
	}
	ia, err := r.Get(a)
	if err != nil {
		return err
	}
	ib, err := r.Get(b)
	if err != nil {
		return err
	}
	ia.connections[b] = true
	ib.connections[a] = true
	return nil
}

// ClearConnections empties every island's connection set in place.
// Static attributes are untouched.
func (r *Registry) ClearConnections() {
	for _, isl := range r.islands {
		isl.connections = make(map[IslandID]bool)
	}
}
