// Archipelago generation using layered simplex noise.
// Derives island attributes, passage difficulty, and wind corridors from
// abstract noise fields — positions are dimensionless, not geographic.
package archipelago

import (
	"fmt"
	"math"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talverin/tradewinds/internal/monsoon"
)

// GenConfig holds archipelago generation parameters.
type GenConfig struct {
	Islands int   // Number of islands to generate
	Seed    int64 // Noise seed; the same seed always yields the same archipelago
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{Islands: 8}
}

// Generated bundles everything a scenario needs: the roster, the curated
// passage table, and the favorable wind corridors.
type Generated struct {
	Definitions []Definition
	Distances   []DistanceEntry
	Corridors   []monsoon.Corridor
}

// placedIsland is an island definition with its abstract plane position,
// kept only while deriving pairwise passage factors.
type placedIsland struct {
	def  Definition
	x, y float64
}

// namePool provides island names in generation order. Larger
// archipelagos fall back to numbered isles.
var namePool = []IslandID{
	"malacca", "calicut", "java", "hormuz",
	"ceylon", "zanzibar", "sumatra", "borneo",
	"aden", "kilwa", "goa", "aceh",
	"mombasa", "muscat", "palembang", "maldives",
}

// typeCycle assigns categories in a fixed rotation weighted toward the
// seafaring types, so small archipelagos still get a biased origin pool.
var typeCycle = []IslandType{
	TypePortCity, TypeTrading, TypeAgricultural, TypeCultural,
	TypeTrading, TypePortCity, TypeAgricultural, TypeCultural,
}

// Generate creates a deterministic archipelago from the config. Islands
// are scattered on an abstract ring jittered by noise; attributes come
// from independent noise layers, passage factors from pair separation.
func Generate(cfg GenConfig) Generated {
	n := cfg.Islands
	if n < 2 {
		n = 2
	}

	// Independent noise layers, one per attribute plus one for placement.
	navNoise := opensimplex.NewNormalized(cfg.Seed)
	tradeNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	cultNoise := opensimplex.NewNormalized(cfg.Seed + 2)
	jitterNoise := opensimplex.NewNormalized(cfg.Seed + 3)

	islands := make([]placedIsland, 0, n)
	for i := 0; i < n; i++ {
		// Ring placement with noise jitter keeps separations varied
		// without clustering everything at one point.
		angle := 2 * math.Pi * float64(i) / float64(n)
		radius := 1.0 + 0.5*jitterNoise.Eval2(float64(i)*0.7, 0.3)
		x := math.Cos(angle) * radius
		y := math.Sin(angle) * radius

		nav := 0.3 + 0.6*octaveNoise(navNoise, x, y, 3, 0.8, 0.5)
		trade := 30 + int(170*octaveNoise(tradeNoise, x, y, 3, 0.6, 0.5))
		culture := 0.2 + 0.7*octaveNoise(cultNoise, x, y, 3, 0.7, 0.5)

		islands = append(islands, placedIsland{
			def: Definition{
				ID:         islandName(i),
				Type:       typeCycle[i%len(typeCycle)],
				Navigation: nav,
				Trade:      trade,
				Culture:    culture,
			},
			x: x,
			y: y,
		})
	}

	defs := make([]Definition, 0, n)
	for _, p := range islands {
		defs = append(defs, p.def)
	}

	return Generated{
		Definitions: defs,
		Distances:   passageFactors(islands),
		Corridors:   corridors(islands),
	}
}

func islandName(i int) IslandID {
	if i < len(namePool) {
		return namePool[i]
	}
	return IslandID(fmt.Sprintf("isle-%d", i+1))
}

func separation(a, b placedIsland) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return math.Sqrt(dx*dx + dy*dy)
}

// passageFactors derives difficulty factors from pair separation: near
// pairs are easy, far pairs hard. Pairs landing near the default factor
// are left to the table's fallback so the curated set stays small.
func passageFactors(islands []placedIsland) []DistanceEntry {
	maxSep := 0.0
	for i := range islands {
		for j := i + 1; j < len(islands); j++ {
			if sep := separation(islands[i], islands[j]); sep > maxSep {
				maxSep = sep
			}
		}
	}
	if maxSep == 0 {
		return nil
	}

	var entries []DistanceEntry
	for i := range islands {
		for j := range islands {
			if i == j {
				continue
			}
			factor := 0.85 - 0.65*(separation(islands[i], islands[j])/maxSep)
			if factor < 0.2 {
				factor = 0.2
			}
			if math.Abs(factor-DefaultDistanceFactor) < 0.05 {
				continue
			}
			entries = append(entries, DistanceEntry{
				From:   islands[i].def.ID,
				To:     islands[j].def.ID,
				Factor: factor,
			})
		}
	}
	return entries
}

// corridors nominates favorable ordered pairs among the highest-capacity
// islands: the northeast monsoon carries ships around the top ring one
// way, the southwest monsoon carries them back.
func corridors(islands []placedIsland) []monsoon.Corridor {
	ranked := make([]Definition, 0, len(islands))
	for _, p := range islands {
		ranked = append(ranked, p.def)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Trade != ranked[j].Trade {
			return ranked[i].Trade > ranked[j].Trade
		}
		return ranked[i].ID < ranked[j].ID
	})

	k := len(ranked)
	if k > 4 {
		k = 4
	}
	if k < 2 {
		return nil
	}

	var out []monsoon.Corridor
	for i := 0; i < k; i++ {
		from := string(ranked[i].ID)
		to := string(ranked[(i+1)%k].ID)
		out = append(out,
			monsoon.Corridor{Wind: monsoon.WindNortheast, From: from, To: to},
			monsoon.Corridor{Wind: monsoon.WindSouthwest, From: to, To: from},
		)
	}
	return out
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
