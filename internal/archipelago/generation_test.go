package archipelago

import (
	"reflect"
	"testing"

	"github.com/talverin/tradewinds/internal/monsoon"
)

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	cfg := GenConfig{Islands: 8, Seed: 42}
	first := Generate(cfg)
	second := Generate(cfg)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed must yield identical archipelagos")
	}

	other := Generate(GenConfig{Islands: 8, Seed: 43})
	if reflect.DeepEqual(first.Definitions, other.Definitions) {
		t.Fatalf("different seeds should yield different rosters")
	}
}

func TestGenerateRosterShape(t *testing.T) {
	gen := Generate(GenConfig{Islands: 8, Seed: 7})

	if len(gen.Definitions) != 8 {
		t.Fatalf("expected 8 definitions, got %d", len(gen.Definitions))
	}

	seen := make(map[IslandID]bool)
	for _, d := range gen.Definitions {
		if seen[d.ID] {
			t.Fatalf("duplicate generated id %s", d.ID)
		}
		seen[d.ID] = true

		if d.Navigation < 0 || d.Navigation > 1 {
			t.Errorf("island %s: navigation %.3f out of range", d.ID, d.Navigation)
		}
		if d.Trade < 0 {
			t.Errorf("island %s: negative trade capacity %d", d.ID, d.Trade)
		}
		if d.Culture < 0 || d.Culture > 1 {
			t.Errorf("island %s: culture %.3f out of range", d.ID, d.Culture)
		}
	}

	// A generated roster must build a valid registry.
	if _, err := NewRegistry(gen.Definitions); err != nil {
		t.Fatalf("generated roster rejected by registry: %v", err)
	}
}

func TestGeneratedPassageFactorsInRange(t *testing.T) {
	gen := Generate(GenConfig{Islands: 10, Seed: 99})
	for _, e := range gen.Distances {
		if e.Factor < 0 || e.Factor > 1 {
			t.Errorf("passage %s→%s factor %.3f out of range", e.From, e.To, e.Factor)
		}
		if e.From == e.To {
			t.Errorf("self passage generated for %s", e.From)
		}
	}
}

func TestGeneratedCorridorsAreDirectionalAndReversed(t *testing.T) {
	gen := Generate(GenConfig{Islands: 8, Seed: 5})

	if len(gen.Corridors) == 0 {
		t.Fatalf("expected corridors for an 8-island archipelago")
	}

	type key struct {
		wind     monsoon.Wind
		from, to string
	}
	index := make(map[key]bool)
	for _, c := range gen.Corridors {
		if c.Wind == monsoon.WindCalm {
			t.Errorf("calm corridor generated: %s→%s", c.From, c.To)
		}
		index[key{c.Wind, c.From, c.To}] = true
	}

	// Every northeast corridor has its southwest reverse.
	for _, c := range gen.Corridors {
		if c.Wind != monsoon.WindNortheast {
			continue
		}
		if !index[key{monsoon.WindSouthwest, c.To, c.From}] {
			t.Errorf("missing southwest reverse for %s→%s", c.From, c.To)
		}
	}
}

func TestGenerateClampsTinyCounts(t *testing.T) {
	gen := Generate(GenConfig{Islands: 1, Seed: 3})
	if len(gen.Definitions) != 2 {
		t.Fatalf("expected minimum of 2 islands, got %d", len(gen.Definitions))
	}
}
