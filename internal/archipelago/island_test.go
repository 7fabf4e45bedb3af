package archipelago

import (
	"errors"
	"testing"
)

func testDefinitions() []Definition {
	return []Definition{
		{ID: "malacca", Type: TypePortCity, Navigation: 0.5, Trade: 80, Culture: 0.4},
		{ID: "java", Type: TypeTrading, Navigation: 0.6, Trade: 40, Culture: 0.5},
		{ID: "ceylon", Type: TypeCultural, Navigation: 0.4, Trade: 60, Culture: 0.3},
		{ID: "sumatra", Type: TypeAgricultural, Navigation: 0.3, Trade: 50, Culture: 0.2},
	}
}

func TestNewRegistryAppliesTypeFloors(t *testing.T) {
	r, err := NewRegistry(testDefinitions())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	port, _ := r.Get("malacca")
	if port.Navigation != FloorPortNavigation {
		t.Errorf("port_city navigation floor: expected %.2f, got %.2f", FloorPortNavigation, port.Navigation)
	}
	if port.TradeCapacity != 80 || port.CultureAffinity != 0.4 {
		t.Errorf("port_city floors must not touch other attributes, got trade=%d culture=%.2f", port.TradeCapacity, port.CultureAffinity)
	}

	trading, _ := r.Get("java")
	if trading.TradeCapacity != FloorTradingCapacity {
		t.Errorf("trading capacity floor: expected %d, got %d", FloorTradingCapacity, trading.TradeCapacity)
	}

	cultural, _ := r.Get("ceylon")
	if cultural.CultureAffinity != FloorCulturalAffinity {
		t.Errorf("cultural affinity floor: expected %.2f, got %.2f", FloorCulturalAffinity, cultural.CultureAffinity)
	}

	agri, _ := r.Get("sumatra")
	if agri.Navigation != 0.3 || agri.TradeCapacity != 50 || agri.CultureAffinity != 0.2 {
		t.Errorf("agricultural islands have no floors, got %+v", agri)
	}
}

func TestNewRegistryLeavesValuesAboveFloorsAlone(t *testing.T) {
	r, err := NewRegistry([]Definition{
		{ID: "calicut", Type: TypePortCity, Navigation: 0.92, Trade: 10, Culture: 0.1},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	isl, _ := r.Get("calicut")
	if isl.Navigation != 0.92 {
		t.Errorf("floor must not lower a value already above it, got %.2f", isl.Navigation)
	}
}

func TestNewRegistryRejectsDuplicateAndEmptyIDs(t *testing.T) {
	if _, err := NewRegistry([]Definition{
		{ID: "java", Type: TypeTrading},
		{ID: "java", Type: TypeCultural},
	}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
	if _, err := NewRegistry([]Definition{{ID: "", Type: TypeTrading}}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestGetUnknownIslandIsNotFound(t *testing.T) {
	r, _ := NewRegistry(testDefinitions())
	_, err := r.Get("atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConnectIsSymmetric(t *testing.T) {
	r, _ := NewRegistry(testDefinitions())
	if err := r.Connect("malacca", "java"); err != nil {
		t.Fatalf("connect: %v", err)
	}

	a, _ := r.Get("malacca")
	b, _ := r.Get("java")
	if !a.ConnectedTo("java") || !b.ConnectedTo("malacca") {
		t.Fatalf("connections must be symmetric after Connect")
	}

	// Re-connecting the same pair is a no-op, not a second edge.
	if err := r.Connect("java", "malacca"); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	if a.ConnectionCount() != 1 || b.ConnectionCount() != 1 {
		t.Fatalf("expected single connection each, got %d and %d", a.ConnectionCount(), b.ConnectionCount())
	}
}

func TestConnectRejectsSelfAndUnknown(t *testing.T) {
	r, _ := NewRegistry(testDefinitions())
	if err := r.Connect("java", "java"); err == nil {
		t.Fatalf("expected error connecting island to itself")
	}
	if err := r.Connect("java", "atlantis"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := r.Connect("atlantis", "java"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearConnectionsKeepsStaticAttributes(t *testing.T) {
	r, _ := NewRegistry(testDefinitions())
	if err := r.Connect("malacca", "ceylon"); err != nil {
		t.Fatalf("connect: %v", err)
	}

	r.ClearConnections()

	for _, isl := range r.All() {
		if isl.ConnectionCount() != 0 {
			t.Errorf("island %s still has %d connections after clear", isl.ID, isl.ConnectionCount())
		}
	}
	port, _ := r.Get("malacca")
	if port.Navigation != FloorPortNavigation || port.TradeCapacity != 80 {
		t.Errorf("clear must not touch static attributes, got %+v", port)
	}
}

func TestAllPreservesRosterOrder(t *testing.T) {
	r, _ := NewRegistry(testDefinitions())
	want := []IslandID{"malacca", "java", "ceylon", "sumatra"}
	all := r.All()
	if len(all) != len(want) {
		t.Fatalf("expected %d islands, got %d", len(want), len(all))
	}
	for i, isl := range all {
		if isl.ID != want[i] {
			t.Fatalf("roster order broken at %d: expected %s, got %s", i, want[i], isl.ID)
		}
	}
}

func TestConnectionsSorted(t *testing.T) {
	r, _ := NewRegistry(testDefinitions())
	r.Connect("malacca", "sumatra")
	r.Connect("malacca", "ceylon")
	r.Connect("malacca", "java")

	isl, _ := r.Get("malacca")
	conns := isl.Connections()
	want := []IslandID{"ceylon", "java", "sumatra"}
	for i, id := range conns {
		if id != want[i] {
			t.Fatalf("expected sorted connections %v, got %v", want, conns)
		}
	}
}

func TestIslandTypeLabelsRoundTrip(t *testing.T) {
	for _, typ := range []IslandType{TypePortCity, TypeTrading, TypeCultural, TypeAgricultural} {
		parsed, err := ParseIslandType(typ.String())
		if err != nil {
			t.Fatalf("parse %s: %v", typ, err)
		}
		if parsed != typ {
			t.Fatalf("round trip mismatch: %s parsed to %s", typ, parsed)
		}
	}
	if _, err := ParseIslandType("volcanic"); err == nil {
		t.Fatalf("expected error for unknown type label")
	}
}
