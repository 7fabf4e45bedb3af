package config

// Default returns the built-in eight-island scenario used when no
// scenario file is given: two port cities, two trading hubs, two
// cultural centers, two agricultural islands, with curated factors for
// the major lanes and a corridor ring for each directional monsoon.
func Default() *Scenario {
	return &Scenario{
		Name: "spice-route",
		Islands: []IslandEntry{
			{ID: "malacca", Type: "port_city", Navigation: 0.85, Trade: 180, Culture: 0.55},
			{ID: "calicut", Type: "port_city", Navigation: 0.80, Trade: 160, Culture: 0.60},
			{ID: "hormuz", Type: "trading", Navigation: 0.70, Trade: 240, Culture: 0.45},
			{ID: "java", Type: "trading", Navigation: 0.65, Trade: 220, Culture: 0.50},
			{ID: "ceylon", Type: "cultural", Navigation: 0.60, Trade: 90, Culture: 0.90},
			{ID: "zanzibar", Type: "cultural", Navigation: 0.55, Trade: 80, Culture: 0.85},
			{ID: "sumatra", Type: "agricultural", Navigation: 0.50, Trade: 120, Culture: 0.40},
			{ID: "borneo", Type: "agricultural", Navigation: 0.45, Trade: 110, Culture: 0.35},
		},
		Distances: []DistanceEntry{
			{From: "malacca", To: "sumatra", Factor: 0.90},
			{From: "sumatra", To: "malacca", Factor: 0.90},
			{From: "malacca", To: "java", Factor: 0.80},
			{From: "java", To: "malacca", Factor: 0.80},
			{From: "java", To: "borneo", Factor: 0.75},
			{From: "borneo", To: "java", Factor: 0.75},
			{From: "calicut", To: "ceylon", Factor: 0.85},
			{From: "ceylon", To: "calicut", Factor: 0.85},
			{From: "calicut", To: "hormuz", Factor: 0.60},
			{From: "hormuz", To: "calicut", Factor: 0.60},
			{From: "calicut", To: "malacca", Factor: 0.55},
			{From: "malacca", To: "calicut", Factor: 0.55},
			{From: "hormuz", To: "zanzibar", Factor: 0.50},
			{From: "zanzibar", To: "hormuz", Factor: 0.50},
			{From: "ceylon", To: "malacca", Factor: 0.60},
			{From: "malacca", To: "ceylon", Factor: 0.60},
			{From: "zanzibar", To: "calicut", Factor: 0.45},
			{From: "calicut", To: "zanzibar", Factor: 0.45},
		},
		Corridors: []CorridorEntry{
			// The northeast monsoon carries ships south and east along
			// the main lanes; the southwest monsoon runs them back.
			{Monsoon: "northeast", From: "hormuz", To: "calicut"},
			{Monsoon: "northeast", From: "calicut", To: "malacca"},
			{Monsoon: "northeast", From: "calicut", To: "zanzibar"},
			{Monsoon: "northeast", From: "malacca", To: "java"},
			{Monsoon: "southwest", From: "calicut", To: "hormuz"},
			{Monsoon: "southwest", From: "malacca", To: "calicut"},
			{Monsoon: "southwest", From: "zanzibar", To: "calicut"},
			{Monsoon: "southwest", From: "java", To: "malacca"},
		},
	}
}
