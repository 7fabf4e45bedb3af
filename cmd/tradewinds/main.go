// Command tradewinds runs the monsoon trade network simulation.
//
// One-shot mode (the default) runs a fixed batch of seasons and prints
// a summary table. Serve mode (-serve) runs a season every interval and
// exposes the network over the HTTP API until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talverin/tradewinds/internal/api"
	"github.com/talverin/tradewinds/internal/archipelago"
	"github.com/talverin/tradewinds/internal/config"
	"github.com/talverin/tradewinds/internal/engine"
	"github.com/talverin/tradewinds/internal/persistence"
)

var (
	seed         = flag.Int64("seed", 0, "random seed (0 = scenario seed, else current time)")
	seasons      = flag.Int("seasons", 12, "seasons to run in one-shot mode")
	scenarioPath = flag.String("scenario", "", "scenario YAML file (empty = built-in roster)")
	islands      = flag.Int("islands", 0, "generate an archipelago of this many islands instead of a scenario")
	serveAddr    = flag.String("serve", "", "HTTP listen address, e.g. :8080 (empty = one-shot mode)")
	interval     = flag.Duration("interval", 10*time.Second, "season pacing in serve mode")
	dbPath       = flag.String("db", "", "results archive path (empty = no archive)")
	debug        = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("Tradewinds — Monsoon Trade Network Simulation")

	// ── Scenario ──────────────────────────────────────────────────────
	runSeed := *seed

	var (
		scenarioName string
		inputs       config.Inputs
	)
	switch {
	case *scenarioPath != "":
		scn, err := config.Load(*scenarioPath)
		if err != nil {
			slog.Error("failed to load scenario", "error", err)
			os.Exit(1)
		}
		if runSeed == 0 && scn.Seed != nil {
			runSeed = *scn.Seed
		}
		inputs, err = scn.Inputs()
		if err != nil {
			slog.Error("invalid scenario", "error", err)
			os.Exit(1)
		}
		scenarioName = scn.Name
		slog.Info("scenario loaded", "name", scn.Name, "path", *scenarioPath)

	case *islands > 0:
		if runSeed == 0 {
			runSeed = time.Now().UnixNano()
		}
		gen := archipelago.Generate(archipelago.GenConfig{Islands: *islands, Seed: runSeed})
		inputs = config.Inputs{
			Definitions: gen.Definitions,
			Distances:   gen.Distances,
			Corridors:   gen.Corridors,
		}
		scenarioName = fmt.Sprintf("generated-%d", *islands)
		slog.Info("archipelago generated", "islands", len(gen.Definitions))

	default:
		scn := config.Default()
		var err error
		inputs, err = scn.Inputs()
		if err != nil {
			slog.Error("built-in scenario invalid", "error", err)
			os.Exit(1)
		}
		scenarioName = scn.Name
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim, err := engine.NewSimulation(engine.Config{
		Definitions: inputs.Definitions,
		Distances:   inputs.Distances,
		Corridors:   inputs.Corridors,
		Seed:        runSeed,
	})
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	slog.Info("network ready", "scenario", scenarioName, "islands", sim.IslandCount(), "seed", runSeed)

	// ── Archive ───────────────────────────────────────────────────────
	var db *persistence.DB
	if *dbPath != "" {
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("archive opened", "path", *dbPath)
	}

	if *serveAddr == "" {
		runOnce(sim, db, scenarioName)
		return
	}
	serve(sim, db, scenarioName)
}

// runOnce runs the configured batch of seasons, prints the summary, and
// archives the whole run when a database is open.
func runOnce(sim *engine.Simulation, db *persistence.DB, scenario string) {
	results, err := sim.RunBatch(*seasons)
	if err != nil {
		slog.Error("run failed", "error", err, "completed", len(results))
		os.Exit(1)
	}

	printSummary(sim, results)

	if db != nil {
		runID, err := db.SaveRun(sim, scenario)
		if err != nil {
			slog.Error("archive failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Archived as run %s.\n", runID)
	}
}

// printSummary writes the season table and final network stats to stdout.
func printSummary(sim *engine.Simulation, results []engine.SeasonResult) {
	fmt.Println()
	fmt.Println("season  wind       success  trade    cultural  routes")
	for _, r := range results {
		fmt.Printf("%6d  %-9s  %3d/%-3d  %7s  %8d  %6d\n",
			r.Season, r.Wind, r.Successes, r.Attempts,
			humanize.Comma(int64(r.Trade)), r.Cultural, r.Routes)
	}

	stats := sim.NetworkStats()
	fmt.Println()
	fmt.Printf("%d islands, %d directed routes across %d pairs (connectivity %.2f)\n",
		len(stats.Islands), stats.RouteCount, stats.RoutePairs, stats.Connectivity)
	fmt.Printf("Trade moved: %s units. Cultural exchanges: %s.\n",
		humanize.Comma(int64(stats.TradeTotal)), humanize.Comma(int64(stats.CulturalTotal)))

	if top := mostCentral(stats.Islands, 3); len(top) > 0 {
		fmt.Print("Most central: ")
		for i, isl := range top {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s (%.2f)", isl.ID, isl.Centrality)
		}
		fmt.Println()
	}
}

// mostCentral returns up to n islands ranked by centrality, busiest
// first, ties broken by id.
func mostCentral(islands []engine.IslandStats, n int) []engine.IslandStats {
	ranked := append([]engine.IslandStats(nil), islands...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Centrality != ranked[j].Centrality {
			return ranked[i].Centrality > ranked[j].Centrality
		}
		return ranked[i].ID < ranked[j].ID
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// serve runs the season ticker and the HTTP API until interrupted.
func serve(sim *engine.Simulation, db *persistence.DB, scenario string) {
	// ── Live feed ─────────────────────────────────────────────────────
	hub := api.NewHub()
	go hub.Run()

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("TRADEWINDS_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("TRADEWINDS_ADMIN_KEY not set — admin POST endpoints will be disabled")
	}

	srv := &api.Server{
		Sim:      sim,
		DB:       db,
		Hub:      hub,
		Scenario: scenario,
		AdminKey: adminKey,
	}
	if db != nil {
		runID, err := db.BeginRun(sim.Seed(), scenario)
		if err != nil {
			slog.Error("failed to open archive run", "error", err)
			os.Exit(1)
		}
		srv.RunID = runID
	}

	httpSrv := &http.Server{
		Addr:    *serveAddr,
		Handler: srv.Handler(),
	}

	ctx, cancel := signalContext()
	defer cancel()

	// ── Season ticker ─────────────────────────────────────────────────
	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := srv.RunSeason(); err != nil {
					slog.Error("season failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		slog.Info("received signal, shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	fmt.Printf("\nTradewinds is blowing: %d islands, a season every %s.\n", sim.IslandCount(), *interval)
	fmt.Printf("API: http://localhost%s/api/v1/status (Ctrl+C to stop)\n", *serveAddr)

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}

	srv.CloseRun()
	fmt.Println("Simulation stopped.")
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
