// spellsim runs the spell engine against simulated maps.
//
// Usage:
//
//	spellsim            # run the simulation until interrupted or maps.run_for elapses
//	spellsim import     # load YAML spell data into PostgreSQL
//	spellsim check      # load spell data and scripts, report problems and exit
//
// The config path defaults to config/spellsim.yaml and can be overridden with
// SPELLCORE_CONFIG. Every setting also has a SPELLCORE_* environment override.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/spellcore/internal/ai"
	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/db"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/scripting"
	"github.com/udisondev/spellcore/internal/spawn"
	"github.com/udisondev/spellcore/internal/telemetry"
	"github.com/udisondev/spellcore/internal/world"
)

const ConfigPath = "config/spellsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	cmd := "run"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "run":
		err = run(ctx)
	case "import":
		err = importData(ctx)
	case "check":
		err = check(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want run, import or check)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the config and installs the default logger.
func loadConfig() (config.Engine, error) {
	path := ConfigPath
	if p := os.Getenv("SPELLCORE_CONFIG"); p != "" {
		path = p
	}
	cfg, err := config.LoadEngine(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
	ai.EnableDebugLogging(level == slog.LevelDebug)

	slog.Info("config loaded", "path", path, "data_source", cfg.DataSource, "maps", cfg.Maps.Count)
	return cfg, nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	}()

	eng, err := buildEngine(ctx, cfg, nil)
	if err != nil {
		return err
	}

	if cfg.Maps.RunFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Maps.RunFor)
		defer cancel()
	}

	ids := world.NewObjectIDGenerator()
	spells := castableSpells(eng.Catalog())
	slog.Info("simulation starting", "maps", cfg.Maps.Count, "units_per_map", cfg.Maps.UnitsPerMap, "spells", len(spells))

	g, gctx := errgroup.WithContext(ctx)
	for i := range cfg.Maps.Count {
		m := world.NewMap(world.MapOptions{
			ID:       uint32(i + 1),
			CellSize: float32(cfg.Maps.CellSize),
			Seed:     uint64(i + 1),
			IDs:      ids,
		})
		rt := eng.NewRuntime(m, spell.RuntimeOptions{})
		mgr := ai.NewTickManager(cfg.Maps.TickInterval)
		mgr.Attach(m)
		spawn.NewSpawner(m, rt, mgr).SpawnLines(cfg.Maps.UnitsPerMap, spawn.DefaultTemplate(spells))

		g.Go(func() error {
			return m.Run(gctx, cfg.Maps.TickInterval)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running maps: %w", err)
	}
	slog.Info("simulation stopped")
	return nil
}

// buildEngine loads spell data and scripts. A non-nil mp overrides the
// global meter provider.
func buildEngine(ctx context.Context, cfg config.Engine, mp metric.MeterProvider) (*spell.Engine, error) {
	b := data.NewBuilder()
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		defer database.Close()
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		if err := database.Spells().LoadInto(ctx, b); err != nil {
			return nil, fmt.Errorf("loading spell data: %w", err)
		}
	default:
		if err := data.LoadYAMLDir(cfg.DataDir, b); err != nil {
			return nil, fmt.Errorf("loading spell data: %w", err)
		}
	}
	catalog, err := b.Publish()
	if err != nil {
		return nil, fmt.Errorf("publishing spell catalog: %w", err)
	}

	scripts := spell.NewScriptRegistry()
	if cfg.ScriptsDir != "" {
		vm := scripting.New()
		if err := vm.LoadDir(cfg.ScriptsDir); err != nil {
			return nil, fmt.Errorf("loading spell scripts: %w", err)
		}
		vm.Install(scripts)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return spell.NewEngine(spell.EngineOptions{
		Catalog: catalog,
		Config:  cfg.Spell,
		Scripts: scripts,
		Metrics: metrics,
	})
}

func importData(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	im := database.Importer()
	if err := data.LoadYAMLDir(cfg.DataDir, im); err != nil {
		return fmt.Errorf("reading %s: %w", cfg.DataDir, err)
	}
	return im.Flush(ctx)
}

func check(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := buildEngine(ctx, cfg, nil)
	if err != nil {
		return err
	}
	effects, auras := eng.Registry().Counts()
	fmt.Printf("spells:         %d\n", eng.Catalog().SpellCount())
	fmt.Printf("procs:          %d\n", eng.Catalog().ProcCount())
	fmt.Printf("effect kinds:   %d\n", effects)
	fmt.Printf("aura kinds:     %d\n", auras)
	return nil
}

// castableSpells lists the spells the simulated units cycle through.
func castableSpells(c *data.Catalog) []data.SpellID {
	var out []data.SpellID
	for _, id := range c.SpellIDs() {
		if info := c.Spell(id); info != nil && !info.IsPassive() && info.MaxRange > 0 {
			out = append(out, id)
		}
	}
	return out
}
