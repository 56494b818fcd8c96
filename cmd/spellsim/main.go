// spellsim runs a scripted caster against the spell core: fixed-tick loop,
// ability data from YAML, disable rules from Postgres when configured.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/db"
	"github.com/udisondev/spellcore/internal/game/property"
	"github.com/udisondev/spellcore/internal/game/spell"
)

const configPath = "config/simulator.yaml"

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

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := configPath
	if p := os.Getenv("SPELLCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("spellsim starting", "log_level", cfg.LogLevel, "tick", cfg.TickInterval())

	if err := data.LoadAbilities(cfg.AbilityDataPath); err != nil {
		return fmt.Errorf("loading abilities: %w", err)
	}

	disables, cleanup, err := buildDisables(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	caster := &scriptedCaster{objectID: 1, name: "Talion", level: 40}
	mgr := spell.NewManager(caster, data.Table{}, disables, spell.NewTemplateFactory())
	caster.mgr = mgr
	defer mgr.Dispose()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tickLoop(gctx, cfg.TickInterval(), caster, mgr)
	})
	return g.Wait()
}

// buildDisables returns the DB-backed checker when the database is enabled,
// otherwise an empty in-memory one.
func buildDisables(ctx context.Context, cfg config.Simulator) (spell.DisableChecker, func(), error) {
	if !cfg.Database.Enabled {
		slog.Info("database disabled, using empty disable rules")
		return spell.NewStaticDisables(), func() {}, nil
	}

	dsn := cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	repo := db.NewDisableRepository(database.Pool())
	if err := repo.Load(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("loading disable rules: %w", err)
	}
	return repo, database.Close, nil
}

// tickLoop drives the manager and the cast script until ctx is cancelled.
func tickLoop(ctx context.Context, interval time.Duration, caster *scriptedCaster, mgr *spell.Manager) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var tickNo int
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			tickNo++
			caster.script(tickNo)
			mgr.Update(interval)

			if tickNo%50 == 0 {
				slog.Info("property snapshot",
					"tick", tickNo,
					"pending", mgr.ActiveSpellCount(),
					"modifiers", mgr.ModifierCount(),
					"pDef", mgr.ResolveProperty(property.PDef, 200),
					"atkSpeed", mgr.ResolveProperty(property.AtkSpeed, 300))
			}
		}
	}
}

// scriptedCaster is the demo entity: a player-like caster with notices and
// a modifier sink wired to its own manager.
type scriptedCaster struct {
	objectID uint32
	name     string
	level    int32
	mgr      *spell.Manager
}

func (c *scriptedCaster) ObjectID() uint32 { return c.objectID }
func (c *scriptedCaster) Name() string     { return c.name }
func (c *scriptedCaster) Level() int32     { return c.level }

func (c *scriptedCaster) SendNotice(text string) {
	slog.Info("notice", "caster", c.name, "text", text)
}

func (c *scriptedCaster) AddSpellModifierProperty(sourceID uint32, mod property.Modifier) {
	c.mgr.AddSpellModifierProperty(sourceID, mod)
}

// script issues a fixed cast pattern: every ability in the table in turn,
// with a movement interrupt every 40 ticks.
func (c *scriptedCaster) script(tickNo int) {
	if tickNo%40 == 0 {
		slog.Debug("caster moved", "tick", tickNo)
		c.mgr.CancelSpellsOnMove()
		return
	}
	if tickNo%10 != 1 {
		return
	}

	for id := range data.AbilityTable {
		if _, outcome, err := c.mgr.CastSpellByID(id, true, nil); err != nil {
			slog.Warn("cast error", "ability", id, "err", err)
		} else {
			slog.Debug("cast attempted", "ability", id, "outcome", outcome)
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
