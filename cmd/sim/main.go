// Command sim plays arenas headlessly with the autopilot and reports the
// tally. Several seeded runs execute in parallel and share one campaign
// registry.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/watchtower/arena"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/entity"
	"github.com/milk9111/watchtower/registry"
)

const maxRuns = 255

type config struct {
	level      string
	runs       int
	seed       uint64
	seconds    float64
	tps        int
	aggression float64
}

type report struct {
	Run    int
	ID     string
	Seed   uint64
	Status arena.Status
}

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", arena.DefaultLevel, "level file in levels/")
	flag.IntVar(&cfg.runs, "runs", 4, "number of parallel runs")
	flag.Uint64Var(&cfg.seed, "seed", 1, "seed of the first run; later runs add their index")
	flag.Float64Var(&cfg.seconds, "seconds", 120, "simulated seconds per run")
	flag.IntVar(&cfg.tps, "tps", 60, "ticks per simulated second")
	flag.Float64Var(&cfg.aggression, "aggression", 0, "how hard the autopilot closes distance, 0..1")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, campaign, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error("sim failed", "err", err)
		os.Exit(1)
	}
	for _, r := range reports {
		fmt.Printf("run %d %s seed=%d t=%.1fs kills=%d points=%d active=%d towers_left=%d\n",
			r.Run, r.ID, r.Seed, r.Status.Time, r.Status.Kills, r.Status.Points, r.Status.ActiveEnemies, r.Status.TowersLeft)
	}
	fmt.Printf("campaign kills=%d still_active=%d\n", campaign.TotalKilled, campaign.Active)
}

// run plays cfg.runs arenas concurrently. Every kill and spawn is mirrored
// into a shared registry owned by an actor goroutine.
func run(ctx context.Context, cfg config, logger *slog.Logger) ([]report, registry.Snapshot, error) {
	if cfg.runs < 1 || cfg.runs > maxRuns {
		return nil, registry.Snapshot{}, fmt.Errorf("sim: runs must be in 1..%d", maxRuns)
	}
	if cfg.tps < 1 {
		cfg.tps = 60
	}
	cat, err := entity.LoadCatalog(ctx)
	if err != nil {
		return nil, registry.Snapshot{}, err
	}

	actorCtx, stopActor := context.WithCancel(ctx)
	defer stopActor()
	tally := registry.NewActor(nil)
	actorDone := make(chan error, 1)
	go func() { actorDone <- tally.Run(actorCtx) }()

	var mu sync.Mutex
	reports := make([]report, cfg.runs)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.runs; i++ {
		g.Go(func() error {
			pilot := arena.NewAutopilot()
			pilot.Aggression = cfg.aggression
			seed := cfg.seed + uint64(i)
			a, err := arena.New(gctx, arena.Options{
				Level:   cfg.level,
				Seed:    seed,
				Logger:  logger.With("run", i),
				Catalog: cat,
				Input:   pilot,
			})
			if err != nil {
				return err
			}
			if err := play(gctx, a, cfg, i, tally); err != nil {
				return err
			}
			mu.Lock()
			reports[i] = report{Run: i, ID: a.ID.String(), Seed: seed, Status: a.Status()}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, registry.Snapshot{}, err
	}

	snap, err := tally.Snapshot(ctx)
	stopActor()
	<-actorDone
	return reports, snap, err
}

func play(ctx context.Context, a *arena.Arena, cfg config, runIdx int, tally *registry.Actor) error {
	dt := 1 / float64(cfg.tps)
	ticks := int(cfg.seconds * float64(cfg.tps))
	for t := 0; t < ticks; t++ {
		if t%cfg.tps == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for _, ev := range a.Step(dt) {
			if err := mirror(ctx, tally, runIdx, ev); err != nil {
				return err
			}
		}
		if a.Cleared() {
			break
		}
	}
	return nil
}

// mirror forwards one arena event into the campaign registry. Entity ids
// are only unique per arena, so the run index is folded into the top byte.
func mirror(ctx context.Context, tally *registry.Actor, runIdx int, ev ecs.Event) error {
	var err error
	switch data := ev.Data.(type) {
	case ecs.SpawnedEvent:
		_, err = tally.Register(ctx, campaignID(runIdx, data.Entity))
	case ecs.KilledEvent:
		id := campaignID(runIdx, data.Entity)
		if _, err = tally.Register(ctx, id); err == nil {
			_, err = tally.Killed(ctx, id)
		}
	case ecs.RemovedEvent:
		_, err = tally.Forget(ctx, campaignID(runIdx, data.Entity))
	}
	return err
}

func campaignID(runIdx int, e ecs.Entity) registry.ID {
	return registry.ID(uint64(runIdx)<<56 | uint64(e)&(1<<56-1))
}
