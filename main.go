package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/watchtower/arena"
	"github.com/milk9111/watchtower/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", arena.DefaultLevel, "level file in levels/")
	seed := flag.Uint64("seed", 1, "spawn randomness seed")
	watch := flag.Bool("watch", false, "hot reload prefabs/ edits")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logger.Warn("prefab watcher disabled", "err", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	game, err := NewGame(context.Background(), arena.Options{
		Level:  *levelName,
		Seed:   *seed,
		Logger: logger,
	}, watcher, *debug)
	if err != nil {
		logger.Error("start game", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("watchtower")

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", "err", err)
		os.Exit(1)
	}
}
