// Package arena assembles a playable world from prefabs and a level and
// drives it one fixed tick at a time. The windowed game and the headless
// simulator both run on it.
package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/ecs/entity"
	"github.com/milk9111/watchtower/ecs/system"
	"github.com/milk9111/watchtower/levels"
	"github.com/milk9111/watchtower/prefabs"
	"github.com/milk9111/watchtower/registry"
)

const DefaultLevel = "arena.json"

type Options struct {
	Level   string
	Seed    uint64
	Logger  *slog.Logger
	Catalog *entity.Catalog
	// Input runs ahead of the combat pipeline each tick.
	Input ecs.System
	// CameraZoom adds a following top-down camera when positive.
	CameraZoom float64
}

type Arena struct {
	ID       uuid.UUID
	World    *ecs.World
	Pipeline *system.Pipeline
	Catalog  *entity.Catalog
	Level    *levels.Level
	Player   ecs.Entity

	logger *slog.Logger
}

func New(ctx context.Context, opts Options) (*Arena, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	logger = logger.With("arena", id.String())

	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = entity.LoadCatalog(ctx); err != nil {
			return nil, err
		}
	}
	rules, err := cat.Score.Rules()
	if err != nil {
		return nil, fmt.Errorf("arena: score rules: %w", err)
	}
	if s, ok := rules.(*combat.ScriptScore); ok {
		s.Logger = logger
	}

	name := opts.Level
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	w := ecs.NewWorld()
	p := system.Install(w, system.Deps{
		Rand:     common.NewRand(opts.Seed),
		Registry: registry.New(),
		Score:    rules,
		Build:    cat.BuildEnemy,
		Logger:   logger,
		Input:    opts.Input,
	})
	player, err := entity.LoadLevelToWorld(w, cat, lvl)
	if err != nil {
		return nil, err
	}
	if opts.CameraZoom > 0 {
		cam := ecs.CreateEntity(w)
		if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: opts.CameraZoom, Smoothness: 0.15}); err != nil {
			return nil, fmt.Errorf("arena: add camera: %w", err)
		}
		w.AddSystem(system.NewCameraSystem())
	}

	logger.Info("arena: ready", "level", lvl.Name, "seed", opts.Seed, "entities", len(ecs.Entities(w)))
	return &Arena{
		ID:       id,
		World:    w,
		Pipeline: p,
		Catalog:  cat,
		Level:    lvl,
		Player:   player,
		logger:   logger,
	}, nil
}

// Step advances one tick and returns the events it produced.
func (a *Arena) Step(dt float64) []ecs.Event {
	a.World.Tick(dt)
	return a.World.Events().Peek()
}

// Input returns the player's intent for scripted drivers to fill in.
func (a *Arena) Input() *component.Input {
	in, _ := ecs.Get(a.World, a.Player, component.InputComponent.Kind())
	return in
}

// Aim returns the player's aim for scripted drivers to steer.
func (a *Arena) Aim() *component.Aim {
	aim, _ := ecs.Get(a.World, a.Player, component.AimComponent.Kind())
	return aim
}

// Weapon returns the player's weapon state.
func (a *Arena) Weapon() *combat.WeaponState {
	wc, ok := ecs.Get(a.World, a.Player, component.WeaponComponent.Kind())
	if !ok {
		return nil
	}
	return wc.State
}

// Reload applies an edited prefab file to the running arena. Weapon tuning
// and scoring take effect at once; enemy, zombie and tower tuning apply to
// entities created afterwards.
func (a *Arena) Reload(name string) error {
	name = prefabs.Name(name)
	if name == "scripts/"+a.scoreScript() {
		return a.reloadScore()
	}
	known, err := a.Catalog.Reload(name)
	if err != nil {
		return fmt.Errorf("arena: reload %s: %w", name, err)
	}
	if !known {
		return nil
	}
	switch name {
	case prefabs.WeaponsFile:
		profiles := a.Catalog.Weapons.Profiles()
		ecs.ForEach(a.World, component.WeaponComponent.Kind(), func(_ ecs.Entity, wc *component.Weapon) {
			wc.State.SetProfiles(profiles)
		})
	case prefabs.ScoreFile:
		return a.reloadScore()
	}
	a.logger.Info("arena: reloaded prefab", "name", name)
	return nil
}

func (a *Arena) scoreScript() string {
	if a.Catalog.Score == nil {
		return ""
	}
	return a.Catalog.Score.Script
}

func (a *Arena) reloadScore() error {
	rules, err := a.Catalog.Score.Rules()
	if err != nil {
		return fmt.Errorf("arena: reload score: %w", err)
	}
	if s, ok := rules.(*combat.ScriptScore); ok {
		s.Logger = a.logger
	}
	a.Pipeline.Tally.SetScore(rules)
	a.logger.Info("arena: reloaded scoring")
	return nil
}
