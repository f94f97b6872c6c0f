package system

import (
	"log/slog"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/registry"
)

// Deps are the collaborators the combat pipeline needs.
type Deps struct {
	Rand     common.Rand
	Registry *registry.Registry
	Score    combat.ScoreRules
	Build    EnemyBuilder
	Logger   *slog.Logger

	// Input, when set, runs first each tick to fill wielder Input.
	Input ecs.System
}

// Pipeline exposes the installed systems hosts may need to reach.
type Pipeline struct {
	Weapon *WeaponSystem
	Tally  *TallySystem
	Spawn  *SpawnSystem
}

// Install registers the combat systems on w in frame order: movement and
// index sync, aim and fire, damage, death and tally, enemy steering,
// removal, spawning, then cosmetic timers.
func Install(w *ecs.World, d Deps) *Pipeline {
	if d.Rand == nil {
		d.Rand = common.NewRand(1)
	}
	if d.Registry == nil {
		d.Registry = registry.New()
	}

	p := &Pipeline{
		Weapon: NewWeaponSystem(d.Rand, d.Logger),
		Tally:  NewTallySystem(d.Registry, d.Score, d.Logger),
		Spawn:  NewSpawnSystem(d.Rand, d.Build, d.Registry, d.Logger),
	}

	if d.Input != nil {
		w.AddSystem(d.Input)
	}
	w.AddSystem(NewPlayerControllerSystem())
	w.AddSystem(NewPhysicsSystem())
	w.AddSystem(p.Weapon)
	w.AddSystem(NewDamageSystem())
	w.AddSystem(p.Tally)
	w.AddSystem(NewEnemyAISystem())
	w.AddSystem(NewDespawnSystem(d.Registry, d.Logger))
	w.AddSystem(p.Spawn)
	w.AddSystem(NewTTLSystem())
	w.AddSystem(NewWhiteFlashSystem())
	return p
}
