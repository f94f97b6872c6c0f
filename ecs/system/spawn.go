package system

import (
	"log/slog"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/registry"
)

// EnemyBuilder creates an enemy of the named type at pos.
type EnemyBuilder func(w *ecs.World, kind string, pos common.Vec3) (ecs.Entity, error)

// SpawnSystem runs every tower's wave timer and places the enemies it asks
// for. Types the builder rejects are logged and do not use up budget.
type SpawnSystem struct {
	rng      common.Rand
	build    EnemyBuilder
	registry *registry.Registry
	logger   *slog.Logger
}

func NewSpawnSystem(rng common.Rand, build EnemyBuilder, reg *registry.Registry, logger *slog.Logger) *SpawnSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpawnSystem{rng: rng, build: build, registry: reg, logger: logger.With("system", "spawn")}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil || s.build == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(tower ecs.Entity, sp *component.Spawner, t *component.Transform) {
		if sp.Controller.Exhausted() {
			return
		}
		sp.Controller.Origin = t.Position
		sp.Controller.Tick(dt, s.rng, func(order combat.SpawnOrder) bool {
			e, err := s.build(w, order.Type, order.Position)
			if err != nil {
				s.logger.Warn("spawn: cannot place enemy", "tower", tower, "type", order.Type, "err", err)
				return false
			}
			_ = ecs.Add(w, e, component.SpawnedByComponent.Kind(), &component.SpawnedBy{Spawner: uint64(tower)})
			if s.registry != nil {
				s.registry.Register(registry.ID(e))
			}
			w.Emit(ecs.EventSpawned, ecs.SpawnedEvent{Entity: e, Type: order.Type, Spawner: tower, Position: order.Position})
			return true
		})
		if sp.Controller.Exhausted() {
			s.logger.Info("spawn: tower exhausted", "tower", tower, "spawned", sp.Controller.Budget.TotalSpawned)
		}
	})
}
