package system

import (
	"log/slog"

	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/registry"
)

// DespawnSystem removes entities that asked to leave the world: it notifies
// the owning tower, drops the collider and destroys the entity.
type DespawnSystem struct {
	registry *registry.Registry
	logger   *slog.Logger
}

func NewDespawnSystem(reg *registry.Registry, logger *slog.Logger) *DespawnSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &DespawnSystem{registry: reg, logger: logger.With("system", "despawn")}
}

func (s *DespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach(w, component.DespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.DespawnRequest) {
		var owner ecs.Entity
		if by, ok := ecs.Get(w, e, component.SpawnedByComponent.Kind()); ok {
			owner = ecs.Entity(by.Spawner)
			if sp, ok := ecs.Get(w, owner, component.SpawnerComponent.Kind()); ok {
				sp.Controller.OnRemoved()
			}
		}
		pw.RemoveTarget(e)
		if s.registry != nil && s.registry.Forget(registry.ID(e)) {
			s.logger.Debug("despawn: removed without a kill", "entity", e)
		}
		w.Emit(ecs.EventRemoved, ecs.RemovedEvent{Entity: e, Spawner: owner})
		ecs.DestroyEntity(w, e)
	})
}
