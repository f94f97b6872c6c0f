package system

import (
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

// PhysicsSystem mirrors damageable colliders into the world's spatial index.
// Dying entities are dropped from the index so they stop absorbing shots.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if !ecs.Has(w, e, component.HealthComponent.Kind()) || ecs.Has(w, e, component.DyingComponent.Kind()) {
			pw.RemoveTarget(e)
			return
		}
		pw.SetTarget(e, t.Position, body.Radius, body.Height, body.HeadHeight)
	})
}
