package system

import (
	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

// DamageSystem applies queued hits in order and marks the death transition.
// Hits queued after the lethal one in the same tick are dropped.
type DamageSystem struct{}

func NewDamageSystem() *DamageSystem { return &DamageSystem{} }

func (s *DamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.DamageRequestComponent.Kind(), func(e ecs.Entity, req *component.DamageRequest) {
		_ = ecs.Remove(w, e, component.DamageRequestComponent.Kind())

		health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok || health.Target == nil || ecs.Has(w, e, component.DyingComponent.Kind()) {
			return
		}

		for _, hit := range req.Hits {
			switch health.Target.ApplyDamage(hit) {
			case combat.DamageApplied:
				flash(w, e)
				if ai, ok := ecs.Get(w, e, component.GroundedAIComponent.Kind()); ok {
					ai.Brain.Provoke()
				}
			case combat.DamageLethal:
				_ = ecs.Add(w, e, component.KilledComponent.Kind(), &component.Killed{Weapon: hit.Weapon})
				return
			}
		}
	})
}
