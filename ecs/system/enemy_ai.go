package system

import (
	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

// EnemyAISystem steers living enemies and advances death sequences. A
// finished sequence becomes a despawn request.
type EnemyAISystem struct{}

func NewEnemyAISystem() *EnemyAISystem { return &EnemyAISystem{} }

func (s *EnemyAISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	pw := w.PhysicsWorld()

	var player, objective common.Vec3
	hasPlayer, hasObjective := false, false
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			player, hasPlayer = t.Position, true
		}
	}
	if e, ok := ecs.First(w, component.ObjectiveTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			objective, hasObjective = t.Position, true
		}
	}

	ecs.ForEach2(w, component.GroundedAIComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.GroundedAI, t *component.Transform) {
		if ecs.Has(w, e, component.DespawnRequestComponent.Kind()) {
			return
		}
		st := ai.Brain.Tick(dt, combat.GroundedInput{
			Position:     t.Position,
			Facing:       t.Facing,
			Player:       player,
			HasPlayer:    hasPlayer,
			Objective:    objective,
			HasObjective: hasObjective,
			Grounded:     pw.IsGrounded(t.Position),
		})
		applySteering(w, e, t, st)
		if !ai.Brain.Dying() {
			t.Position = pw.ClampToGround(t.Position)
		}
	})

	ecs.ForEach2(w, component.PropellingAIComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.PropellingAI, t *component.Transform) {
		if ecs.Has(w, e, component.DespawnRequestComponent.Kind()) {
			return
		}
		st := ai.Brain.Tick(dt, combat.PropellingInput{
			Position:  t.Position,
			Facing:    t.Facing,
			Player:    player,
			HasPlayer: hasPlayer,
		})
		applySteering(w, e, t, st)
	})
}

func applySteering(w *ecs.World, e ecs.Entity, t *component.Transform, st combat.Steering) {
	t.Position = t.Position.Add(st.Move)
	if !st.Facing.IsZero() {
		t.Facing = st.Facing
	}
	t.Roll += st.Roll
	if st.Done {
		_ = ecs.Add(w, e, component.DespawnRequestComponent.Kind(), &component.DespawnRequest{})
	}
}

func combatForward(w *ecs.World, e ecs.Entity) common.Vec3 {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && !t.Facing.IsZero() {
		return t.Facing
	}
	return common.Forward
}
