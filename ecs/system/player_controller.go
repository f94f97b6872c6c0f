package system

import (
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

const groundedDownVelocity = -2.0

// PlayerControllerSystem walks the player from its Input and keeps it on the
// floor.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	pw := w.PhysicsWorld()

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		move := common.V3(input.MoveX, 0, input.MoveZ)
		if move.Len() > 1 {
			move = move.Normalize()
		}
		t.Position = t.Position.Add(move.Scale(player.MoveSpeed * dt))

		if pw.IsGrounded(t.Position) && player.VerticalVelocity < 0 {
			player.VerticalVelocity = groundedDownVelocity
		}
		player.VerticalVelocity += player.Gravity * dt
		t.Position.Y += player.VerticalVelocity * dt
		t.Position = pw.ClampToGround(t.Position)

		if aim, ok := ecs.Get(w, e, component.AimComponent.Kind()); ok {
			if flat := aim.Direction.Flat().Normalize(); !flat.IsZero() {
				t.Facing = flat
			}
		}
	}
}
