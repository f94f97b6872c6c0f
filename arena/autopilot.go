package arena

import (
	"math"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

const (
	shotgunRange = 8.0
	meleeRange   = 1.5
)

// Autopilot drives the player without a human: it turns toward the nearest
// living enemy, picks a weapon for the distance, fires when the target is
// in range and reloads on an empty magazine.
type Autopilot struct {
	// Aggression above zero walks the player toward its target.
	Aggression float64
}

func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

func (ap *Autopilot) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	aim, _ := ecs.Get(w, player, component.AimComponent.Kind())
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	weapon, ok := ecs.Get(w, player, component.WeaponComponent.Kind())
	if !ok || weapon.State == nil {
		return
	}

	*input = component.Input{}
	target, dist, ok := nearestEnemy(w, t.Position)
	if !ok {
		return
	}

	muzzle := t.Position.Add(common.V3(0, weapon.MuzzleHeight, 0))
	if aim != nil {
		aim.Direction = target.Sub(muzzle).Normalize()
	}

	want := pickWeapon(dist)
	if want != weapon.State.Active() {
		input.SwitchTo = int(want) + 1
		return
	}
	if weapon.State.Profile().UsesAmmo() && weapon.State.Ammo() == 0 {
		input.Reload = true
		return
	}
	input.Fire = dist <= weapon.State.Profile().Range
	if ap.Aggression > 0 && dist > meleeRange {
		dir := target.Sub(t.Position).Flat().Normalize().Scale(common.Clamp01(ap.Aggression))
		input.MoveX, input.MoveZ = dir.X, dir.Z
	}
}

// nearestEnemy returns the centre of the closest enemy that can still be
// shot.
func nearestEnemy(w *ecs.World, from common.Vec3) (common.Vec3, float64, bool) {
	best := math.Inf(1)
	var target common.Vec3
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, et *component.Transform) {
		if ecs.Has(w, e, component.DyingComponent.Kind()) || ecs.Has(w, e, component.DespawnRequestComponent.Kind()) {
			return
		}
		centre := et.Position
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			centre.Y += body.Height / 2
		}
		if d := common.Dist(from.Flat(), centre.Flat()); d < best {
			best, target = d, centre
		}
	})
	return target, best, !math.IsInf(best, 1)
}

func pickWeapon(dist float64) combat.WeaponKind {
	switch {
	case dist <= meleeRange:
		return combat.WeaponMelee
	case dist <= shotgunRange:
		return combat.WeaponShotgun
	default:
		return combat.WeaponRifle
	}
}
