package system

import (
	"image/color"
	"log/slog"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

const trailLifetime = 0.1

var (
	trailHitColor  = color.RGBA{R: 255, G: 200, B: 64, A: 255}
	trailMissColor = color.RGBA{R: 200, G: 200, B: 200, A: 160}
)

// WeaponSystem turns wielder input into weapon state changes and, for every
// accepted shot, resolves hits into damage requests and trails.
type WeaponSystem struct {
	rng    common.Rand
	logger *slog.Logger
}

func NewWeaponSystem(rng common.Rand, logger *slog.Logger) *WeaponSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeaponSystem{rng: rng, logger: logger.With("system", "weapon")}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	resolver := combat.NewHitResolver(w.PhysicsWorld(), s.rng)

	entities := w.Query(
		component.WeaponComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		weapon, _ := ecs.Get(w, e, component.WeaponComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if weapon.State == nil {
			continue
		}
		state := weapon.State
		state.Update(now)

		if input.SwitchTo > 0 {
			if state.SwitchSlot(input.SwitchTo - 1) {
				w.Emit(ecs.EventWeaponSwitch, ecs.WeaponEvent{Wielder: e, Weapon: state.Active()})
			} else {
				s.logger.Debug("weapon: switch ignored", "entity", e, "slot", input.SwitchTo-1)
			}
			input.SwitchTo = 0
		}

		if input.Reload {
			if state.Reload(now) {
				w.Emit(ecs.EventReload, ecs.WeaponEvent{Wielder: e, Weapon: state.Active()})
			} else {
				s.logger.Debug("weapon: reload ignored", "entity", e, "weapon", state.Active().String())
			}
			input.Reload = false
		}

		if !input.Fire {
			continue
		}
		ev, out := state.Fire(now)
		if out != combat.FireOK {
			s.logger.Debug("weapon: fire rejected", "entity", e, "outcome", out.String())
			continue
		}

		aim := t.Facing
		if a, ok := ecs.Get(w, e, component.AimComponent.Kind()); ok && !a.Direction.IsZero() {
			aim = a.Direction
		}
		origin := t.Position.Add(common.V3(0, weapon.MuzzleHeight, 0))
		res := resolver.Resolve(origin, aim, state.Profile())

		hits := 0
		for _, h := range res.Hits {
			if queueDamage(w, ecs.Entity(h.Target), h.Damage) {
				hits++
			}
		}
		for _, tr := range res.Trails {
			spawnTrail(w, tr)
		}
		w.Emit(ecs.EventFired, ecs.FiredEvent{Shooter: e, Fire: ev, Hits: hits})
	}
}

// queueDamage appends a hit to the target's pending damage. Dead, dying or
// undamageable targets are skipped.
func queueDamage(w *ecs.World, target ecs.Entity, ctx combat.DamageContext) bool {
	if !ecs.IsAlive(w, target) || !ecs.Has(w, target, component.HealthComponent.Kind()) {
		return false
	}
	if ecs.Has(w, target, component.DyingComponent.Kind()) || ecs.Has(w, target, component.DespawnRequestComponent.Kind()) {
		return false
	}
	req, ok := ecs.Get(w, target, component.DamageRequestComponent.Kind())
	if !ok {
		req = &component.DamageRequest{}
	}
	req.Hits = append(req.Hits, ctx)
	return ecs.Add(w, target, component.DamageRequestComponent.Kind(), req) == nil
}

func spawnTrail(w *ecs.World, tr combat.Trail) {
	col := trailMissColor
	if tr.Hit {
		col = trailHitColor
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.LineRenderComponent.Kind(), &component.LineRender{
		Start: tr.Start,
		End:   tr.End,
		Width: 1,
		Color: col,
		Hit:   tr.Hit,
	})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: trailLifetime})
	w.Emit(ecs.EventTrail, ecs.TrailEvent{Start: tr.Start, End: tr.End, Hit: tr.Hit})
}
