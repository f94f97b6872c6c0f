package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/prefabs"
)

type enemyBuildFn func(w *ecs.World, cat *Catalog, pos common.Vec3) (ecs.Entity, error)

var enemyRegistry = map[string]enemyBuildFn{
	combat.KindGrounded:   NewGroundedEnemy,
	combat.KindPropelling: NewPropellingEnemy,
	combat.KindZombie: func(w *ecs.World, cat *Catalog, pos common.Vec3) (ecs.Entity, error) {
		return NewZombie(w, cat, combat.ZombieWalker, pos)
	},
}

// BuildEnemy creates an enemy by type name: an enemy family or a zombie
// class. It has the signature the spawn system expects.
func (c *Catalog) BuildEnemy(w *ecs.World, kind string, pos common.Vec3) (ecs.Entity, error) {
	name := strings.ToLower(strings.TrimSpace(kind))
	if fn, ok := enemyRegistry[name]; ok {
		return fn(w, c, pos)
	}
	if class, err := combat.ParseZombieClass(name); err == nil {
		return NewZombie(w, c, class, pos)
	}
	return 0, fmt.Errorf("enemy: unknown type %q", kind)
}

// NewGroundedEnemy creates a binary-health walker that heads for the
// objective until the player provokes it.
func NewGroundedEnemy(w *ecs.World, cat *Catalog, pos common.Vec3) (ecs.Entity, error) {
	if cat == nil || cat.Enemies == nil {
		return 0, fmt.Errorf("enemy: missing enemy spec")
	}
	spec := cat.Enemies.Grounded
	entity := ecs.CreateEntity(w)

	if err := addEnemyBase(w, entity, combat.KindGrounded, pos, spec.Collider, &combat.BinaryHealth{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, entity, component.GroundedAIComponent.Kind(), &component.GroundedAI{Brain: combat.GroundedBrain{
		Speed:          spec.Speed,
		Gravity:        spec.Gravity,
		DetectionRange: spec.DetectionRange,
		KnockbackForce: spec.KnockbackForce,
		SpinSpeed:      spec.SpinSpeed,
	}}); err != nil {
		return 0, fmt.Errorf("enemy: add grounded ai: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: tint(spec.Color, groundedColor),
		Label: combat.KindGrounded,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add appearance: %w", err)
	}
	return entity, nil
}

// NewPropellingEnemy creates a binary-health flyer lifted to its cruising
// altitude above pos.
func NewPropellingEnemy(w *ecs.World, cat *Catalog, pos common.Vec3) (ecs.Entity, error) {
	if cat == nil || cat.Enemies == nil {
		return 0, fmt.Errorf("enemy: missing enemy spec")
	}
	spec := cat.Enemies.Propelling
	entity := ecs.CreateEntity(w)

	pos.Y += spec.Altitude
	if err := addEnemyBase(w, entity, combat.KindPropelling, pos, spec.Collider, &combat.BinaryHealth{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, entity, component.PropellingAIComponent.Kind(), &component.PropellingAI{Brain: combat.PropellingBrain{
		Speed:          spec.Speed,
		TurnRate:       spec.TurnRate,
		KnockbackForce: spec.KnockbackForce,
		SpinSpeed:      spec.SpinSpeed,
	}}); err != nil {
		return 0, fmt.Errorf("enemy: add propelling ai: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: tint(spec.Color, propellingColor),
		Label: combat.KindPropelling,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add appearance: %w", err)
	}
	return entity, nil
}

// NewZombie creates a graded-health walker of the given class.
func NewZombie(w *ecs.World, cat *Catalog, class combat.ZombieClass, pos common.Vec3) (ecs.Entity, error) {
	if cat == nil || cat.Zombies == nil {
		return 0, fmt.Errorf("zombie: missing zombie spec")
	}
	spec := cat.Zombies
	tuning := spec.Class(class)
	entity := ecs.CreateEntity(w)

	health := combat.NewGradedHealthWith(class, tuning.Hitpoints)
	if err := addEnemyBase(w, entity, combat.KindZombie, pos, spec.Collider, health); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, entity, component.GroundedAIComponent.Kind(), &component.GroundedAI{Brain: combat.GroundedBrain{
		Speed:          tuning.Speed,
		Gravity:        spec.Gravity,
		DetectionRange: spec.DetectionRange,
	}}); err != nil {
		return 0, fmt.Errorf("zombie: add ai: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: tint(spec.Color, zombieColor),
		Label: class.String(),
	}); err != nil {
		return 0, fmt.Errorf("zombie: add appearance: %w", err)
	}
	return entity, nil
}

func addEnemyBase(w *ecs.World, entity ecs.Entity, kind string, pos common.Vec3, collider prefabs.ColliderSpec, health combat.Targetable) error {
	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{Kind: kind}); err != nil {
		return fmt.Errorf("enemy: add enemy tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Facing:   common.Forward,
	}); err != nil {
		return fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:     collider.Radius,
		Height:     collider.Height,
		HeadHeight: collider.Head,
	}); err != nil {
		return fmt.Errorf("enemy: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Target: health}); err != nil {
		return fmt.Errorf("enemy: add health: %w", err)
	}
	return nil
}
