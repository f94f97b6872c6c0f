package entity

import (
	"fmt"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

// NewPlayerAt creates the player with a full weapon rig at pos.
func NewPlayerAt(w *ecs.World, cat *Catalog, pos common.Vec3) (ecs.Entity, error) {
	if cat == nil || cat.Player == nil {
		return 0, fmt.Errorf("player: missing player spec")
	}
	spec := cat.Player
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		Gravity:   spec.Gravity,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Facing:   common.Forward,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, entity, component.AimComponent.Kind(), &component.Aim{Direction: common.Forward}); err != nil {
		return 0, fmt.Errorf("player: add aim: %w", err)
	}
	if err := ecs.Add(w, entity, component.WeaponComponent.Kind(), &component.Weapon{
		State:        combat.NewWeaponState(cat.Weapons.Profiles(), spec.InitialWeapon),
		MuzzleHeight: spec.MuzzleHeight,
	}); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}
	if err := ecs.Add(w, entity, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
		return 0, fmt.Errorf("player: add score: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: tint(spec.Color, playerColor),
		Label: "player",
	}); err != nil {
		return 0, fmt.Errorf("player: add appearance: %w", err)
	}

	return entity, nil
}

// NewObjective places a secondary objective marker.
func NewObjective(w *ecs.World, pos common.Vec3) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ObjectiveTagComponent.Kind(), &component.ObjectiveTag{}); err != nil {
		return 0, fmt.Errorf("objective: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos, Facing: common.Forward}); err != nil {
		return 0, fmt.Errorf("objective: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{Color: objectiveColor, Label: "objective"}); err != nil {
		return 0, fmt.Errorf("objective: add appearance: %w", err)
	}
	return entity, nil
}
