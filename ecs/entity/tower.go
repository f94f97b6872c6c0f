package entity

import (
	"fmt"

	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

// NewTower places an enemy spawner built from the named tower preset.
func NewTower(w *ecs.World, cat *Catalog, preset string, pos common.Vec3) (ecs.Entity, error) {
	if cat == nil {
		return 0, fmt.Errorf("tower: missing catalog")
	}
	spec, err := cat.Towers.Tower(preset)
	if err != nil {
		return 0, fmt.Errorf("tower: %w", err)
	}
	entity := ecs.CreateEntity(w)

	controller := spec.Spawner()
	controller.Origin = pos
	if err := ecs.Add(w, entity, component.SpawnerComponent.Kind(), &component.Spawner{Controller: controller}); err != nil {
		return 0, fmt.Errorf("tower: add spawner: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos, Facing: common.Forward}); err != nil {
		return 0, fmt.Errorf("tower: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: tint(spec.Color, towerColor),
		Label: preset,
	}); err != nil {
		return 0, fmt.Errorf("tower: add appearance: %w", err)
	}
	return entity, nil
}
