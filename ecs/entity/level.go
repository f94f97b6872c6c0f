package entity

import (
	"fmt"

	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/levels"
)

const defaultTowerPreset = "watchtower"

// LoadLevelToWorld installs the level's floor as the world's spatial index
// and creates every placed entity. It returns the player.
func LoadLevelToWorld(w *ecs.World, cat *Catalog, lvl *levels.Level) (ecs.Entity, error) {
	if w == nil || lvl == nil {
		return 0, fmt.Errorf("level: nil world or level")
	}
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(lvl.GroundY))

	var player ecs.Entity
	for i, placed := range lvl.Entities {
		pos := common.V3(placed.X, placed.Y, placed.Z)
		var err error
		switch placed.Type {
		case "player":
			player, err = NewPlayerAt(w, cat, pos)
		case "objective":
			_, err = NewObjective(w, pos)
		case "tower":
			_, err = NewTower(w, cat, placed.Prop("preset", defaultTowerPreset), pos)
		default:
			_, err = cat.BuildEnemy(w, placed.Type, pos)
		}
		if err != nil {
			return 0, fmt.Errorf("level %q entity %d: %w", lvl.Name, i, err)
		}
	}
	if !player.Valid() {
		return 0, fmt.Errorf("level %q: no player", lvl.Name)
	}
	return player, nil
}
