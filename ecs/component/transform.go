package component

import "github.com/milk9111/watchtower/common"

// Transform places an entity in the arena. Position is the foot point.
type Transform struct {
	Position common.Vec3
	Facing   common.Vec3
	// Roll is the accumulated spin about the facing axis, in degrees.
	Roll float64
}

var TransformComponent = NewComponent[Transform]()
