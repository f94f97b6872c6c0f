package component

import "github.com/milk9111/watchtower/combat"

// Weapon gives an entity a weapon rig. MuzzleHeight lifts the shot origin
// above the foot position.
type Weapon struct {
	State        *combat.WeaponState
	MuzzleHeight float64
}

var WeaponComponent = NewComponent[Weapon]()
