package component

import "github.com/milk9111/watchtower/common"

// Input stores per-frame intent for an entity. Hosts and scripted drivers
// write it; systems only read it.
type Input struct {
	MoveX  float64
	MoveZ  float64
	Fire   bool
	Reload bool
	// SwitchTo requests the weapon in slot SwitchTo-1; zero means none.
	SwitchTo int
}

var InputComponent = NewComponent[Input]()

// Aim is the resolved aim ray of a wielder.
type Aim struct {
	Direction common.Vec3
}

var AimComponent = NewComponent[Aim]()
