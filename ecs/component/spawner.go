package component

import "github.com/milk9111/watchtower/combat"

// Spawner is an enemy tower.
type Spawner struct {
	Controller combat.Spawner
}

var SpawnerComponent = NewComponent[Spawner]()

// SpawnedBy links an enemy to the tower that produced it.
type SpawnedBy struct {
	Spawner uint64
}

var SpawnedByComponent = NewComponent[SpawnedBy]()
