package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// EnemyTag marks an enemy tracked by the kill tally. Kind is the prefab
// family used for scoring.
type EnemyTag struct {
	Kind string
}

var EnemyTagComponent = NewComponent[EnemyTag]()

// ObjectiveTag marks the secondary objective grounded enemies walk toward
// while the player is out of range.
type ObjectiveTag struct{}

var ObjectiveTagComponent = NewComponent[ObjectiveTag]()
