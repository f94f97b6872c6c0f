package component

import "github.com/milk9111/watchtower/combat"

// DamageRequest is a transient component queuing hits against an entity.
// The damage system applies and removes it in the same tick.
type DamageRequest struct {
	Hits []combat.DamageContext
}

var DamageRequestComponent = NewComponent[DamageRequest]()

// Killed is a transient marker added on the death transition.
type Killed struct {
	Weapon combat.WeaponKind
}

var KilledComponent = NewComponent[Killed]()

// Dying marks an entity playing its death sequence. It no longer takes damage.
type Dying struct{}

var DyingComponent = NewComponent[Dying]()

// DespawnRequest asks the despawn system to remove the entity.
type DespawnRequest struct{}

var DespawnRequestComponent = NewComponent[DespawnRequest]()
