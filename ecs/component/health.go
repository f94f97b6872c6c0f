package component

import "github.com/milk9111/watchtower/combat"

// Health makes an entity damageable.
type Health struct {
	Target combat.Targetable
}

var HealthComponent = NewComponent[Health]()
