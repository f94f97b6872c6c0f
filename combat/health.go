package combat

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/milk9111/watchtower/common"
)

// HitArea is the body region a hit landed on.
type HitArea int

const (
	HitOther HitArea = iota
	HitHead
)

func (a HitArea) String() string {
	if a == HitHead {
		return "head"
	}
	return "other"
}

const (
	headMultiplier  = 2.0
	otherMultiplier = 1.25
)

// DamageContext describes one damage event produced by a shot.
type DamageContext struct {
	Amount int
	Area   HitArea
	Weapon WeaponKind
	Source common.Vec3
	Point  common.Vec3
}

// DamageOutcome is the effect a damage event had on its target.
type DamageOutcome int

const (
	// DamageIgnored means the target was already dead.
	DamageIgnored DamageOutcome = iota
	DamageApplied
	// DamageLethal is returned exactly once per target.
	DamageLethal
)

func (o DamageOutcome) String() string {
	switch o {
	case DamageApplied:
		return "applied"
	case DamageLethal:
		return "lethal"
	}
	return "ignored"
}

// Targetable is anything that can receive damage and report death.
type Targetable interface {
	ApplyDamage(ctx DamageContext) DamageOutcome
	IsDead() bool
}

// BinaryHealth has no hitpoints: the first hit kills.
type BinaryHealth struct {
	dead atomic.Bool
}

// TakeDamage reports true only for the call that caused death.
func (h *BinaryHealth) TakeDamage() bool {
	if h == nil {
		return false
	}
	return h.dead.CompareAndSwap(false, true)
}

func (h *BinaryHealth) ApplyDamage(DamageContext) DamageOutcome {
	if h.TakeDamage() {
		return DamageLethal
	}
	return DamageIgnored
}

func (h *BinaryHealth) IsDead() bool {
	return h != nil && h.dead.Load()
}

// FinalDamage scales base damage by the hit area multiplier. Halves round to
// even.
func FinalDamage(base int, area HitArea) int {
	m := otherMultiplier
	if area == HitHead {
		m = headMultiplier
	}
	return int(math.RoundToEven(float64(base) * m))
}

// GradedHealth tracks hitpoints for zombie classes.
type GradedHealth struct {
	Class ZombieClass

	mu        sync.Mutex
	hitpoints int
	dead      bool
}

// NewGradedHealth starts a zombie at its class hitpoints.
func NewGradedHealth(class ZombieClass) *GradedHealth {
	return &GradedHealth{Class: class, hitpoints: class.Hitpoints()}
}

// NewGradedHealthWith overrides the class hitpoints.
func NewGradedHealthWith(class ZombieClass, hitpoints int) *GradedHealth {
	return &GradedHealth{Class: class, hitpoints: hitpoints}
}

// TakeDamage applies base damage scaled by area. A head hit from a pistol
// on a walker kills outright.
func (h *GradedHealth) TakeDamage(amount int, area HitArea, weapon WeaponKind) DamageOutcome {
	if h == nil {
		return DamageIgnored
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dead {
		return DamageIgnored
	}
	if area == HitHead && weapon == WeaponPistol && h.Class == ZombieWalker {
		h.hitpoints = 0
	}
	h.hitpoints -= FinalDamage(amount, area)
	if h.hitpoints <= 0 {
		h.dead = true
		return DamageLethal
	}
	return DamageApplied
}

func (h *GradedHealth) ApplyDamage(ctx DamageContext) DamageOutcome {
	return h.TakeDamage(ctx.Amount, ctx.Area, ctx.Weapon)
}

func (h *GradedHealth) IsDead() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dead
}

// Hitpoints may go negative on the killing blow.
func (h *GradedHealth) Hitpoints() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hitpoints
}
