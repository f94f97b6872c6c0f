package combat

import (
	"fmt"

	"github.com/milk9111/watchtower/common"
)

const (
	// DeathDuration is how long a binary-health enemy stays in the world
	// after the killing hit.
	DeathDuration = 1.0

	// groundedFallVelocity keeps a grounded enemy pressed onto the floor.
	groundedFallVelocity = -2.0
)

// EnemyTarget is the grounded enemy's movement goal.
type EnemyTarget int

const (
	SeekSecondaryObjective EnemyTarget = iota
	SeekPlayer
)

func (t EnemyTarget) String() string {
	switch t {
	case SeekSecondaryObjective:
		return "seek_objective"
	case SeekPlayer:
		return "seek_player"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// Steering is one tick of enemy motion.
type Steering struct {
	// Move is the displacement for this tick.
	Move common.Vec3
	// Facing is the new facing; zero leaves it unchanged.
	Facing common.Vec3
	// Roll is the rotation about the facing axis to add, in degrees.
	Roll float64
	// Done is set on the tick the death sequence ends.
	Done bool
}

// DeathSequence is the knockback-and-spin played between the killing hit
// and removal.
type DeathSequence struct {
	Remaining float64
	Direction common.Vec3
	Force     float64
	SpinSpeed float64
	// Accelerating spins by the accumulated angle every tick instead of a
	// constant rate.
	Accelerating bool

	spun   float64
	active bool
}

// Start begins the sequence. Restarting an active sequence is ignored.
func (d *DeathSequence) Start(dir common.Vec3, force, spin float64, accelerating bool) {
	if d.active {
		return
	}
	*d = DeathSequence{
		Remaining:    DeathDuration,
		Direction:    dir,
		Force:        force,
		SpinSpeed:    spin,
		Accelerating: accelerating,
		active:       true,
	}
}

func (d *DeathSequence) Active() bool { return d.active }

// Step advances the sequence by dt.
func (d *DeathSequence) Step(dt float64) Steering {
	if !d.active || d.Remaining <= 0 {
		return Steering{Done: d.active}
	}
	var st Steering
	st.Move = d.Direction.Scale(d.Force * dt)
	if d.Accelerating {
		d.spun += d.SpinSpeed * dt
		st.Roll = d.spun
	} else {
		st.Roll = d.SpinSpeed * dt
	}
	d.Remaining -= dt
	st.Done = d.Remaining <= 0
	return st
}

// GroundedInput is what a grounded enemy perceives each tick.
type GroundedInput struct {
	Position     common.Vec3
	Facing       common.Vec3
	Player       common.Vec3
	HasPlayer    bool
	Objective    common.Vec3
	HasObjective bool
	Grounded     bool
}

// GroundedBrain walks toward a secondary objective until the player comes
// within DetectionRange or damages it.
type GroundedBrain struct {
	Speed          float64
	Gravity        float64
	DetectionRange float64
	KnockbackForce float64
	SpinSpeed      float64

	Aggroed          bool
	Target           EnemyTarget
	VerticalVelocity float64
	Death            DeathSequence
}

// ChooseTarget picks this tick's goal. Once aggroed the answer is always
// SeekPlayer.
func (b *GroundedBrain) ChooseTarget(in GroundedInput) EnemyTarget {
	if b.Aggroed {
		return SeekPlayer
	}
	if in.HasPlayer && common.Dist(in.Position, in.Player) <= b.DetectionRange {
		return SeekPlayer
	}
	return SeekSecondaryObjective
}

// Provoke makes the player the permanent target.
func (b *GroundedBrain) Provoke() {
	b.Aggroed = true
	b.Target = SeekPlayer
}

// Die starts the death sequence, pushing back and up from facing.
func (b *GroundedBrain) Die(facing common.Vec3) {
	b.Provoke()
	dir := facing.Neg().Add(common.Up).Normalize()
	b.Death.Start(dir, b.KnockbackForce, b.SpinSpeed, false)
}

func (b *GroundedBrain) Dying() bool { return b.Death.Active() }

// Tick advances the brain by dt.
func (b *GroundedBrain) Tick(dt float64, in GroundedInput) Steering {
	if b.Death.Active() {
		return b.Death.Step(dt)
	}

	var st Steering
	if in.Grounded {
		b.VerticalVelocity = groundedFallVelocity
	} else {
		b.VerticalVelocity += b.Gravity * dt
	}
	st.Move.Y = b.VerticalVelocity * dt

	b.Target = b.ChooseTarget(in)
	var goal common.Vec3
	switch {
	case b.Target == SeekPlayer && in.HasPlayer:
		goal = in.Player
	case b.Target == SeekSecondaryObjective && in.HasObjective:
		goal = in.Objective
	default:
		return st
	}

	dir := goal.Sub(in.Position).Flat().Normalize()
	if dir.IsZero() {
		return st
	}
	step := dir.Scale(b.Speed * dt)
	st.Move.X, st.Move.Z = step.X, step.Z
	st.Facing = dir
	return st
}

// PropellingInput is what a flying enemy perceives each tick.
type PropellingInput struct {
	Position  common.Vec3
	Facing    common.Vec3
	Player    common.Vec3
	HasPlayer bool
}

// PropellingBrain flies straight at the player.
type PropellingBrain struct {
	Speed          float64
	TurnRate       float64
	KnockbackForce float64
	SpinSpeed      float64

	Death DeathSequence
}

// Die starts the death sequence. The push is deliberately not normalised
// and the spin accelerates.
func (b *PropellingBrain) Die(facing common.Vec3) {
	b.Death.Start(facing.Neg().Add(common.Up), b.KnockbackForce, b.SpinSpeed, true)
}

func (b *PropellingBrain) Dying() bool { return b.Death.Active() }

func (b *PropellingBrain) Tick(dt float64, in PropellingInput) Steering {
	if b.Death.Active() {
		return b.Death.Step(dt)
	}
	if !in.HasPlayer {
		return Steering{}
	}
	dir := in.Player.Sub(in.Position).Normalize()
	if dir.IsZero() {
		return Steering{}
	}

	facing := in.Facing
	if facing.IsZero() {
		facing = dir
	}
	turned := common.LerpVec(facing, dir, common.Clamp01(b.TurnRate*dt)).Normalize()
	if turned.IsZero() {
		turned = dir
	}
	return Steering{Move: dir.Scale(b.Speed * dt), Facing: turned}
}
