package combat

import "fmt"

// WeaponPhase is the state of the equipped weapon.
type WeaponPhase int

const (
	WeaponIdle WeaponPhase = iota
	WeaponCooling
	WeaponReloading
)

func (p WeaponPhase) String() string {
	switch p {
	case WeaponIdle:
		return "idle"
	case WeaponCooling:
		return "cooling"
	case WeaponReloading:
		return "reloading"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// FireOutcome reports why a fire request did or did not produce a shot.
// Rejections are ordinary results, not errors.
type FireOutcome int

const (
	FireOK FireOutcome = iota
	FireCooling
	FireReloading
	FireEmpty
)

func (o FireOutcome) String() string {
	switch o {
	case FireOK:
		return "ok"
	case FireCooling:
		return "cooling"
	case FireReloading:
		return "reloading"
	case FireEmpty:
		return "empty"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// FireEvent is emitted once per accepted shot.
type FireEvent struct {
	Weapon   WeaponKind
	Time     float64
	AmmoLeft int
}

// WeaponState is the per-wielder fire/reload state machine. Ammunition is
// tracked per weapon kind and survives switching.
type WeaponState struct {
	profiles [weaponKindCount]WeaponProfile
	owned    [weaponKindCount]bool
	ammo     [weaponKindCount]int

	active       WeaponKind
	phase        WeaponPhase
	nextFireAt   float64
	reloadStart  float64
	reloadDoneAt float64
}

// NewWeaponState builds a state from the given profiles with every weapon
// fully loaded. When initial is not configured the lowest configured slot is
// equipped.
func NewWeaponState(profiles []WeaponProfile, initial WeaponKind) *WeaponState {
	s := &WeaponState{}
	s.SetProfiles(profiles)
	if !initial.Valid() || !s.owned[initial] {
		initial = s.firstOwned()
	}
	s.active = initial
	return s
}

// SetProfiles replaces the configured profiles, keeping stored ammunition
// clamped to the new capacities. Unknown kinds are ignored.
func (s *WeaponState) SetProfiles(profiles []WeaponProfile) {
	if s == nil {
		return
	}
	for _, p := range profiles {
		if !p.Kind.Valid() {
			continue
		}
		s.profiles[p.Kind] = p.Clamped()
		if !s.owned[p.Kind] {
			s.owned[p.Kind] = true
			s.ammo[p.Kind] = s.profiles[p.Kind].MaxAmmo
		}
		if s.ammo[p.Kind] > s.profiles[p.Kind].MaxAmmo {
			s.ammo[p.Kind] = s.profiles[p.Kind].MaxAmmo
		}
	}
	if !s.owned[s.active] {
		s.active = s.firstOwned()
	}
}

func (s *WeaponState) firstOwned() WeaponKind {
	for k := WeaponKind(0); k < weaponKindCount; k++ {
		if s.owned[k] {
			return k
		}
	}
	return WeaponMelee
}

// Update advances timers to now: a finished cooldown returns to Idle and a
// finished reload refills the active weapon.
func (s *WeaponState) Update(now float64) {
	if s == nil {
		return
	}
	switch s.phase {
	case WeaponCooling:
		if now >= s.nextFireAt {
			s.phase = WeaponIdle
		}
	case WeaponReloading:
		if now >= s.reloadDoneAt {
			s.ammo[s.active] = s.profiles[s.active].MaxAmmo
			s.phase = WeaponIdle
		}
	}
}

// Fire attempts a shot at time now.
func (s *WeaponState) Fire(now float64) (FireEvent, FireOutcome) {
	if s == nil {
		return FireEvent{}, FireEmpty
	}
	s.Update(now)

	switch s.phase {
	case WeaponReloading:
		return FireEvent{}, FireReloading
	case WeaponCooling:
		return FireEvent{}, FireCooling
	}
	if now < s.nextFireAt {
		return FireEvent{}, FireCooling
	}

	p := s.profiles[s.active]
	if p.UsesAmmo() {
		if s.ammo[s.active] <= 0 {
			return FireEvent{}, FireEmpty
		}
		s.ammo[s.active]--
	}

	s.nextFireAt = now + p.Cooldown()
	s.phase = WeaponCooling
	return FireEvent{Weapon: s.active, Time: now, AmmoLeft: s.ammo[s.active]}, FireOK
}

// Reload starts a reload of the active weapon. It returns false when the
// request is rejected: melee, already reloading, or already full.
func (s *WeaponState) Reload(now float64) bool {
	if s == nil {
		return false
	}
	s.Update(now)

	p := s.profiles[s.active]
	if !p.UsesAmmo() || s.phase == WeaponReloading || s.ammo[s.active] >= p.MaxAmmo {
		return false
	}

	s.phase = WeaponReloading
	s.reloadStart = now
	s.reloadDoneAt = now + p.ReloadTime
	s.Update(now)
	return true
}

// Switch equips kind. Any reload in progress is abandoned without touching
// ammunition; the fire cooldown carries over to the new weapon. Switching to
// the active or an unconfigured kind is a no-op.
func (s *WeaponState) Switch(kind WeaponKind) bool {
	if s == nil || !kind.Valid() || !s.owned[kind] || kind == s.active {
		return false
	}
	s.active = kind
	s.phase = WeaponIdle
	s.reloadDoneAt = 0
	return true
}

// SwitchSlot equips the weapon in slot index. Out-of-range slots are ignored.
func (s *WeaponState) SwitchSlot(index int) bool {
	if index < 0 || index >= int(weaponKindCount) {
		return false
	}
	return s.Switch(WeaponKind(index))
}

func (s *WeaponState) Active() WeaponKind { return s.active }

func (s *WeaponState) Phase() WeaponPhase { return s.phase }

func (s *WeaponState) Reloading() bool { return s.phase == WeaponReloading }

// Profile returns the active weapon's clamped profile.
func (s *WeaponState) Profile() WeaponProfile { return s.profiles[s.active] }

// Ammo returns the active weapon's loaded rounds.
func (s *WeaponState) Ammo() int { return s.ammo[s.active] }

// AmmoFor returns the stored rounds of any weapon kind.
func (s *WeaponState) AmmoFor(kind WeaponKind) int {
	if !kind.Valid() {
		return 0
	}
	return s.ammo[kind]
}

func (s *WeaponState) MaxAmmo() int { return s.profiles[s.active].MaxAmmo }

// NextFireAt is the earliest time the next shot can be accepted.
func (s *WeaponState) NextFireAt() float64 { return s.nextFireAt }

// ReloadProgress reports reload completion in [0, 1]; 0 when not reloading.
func (s *WeaponState) ReloadProgress(now float64) float64 {
	if s.phase != WeaponReloading {
		return 0
	}
	d := s.reloadDoneAt - s.reloadStart
	if d <= 0 {
		return 1
	}
	t := (now - s.reloadStart) / d
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// AmmoReadout formats the active weapon's ammunition for display.
func (s *WeaponState) AmmoReadout() string {
	if !s.profiles[s.active].UsesAmmo() {
		return "MELEE"
	}
	return fmt.Sprintf("%d / %d", s.Ammo(), s.MaxAmmo())
}
