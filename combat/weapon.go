package combat

import (
	"fmt"
	"strings"
)

// WeaponKind identifies a weapon class. The numeric order doubles as the
// weapon slot index used by hosts (slot 0 is melee).
type WeaponKind int

const (
	WeaponMelee WeaponKind = iota
	WeaponPistol
	WeaponShotgun
	WeaponRifle

	weaponKindCount
)

var weaponKindNames = [...]string{
	WeaponMelee:   "melee",
	WeaponPistol:  "pistol",
	WeaponShotgun: "shotgun",
	WeaponRifle:   "rifle",
}

func (k WeaponKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("weapon(%d)", int(k))
	}
	return weaponKindNames[k]
}

// Valid reports whether k names a known weapon class.
func (k WeaponKind) Valid() bool {
	return k >= 0 && k < weaponKindCount
}

// ParseWeaponKind maps a prefab name to a WeaponKind.
func ParseWeaponKind(s string) (WeaponKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weaponKindNames {
		if n == name {
			return WeaponKind(i), nil
		}
	}
	return 0, fmt.Errorf("combat: unknown weapon kind %q", s)
}

// UnmarshalText lets WeaponKind be decoded from config files.
func (k *WeaponKind) UnmarshalText(text []byte) error {
	v, err := ParseWeaponKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k WeaponKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// WeaponProfile is the static configuration of one weapon class.
type WeaponProfile struct {
	Kind        WeaponKind
	FireRate    float64 // shots per second
	MaxAmmo     int
	ReloadTime  float64 // seconds
	Range       float64
	MeleeRadius float64
	Spread      float64
	Pellets     int
	Damage      int
}

// Clamped returns a copy with every field forced into its usable range.
// Profiles are not validated on load; this is applied where they are used.
func (p WeaponProfile) Clamped() WeaponProfile {
	if p.FireRate <= 0 {
		p.FireRate = 1
	}
	if p.MaxAmmo < 0 {
		p.MaxAmmo = 0
	}
	if p.ReloadTime < 0 {
		p.ReloadTime = 0
	}
	if p.Range <= 0 {
		p.Range = 1
	}
	if p.MeleeRadius < 0 {
		p.MeleeRadius = 0
	}
	if p.Spread < 0 {
		p.Spread = 0
	}
	if p.Pellets < 1 {
		p.Pellets = 1
	}
	if p.Damage < 0 {
		p.Damage = 0
	}
	return p
}

// Cooldown is the refractory period after a shot.
func (p WeaponProfile) Cooldown() float64 {
	return 1 / p.Clamped().FireRate
}

// UsesAmmo reports whether firing consumes ammunition.
func (p WeaponProfile) UsesAmmo() bool {
	return p.Kind != WeaponMelee
}

// DefaultProfiles is the built-in weapon set, one profile per kind in slot
// order. Prefab files normally override them.
func DefaultProfiles() []WeaponProfile {
	return []WeaponProfile{
		{Kind: WeaponMelee, FireRate: 2, Range: 2, MeleeRadius: 2, Pellets: 1, Damage: 25},
		{Kind: WeaponPistol, FireRate: 3, MaxAmmo: 12, ReloadTime: 1.2, Range: 50, Spread: 0, Pellets: 1, Damage: 30},
		{Kind: WeaponShotgun, FireRate: 1, MaxAmmo: 6, ReloadTime: 2, Range: 20, Spread: 0.1, Pellets: 6, Damage: 15},
		{Kind: WeaponRifle, FireRate: 8, MaxAmmo: 30, ReloadTime: 2.5, Range: 80, Pellets: 1, Damage: 20},
	}
}
