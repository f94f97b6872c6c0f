package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/watchtower/combat"
	"gopkg.in/yaml.v3"
)

const (
	WeaponsFile = "weapons.yaml"
	EnemiesFile = "enemies.yaml"
	ZombiesFile = "zombies.yaml"
	TowersFile  = "towers.yaml"
	PlayerFile  = "player.yaml"
	ScoreFile   = "score.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type WeaponsSpec struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

type WeaponSpec struct {
	Kind        combat.WeaponKind `yaml:"kind"`
	FireRate    float64           `yaml:"fire_rate"`
	MaxAmmo     int               `yaml:"max_ammo"`
	ReloadTime  float64           `yaml:"reload_time"`
	Range       float64           `yaml:"range"`
	MeleeRadius float64           `yaml:"melee_radius"`
	Spread      float64           `yaml:"spread"`
	Pellets     int               `yaml:"pellets"`
	Damage      int               `yaml:"damage"`
}

func LoadWeaponsSpec() (*WeaponsSpec, error) {
	spec, err := LoadSpec[WeaponsSpec](WeaponsFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Profiles overlays the listed weapons on the built-in profiles. Kinds the
// file does not mention keep their defaults.
func (s *WeaponsSpec) Profiles() []combat.WeaponProfile {
	profiles := combat.DefaultProfiles()
	if s == nil {
		return profiles
	}
	for _, w := range s.Weapons {
		if !w.Kind.Valid() {
			continue
		}
		profiles[w.Kind] = combat.WeaponProfile{
			Kind:        w.Kind,
			FireRate:    w.FireRate,
			MaxAmmo:     w.MaxAmmo,
			ReloadTime:  w.ReloadTime,
			Range:       w.Range,
			MeleeRadius: w.MeleeRadius,
			Spread:      w.Spread,
			Pellets:     w.Pellets,
			Damage:      w.Damage,
		}.Clamped()
	}
	return profiles
}

type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Head   float64 `yaml:"head"`
}

type GroundedEnemySpec struct {
	Speed          float64      `yaml:"speed"`
	Gravity        float64      `yaml:"gravity"`
	DetectionRange float64      `yaml:"detection_range"`
	KnockbackForce float64      `yaml:"knockback_force"`
	SpinSpeed      float64      `yaml:"spin_speed"`
	Collider       ColliderSpec `yaml:"collider"`
	Color          YAMLColor    `yaml:"color"`
}

type PropellingEnemySpec struct {
	Speed          float64      `yaml:"speed"`
	TurnRate       float64      `yaml:"turn_rate"`
	KnockbackForce float64      `yaml:"knockback_force"`
	SpinSpeed      float64      `yaml:"spin_speed"`
	Altitude       float64      `yaml:"altitude"`
	Collider       ColliderSpec `yaml:"collider"`
	Color          YAMLColor    `yaml:"color"`
}

type EnemiesSpec struct {
	Grounded   GroundedEnemySpec   `yaml:"grounded"`
	Propelling PropellingEnemySpec `yaml:"propelling"`
}

func LoadEnemiesSpec() (*EnemiesSpec, error) {
	spec, err := LoadSpec[EnemiesSpec](EnemiesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ZombieClassSpec tunes one zombie class. A zero Hitpoints keeps the class
// default.
type ZombieClassSpec struct {
	Class     combat.ZombieClass `yaml:"class"`
	Hitpoints int                `yaml:"hitpoints"`
	Speed     float64            `yaml:"speed"`
}

type ZombiesSpec struct {
	Speed          float64           `yaml:"speed"`
	Gravity        float64           `yaml:"gravity"`
	DetectionRange float64           `yaml:"detection_range"`
	Collider       ColliderSpec      `yaml:"collider"`
	Color          YAMLColor         `yaml:"color"`
	Classes        []ZombieClassSpec `yaml:"classes"`
}

func LoadZombiesSpec() (*ZombiesSpec, error) {
	spec, err := LoadSpec[ZombiesSpec](ZombiesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Class returns the tuning for c, falling back to the shared speed and the
// class's built-in hitpoints.
func (s *ZombiesSpec) Class(c combat.ZombieClass) ZombieClassSpec {
	out := ZombieClassSpec{Class: c, Hitpoints: c.Hitpoints()}
	if s == nil {
		return out
	}
	out.Speed = s.Speed
	for _, cs := range s.Classes {
		if cs.Class != c {
			continue
		}
		if cs.Hitpoints > 0 {
			out.Hitpoints = cs.Hitpoints
		}
		if cs.Speed > 0 {
			out.Speed = cs.Speed
		}
	}
	return out
}

type TowerSpec struct {
	Radius     float64   `yaml:"radius"`
	MaxSpawns  int       `yaml:"max_spawns"`
	MaxPerWave int       `yaml:"max_per_wave"`
	Interval   float64   `yaml:"interval"`
	MaxActive  int       `yaml:"max_active"`
	Types      []string  `yaml:"types"`
	Color      YAMLColor `yaml:"color"`
}

type TowersSpec struct {
	Towers map[string]TowerSpec `yaml:"towers"`
}

func LoadTowersSpec() (*TowersSpec, error) {
	spec, err := LoadSpec[TowersSpec](TowersFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tower looks up a named tower preset.
func (s *TowersSpec) Tower(name string) (TowerSpec, error) {
	if s != nil {
		if t, ok := s.Towers[name]; ok {
			return t, nil
		}
	}
	return TowerSpec{}, fmt.Errorf("prefabs: unknown tower %q", name)
}

// Spawner converts the preset into a spawn controller centred on origin.
func (t TowerSpec) Spawner() combat.Spawner {
	return combat.Spawner{
		Budget: combat.SpawnBudget{
			MaxSpawns:  t.MaxSpawns,
			MaxPerWave: t.MaxPerWave,
			Interval:   t.Interval,
		},
		Radius:    t.Radius,
		Types:     append([]string(nil), t.Types...),
		MaxActive: t.MaxActive,
	}
}

type PlayerSpec struct {
	MoveSpeed     float64           `yaml:"move_speed"`
	Gravity       float64           `yaml:"gravity"`
	MuzzleHeight  float64           `yaml:"muzzle_height"`
	InitialWeapon combat.WeaponKind `yaml:"initial_weapon"`
	Collider      ColliderSpec      `yaml:"collider"`
	Color         YAMLColor         `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ScoreSpec struct {
	Default int            `yaml:"default"`
	Points  map[string]int `yaml:"points"`
	Script  string         `yaml:"script"`
}

func LoadScoreSpec() (*ScoreSpec, error) {
	spec, err := LoadSpec[ScoreSpec](ScoreFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Table returns the static points table, seeded from the built-in values.
func (s *ScoreSpec) Table() combat.TableScore {
	t := combat.DefaultScore()
	if s == nil {
		return t
	}
	for k, v := range s.Points {
		t.Table[k] = v
	}
	if s.Default != 0 {
		t.Default = s.Default
	}
	return t
}

// Rules builds the scoring rules. With a script configured the table becomes
// the script's fallback.
func (s *ScoreSpec) Rules() (combat.ScoreRules, error) {
	table := s.Table()
	if s == nil || s.Script == "" {
		return table, nil
	}
	src, err := LoadScript(s.Script)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load score script %s: %w", s.Script, err)
	}
	return combat.NewScriptScore(src, table)
}

type YAMLColor struct {
	color.Color
}

// Or returns the colour or fallback when the field was left unset.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
