package combat

import (
	"fmt"
	"strings"
)

// ZombieClass selects the starting hitpoints of a graded-health enemy.
type ZombieClass int

const (
	ZombieWalker ZombieClass = iota
	ZombieRunner
	ZombieTank
	ZombieCrawler
	ZombieSpitter
	ZombieExploder
	ZombieArmored

	zombieClassCount
)

var zombieClasses = [...]struct {
	name      string
	hitpoints int
}{
	ZombieWalker:   {"walker", 50},
	ZombieRunner:   {"runner", 40},
	ZombieTank:     {"tank", 200},
	ZombieCrawler:  {"crawler", 30},
	ZombieSpitter:  {"spitter", 60},
	ZombieExploder: {"exploder", 80},
	ZombieArmored:  {"armored", 150},
}

func (c ZombieClass) String() string {
	if c < 0 || c >= zombieClassCount {
		return fmt.Sprintf("zombie(%d)", int(c))
	}
	return zombieClasses[c].name
}

// Hitpoints returns the class's starting hitpoints.
func (c ZombieClass) Hitpoints() int {
	if c < 0 || c >= zombieClassCount {
		return 1
	}
	return zombieClasses[c].hitpoints
}

func ParseZombieClass(s string) (ZombieClass, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, c := range zombieClasses {
		if c.name == name {
			return ZombieClass(i), nil
		}
	}
	return 0, fmt.Errorf("combat: unknown zombie class %q", s)
}

func (c *ZombieClass) UnmarshalText(text []byte) error {
	v, err := ParseZombieClass(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c ZombieClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
