package combat

import (
	"github.com/milk9111/watchtower/common"
)

// SpawnBudget bounds how many enemies a spawner will ever produce.
type SpawnBudget struct {
	TotalSpawned int
	MaxSpawns    int
	MaxPerWave   int
	Interval     float64
}

// Remaining is how many spawns are left in the budget.
func (b SpawnBudget) Remaining() int {
	if r := b.MaxSpawns - b.TotalSpawned; r > 0 {
		return r
	}
	return 0
}

// SpawnOrder asks the host to place one enemy.
type SpawnOrder struct {
	Type     string
	Position common.Vec3
	Wave     int
}

// SpawnFunc places one enemy and reports whether it was created. A false
// result does not consume budget.
type SpawnFunc func(SpawnOrder) bool

// Spawner emits waves of enemies on a repeating timer until its budget is
// spent.
type Spawner struct {
	Budget SpawnBudget
	Radius float64
	Types  []string
	Origin common.Vec3

	// MaxActive caps living spawned enemies; zero is unlimited.
	MaxActive int
	Active    int

	elapsed float64
	waves   int
}

// Exhausted reports whether the spawner will never spawn again.
func (s *Spawner) Exhausted() bool {
	return s == nil || s.Budget.TotalSpawned >= s.Budget.MaxSpawns
}

// Waves is the number of waves fired so far.
func (s *Spawner) Waves() int { return s.waves }

// OnRemoved is called when one of this spawner's enemies leaves the world.
func (s *Spawner) OnRemoved() {
	if s != nil && s.Active > 0 {
		s.Active--
	}
}

// Tick advances the wave timer by dt and fires at most one wave. It returns
// the number of enemies spawned.
func (s *Spawner) Tick(dt float64, rng common.Rand, spawn SpawnFunc) int {
	if s.Exhausted() || len(s.Types) == 0 || spawn == nil || rng == nil {
		return 0
	}
	interval := s.Budget.Interval
	if interval <= 0 {
		interval = 1
	}
	s.elapsed += dt
	if s.elapsed < interval {
		return 0
	}
	s.elapsed -= interval
	s.waves++

	perWave := s.Budget.MaxPerWave
	if perWave < 1 {
		perWave = 1
	}
	count := 1 + rng.IntN(perWave)
	if r := s.Budget.Remaining(); count > r {
		count = r
	}
	if s.MaxActive > 0 {
		if free := s.MaxActive - s.Active; count > free {
			count = free
		}
	}

	spawned := 0
	for i := 0; i < count; i++ {
		kind := s.Types[rng.IntN(len(s.Types))]
		x, z := common.InsideDisk(rng, s.Radius)
		order := SpawnOrder{
			Type:     kind,
			Position: common.Vec3{X: s.Origin.X + x, Y: s.Origin.Y, Z: s.Origin.Z + z},
			Wave:     s.waves,
		}
		if !spawn(order) {
			continue
		}
		spawned++
		s.Budget.TotalSpawned++
		s.Active++
	}
	return spawned
}
