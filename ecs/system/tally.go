package system

import (
	"log/slog"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/registry"
)

// TallySystem keeps the kill registry in step with the world. It registers
// living enemies, counts each death transition once, awards score to the
// player and starts the death sequence.
type TallySystem struct {
	registry *registry.Registry
	score    combat.ScoreRules
	logger   *slog.Logger
}

func NewTallySystem(reg *registry.Registry, score combat.ScoreRules, logger *slog.Logger) *TallySystem {
	if reg == nil {
		reg = registry.New()
	}
	if score == nil {
		score = combat.DefaultScore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TallySystem{registry: reg, score: score, logger: logger.With("system", "tally")}
}

func (s *TallySystem) Registry() *registry.Registry { return s.registry }

// SetScore swaps the scoring rules, e.g. after a script reload.
func (s *TallySystem) SetScore(score combat.ScoreRules) {
	if score != nil {
		s.score = score
	}
}

func (s *TallySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.EnemyTagComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag) {
		if ecs.Has(w, e, component.DyingComponent.Kind()) || ecs.Has(w, e, component.DespawnRequestComponent.Kind()) {
			return
		}
		s.registry.Register(registry.ID(e))
	})

	ecs.ForEach(w, component.KilledComponent.Kind(), func(e ecs.Entity, killed *component.Killed) {
		_ = ecs.Remove(w, e, component.KilledComponent.Kind())

		if tag, ok := ecs.Get(w, e, component.EnemyTagComponent.Kind()); ok && s.registry.Killed(registry.ID(e)) {
			points := s.score.Points(tag.Kind, killed.Weapon)
			s.award(w, points)
			w.Emit(ecs.EventKilled, ecs.KilledEvent{Entity: e, Kind: tag.Kind, Weapon: killed.Weapon, Points: points})
			s.logger.Info("tally: enemy killed", "entity", e, "kind", tag.Kind, "weapon", killed.Weapon.String(), "points", points, "total", s.registry.TotalKilled())
		}

		startDeath(w, e)
	})
}

func (s *TallySystem) award(w *ecs.World, points int) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	score, ok := ecs.Get(w, player, component.ScoreComponent.Kind())
	if !ok {
		score = &component.Score{}
	}
	score.Points += points
	score.Kills++
	_ = ecs.Add(w, player, component.ScoreComponent.Kind(), score)
}

// startDeath plays the knockback sequence for brained enemies and removes
// everything else straight away.
func startDeath(w *ecs.World, e ecs.Entity) {
	facing := combatForward(w, e)
	switch {
	case ecs.Has(w, e, component.GroundedAIComponent.Kind()) && isBinary(w, e):
		ai, _ := ecs.Get(w, e, component.GroundedAIComponent.Kind())
		ai.Brain.Die(facing)
		_ = ecs.Add(w, e, component.DyingComponent.Kind(), &component.Dying{})
	case ecs.Has(w, e, component.PropellingAIComponent.Kind()):
		ai, _ := ecs.Get(w, e, component.PropellingAIComponent.Kind())
		ai.Brain.Die(facing)
		_ = ecs.Add(w, e, component.DyingComponent.Kind(), &component.Dying{})
	default:
		_ = ecs.Add(w, e, component.DespawnRequestComponent.Kind(), &component.DespawnRequest{})
	}
}

func isBinary(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	_, binary := h.Target.(*combat.BinaryHealth)
	return binary
}
