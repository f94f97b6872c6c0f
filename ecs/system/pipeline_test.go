package system

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/registry"
)

const testDT = 1.0 / 60

type fixture struct {
	w      *ecs.World
	p      *Pipeline
	reg    *registry.Registry
	player ecs.Entity
	logs   *bytes.Buffer
}

func newFixture(t *testing.T, initial combat.WeaponKind, muzzle float64) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(0))
	reg := registry.New()
	f := &fixture{w: w, reg: reg, logs: logs}
	f.p = Install(w, Deps{
		Rand:     common.NewRand(7),
		Registry: reg,
		Build:    buildTestEnemy,
		Logger:   logger,
	})

	f.player = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, f.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, f.player, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 5, Gravity: -9.8}))
	require.NoError(t, ecs.Add(w, f.player, component.TransformComponent.Kind(), &component.Transform{Facing: common.Forward}))
	require.NoError(t, ecs.Add(w, f.player, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, f.player, component.AimComponent.Kind(), &component.Aim{Direction: common.Forward}))
	require.NoError(t, ecs.Add(w, f.player, component.ScoreComponent.Kind(), &component.Score{}))
	require.NoError(t, ecs.Add(w, f.player, component.WeaponComponent.Kind(), &component.Weapon{
		State:        combat.NewWeaponState(combat.DefaultProfiles(), initial),
		MuzzleHeight: muzzle,
	}))
	return f
}

func buildTestEnemy(w *ecs.World, kind string, pos common.Vec3) (ecs.Entity, error) {
	switch kind {
	case combat.KindGrounded:
		return addEnemy(w, kind, pos, &combat.BinaryHealth{}), nil
	case combat.KindZombie:
		return addEnemy(w, kind, pos, combat.NewGradedHealth(combat.ZombieWalker)), nil
	}
	return 0, fmt.Errorf("unknown enemy %q", kind)
}

func addEnemy(w *ecs.World, kind string, pos common.Vec3, health combat.Targetable) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{Kind: kind})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Facing: common.Forward.Neg()})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.5, Height: 2, HeadHeight: 0.4})
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Target: health})
	_ = ecs.Add(w, e, component.GroundedAIComponent.Kind(), &component.GroundedAI{Brain: combat.GroundedBrain{
		Gravity:        -9.8,
		KnockbackForce: 5,
		SpinSpeed:      18,
	}})
	return e
}

func (f *fixture) input() *component.Input {
	in, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	return in
}

func (f *fixture) score() *component.Score {
	s, _ := ecs.Get(f.w, f.player, component.ScoreComponent.Kind())
	return s
}

func eventsOf(w *ecs.World, t ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, ev := range w.Events().Peek() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func TestShotKillsGroundedEnemyThroughDeathSequence(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	enemy, err := buildTestEnemy(f.w, combat.KindGrounded, common.V3(0, 0, 10))
	require.NoError(t, err)

	f.input().Fire = true
	f.w.Tick(testDT)
	f.input().Fire = false

	fired := eventsOf(f.w, ecs.EventFired)
	require.Len(t, fired, 1)
	assert.Equal(t, 1, fired[0].Data.(ecs.FiredEvent).Hits)

	killed := eventsOf(f.w, ecs.EventKilled)
	require.Len(t, killed, 1)
	ke := killed[0].Data.(ecs.KilledEvent)
	assert.Equal(t, enemy, ke.Entity)
	assert.Equal(t, combat.WeaponPistol, ke.Weapon)
	assert.Equal(t, 100, ke.Points)

	assert.Equal(t, 1, f.reg.TotalKilled())
	assert.Equal(t, 0, f.reg.Active())
	assert.Equal(t, 100, f.score().Points)
	assert.Equal(t, 1, f.score().Kills)
	assert.True(t, ecs.Has(f.w, enemy, component.DyingComponent.Kind()))
	assert.Len(t, eventsOf(f.w, ecs.EventTrail), 1)

	f.w.Tick(testDT)
	assert.False(t, f.w.PhysicsWorld().HasTarget(enemy), "dying enemies leave the spatial index")

	ticks := 2
	for ecs.IsAlive(f.w, enemy) && ticks < 120 {
		f.w.Tick(testDT)
		ticks++
	}
	assert.False(t, ecs.IsAlive(f.w, enemy))
	assert.InDelta(t, 61, ticks, 2, "death sequence lasts about one second")
	assert.Equal(t, 1, f.reg.TotalKilled(), "removal after death is not a second kill")
}

func TestDeathSequencePushesEnemyBack(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	enemy, _ := buildTestEnemy(f.w, combat.KindGrounded, common.V3(0, 0, 10))

	f.input().Fire = true
	f.w.Tick(testDT)
	f.input().Fire = false

	tr, _ := ecs.Get(f.w, enemy, component.TransformComponent.Kind())
	before := tr.Position
	for i := 0; i < 10; i++ {
		f.w.Tick(testDT)
	}
	tr, _ = ecs.Get(f.w, enemy, component.TransformComponent.Kind())
	assert.Greater(t, tr.Position.Y, before.Y, "knockback lifts the enemy")
	assert.Greater(t, tr.Roll, 0.0)
}

func TestSimultaneousHitsCountOneKill(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	enemy, _ := buildTestEnemy(f.w, combat.KindGrounded, common.V3(5, 0, 5))

	hit := combat.DamageContext{Amount: 30, Area: combat.HitOther, Weapon: combat.WeaponShotgun}
	require.NoError(t, ecs.Add(f.w, enemy, component.DamageRequestComponent.Kind(), &component.DamageRequest{
		Hits: []combat.DamageContext{hit, hit, hit},
	}))
	f.w.Tick(testDT)

	assert.Len(t, eventsOf(f.w, ecs.EventKilled), 1)
	assert.Equal(t, 1, f.reg.TotalKilled())
	assert.Equal(t, 1, f.score().Kills)
	assert.False(t, ecs.Has(f.w, enemy, component.DamageRequestComponent.Kind()))

	for i := 0; i < 5; i++ {
		f.w.Tick(testDT)
	}
	assert.Equal(t, 1, f.reg.TotalKilled())
}

func TestShotgunBlastOnOneEnemyCountsOnce(t *testing.T) {
	f := newFixture(t, combat.WeaponShotgun, 1)
	buildTestEnemy(f.w, combat.KindGrounded, common.V3(0, 0, 2))

	f.input().Fire = true
	f.w.Tick(testDT)

	fired := eventsOf(f.w, ecs.EventFired)
	require.Len(t, fired, 1)
	assert.Equal(t, 5, fired[0].Data.(ecs.FiredEvent).Fire.AmmoLeft)
	assert.Len(t, eventsOf(f.w, ecs.EventTrail), 6)
	assert.LessOrEqual(t, len(eventsOf(f.w, ecs.EventKilled)), 1)
	assert.LessOrEqual(t, f.reg.TotalKilled(), 1)
}

func TestPistolHeadShotRemovesWalkerImmediately(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1.8)
	zombie, _ := buildTestEnemy(f.w, combat.KindZombie, common.V3(0, 0, 8))

	f.input().Fire = true
	f.w.Tick(testDT)

	killed := eventsOf(f.w, ecs.EventKilled)
	require.Len(t, killed, 1)
	assert.Equal(t, 50, killed[0].Data.(ecs.KilledEvent).Points)
	assert.Len(t, eventsOf(f.w, ecs.EventRemoved), 1)
	assert.False(t, ecs.IsAlive(f.w, zombie), "graded enemies skip the death sequence")
	assert.Equal(t, 1, f.reg.TotalKilled())
}

func TestNonLethalHitProvokesGradedEnemy(t *testing.T) {
	f := newFixture(t, combat.WeaponRifle, 1)
	zombie := addEnemy(f.w, combat.KindZombie, common.V3(0, 0, 30), combat.NewGradedHealth(combat.ZombieTank))

	f.input().Fire = true
	f.w.Tick(testDT)
	f.input().Fire = false

	h, _ := ecs.Get(f.w, zombie, component.HealthComponent.Kind())
	graded := h.Target.(*combat.GradedHealth)
	assert.Equal(t, 200-combat.FinalDamage(20, combat.HitOther), graded.Hitpoints())

	ai, _ := ecs.Get(f.w, zombie, component.GroundedAIComponent.Kind())
	assert.True(t, ai.Brain.Aggroed)
	assert.Empty(t, eventsOf(f.w, ecs.EventKilled))
	assert.Equal(t, 1, f.reg.Active())

	assert.True(t, ecs.Has(f.w, zombie, component.WhiteFlashComponent.Kind()))
	for i := 0; i < hitFlashFrames+2; i++ {
		f.w.Tick(testDT)
	}
	assert.False(t, ecs.Has(f.w, zombie, component.WhiteFlashComponent.Kind()))
}

func TestWeaponSwitchAndReloadInput(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	weapon, _ := ecs.Get(f.w, f.player, component.WeaponComponent.Kind())

	f.input().SwitchTo = 3
	f.w.Tick(testDT)
	assert.Equal(t, combat.WeaponShotgun, weapon.State.Active())
	assert.Len(t, eventsOf(f.w, ecs.EventWeaponSwitch), 1)
	assert.Zero(t, f.input().SwitchTo, "switch requests are consumed")

	f.input().Reload = true
	f.w.Tick(testDT)
	assert.False(t, weapon.State.Reloading(), "full magazine does not reload")
	assert.Empty(t, eventsOf(f.w, ecs.EventReload))
	assert.False(t, f.input().Reload)

	f.input().Fire = true
	f.w.Tick(testDT)
	f.input().Fire = false
	f.input().Reload = true
	f.w.Tick(testDT)
	assert.True(t, weapon.State.Reloading())
	assert.Len(t, eventsOf(f.w, ecs.EventReload), 1)
}

func TestSpawnSystemHonoursBudget(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	tower := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, tower, component.TransformComponent.Kind(), &component.Transform{Position: common.V3(20, 0, 20)}))
	require.NoError(t, ecs.Add(f.w, tower, component.SpawnerComponent.Kind(), &component.Spawner{Controller: combat.Spawner{
		Budget: combat.SpawnBudget{MaxSpawns: 5, MaxPerWave: 3, Interval: 0.5},
		Radius: 3,
		Types:  []string{combat.KindGrounded, "gargoyle"},
	}}))

	spawned := 0
	for i := 0; i < 60*30; i++ {
		f.w.Tick(testDT)
		spawned += len(eventsOf(f.w, ecs.EventSpawned))
	}

	sp, _ := ecs.Get(f.w, tower, component.SpawnerComponent.Kind())
	assert.Equal(t, 5, spawned)
	assert.Equal(t, 5, sp.Controller.Budget.TotalSpawned)
	assert.True(t, sp.Controller.Exhausted())
	assert.Equal(t, 5, ecs.Count(f.w, component.EnemyTagComponent.Kind()))
	assert.Equal(t, 5, f.reg.Active())
	assert.Contains(t, f.logs.String(), "spawn: cannot place enemy")

	ecs.ForEach(f.w, component.SpawnedByComponent.Kind(), func(e ecs.Entity, by *component.SpawnedBy) {
		assert.Equal(t, uint64(tower), by.Spawner)
		tr, _ := ecs.Get(f.w, e, component.TransformComponent.Kind())
		assert.LessOrEqual(t, common.Dist(tr.Position.Flat(), common.V3(20, 0, 20)), 3.0+1e-9)
	})
}

func TestDespawnNotifiesTowerWithoutKill(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	tower := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, tower, component.SpawnerComponent.Kind(), &component.Spawner{Controller: combat.Spawner{Active: 1}}))

	enemy, _ := buildTestEnemy(f.w, combat.KindGrounded, common.V3(0, 0, 40))
	require.NoError(t, ecs.Add(f.w, enemy, component.SpawnedByComponent.Kind(), &component.SpawnedBy{Spawner: uint64(tower)}))
	f.reg.Register(registry.ID(enemy))
	require.NoError(t, ecs.Add(f.w, enemy, component.DespawnRequestComponent.Kind(), &component.DespawnRequest{}))

	f.w.Tick(testDT)

	sp, _ := ecs.Get(f.w, tower, component.SpawnerComponent.Kind())
	assert.Equal(t, 0, sp.Controller.Active)
	assert.False(t, ecs.IsAlive(f.w, enemy))
	assert.Equal(t, 0, f.reg.TotalKilled())
	assert.Equal(t, 0, f.reg.Active())

	removed := eventsOf(f.w, ecs.EventRemoved)
	require.Len(t, removed, 1)
	assert.Equal(t, tower, removed[0].Data.(ecs.RemovedEvent).Spawner)
}

func TestTTLExpiresTrails(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	e := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.05}))

	f.w.Tick(0.02)
	f.w.Tick(0.02)
	assert.True(t, ecs.IsAlive(f.w, e))
	f.w.Tick(0.02)
	assert.False(t, ecs.IsAlive(f.w, e))
}

func TestPlayerControllerMovesAndFaces(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	f.input().MoveX = 1
	f.input().MoveZ = 1
	aim, _ := ecs.Get(f.w, f.player, component.AimComponent.Kind())
	aim.Direction = common.V3(1, 0.5, 0)

	f.w.Tick(1)

	tr, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	assert.InDelta(t, 5, tr.Position.Flat().Len(), 1e-9, "diagonal input is normalised")
	assert.Equal(t, 0.0, tr.Position.Y)
	assert.InDelta(t, 1, tr.Facing.X, 1e-9)
	assert.InDelta(t, 0, tr.Facing.Y, 1e-9)
}

func TestTallyScoreSwap(t *testing.T) {
	f := newFixture(t, combat.WeaponPistol, 1)
	f.p.Tally.SetScore(combat.TableScore{Table: map[string]int{combat.KindGrounded: 7}})
	f.p.Tally.SetScore(nil)

	buildTestEnemy(f.w, combat.KindGrounded, common.V3(0, 0, 10))
	f.input().Fire = true
	f.w.Tick(testDT)

	assert.Equal(t, 7, f.score().Points)
	assert.Same(t, f.reg, f.p.Tally.Registry())
}
