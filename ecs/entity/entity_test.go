package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
	"github.com/milk9111/watchtower/levels"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := LoadCatalog(context.Background())
	require.NoError(t, err)
	return cat
}

func TestBuildEnemyDispatch(t *testing.T) {
	cat := loadCatalog(t)
	w := ecs.NewWorld()

	cases := []struct {
		kind      string
		wantKind  string
		wantBrain bool
		binary    bool
		hitpoints int
	}{
		{"grounded", combat.KindGrounded, true, true, 0},
		{"propelling", combat.KindPropelling, false, true, 0},
		{"zombie", combat.KindZombie, true, false, 50},
		{"Tank", combat.KindZombie, true, false, 200},
		{"runner", combat.KindZombie, true, false, 40},
	}
	for _, c := range cases {
		t.Run(c.kind, func(t *testing.T) {
			e, err := cat.BuildEnemy(w, c.kind, common.V3(1, 0, 2))
			require.NoError(t, err)

			tag, ok := ecs.Get(w, e, component.EnemyTagComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, c.wantKind, tag.Kind)
			assert.Equal(t, c.wantBrain, ecs.Has(w, e, component.GroundedAIComponent.Kind()))
			assert.Equal(t, !c.wantBrain, ecs.Has(w, e, component.PropellingAIComponent.Kind()))
			assert.True(t, ecs.Has(w, e, component.PhysicsBodyComponent.Kind()))

			h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
			require.True(t, ok)
			if c.binary {
				assert.IsType(t, &combat.BinaryHealth{}, h.Target)
				return
			}
			graded, ok := h.Target.(*combat.GradedHealth)
			require.True(t, ok)
			assert.Equal(t, c.hitpoints, graded.Hitpoints())
		})
	}

	_, err := cat.BuildEnemy(w, "dragon", common.Vec3{})
	assert.Error(t, err)
}

func TestPropellingEnemySpawnsAtAltitude(t *testing.T) {
	cat := loadCatalog(t)
	w := ecs.NewWorld()

	e, err := NewPropellingEnemy(w, cat, common.V3(0, 0, 0))
	require.NoError(t, err)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, cat.Enemies.Propelling.Altitude, tr.Position.Y)
}

func TestNewPlayerWeaponRig(t *testing.T) {
	cat := loadCatalog(t)
	w := ecs.NewWorld()

	e, err := NewPlayerAt(w, cat, common.V3(3, 0, 4))
	require.NoError(t, err)

	weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, weapon.State)
	assert.Equal(t, cat.Player.InitialWeapon, weapon.State.Active())
	assert.Equal(t, weapon.State.MaxAmmo(), weapon.State.Ammo())
	assert.True(t, ecs.Has(w, e, component.ScoreComponent.Kind()))
	assert.False(t, ecs.Has(w, e, component.HealthComponent.Kind()))

	_, err = NewPlayerAt(w, &Catalog{}, common.Vec3{})
	assert.Error(t, err)
}

func TestNewTower(t *testing.T) {
	cat := loadCatalog(t)
	w := ecs.NewWorld()

	e, err := NewTower(w, cat, "crypt", common.V3(5, 0, 5))
	require.NoError(t, err)
	sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, common.V3(5, 0, 5), sp.Controller.Origin)
	assert.Equal(t, cat.Towers.Towers["crypt"].MaxSpawns, sp.Controller.Budget.MaxSpawns)

	_, err = NewTower(w, cat, "lighthouse", common.Vec3{})
	assert.Error(t, err)
}

func TestLoadLevelToWorld(t *testing.T) {
	cat := loadCatalog(t)
	lvl, err := levels.LoadLevelFromFS("arena.json")
	require.NoError(t, err)

	w := ecs.NewWorld()
	player, err := LoadLevelToWorld(w, cat, lvl)
	require.NoError(t, err)
	require.NotNil(t, w.PhysicsWorld())
	assert.True(t, ecs.Has(w, player, component.PlayerTagComponent.Kind()))
	assert.Equal(t, 3, ecs.Count(w, component.SpawnerComponent.Kind()))
	assert.Equal(t, 3, ecs.Count(w, component.EnemyTagComponent.Kind()))
	assert.Equal(t, 2, ecs.Count(w, component.ObjectiveTagComponent.Kind()))
}

func TestLoadLevelRejectsUnknownType(t *testing.T) {
	cat := loadCatalog(t)
	lvl := &levels.Level{Name: "bad", Entities: []levels.Entity{{Type: "player"}, {Type: "unicorn"}}}
	_, err := LoadLevelToWorld(ecs.NewWorld(), cat, lvl)
	assert.Error(t, err)
}

func TestCatalogReload(t *testing.T) {
	cat := loadCatalog(t)
	ok, err := cat.Reload("weapons.yaml")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cat.Reload("readme.yaml")
	require.NoError(t, err)
	assert.False(t, ok)
}
