package arena

import (
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

// Status is what a HUD or a run report shows about an arena.
type Status struct {
	Time           float64
	Weapon         string
	Ammo           string
	Reloading      bool
	ReloadProgress float64
	Points         int
	Kills          int
	ActiveEnemies  int
	TotalKilled    int
	TowersLeft     int
}

func (a *Arena) Status() Status {
	now := a.World.Now()
	st := Status{Time: now}
	if ws := a.Weapon(); ws != nil {
		st.Weapon = ws.Active().String()
		st.Ammo = ws.AmmoReadout()
		st.Reloading = ws.Reloading()
		st.ReloadProgress = ws.ReloadProgress(now)
	}
	if score, ok := ecs.Get(a.World, a.Player, component.ScoreComponent.Kind()); ok {
		st.Points = score.Points
		st.Kills = score.Kills
	}
	snap := a.Pipeline.Tally.Registry().Snapshot()
	st.ActiveEnemies = snap.Active
	st.TotalKilled = snap.TotalKilled
	ecs.ForEach(a.World, component.SpawnerComponent.Kind(), func(_ ecs.Entity, sp *component.Spawner) {
		if !sp.Controller.Exhausted() {
			st.TowersLeft++
		}
	})
	return st
}

// Cleared reports whether every tower is spent and no enemy remains.
func (a *Arena) Cleared() bool {
	st := a.Status()
	return st.TowersLeft == 0 && ecs.Count(a.World, component.EnemyTagComponent.Kind()) == 0
}
