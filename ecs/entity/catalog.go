package entity

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/watchtower/prefabs"
)

// Catalog is the loaded prefab tuning entities are built from.
type Catalog struct {
	Player  *prefabs.PlayerSpec
	Weapons *prefabs.WeaponsSpec
	Enemies *prefabs.EnemiesSpec
	Zombies *prefabs.ZombiesSpec
	Towers  *prefabs.TowersSpec
	Score   *prefabs.ScoreSpec
}

// LoadCatalog reads every prefab file.
func LoadCatalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cat.Player, err = prefabs.LoadPlayerSpec()
		return err
	})
	g.Go(func() (err error) {
		cat.Weapons, err = prefabs.LoadWeaponsSpec()
		return err
	})
	g.Go(func() (err error) {
		cat.Enemies, err = prefabs.LoadEnemiesSpec()
		return err
	})
	g.Go(func() (err error) {
		cat.Zombies, err = prefabs.LoadZombiesSpec()
		return err
	})
	g.Go(func() (err error) {
		cat.Towers, err = prefabs.LoadTowersSpec()
		return err
	})
	g.Go(func() (err error) {
		cat.Score, err = prefabs.LoadScoreSpec()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("entity: load catalog: %w", err)
	}
	return &cat, nil
}

// Reload re-reads the prefab file name into the catalog. It reports whether
// name is a file the catalog knows.
func (c *Catalog) Reload(name string) (bool, error) {
	var err error
	switch name {
	case prefabs.PlayerFile:
		var s *prefabs.PlayerSpec
		if s, err = prefabs.LoadPlayerSpec(); err == nil {
			c.Player = s
		}
	case prefabs.WeaponsFile:
		var s *prefabs.WeaponsSpec
		if s, err = prefabs.LoadWeaponsSpec(); err == nil {
			c.Weapons = s
		}
	case prefabs.EnemiesFile:
		var s *prefabs.EnemiesSpec
		if s, err = prefabs.LoadEnemiesSpec(); err == nil {
			c.Enemies = s
		}
	case prefabs.ZombiesFile:
		var s *prefabs.ZombiesSpec
		if s, err = prefabs.LoadZombiesSpec(); err == nil {
			c.Zombies = s
		}
	case prefabs.TowersFile:
		var s *prefabs.TowersSpec
		if s, err = prefabs.LoadTowersSpec(); err == nil {
			c.Towers = s
		}
	case prefabs.ScoreFile:
		var s *prefabs.ScoreSpec
		if s, err = prefabs.LoadScoreSpec(); err == nil {
			c.Score = s
		}
	default:
		return false, nil
	}
	return true, err
}

func tint(c prefabs.YAMLColor, fallback color.RGBA) color.Color {
	return c.Or(fallback)
}

var (
	playerColor     = colornames.Steelblue
	objectiveColor  = colornames.Gold
	groundedColor   = colornames.Firebrick
	propellingColor = colornames.Mediumpurple
	zombieColor     = colornames.Seagreen
	towerColor      = colornames.Slategray
)
