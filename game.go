package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/watchtower/arena"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/system"
	"github.com/milk9111/watchtower/prefabs"
)

const cameraZoom = 14.0

type Game struct {
	arena   *arena.Arena
	render  *system.RenderSystem
	hud     *HUD
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
	logger  *slog.Logger

	paused bool
	debug  bool
	frames int
}

func NewGame(ctx context.Context, opts arena.Options, watcher *prefabs.Watcher, debug bool) (*Game, error) {
	opts.Input = system.NewInputSystem(common.BaseWidth, common.BaseHeight)
	opts.CameraZoom = cameraZoom
	a, err := arena.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	g := &Game{
		arena:   a,
		render:  system.NewRenderSystem(a.Level.Width, a.Level.Depth),
		hud:     NewHUD(),
		watcher: watcher,
		logger:  opts.Logger,
		debug:   debug,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	events := g.arena.Step(1 / float64(ebiten.TPS()))
	for _, ev := range events {
		g.logEvent(ev)
	}
	g.hud.Set(g.arena.Status())
	g.hud.UI.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.arena.World.Draw(screen, g.render)
	g.hud.UI.Draw(screen)
	if g.debug {
		system.DrawPhysicsDebug(g.arena.World, screen)
		system.DrawWeaponDebug(g.arena.World, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Entities: %d", g.frames, ebiten.ActualFPS(), len(ecs.Entities(g.arena.World))), 8, common.BaseHeight-20)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.arena.Reload(name); err != nil {
				g.logger.Error("hot reload failed", "file", name, "err", err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) logEvent(ev ecs.Event) {
	switch data := ev.Data.(type) {
	case ecs.KilledEvent:
		g.logger.Debug("kill", "kind", data.Kind, "weapon", data.Weapon.String(), "points", data.Points)
	case ecs.SpawnedEvent:
		g.logger.Debug("spawn", "type", data.Type, "tower", data.Spawner)
	case ecs.WeaponEvent:
		g.logger.Debug(string(ev.Type), "weapon", data.Weapon.String())
	}
}
