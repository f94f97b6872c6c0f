package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

const gridSpacing = 5.0

// RenderSystem draws the arena top-down: floor grid, objectives, towers,
// enemies, the player and shot trails.
type RenderSystem struct {
	camEntity ecs.Entity
	Width     float64
	Depth     float64
}

func NewRenderSystem(width, depth float64) *RenderSystem {
	return &RenderSystem{Width: width, Depth: depth}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	if !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	cam, _ := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	zoom := 1.0
	if cam != nil && cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	project := func(p common.Vec3) (float32, float32) {
		x, y := cam.ToScreen(p, sw, sh)
		return float32(x), float32(y)
	}

	screen.Fill(colornames.Black)
	r.drawFloor(screen, project)

	ecs.ForEach2(w, component.ObjectiveTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ObjectiveTag, t *component.Transform) {
		x, y := project(t.Position)
		s := float32(0.6 * zoom)
		vector.StrokeRect(screen, x-s, y-s, 2*s, 2*s, 2, appearanceColor(w, e, colornames.Gold), true)
	})

	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.Spawner, t *component.Transform) {
		x, y := project(t.Position)
		s := float32(1.2 * zoom)
		clr := appearanceColor(w, e, colornames.Slategray)
		vector.FillRect(screen, x-s, y-s, 2*s, 2*s, clr, false)
		if sp.Controller.Exhausted() {
			vector.StrokeLine(screen, x-s, y-s, x+s, y+s, 2, colornames.Black, true)
		}
		vector.StrokeCircle(screen, x, y, float32(sp.Controller.Radius*zoom), 1, color.RGBA{R: 90, G: 90, B: 90, A: 120}, true)
	})

	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, t *component.Transform) {
		radius := 0.5
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Radius > 0 {
			radius = body.Radius
		}
		clr := appearanceColor(w, e, colornames.Firebrick)
		if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && wf.On {
			clr = colornames.White
		}
		if ecs.Has(w, e, component.DyingComponent.Kind()) {
			clr = fade(clr, 0.4)
		}
		drawBody(screen, project, t, radius, zoom, clr)
	})

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		radius := 0.4
		drawBody(screen, project, t, radius, zoom, appearanceColor(w, e, colornames.Steelblue))
		if aim, ok := ecs.Get(w, e, component.AimComponent.Kind()); ok && !aim.Direction.IsZero() {
			x0, y0 := project(t.Position)
			x1, y1 := project(t.Position.Add(aim.Direction.Flat().Normalize().Scale(3)))
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 90}, true)
		}
	})

	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(_ ecs.Entity, line *component.LineRender) {
		x0, y0 := project(line.Start)
		x1, y1 := project(line.End)
		width := line.Width
		if width <= 0 {
			width = 1
		}
		clr := line.Color
		if clr == nil {
			clr = colornames.White
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
		if line.Hit {
			vector.FillCircle(screen, x1, y1, 3, clr, true)
		}
	})
}

func (r *RenderSystem) drawFloor(screen *ebiten.Image, project func(common.Vec3) (float32, float32)) {
	halfW, halfD := r.Width/2, r.Depth/2
	if halfW <= 0 || halfD <= 0 {
		return
	}
	grid := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	for x := -halfW; x <= halfW+1e-9; x += gridSpacing {
		x0, y0 := project(common.V3(x, 0, -halfD))
		x1, y1 := project(common.V3(x, 0, halfD))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, grid, false)
	}
	for z := -halfD; z <= halfD+1e-9; z += gridSpacing {
		x0, y0 := project(common.V3(-halfW, 0, z))
		x1, y1 := project(common.V3(halfW, 0, z))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, grid, false)
	}
}

func drawBody(screen *ebiten.Image, project func(common.Vec3) (float32, float32), t *component.Transform, radius, zoom float64, clr color.Color) {
	x, y := project(t.Position)
	vector.FillCircle(screen, x, y, float32(radius*zoom), clr, true)

	facing := t.Facing.Flat().Normalize()
	if facing.IsZero() {
		return
	}
	// Roll turns the facing marker so a death spin is visible from above.
	sin, cos := math.Sincos(t.Roll * math.Pi / 180)
	marker := common.V3(facing.X*cos-facing.Z*sin, 0, facing.X*sin+facing.Z*cos)
	hx, hy := project(t.Position.Add(marker.Scale(radius)))
	vector.StrokeLine(screen, x, y, hx, hy, 2, colornames.White, true)
}

func appearanceColor(w *ecs.World, e ecs.Entity, fallback color.Color) color.Color {
	if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok && a.Color != nil {
		return a.Color
	}
	return fallback
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	k := common.Clamp01(alpha)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}
