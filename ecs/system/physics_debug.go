package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines every collider footprint in the spatial index.
func DrawPhysicsDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	space := w.PhysicsWorld().Space()
	if space == nil {
		return
	}

	var cam *component.Camera
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cam, _ = ecs.Get(w, e, component.CameraComponent.Kind())
	}
	drawer := &physicsDebugDrawer{
		screen: screen,
		cam:    cam,
		sw:     float64(screen.Bounds().Dx()),
		sh:     float64(screen.Bounds().Dy()),
	}
	cp.DrawSpace(space, drawer)
}

// DrawWeaponDebug prints the player's weapon state machine.
func DrawWeaponDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	weapon, ok := ecs.Get(w, player, component.WeaponComponent.Kind())
	if !ok || weapon.State == nil {
		return
	}
	ws := weapon.State
	now := w.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "Weapon: %s (%s)\n", ws.Active(), ws.Phase())
	fmt.Fprintf(&b, "Next fire in: %.2fs\n", math.Max(0, ws.NextFireAt()-now))
	for k := combat.WeaponMelee; k <= combat.WeaponRifle; k++ {
		fmt.Fprintf(&b, "  %-8s %d\n", k, ws.AmmoFor(k))
	}
	fmt.Fprintf(&b, "Targets: %d", w.PhysicsWorld().Len())
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 40)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    *component.Camera
	sw     float64
	sh     float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(clr))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, clr cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, clr cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

// toScreen maps a point of the index plane, where Y carries world Z.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.cam.ToScreen(common.Vec3{X: v.X, Z: v.Y}, d.sw, d.sh)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(float64(c.R)) * 255),
		G: uint8(common.Clamp01(float64(c.G)) * 255),
		B: uint8(common.Clamp01(float64(c.B)) * 255),
		A: uint8(common.Clamp01(float64(c.A)) * 255),
	}
}
