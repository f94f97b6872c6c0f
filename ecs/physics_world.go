package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
)

const groundEpsilon = 0.05

// physicsTarget is one targetable entity in the Chipmunk space. The space
// holds the horizontal footprint as a circle in the XZ plane; the vertical
// extent is checked separately.
type physicsTarget struct {
	entity Entity
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	base   float64
	height float64
	head   float64
}

// PhysicsWorld is the spatial index targets are registered in. It answers
// ray and overlap queries for hit resolution and ground checks for movers.
type PhysicsWorld struct {
	space   *cp.Space
	groundY float64

	targets       map[Entity]*physicsTarget
	shapeToEntity map[*cp.Shape]Entity
}

var _ combat.SpatialQuery = (*PhysicsWorld)(nil)

// NewPhysicsWorld creates an empty index over a flat floor at groundY.
func NewPhysicsWorld(groundY float64) *PhysicsWorld {
	return &PhysicsWorld{
		space:         cp.NewSpace(),
		groundY:       groundY,
		targets:       make(map[Entity]*physicsTarget),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) GroundY() float64 { return pw.groundY }

// SetTarget registers e or moves it. pos is the foot position; height is the
// collider height of which the top head units count as head.
func (pw *PhysicsWorld) SetTarget(e Entity, pos common.Vec3, radius, height, head float64) {
	if pw == nil || pw.space == nil || !e.Valid() {
		return
	}
	if radius <= 0 {
		radius = 0.5
	}
	if height <= 0 {
		height = 2
	}
	if head < 0 {
		head = 0
	}
	if head > height {
		head = height
	}

	t := pw.targets[e]
	if t != nil && t.radius != radius {
		pw.RemoveTarget(e)
		t = nil
	}
	if t == nil {
		body := pw.space.AddBody(cp.NewKinematicBody())
		body.SetPosition(toPlane(pos))
		shape := pw.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
		t = &physicsTarget{entity: e, body: body, shape: shape, radius: radius}
		pw.targets[e] = t
		pw.shapeToEntity[shape] = e
	} else {
		t.body.SetPosition(toPlane(pos))
		pw.space.ReindexShapesForBody(t.body)
	}
	t.base = pos.Y
	t.height = height
	t.head = head
}

// RemoveTarget drops e from the index.
func (pw *PhysicsWorld) RemoveTarget(e Entity) bool {
	if pw == nil {
		return false
	}
	t, ok := pw.targets[e]
	if !ok {
		return false
	}
	delete(pw.shapeToEntity, t.shape)
	delete(pw.targets, e)
	pw.space.RemoveShape(t.shape)
	pw.space.RemoveBody(t.body)
	return true
}

func (pw *PhysicsWorld) HasTarget(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.targets[e]
	return ok
}

func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.targets)
}

// Raycast returns the nearest target the ray enters through its side within
// maxDist. Hits in the top head band of a target are head hits.
func (pw *PhysicsWorld) Raycast(origin, dir common.Vec3, maxDist float64) (combat.RayHit, bool) {
	if pw == nil || pw.space == nil || maxDist <= 0 {
		return combat.RayHit{}, false
	}
	dir = dir.Normalize()
	if dir.IsZero() {
		return combat.RayHit{}, false
	}
	end := origin.Add(dir.Scale(maxDist))

	best := math.Inf(1)
	var hit combat.RayHit
	found := false
	pw.space.SegmentQuery(toPlane(origin), toPlane(end), 0, cp.SHAPE_FILTER_ALL,
		func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			e, ok := pw.shapeToEntity[shape]
			if !ok {
				return
			}
			t := pw.targets[e]
			p := origin.Add(dir.Scale(maxDist * alpha))
			if p.Y < t.base || p.Y > t.base+t.height {
				return
			}
			if alpha >= best {
				return
			}
			best = alpha
			found = true
			hit = combat.RayHit{
				Target:   combat.TargetID(e),
				Point:    p,
				Distance: maxDist * alpha,
				Area:     t.area(p.Y),
			}
		}, nil)
	return hit, found
}

// Overlap returns every target whose collider comes within radius of center.
func (pw *PhysicsWorld) Overlap(center common.Vec3, radius float64) []combat.RayHit {
	if pw == nil || pw.space == nil || radius < 0 {
		return nil
	}
	var hits []combat.RayHit
	pw.space.PointQuery(toPlane(center), radius, cp.SHAPE_FILTER_ALL,
		func(shape *cp.Shape, point cp.Vector, distance float64, gradient cp.Vector, data interface{}) {
			e, ok := pw.shapeToEntity[shape]
			if !ok {
				return
			}
			t := pw.targets[e]
			if center.Y < t.base-radius || center.Y > t.base+t.height+radius {
				return
			}
			y := math.Min(math.Max(center.Y, t.base), t.base+t.height)
			hits = append(hits, combat.RayHit{
				Target:   combat.TargetID(e),
				Point:    common.Vec3{X: point.X, Y: y, Z: point.Y},
				Distance: math.Max(distance, 0),
				Area:     combat.HitOther,
			})
		}, nil)
	return hits
}

// IsGrounded reports whether a foot position rests on the floor.
func (pw *PhysicsWorld) IsGrounded(pos common.Vec3) bool {
	if pw == nil {
		return true
	}
	return pos.Y <= pw.groundY+groundEpsilon
}

// ClampToGround keeps pos from sinking below the floor.
func (pw *PhysicsWorld) ClampToGround(pos common.Vec3) common.Vec3 {
	if pw != nil && pos.Y < pw.groundY {
		pos.Y = pw.groundY
	}
	return pos
}

func (t *physicsTarget) area(y float64) combat.HitArea {
	if t.head > 0 && y >= t.base+t.height-t.head {
		return combat.HitHead
	}
	return combat.HitOther
}

func toPlane(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}
