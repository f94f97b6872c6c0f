package ecs

import (
	"testing"

	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
)

func TestPhysicsWorldRaycast(t *testing.T) {
	pw := NewPhysicsWorld(0)
	near := Entity(makeEntity(1, 1))
	far := Entity(makeEntity(2, 1))
	pw.SetTarget(near, common.V3(0, 0, 10), 1, 2, 0.5)
	pw.SetTarget(far, common.V3(0, 0, 20), 1, 2, 0.5)

	cases := []struct {
		name     string
		origin   common.Vec3
		dir      common.Vec3
		maxDist  float64
		wantOK   bool
		wantID   Entity
		wantArea combat.HitArea
	}{
		{"body_hit_on_nearest", common.V3(0, 1, 0), common.Forward, 50, true, near, combat.HitOther},
		{"head_hit", common.V3(0, 1.8, 0), common.Forward, 50, true, near, combat.HitHead},
		{"over_the_top", common.V3(0, 3, 0), common.Forward, 50, false, 0, 0},
		{"out_of_range", common.V3(0, 1, 0), common.Forward, 5, false, 0, 0},
		{"wide_miss", common.V3(5, 1, 0), common.Forward, 50, false, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := pw.Raycast(c.origin, c.dir, c.maxDist)
			if ok != c.wantOK {
				t.Fatalf("expected ok=%v, got %v (%+v)", c.wantOK, ok, hit)
			}
			if !ok {
				return
			}
			if Entity(hit.Target) != c.wantID || hit.Area != c.wantArea {
				t.Fatalf("unexpected hit %+v", hit)
			}
			if !common.Approx(hit.Distance, 9, 1e-6) || !common.Approx(hit.Point.Z, 9, 1e-6) {
				t.Fatalf("expected entry at z=9, got %+v", hit)
			}
		})
	}
}

func TestPhysicsWorldMoveAndRemove(t *testing.T) {
	pw := NewPhysicsWorld(0)
	e := Entity(makeEntity(1, 1))
	pw.SetTarget(e, common.V3(0, 0, 10), 1, 2, 0.5)
	pw.SetTarget(e, common.V3(10, 0, 10), 1, 2, 0.5)

	if _, ok := pw.Raycast(common.V3(0, 1, 0), common.Forward, 50); ok {
		t.Fatalf("moved target should no longer be hit on the old line")
	}
	if _, ok := pw.Raycast(common.V3(10, 1, 0), common.Forward, 50); !ok {
		t.Fatalf("moved target should be hit on the new line")
	}

	if !pw.RemoveTarget(e) || pw.HasTarget(e) || pw.Len() != 0 {
		t.Fatalf("remove failed")
	}
	if _, ok := pw.Raycast(common.V3(10, 1, 0), common.Forward, 50); ok {
		t.Fatalf("removed target should not be hit")
	}
}

func TestPhysicsWorldOverlap(t *testing.T) {
	pw := NewPhysicsWorld(0)
	a := Entity(makeEntity(1, 1))
	b := Entity(makeEntity(2, 1))
	c := Entity(makeEntity(3, 1))
	pw.SetTarget(a, common.V3(1.5, 0, 0), 0.5, 2, 0.5)
	pw.SetTarget(b, common.V3(-2, 0, 0), 0.5, 2, 0.5)
	pw.SetTarget(c, common.V3(10, 0, 0), 0.5, 2, 0.5)

	hits := pw.Overlap(common.V3(0, 1, 0), 2)
	got := map[Entity]bool{}
	for _, h := range hits {
		got[Entity(h.Target)] = true
		if h.Area != combat.HitOther {
			t.Fatalf("overlap hits are never head hits")
		}
	}
	if len(got) != 2 || !got[a] || !got[b] {
		t.Fatalf("expected a and b in range, got %v", got)
	}
}

func TestPhysicsWorldGround(t *testing.T) {
	pw := NewPhysicsWorld(1)
	if !pw.IsGrounded(common.V3(0, 1, 0)) || pw.IsGrounded(common.V3(0, 2, 0)) {
		t.Fatalf("unexpected ground check")
	}
	if p := pw.ClampToGround(common.V3(0, -3, 0)); p.Y != 1 {
		t.Fatalf("expected clamp to floor, got %+v", p)
	}
}
