package combat

import "github.com/milk9111/watchtower/common"

// TargetID identifies a Targetable inside a spatial index. It carries the
// owning ECS entity handle.
type TargetID uint64

// RayHit is one intersection reported by a SpatialQuery.
type RayHit struct {
	Target   TargetID
	Point    common.Vec3
	Distance float64
	Area     HitArea
}

// SpatialQuery is the world collision capability the resolver consumes.
//
//go:generate go tool mockgen -destination=./mocks/spatial_query_mock.go -package=mocks . SpatialQuery
type SpatialQuery interface {
	// Raycast returns the nearest target along dir within maxDist.
	Raycast(origin, dir common.Vec3, maxDist float64) (RayHit, bool)
	// Overlap returns every target within radius of center.
	Overlap(center common.Vec3, radius float64) []RayHit
}

// Hit is a single damage event against one target.
type Hit struct {
	Target TargetID
	Pellet int
	Damage DamageContext
}

// Trail is the cosmetic path of one ray.
type Trail struct {
	Start common.Vec3
	End   common.Vec3
	Hit   bool
}

// Resolution is everything one shot produced, in resolution order.
type Resolution struct {
	Weapon WeaponKind
	Hits   []Hit
	Trails []Trail
	Rays   int
}

// HitResolver turns a shot into damage events.
type HitResolver struct {
	Query SpatialQuery
	Rand  common.Rand
}

func NewHitResolver(query SpatialQuery, rng common.Rand) *HitResolver {
	return &HitResolver{Query: query, Rand: rng}
}

// Resolve resolves one shot of p fired from origin along aim.
func (r *HitResolver) Resolve(origin, aim common.Vec3, p WeaponProfile) Resolution {
	p = p.Clamped()
	res := Resolution{Weapon: p.Kind}
	if r == nil || r.Query == nil {
		return res
	}

	aim = aim.Normalize()
	if aim.IsZero() {
		aim = common.Forward
	}

	switch p.Kind {
	case WeaponMelee:
		r.resolveMelee(&res, origin, p)
	case WeaponShotgun:
		for i := 0; i < p.Pellets; i++ {
			r.castRay(&res, origin, r.perturb(aim, p.Spread), p, i)
		}
	default:
		r.castRay(&res, origin, aim, p, 0)
	}
	return res
}

func (r *HitResolver) resolveMelee(res *Resolution, origin common.Vec3, p WeaponProfile) {
	seen := make(map[TargetID]bool)
	for _, h := range r.Query.Overlap(origin, p.MeleeRadius) {
		if seen[h.Target] {
			continue
		}
		seen[h.Target] = true
		res.Hits = append(res.Hits, Hit{
			Target: h.Target,
			Damage: DamageContext{
				Amount: p.Damage,
				Area:   HitOther,
				Weapon: p.Kind,
				Source: origin,
				Point:  h.Point,
			},
		})
	}
}

func (r *HitResolver) castRay(res *Resolution, origin, dir common.Vec3, p WeaponProfile, pellet int) {
	res.Rays++
	h, ok := r.Query.Raycast(origin, dir, p.Range)
	if !ok {
		res.Trails = append(res.Trails, Trail{Start: origin, End: origin.Add(dir.Scale(p.Range))})
		return
	}
	res.Trails = append(res.Trails, Trail{Start: origin, End: h.Point, Hit: true})
	res.Hits = append(res.Hits, Hit{
		Target: h.Target,
		Pellet: pellet,
		Damage: DamageContext{
			Amount: p.Damage,
			Area:   h.Area,
			Weapon: p.Kind,
			Source: origin,
			Point:  h.Point,
		},
	})
}

// perturb offsets aim by uniform amounts in [-spread, spread] along the
// horizontal and vertical axes of the aim frame.
func (r *HitResolver) perturb(aim common.Vec3, spread float64) common.Vec3 {
	if spread <= 0 || r.Rand == nil {
		return aim
	}
	side := aim.Cross(common.Up).Normalize()
	if side.IsZero() {
		side = common.Right
	}
	up := side.Cross(aim).Normalize()

	u := common.RangeFloat(r.Rand, -spread, spread)
	v := common.RangeFloat(r.Rand, -spread, spread)
	dir := aim.Add(side.Scale(u)).Add(up.Scale(v)).Normalize()
	if dir.IsZero() {
		return aim
	}
	return dir
}
