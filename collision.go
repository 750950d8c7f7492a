package hopper

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Boxes are tested by their world AABB. Planes are bounded and one-sided:
// contacts exist in front of them, or up to actor.PlaneThickness behind.

const parallelEpsilon = 1e-12

// touchTolerance absorbs the rounding left by a push-out, so a box resting
// on a face still reports it at distance 0
const touchTolerance = 1e-7

// axisNormal is the unit axis i pointing against direction
func axisNormal(i int, direction mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	n[i] = -math.Copysign(1, direction[i])
	return n
}

// lowestCorner is the corner of box furthest behind normal
func lowestCorner(box actor.AABB, normal mgl64.Vec3) mgl64.Vec3 {
	var corner mgl64.Vec3
	for i := 0; i < 3; i++ {
		if normal[i] > 0 {
			corner[i] = box.Min[i]
		} else {
			corner[i] = box.Max[i]
		}
	}
	return corner
}

// startContact is what a cast reports for a collider it already overlaps:
// no distance, no point, and a normal against the cast direction.
func startContact(direction mgl64.Vec3, collider *actor.Collider) actor.Contact {
	return actor.Contact{Normal: direction.Mul(-1), Distance: 0, Collider: collider}
}

// castBox sweeps volume along direction against the AABB of a box collider
func castBox(volume actor.AABB, direction mgl64.Vec3, maxDistance float64, collider *actor.Collider) (actor.Contact, bool) {
	target := collider.AABB()
	if volume.Intersects(target) {
		return startContact(direction, collider), true
	}

	// Minkowski sum: sweep the volume center against the grown target
	expanded := target.Expand(volume.HalfExtents())
	tEnter, _, axis, ok := expanded.IntersectRay(volume.Center(), direction)
	// A negative entry is a box beside the target, touching without overlap
	if !ok || tEnter < -touchTolerance || tEnter > maxDistance {
		return actor.Contact{}, false
	}
	tEnter = math.Max(tEnter, 0)

	center := volume.Center().Add(direction.Mul(tEnter))

	return actor.Contact{
		Normal:   axisNormal(axis, direction),
		Point:    target.ClosestPoint(center),
		Distance: tEnter,
		Collider: collider,
	}, true
}

// castPlane sweeps volume along direction against a plane collider
func castPlane(volume actor.AABB, direction mgl64.Vec3, maxDistance float64, collider *actor.Collider, plane *actor.Plane) (actor.Contact, bool) {
	support := lowestCorner(volume, plane.Normal)
	d0 := plane.SignedDistance(support)

	if d0 < 0 {
		if d0 > -actor.PlaneThickness && plane.GetAABB().ContainsPoint(plane.Project(support)) {
			return startContact(direction, collider), true
		}
		return actor.Contact{}, false
	}

	rate := plane.Normal.Dot(direction)
	if rate > -parallelEpsilon {
		return actor.Contact{}, false
	}

	t := d0 / -rate
	if t > maxDistance {
		return actor.Contact{}, false
	}

	point := plane.Project(support.Add(direction.Mul(t)))
	if !plane.GetAABB().ContainsPoint(point) {
		return actor.Contact{}, false
	}

	return actor.Contact{
		Normal:   plane.Normal,
		Point:    point,
		Distance: t,
		Collider: collider,
	}, true
}

// planePenetration is how deep volume sits behind plane
func planePenetration(volume actor.AABB, plane *actor.Plane) (float64, bool) {
	support := lowestCorner(volume, plane.Normal)
	d := plane.SignedDistance(support)

	if d >= 0 || d <= -actor.PlaneThickness {
		return 0, false
	}
	if !plane.GetAABB().ContainsPoint(plane.Project(support)) {
		return 0, false
	}

	return -d, true
}

// boxPenetration returns the smallest translation moving volume out of target
func boxPenetration(volume, target actor.AABB) (mgl64.Vec3, float64, bool) {
	best := math.Inf(1)
	var direction mgl64.Vec3

	for i := 0; i < 3; i++ {
		// Push along +i or -i
		up := target.Max[i] - volume.Min[i]
		down := volume.Max[i] - target.Min[i]
		if up <= 0 || down <= 0 {
			return mgl64.Vec3{}, 0, false
		}

		if up < best {
			best = up
			direction = mgl64.Vec3{}
			direction[i] = 1
		}
		if down < best {
			best = down
			direction = mgl64.Vec3{}
			direction[i] = -1
		}
	}

	return direction, best, true
}

// rayBox hits the AABB of a box collider. Rays starting inside never hit it.
func rayBox(origin, direction mgl64.Vec3, maxDistance float64, collider *actor.Collider) (actor.Contact, bool) {
	tEnter, _, axis, ok := collider.AABB().IntersectRay(origin, direction)
	if !ok || tEnter < 0 || tEnter > maxDistance {
		return actor.Contact{}, false
	}

	return actor.Contact{
		Normal:   axisNormal(axis, direction),
		Point:    origin.Add(direction.Mul(tEnter)),
		Distance: tEnter,
		Collider: collider,
	}, true
}

// rayPlane hits the front face of a plane collider inside its bounds
func rayPlane(origin, direction mgl64.Vec3, maxDistance float64, collider *actor.Collider, plane *actor.Plane) (actor.Contact, bool) {
	denom := plane.Normal.Dot(direction)
	if denom > -parallelEpsilon {
		return actor.Contact{}, false
	}

	d := plane.SignedDistance(origin)
	if d < 0 {
		return actor.Contact{}, false
	}

	t := d / -denom
	if t > maxDistance {
		return actor.Contact{}, false
	}

	point := origin.Add(direction.Mul(t))
	if !plane.GetAABB().ContainsPoint(point) {
		return actor.Contact{}, false
	}

	return actor.Contact{
		Normal:   plane.Normal,
		Point:    point,
		Distance: t,
		Collider: collider,
	}, true
}
