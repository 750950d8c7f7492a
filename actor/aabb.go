package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// overlapEpsilon separates touching boxes from interpenetrating ones
const overlapEpsilon = 1e-9

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds the box centered on center with the given half extents
func NewAABB(center, halfExtents mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Intersects is the strict version of Overlaps: touching faces do not count
func (a AABB) Intersects(other AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] <= other.Min[i]+overlapEpsilon || a.Min[i] >= other.Max[i]-overlapEpsilon {
			return false
		}
	}
	return true
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Expand grows the box by extents on every side (Minkowski sum with a box)
func (a AABB) Expand(extents mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Sub(extents), Max: a.Max.Add(extents)}
}

// Union returns the smallest AABB containing both boxes
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min[0], other.Min[0]), math.Min(a.Min[1], other.Min[1]), math.Min(a.Min[2], other.Min[2])},
		Max: mgl64.Vec3{math.Max(a.Max[0], other.Max[0]), math.Max(a.Max[1], other.Max[1]), math.Max(a.Max[2], other.Max[2])},
	}
}

// ClosestPoint clamps point onto the box
func (a AABB) ClosestPoint(point mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(point[0], a.Min[0], a.Max[0]),
		mgl64.Clamp(point[1], a.Min[1], a.Max[1]),
		mgl64.Clamp(point[2], a.Min[2], a.Max[2]),
	}
}

// IntersectRay runs the slab test for the ray origin + t*direction.
// It returns the entry and exit parameters and the axis the ray enters through.
// A negative tEnter means the origin is inside the box.
func (a AABB) IntersectRay(origin, direction mgl64.Vec3) (tEnter, tExit float64, axis int, ok bool) {
	const eps = 1e-12
	tEnter = math.Inf(-1)
	tExit = math.Inf(1)
	axis = -1

	for i := 0; i < 3; i++ {
		if math.Abs(direction[i]) < eps {
			// Parallel to the slab: the origin has to lie between the planes
			if origin[i] < a.Min[i] || origin[i] > a.Max[i] {
				return 0, 0, -1, false
			}
			continue
		}

		t1 := (a.Min[i] - origin[i]) / direction[i]
		t2 := (a.Max[i] - origin[i]) / direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			axis = i
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 0, 0, -1, false
		}
	}

	if axis == -1 || tExit < 0 {
		return 0, 0, -1, false
	}

	return tEnter, tExit, axis, true
}
