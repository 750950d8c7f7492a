package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeBox ShapeType = iota
	ShapeTypePlane
)

// PlaneThickness is how far behind its surface a plane still reports contacts
const PlaneThickness = 1.0

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	Type() ShapeType
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
}

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) ComputeAABB(transform Transform) {
	b.aabb = BoxAABB(b.HalfExtents, transform)
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

// Support returns the furthest local-space corner in direction
func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}

// BoxAABB computes the world bounds of a box with the given half extents,
// rotated and translated by transform
func BoxAABB(halfExtents mgl64.Vec3, transform Transform) AABB {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()
	corners := [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	worldCorner := transform.TransformPoint(corners[0])
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = transform.TransformPoint(corners[i])

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}

// Plane represents a bounded, one-sided plane collision shape (ramps, surf walls).
// The plane is defined by the equation: Normal · (p - Position) + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the transform position along the normal.
// HalfExtents bounds the region around the plane point where contacts are reported.
type Plane struct {
	Normal      mgl64.Vec3
	Distance    float64
	HalfExtents mgl64.Vec3
	point       mgl64.Vec3
	aabb        AABB
}

func (p *Plane) Type() ShapeType {
	return ShapeTypePlane
}

// ComputeAABB caches the world plane point; rotation is ignored for planes
func (p *Plane) ComputeAABB(transform Transform) {
	p.point = p.Normal.Mul(-p.Distance).Add(transform.Position)
	p.aabb = NewAABB(p.point, p.HalfExtents)
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

// Point is the world point the plane passes through, valid after ComputeAABB
func (p *Plane) Point() mgl64.Vec3 {
	return p.point
}

// SignedDistance is positive in front of the plane
func (p *Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point.Sub(p.point))
}

// Project returns point moved onto the plane along the normal
func (p *Plane) Project(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(p.Normal.Mul(p.SignedDistance(point)))
}
