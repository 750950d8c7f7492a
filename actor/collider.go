package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Layer is a single collision layer bit
type Layer uint32

// LayerMask selects a set of layers
type LayerMask uint32

const (
	LayerDefault Layer = 1 << iota
	LayerPlayer
	LayerPortal
	// LayerTrigger holds volumes that report overlaps but never block
	LayerTrigger
)

const AllLayers LayerMask = ^LayerMask(0)

// LayerAt returns the layer for bit index i (0..31)
func LayerAt(i int) Layer {
	return Layer(1) << uint(i)
}

func (m LayerMask) Contains(layer Layer) bool {
	return uint32(m)&uint32(layer) != 0
}

// Without removes layer from the mask
func (m LayerMask) Without(layer Layer) LayerMask {
	return m &^ LayerMask(layer)
}

// Tag classifies what a collider is to gameplay code
type Tag string

const (
	TagNone    Tag = ""
	TagPortal  Tag = "portal"
	TagTrigger Tag = "trigger"
)

// Collider is a static piece of level geometry
type Collider struct {
	ID        uuid.UUID
	Name      string
	Transform Transform
	Shape     ShapeInterface
	Layer     Layer
	Tag       Tag
	// Disabled colliders are ignored by every query
	Disabled bool
}

// NewCollider creates an enabled collider and computes its bounds
func NewCollider(name string, transform Transform, shape ShapeInterface, layer Layer) *Collider {
	c := &Collider{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Transform: transform,
		Shape:     shape,
		Layer:     layer,
	}
	c.Shape.ComputeAABB(c.Transform)

	return c
}

// MoveTo updates the transform and recomputes the bounds
func (c *Collider) MoveTo(position mgl64.Vec3, rotation mgl64.Quat) {
	c.Transform = NewTransform(position, rotation)
	c.Shape.ComputeAABB(c.Transform)
}

func (c *Collider) AABB() AABB {
	return c.Shape.GetAABB()
}

// Matches reports whether queries using mask can see the collider
func (c *Collider) Matches(mask LayerMask) bool {
	return !c.Disabled && mask.Contains(c.Layer)
}

// Contact is a single query result: the struck surface and where it was hit
type Contact struct {
	Normal   mgl64.Vec3
	Point    mgl64.Vec3
	Distance float64
	Collider *Collider
}
