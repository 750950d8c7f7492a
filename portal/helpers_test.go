package portal

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

// boxWorld raycasts against collider AABBs
type boxWorld struct {
	colliders []*actor.Collider
	casts     int
}

func (w *boxWorld) add(colliders ...*actor.Collider) {
	w.colliders = append(w.colliders, colliders...)
}

func (w *boxWorld) Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask actor.LayerMask) (actor.Contact, bool) {
	w.casts++

	var best actor.Contact
	found := false
	for _, c := range w.colliders {
		if !c.Matches(mask) {
			continue
		}
		tEnter, _, axis, ok := c.AABB().IntersectRay(origin, direction)
		if !ok || tEnter < 0 || tEnter > maxDistance {
			continue
		}
		if found && tEnter >= best.Distance {
			continue
		}

		var normal mgl64.Vec3
		normal[axis] = -math.Copysign(1, direction[axis])
		best = actor.Contact{
			Normal:   normal,
			Point:    origin.Add(direction.Mul(tEnter)),
			Distance: tEnter,
			Collider: c,
		}
		found = true
	}

	return best, found
}

func wall(name string, center, halfExtents mgl64.Vec3) *actor.Collider {
	return actor.NewCollider(name, actor.NewTransform(center, mgl64.QuatIdent()), &actor.Box{HalfExtents: halfExtents}, actor.LayerDefault)
}

var yaw90 = mgl64.QuatRotate(math.Pi/2, actor.Up)

// newLinkedWorld places endpoint 0 at the origin facing +z and endpoint 1 at
// (10, 0, 10) facing +x, with a target wall at x = -20.
func newLinkedWorld() (*Redirector, *boxWorld, *actor.Collider) {
	pair := NewPair(DefaultConfig())
	world := &boxWorld{}
	world.add(pair.Surfaces()...)

	target := wall("target", mgl64.Vec3{-20.5, 0, 10}, mgl64.Vec3{0.5, 10, 10})
	world.add(target)

	pair.Place(0, Placement{Transform: actor.IdentityTransform()})
	pair.Place(1, Placement{Transform: actor.NewTransform(mgl64.Vec3{10, 0, 10}, yaw90)})

	r, err := NewRedirector(pair, world, DefaultConfig())
	if err != nil {
		panic(err)
	}

	return r, world, target
}
