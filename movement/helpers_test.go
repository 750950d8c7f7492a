package movement

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
	"github.com/go-gl/mathgl/mgl64"
)

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

// floorQueries is an infinite flat floor at height y
type floorQueries struct {
	y     float64
	floor *actor.Collider
}

func newFloorQueries(y float64) *floorQueries {
	return &floorQueries{
		y: y,
		floor: actor.NewCollider("floor",
			actor.NewTransform(mgl64.Vec3{0, y - 0.5, 0}, mgl64.QuatIdent()),
			&actor.Box{HalfExtents: mgl64.Vec3{1e4, 0.5, 1e4}},
			actor.LayerDefault),
	}
}

func (f *floorQueries) ShapeCast(center, halfExtents, direction mgl64.Vec3, orientation mgl64.Quat, maxDistance float64, mask actor.LayerMask) []actor.Contact {
	bottom := center.Y() - halfExtents.Y()
	gap := bottom - f.y
	switch {
	case gap < 0:
		return []actor.Contact{{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0, Collider: f.floor}}
	case gap <= maxDistance:
		return []actor.Contact{{
			Normal:   mgl64.Vec3{0, 1, 0},
			Point:    mgl64.Vec3{center.X(), f.y, center.Z()},
			Distance: gap,
			Collider: f.floor,
		}}
	}
	return nil
}

func (f *floorQueries) Overlap(center, halfExtents mgl64.Vec3, orientation mgl64.Quat, mask actor.LayerMask) []*actor.Collider {
	if center.Y()-halfExtents.Y() < f.y {
		return []*actor.Collider{f.floor}
	}
	return nil
}

func (f *floorQueries) Penetration(shape actor.ShapeInterface, pose actor.Transform, other *actor.Collider) (mgl64.Vec3, float64, bool) {
	box := shape.(*actor.Box)
	depth := f.y - (pose.Position.Y() - box.HalfExtents.Y())
	if depth <= 0 {
		return mgl64.Vec3{}, 0, false
	}
	return mgl64.Vec3{0, 1, 0}, depth, true
}

type penetration struct {
	direction mgl64.Vec3
	depth     float64
}

// scriptedQueries returns canned results
type scriptedQueries struct {
	contacts     []actor.Contact
	overlaps     []*actor.Collider
	penetrations map[*actor.Collider]penetration
}

func (q *scriptedQueries) ShapeCast(center, halfExtents, direction mgl64.Vec3, orientation mgl64.Quat, maxDistance float64, mask actor.LayerMask) []actor.Contact {
	out := make([]actor.Contact, len(q.contacts))
	copy(out, q.contacts)
	return out
}

func (q *scriptedQueries) Overlap(center, halfExtents mgl64.Vec3, orientation mgl64.Quat, mask actor.LayerMask) []*actor.Collider {
	return q.overlaps
}

func (q *scriptedQueries) Penetration(shape actor.ShapeInterface, pose actor.Transform, other *actor.Collider) (mgl64.Vec3, float64, bool) {
	p, ok := q.penetrations[other]
	return p.direction, p.depth, ok
}

func newCollider(name string) *actor.Collider {
	return actor.NewCollider(name, actor.IdentityTransform(), &actor.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, actor.LayerDefault)
}

func contactAt(normal mgl64.Vec3, distance float64) actor.Contact {
	return actor.Contact{
		Normal:   normal,
		Point:    mgl64.Vec3{0, -1, 0},
		Distance: distance,
		Collider: newCollider("surface"),
	}
}

func newTestController(queries Queries) *Controller {
	c, err := NewController(DefaultConfig(), mgl64.Vec3{0.5, 1, 0.5}, queries)
	if err != nil {
		panic(err)
	}
	c.Events = event.NewEvents()
	return c
}

type eventCapture struct {
	events []event.Event
}

func (ec *eventCapture) capture(e event.Event) {
	ec.events = append(ec.events, e)
}

func (ec *eventCapture) countType(eventType event.EventType) int {
	n := 0
	for _, e := range ec.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}
