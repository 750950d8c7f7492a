// Package portal holds a pair of linked portal endpoints and fires shots
// which are redirected through them before placing an endpoint.
package portal

import (
	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Raycaster is the single ray query of the host scene. It returns the
// nearest enabled collider matching mask.
type Raycaster interface {
	Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask actor.LayerMask) (actor.Contact, bool)
}

// Shot is one fire input
type Shot struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	// Distance <= 0 uses Config.DefaultDistance
	Distance float64
	// Aim is the shooter's view rotation. Its right axis orients the placement.
	Aim mgl64.Quat
}

// Result describes how a shot ended. Origin, Direction and Remaining are the
// last ray segment that was cast.
type Result struct {
	Status    Status
	Slot      int
	Hops      int
	Placement Placement

	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Remaining float64
}

// Redirector places portals from player shots and carries rays through them
type Redirector struct {
	Pair   *Pair
	World  Raycaster
	Config Config
	// Enabled is the level flag: no shot is fired while it is false
	Enabled bool
	Events  *event.Events
}

// NewRedirector checks cfg and returns an enabled redirector over pair
func NewRedirector(pair *Pair, world Raycaster, cfg Config) (*Redirector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, errors.New("portal: raycaster is required")
	}

	return &Redirector{
		Pair:    pair,
		World:   world,
		Config:  cfg,
		Enabled: true,
	}, nil
}

type ray struct {
	origin    mgl64.Vec3
	direction mgl64.Vec3
	distance  float64
}

// Fire casts shot and places the endpoint at slot on the first non-portal
// surface, following portals on the way. The pair is locked for the whole
// walk, so a concurrent placement never interleaves with a redirection.
func (r *Redirector) Fire(slot int, shot Shot) Result {
	defer r.Events.Flush()

	result := r.fire(slot, shot)
	if result.Status != StatusPlaced {
		r.Events.Emit(AbortedEvent{Slot: slot, Status: result.Status, Hops: result.Hops})
	}

	return result
}

func (r *Redirector) fire(slot int, shot Shot) Result {
	result := Result{Slot: slot, Origin: shot.Origin, Direction: shot.Direction, Remaining: shot.Distance}

	switch {
	case !r.Enabled:
		result.Status = StatusDisabled
		return result
	case r.Pair == nil:
		result.Status = StatusNoPair
		return result
	case !validSlot(slot):
		result.Status = StatusInvalidSlot
		return result
	}

	distance := shot.Distance
	if !(distance > 0) {
		distance = r.Config.DefaultDistance
	}
	direction := shot.Direction
	if l := direction.Len(); l > 1e-9 {
		direction = direction.Mul(1 / l)
	} else {
		result.Status = StatusNoHit
		return result
	}

	r.Pair.mu.Lock()
	defer r.Pair.mu.Unlock()

	return r.walk(slot, ray{origin: shot.Origin, direction: direction, distance: distance}, shot.Aim, 0)
}

// walk casts one segment. It recurses once per portal crossed.
func (r *Redirector) walk(slot int, segment ray, aim mgl64.Quat, hops int) Result {
	result := Result{
		Slot:      slot,
		Hops:      hops,
		Origin:    segment.origin,
		Direction: segment.direction,
		Remaining: segment.distance,
	}

	if !(segment.distance > 0) {
		result.Status = StatusNoHit
		return result
	}

	hit, ok := r.World.Raycast(segment.origin, segment.direction, segment.distance, r.Config.Mask)
	if !ok || hit.Collider == nil {
		result.Status = StatusNoHit
		return result
	}

	if hit.Collider.Tag == actor.TagPortal {
		in := r.Pair.SlotOf(hit.Collider)
		if in == -1 {
			result.Status = StatusUnknownPortal
			return result
		}

		out := r.Pair.endpoints[in].Partner
		if !r.Pair.endpoints[in].Placed || !r.Pair.endpoints[out].Placed {
			result.Status = StatusPartnerUnplaced
			return result
		}
		if hops >= r.Config.MaxHops {
			result.Status = StatusMaxHopsExceeded
			return result
		}

		entry := hit.Point.Add(segment.direction.Mul(r.Config.ExitOffset))
		origin, direction := Teleport(
			r.Pair.endpoints[in].Placement.Transform,
			r.Pair.endpoints[out].Placement.Transform,
			entry, segment.direction,
		)
		next := ray{
			origin:    origin,
			direction: direction.Normalize(),
			distance:  segment.distance - hit.Distance,
		}

		r.Events.Emit(RedirectedEvent{
			Slot:      slot,
			From:      in,
			To:        out,
			Entry:     hit.Point,
			Origin:    next.origin,
			Direction: next.direction,
			Remaining: next.distance,
			Hop:       hops + 1,
		})

		return r.walk(slot, next, aim, hops+1)
	}

	placement := Placement{
		Anchor:    hit.Collider,
		Transform: actor.NewTransform(hit.Point, Orientation(aim, hit.Normal)),
	}
	replaced := r.Pair.place(slot, placement)

	r.Events.Emit(PlacedEvent{
		Slot:      slot,
		Anchor:    hit.Collider,
		Transform: placement.Transform,
		Replaced:  replaced,
		Hops:      hops,
	})

	result.Status = StatusPlaced
	result.Placement = placement
	return result
}
