package portal

import (
	"sync"

	"github.com/akmonengine/hopper/actor"
	"github.com/pkg/errors"
)

// Placement is where an endpoint sits: the surface it was fired onto and its
// world pose. The pose forward axis points into the anchor surface.
type Placement struct {
	Anchor    *actor.Collider
	Transform actor.Transform
}

// Endpoint is one end of a pair. It is unplaced until the first placement.
type Endpoint struct {
	Slot    int
	Partner int
	Placed  bool

	Placement Placement
	// Surface is the thin collider a shot hits to enter this endpoint.
	// It stays disabled until the endpoint is placed.
	Surface *actor.Collider
}

// Pair is an arena of exactly two endpoints, each naming the other by index
type Pair struct {
	mu        sync.Mutex
	endpoints [2]Endpoint
}

// NewPair builds both endpoints with disabled surfaces, each linked to the other
func NewPair(cfg Config) *Pair {
	p := &Pair{}

	names := [2]string{"portal-0", "portal-1"}
	for i := range p.endpoints {
		surface := actor.NewCollider(names[i], actor.IdentityTransform(), &actor.Box{HalfExtents: cfg.SurfaceHalfExtents}, cfg.SurfaceLayer)
		surface.Tag = actor.TagPortal
		surface.Disabled = true

		p.endpoints[i] = Endpoint{
			Slot:    i,
			Partner: 1 - i,
			Surface: surface,
		}
	}

	return p
}

func validSlot(slot int) bool {
	return slot == 0 || slot == 1
}

// Partner returns the slot paired with slot
func (p *Pair) Partner(slot int) (int, bool) {
	if !validSlot(slot) {
		return -1, false
	}
	return p.endpoints[slot].Partner, true
}

// Endpoint returns a copy of the endpoint at slot
func (p *Pair) Endpoint(slot int) (Endpoint, bool) {
	if !validSlot(slot) {
		return Endpoint{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.endpoints[slot], true
}

// Surfaces returns both surface colliders, to be added to the host scene
func (p *Pair) Surfaces() []*actor.Collider {
	return []*actor.Collider{p.endpoints[0].Surface, p.endpoints[1].Surface}
}

// SlotOf returns the slot owning collider, or -1
func (p *Pair) SlotOf(collider *actor.Collider) int {
	for i := range p.endpoints {
		if collider != nil && p.endpoints[i].Surface == collider {
			return i
		}
	}
	return -1
}

// Place puts the endpoint at slot onto placement, replacing any previous one
func (p *Pair) Place(slot int, placement Placement) error {
	if !validSlot(slot) {
		return errors.Errorf("portal: invalid slot %d", slot)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.place(slot, placement)

	return nil
}

// place must be called with the lock held. It reports whether an earlier
// placement was replaced.
func (p *Pair) place(slot int, placement Placement) bool {
	endpoint := &p.endpoints[slot]
	replaced := endpoint.Placed

	placement.Transform = actor.NewTransform(placement.Transform.Position, placement.Transform.Rotation)

	endpoint.Placement = placement
	endpoint.Placed = true
	endpoint.Surface.MoveTo(placement.Transform.Position, placement.Transform.Rotation)
	endpoint.Surface.Disabled = false

	return replaced
}
