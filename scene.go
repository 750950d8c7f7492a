package hopper

import (
	"sort"
	"sync"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	DEFAULT_CELL_SIZE = 4.0
	DEFAULT_CELLS     = 1024
)

// Scene is an in-memory level: static colliders indexed in a spatial grid,
// and the geometry queries the movement controller and the portal
// redirector run against it. Queries are safe for concurrent use.
type Scene struct {
	mu sync.RWMutex

	colliders []*actor.Collider
	// Dynamic colliders move without telling the scene and are never indexed
	dynamic map[*actor.Collider]bool

	grid *SpatialGrid
	// colliders tested by every query: planes, dynamic and oversized boxes
	unindexed []int
	dirty     bool
}

func NewScene() *Scene {
	return NewSceneWithGrid(DEFAULT_CELL_SIZE, DEFAULT_CELLS)
}

func NewSceneWithGrid(cellSize float64, numCells int) *Scene {
	return &Scene{
		dynamic: make(map[*actor.Collider]bool),
		grid:    NewSpatialGrid(cellSize, numCells),
	}
}

// AddCollider adds a static collider. Call Invalidate after moving it.
func (s *Scene) AddCollider(colliders ...*actor.Collider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.colliders = append(s.colliders, colliders...)
	s.dirty = true
}

// AddDynamic adds colliders which may move at any time, such as portal surfaces
func (s *Scene) AddDynamic(colliders ...*actor.Collider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range colliders {
		s.colliders = append(s.colliders, c)
		s.dynamic[c] = true
	}
	s.dirty = true
}

// RemoveCollider removes a collider from the scene
func (s *Scene) RemoveCollider(collider *actor.Collider) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := -1
	for i, c := range s.colliders {
		if c == collider {
			k = i
			break
		}
	}
	if k == -1 {
		return false
	}

	s.colliders = append(s.colliders[:k], s.colliders[k+1:]...)
	delete(s.dynamic, collider)
	s.dirty = true

	return true
}

// Invalidate rebuilds the index before the next query
func (s *Scene) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Colliders returns a copy of the collider list, in insertion order
func (s *Scene) Colliders() []*actor.Collider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*actor.Collider, len(s.colliders))
	copy(out, s.colliders)
	return out
}

// Find returns the first collider named name
func (s *Scene) Find(name string) *actor.Collider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.colliders {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindID returns the collider with the given id
func (s *Scene) FindID(id uuid.UUID) *actor.Collider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.colliders {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Prepare rebuilds the index now if colliders changed since the last query
func (s *Scene) Prepare() {
	s.read(func() {})
}

// read runs fn under the read lock, rebuilding the index first if needed
func (s *Scene) read(fn func()) {
	s.mu.RLock()
	if s.dirty {
		s.mu.RUnlock()
		s.mu.Lock()
		if s.dirty {
			s.rebuild()
		}
		s.mu.Unlock()
		s.mu.RLock()
	}
	defer s.mu.RUnlock()

	fn()
}

func (s *Scene) rebuild() {
	s.grid.Clear()
	s.unindexed = s.unindexed[:0]

	for i, c := range s.colliders {
		if c.Shape.Type() == actor.ShapeTypePlane || s.dynamic[c] {
			s.unindexed = append(s.unindexed, i)
			continue
		}
		if !s.grid.Insert(i, c.AABB()) {
			s.unindexed = append(s.unindexed, i)
		}
	}
	s.grid.SortCells()

	s.dirty = false
}

// candidates returns the colliders whose bounds may touch region
func (s *Scene) candidates(region actor.AABB, mask actor.LayerMask) []*actor.Collider {
	indices, ok := s.grid.Query(region)
	if !ok {
		indices = make([]int, len(s.colliders))
		for i := range indices {
			indices[i] = i
		}
	} else {
		indices = append(indices, s.unindexed...)
		sort.Ints(indices)
	}

	out := make([]*actor.Collider, 0, len(indices))
	last := -1
	for _, i := range indices {
		if i == last {
			continue
		}
		last = i

		if c := s.colliders[i]; c.Matches(mask) {
			out = append(out, c)
		}
	}
	return out
}

// ShapeCast sweeps a box along direction and returns every contact within
// maxDistance, in no particular order.
func (s *Scene) ShapeCast(center, halfExtents, direction mgl64.Vec3, orientation mgl64.Quat, maxDistance float64, mask actor.LayerMask) []actor.Contact {
	dir, ok := unit(direction)
	if !ok || maxDistance < 0 {
		return nil
	}

	volume := actor.BoxAABB(halfExtents, actor.NewTransform(center, orientation))
	moved := actor.AABB{Min: volume.Min.Add(dir.Mul(maxDistance)), Max: volume.Max.Add(dir.Mul(maxDistance))}
	swept := volume.Union(moved)

	var contacts []actor.Contact
	s.read(func() {
		for _, c := range s.candidates(swept, mask) {
			var contact actor.Contact
			var hit bool

			switch shape := c.Shape.(type) {
			case *actor.Plane:
				contact, hit = castPlane(volume, dir, maxDistance, c, shape)
			default:
				contact, hit = castBox(volume, dir, maxDistance, c)
			}
			if hit {
				contacts = append(contacts, contact)
			}
		}
	})

	return contacts
}

// Overlap returns the colliders interpenetrating a box
func (s *Scene) Overlap(center, halfExtents mgl64.Vec3, orientation mgl64.Quat, mask actor.LayerMask) []*actor.Collider {
	volume := actor.BoxAABB(halfExtents, actor.NewTransform(center, orientation))

	var overlaps []*actor.Collider
	s.read(func() {
		for _, c := range s.candidates(volume, mask) {
			switch shape := c.Shape.(type) {
			case *actor.Plane:
				if _, ok := planePenetration(volume, shape); ok {
					overlaps = append(overlaps, c)
				}
			default:
				if volume.Intersects(c.AABB()) {
					overlaps = append(overlaps, c)
				}
			}
		}
	})

	return overlaps
}

// Penetration returns the direction and depth moving shape at pose out of other
func (s *Scene) Penetration(shape actor.ShapeInterface, pose actor.Transform, other *actor.Collider) (mgl64.Vec3, float64, bool) {
	box, ok := shape.(*actor.Box)
	if !ok || other == nil {
		return mgl64.Vec3{}, 0, false
	}
	volume := actor.BoxAABB(box.HalfExtents, pose)

	switch target := other.Shape.(type) {
	case *actor.Plane:
		depth, ok := planePenetration(volume, target)
		if !ok {
			return mgl64.Vec3{}, 0, false
		}
		return target.Normal, depth, true
	default:
		return boxPenetration(volume, other.AABB())
	}
}

// Raycast returns the nearest collider hit along the ray. Every collider is
// tested; rays are long and rare compared to casts.
func (s *Scene) Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask actor.LayerMask) (actor.Contact, bool) {
	dir, ok := unit(direction)
	if !ok || !(maxDistance > 0) {
		return actor.Contact{}, false
	}

	var best actor.Contact
	found := false
	s.read(func() {
		for _, c := range s.colliders {
			if !c.Matches(mask) {
				continue
			}

			var contact actor.Contact
			var hit bool
			switch shape := c.Shape.(type) {
			case *actor.Plane:
				contact, hit = rayPlane(origin, dir, maxDistance, c, shape)
			default:
				contact, hit = rayBox(origin, dir, maxDistance, c)
			}

			if hit && (!found || contact.Distance < best.Distance) {
				best = contact
				found = true
			}
		}
	})

	return best, found
}

func unit(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if !(l > 1e-12) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}
