package hopper

import (
	"math/bits"
	"os"

	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/portal"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Level is a scene description: colliders, spawn point, level flags and the
// portal placements saved with it.
//
//	{
//	  "name": "surf_1",
//	  "portal_level": true,
//	  "spawn": {"position": [0, 2, 0], "yaw": 90},
//	  "colliders": [
//	    {"name": "floor", "type": "box", "position": [0, -0.5, 0], "half_extents": [50, 0.5, 50]},
//	    {"name": "ramp", "type": "plane", "position": [0, 0, 10], "normal": [0, 0.6, -0.8], "half_extents": [5, 4, 4]},
//	    {"name": "cp1", "type": "box", "tag": "trigger", "position": [0, 1, 30], "half_extents": [2, 2, 0.5]}
//	  ],
//	  "portals": [{"slot": 0, "anchor": "floor", "position": [0, 0, 3], "rotation": [1, 0, 0, 0]}]
//	}
//
// Rotations are [w, x, y, z] quaternions, or a "yaw" in degrees about +Y.
// "layer" is a bit index; triggers default to the trigger layer.
// A collider "id" is kept across export; without one a fresh id is made.
// Portals name their anchor with "anchor_id", or "anchor" by collider name.
type Level struct {
	Name          string
	Scene         *Scene
	Spawn         mgl64.Vec3
	SpawnRotation mgl64.Quat
	PortalLevel   bool
	Portals       []SavedPortal
}

// SavedPortal is an endpoint placement stored in a level file
type SavedPortal struct {
	Slot     int
	Anchor   string
	AnchorID uuid.UUID
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func LoadLevelFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "level: failed to read file")
	}
	return LoadLevel(data)
}

// LoadLevel parses a JSON level description
func LoadLevel(data []byte) (*Level, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("level: invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	level := &Level{
		Name:          doc.Get("name").String(),
		Scene:         NewScene(),
		SpawnRotation: mgl64.QuatIdent(),
		PortalLevel:   doc.Get("portal_level").Bool(),
	}

	if spawn := doc.Get("spawn"); spawn.Exists() {
		position, err := vec3(spawn.Get("position"), mgl64.Vec3{})
		if err != nil {
			return nil, errors.Wrap(err, "level: spawn")
		}
		rotation, err := rotation(spawn)
		if err != nil {
			return nil, errors.Wrap(err, "level: spawn")
		}
		level.Spawn, level.SpawnRotation = position, rotation
	}

	var err error
	ids := make(map[uuid.UUID]bool)
	doc.Get("colliders").ForEach(func(key, value gjson.Result) bool {
		var c *actor.Collider
		c, err = parseCollider(value)
		if err != nil {
			err = errors.Wrapf(err, "level: collider %d", key.Int())
			return false
		}
		if ids[c.ID] {
			err = errors.Errorf("level: collider %d: duplicate id %s", key.Int(), c.ID)
			return false
		}
		ids[c.ID] = true
		level.Scene.AddCollider(c)
		return true
	})
	if err != nil {
		return nil, err
	}

	doc.Get("portals").ForEach(func(key, value gjson.Result) bool {
		var saved SavedPortal
		saved, err = parsePortal(value)
		if err != nil {
			err = errors.Wrapf(err, "level: portal %d", key.Int())
			return false
		}
		level.Portals = append(level.Portals, saved)
		return true
	})
	if err != nil {
		return nil, err
	}

	return level, nil
}

func parseCollider(value gjson.Result) (*actor.Collider, error) {
	name := value.Get("name").String()
	tag := actor.Tag(value.Get("tag").String())

	position, err := vec3(value.Get("position"), mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	rot, err := rotation(value)
	if err != nil {
		return nil, err
	}
	halfExtents, err := vec3(value.Get("half_extents"), mgl64.Vec3{0.5, 0.5, 0.5})
	if err != nil {
		return nil, err
	}
	for i := 0; i < 3; i++ {
		if !(halfExtents[i] > 0) {
			return nil, errors.Errorf("%q: half_extents must be positive, got %v", name, halfExtents)
		}
	}

	layer := actor.LayerDefault
	if tag == actor.TagTrigger {
		layer = actor.LayerTrigger
	}
	if l := value.Get("layer"); l.Exists() {
		index := l.Int()
		if index < 0 || index > 31 {
			return nil, errors.Errorf("%q: layer must be a bit index in [0, 31], got %d", name, index)
		}
		layer = actor.LayerAt(int(index))
	}

	var shape actor.ShapeInterface
	switch kind := value.Get("type").String(); kind {
	case "", "box":
		shape = &actor.Box{HalfExtents: halfExtents}
	case "plane":
		normal, err := vec3(value.Get("normal"), actor.Up)
		if err != nil {
			return nil, err
		}
		if normal.Len() < 1e-9 {
			return nil, errors.Errorf("%q: plane normal must not be zero", name)
		}
		shape = &actor.Plane{
			Normal:      normal.Normalize(),
			Distance:    value.Get("distance").Float(),
			HalfExtents: halfExtents,
		}
	default:
		return nil, errors.Errorf("%q: unknown collider type %q", name, kind)
	}

	c := actor.NewCollider(name, actor.NewTransform(position, rot), shape, layer)
	c.Tag = tag
	if id := value.Get("id"); id.Exists() {
		if c.ID, err = uuid.Parse(id.String()); err != nil {
			return nil, errors.Wrapf(err, "%q: id", name)
		}
	}

	return c, nil
}

func parsePortal(value gjson.Result) (SavedPortal, error) {
	slot := int(value.Get("slot").Int())
	if slot != 0 && slot != 1 {
		return SavedPortal{}, errors.Errorf("invalid slot %d", slot)
	}

	position, err := vec3(value.Get("position"), mgl64.Vec3{})
	if err != nil {
		return SavedPortal{}, err
	}
	rot, err := rotation(value)
	if err != nil {
		return SavedPortal{}, err
	}

	saved := SavedPortal{
		Slot:     slot,
		Anchor:   value.Get("anchor").String(),
		Position: position,
		Rotation: rot,
	}
	if id := value.Get("anchor_id"); id.Exists() {
		if saved.AnchorID, err = uuid.Parse(id.String()); err != nil {
			return SavedPortal{}, errors.Wrap(err, "anchor_id")
		}
	}

	return saved, nil
}

func vec3(value gjson.Result, fallback mgl64.Vec3) (mgl64.Vec3, error) {
	if !value.Exists() {
		return fallback, nil
	}
	values := value.Array()
	if !value.IsArray() || len(values) != 3 {
		return mgl64.Vec3{}, errors.Errorf("expected [x, y, z], got %s", value.Raw)
	}
	return mgl64.Vec3{values[0].Float(), values[1].Float(), values[2].Float()}, nil
}

// rotation reads "rotation" as [w, x, y, z] or "yaw" in degrees
func rotation(value gjson.Result) (mgl64.Quat, error) {
	if r := value.Get("rotation"); r.Exists() {
		values := r.Array()
		if !r.IsArray() || len(values) != 4 {
			return mgl64.Quat{}, errors.Errorf("expected rotation [w, x, y, z], got %s", r.Raw)
		}
		q := mgl64.Quat{W: values[0].Float(), V: mgl64.Vec3{values[1].Float(), values[2].Float(), values[3].Float()}}
		if q.Len() < 1e-9 {
			return mgl64.Quat{}, errors.New("rotation must not be zero")
		}
		return q.Normalize(), nil
	}
	if yaw := value.Get("yaw"); yaw.Exists() {
		return mgl64.QuatRotate(mgl64.DegToRad(yaw.Float()), actor.Up), nil
	}
	return mgl64.QuatIdent(), nil
}

// RestorePortals places the saved endpoints on pair. Anchors are looked up by
// id, or by collider name when the id is unset; an unknown anchor is an error.
func (l *Level) RestorePortals(pair *portal.Pair) error {
	for _, saved := range l.Portals {
		var anchor *actor.Collider
		switch {
		case saved.AnchorID != uuid.Nil:
			if anchor = l.Scene.FindID(saved.AnchorID); anchor == nil {
				return errors.Errorf("level: portal %d anchor id %s not found", saved.Slot, saved.AnchorID)
			}
		case saved.Anchor != "":
			if anchor = l.Scene.Find(saved.Anchor); anchor == nil {
				return errors.Errorf("level: portal %d anchor %q not found", saved.Slot, saved.Anchor)
			}
		}

		err := pair.Place(saved.Slot, portal.Placement{
			Anchor:    anchor,
			Transform: actor.NewTransform(saved.Position, saved.Rotation),
		})
		if err != nil {
			return errors.Wrap(err, "level")
		}
	}
	return nil
}

// Export writes the level as JSON. The surfaces of pair are not written as
// colliders; its placed endpoints, if any, are saved instead.
func (l *Level) Export(pair *portal.Pair) ([]byte, error) {
	data := []byte(`{}`)
	var err error

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, path, value)
	}

	set("name", l.Name)
	set("portal_level", l.PortalLevel)
	set("spawn.position", l.Spawn)
	set("spawn.rotation", quat(l.SpawnRotation))
	set("colliders", []interface{}{})

	surfaces := make(map[*actor.Collider]bool)
	if pair != nil {
		for _, surface := range pair.Surfaces() {
			surfaces[surface] = true
		}
	}

	for _, c := range l.Scene.Colliders() {
		if surfaces[c] {
			continue
		}
		set("colliders.-1", colliderJSON(c))
	}

	if pair != nil {
		for slot := 0; slot < 2; slot++ {
			endpoint, _ := pair.Endpoint(slot)
			if !endpoint.Placed {
				continue
			}

			saved := map[string]interface{}{
				"slot":     slot,
				"position": endpoint.Placement.Transform.Position,
				"rotation": quat(endpoint.Placement.Transform.Rotation),
			}
			if endpoint.Placement.Anchor != nil {
				saved["anchor"] = endpoint.Placement.Anchor.Name
				saved["anchor_id"] = endpoint.Placement.Anchor.ID.String()
			}
			set("portals.-1", saved)
		}
	}

	if err != nil {
		return nil, errors.Wrap(err, "level: export")
	}
	return data, nil
}

func colliderJSON(c *actor.Collider) map[string]interface{} {
	out := map[string]interface{}{
		"id":       c.ID.String(),
		"name":     c.Name,
		"position": c.Transform.Position,
		"rotation": quat(c.Transform.Rotation),
		"layer":    bits.TrailingZeros32(uint32(c.Layer)),
	}
	if c.Tag != actor.TagNone {
		out["tag"] = string(c.Tag)
	}

	switch shape := c.Shape.(type) {
	case *actor.Plane:
		out["type"] = "plane"
		out["normal"] = shape.Normal
		out["distance"] = shape.Distance
		out["half_extents"] = shape.HalfExtents
	case *actor.Box:
		out["type"] = "box"
		out["half_extents"] = shape.HalfExtents
	}

	return out
}

func quat(q mgl64.Quat) [4]float64 {
	return [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()}
}
