package hopper

import (
	"sort"

	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
)

// Trigger events
type TriggerEnterEvent struct {
	Player  *Player
	Trigger *actor.Collider
}

func (e TriggerEnterEvent) Type() event.EventType { return event.TRIGGER_ENTER }

type TriggerExitEvent struct {
	Player  *Player
	Trigger *actor.Collider
}

func (e TriggerExitEvent) Type() event.EventType { return event.TRIGGER_EXIT }

type pairKey struct {
	player  *Player
	trigger *actor.Collider
}

// triggerTracker compares the player/trigger overlaps of two steps
type triggerTracker struct {
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func newTriggerTracker() *triggerTracker {
	return &triggerTracker{
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

var triggerMask = actor.LayerMask(actor.LayerTrigger)

// update records the overlaps of this step and emits Enter/Exit events,
// grouped by player order. Exits of one player follow scene order.
func (t *triggerTracker) update(scene *Scene, players []*Player, events *event.Events) {
	for _, p := range players {
		half := p.Controller.Shape.HalfExtents
		for _, c := range scene.Overlap(p.State.Position, half, p.State.Rotation, triggerMask) {
			if c.Tag != actor.TagTrigger {
				continue
			}

			pair := pairKey{player: p, trigger: c}
			t.currentActivePairs[pair] = true

			if !t.previousActivePairs[pair] {
				events.Emit(TriggerEnterEvent{Player: p, Trigger: c})
			}
		}
	}

	// Exits follow scene order; triggers no longer in the scene go last, by id.
	order := make(map[*actor.Collider]int)
	for i, c := range scene.Colliders() {
		order[c] = i
	}
	rank := func(c *actor.Collider) int {
		if i, ok := order[c]; ok {
			return i
		}
		return len(order)
	}

	var exited []*actor.Collider
	for _, p := range players {
		exited = exited[:0]
		for pair := range t.previousActivePairs {
			if pair.player == p && !t.currentActivePairs[pair] {
				exited = append(exited, pair.trigger)
			}
		}
		sort.Slice(exited, func(i, j int) bool {
			ri, rj := rank(exited[i]), rank(exited[j])
			if ri != rj {
				return ri < rj
			}
			return exited[i].ID.String() < exited[j].ID.String()
		})
		for _, c := range exited {
			events.Emit(TriggerExitEvent{Player: p, Trigger: c})
		}
	}

	// Swap for next step and clear current
	t.previousActivePairs, t.currentActivePairs = t.currentActivePairs, t.previousActivePairs
	clear(t.currentActivePairs)
}

func (t *triggerTracker) forget(player *Player) {
	for pair := range t.previousActivePairs {
		if pair.player == player {
			delete(t.previousActivePairs, pair)
		}
	}
}
