// Package hopper runs kinematic bunny-hop controllers and a portal pair over
// an in-memory scene, one fixed tick at a time.
package hopper

import (
	"github.com/akmonengine/hopper/actor"
	"github.com/akmonengine/hopper/event"
	"github.com/akmonengine/hopper/movement"
	"github.com/akmonengine/hopper/portal"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

var (
	_ movement.Queries = (*Scene)(nil)
	_ portal.Raycaster = (*Scene)(nil)
)

// Player is one controlled actor
type Player struct {
	Name       string
	Controller *movement.Controller
	State      movement.State
	// Input is consumed by the next Step
	Input movement.Input
	// Aim is the view rotation, pitch included. State.Rotation only carries
	// the facing used for movement.
	Aim       mgl64.Quat
	EyeHeight float64
}

// Eye is where portal shots start
func (p *Player) Eye() mgl64.Vec3 {
	return p.State.Position.Add(mgl64.Vec3{0, p.EyeHeight, 0})
}

type World struct {
	Scene   *Scene
	Players []*Player
	// Portals is nil on levels without a portal pair
	Portals *portal.Redirector
	// Workers ticks players in parallel. Each player's listeners then run on
	// the worker goroutine that ticked it.
	Workers int

	// Events receives world level events (triggers)
	Events *event.Events

	triggers *triggerTracker
}

func NewWorld(scene *Scene) *World {
	return &World{
		Scene:    scene,
		Workers:  DEFAULT_WORKERS,
		Events:   event.NewEvents(),
		triggers: newTriggerTracker(),
	}
}

// AddPlayer spawns a controller at spawn, facing rotation
func (w *World) AddPlayer(name string, cfg movement.Config, halfExtents mgl64.Vec3, spawn mgl64.Vec3, rotation mgl64.Quat) (*Player, error) {
	controller, err := movement.NewController(cfg, halfExtents, w.Scene)
	if err != nil {
		return nil, errors.Wrapf(err, "player %q", name)
	}
	controller.Events = event.NewEvents()

	p := &Player{
		Name:       name,
		Controller: controller,
		State:      movement.NewState(spawn, rotation),
		Aim:        rotation,
		EyeHeight:  halfExtents.Y() * 0.8,
	}
	w.Players = append(w.Players, p)

	return p, nil
}

// RemovePlayer removes a player and forgets the triggers it was inside
func (w *World) RemovePlayer(player *Player) {
	k := -1
	for i, p := range w.Players {
		if p == player {
			k = i
			break
		}
	}

	if k != -1 {
		w.Players = append(w.Players[:k], w.Players[k+1:]...)
	}
	w.triggers.forget(player)
}

// EnablePortals creates the portal pair of the level and adds its surfaces
// to the scene
func (w *World) EnablePortals(cfg portal.Config) (*portal.Redirector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pair := portal.NewPair(cfg)
	redirector, err := portal.NewRedirector(pair, w.Scene, cfg)
	if err != nil {
		return nil, err
	}
	redirector.Events = event.NewEvents()

	w.Scene.AddDynamic(pair.Surfaces()...)
	w.Portals = redirector

	return redirector, nil
}

// Step advances every player by dt, then reports trigger transitions
func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Rebuild the index once, before queries run in parallel
	w.Scene.Prepare()

	task(w.Workers, w.Players, func(p *Player) {
		p.State = p.Controller.Tick(p.State, p.Input, dt)
	})

	w.triggers.update(w.Scene, w.Players, w.Events)
	w.Events.Flush()
}

// Fire shoots the endpoint at slot from the player's eye along its aim
func (w *World) Fire(player *Player, slot int) portal.Result {
	if w.Portals == nil {
		return portal.Result{Status: portal.StatusNoPair, Slot: slot}
	}

	aim := player.Aim
	if aim.Len() < 1e-9 {
		aim = mgl64.QuatIdent()
	}

	return w.Portals.Fire(slot, portal.Shot{
		Origin:    player.Eye(),
		Direction: aim.Rotate(actor.Forward),
		Aim:       aim,
	})
}
