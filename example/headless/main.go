package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/hopper"
	"github.com/akmonengine/hopper/config"
	"github.com/akmonengine/hopper/event"
	"github.com/akmonengine/hopper/movement"
	"github.com/akmonengine/hopper/portal"
	"github.com/go-gl/mathgl/mgl64"
)

// demoLevel: a floor, a surf ramp, a checkpoint and two walls for portals
const demoLevel = `{
	"name": "demo",
	"portal_level": true,
	"spawn": {"position": [0, 3, 0]},
	"colliders": [
		{"name": "floor", "position": [0, -0.5, 0], "half_extents": [60, 0.5, 60]},
		{"name": "ramp", "type": "plane", "position": [8, 2, 20], "normal": [-0.8, 0.6, 0], "half_extents": [3, 3, 6]},
		{"name": "checkpoint", "tag": "trigger", "position": [0, 1, 12], "half_extents": [4, 2, 0.5]},
		{"name": "north", "position": [0, 5, 40.5], "half_extents": [20, 5, 0.5]},
		{"name": "west", "position": [-30.5, 5, 0], "half_extents": [0.5, 5, 20]}
	],
	"portals": [
		{"slot": 1, "anchor": "west", "position": [-30, 1.5, 0], "yaw": 90}
	]
}`

func printEvent(e event.Event) {
	switch e := e.(type) {
	case movement.LandedEvent:
		fmt.Printf("  🛬 %s at %v\n", e.Type(), e.Position)
	case movement.JumpedEvent:
		fmt.Printf("  🦘 %s velocity %v\n", e.Type(), e.Velocity)
	case movement.SurfEnterEvent:
		fmt.Printf("  🏄 %s normal %v\n", e.Type(), e.Normal)
	case hopper.TriggerEnterEvent:
		fmt.Printf("  🚩 %s %s\n", e.Type(), e.Trigger.Name)
	case portal.RedirectedEvent:
		fmt.Printf("  🌀 %s %d -> %d, origin %v direction %v\n", e.Type(), e.From, e.To, e.Origin, e.Direction)
	case portal.PlacedEvent:
		fmt.Printf("  🎯 %s slot %d on %s at %v\n", e.Type(), e.Slot, e.Anchor.Name, e.Transform.Position)
	case portal.AbortedEvent:
		fmt.Printf("  ❌ %s slot %d: %v\n", e.Type(), e.Slot, e.Status)
	default:
		fmt.Printf("  · %s\n", e.Type())
	}
}

func load() (config.Settings, *hopper.Level, error) {
	settings := config.Default()
	if len(os.Args) > 1 {
		s, err := config.Load(os.Args[1])
		if err != nil {
			return settings, nil, err
		}
		settings = s
	}

	data := []byte(demoLevel)
	if len(os.Args) > 2 {
		level, err := hopper.LoadLevelFile(os.Args[2])
		return settings, level, err
	}

	level, err := hopper.LoadLevel(data)
	return settings, level, err
}

func main() {
	settings, level, err := load()
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}

	world := hopper.NewWorld(level.Scene)
	world.Events.SubscribeAll(printEvent)

	player, err := world.AddPlayer("player", settings.Movement, mgl64.Vec3{0.5, 1, 0.5}, level.Spawn, level.SpawnRotation)
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
	player.Controller.Events.Subscribe(event.LANDED, printEvent)
	player.Controller.Events.Subscribe(event.JUMPED, printEvent)
	player.Controller.Events.Subscribe(event.SURF_ENTER, printEvent)

	if level.PortalLevel || settings.Simulation.PortalLevel {
		redirector, err := world.EnablePortals(settings.Portal)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		redirector.Events.SubscribeAll(printEvent)

		if err := level.RestorePortals(redirector.Pair); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	}

	fmt.Printf("🧪 Level %q, %d colliders, tick %.3fs\n", level.Name, len(level.Scene.Colliders()), settings.Dt())

	dt := settings.Dt()
	for tick := 0; tick < 3*int(settings.Simulation.TickRate); tick++ {
		// Run forward, hop every half second
		player.Input = movement.Input{Forward: 1, Jump: tick%25 == 0}
		world.Step(dt)
	}

	fmt.Printf("Position %v, speed %.2f, grounded %v\n", player.State.Position, player.State.HorizontalSpeed(), player.State.Grounded)

	// Shoot endpoint 0 straight ahead at the north wall
	result := world.Fire(player, 0)
	fmt.Printf("Fire: %v after %d hops\n", result.Status, result.Hops)

	if data, err := level.Export(pairOf(world)); err == nil {
		fmt.Printf("Saved level: %d bytes\n", len(data))
	}
}

func pairOf(world *hopper.World) *portal.Pair {
	if world.Portals == nil {
		return nil
	}
	return world.Portals.Pair
}
