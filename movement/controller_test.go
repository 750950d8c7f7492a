package movement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/hopper/event"
	"github.com/go-gl/mathgl/mgl64"
)

const tickDt = 0.02

func TestNewController_Validation(t *testing.T) {
	tests := []struct {
		name        string
		cfg         func() Config
		halfExtents mgl64.Vec3
		queries     Queries
	}{
		{"invalid config", func() Config { c := DefaultConfig(); c.Gravity = math.NaN(); return c }, mgl64.Vec3{0.5, 1, 0.5}, newFloorQueries(0)},
		{"nil queries", DefaultConfig, mgl64.Vec3{0.5, 1, 0.5}, nil},
		{"flat volume", DefaultConfig, mgl64.Vec3{0.5, 0, 0.5}, newFloorQueries(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewController(tt.cfg(), tt.halfExtents, tt.queries); err == nil {
				t.Errorf("NewController() should fail")
			}
		})
	}
}

// ============================================================================
// Ground behaviour
// ============================================================================

func TestTick_LandsOnFloor(t *testing.T) {
	c := newTestController(newFloorQueries(0))
	capture := &eventCapture{}
	c.Events.SubscribeAll(capture.capture)

	s := NewState(mgl64.Vec3{0, 3, 0}, mgl64.QuatIdent())
	for i := 0; i < 300; i++ {
		s = c.Tick(s, Input{}, tickDt)
	}

	if !s.Grounded {
		t.Fatalf("controller never landed: %+v", s)
	}
	if s.Velocity.Y() != 0 {
		t.Errorf("vertical velocity on flat ground = %v, want 0", s.Velocity.Y())
	}
	bottom := s.Position.Y() - c.Shape.HalfExtents.Y()
	if bottom < -1e-9 || bottom > c.Config.GroundCastDistance+1e-9 {
		t.Errorf("resting bottom = %v, want within the ground cast", bottom)
	}
	if n := capture.countType(event.LANDED); n != 1 {
		t.Errorf("LANDED emitted %d times, want 1", n)
	}
}

func TestTick_FrictionMonotonic(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		legacy bool
	}{
		{"below stop speed", 6, false},
		// The legacy clamp lets a grounded controller keep speeds above MoveSpeed
		{"above stop speed", 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(newFloorQueries(0))
			c.Config.LegacyGroundClamp = tt.legacy

			s := State{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent(), Velocity: mgl64.Vec3{tt.speed, 0, 0}, Grounded: true}
			speed := s.Speed()

			for i := 0; i < 400; i++ {
				s = c.Tick(s, Input{}, tickDt)
				if !s.Grounded {
					t.Fatalf("tick %d: lost ground", i)
				}
				next := s.Speed()
				if speed > 0 && next >= speed {
					t.Fatalf("tick %d: speed %v did not decrease from %v", i, next, speed)
				}
				if speed == 0 && next != 0 {
					t.Fatalf("tick %d: resting controller started moving", i)
				}
				speed = next
			}

			if speed != 0 {
				t.Errorf("speed after 400 ticks = %v, want 0", speed)
			}
		})
	}
}

func TestTick_GroundSpeedCap(t *testing.T) {
	c := newTestController(newFloorQueries(0))

	s := State{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent(), Velocity: mgl64.Vec3{20, 0, 0}, Grounded: true}
	s = c.Tick(s, Input{Forward: 1}, tickDt)

	if s.HorizontalSpeed() > c.Config.MoveSpeed+1e-9 {
		t.Errorf("grounded horizontal speed = %v, want <= %v", s.HorizontalSpeed(), c.Config.MoveSpeed)
	}

	c.Config.LegacyGroundClamp = true
	s = State{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent(), Velocity: mgl64.Vec3{20, 0, 0}, Grounded: true}
	s = c.Tick(s, Input{}, tickDt)

	if s.HorizontalSpeed() <= c.Config.MoveSpeed {
		t.Errorf("legacy clamp should keep speed above move speed, got %v", s.HorizontalSpeed())
	}
}

func TestTick_Jump(t *testing.T) {
	c := newTestController(newFloorQueries(0))
	capture := &eventCapture{}
	c.Events.SubscribeAll(capture.capture)

	s := State{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent(), Grounded: true}
	s = c.Tick(s, Input{Jump: true}, tickDt)

	if s.Grounded {
		t.Fatalf("controller should leave the ground")
	}
	if math.Abs(s.Velocity.Y()-c.Config.JumpPower) > 1e-12 {
		t.Errorf("vertical velocity = %v, want %v", s.Velocity.Y(), c.Config.JumpPower)
	}
	if capture.countType(event.JUMPED) != 1 || capture.countType(event.LEFT_GROUND) != 1 {
		t.Errorf("expected JUMPED and LEFT_GROUND, got %v", capture.events)
	}

	s = c.Tick(s, Input{Jump: true}, tickDt)
	if s.Grounded || s.Velocity.Y() >= c.Config.JumpPower {
		t.Errorf("second tick should be airborne and decelerating: %+v", s)
	}
	if capture.countType(event.JUMPED) != 1 {
		t.Errorf("jump in the air must be ignored")
	}
}

// ============================================================================
// Invariants
// ============================================================================

func TestTick_VelocityClamp(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	c := newTestController(newFloorQueries(-1e6))

	s := State{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent(), Velocity: mgl64.Vec3{100, 20, -80}}
	for i := 0; i < 500; i++ {
		input := Input{
			Forward: r.Float64()*4 - 2,
			Right:   r.Float64()*4 - 2,
			Jump:    r.Intn(2) == 0,
		}
		s.Rotation = mgl64.QuatRotate(r.Float64()*2*math.Pi, mgl64.Vec3{0, 1, 0})
		s = c.Tick(s, input, tickDt)

		if s.Speed() > c.Config.MaxVelocity+1e-9 {
			t.Fatalf("tick %d: speed %v exceeds %v", i, s.Speed(), c.Config.MaxVelocity)
		}
	}
}

func TestTick_NeverGroundedAndSurfing(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	q := &scriptedQueries{}
	c := newTestController(q)

	s := NewState(mgl64.Vec3{0, 1, 0}, mgl64.QuatIdent())
	for i := 0; i < 500; i++ {
		normal, _ := SafeNormalize(mgl64.Vec3{r.Float64()*2 - 1, r.Float64(), r.Float64()*2 - 1})
		q.contacts = q.contacts[:0]
		if normal != (mgl64.Vec3{}) {
			q.contacts = append(q.contacts, contactAt(normal, r.Float64()*0.05))
		}

		s = c.Tick(s, Input{Forward: r.Float64(), Jump: r.Intn(5) == 0}, tickDt)
		if s.Grounded && s.Surfing {
			t.Fatalf("tick %d: grounded and surfing at once", i)
		}
	}
}

func TestTick_InvalidInputs(t *testing.T) {
	c := newTestController(newFloorQueries(0))
	s := State{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent(), Velocity: mgl64.Vec3{1, 0, 0}, Grounded: true}

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := c.Tick(s, Input{Forward: 1}, dt); got != s {
			t.Errorf("Tick(dt=%v) changed the state to %+v", dt, got)
		}
	}

	s.Velocity = mgl64.Vec3{math.NaN(), 0, math.Inf(1)}
	s.Rotation = mgl64.Quat{}
	got := c.Tick(s, Input{}, tickDt)
	if !finite(got.Velocity) || !finite(got.Position) {
		t.Errorf("non-finite state leaked: %+v", got)
	}
}

func TestTick_NilEvents(t *testing.T) {
	c := newTestController(newFloorQueries(0))
	c.Events = nil

	s := NewState(mgl64.Vec3{0, 1.5, 0}, mgl64.QuatIdent())
	for i := 0; i < 50; i++ {
		s = c.Tick(s, Input{Forward: 1, Jump: i%10 == 0}, tickDt)
	}
}
