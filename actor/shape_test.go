package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func TestBoxComputeAABBWithRotation(t *testing.T) {
	tests := []struct {
		name        string
		box         *Box
		transform   Transform
		expectedMin mgl64.Vec3
		expectedMax mgl64.Vec3
	}{
		{
			name:        "no rotation, translated",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			transform:   NewTransform(mgl64.Vec3{5, 0, -1}, mgl64.QuatIdent()),
			expectedMin: mgl64.Vec3{4, -2, -4},
			expectedMax: mgl64.Vec3{6, 2, 2},
		},
		{
			name:        "rotation 90° around Z-axis",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			transform:   NewTransform(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})),
			expectedMin: mgl64.Vec3{-2, -1, -3},
			expectedMax: mgl64.Vec3{2, 1, 3},
		},
		{
			name:        "rotation 45° around Y-axis",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:   NewTransform(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(mgl64.DegToRad(45), mgl64.Vec3{0, 1, 0})),
			expectedMin: mgl64.Vec3{-1.4142, -1, -1.4142},
			expectedMax: mgl64.Vec3{1.4142, 1, 1.4142},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.box.ComputeAABB(tt.transform)
			aabb := tt.box.GetAABB()

			if !vec3Equal(aabb.Min, tt.expectedMin, 1e-3) {
				t.Errorf("Min = %v, want %v (tolerance 1e-3)", aabb.Min, tt.expectedMin)
			}
			if !vec3Equal(aabb.Max, tt.expectedMax, 1e-3) {
				t.Errorf("Max = %v, want %v (tolerance 1e-3)", aabb.Max, tt.expectedMax)
			}
		})
	}
}

func TestBoxSupport(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{2, 3, 4}}

	tests := []struct {
		direction mgl64.Vec3
		expected  mgl64.Vec3
	}{
		{mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 3, 4}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{2, -3, 4}},
		{mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{-2, -3, -4}},
	}

	for _, tt := range tests {
		if support := box.Support(tt.direction); !vec3Equal(support, tt.expected, 1e-9) {
			t.Errorf("Support(%v) = %v, want %v", tt.direction, support, tt.expected)
		}
	}
}

func TestPlaneSignedDistance(t *testing.T) {
	normal := mgl64.Vec3{0, 0.8, 0.6}
	plane := &Plane{Normal: normal, Distance: -1, HalfExtents: mgl64.Vec3{5, 5, 5}}
	plane.ComputeAABB(NewTransform(mgl64.Vec3{10, 0, 0}, mgl64.QuatIdent()))

	// Normal · (p - Position) + Distance = 0 → plane point is Position + Normal
	if !vec3Equal(plane.Point(), mgl64.Vec3{10, 0.8, 0.6}, 1e-9) {
		t.Fatalf("Point() = %v", plane.Point())
	}

	above := plane.Point().Add(normal.Mul(2))
	if d := plane.SignedDistance(above); math.Abs(d-2) > 1e-9 {
		t.Errorf("SignedDistance(above) = %v, want 2", d)
	}
	if d := plane.SignedDistance(plane.Point().Sub(normal)); math.Abs(d+1) > 1e-9 {
		t.Errorf("SignedDistance(below) = %v, want -1", d)
	}
	if p := plane.Project(above); !vec3Equal(p, plane.Point(), 1e-9) {
		t.Errorf("Project() = %v, want %v", p, plane.Point())
	}
	if !plane.GetAABB().ContainsPoint(plane.Point()) {
		t.Errorf("plane bounds %v should contain its point", plane.GetAABB())
	}
}
