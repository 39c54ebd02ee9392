package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/moonshot/internal/config"
)

var testBounds = Bounds{Width: config.FieldWidth, Height: config.FieldHeight}

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// newTestField builds a field with active particles at the given positions,
// centered on the play-field.
func newTestField(positions ...[2]float64) *Field {
	cx, cy := testBounds.Center()
	f := &Field{
		Particles:     make([]Particle, len(positions)),
		CenterX:       cx,
		CenterY:       cy,
		ClusterRadius: config.ClusterRadius,
		active:        len(positions),
	}
	for i, pos := range positions {
		f.Particles[i] = Particle{X: pos[0], Y: pos[1], Radius: config.ParticleRadius, State: ParticleActive}
	}
	return f
}

func tick(r *Round, delta time.Duration) UpdateContext {
	r.Advance(delta)
	return UpdateContext{Delta: delta, Bounds: testBounds, Round: r}
}

func TestBoundsContains(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{800, 600, true},
		{400, 300, true},
		{-0.1, 300, false},
		{400, 600.1, false},
	}
	for _, tt := range tests {
		if got := testBounds.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestShapeVertices(t *testing.T) {
	s := Shape{Kind: ShapeTriangle, X: 100, Y: 100, Size: 20}
	v := s.Vertices()
	if !approx(v[0].X, 100) || !approx(v[0].Y, 80) {
		t.Errorf("nose = %+v, want (100, 80)", v[0])
	}
	if !approx(v[1].X, 110) || !approx(v[1].Y, 110) {
		t.Errorf("right = %+v, want (110, 110)", v[1])
	}

	// Quarter turn clockwise points the nose right.
	s.Angle = math.Pi / 2
	v = s.Vertices()
	if !approx(v[0].X, 120) || !approx(v[0].Y, 100) {
		t.Errorf("rotated nose = %+v, want (120, 100)", v[0])
	}
}

func TestRoundConcludeIsMonotonic(t *testing.T) {
	r := NewRound(time.Second)
	if r.Conclude(Running) {
		t.Error("Conclude(Running) must be rejected")
	}
	if !r.Conclude(Won) {
		t.Fatal("first Conclude(Won) rejected")
	}
	if r.Conclude(Lost) {
		t.Error("Conclude(Lost) after Won accepted")
	}
	if r.Conclude(Won) {
		t.Error("repeated Conclude(Won) accepted")
	}
	if r.Outcome() != Won {
		t.Errorf("Outcome() = %v, want won", r.Outcome())
	}
}

func TestRoundAdvanceIgnoresNegative(t *testing.T) {
	r := NewRound(time.Second)
	r.Advance(10 * time.Millisecond)
	r.Advance(-time.Second)
	r.Advance(0)
	if r.Now != 10*time.Millisecond {
		t.Errorf("Now = %v, want 10ms", r.Now)
	}
}

func TestRegenerationDueIsStrict(t *testing.T) {
	r := NewRound(5 * time.Second)
	r.Now = 2 * time.Second
	r.RecordHit()

	r.Now = 7 * time.Second
	if r.RegenerationDue() {
		t.Error("due exactly at the delay")
	}
	r.Now += time.Millisecond
	if !r.RegenerationDue() {
		t.Error("not due after the delay")
	}
}

func TestRegenerationDueBeforeFirstHit(t *testing.T) {
	r := NewRound(time.Hour)
	if !r.RegenerationDue() {
		t.Error("not due before any hit")
	}
	r.Advance(time.Second)
	r.RecordHit()
	if r.RegenerationDue() {
		t.Error("due right after a hit")
	}
}
