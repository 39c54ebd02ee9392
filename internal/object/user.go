package object

import (
	"iter"
	"math"
	"time"

	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/physics"
)

// User is the player-controlled ship.
type User struct {
	X, Y  float64 // Position (center of ship)
	Angle float64 // Heading in radians (0 = pointing up, increases clockwise)

	RotationSpeed float64 // Radians per second
	MoveSpeed     float64 // Units per second
	Size          float64 // Triangle size, also the clamping margin
	Color         string

	// Shooting
	FireCooldown time.Duration // Minimum round time between shots
	lastShot     time.Duration
	hasFired     bool
}

// NewUser creates a ship at the spawn point near the bottom of bounds,
// pointing up.
func NewUser(bounds Bounds, fireCooldown time.Duration) *User {
	return &User{
		X:             bounds.Width / 2,
		Y:             bounds.Height - config.PlayerSpawnOffset,
		RotationSpeed: config.PlayerRotationSpeed,
		MoveSpeed:     config.PlayerMoveSpeed,
		Size:          config.PlayerSize,
		Color:         config.PlayerColor,
		FireCooldown:  fireCooldown,
	}
}

// CanFire reports whether the cooldown allows a shot at round time now.
func (u *User) CanFire(now time.Duration) bool {
	return !u.hasFired || now-u.lastShot > u.FireCooldown
}

// LastShot returns the round time of the latest shot and whether the ship
// has fired at all this round.
func (u *User) LastShot() (time.Duration, bool) {
	return u.lastShot, u.hasFired
}

func (u *User) markFired(now time.Duration) {
	u.lastShot = now
	u.hasFired = true
}

// Update handles rotation and movement along the heading. The ship is
// frozen once the round is over.
func (u *User) Update(ctx UpdateContext) {
	if !ctx.Round.Running() {
		return
	}
	dt := ctx.Delta.Seconds()

	if ctx.Input.Left {
		u.Angle -= u.RotationSpeed * dt
	}
	if ctx.Input.Right {
		u.Angle += u.RotationSpeed * dt
	}

	// Keep the angle bounded during long rotations
	u.Angle = math.Remainder(u.Angle, 2*math.Pi)

	step := 0.0
	if ctx.Input.Up {
		step += u.MoveSpeed * dt
	}
	if ctx.Input.Down {
		step -= u.MoveSpeed * dt
	}
	if step != 0 {
		sin, cos := math.Sincos(u.Angle)
		u.X += sin * step
		u.Y -= cos * step
	}

	u.X = physics.Clamp(u.X, u.Size, ctx.Bounds.Width-u.Size)
	u.Y = physics.Clamp(u.Y, u.Size, ctx.Bounds.Height-u.Size)
}

// Shape returns the ship's triangle.
func (u *User) Shape() Shape {
	return Shape{Kind: ShapeTriangle, X: u.X, Y: u.Y, Size: u.Size, Angle: u.Angle, Color: u.Color}
}

// Shapes yields the ship's triangle.
func (u *User) Shapes() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		yield(u.Shape())
	}
}
