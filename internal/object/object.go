// Package object holds the simulated entities of a round: the moon's
// particle field, the projectile set and the player ship, together with
// the round context they share during an update.
package object

import (
	"iter"
	"math"
	"time"

	"github.com/tomz197/moonshot/internal/draw"
	"github.com/tomz197/moonshot/internal/input"
	"github.com/tomz197/moonshot/internal/physics"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Bounds is the rectangular play-field [0, Width]x[0, Height].
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the play-field.
func (b Bounds) Center() (x, y float64) {
	return b.Width / 2, b.Height / 2
}

// Contains reports whether (x, y) lies inside the play-field.
func (b Bounds) Contains(x, y float64) bool {
	return physics.InRect(x, y, b.Width, b.Height)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Input  Input
	Bounds Bounds
	Round  *Round
}

// ShapeKind selects how a Shape is drawn.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeTriangle
)

// Shape is a drawable handed to the renderer: a circle of radius Size,
// or an isosceles triangle of height-ish Size pointing along Angle.
type Shape struct {
	Kind  ShapeKind
	X, Y  float64
	Size  float64
	Angle float64 // Radians, 0 = pointing up, clockwise positive
	Color string  // CSS-style hex tag, e.g. "#f00"
}

// Vertices returns the corners of a triangle shape: the nose first,
// then the right and left rear corners.
func (s Shape) Vertices() [3]draw.Point {
	sin, cos := math.Sincos(s.Angle)
	rotate := func(x, y float64) draw.Point {
		return draw.Point{
			X: s.X + x*cos - y*sin,
			Y: s.Y + x*sin + y*cos,
		}
	}
	return [3]draw.Point{
		rotate(0, -s.Size),
		rotate(s.Size/2, s.Size/2),
		rotate(-s.Size/2, s.Size/2),
	}
}

// Drawable is implemented by everything that contributes shapes to a frame.
type Drawable interface {
	Shapes() iter.Seq[Shape]
}
