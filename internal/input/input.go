package input

import (
	"math"

	"git.lost.host/meutraa/beatjudge/internal/game"
)

const (
	// VirtualWidth and VirtualHeight are the chart space all positions and
	// velocities are measured in.
	VirtualWidth  = 1350
	VirtualHeight = 900

	DefaultThreshold     = 180 // chart units along the line
	DefaultFlickVelocity = 10  // chart units per second
)

// Viewport maps screen pixels, origin top left with y down, into chart space.
type Viewport struct {
	Width, Height float64
}

func (v Viewport) Position(x, y float64) game.Point {
	return game.Point{
		X: (x - v.Width/2) * VirtualWidth / v.Width,
		Y: (v.Height/2 - y) * VirtualHeight / v.Height,
	}
}

func (v Viewport) Velocity(vx, vy float64) game.Point {
	return game.Point{X: vx * VirtualWidth / v.Width, Y: -vy * VirtualHeight / v.Height}
}

// Tap is a pointer-down waiting to be claimed by a note.
type Tap struct {
	ID       int
	TimeSec  float64
	Position game.Point

	released bool
}

// Drag follows a pressed pointer. Velocity is a unit vector, or zero when
// the pointer moves slower than the flick threshold. Consumed holds the
// direction a flick already used, if any.
type Drag struct {
	ID       int
	TimeSec  float64
	Position game.Point
	Velocity game.Point
	Consumed *game.Point
}

// qualifies reports whether the drag carries a flick that has not been spent
// in its current direction.
func (d *Drag) qualifies() bool {
	return !d.Velocity.IsZero() && (d.Consumed == nil || d.Velocity.Dot(*d.Consumed) < 0)
}

// Target is where a note wants to be hit: PositionX along the evaluated line.
type Target struct {
	Pose      game.Pose
	PositionX float64
}

func (t Target) distance(p game.Point) float64 {
	return math.Abs(t.Pose.Along(p) - t.PositionX)
}
