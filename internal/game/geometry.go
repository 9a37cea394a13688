package game

import "math"

// Point is a position or direction in chart space: 1350x900 virtual units
// with the origin at the centre of the screen and y pointing up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) IsZero() bool          { return p.X == 0 && p.Y == 0 }

// Normalize returns the unit vector of p, or the zero vector.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return p.Scale(1 / l)
}
