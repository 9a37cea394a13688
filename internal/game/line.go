package game

import (
	"math"

	"git.lost.host/meutraa/beatjudge/internal/event"
)

// EventLayer holds one layer of line motion. Layers are summed.
type EventLayer struct {
	MoveX  []event.Event `json:"moveXEvents"`
	MoveY  []event.Event `json:"moveYEvents"`
	Rotate []event.Event `json:"rotateEvents"`
	Alpha  []event.Event `json:"alphaEvents"`
	Speed  []event.Event `json:"speedEvents"`
}

// Extended attributes are not layered.
type Extended struct {
	ScaleX []event.Event `json:"scaleXEvents"`
	ScaleY []event.Event `json:"scaleYEvents"`
	Color  []event.Event `json:"colorEvents"`
	Text   []event.Event `json:"textEvents"`
	Frame  []event.Event `json:"gifEvents"`
}

type LineData struct {
	Layers   []EventLayer `json:"eventLayers"`
	Extended *Extended    `json:"extended,omitempty"`

	// BPMFactor scales the beat the line and its notes see. Zero means 1.
	BPMFactor float64 `json:"bpmfactor,omitempty"`
}

// Flip mirrors the whole chart: FlipX left to right, FlipY top to bottom.
type Flip uint8

const (
	FlipX Flip = 1 << iota
	FlipY
)

// MirrorsNotes is true when notes must swap sides of their line to stay
// where the flip puts them. Flipping both ways is a half turn and keeps them.
func (f Flip) MirrorsNotes() bool {
	return f == FlipX || f == FlipY
}

func (f Flip) Valid() bool {
	return f <= FlipX|FlipY
}

// Pose is the evaluated state of a line at one beat.
type Pose struct {
	Origin   Point
	Rotation float64 // degrees, clockwise
	Alpha    float64
	Height   float64 // distance travelled by the speed curves

	ScaleX, ScaleY float64
	Color          []float64
	Text           string
	HasText        bool
	Frame          float64
	HasFrame       bool // false outside any frame event
}

// Direction is the unit vector along the line.
func (p Pose) Direction() Point {
	r := p.Rotation * math.Pi / 180
	return Point{X: math.Cos(r), Y: -math.Sin(r)}
}

// Flipped places the pose as seen in a flipped chart.
func (p Pose) Flipped(f Flip) Pose {
	if f&FlipX != 0 {
		p.Origin.X = -p.Origin.X
		p.Rotation = -p.Rotation
	}
	if f&FlipY != 0 {
		p.Origin.Y = -p.Origin.Y
		p.Rotation = 180 - p.Rotation
	}
	return p
}

// Along projects q onto the line, measured from the origin.
func (p Pose) Along(q Point) float64 {
	return q.Sub(p.Origin).Dot(p.Direction())
}

type layerTracks struct {
	moveX, moveY, rotate, alpha *event.Track
	speed                       *event.SpeedTrack
}

// Line evaluates a judgment line's tracks. Its cursors are sized once from
// the layer count.
type Line struct {
	layers []layerTracks
	factor float64

	scaleX, scaleY, color, text *event.Track
	frame                       *event.Track
}

func NewLine(d LineData) *Line {
	l := &Line{layers: make([]layerTracks, len(d.Layers)), factor: d.BPMFactor}
	if l.factor == 0 {
		l.factor = 1
	}
	for i, layer := range d.Layers {
		l.layers[i] = layerTracks{
			moveX:  event.NewTrack(layer.MoveX),
			moveY:  event.NewTrack(layer.MoveY),
			rotate: event.NewTrack(layer.Rotate),
			alpha:  event.NewTrack(layer.Alpha),
			speed:  event.NewSpeedTrack(layer.Speed),
		}
	}
	ext := d.Extended
	if ext == nil {
		ext = &Extended{}
	}
	l.scaleX = event.NewTrack(ext.ScaleX)
	l.scaleY = event.NewTrack(ext.ScaleY)
	l.color = event.NewTrack(ext.Color)
	l.text = event.NewTrack(ext.Text)
	l.frame = event.NewDiscreteTrack(ext.Frame)
	return l
}

// Beat converts the chart beat into the beat this line runs on.
func (l *Line) Beat(beat float64) float64 {
	return beat * l.factor
}

// Unscaled converts a beat on this line back into the chart beat.
func (l *Line) Unscaled(beat float64) float64 {
	return beat / l.factor
}

// EventCount is the number of events across all of the line's tracks.
func (l *Line) EventCount() int {
	n := 0
	for _, layer := range l.layers {
		n += layer.moveX.Len() + layer.moveY.Len() + layer.rotate.Len() + layer.alpha.Len() + layer.speed.Len()
	}
	return n + l.scaleX.Len() + l.scaleY.Len() + l.color.Len() + l.text.Len() + l.frame.Len()
}

// FloorAt sums the speed integrals of every layer at beat.
func (l *Line) FloorAt(beat float64, tl event.Timeline) float64 {
	h := 0.0
	for i := range l.layers {
		h += l.layers[i].speed.DistanceAt(beat, tl)
	}
	return h
}

func (l *Line) Evaluate(beat float64, tl event.Timeline) Pose {
	p := Pose{ScaleX: 1, ScaleY: 1}
	for i := range l.layers {
		layer := &l.layers[i]
		x, _ := layer.moveX.Float(beat)
		y, _ := layer.moveY.Float(beat)
		r, _ := layer.rotate.Float(beat)
		a, _ := layer.alpha.Float(beat)
		p.Origin = p.Origin.Add(Point{X: x, Y: y})
		p.Rotation += r
		p.Alpha += a
		p.Height += layer.speed.DistanceAt(beat, tl)
	}
	if v, ok := l.scaleX.Float(beat); ok {
		p.ScaleX = v
	}
	if v, ok := l.scaleY.Float(beat); ok {
		p.ScaleY = v
	}
	if v, ok := l.color.ValueAt(beat); ok && v.Kind == event.Vector {
		p.Color = v.Vec
	}
	if v, ok := l.text.ValueAt(beat); ok && v.Kind == event.String {
		p.Text, p.HasText = v.Str, true
	}
	if v, ok := l.frame.Float(beat); ok {
		p.Frame, p.HasFrame = v, true
	}
	return p
}
