package tempo

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrNoTempo = errors.New("chart has no tempo points")
	ErrBadBPM  = errors.New("tempo point has a non-positive bpm")
)

// Point is a tempo change. StartTimeSec is filled in by New.
type Point struct {
	Beat         float64 `json:"beat"`
	BPM          float64 `json:"bpm"`
	StartTimeSec float64 `json:"-"`
}

// Mapper converts between song time and beats under a piecewise constant
// tempo. Lookups keep a cursor so forward scans are O(1) amortized; a query
// behind the cursor resets it to the first point.
type Mapper struct {
	points  []Point
	beatCur int
	timeCur int
}

func New(points []Point) (*Mapper, error) {
	if len(points) == 0 {
		return nil, ErrNoTempo
	}
	ps := make([]Point, len(points))
	copy(ps, points)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Beat < ps[j].Beat })

	for i := range ps {
		if ps[i].BPM <= 0 {
			return nil, errors.Wrapf(ErrBadBPM, "point %d at beat %v", i, ps[i].Beat)
		}
		if i == 0 {
			ps[i].StartTimeSec = 0
			continue
		}
		prev := ps[i-1]
		ps[i].StartTimeSec = prev.StartTimeSec + (ps[i].Beat-prev.Beat)/prev.BPM*60
	}
	return &Mapper{points: ps}, nil
}

// Points returns the integrated tempo points.
func (m *Mapper) Points() []Point {
	return m.points
}

func (m *Mapper) seekBeat(beat float64) Point {
	if m.beatCur > 0 && beat < m.points[m.beatCur].Beat {
		m.beatCur = 0
	}
	// Equal beats advance, so the later of two coincident points wins.
	for m.beatCur < len(m.points)-1 && beat >= m.points[m.beatCur+1].Beat {
		m.beatCur++
	}
	return m.points[m.beatCur]
}

func (m *Mapper) seekTime(timeSec float64) Point {
	if m.timeCur > 0 && timeSec < m.points[m.timeCur].StartTimeSec {
		m.timeCur = 0
	}
	for m.timeCur < len(m.points)-1 && timeSec >= m.points[m.timeCur+1].StartTimeSec {
		m.timeCur++
	}
	return m.points[m.timeCur]
}

func (m *Mapper) TimeSec(beat float64) float64 {
	p := m.seekBeat(beat)
	return p.StartTimeSec + (beat-p.Beat)/p.BPM*60
}

func (m *Mapper) Beat(timeSec float64) float64 {
	p := m.seekTime(timeSec)
	return p.Beat + (timeSec-p.StartTimeSec)/60*p.BPM
}

// BPM is the tempo in effect at beat.
func (m *Mapper) BPM(beat float64) float64 {
	return m.seekBeat(beat).BPM
}
