package input

import (
	"math"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"go.uber.org/zap"
)

type Config struct {
	Threshold     float64 `yaml:"threshold"`      // maximum distance along the line to hit a note
	FlickVelocity float64 `yaml:"flick_velocity"` // minimum speed for a move to count as a flick
}

func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, FlickVelocity: DefaultFlickVelocity}
}

// Matcher keeps the live pointer samples and hands them out to notes.
type Matcher struct {
	cfg   Config
	log   *zap.Logger
	taps  []Tap
	drags []*Drag
}

func NewMatcher(cfg Config, log *zap.Logger) *Matcher {
	if nil == log {
		log = zap.NewNop()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.FlickVelocity <= 0 {
		cfg.FlickVelocity = DefaultFlickVelocity
	}
	return &Matcher{cfg: cfg, log: log.Named("input")}
}

func (m *Matcher) drag(id int) *Drag {
	for _, d := range m.drags {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Down records a tap and starts following the pointer.
func (m *Matcher) Down(id int, timeSec float64, p game.Point) {
	m.taps = append(m.taps, Tap{ID: id, TimeSec: timeSec, Position: p})
	if d := m.drag(id); nil != d {
		d.TimeSec, d.Position, d.Velocity, d.Consumed = timeSec, p, game.Point{}, nil
		return
	}
	m.drags = append(m.drags, &Drag{ID: id, TimeSec: timeSec, Position: p})
}

// Move updates a followed pointer. v is the raw velocity in chart units.
func (m *Matcher) Move(id int, timeSec float64, p game.Point, v game.Point) {
	d := m.drag(id)
	if nil == d {
		return
	}
	speed := v.Len()
	dir := v.Normalize()
	d.TimeSec = timeSec
	d.Position = p
	if speed < m.cfg.FlickVelocity {
		d.Velocity = game.Point{}
		d.Consumed = nil
		return
	}
	d.Velocity = dir
	// turning away from the spent direction frees the pointer to flick again
	if nil != d.Consumed && d.Consumed.Dot(dir) < 0.5 {
		d.Consumed = nil
	}
}

// Up stops following the pointer. Its unclaimed taps stay visible until the
// next Prune so a tap shorter than a frame is not lost.
func (m *Matcher) Up(id int) {
	for i := range m.taps {
		if m.taps[i].ID == id {
			m.taps[i].released = true
		}
	}
	nd := m.drags[:0]
	for _, d := range m.drags {
		if d.ID != id {
			nd = append(nd, d)
		}
	}
	m.drags = nd
}

// FindTap claims the tap nearest to target among those timed within
// [earliest, latest] and inside the distance threshold.
func (m *Matcher) FindTap(target Target, earliest, latest float64) (Tap, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, tap := range m.taps {
		if tap.TimeSec < earliest || tap.TimeSec > latest {
			continue
		}
		d := target.distance(tap.Position)
		if d <= m.cfg.Threshold && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Tap{}, false
	}
	tap := m.taps[best]
	m.taps = append(m.taps[:best], m.taps[best+1:]...)
	return tap, true
}

// FindDrag returns the nearest followed pointer within the threshold. With
// requireVelocity only unspent flicks qualify, and the one returned has its
// direction marked as spent.
func (m *Matcher) FindDrag(target Target, requireVelocity bool) (Drag, bool) {
	var best *Drag
	bestDist := math.Inf(1)
	for _, d := range m.drags {
		dist := target.distance(d.Position)
		if dist > m.cfg.Threshold || dist >= bestDist {
			continue
		}
		if requireVelocity && !d.qualifies() {
			continue
		}
		best, bestDist = d, dist
	}
	if nil == best {
		return Drag{}, false
	}
	if requireVelocity {
		spent := best.Velocity
		best.Consumed = &spent
	}
	return *best, true
}

// Nearest is the distance from target to the closest live sample, or +Inf.
func (m *Matcher) Nearest(target Target) float64 {
	best := math.Inf(1)
	for _, tap := range m.taps {
		best = math.Min(best, target.distance(tap.Position))
	}
	for _, d := range m.drags {
		best = math.Min(best, target.distance(d.Position))
	}
	return best
}

// Decay zeroes the velocity of pointers that have not moved for ten frames.
func (m *Matcher) Decay(now, frameDelta float64) {
	idle := now - frameDelta*10
	for _, d := range m.drags {
		if d.TimeSec < idle {
			d.TimeSec = now
			d.Velocity = game.Point{}
			d.Consumed = nil
		}
	}
}

// Prune drops released taps and taps older than keep seconds.
func (m *Matcher) Prune(now, keep float64) {
	nt := m.taps[:0]
	for _, tap := range m.taps {
		if tap.released || tap.TimeSec < now-keep {
			continue
		}
		nt = append(nt, tap)
	}
	m.taps = nt
}

// Reset forgets pending taps and stops every drag's motion, as after a seek.
func (m *Matcher) Reset(now float64) {
	if len(m.taps) > 0 {
		m.log.Debug("dropping taps", zap.Int("count", len(m.taps)))
	}
	m.taps = m.taps[:0]
	for _, d := range m.drags {
		d.TimeSec = now
		d.Velocity = game.Point{}
		d.Consumed = nil
	}
}

func (m *Matcher) Taps() []Tap {
	return m.taps
}

func (m *Matcher) Drags() []*Drag {
	return m.drags
}
