package judge

import (
	"math"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/input"
	"git.lost.host/meutraa/beatjudge/internal/score"
)

// State is the judging progress of one note. Held notes resolve their head
// into Provisional first and settle Outcome at the tail.
type State struct {
	Outcome     game.Judgment
	Provisional game.Judgment

	pending      bool
	pendingDelta float64
	lastContact  float64

	// beats at which each layer was set, for rewinding
	beatJudged, beatProvisional, beatPending float64

	counted bool // Outcome was counted on its own
	amended *score.Amendment
}

// Transition is what one frame does to a note. The engine applies it.
type Transition struct {
	Pending     bool
	Contact     bool
	Provisional game.Judgment
	Final       game.Judgment
	Break       bool // Final replaces an already counted Provisional
	DeltaMs     float64
	Timed       bool // DeltaMs is a real timing error
}

func (t Transition) empty() bool {
	return !t.Pending && !t.Contact && t.Provisional == game.Unjudged && t.Final == game.Unjudged
}

// frame is everything a note sees of the current update.
type frame struct {
	now, beat      float64
	note           *game.Note
	hitSec, endSec float64
	target         input.Target
	cfg            *Config
}

func (f *frame) deltaMs(t float64) float64 {
	return (t - f.hitSec) * 1000
}

func (f *frame) reached() bool {
	return f.beat >= f.note.StartBeat
}

// expired is true once the head can no longer be hit.
func (f *frame) expired() bool {
	return f.reached() && f.deltaMs(f.now) >= f.cfg.GoodMs
}

func (f *frame) ignoresInput() bool {
	return f.note.IsFake || f.cfg.Autoplay
}

type sample struct {
	ok      bool
	timeSec float64
}

type machine struct {
	want    func(s *State, f *frame, m *input.Matcher) sample
	advance func(s State, f *frame, in sample) Transition
}

var machines = [...]machine{
	game.Instant: {wantTap, advanceInstant},
	game.Held:    {wantHeld, advanceHeld},
	game.Flick:   {wantSwipe(true), advanceSwipe},
	game.Drag:    {wantSwipe(false), advanceSwipe},
}

func classify(d float64, cfg *Config) game.Judgment {
	abs := math.Abs(d)
	switch {
	case abs <= cfg.PerfectMs:
		return game.Perfect
	case d < -cfg.GoodMs:
		return game.Bad
	case abs <= cfg.GoodMs && d < 0:
		return game.GoodEarly
	case abs <= cfg.GoodMs:
		return game.GoodLate
	}
	return game.Bad
}

// late grades a non-instant head hit at or after its time.
func late(d float64, cfg *Config) game.Judgment {
	if d <= cfg.PerfectMs {
		return game.Perfect
	}
	return game.GoodLate
}

func wantTap(s *State, f *frame, m *input.Matcher) sample {
	if f.ignoresInput() {
		return sample{}
	}
	bad := f.cfg.BadMs() / 1000
	tap, ok := m.FindTap(f.target, f.hitSec-bad, f.hitSec+bad)
	return sample{ok: ok, timeSec: tap.TimeSec}
}

func advanceInstant(s State, f *frame, in sample) Transition {
	switch {
	case f.note.IsFake:
		if f.reached() {
			return Transition{Final: game.Passed}
		}
	case f.cfg.Autoplay:
		if f.reached() {
			return Transition{Final: game.Perfect, DeltaMs: f.deltaMs(f.now), Timed: true}
		}
	case in.ok:
		d := f.deltaMs(in.timeSec)
		return Transition{Final: classify(d, f.cfg), DeltaMs: d, Timed: true}
	case f.expired():
		return Transition{Final: game.Miss}
	}
	return Transition{}
}

func wantHeld(s *State, f *frame, m *input.Matcher) sample {
	if f.ignoresInput() || (s.pending && s.Provisional == game.Unjudged) {
		return sample{}
	}
	if s.Provisional != game.Unjudged {
		_, ok := m.FindDrag(f.target, false)
		return sample{ok: ok, timeSec: f.now}
	}
	good := f.cfg.GoodMs / 1000
	tap, ok := m.FindTap(f.target, f.hitSec-good, f.hitSec+good)
	return sample{ok: ok, timeSec: tap.TimeSec}
}

func advanceHeld(s State, f *frame, in sample) Transition {
	switch {
	case f.note.IsFake:
		if f.beat >= f.note.EndBeat {
			return Transition{Final: game.Passed}
		}
	case s.Provisional != game.Unjudged:
		if (f.endSec-f.now)*1000 < f.cfg.TailToleranceMs {
			return Transition{Final: s.Provisional}
		}
		if f.cfg.Autoplay {
			break
		}
		if in.ok {
			return Transition{Contact: true}
		}
		if (f.now-s.lastContact)*1000 > f.cfg.BodyToleranceMs {
			return Transition{Final: game.Miss, Break: true}
		}
	case s.pending:
		if f.reached() {
			return Transition{Provisional: game.Perfect, DeltaMs: s.pendingDelta, Timed: true}
		}
	case f.cfg.Autoplay:
		if f.reached() {
			return Transition{Provisional: game.Perfect, DeltaMs: f.deltaMs(f.now), Timed: true}
		}
	case in.ok:
		d := f.deltaMs(in.timeSec)
		if d < 0 {
			if !f.reached() {
				return Transition{Pending: true, DeltaMs: d, Timed: true}
			}
			return Transition{Provisional: game.Perfect, DeltaMs: d, Timed: true}
		}
		return Transition{Provisional: late(d, f.cfg), DeltaMs: d, Timed: true}
	case f.expired():
		return Transition{Provisional: game.Miss, Final: game.Miss}
	}
	return Transition{}
}

// wantSwipe matches flicks, which need a fresh direction, and drags, which
// only need a pointer in range, while the frame is inside the good window.
func wantSwipe(requireVelocity bool) func(s *State, f *frame, m *input.Matcher) sample {
	return func(s *State, f *frame, m *input.Matcher) sample {
		if f.ignoresInput() || s.pending {
			return sample{}
		}
		if math.Abs(f.deltaMs(f.now)) > f.cfg.GoodMs {
			return sample{}
		}
		_, ok := m.FindDrag(f.target, requireVelocity)
		return sample{ok: ok, timeSec: f.now}
	}
}

func advanceSwipe(s State, f *frame, in sample) Transition {
	switch {
	case f.note.IsFake:
		if f.reached() {
			return Transition{Final: game.Passed}
		}
	case s.pending, f.cfg.Autoplay:
		if f.reached() {
			return Transition{Final: game.Perfect}
		}
	case in.ok:
		d := f.deltaMs(in.timeSec)
		if d < 0 {
			if !f.reached() {
				return Transition{Pending: true, DeltaMs: d}
			}
			return Transition{Final: game.Perfect}
		}
		return Transition{Final: late(d, f.cfg)}
	case f.expired():
		return Transition{Final: game.Miss}
	}
	return Transition{}
}
