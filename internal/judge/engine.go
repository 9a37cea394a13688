package judge

import (
	"sort"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/input"
	"git.lost.host/meutraa/beatjudge/internal/score"
	"git.lost.host/meutraa/beatjudge/internal/tempo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// defaultFrame stands in for the frame delta when there is no previous frame
// to measure against.
const defaultFrame = 1.0 / 60

type Config struct {
	PerfectMs       float64   `yaml:"perfect_ms"`
	GoodMs          float64   `yaml:"good_ms"`
	BodyToleranceMs float64   `yaml:"body_tolerance_ms"`
	TailToleranceMs float64   `yaml:"tail_tolerance_ms"`
	Autoplay        bool      `yaml:"autoplay"`
	Flip            game.Flip `yaml:"chart_flipping"`

	Input input.Config `yaml:"input"`
}

func DefaultConfig() Config {
	return Config{
		PerfectMs:       80,
		GoodMs:          160,
		BodyToleranceMs: 100,
		TailToleranceMs: 100,
		Input:           input.DefaultConfig(),
	}
}

// BadMs is the outer edge of the instant hit window.
func (c Config) BadMs() float64 {
	return c.GoodMs * 1.125
}

// Event reports a note changing outcome.
type Event struct {
	Note        int
	Kind        game.Kind
	Outcome     game.Judgment
	Provisional bool // a held note's head, the tail is still to come
	DeltaMs     float64
	Timed       bool
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// Engine judges a chart against pointer input, one frame at a time. It is
// not safe for concurrent use; the host calls it from its frame loop.
type Engine struct {
	cfg   Config
	log   *zap.Logger
	chart *game.Chart

	mapper  *tempo.Mapper
	lines   []*game.Line
	poses   []game.Pose
	matcher *input.Matcher
	agg     *score.Aggregator

	states []State
	hitSec []float64
	endSec []float64
	floor  []float64
	order  []int // note indices by hit time, then kind
	cursor int   // every note before it in order has a final outcome

	listeners []func(Event)

	started    bool
	dirty      bool
	timeSec    float64
	beat       float64
	frameDelta float64

	candidates []int
	distance   []float64
}

func New(chart *game.Chart, cfg Config, opts ...Option) (*Engine, error) {
	if err := chart.Validate(); nil != err {
		return nil, errors.Wrap(err, "invalid chart")
	}
	mapper, err := tempo.New(chart.Tempo)
	if nil != err {
		return nil, errors.Wrap(err, "invalid tempo")
	}

	e := &Engine{cfg: cfg, chart: chart, mapper: mapper}
	for _, opt := range opts {
		opt(e)
	}
	if nil == e.log {
		e.log = zap.NewNop()
	}
	e.log = e.log.Named("judge")

	if len(chart.Lines) == 0 {
		e.lines = []*game.Line{game.NewLine(game.LineData{})}
	}
	for _, data := range chart.Lines {
		e.lines = append(e.lines, game.NewLine(data))
	}
	events := 0
	for _, l := range e.lines {
		events += l.EventCount()
	}
	e.poses = make([]game.Pose, len(e.lines))

	n := len(chart.Notes)
	e.states = make([]State, n)
	e.hitSec = make([]float64, n)
	e.endSec = make([]float64, n)
	e.floor = make([]float64, n)
	e.distance = make([]float64, n)
	e.order = make([]int, n)
	for i := range chart.Notes {
		note := &chart.Notes[i]
		l := e.lines[note.Line]
		e.order[i] = i
		e.hitSec[i] = mapper.TimeSec(l.Unscaled(note.StartBeat)) + chart.OffsetSec
		e.endSec[i] = mapper.TimeSec(l.Unscaled(note.EndBeat)) + chart.OffsetSec
	}
	sort.SliceStable(e.order, func(a, b int) bool {
		ia, ib := e.order[a], e.order[b]
		if e.hitSec[ia] != e.hitSec[ib] {
			return e.hitSec[ia] < e.hitSec[ib]
		}
		return chart.Notes[ia].Kind < chart.Notes[ib].Kind
	})
	for _, i := range e.order {
		note := &chart.Notes[i]
		e.floor[i] = e.lines[note.Line].FloorAt(note.StartBeat, mapper)
	}

	e.matcher = input.NewMatcher(cfg.Input, e.log)
	e.agg = score.NewAggregator(chart.NoteCount())

	e.log.Debug("loaded chart",
		zap.Int("notes", n),
		zap.Int("scored", chart.NoteCount()),
		zap.Int("lines", len(e.lines)),
		zap.Int("events", events),
		zap.Int("tempos", len(chart.Tempo)),
		zap.Bool("autoplay", cfg.Autoplay),
	)
	return e, nil
}

// OnJudgment registers fn to be called for every outcome change.
func (e *Engine) OnJudgment(fn func(Event)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) PointerDown(id int, timeSec float64, p game.Point) {
	e.matcher.Down(id, timeSec, p)
	e.dirty = true
}

func (e *Engine) PointerMove(id int, timeSec float64, p, velocity game.Point) {
	e.matcher.Move(id, timeSec, p, velocity)
	e.dirty = true
}

func (e *Engine) PointerUp(id int) {
	e.matcher.Up(id)
	e.dirty = true
}

// Seek jumps to timeSec, dropping unclaimed taps. Notes judged after the
// new position are retracted.
func (e *Engine) Seek(timeSec float64) {
	e.log.Debug("seek", zap.Float64("from", e.timeSec), zap.Float64("to", timeSec))
	e.matcher.Reset(timeSec)
	e.dirty = true
	e.Update(timeSec)
}

// Update moves the engine to timeSec, song time in seconds. Calling it again
// with the same time and no new input does nothing.
func (e *Engine) Update(timeSec float64) {
	if e.started && timeSec == e.timeSec && !e.dirty {
		return
	}
	delta := timeSec - e.timeSec
	back := e.started && delta < 0
	if !e.started || delta <= 0 {
		delta = defaultFrame
	}
	e.started, e.dirty = true, false
	e.timeSec, e.frameDelta = timeSec, delta
	e.beat = e.mapper.Beat(timeSec - e.chart.OffsetSec)

	for i, l := range e.lines {
		e.poses[i] = l.Evaluate(l.Beat(e.beat), e.mapper).Flipped(e.cfg.Flip)
	}
	// every layer was set at or before the previous beat, so only going
	// back in time can undo any of them
	if back {
		e.rewind()
	}
	e.matcher.Decay(timeSec, delta)
	e.advance()
	e.matcher.Prune(timeSec, e.cfg.BadMs()/1000)
}

// noteBeat is the beat as the note's line sees it.
func (e *Engine) noteBeat(i int) float64 {
	return e.lines[e.chart.Notes[i].Line].Beat(e.beat)
}

// rewind reverts every layer of judging that happened after the current
// beat: the final outcome, then the head, then a pending early hit.
func (e *Engine) rewind() {
	retracted := 0
	e.cursor = 0
	for i := range e.states {
		st := &e.states[i]
		beat := e.noteBeat(i)
		if st.Outcome != game.Unjudged && beat < st.beatJudged {
			switch {
			case nil != st.amended:
				e.agg.Unamend(*st.amended)
				st.amended = nil
			case st.counted:
				e.agg.Unjudge(st.Outcome)
			}
			st.Outcome, st.counted = game.Unjudged, false
			st.lastContact = e.timeSec
			retracted++
		}
		if st.Provisional != game.Unjudged && beat < st.beatProvisional {
			e.agg.Unjudge(st.Provisional)
			st.Provisional = game.Unjudged
			retracted++
		}
		if st.pending && beat < st.beatPending {
			st.pending = false
		}
	}
	if retracted > 0 {
		e.agg.Rewind(e.beat)
		e.log.Debug("rewound", zap.Float64("beat", e.beat), zap.Int("retracted", retracted))
	}
}

func (e *Engine) target(i int) input.Target {
	note := &e.chart.Notes[i]
	x := note.PositionX
	if e.cfg.Flip.MirrorsNotes() {
		x = -x
	}
	return input.Target{Pose: e.poses[note.Line], PositionX: x}
}

// advance steps every note that could change this frame. Notes compete for
// input by hit time, then by distance to the nearest pointer, then kind.
func (e *Engine) advance() {
	horizon := e.timeSec + e.cfg.BadMs()/1000
	for e.cursor < len(e.order) && e.states[e.order[e.cursor]].Outcome != game.Unjudged {
		e.cursor++
	}
	e.candidates = e.candidates[:0]
	for _, i := range e.order[e.cursor:] {
		if e.hitSec[i] > horizon {
			break
		}
		if e.states[i].Outcome == game.Unjudged {
			e.candidates = append(e.candidates, i)
			e.distance[i] = e.matcher.Nearest(e.target(i))
		}
	}
	notes := e.chart.Notes
	sort.SliceStable(e.candidates, func(a, b int) bool {
		ia, ib := e.candidates[a], e.candidates[b]
		if e.hitSec[ia] != e.hitSec[ib] {
			return e.hitSec[ia] < e.hitSec[ib]
		}
		if e.distance[ia] != e.distance[ib] {
			return e.distance[ia] < e.distance[ib]
		}
		return notes[ia].Kind < notes[ib].Kind
	})

	for _, i := range e.candidates {
		note := &notes[i]
		f := frame{
			now:    e.timeSec,
			beat:   e.noteBeat(i),
			note:   note,
			hitSec: e.hitSec[i],
			endSec: e.endSec[i],
			target: e.target(i),
			cfg:    &e.cfg,
		}
		m := machines[note.Kind]
		in := m.want(&e.states[i], &f, e.matcher)
		e.apply(i, f.beat, m.advance(e.states[i], &f, in))
	}
}

// apply records tr for note i, stamping each layer with the note's beat.
func (e *Engine) apply(i int, beat float64, tr Transition) {
	if tr.empty() {
		return
	}
	st := &e.states[i]
	note := &e.chart.Notes[i]

	if tr.Contact {
		st.lastContact = e.timeSec
	}
	if tr.Pending {
		st.pending, st.pendingDelta, st.beatPending = true, tr.DeltaMs, beat
		return
	}
	if tr.Provisional != game.Unjudged {
		st.Provisional, st.beatProvisional = tr.Provisional, beat
		st.lastContact = e.timeSec
		e.agg.Judge(tr.Provisional)
		if tr.Final == game.Unjudged {
			e.notify(Event{Note: i, Kind: note.Kind, Outcome: tr.Provisional, Provisional: true, DeltaMs: tr.DeltaMs, Timed: tr.Timed})
		}
	}
	if tr.Final != game.Unjudged {
		st.Outcome, st.beatJudged = tr.Final, beat
		switch {
		case tr.Break:
			am := e.agg.Amend(st.Provisional, tr.Final)
			st.amended = &am
		case st.Provisional == game.Unjudged:
			e.agg.Judge(tr.Final)
			st.counted = true
		}
		e.notify(Event{Note: i, Kind: note.Kind, Outcome: tr.Final, DeltaMs: tr.DeltaMs, Timed: tr.Timed})
	}
	if tr.Timed && !note.IsFake {
		e.agg.RecordDelta(tr.DeltaMs, e.beat)
	}
}

func (e *Engine) notify(ev Event) {
	for _, fn := range e.listeners {
		fn(ev)
	}
}

func (e *Engine) Snapshot() score.Snapshot {
	return score.Calculate(e.agg)
}

func (e *Engine) Outcome(i int) game.Judgment {
	return e.states[i].Outcome
}

func (e *Engine) Provisional(i int) game.Judgment {
	return e.states[i].Provisional
}

func (e *Engine) Pose(line int) game.Pose {
	return e.poses[line]
}

// NoteFloor is how far along its line's speed curve a note still is from
// the line, zero once it arrives.
func (e *Engine) NoteFloor(i int) float64 {
	return e.floor[i] - e.poses[e.chart.Notes[i].Line].Height
}

func (e *Engine) NoteCount() int {
	return len(e.chart.Notes)
}

func (e *Engine) TimeSec() float64 {
	return e.timeSec
}

func (e *Engine) Beat() float64 {
	return e.beat
}

// Finished is true when every note has a final outcome.
func (e *Engine) Finished() bool {
	for _, i := range e.order[e.cursor:] {
		if e.states[i].Outcome == game.Unjudged {
			return false
		}
	}
	return true
}

// EndSec is the song time of the last note's end.
func (e *Engine) EndSec() float64 {
	end := 0.0
	for _, t := range e.endSec {
		if t > end {
			end = t
		}
	}
	return end
}
