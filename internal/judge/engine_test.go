package judge

import (
	"math"
	"testing"

	"git.lost.host/meutraa/beatjudge/internal/event"
	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/score"
	"git.lost.host/meutraa/beatjudge/internal/tempo"
	"github.com/pkg/errors"
)

// 120 bpm from beat 0, so beat 4 is at 2.0s
func chart(notes ...game.Note) *game.Chart {
	return &game.Chart{Tempo: []tempo.Point{{Beat: 0, BPM: 120}}, Notes: notes}
}

func instant(beat float64) game.Note {
	return game.Note{Kind: game.Instant, StartBeat: beat, EndBeat: beat}
}

func engine(t *testing.T, c *game.Chart, cfg Config) *Engine {
	e, err := New(c, cfg)
	if nil != err {
		t.Fatal(err)
	}
	return e
}

// frames updates at every 60 Hz frame from one time to another, inclusive.
func frames(e *Engine, from, to float64) {
	for k := int(math.Round(from * 60)); k <= int(math.Round(to*60)); k++ {
		e.Update(float64(k) / 60)
	}
}

var origin = game.Point{}

func TestInstantWindows(t *testing.T) {
	tests := map[string]struct {
		tap   float64 // 0 for no tap
		frame float64
		want  game.Judgment
		combo int
	}{
		"on time":         {2.000, 2.000, game.Perfect, 1},
		"late good":       {2.150, 2.150, game.GoodLate, 1},
		"early good":      {1.850, 1.850, game.GoodEarly, 1},
		"late bad":        {2.170, 2.170, game.Bad, 0},
		"early bad":       {1.830, 1.830, game.Bad, 0},
		"outside bad":     {2.200, 2.200, game.Miss, 0},
		"no tap":          {0, 2.200, game.Miss, 0},
		"no tap yet":      {0, 2.100, game.Unjudged, 0},
		"tap before note": {1.500, 1.500, game.Unjudged, 0},
	}
	for name, tt := range tests {
		e := engine(t, chart(instant(4)), DefaultConfig())
		e.Update(1)
		if tt.tap != 0 {
			e.PointerDown(1, tt.tap, origin)
		}
		e.Update(tt.frame)
		if got := e.Outcome(0); got != tt.want {
			t.Errorf("%s: outcome %v, want %v", name, got, tt.want)
		}
		if got := e.Snapshot().Combo; got != tt.combo {
			t.Errorf("%s: combo %d, want %d", name, got, tt.combo)
		}
	}
}

func TestMissAfterGoodWindow(t *testing.T) {
	e := engine(t, chart(instant(4)), DefaultConfig())
	e.Update(2.15)
	if e.Outcome(0) != game.Unjudged {
		t.Fatalf("missed too early: %v", e.Outcome(0))
	}
	e.Update(2.17)
	if e.Outcome(0) != game.Miss {
		t.Errorf("outcome %v, want Miss", e.Outcome(0))
	}
	s := e.Snapshot()
	if s.Miss != 1 || s.JudgedCount != 1 || len(e.agg.Deltas()) != 0 {
		t.Errorf("snapshot %+v", s)
	}
}

func TestIdempotentUpdate(t *testing.T) {
	e := engine(t, chart(instant(4)), DefaultConfig())
	var events []Event
	e.OnJudgment(func(ev Event) { events = append(events, ev) })
	e.PointerDown(1, 2.01, origin)
	e.Update(2.01)
	e.Update(2.01)
	e.Update(2.01)
	if len(events) != 1 {
		t.Fatalf("%d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Outcome != game.Perfect || !ev.Timed || math.Abs(ev.DeltaMs-10) > 1e-6 || ev.Kind != game.Instant {
		t.Errorf("event %+v", ev)
	}
}

func TestHeldNote(t *testing.T) {
	e := engine(t, chart(game.Note{Kind: game.Held, StartBeat: 4, EndBeat: 8}), DefaultConfig())
	var events []Event
	e.OnJudgment(func(ev Event) { events = append(events, ev) })

	e.Update(1.9)
	e.PointerDown(1, 2.0, origin)
	e.Update(2.0)
	if e.Provisional(0) != game.Perfect || e.Outcome(0) != game.Unjudged {
		t.Fatalf("after head: provisional %v outcome %v", e.Provisional(0), e.Outcome(0))
	}
	if s := e.Snapshot(); s.Combo != 1 || s.JudgedCount != 1 {
		t.Fatalf("after head: %+v", s)
	}

	frames(e, 2.0, 4.1)
	if e.Outcome(0) != game.Perfect {
		t.Errorf("outcome %v, want Perfect", e.Outcome(0))
	}
	s := e.Snapshot()
	if s.Combo != 1 || s.JudgedCount != 1 || s.Perfect != 1 || s.Score != score.MaxScore {
		t.Errorf("combo counted more than once: %+v", s)
	}
	if len(events) != 2 || !events[0].Provisional || events[1].Provisional {
		t.Errorf("events %+v", events)
	}
}

func TestHeldBreakAndRewind(t *testing.T) {
	e := engine(t, chart(game.Note{Kind: game.Held, StartBeat: 4, EndBeat: 8}), DefaultConfig())
	e.PointerDown(1, 2.0, origin)
	frames(e, 2.0, 3.0)
	e.PointerUp(1)
	frames(e, 3.0, 3.2)
	if e.Outcome(0) != game.Miss || e.Provisional(0) != game.Perfect {
		t.Fatalf("provisional %v outcome %v", e.Provisional(0), e.Outcome(0))
	}
	s := e.Snapshot()
	if s.Combo != 0 || s.Miss != 1 || s.Perfect != 0 || s.JudgedCount != 1 {
		t.Errorf("after break: %+v", s)
	}

	e.Seek(2.5)
	if e.Outcome(0) != game.Unjudged || e.Provisional(0) != game.Perfect {
		t.Fatalf("after seek: provisional %v outcome %v", e.Provisional(0), e.Outcome(0))
	}
	s = e.Snapshot()
	if s.Combo != 1 || s.Miss != 0 || s.Perfect != 1 {
		t.Errorf("after seek: %+v", s)
	}

	e.Seek(1.0)
	if e.Provisional(0) != game.Unjudged {
		t.Errorf("head not retracted: %v", e.Provisional(0))
	}
	if s := e.Snapshot(); s.JudgedCount != 0 || s.Combo != 0 {
		t.Errorf("after second seek: %+v", s)
	}
}

func TestHeldEarlyHeadWaits(t *testing.T) {
	e := engine(t, chart(game.Note{Kind: game.Held, StartBeat: 4, EndBeat: 8}), DefaultConfig())
	e.PointerDown(1, 1.9, origin)
	e.Update(1.9)
	if e.Provisional(0) != game.Unjudged {
		t.Fatalf("early head judged before its time: %v", e.Provisional(0))
	}
	e.Update(1.95)
	e.Update(2.0)
	if e.Provisional(0) != game.Perfect {
		t.Fatalf("provisional %v, want Perfect", e.Provisional(0))
	}
	ds := e.agg.Deltas()
	if len(ds) != 1 || math.Abs(ds[0].Ms+100) > 1e-6 {
		t.Errorf("deltas %+v", ds)
	}
}

func TestHeldHeadMiss(t *testing.T) {
	e := engine(t, chart(game.Note{Kind: game.Held, StartBeat: 4, EndBeat: 8}), DefaultConfig())
	e.Update(2.2)
	if e.Outcome(0) != game.Miss || e.Provisional(0) != game.Miss {
		t.Errorf("provisional %v outcome %v", e.Provisional(0), e.Outcome(0))
	}
	if s := e.Snapshot(); s.Miss != 1 || s.JudgedCount != 1 {
		t.Errorf("snapshot %+v", s)
	}
}

func TestFlickDirections(t *testing.T) {
	flick := game.Note{Kind: game.Flick, StartBeat: 4, EndBeat: 4}
	e := engine(t, chart(flick, flick), DefaultConfig())
	e.Update(1)
	e.PointerDown(1, 1.9, origin)
	e.PointerMove(1, 1.95, origin, game.Point{X: 500})
	e.Update(2.0)
	if e.Outcome(0) != game.Perfect || e.Outcome(1) != game.Unjudged {
		t.Fatalf("outcomes %v %v", e.Outcome(0), e.Outcome(1))
	}

	e.PointerMove(1, 2.03, origin, game.Point{X: 400, Y: 20})
	e.Update(2.03)
	if e.Outcome(1) != game.Unjudged {
		t.Fatal("same direction flicked twice")
	}

	e.PointerMove(1, 2.05, origin, game.Point{X: -400})
	e.Update(2.05)
	if e.Outcome(1) != game.Perfect {
		t.Errorf("reversed flick: %v", e.Outcome(1))
	}
	if s := e.Snapshot(); s.Combo != 2 {
		t.Errorf("combo %d, want 2", s.Combo)
	}
}

func TestDragNeedsNoVelocity(t *testing.T) {
	e := engine(t, chart(game.Note{Kind: game.Drag, StartBeat: 4, EndBeat: 4}), DefaultConfig())
	e.PointerDown(1, 1.0, origin)
	e.Update(1.0)
	e.Update(1.9)
	if e.Outcome(0) != game.Unjudged {
		t.Fatalf("early drag committed before its time: %v", e.Outcome(0))
	}
	e.Update(2.0)
	if e.Outcome(0) != game.Perfect {
		t.Errorf("outcome %v, want Perfect", e.Outcome(0))
	}
}

func TestNearerNoteClaimsTap(t *testing.T) {
	a := instant(4)
	b := instant(4)
	b.PositionX = 100
	e := engine(t, chart(a, b), DefaultConfig())
	e.PointerDown(1, 2.0, game.Point{X: 90})
	e.Update(2.0)
	if e.Outcome(1) != game.Perfect || e.Outcome(0) != game.Unjudged {
		t.Errorf("outcomes %v %v", e.Outcome(0), e.Outcome(1))
	}
}

func TestEarlierNoteClaimsTap(t *testing.T) {
	a := instant(4.25)
	b := instant(4)
	b.PositionX = 150
	e := engine(t, chart(a, b), DefaultConfig())
	e.PointerDown(1, 2.06, origin)
	e.Update(2.06)
	if e.Outcome(1) != game.Perfect || e.Outcome(0) != game.Unjudged {
		t.Errorf("outcomes %v %v", e.Outcome(0), e.Outcome(1))
	}
}

func TestLinePositionMatters(t *testing.T) {
	c := chart(instant(4))
	c.Lines = []game.LineData{{Layers: []game.EventLayer{{
		MoveX: []event.Event{{StartBeat: 0, EndBeat: 1, Start: event.Num(400), End: event.Num(400)}},
	}}}}
	e := engine(t, c, DefaultConfig())
	e.PointerDown(1, 2.0, origin)
	e.Update(2.0)
	if e.Outcome(0) != game.Unjudged {
		t.Fatalf("tap far from the line hit: %v", e.Outcome(0))
	}
	e.PointerDown(2, 2.01, game.Point{X: 400, Y: 300})
	e.Update(2.01)
	if e.Outcome(0) != game.Perfect {
		t.Errorf("outcome %v, want Perfect", e.Outcome(0))
	}
	if p := e.Pose(0); p.Origin.X != 400 {
		t.Errorf("pose %+v", p)
	}
}

func TestChartOffset(t *testing.T) {
	c := chart(instant(4))
	c.OffsetSec = 0.5
	e := engine(t, c, DefaultConfig())
	e.PointerDown(1, 2.0, origin)
	e.Update(2.0)
	if e.Outcome(0) != game.Unjudged {
		t.Fatalf("offset ignored: %v", e.Outcome(0))
	}
	e.PointerDown(1, 2.5, origin)
	e.Update(2.5)
	if e.Outcome(0) != game.Perfect {
		t.Errorf("outcome %v, want Perfect", e.Outcome(0))
	}
	if math.Abs(e.Beat()-4) > 1e-9 {
		t.Errorf("beat %v, want 4", e.Beat())
	}
}

func TestFakeNotesPass(t *testing.T) {
	fake := instant(4)
	fake.IsFake = true
	heldFake := game.Note{Kind: game.Held, StartBeat: 4, EndBeat: 6, IsFake: true}
	e := engine(t, chart(fake, heldFake), DefaultConfig())
	e.PointerDown(1, 2.0, origin)
	e.Update(2.0)
	if e.Outcome(0) != game.Passed || e.Outcome(1) != game.Unjudged {
		t.Fatalf("outcomes %v %v", e.Outcome(0), e.Outcome(1))
	}
	e.Update(3.0)
	if e.Outcome(1) != game.Passed || !e.Finished() {
		t.Errorf("held fake %v", e.Outcome(1))
	}
	s := e.Snapshot()
	if s.JudgedCount != 0 || s.Total != 0 || s.Score != score.MaxScore {
		t.Errorf("snapshot %+v", s)
	}
}

func TestEmptyChart(t *testing.T) {
	e := engine(t, chart(), DefaultConfig())
	e.Update(10)
	s := e.Snapshot()
	if s.Score != score.MaxScore || s.Accuracy != 1 || !e.Finished() {
		t.Errorf("snapshot %+v", s)
	}
}

func TestRejectsCharts(t *testing.T) {
	tests := map[string]struct {
		chart *game.Chart
		err   error
	}{
		"no tempo":  {&game.Chart{Notes: []game.Note{instant(1)}}, tempo.ErrNoTempo},
		"backwards": {chart(game.Note{Kind: game.Held, StartBeat: 2, EndBeat: 1}), game.ErrNoteSpan},
		"zero bpm":  {&game.Chart{Tempo: []tempo.Point{{BPM: 0}}}, tempo.ErrBadBPM},
	}
	for name, tt := range tests {
		_, err := New(tt.chart, DefaultConfig())
		if errors.Cause(err) != tt.err {
			t.Errorf("%s: got %v, want %v", name, err, tt.err)
		}
	}
}

func TestAutoplay(t *testing.T) {
	c := chart(
		instant(2),
		game.Note{Kind: game.Held, StartBeat: 3, EndBeat: 5},
		game.Note{Kind: game.Flick, StartBeat: 6, EndBeat: 6},
		game.Note{Kind: game.Drag, StartBeat: 6.5, EndBeat: 6.5},
	)
	cfg := DefaultConfig()
	cfg.Autoplay = true
	e := engine(t, c, cfg)
	frames(e, 0, e.EndSec()+0.5)
	for i := 0; i < e.NoteCount(); i++ {
		if e.Outcome(i) != game.Perfect {
			t.Errorf("note %d: %v", i, e.Outcome(i))
		}
	}
	s := e.Snapshot()
	if s.Score != score.MaxScore || s.Grade != score.GradeAP || s.MaxCombo != 4 {
		t.Errorf("snapshot %+v", s)
	}
}

// tap is a scripted pointer-down at a time and position along the line.
type tap struct {
	t, x float64
}

// play steps frames [from, to], a 60th of a second each, pressing every tap
// that falls in the frame before updating.
func play(e *Engine, taps []tap, from, to int) {
	for k := from; k <= to; k++ {
		now := float64(k) / 60
		for i, tp := range taps {
			if tp.t > now-1.0/60 && tp.t <= now {
				e.PointerDown(i, tp.t, game.Point{X: tp.x})
				e.PointerUp(i)
			}
		}
		e.Update(now)
	}
}

func scrubChart() (*game.Chart, []tap) {
	var notes []game.Note
	var taps []tap
	offsets := []float64{0, 0.03, -0.1, 0, 0.17, 0.12, 0, 0, -0.05, 0.01, 0, 0.09}
	for i, off := range offsets {
		n := instant(float64(4 + i))
		n.PositionX = float64(i%3-1) * 200
		notes = append(notes, n)
		if i%5 == 4 {
			continue // left to miss
		}
		taps = append(taps, tap{t: float64(4+i)/2 + off, x: n.PositionX})
	}
	return chart(notes...), taps
}

func TestScrubbingIsDeterministic(t *testing.T) {
	c, taps := scrubChart()
	end := 11 * 60

	straight := engine(t, c, DefaultConfig())
	play(straight, taps, 0, end)
	want := straight.Snapshot()

	scrubbed := engine(t, c, DefaultConfig())
	play(scrubbed, taps, 0, 7*60)
	scrubbed.Seek(3.5)
	play(scrubbed, taps, 3.5*60+1, 9*60)
	scrubbed.Seek(5)
	play(scrubbed, taps, 5*60+1, end)

	if got := scrubbed.Snapshot(); got != want {
		t.Errorf("scrubbed %+v\nstraight %+v", got, want)
	}
	for i := range c.Notes {
		if straight.Outcome(i) != scrubbed.Outcome(i) {
			t.Errorf("note %d: %v vs %v", i, straight.Outcome(i), scrubbed.Outcome(i))
		}
	}
}

func TestAutoplayScrubbingIsDeterministic(t *testing.T) {
	c := chart(
		instant(2),
		game.Note{Kind: game.Held, StartBeat: 3, EndBeat: 7},
		game.Note{Kind: game.Flick, StartBeat: 4, EndBeat: 4},
		game.Note{Kind: game.Drag, StartBeat: 8, EndBeat: 8, IsFake: true},
		instant(9),
	)
	cfg := DefaultConfig()
	cfg.Autoplay = true

	straight := engine(t, c, cfg)
	frames(straight, 0, 6)
	scrubbed := engine(t, c, cfg)
	frames(scrubbed, 0, 4)
	scrubbed.Seek(2.5) // between the held head and its tail
	frames(scrubbed, 2.5, 6)

	if got, want := scrubbed.Snapshot(), straight.Snapshot(); got != want {
		t.Errorf("scrubbed %+v\nstraight %+v", got, want)
	}
}

func TestComboRestoredAfterSeek(t *testing.T) {
	c, taps := scrubChart()
	e := engine(t, c, DefaultConfig())

	seen := map[int]int{0: 0}
	times := map[int]float64{}
	for k := 0; k <= 11*60; k++ {
		play(e, taps, k, k)
		s := e.Snapshot()
		if _, ok := seen[s.JudgedCount]; !ok {
			seen[s.JudgedCount] = s.Combo
			times[s.JudgedCount] = float64(k) / 60
		}
	}
	if len(seen) != len(c.Notes)+1 {
		t.Fatalf("saw %d judged counts", len(seen))
	}
	for count := len(c.Notes); count > 0; count -= 3 {
		e.Seek(times[count])
		s := e.Snapshot()
		if s.JudgedCount != count || s.Combo != seen[count] {
			t.Errorf("seek to %v: count %d combo %d, want %d %d",
				times[count], s.JudgedCount, s.Combo, count, seen[count])
		}
	}
}

func TestAutoplayRecordsDeltas(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Autoplay = true
	e := engine(t, chart(instant(4), game.Note{Kind: game.Held, StartBeat: 6, EndBeat: 8}), cfg)
	e.Update(1)
	e.Update(2.01)
	e.Update(3.03)
	ds := e.agg.Deltas()
	if len(ds) != 2 || math.Abs(ds[0].Ms-10) > 1e-6 || math.Abs(ds[1].Ms-30) > 1e-6 {
		t.Fatalf("deltas %+v", ds)
	}
	if s := e.Snapshot(); math.Abs(s.StdDevMs-10) > 1e-6 {
		t.Errorf("stddev %v, want 10", s.StdDevMs)
	}
}

func TestFlippedChart(t *testing.T) {
	tests := map[game.Flip]float64{
		0:                       200,
		game.FlipX:              -200,
		game.FlipY:              200,
		game.FlipX | game.FlipY: -200,
	}
	n := instant(4)
	n.PositionX = 200
	for flip, x := range tests {
		cfg := DefaultConfig()
		cfg.Flip = flip
		e := engine(t, chart(n), cfg)
		e.PointerDown(1, 2.0, game.Point{X: -x})
		e.Update(2.0)
		if e.Outcome(0) != game.Unjudged {
			t.Errorf("flip %d: mirrored tap hit", flip)
		}
		e.PointerDown(2, 2.01, game.Point{X: x})
		e.Update(2.01)
		if e.Outcome(0) != game.Perfect {
			t.Errorf("flip %d: tap at %v gave %v", flip, x, e.Outcome(0))
		}
	}
}

func TestLineBPMFactor(t *testing.T) {
	c := chart(instant(8))
	c.Lines = []game.LineData{{BPMFactor: 2}}
	cfg := DefaultConfig()
	cfg.Autoplay = true
	e := engine(t, c, cfg)
	e.Update(1.9)
	if e.Outcome(0) != game.Unjudged {
		t.Fatalf("judged early: %v", e.Outcome(0))
	}
	e.Update(2.0)
	if e.Outcome(0) != game.Perfect || e.EndSec() != 2.0 {
		t.Fatalf("outcome %v end %v", e.Outcome(0), e.EndSec())
	}
	e.Seek(1.9)
	if e.Outcome(0) != game.Unjudged {
		t.Errorf("not retracted: %v", e.Outcome(0))
	}

	plain := engine(t, chart(instant(8)), cfg)
	plain.Update(2.0)
	if plain.Outcome(0) != game.Unjudged {
		t.Errorf("unscaled line judged at beat 4: %v", plain.Outcome(0))
	}
}

// action is a scripted pointer event: 'd'own, 'm'ove or 'u'p.
type action struct {
	t    float64
	id   int
	kind byte
	x    float64
	vx   float64
}

// replay steps frames [from, to] like play, delivering every action that
// falls in a frame before updating.
func replay(e *Engine, acts []action, from, to int) {
	for k := from; k <= to; k++ {
		now := float64(k) / 60
		for _, a := range acts {
			if a.t <= now-1.0/60 || a.t > now {
				continue
			}
			p := game.Point{X: a.x}
			switch a.kind {
			case 'd':
				e.PointerDown(a.id, a.t, p)
			case 'm':
				e.PointerMove(a.id, a.t, p, game.Point{X: a.vx})
			case 'u':
				e.PointerUp(a.id)
			}
		}
		e.Update(now)
	}
}

func TestHeldAndFlickScrubbingIsDeterministic(t *testing.T) {
	c := chart(
		game.Note{Kind: game.Held, StartBeat: 4, EndBeat: 8},
		game.Note{Kind: game.Flick, StartBeat: 10, EndBeat: 10, PositionX: 200},
		game.Note{Kind: game.Held, StartBeat: 12, EndBeat: 14, PositionX: -200},
		instant(16),
	)
	acts := []action{
		{t: 1.955, id: 1, kind: 'd'},
		{t: 4.105, id: 1, kind: 'u'},
		{t: 4.905, id: 2, kind: 'd', x: 200},
		{t: 4.935, id: 2, kind: 'm', x: 200, vx: 500},
		{t: 5.205, id: 2, kind: 'u'},
		{t: 6.055, id: 3, kind: 'd', x: -200},
		{t: 6.505, id: 3, kind: 'u'},
		{t: 8.025, id: 4, kind: 'd'},
		{t: 8.035, id: 4, kind: 'u'},
	}
	end := 510

	straight := engine(t, c, DefaultConfig())
	replay(straight, acts, 0, end)
	want := []game.Judgment{game.Perfect, game.Perfect, game.Miss, game.Perfect}
	for i, w := range want {
		if straight.Outcome(i) != w {
			t.Fatalf("straight note %d: %v, want %v", i, straight.Outcome(i), w)
		}
	}

	scrubbed := engine(t, c, DefaultConfig())
	replay(scrubbed, acts, 0, 180)
	scrubbed.Seek(150.0 / 60) // inside the first held body
	replay(scrubbed, acts, 151, 250)
	scrubbed.Seek(210.0 / 60) // before its tail, while still held
	if scrubbed.Outcome(0) != game.Unjudged || scrubbed.Provisional(0) != game.Perfect {
		t.Fatalf("tail not retracted: %v %v", scrubbed.Provisional(0), scrubbed.Outcome(0))
	}
	scrubbed.PointerDown(1, 210.0/60, origin)
	replay(scrubbed, acts, 211, 298)
	scrubbed.Seek(296.0 / 60) // after the flick's early swipe was held back
	replay(scrubbed, acts, 297, 400)
	scrubbed.Seek(330.0 / 60) // before the second held breaks
	if scrubbed.Outcome(2) != game.Unjudged || scrubbed.Provisional(2) != game.Unjudged {
		t.Fatalf("second held not retracted: %v %v", scrubbed.Provisional(2), scrubbed.Outcome(2))
	}
	replay(scrubbed, acts, 331, end)

	if got, want := scrubbed.Snapshot(), straight.Snapshot(); got != want {
		t.Errorf("scrubbed %+v\nstraight %+v", got, want)
	}
	for i := range c.Notes {
		if straight.Outcome(i) != scrubbed.Outcome(i) {
			t.Errorf("note %d: %v vs %v", i, straight.Outcome(i), scrubbed.Outcome(i))
		}
	}
}

func TestNoteFloor(t *testing.T) {
	c := chart(instant(4))
	c.Lines = []game.LineData{{Layers: []game.EventLayer{{
		Speed: []event.Event{{StartBeat: 0, EndBeat: 8, Start: event.Num(10), End: event.Num(10)}},
	}}}}
	e := engine(t, c, DefaultConfig())
	e.Update(1)
	if got := e.NoteFloor(0); math.Abs(got-10) > 1e-9 {
		t.Errorf("NoteFloor = %v, want 10", got)
	}
	e.Update(2)
	if got := e.NoteFloor(0); math.Abs(got) > 1e-9 {
		t.Errorf("NoteFloor at the hit = %v, want 0", got)
	}
}

func BenchmarkUpdate(b *testing.B) {
	var notes []game.Note
	for i := 0; i < 2000; i++ {
		notes = append(notes, instant(float64(i)/4))
	}
	cfg := DefaultConfig()
	cfg.Autoplay = true
	e, err := New(chart(notes...), cfg)
	if nil != err {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Update(float64(i%(250*60)) / 60)
	}
}
