package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"git.lost.host/meutraa/beatjudge/internal/clock"
	"git.lost.host/meutraa/beatjudge/internal/config"
	"git.lost.host/meutraa/beatjudge/internal/control"
	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/input"
	"git.lost.host/meutraa/beatjudge/internal/judge"
	"git.lost.host/meutraa/beatjudge/internal/parser"
	"git.lost.host/meutraa/beatjudge/internal/render"
	"git.lost.host/meutraa/beatjudge/internal/score"
	"git.lost.host/meutraa/beatjudge/internal/theme"
	"github.com/faiface/beep"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Controls are the player's commands while the song runs.
type Controls interface {
	Poll() []control.Command
	Close() error
}

// Program plays one chart against a pointer script and reports the result.
type Program struct {
	Parser   parser.Parser
	Store    score.Store
	Theme    theme.Theme
	Renderer render.Renderer
	Controls Controls
	Log      *zap.Logger

	cfg   *config.Config
	prefs config.Preferences

	chart  *game.Chart
	sum    string
	engine *judge.Engine
	clock  *clock.Clock
	end    float64 // song time the run stops at

	paused   bool
	realtime bool // pace frames to the wall clock

	actions []input.Action
	next    int // first action not yet delivered

	frameCounter uint64
}

func NewProgram(cfg *config.Config, log *zap.Logger) *Program {
	if nil == log {
		log = zap.NewNop()
	}
	return &Program{cfg: cfg, Log: log}
}

func (p *Program) Init() error {
	var err error
	p.prefs, err = config.LoadPreferences(p.cfg.Prefs)
	if nil != err {
		return err
	}
	if p.cfg.SavePrefs {
		if err := p.prefs.Save(p.cfg.Prefs); nil != err {
			return err
		}
	}

	// Ensure our Default implementations are used as interfaces
	if nil == p.Parser {
		if p.Parser, err = parser.ForFile(p.cfg.Chart); nil != err {
			return err
		}
	}
	if nil == p.Theme {
		p.Theme = &theme.DefaultTheme{Plain: !render.ColorEnabled(os.Stdout, p.cfg.NoColor)}
	}
	if nil == p.Renderer {
		p.Renderer = &render.DefaultRenderer{Out: os.Stdout, Theme: p.Theme}
	}
	if nil == p.Store {
		p.Store = &score.DefaultStore{Path: p.cfg.Database, Log: p.Log.Named("store")}
	}

	data, err := os.ReadFile(p.cfg.Chart)
	if nil != err {
		return errors.Wrapf(err, "unable to read %s", p.cfg.Chart)
	}
	charts, err := p.Parser.Parse(p.cfg.Chart)
	if nil != err {
		return err
	}
	if p.cfg.Difficulty >= len(charts) {
		return errors.Errorf("%s has %d charts, there is no difficulty %d", p.cfg.Chart, len(charts), p.cfg.Difficulty)
	}
	p.chart = charts[p.cfg.Difficulty]
	p.sum = score.Sum(data)
	p.chart.OffsetSec += p.prefs.ChartOffsetMs/1000 + p.cfg.Offset.Seconds()

	if p.cfg.Inputs != "" {
		if err := p.loadInputs(p.cfg.Inputs); nil != err {
			return err
		}
	}
	if p.cfg.Interactive {
		for _, a := range p.actions {
			if a.Kind == input.ActionSeek {
				return errors.Errorf("%s seeks, which the keyboard cannot share", p.cfg.Inputs)
			}
		}
	}

	jc := p.prefs.Judge
	jc.Autoplay = jc.Autoplay || p.cfg.Autoplay
	p.engine, err = judge.New(p.chart, jc, judge.WithLogger(p.Log))
	if nil != err {
		return err
	}
	p.engine.OnJudgment(p.onJudgment)

	if err := p.Store.Init(); nil != err {
		return err
	}

	// one second after the last note
	p.end = p.engine.EndSec() + 1
	p.clock = clock.New(beep.SampleRate(p.cfg.SampleRate), p.cfg.FPS, nil)
	if err := p.clock.Seek(p.cfg.Start.Seconds()); nil != err {
		return errors.Wrap(err, "unable to seek")
	}

	if p.cfg.Interactive && nil == p.Controls {
		kb, err := control.Open(p.Log.Named("control"))
		if nil != err {
			return err
		}
		p.Controls = kb
		p.realtime = true
	}

	p.Log.Info("playing",
		zap.String("chart", p.cfg.Chart),
		zap.String("difficulty", p.difficulty()),
		zap.Int("notes", p.chart.NoteCount()),
		zap.Int("actions", len(p.actions)),
		zap.Int("sampleRate", int(p.clock.Rate())),
		zap.Int("frameSamples", p.clock.FrameSamples()),
		zap.Bool("interactive", nil != p.Controls),
	)
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Controls {
		if err := p.Controls.Close(); nil != err {
			p.Log.Warn("unable to close controls", zap.Error(err))
		}
	}
	if nil != p.Store {
		p.Store.Deinit()
	}
}

// loadInputs reads the pointer script and maps it from screen pixels into
// chart space.
func (p *Program) loadInputs(path string) error {
	f, err := os.Open(path)
	if nil != err {
		return errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()
	actions, err := input.ReadScript(f)
	if nil != err {
		return errors.Wrap(err, path)
	}
	vp := p.prefs.Viewport
	for i := range actions {
		a := &actions[i]
		a.Position = vp.Position(a.Position.X, a.Position.Y)
		a.Velocity = vp.Velocity(a.Velocity.X, a.Velocity.Y)
	}
	p.actions = actions
	return nil
}

func (p *Program) difficulty() string {
	return fmt.Sprintf("%v %v", p.chart.Difficulty.Name, p.chart.Difficulty.Level)
}

func (p *Program) onJudgment(ev judge.Event) {
	p.Log.Debug("judged",
		zap.Int("note", ev.Note),
		zap.Stringer("kind", ev.Kind),
		zap.Stringer("outcome", ev.Outcome),
		zap.Bool("provisional", ev.Provisional),
		zap.Float64("deltaMs", ev.DeltaMs),
	)
	if !p.cfg.Verbose {
		return
	}
	if err := p.Renderer.RenderEvent(p.engine.TimeSec(), ev); nil != err {
		p.Log.Warn("unable to render judgment", zap.Error(err))
	}
}

// Update delivers the pointer actions up to now, then judges the frame. A
// scripted seek ends the frame at its target.
func (p *Program) Update(now float64) {
	p.frameCounter++
	for ; p.next < len(p.actions) && p.actions[p.next].TimeSec <= now; p.next++ {
		a := &p.actions[p.next]
		switch a.Kind {
		case input.ActionDown:
			p.engine.PointerDown(a.ID, a.TimeSec, a.Position)
		case input.ActionMove:
			p.engine.PointerMove(a.ID, a.TimeSec, a.Position, a.Velocity)
		case input.ActionUp:
			p.engine.PointerUp(a.ID)
		case input.ActionSeek:
			p.next++
			p.seek(a.Target)
			return
		}
	}
	p.engine.Update(now)
}

// seek moves the clock and the judge to sec, clamped to the song.
func (p *Program) seek(sec float64) {
	sec = math.Max(0, math.Min(sec, p.end))
	p.Log.Info("seek", zap.Float64("from", p.clock.Now()), zap.Float64("to", sec))
	if err := p.clock.Seek(sec); nil != err {
		p.Log.Warn("unable to seek", zap.Error(err))
		return
	}
	p.engine.Seek(sec)
}

// held is which pointers are down, and where, after the first n actions.
func (p *Program) held(n int) map[int]game.Point {
	down := map[int]game.Point{}
	for _, a := range p.actions[:n] {
		_, ok := down[a.ID]
		switch {
		case a.Kind == input.ActionDown, a.Kind == input.ActionMove && ok:
			down[a.ID] = a.Position
		case a.Kind == input.ActionUp:
			delete(down, a.ID)
		}
	}
	return down
}

// seekBy moves the song by step seconds and puts the scripted pointers where
// they were at the new position.
func (p *Program) seekBy(step float64) {
	to := math.Max(0, math.Min(p.clock.Now()+step, p.end))
	next := sort.Search(len(p.actions), func(i int) bool { return p.actions[i].TimeSec > to })
	was, now := p.held(p.next), p.held(next)

	for id := range was {
		if _, ok := now[id]; !ok {
			p.engine.PointerUp(id)
		}
	}
	ids := make([]int, 0, len(now))
	for id := range now {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		// the tap this leaves is dropped by the seek
		p.engine.PointerDown(id, to, now[id])
	}
	p.next = next
	p.seek(to)
}

// command applies the commands and reports whether to stop.
func (p *Program) command(cmds []control.Command) bool {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case control.Quit:
			p.Log.Info("quit", zap.Float64("timeSec", p.clock.Now()))
			return true
		case control.TogglePause:
			p.paused = !p.paused
			p.Log.Info("pause", zap.Bool("paused", p.paused), zap.Float64("timeSec", p.clock.Now()))
		case control.Seek:
			p.seekBy(cmd.StepSec)
		}
	}
	return false
}

// Run steps the clock until the song is over, every note is judged, or the
// player quits.
func (p *Program) Run() error {
	start := p.clock.Now()
	// actions before the start position are never played
	for p.next < len(p.actions) && p.actions[p.next].TimeSec < start {
		p.next++
	}
	p.engine.Seek(start)

	frame := p.clock.Rate().D(p.clock.FrameSamples())
	deadline := time.Now()
	for !p.engine.Finished() && p.clock.Now() < p.end {
		if nil != p.Controls && p.command(p.Controls.Poll()) {
			break
		}
		if p.realtime {
			deadline = deadline.Add(frame)
			time.Sleep(time.Until(deadline))
		}
		if p.paused {
			continue
		}
		if !p.clock.Tick() {
			break
		}
		p.Update(p.clock.Now())
	}
	if err := p.clock.Err(); nil != err {
		return errors.Wrap(err, "clock stopped")
	}
	p.Log.Debug("finished",
		zap.Uint64("frames", p.frameCounter),
		zap.Float64("timeSec", p.engine.TimeSec()),
		zap.Bool("allJudged", p.engine.Finished()),
	)
	return nil
}

// Finish saves the result and prints the report with earlier results.
func (p *Program) Finish() (score.Snapshot, error) {
	snapshot := p.engine.Snapshot()
	history, err := p.Store.Load(p.sum)
	if nil != err {
		return snapshot, err
	}
	if len(history) > p.cfg.History {
		history = history[:p.cfg.History]
	}
	if err := p.Store.Save(p.sum, p.difficulty(), snapshot); nil != err {
		return snapshot, err
	}
	return snapshot, p.Renderer.RenderReport(render.Report{
		Title:      p.chart.Title,
		Difficulty: p.chart.Difficulty,
		Snapshot:   snapshot,
		History:    history,
	})
}
