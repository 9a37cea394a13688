package input

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"github.com/pkg/errors"
)

type ActionKind uint8

const (
	ActionDown ActionKind = iota
	ActionMove
	ActionUp
	ActionSeek
)

var actionNames = map[string]ActionKind{
	"down": ActionDown,
	"move": ActionMove,
	"up":   ActionUp,
	"seek": ActionSeek,
}

// fields per line for each kind
var actionFields = map[ActionKind]int{ActionDown: 5, ActionMove: 7, ActionUp: 3, ActionSeek: 4}

// Action is one recorded pointer event in screen pixels, or a jump of the
// song position to Target.
type Action struct {
	TimeSec  float64
	ID       int
	Kind     ActionKind
	Position game.Point
	Velocity game.Point
	Target   float64
}

// ReadScript parses pointer events, one per line:
//
//	seconds id down|move|up [x y [vx vy]]
//	seconds id seek target
//
// Blank lines and lines starting with # are skipped. Actions must be in
// time order, and the time after a seek starts again from its target.
func ReadScript(r io.Reader) ([]Action, error) {
	actions := []Action{}
	last := math.Inf(-1)
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		a, err := parseAction(strings.Fields(line))
		if nil != err {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		if a.TimeSec < last {
			return nil, errors.Errorf("line %d: %v is before the previous event", n, a.TimeSec)
		}
		last = a.TimeSec
		if a.Kind == ActionSeek {
			last = a.Target
		}
		actions = append(actions, a)
	}
	return actions, errors.Wrap(scanner.Err(), "unable to read script")
}

func parseAction(fields []string) (Action, error) {
	var a Action
	if len(fields) < 3 {
		return a, errors.Errorf("want at least 3 fields, got %d", len(fields))
	}
	kind, ok := actionNames[fields[2]]
	if !ok {
		return a, errors.Errorf("unknown event %q", fields[2])
	}
	a.Kind = kind

	if want := actionFields[kind]; len(fields) != want {
		return a, errors.Errorf("%s takes %d fields, got %d", fields[2], actionFields[kind], len(fields))
	}
	var err error
	if a.TimeSec, err = strconv.ParseFloat(fields[0], 64); nil != err {
		return a, errors.Wrap(err, "bad time")
	}
	if a.ID, err = strconv.Atoi(fields[1]); nil != err {
		return a, errors.Wrap(err, "bad pointer id")
	}
	nums := make([]float64, len(fields)-3)
	for i, f := range fields[3:] {
		if nums[i], err = strconv.ParseFloat(f, 64); nil != err {
			return a, errors.Wrapf(err, "bad number %q", f)
		}
	}
	if kind == ActionSeek {
		if nums[0] < 0 {
			return a, errors.Errorf("seek to %v", nums[0])
		}
		a.Target = nums[0]
		return a, nil
	}
	if len(nums) >= 2 {
		a.Position = game.Point{X: nums[0], Y: nums[1]}
	}
	if len(nums) == 4 {
		a.Velocity = game.Point{X: nums[2], Y: nums[3]}
	}
	return a, nil
}
