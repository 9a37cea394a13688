package config

import (
	"os"

	"git.lost.host/meutraa/beatjudge/internal/input"
	"git.lost.host/meutraa/beatjudge/internal/judge"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Preferences are the player's settings, kept between runs.
type Preferences struct {
	ChartOffsetMs float64        `yaml:"chart_offset_ms"`
	Judge         judge.Config   `yaml:"judge"`
	Viewport      input.Viewport `yaml:"viewport"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Judge:    judge.DefaultConfig(),
		Viewport: input.Viewport{Width: input.VirtualWidth, Height: input.VirtualHeight},
	}
}

// LoadPreferences reads path over the defaults. A missing file is not an
// error.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return prefs, nil
	}
	if nil != err {
		return prefs, errors.Wrapf(err, "unable to read %s", path)
	}
	if err := yaml.Unmarshal(data, &prefs); nil != err {
		return prefs, errors.Wrapf(err, "unable to parse %s", path)
	}
	if prefs.Judge.PerfectMs <= 0 || prefs.Judge.GoodMs < prefs.Judge.PerfectMs {
		return prefs, errors.Errorf("%s: perfect window %vms must be positive and inside the good window %vms",
			path, prefs.Judge.PerfectMs, prefs.Judge.GoodMs)
	}
	if !prefs.Judge.Flip.Valid() {
		return prefs, errors.Errorf("%s: chart_flipping %d is not 0 to 3", path, prefs.Judge.Flip)
	}
	if prefs.Viewport.Width <= 0 || prefs.Viewport.Height <= 0 {
		return prefs, errors.Errorf("%s: viewport %vx%v is empty", path, prefs.Viewport.Width, prefs.Viewport.Height)
	}
	return prefs, nil
}

// Save writes the preferences so they can be edited.
func (p Preferences) Save(path string) error {
	data, err := yaml.Marshal(p)
	if nil != err {
		return errors.Wrap(err, "unable to marshal preferences")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "unable to write %s", path)
}
