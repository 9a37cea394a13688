package config

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

// Config is what the command line asks for.
type Config struct {
	Chart       string
	Difficulty  int
	Inputs      string
	Prefs       string
	Database    string
	Autoplay    bool
	Interactive bool
	SavePrefs   bool
	FPS         float64
	SampleRate  int
	Offset      time.Duration
	Start       time.Duration
	History     int
	Verbose     bool
	NoColor     bool
}

// Parse reads the command line, without the program name.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	app := kingpin.New("beatjudge", "Judge a chart against scripted pointer input and report the score.")
	app.Version(Version)
	app.Arg("chart", "Chart file, .json or .sm").Required().ExistingFileVar(&c.Chart)
	app.Flag("difficulty", "Chart to play when the file holds several").Default("0").Short('D').IntVar(&c.Difficulty)
	app.Flag("inputs", "Pointer events to replay, one per line").Short('i').ExistingFileVar(&c.Inputs)
	app.Flag("prefs", "Player preferences").Default("prefs.yaml").Short('p').StringVar(&c.Prefs)
	app.Flag("db", "Result database").Default("./scores.db").StringVar(&c.Database)
	app.Flag("autoplay", "Hit every note perfectly").Short('a').BoolVar(&c.Autoplay)
	app.Flag("interactive", "Play in real time; space pauses, arrows seek").Short('I').BoolVar(&c.Interactive)
	app.Flag("save-prefs", "Write the preferences in use back to the prefs file").BoolVar(&c.SavePrefs)
	app.Flag("fps", "Frames judged per second").Default("240").Short('R').Float64Var(&c.FPS)
	app.Flag("sample-rate", "Clock sample rate").Default("44100").IntVar(&c.SampleRate)
	app.Flag("offset", "Shift every note later by this much").Default("0ms").Short('o').DurationVar(&c.Offset)
	app.Flag("start", "Song time to start from").Default("0s").Short('s').DurationVar(&c.Start)
	app.Flag("history", "Previous results to list").Default("5").IntVar(&c.History)
	app.Flag("verbose", "Log every judgment").Short('v').BoolVar(&c.Verbose)
	app.Flag("no-color", "Plain report").BoolVar(&c.NoColor)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if c.FPS <= 0 {
		return nil, errors.Errorf("fps must be positive, got %v", c.FPS)
	}
	if c.SampleRate <= 0 {
		return nil, errors.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.Difficulty < 0 {
		return nil, errors.Errorf("no difficulty %d", c.Difficulty)
	}
	return c, nil
}
