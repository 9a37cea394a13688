package parser

import (
	"encoding/json"
	"os"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"github.com/pkg/errors"
)

// JSONParser reads the native chart format: one chart per file, beats for
// every time, event layers per line.
type JSONParser struct{}

func (p *JSONParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to read %s", file)
	}
	chart, err := p.Decode(data)
	if nil != err {
		return nil, errors.Wrap(err, file)
	}
	return []*game.Chart{chart}, nil
}

// Decode fills in end beats of single-beat notes and validates the chart.
func (p *JSONParser) Decode(data []byte) (*game.Chart, error) {
	var chart game.Chart
	if err := json.Unmarshal(data, &chart); nil != err {
		return nil, errors.Wrap(err, "unable to decode chart")
	}
	for i := range chart.Notes {
		n := &chart.Notes[i]
		if n.Kind != game.Held {
			n.EndBeat = n.StartBeat
		}
	}
	if err := chart.Validate(); nil != err {
		return nil, err
	}
	return &chart, nil
}
