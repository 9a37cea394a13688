package testdata

import (
	_ "embed"
	"encoding/json"

	"git.lost.host/meutraa/beatjudge/internal/game"
)

//go:embed chart.json
var ChartJSON []byte

//go:embed chart.sm
var ChartSM []byte

//go:embed inputs.txt
var Inputs []byte

func GetChart() (*game.Chart, error) {
	var chart game.Chart
	if err := json.Unmarshal(ChartJSON, &chart); nil != err {
		return nil, err
	}
	return &chart, nil
}
