package render

import (
	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/judge"
	"git.lost.host/meutraa/beatjudge/internal/score"
)

// Report is everything printed once a play finishes.
type Report struct {
	Title      string
	Difficulty game.Difficulty
	Snapshot   score.Snapshot
	History    []score.Result
}

type Renderer interface {
	// RenderEvent prints one judgment as it happens
	RenderEvent(timeSec float64, ev judge.Event) error
	RenderReport(r Report) error
}
