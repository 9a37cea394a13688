package theme

import (
	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/score"
)

type Theme interface {
	RenderJudgment(j game.Judgment, text string) string
	RenderGrade(g score.Grade) string
	RenderStatus(s score.FcApStatus) string
}
