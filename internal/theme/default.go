package theme

import (
	"fmt"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/score"
)

type Color struct {
	R, G, B uint8
}

// DefaultTheme colours with 24 bit escapes. Plain turns them off.
type DefaultTheme struct {
	Plain bool
}

func (t *DefaultTheme) paint(c Color, text string) string {
	if t.Plain {
		return text
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, text)
}

func (t *DefaultTheme) RenderJudgment(j game.Judgment, text string) string {
	return t.paint(getJudgmentColor(j), text)
}

func (t *DefaultTheme) RenderGrade(g score.Grade) string {
	c, ok := gradeColors[g]
	if !ok {
		c = white
	}
	return t.paint(c, g.String())
}

func (t *DefaultTheme) RenderStatus(s score.FcApStatus) string {
	switch s {
	case score.StatusAP:
		return t.paint(gradeColors[score.GradeAP], s.String())
	case score.StatusFC:
		return t.paint(gradeColors[score.GradeFC], s.String())
	}
	return s.String()
}

var white = Color{255, 255, 255}

var (
	judgmentColors = map[game.Judgment]Color{
		game.Perfect:   {236, 195, 0},   // gold
		game.GoodEarly: {0, 118, 236},   // blue
		game.GoodLate:  {106, 0, 236},   // purple
		game.Bad:       {236, 128, 0},   // orange
		game.Miss:      {236, 30, 0},    // red
		game.Passed:    {106, 106, 106}, // grey
	}
	gradeColors = map[score.Grade]Color{
		score.GradeAP: {236, 195, 0},
		score.GradeFC: {173, 236, 236},
		score.GradeV:  {236, 0, 106},
		score.GradeS:  {0, 236, 128},
		score.GradeA:  {0, 118, 236},
		score.GradeB:  {110, 147, 89},
		score.GradeC:  {106, 106, 106},
		score.GradeF:  {236, 30, 0},
	}
)

func getJudgmentColor(j game.Judgment) Color {
	col, ok := judgmentColors[j]
	if !ok {
		return white
	}
	return col
}
