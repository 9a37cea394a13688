package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/judge"
	"git.lost.host/meutraa/beatjudge/internal/theme"
	"golang.org/x/term"
)

const historyTime = "2006-01-02 15:04"

type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme

	buffer strings.Builder
}

// ColorEnabled is true when f is a terminal and colour was not turned off,
// either with the flag or the NO_COLOR convention.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (r *DefaultRenderer) RenderEvent(timeSec float64, ev judge.Event) error {
	r.Fill("%9.3fs  #%-4d %-7v %s", timeSec, ev.Note, ev.Kind, r.Theme.RenderJudgment(ev.Outcome, fmt.Sprintf("%-12s", ev.Outcome)))
	if ev.Timed {
		r.buffer.WriteString(fmt.Sprintf(" %+6.1fms", ev.DeltaMs))
	}
	if ev.Provisional {
		r.buffer.WriteString(" (head)")
	}
	r.buffer.WriteString("\n")
	return r.flush()
}

func (r *DefaultRenderer) RenderReport(rep Report) error {
	s := rep.Snapshot
	title := rep.Title
	if title == "" {
		title = "untitled"
	}
	r.Fill("%v  %v %v\n\n", title, rep.Difficulty.Name, rep.Difficulty.Level)
	r.Fill("      Score:  %7d\n", s.Score)
	r.Fill("   Accuracy:  %6.2f%%\n", s.Accuracy*100)
	r.Fill("  Max combo:  %7d / %d\n", s.MaxCombo, s.Total)
	r.Fill("      Stdev:  %6.2fms\n", s.StdDevMs)
	r.Fill("      Grade:  %v\n", r.Theme.RenderGrade(s.Grade))
	r.Fill("     Status:  %v\n\n", r.Theme.RenderStatus(s.Status))

	counts := []struct {
		j game.Judgment
		n int
	}{
		{game.Perfect, s.Perfect},
		{game.GoodEarly, s.GoodEarly},
		{game.GoodLate, s.GoodLate},
		{game.Bad, s.Bad},
		{game.Miss, s.Miss},
	}
	for _, c := range counts {
		r.Fill("%v  %6d\n", r.Theme.RenderJudgment(c.j, fmt.Sprintf("%12s:", c.j)), c.n)
	}

	if len(rep.History) > 0 {
		r.Fill("\nPrevious results\n")
		for _, h := range rep.History {
			r.Fill("  %v  %-10s %7d  %v\n",
				h.PlayedAt.Format(historyTime),
				h.Difficulty,
				h.Snapshot.Score,
				r.Theme.RenderGrade(h.Snapshot.Grade),
			)
		}
	}
	return r.flush()
}

func (r *DefaultRenderer) Fill(format string, args ...interface{}) {
	r.buffer.WriteString(fmt.Sprintf(format, args...))
}

func (r *DefaultRenderer) flush() error {
	out := r.Out
	if nil == out {
		out = os.Stdout
	}
	_, err := io.WriteString(out, r.buffer.String())
	r.buffer.Reset()
	return err
}
