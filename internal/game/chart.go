package game

import (
	"git.lost.host/meutraa/beatjudge/internal/tempo"
	"github.com/pkg/errors"
)

var (
	ErrNoteSpan = errors.New("note ends before it starts")
	ErrNoteKind = errors.New("note has an unknown type")
	ErrNoteLine = errors.New("note refers to a missing line")
	ErrFactor   = errors.New("line has a negative bpm factor")
)

// Chart is a parsed, in-memory chart. Notes and events are in beats.
type Chart struct {
	Title      string        `json:"title"`
	Difficulty Difficulty    `json:"difficulty"`
	OffsetSec  float64       `json:"offset"`
	Tempo      []tempo.Point `json:"bpm"`
	Lines      []LineData    `json:"lines"`
	Notes      []Note        `json:"notes"`
}

// LineCount is the number of judgment lines, at least one.
func (c *Chart) LineCount() int {
	if len(c.Lines) == 0 {
		return 1
	}
	return len(c.Lines)
}

// NoteCount is the number of notes that count towards the score.
func (c *Chart) NoteCount() int {
	n := 0
	for i := range c.Notes {
		if !c.Notes[i].IsFake {
			n++
		}
	}
	return n
}

// Validate rejects charts that cannot be played.
func (c *Chart) Validate() error {
	if len(c.Tempo) == 0 {
		return tempo.ErrNoTempo
	}
	lines := c.LineCount()
	for i := range c.Lines {
		if c.Lines[i].BPMFactor < 0 {
			return errors.Wrapf(ErrFactor, "line %d has factor %v", i, c.Lines[i].BPMFactor)
		}
	}
	for i := range c.Notes {
		n := &c.Notes[i]
		if !n.Kind.Valid() {
			return errors.Wrapf(ErrNoteKind, "note %d has type %d", i, n.Kind)
		}
		if n.Span() < 0 {
			return errors.Wrapf(ErrNoteSpan, "note %d spans %v to %v", i, n.StartBeat, n.EndBeat)
		}
		if n.Line < 0 || n.Line >= lines {
			return errors.Wrapf(ErrNoteLine, "note %d is on line %d of %d", i, n.Line, lines)
		}
	}
	return nil
}
