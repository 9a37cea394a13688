package score

import (
	"git.lost.host/meutraa/beatjudge/internal/game"
)

// Delta is a recorded timing error and the beat it was judged at.
type Delta struct {
	Ms   float64
	Beat float64
}

// Counts are the tallies per outcome.
type Counts struct {
	Perfect   int `json:"perfect"`
	GoodEarly int `json:"goodEarly"`
	GoodLate  int `json:"goodLate"`
	Bad       int `json:"bad"`
	Miss      int `json:"miss"`
}

func (c Counts) Good() int {
	return c.GoodEarly + c.GoodLate
}

func (c Counts) Judged() int {
	return c.Perfect + c.GoodEarly + c.GoodLate + c.Bad + c.Miss
}

func (c *Counts) add(j game.Judgment, n int) {
	switch j {
	case game.Perfect:
		c.Perfect += n
	case game.GoodEarly:
		c.GoodEarly += n
	case game.GoodLate:
		c.GoodLate += n
	case game.Bad:
		c.Bad += n
	case game.Miss:
		c.Miss += n
	}
}

const unset = -1

// Aggregator tallies judgments and keeps enough history to rewind them.
// history[k] is the combo observed while k notes were judged; maxCombo[k] is
// the best combo reached by then. Both are sized once from the note count.
type Aggregator struct {
	total    int
	counts   Counts
	combo    int
	history  []int
	maxCombo []int
	deltas   []Delta
}

func NewAggregator(totalNotes int) *Aggregator {
	a := &Aggregator{
		total:    totalNotes,
		history:  make([]int, totalNotes+1),
		maxCombo: make([]int, totalNotes+1),
	}
	for i := range a.history {
		a.history[i] = unset
	}
	a.history[0] = 0
	return a
}

func (a *Aggregator) Total() int       { return a.total }
func (a *Aggregator) Counts() Counts   { return a.counts }
func (a *Aggregator) Combo() int       { return a.combo }
func (a *Aggregator) JudgedCount() int { return a.counts.Judged() }
func (a *Aggregator) Deltas() []Delta  { return a.deltas }

// MaxCombo is the best combo reached at the current judged count.
func (a *Aggregator) MaxCombo() int {
	k := a.JudgedCount()
	if k >= len(a.maxCombo) {
		return a.maxCombo[len(a.maxCombo)-1]
	}
	return a.maxCombo[k]
}

func (a *Aggregator) record() {
	k := a.JudgedCount()
	if k >= len(a.history) {
		return
	}
	a.history[k] = a.combo
	if k == 0 {
		a.maxCombo[0] = a.combo
		return
	}
	best := a.maxCombo[k-1]
	if a.combo > best {
		best = a.combo
	}
	a.maxCombo[k] = best
}

func (a *Aggregator) restore() {
	k := a.JudgedCount()
	if k < len(a.history) && a.history[k] != unset {
		a.combo = a.history[k]
		return
	}
	a.combo = 0
}

// Judge counts an outcome and moves the combo.
func (a *Aggregator) Judge(j game.Judgment) {
	if !j.Scored() {
		return
	}
	a.counts.add(j, 1)
	if j.Hit() {
		a.combo++
	} else {
		a.combo = 0
	}
	a.record()
}

// RecordDelta keeps a timing error for the deviation statistics.
func (a *Aggregator) RecordDelta(ms, beat float64) {
	a.deltas = append(a.deltas, Delta{Ms: ms, Beat: beat})
}

// Unjudge retracts an outcome counted earlier.
func (a *Aggregator) Unjudge(j game.Judgment) {
	if !j.Scored() {
		return
	}
	a.counts.add(j, -1)
	a.restore()
}

// Amendment remembers what Amend overwrote so Unamend can put it back.
type Amendment struct {
	From, To game.Judgment
	Slot     int
	Combo    int
}

// Amend turns an already counted outcome into another without changing the
// judged count, as when a held note breaks after its head was counted.
func (a *Aggregator) Amend(from, to game.Judgment) Amendment {
	am := Amendment{From: from, To: to, Slot: a.JudgedCount(), Combo: a.combo}
	a.counts.add(from, -1)
	a.counts.add(to, 1)
	if !to.Hit() {
		a.combo = 0
	}
	if am.Slot < len(a.history) {
		a.history[am.Slot] = a.combo
	}
	return am
}

func (a *Aggregator) Unamend(am Amendment) {
	a.counts.add(am.To, -1)
	a.counts.add(am.From, 1)
	if am.Slot < len(a.history) {
		a.history[am.Slot] = am.Combo
	}
	a.restore()
}

// Rewind settles the combo after retractions and forgets everything recorded
// past beat.
func (a *Aggregator) Rewind(beat float64) {
	a.restore()
	for i := a.JudgedCount() + 1; i < len(a.history); i++ {
		a.history[i] = unset
	}
	nd := a.deltas[:0]
	for _, d := range a.deltas {
		if d.Beat <= beat {
			nd = append(nd, d)
		}
	}
	a.deltas = nd
}
