package game

type Judgment uint8

const (
	Unjudged Judgment = iota
	Perfect
	GoodEarly
	GoodLate
	Bad
	Miss
	Passed // fake notes that went by
)

var judgmentNames = [...]string{
	Unjudged:  "Unjudged",
	Perfect:   "Perfect",
	GoodEarly: "Good (early)",
	GoodLate:  "Good (late)",
	Bad:       "Bad",
	Miss:      "Miss",
	Passed:    "Passed",
}

func (j Judgment) String() string {
	if int(j) < len(judgmentNames) {
		return judgmentNames[j]
	}
	return "Judgment(?)"
}

// Hit is true for outcomes that keep the combo going.
func (j Judgment) Hit() bool {
	return j == Perfect || j == GoodEarly || j == GoodLate
}

// Scored is true for outcomes counted by the aggregator.
func (j Judgment) Scored() bool {
	return j >= Perfect && j <= Miss
}
