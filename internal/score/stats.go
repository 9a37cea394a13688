package score

import (
	"math"

	"github.com/pkg/errors"
)

const MaxScore = 1000000

type Grade uint8

const (
	GradeF Grade = iota
	GradeC
	GradeB
	GradeA
	GradeS
	GradeV
	GradeFC
	GradeAP
)

var gradeNames = [...]string{"F", "C", "B", "A", "S", "V", "FC", "AP"}

func (g Grade) String() string {
	if int(g) < len(gradeNames) {
		return gradeNames[g]
	}
	return "?"
}

func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	for i, name := range gradeNames {
		if name == string(text) {
			*g = Grade(i)
			return nil
		}
	}
	return errors.Errorf("unknown grade %q", text)
}

type FcApStatus uint8

const (
	StatusNone FcApStatus = iota
	StatusFC
	StatusAP
)

func (s FcApStatus) String() string {
	switch s {
	case StatusAP:
		return "AP"
	case StatusFC:
		return "FC"
	}
	return "NONE"
}

func (s FcApStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *FcApStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "AP":
		*s = StatusAP
	case "FC":
		*s = StatusFC
	case "NONE":
		*s = StatusNone
	default:
		return errors.Errorf("unknown status %q", text)
	}
	return nil
}

// Snapshot is the instantaneous statistics of a play.
type Snapshot struct {
	Counts
	Score       int        `json:"score"`
	Accuracy    float64    `json:"accuracy"`
	StdDevMs    float64    `json:"stdDev"`
	Combo       int        `json:"combo"`
	MaxCombo    int        `json:"maxCombo"`
	JudgedCount int        `json:"judgedCount"`
	Total       int        `json:"total"`
	Grade       Grade      `json:"grade"`
	Status      FcApStatus `json:"fcApStatus"`
}

// Calculate derives the statistics from the aggregator's current state.
func Calculate(a *Aggregator) Snapshot {
	c := a.Counts()
	s := Snapshot{
		Counts:      c,
		Combo:       a.Combo(),
		MaxCombo:    a.MaxCombo(),
		JudgedCount: c.Judged(),
		Total:       a.Total(),
	}
	good := c.Good()

	if s.Total == 0 {
		s.Score = MaxScore
	} else {
		s.Score = int(math.Round((9e5*float64(c.Perfect) + 585e3*float64(good) + 1e5*float64(s.MaxCombo)) / float64(s.Total)))
	}

	s.Accuracy = 1
	if s.JudgedCount > 0 {
		s.Accuracy = (float64(c.Perfect) + 0.65*float64(good)) / float64(s.JudgedCount)
	}

	s.StdDevMs = stdDev(a.Deltas())

	switch {
	case c.Bad+c.Miss > 0:
		s.Status = StatusNone
	case good > 0:
		s.Status = StatusFC
	default:
		s.Status = StatusAP
	}
	s.Grade = grade(s.Score, s.Status)
	return s
}

// stdDev is the uncorrected standard deviation of the deltas.
func stdDev(ds []Delta) float64 {
	if len(ds) < 2 {
		return 0
	}
	mean := 0.0
	for _, d := range ds {
		mean += d.Ms
	}
	mean /= float64(len(ds))
	sum := 0.0
	for _, d := range ds {
		xi := d.Ms - mean
		sum += xi * xi
	}
	return math.Sqrt(sum / float64(len(ds)))
}

func grade(score int, status FcApStatus) Grade {
	switch {
	case score == MaxScore:
		return GradeAP
	case status == StatusFC:
		return GradeFC
	case score >= 960000:
		return GradeV
	case score >= 920000:
		return GradeS
	case score >= 880000:
		return GradeA
	case score >= 820000:
		return GradeB
	case score >= 700000:
		return GradeC
	}
	return GradeF
}
