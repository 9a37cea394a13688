package game

// Kind is the note type. The ordinal breaks ties when several notes could
// claim the same input.
type Kind uint8

const (
	Instant Kind = iota + 1
	Held
	Flick
	Drag
)

var kindNames = map[Kind]string{
	Instant: "instant",
	Held:    "held",
	Flick:   "flick",
	Drag:    "drag",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

type Note struct {
	Kind      Kind    `json:"type"`
	StartBeat float64 `json:"startBeat"`
	EndBeat   float64 `json:"endBeat"` // equal to StartBeat unless Held
	PositionX float64 `json:"positionX"`
	Speed     float64 `json:"speed"`
	Size      float64 `json:"size"`
	IsFake    bool    `json:"isFake"`
	Above     bool    `json:"above"`
	Line      int     `json:"line"` // index into Chart.Lines
}

// Span is how long the note lasts in beats.
func (n *Note) Span() float64 {
	return n.EndBeat - n.StartBeat
}
