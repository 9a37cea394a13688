package game

// Difficulty is chart metadata carried through to the report and the result
// store.
type Difficulty struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Columns uint8  `json:"columns,omitempty"`
}

// NKeyMap maps StepMania chart types onto column counts.
var NKeyMap = map[string]uint8{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}
