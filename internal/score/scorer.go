package score

import "time"

// Store keeps finished results per chart. Inputs are not kept.
type Store interface {
	Init() error
	Deinit()

	// Save the outcome of this performance
	Save(sum string, difficulty string, snapshot Snapshot) error

	// Load previous results for the chart, newest first
	Load(sum string) ([]Result, error)
}

type Result struct {
	Sum        string
	Difficulty string
	PlayedAt   time.Time
	Snapshot   Snapshot
}
