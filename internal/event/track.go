package event

import "sort"

// Event interpolates Start to End between StartBeat and EndBeat.
type Event struct {
	StartBeat   float64 `json:"startBeat"`
	EndBeat     float64 `json:"endBeat"`
	Start       Value   `json:"start"`
	End         Value   `json:"end"`
	Easing      Easing  `json:"easing"`
	EasingLeft  float64 `json:"easingLeft"`
	EasingRight float64 `json:"easingRight"`
}

// Progress is the eased fraction of the event at beat.
func (e *Event) Progress(beat float64) float64 {
	var x float64
	switch span := e.EndBeat - e.StartBeat; {
	case span > 0:
		x = (beat - e.StartBeat) / span
	case beat >= e.EndBeat:
		x = 1
	}
	right := e.EasingRight
	if e.EasingLeft == 0 && right == 0 {
		right = 1
	}
	return Ease(e.Easing, x, e.EasingLeft, right)
}

// ValueAt evaluates the event at beat, clamping outside its range.
func (e *Event) ValueAt(beat float64) (Value, bool) {
	return Interpolate(e.Start, e.End, e.Progress(beat))
}

func sortEvents(events []Event) []Event {
	es := make([]Event, len(events))
	copy(es, events)
	sort.SliceStable(es, func(i, j int) bool { return es[i].StartBeat < es[j].StartBeat })
	return es
}

// Track evaluates one attribute over a sorted, non-overlapping event list.
// The cursor only moves forward until a query lands at or before the start
// of the current event, which sends it back to the first one.
type Track struct {
	events []Event
	cursor int
	noFill bool
}

func NewTrack(events []Event) *Track {
	return &Track{events: sortEvents(events)}
}

// NewDiscreteTrack builds a track that yields nothing outside the active
// event's own range, for trigger style attributes such as frame selection.
// The range excludes its start beat and includes its end.
func NewDiscreteTrack(events []Event) *Track {
	return &Track{events: sortEvents(events), noFill: true}
}

func (t *Track) Len() int {
	return len(t.events)
}

func (t *Track) seek(beat float64) *Event {
	if t.cursor > 0 && beat <= t.events[t.cursor].StartBeat {
		t.cursor = 0
	}
	for t.cursor < len(t.events)-1 && beat > t.events[t.cursor+1].StartBeat {
		t.cursor++
	}
	return &t.events[t.cursor]
}

func (t *Track) ValueAt(beat float64) (Value, bool) {
	if len(t.events) == 0 {
		return Value{}, false
	}
	e := t.seek(beat)
	if t.noFill && (beat <= e.StartBeat || beat > e.EndBeat) {
		return Value{}, false
	}
	return e.ValueAt(beat)
}

// Float is ValueAt for numeric tracks; missing or non-numeric values are 0.
func (t *Track) Float(beat float64) (float64, bool) {
	v, ok := t.ValueAt(beat)
	if !ok || v.Kind != Number {
		return 0, false
	}
	return v.Num, true
}
