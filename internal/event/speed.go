package event

// Timeline converts beats to song seconds; *tempo.Mapper satisfies it.
type Timeline interface {
	TimeSec(beat float64) float64
}

// SpeedTrack integrates a speed curve over real time into a travelled
// distance. Completed segments are folded into a running total as the
// cursor moves past them; the total is dropped whenever the cursor resets.
type SpeedTrack struct {
	events []Event
	cursor int
	total  float64
}

func NewSpeedTrack(events []Event) *SpeedTrack {
	return &SpeedTrack{events: sortEvents(events)}
}

func (s *SpeedTrack) Len() int {
	return len(s.events)
}

// integral is the area under e from its start up to beat, using the
// trapezoid between the start speed and the eased speed at beat.
func integral(e *Event, tl Timeline, beat float64) float64 {
	if beat >= e.EndBeat {
		return (e.Start.Num + e.End.Num) * (tl.TimeSec(e.EndBeat) - tl.TimeSec(e.StartBeat)) / 2
	}
	v, _ := e.ValueAt(beat)
	return (e.Start.Num + v.Num) * (tl.TimeSec(beat) - tl.TimeSec(e.StartBeat)) / 2
}

// DistanceAt is the distance travelled from the first event's start to beat.
func (s *SpeedTrack) DistanceAt(beat float64, tl Timeline) float64 {
	if len(s.events) == 0 {
		return 0
	}
	if s.cursor > 0 && beat <= s.events[s.cursor].StartBeat {
		s.cursor = 0
		s.total = 0
	}
	for s.cursor < len(s.events)-1 && beat > s.events[s.cursor+1].StartBeat {
		cur, next := &s.events[s.cursor], &s.events[s.cursor+1]
		// the end speed holds across any gap before the next event
		s.total += integral(cur, tl, cur.EndBeat) +
			cur.End.Num*(tl.TimeSec(next.StartBeat)-tl.TimeSec(cur.EndBeat))
		s.cursor++
	}
	cur := &s.events[s.cursor]
	if beat <= cur.EndBeat {
		return s.total + integral(cur, tl, beat)
	}
	return s.total + integral(cur, tl, cur.EndBeat) +
		cur.End.Num*(tl.TimeSec(beat)-tl.TimeSec(cur.EndBeat))
}
