package clock

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Clock is the song position measured in samples pulled through a streamer,
// the way an audio device would consume them. One Tick pulls one frame.
type Clock struct {
	rate beep.SampleRate
	src  beep.Streamer
	buf  [][2]float64
	pos  int
}

// New makes a clock ticking fps times per second of audio at rate. With a
// nil src it runs on silence forever.
func New(rate beep.SampleRate, fps float64, src beep.Streamer) *Clock {
	if fps <= 0 {
		fps = 60
	}
	if nil == src {
		src = beep.Silence(-1)
	}
	n := int(math.Round(float64(rate) / fps))
	if n < 1 {
		n = 1
	}
	return &Clock{rate: rate, src: src, buf: make([][2]float64, n)}
}

// Tick streams one frame and reports whether the source had anything left.
func (c *Clock) Tick() bool {
	n, ok := c.src.Stream(c.buf)
	c.pos += n
	return ok && n > 0
}

func (c *Clock) Now() float64 {
	return c.rate.D(c.pos).Seconds()
}

// Seek moves the position, and the source too if it can seek.
func (c *Clock) Seek(sec float64) error {
	pos := c.rate.N(time.Duration(sec * float64(time.Second)))
	if s, ok := c.src.(beep.StreamSeeker); ok {
		if err := s.Seek(pos); nil != err {
			return err
		}
	}
	c.pos = pos
	return nil
}

func (c *Clock) FrameSamples() int {
	return len(c.buf)
}

func (c *Clock) Rate() beep.SampleRate {
	return c.rate
}

// Err is the source's error, if streaming stopped because of one.
func (c *Clock) Err() error {
	return c.src.Err()
}
