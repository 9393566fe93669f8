// Package audio renders Loftwahnoid's sound cues and owns the speaker output
// shared with the music player. Every failure degrades to silence.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// SampleRate is the output rate used for the speaker.
const SampleRate = beep.SampleRate(44100)

// Sink accepts streamers for mixing. Lock and Unlock guard changes to
// streamers that are already playing.
type Sink interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Speaker is a Sink backed by the system audio device.
type Speaker struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	closed bool
}

// OpenSpeaker initialises the audio device. It fails when no device is available.
func OpenSpeaker(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	s := &Speaker{rate: rate, mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// SampleRate returns the rate the device was opened with.
func (s *Speaker) SampleRate() beep.SampleRate { return s.rate }

// Play adds a streamer to the mix.
func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Lock pauses the mixer so playing streamers can be changed.
func (s *Speaker) Lock() { speaker.Lock() }

// Unlock resumes the mixer.
func (s *Speaker) Unlock() { speaker.Unlock() }

// Close stops everything and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Cues plays pre-rendered sound cues into a Sink. A nil sink is silent.
type Cues struct {
	sink    Sink
	volume  float64
	buffers map[core.Cue]*beep.Buffer
	logger  *log.Logger
	unknown map[core.Cue]bool
	mu      sync.Mutex
}

// NewCues renders all cues for sink. volume is a linear gain in [0, 1].
func NewCues(sink Sink, volume float64, logger *log.Logger) *Cues {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Cues{
		sink:    sink,
		volume:  volume,
		logger:  logger.WithPrefix("audio"),
		unknown: make(map[core.Cue]bool),
	}
	if sink != nil {
		c.buffers = Bake(sink.SampleRate())
	}
	return c
}

// Silent reports whether cues produce no output.
func (c *Cues) Silent() bool { return c.sink == nil }

// Sink returns the output the cues play into, nil when silent.
func (c *Cues) Sink() Sink { return c.sink }

// Play starts cue without blocking. Unknown cues are logged once.
func (c *Cues) Play(cue core.Cue) {
	if cue == core.CueNone || c.sink == nil {
		return
	}
	buf, ok := c.buffers[cue]
	if !ok {
		c.mu.Lock()
		if !c.unknown[cue] {
			c.unknown[cue] = true
			c.logger.Warn("unknown sound cue", "cue", string(cue))
		}
		c.mu.Unlock()
		return
	}
	c.sink.Play(withVolume(buf.Streamer(0, buf.Len()), c.volume))
}

// Open tries the speaker and returns the sink with a cue player over it.
// Without a device both are silent: the sink is nil and the cues play nothing.
func Open(enabled bool, volume float64, logger *log.Logger) (*Speaker, *Cues) {
	if !enabled {
		return nil, NewCues(nil, volume, logger)
	}
	spk, err := OpenSpeaker(SampleRate)
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return nil, NewCues(nil, volume, logger)
	}
	return spk, NewCues(spk, volume, logger)
}
