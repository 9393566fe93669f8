package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// note is one segment of a cue. A zero freq on a non-noise wave is a rest.
type note struct {
	freq float64
	dur  time.Duration
	wave Wave
	gain float64
}

const (
	attack  = 4 * time.Millisecond
	release = 25 * time.Millisecond
)

var cueNotes = map[core.Cue][]note{
	core.CueBeep: {
		{440, 90 * time.Millisecond, WaveSquare, 0.35},
		{0, 40 * time.Millisecond, WaveSquare, 0},
		{330, 140 * time.Millisecond, WaveSquare, 0.35},
	},
	core.CueChime: {
		{880, 70 * time.Millisecond, WaveSine, 0.6},
		{1320, 70 * time.Millisecond, WaveSine, 0.5},
		{1760, 160 * time.Millisecond, WaveSine, 0.4},
	},
	core.CueCrunch: {
		{0, 110 * time.Millisecond, WaveNoise, 0.45},
		{120, 60 * time.Millisecond, WaveSaw, 0.3},
	},
	core.CueGameOver: {
		{392, 180 * time.Millisecond, WaveSaw, 0.35},
		{330, 180 * time.Millisecond, WaveSaw, 0.35},
		{262, 180 * time.Millisecond, WaveSaw, 0.35},
		{196, 420 * time.Millisecond, WaveSaw, 0.35},
	},
	core.CuePew: {
		{1600, 30 * time.Millisecond, WaveSquare, 0.25},
		{1100, 30 * time.Millisecond, WaveSquare, 0.25},
		{700, 40 * time.Millisecond, WaveSquare, 0.2},
	},
	core.CuePing: {
		{1320, 60 * time.Millisecond, WaveSine, 0.5},
	},
	core.CueStart: {
		{523, 90 * time.Millisecond, WaveSquare, 0.3},
		{659, 90 * time.Millisecond, WaveSquare, 0.3},
		{784, 90 * time.Millisecond, WaveSquare, 0.3},
		{1047, 200 * time.Millisecond, WaveSquare, 0.3},
	},
}

// Duration is the total length of a cue, zero for unknown cues.
func Duration(cue core.Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[cue] {
		d += n.dur
	}
	return d
}

// Render returns a fresh streamer for cue. ok is false for unknown cues.
func Render(cue core.Cue, rate beep.SampleRate) (s beep.Streamer, ok bool) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, false
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.gain <= 0 || (n.freq <= 0 && n.wave != WaveNoise) {
			parts = append(parts, silence(rate.N(n.dur)))
			continue
		}
		osc := newOscillator(n.freq, n.dur, n.wave, rate)
		parts = append(parts, withVolume(newEnvelope(osc, n.dur, attack, release, rate), n.gain))
	}
	return beep.Seq(parts...), true
}

// silence is a finite run of zero samples.
func silence(n int) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n <= 0 {
			return 0, false
		}
		m := min(n, len(samples))
		clear(samples[:m])
		n -= m
		return m, true
	})
}

// Bake renders every known cue into memory.
func Bake(rate beep.SampleRate) map[core.Cue]*beep.Buffer {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	out := make(map[core.Cue]*beep.Buffer, len(cueNotes))
	for _, cue := range core.AllCues() {
		s, ok := Render(cue, rate)
		if !ok {
			continue
		}
		buf := beep.NewBuffer(format)
		buf.Append(s)
		out[cue] = buf
	}
	return out
}
