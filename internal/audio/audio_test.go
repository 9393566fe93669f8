package audio

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

const testRate = beep.SampleRate(8000)

type recordingSink struct {
	mu     sync.Mutex
	played []beep.Streamer
}

func (r *recordingSink) SampleRate() beep.SampleRate { return testRate }
func (r *recordingSink) Lock()                       {}
func (r *recordingSink) Unlock()                     {}

func (r *recordingSink) Play(s beep.Streamer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, s)
}

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestRenderEveryCue(t *testing.T) {
	for _, cue := range core.AllCues() {
		t.Run(string(cue), func(t *testing.T) {
			s, ok := Render(cue, testRate)
			require.True(t, ok)

			n, peak := drain(s)
			assert.Equal(t, testRate.N(Duration(cue)), n, "length matches the note table")
			assert.Greater(t, peak, 0.0, "cue is audible")
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

func TestRenderUnknownCue(t *testing.T) {
	_, ok := Render(core.Cue("kazoo"), testRate)
	assert.False(t, ok)
	assert.Zero(t, Duration(core.Cue("kazoo")))
}

func TestRenderIsDeterministic(t *testing.T) {
	a, _ := Render(core.CueCrunch, testRate)
	b, _ := Render(core.CueCrunch, testRate)

	bufA := make([][2]float64, 256)
	bufB := make([][2]float64, 256)
	a.Stream(bufA)
	b.Stream(bufB)
	assert.Equal(t, bufA, bufB)
}

func TestEnvelopeFadesOut(t *testing.T) {
	osc := newOscillator(0, 100*time.Millisecond, WaveSquare, testRate)
	env := newEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(100*time.Millisecond))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Zero(t, buf[0][0], "attack starts from silence")
	assert.Equal(t, 1.0, buf[n/2][0], "sustain at full level")
	assert.InDelta(t, 0, buf[n-1][0], 0.01, "release ends near silence")
}

func TestCuesPlayIntoSink(t *testing.T) {
	sink := &recordingSink{}
	cues := NewCues(sink, 0.5, nil)
	assert.False(t, cues.Silent())

	cues.Play(core.CuePew)
	cues.Play(core.CueNone)
	require.Len(t, sink.played, 1)

	n, peak := drain(sink.played[0])
	assert.Equal(t, testRate.N(Duration(core.CuePew)), n)
	assert.LessOrEqual(t, peak, 0.5*0.25+1e-3, "cue volume scales the note gain")
}

func TestCuesUnknownLoggedOnce(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{}
	cues := NewCues(sink, 1, log.New(&out))

	cues.Play(core.Cue("kazoo"))
	cues.Play(core.Cue("kazoo"))

	assert.Empty(t, sink.played)
	assert.Equal(t, 1, strings.Count(out.String(), "unknown sound cue"))
}

func TestSilentCues(t *testing.T) {
	cues := NewCues(nil, 1, nil)
	assert.True(t, cues.Silent())
	assert.Nil(t, cues.Sink())
	assert.NotPanics(t, func() {
		for _, cue := range core.AllCues() {
			cues.Play(cue)
		}
	})
}

func TestOpenDisabledIsSilent(t *testing.T) {
	spk, cues := Open(false, 1, nil)
	assert.Nil(t, spk)
	assert.True(t, cues.Silent())
}
