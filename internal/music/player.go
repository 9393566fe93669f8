// Package music plays the background soundtrack. Track choice, play state and
// looping persist in the settings store; without an audio device the player
// keeps the bookkeeping and stays silent.
package music

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"

	"github.com/vovakirdan/loftwahnoid/internal/audio"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
)

// DefaultVolume is the linear music gain.
const DefaultVolume = 0.7

// Track is one soundtrack entry.
type Track struct {
	Key  string
	Name string
}

// Tracks lists the soundtrack in play order.
var Tracks = []Track{
	{"break_the_grid", "Break the Grid"},
	{"gridlock_ruin", "Gridlock Ruin"},
	{"neon_collapse", "Neon Collapse"},
	{"paddle_pulse", "Paddle Pulse"},
	{"shatter_circuit", "Shatter Circuit"},
}

// Opener opens a track file.
type Opener func(path string) (io.ReadCloser, error)

// Decoder turns an opened file into a stream.
type Decoder func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// Options configures a Player. Zero values pick the defaults.
type Options struct {
	Dir     string
	Volume  float64
	Open    Opener
	Decode  Decoder
	Sink    audio.Sink
	Logger  *log.Logger
	Tracks  []Track
	NoProbe bool // skip the availability check at start
}

// Player is the music controller.
type Player struct {
	mu      sync.Mutex
	opts    Options
	tracks  []Track
	store   *settings.Settings
	logger  *log.Logger
	missing map[int]bool
	index   int
	playing bool
	loop    bool
	stream  beep.StreamSeekCloser
	ctrl    *beep.Ctrl
	gen     int
	spawn   func(func())
	closed  bool
}

// New creates a player and restores its state from store.
func New(store *settings.Settings, opts Options) *Player {
	if opts.Open == nil {
		opts.Open = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}
	if opts.Decode == nil {
		opts.Decode = mp3.Decode
	}
	if opts.Volume == 0 {
		opts.Volume = DefaultVolume
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if store == nil {
		store = settings.New(nil)
	}
	tracks := opts.Tracks
	if len(tracks) == 0 {
		tracks = Tracks
	}

	p := &Player{
		opts:    opts,
		tracks:  tracks,
		store:   store,
		logger:  opts.Logger.WithPrefix("music"),
		missing: make(map[int]bool),
		spawn:   func(f func()) { go f() },
	}
	if !opts.NoProbe {
		p.probe()
	}

	p.index = store.MusicTrack(len(tracks))
	p.loop = store.MusicLoop()
	if p.missing[p.index] {
		if next, ok := p.step(1); ok {
			p.index = next
		}
	}
	if store.MusicPlaying() {
		p.playing = true
		p.start()
	}
	return p
}

// probe marks tracks whose files are missing or fail to decode.
func (p *Player) probe() {
	for i := range p.tracks {
		s, _, err := p.load(i)
		if err != nil {
			p.missing[i] = true
			p.logger.Warn("track unavailable", "track", p.tracks[i].Name, "err", err)
			continue
		}
		_ = s.Close()
	}
}

// Path returns the file a track loads from.
func (p *Player) Path(i int) string {
	return filepath.Join(p.opts.Dir, p.tracks[i].Name+".mp3")
}

func (p *Player) load(i int) (beep.StreamSeekCloser, beep.Format, error) {
	rc, err := p.opts.Open(p.Path(i))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("music: cannot open %s: %w", p.tracks[i].Name, err)
	}
	s, format, err := p.opts.Decode(rc)
	if err != nil {
		_ = rc.Close()
		return nil, beep.Format{}, fmt.Errorf("music: cannot decode %s: %w", p.tracks[i].Name, err)
	}
	return s, format, nil
}

// step finds the next available track in direction dir (+1 or -1).
func (p *Player) step(dir int) (int, bool) {
	n := len(p.tracks)
	for k := 1; k <= n; k++ {
		i := ((p.index+dir*k)%n + n) % n
		if !p.missing[i] {
			return i, i != p.index
		}
	}
	return p.index, false
}

// start begins streaming the current track. Caller holds p.mu.
func (p *Player) start() {
	p.stop()
	sink := p.opts.Sink
	if sink == nil || p.closed {
		return
	}
	if p.missing[p.index] {
		return
	}

	s, format, err := p.load(p.index)
	if err != nil {
		p.missing[p.index] = true
		p.logger.Warn("track unavailable", "track", p.tracks[p.index].Name, "err", err)
		return
	}

	var src beep.Streamer = s
	if format.SampleRate != sink.SampleRate() {
		src = beep.Resample(4, format.SampleRate, sink.SampleRate(), s)
	}
	p.gen++
	gen := p.gen
	ended := beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked.
		p.spawn(func() { p.trackEnded(gen) })
	})
	p.stream = s
	p.ctrl = &beep.Ctrl{Streamer: beep.Seq(src, ended)}
	sink.Play(&effects.Volume{Streamer: p.ctrl, Base: 2, Volume: math.Log2(p.opts.Volume)})
}

// stop detaches the current stream. Caller holds p.mu.
func (p *Player) stop() {
	if p.ctrl == nil {
		return
	}
	sink := p.opts.Sink
	sink.Lock()
	p.ctrl.Streamer = nil
	sink.Unlock()
	_ = p.stream.Close()
	p.ctrl = nil
	p.stream = nil
}

func (p *Player) trackEnded(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || !p.playing || p.closed {
		return
	}
	if !p.loop {
		if next, ok := p.step(1); ok {
			p.index = next
			p.persist(p.store.SetMusicTrack(p.index))
		}
	}
	p.start()
}

func (p *Player) persist(err error) {
	if err != nil {
		p.logger.Warn("cannot save music state", "err", err)
	}
}

// PlayPause toggles playback and returns the new state.
func (p *Player) PlayPause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = !p.playing
	p.persist(p.store.SetMusicPlaying(p.playing))
	switch {
	case p.playing && p.ctrl != nil:
		p.opts.Sink.Lock()
		p.ctrl.Paused = false
		p.opts.Sink.Unlock()
	case p.playing:
		p.start()
	case p.ctrl != nil:
		p.opts.Sink.Lock()
		p.ctrl.Paused = true
		p.opts.Sink.Unlock()
	}
	return p.playing
}

// Next moves to the next available track.
func (p *Player) Next() { p.move(1) }

// Previous moves to the previous available track.
func (p *Player) Previous() { p.move(-1) }

func (p *Player) move(dir int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.step(dir)
	if !ok {
		return
	}
	p.index = next
	p.persist(p.store.SetMusicTrack(p.index))
	if p.playing {
		p.start()
	} else {
		p.stop()
	}
}

// ToggleLoop flips looping and returns the new state.
func (p *Player) ToggleLoop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = !p.loop
	p.persist(p.store.SetMusicLoop(p.loop))
	return p.loop
}

// CurrentTrack returns the index of the selected track.
func (p *Player) CurrentTrack() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// CurrentTrackName returns the display name of the selected track.
func (p *Player) CurrentTrackName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayName(p.index)
}

// TrackNames lists every track's display name.
func (p *Player) TrackNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.tracks))
	for i := range p.tracks {
		names[i] = p.displayName(i)
	}
	return names
}

func (p *Player) displayName(i int) string {
	if p.missing[i] {
		return p.tracks[i].Name + " (unavailable)"
	}
	return p.tracks[i].Name
}

// Available reports whether track i can be played.
func (p *Player) Available(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return i >= 0 && i < len(p.tracks) && !p.missing[i]
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) IsLooping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop
}

// Silent reports whether the player has no output device.
func (p *Player) Silent() bool { return p.opts.Sink == nil }

// Close stops playback. The persisted state is left as is.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop()
	p.closed = true
}
