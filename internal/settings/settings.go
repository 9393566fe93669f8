// Package settings provides the persisted user preferences: background choice,
// music state and the high score. Values are validated when read; anything
// malformed reads as its default.
package settings

import (
	"fmt"
	"strconv"
	"sync"
)

// Keys of the persisted settings.
const (
	KeyBackground   = "background"
	KeyHighScore    = "highscore"
	KeyMusicTrack   = "music_track"
	KeyMusicPlaying = "music_playing"
	KeyMusicLoop    = "music_loop"
)

// Background choices.
const (
	BackgroundBlack   = "0"
	BackgroundDefault = "1"
	BackgroundRandom  = "random"
	backgroundRandom6 = "6" // legacy spelling of random
	BackgroundCount   = 5
)

// KV is the storage backend for settings.
type KV interface {
	GetSetting(key string) (value string, ok bool, err error)
	SetSetting(key, value string) error
}

// Settings is the typed view over a KV backend.
type Settings struct {
	kv KV

	scoreMu sync.Mutex // serialises high score read-compare-write
}

// New wraps a backend. A nil backend keeps settings in memory.
func New(kv KV) *Settings {
	if kv == nil {
		kv = NewMemoryKV()
	}
	return &Settings{kv: kv}
}

// InitDefaults writes default values for keys that are not stored yet.
func (s *Settings) InitDefaults() error {
	defaults := []struct{ key, value string }{
		{KeyBackground, BackgroundDefault},
		{KeyHighScore, "0"},
		{KeyMusicTrack, "0"},
		{KeyMusicPlaying, "false"},
		{KeyMusicLoop, "true"},
	}
	for _, d := range defaults {
		_, ok, err := s.kv.GetSetting(d.key)
		if err != nil {
			return fmt.Errorf("settings: cannot read %s: %w", d.key, err)
		}
		if ok {
			continue
		}
		if err := s.kv.SetSetting(d.key, d.value); err != nil {
			return fmt.Errorf("settings: cannot write %s: %w", d.key, err)
		}
	}
	return nil
}

// raw reads a key. Backend errors read as missing.
func (s *Settings) raw(key string) (string, bool) {
	v, ok, err := s.kv.GetSetting(key)
	if err != nil || !ok {
		return "", false
	}
	return v, true
}

func (s *Settings) set(key, value string) error {
	if err := s.kv.SetSetting(key, value); err != nil {
		return fmt.Errorf("settings: cannot write %s: %w", key, err)
	}
	return nil
}

// ValidBackground reports whether v is an accepted background choice.
func ValidBackground(v string) bool {
	if v == BackgroundRandom || v == backgroundRandom6 {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0 && n <= BackgroundCount && strconv.Itoa(n) == v
}

// Background returns the stored background choice: "0".."5" or "random".
func (s *Settings) Background() string {
	v, ok := s.raw(KeyBackground)
	if !ok || !ValidBackground(v) {
		return BackgroundDefault
	}
	if v == backgroundRandom6 {
		return BackgroundRandom
	}
	return v
}

// SetBackground stores a background choice.
func (s *Settings) SetBackground(v string) error {
	if !ValidBackground(v) {
		return fmt.Errorf("settings: invalid background %q", v)
	}
	if v == backgroundRandom6 {
		v = BackgroundRandom
	}
	return s.set(KeyBackground, v)
}

// ResolveBackground turns a choice into a concrete background number.
// 0 means plain black. intn is used for the random choice.
func ResolveBackground(choice string, intn func(int) int) int {
	if choice == BackgroundRandom || choice == backgroundRandom6 {
		return 1 + intn(BackgroundCount)
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 0 || n > BackgroundCount {
		return 1
	}
	return n
}

// HighScore returns the stored high score, 0 if missing or malformed.
func (s *Settings) HighScore() int {
	v, ok := s.raw(KeyHighScore)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetHighScore stores a new high score.
func (s *Settings) SetHighScore(score int) error {
	s.scoreMu.Lock()
	defer s.scoreMu.Unlock()
	return s.setHighScore(score)
}

func (s *Settings) setHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("settings: invalid high score %d", score)
	}
	return s.set(KeyHighScore, strconv.Itoa(score))
}

// SubmitScore stores score if it beats the current high score and returns the resulting high score.
// Concurrent submits never lower the stored value.
func (s *Settings) SubmitScore(score int) (int, error) {
	s.scoreMu.Lock()
	defer s.scoreMu.Unlock()

	high := s.HighScore()
	if score <= high {
		return high, nil
	}
	if err := s.setHighScore(score); err != nil {
		return high, err
	}
	return score, nil
}

// MusicTrack returns the stored track index if it is within [0, trackCount).
func (s *Settings) MusicTrack(trackCount int) int {
	v, ok := s.raw(KeyMusicTrack)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n >= trackCount {
		return 0
	}
	return n
}

// SetMusicTrack stores the current track index.
func (s *Settings) SetMusicTrack(index int) error {
	return s.set(KeyMusicTrack, strconv.Itoa(index))
}

// MusicPlaying returns the stored play flag, false by default.
func (s *Settings) MusicPlaying() bool {
	return s.boolean(KeyMusicPlaying, false)
}

// SetMusicPlaying stores the play flag.
func (s *Settings) SetMusicPlaying(playing bool) error {
	return s.set(KeyMusicPlaying, strconv.FormatBool(playing))
}

// MusicLoop returns the stored loop flag, true by default.
func (s *Settings) MusicLoop() bool {
	return s.boolean(KeyMusicLoop, true)
}

// SetMusicLoop stores the loop flag.
func (s *Settings) SetMusicLoop(loop bool) error {
	return s.set(KeyMusicLoop, strconv.FormatBool(loop))
}

func (s *Settings) boolean(key string, def bool) bool {
	v, ok := s.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// MemoryKV is an in-memory KV backend.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// GetSetting implements KV.
func (m *MemoryKV) GetSetting(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// SetSetting implements KV.
func (m *MemoryKV) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
