// Package assets resolves named sprites for the terminal renderer.
// Every lookup succeeds: keys the theme does not define resolve to a
// generated solid placeholder in the key's fallback color.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

//go:embed theme.yaml
var builtinTheme []byte

// PlaceholderGlyph is drawn for every fallback sprite.
const PlaceholderGlyph = '█'

// Resolution tells whether a sprite came from the theme or is a placeholder.
type Resolution int

const (
	Found Resolution = iota
	Fallback
)

func (r Resolution) String() string {
	if r == Found {
		return "found"
	}
	return "fallback"
}

// Sprite is a single-cell image: a glyph and its color.
type Sprite struct {
	Glyph  rune
	Color  core.Color
	Tint   core.RGB
	Tinted bool
}

// Cell converts the sprite to a screen cell.
func (s Sprite) Cell() core.Cell {
	return core.Cell{Rune: s.Glyph, Color: s.Color, Tint: s.Tint, Tinted: s.Tinted}
}

// fallbackTints are the placeholder colors for known keys.
var fallbackTints = map[string]core.RGB{
	"ball":              0xffffff,
	"paddle":            0x3366ff,
	"projectile":        0x00ffff,
	"brick1":            0x3366ff,
	"brick2":            0xff6600,
	"brick3":            0x999999,
	"powerup_life":      0x00ff00,
	"powerup_shoot":     0x00ff00,
	"powerup_slow":      0x00ff00,
	"powerup_large":     0x00ff00,
	"powerup_multiball": 0x00ff00,
	"powerup_fast":      0xff0000,
	"powerup_small":     0xff0000,
}

const (
	backgroundFallback core.RGB = 0x333333
	unknownFallback    core.RGB = 0xff00ff
)

type spriteSpec struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
	Tint  string `yaml:"tint"`
}

type themeFile struct {
	Sprites map[string]spriteSpec `yaml:"sprites"`
}

// Catalog maps sprite keys to sprites. Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	sprites map[string]Sprite
	warned  map[string]bool
	logger  *log.Logger
}

// NewCatalog creates a catalog loaded with the built-in theme.
// A nil logger discards fallback warnings.
func NewCatalog(logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Catalog{
		sprites: make(map[string]Sprite),
		warned:  make(map[string]bool),
		logger:  logger,
	}
	if err := c.Merge(builtinTheme); err != nil {
		// The built-in theme is compiled in; a parse failure leaves every key on its placeholder.
		logger.Error("built-in theme is invalid", "error", err)
	}
	return c
}

// LoadTheme merges a user theme file over the current sprites.
func (c *Catalog) LoadTheme(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("assets: cannot read theme %s: %w", path, err)
	}
	if err := c.Merge(data); err != nil {
		return fmt.Errorf("assets: theme %s: %w", path, err)
	}
	return nil
}

// Merge decodes theme YAML and adds or replaces its sprites.
// Entries are validated as a whole; on error nothing is merged.
func (c *Catalog) Merge(data []byte) error {
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("cannot parse theme: %w", err)
	}

	parsed := make(map[string]Sprite, len(tf.Sprites))
	for key, spec := range tf.Sprites {
		sp, err := spec.sprite()
		if err != nil {
			return fmt.Errorf("sprite %q: %w", key, err)
		}
		parsed[key] = sp
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, sp := range parsed {
		c.sprites[key] = sp
	}
	return nil
}

func (s spriteSpec) sprite() (Sprite, error) {
	glyph, size := utf8.DecodeRuneInString(s.Glyph)
	if glyph == utf8.RuneError || size != len(s.Glyph) {
		return Sprite{}, fmt.Errorf("glyph must be a single character, got %q", s.Glyph)
	}

	sp := Sprite{Glyph: glyph}
	if s.Color != "" {
		c, ok := core.ParseColor(s.Color)
		if !ok {
			return Sprite{}, fmt.Errorf("unknown color %q", s.Color)
		}
		sp.Color = c
	}
	if s.Tint != "" {
		tint, err := parseHex(s.Tint)
		if err != nil {
			return Sprite{}, err
		}
		sp.Tint = tint
		sp.Tinted = true
	}
	return sp, nil
}

func parseHex(s string) (core.RGB, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || v > 0xffffff {
		return 0, fmt.Errorf("invalid tint %q", s)
	}
	return core.RGB(v), nil
}

// Lookup resolves a key. Missing keys return a placeholder and Fallback,
// and the first miss of each key is logged.
func (c *Catalog) Lookup(key string) (Sprite, Resolution) {
	c.mu.RLock()
	sp, ok := c.sprites[key]
	c.mu.RUnlock()
	if ok {
		return sp, Found
	}

	c.mu.Lock()
	if !c.warned[key] {
		c.warned[key] = true
		c.logger.Warn("sprite missing, using placeholder", "key", key)
	}
	c.mu.Unlock()

	return Placeholder(key), Fallback
}

// Sprite is Lookup without the resolution.
func (c *Catalog) Sprite(key string) Sprite {
	sp, _ := c.Lookup(key)
	return sp
}

// Remove deletes a key so that it resolves to its placeholder.
func (c *Catalog) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sprites, key)
}

// Keys returns the defined keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.sprites))
	for k := range c.sprites {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Placeholder generates the solid fallback sprite for a key.
func Placeholder(key string) Sprite {
	tint, ok := fallbackTints[key]
	switch {
	case ok:
	case strings.HasPrefix(key, "background"):
		return Sprite{Glyph: '·', Tint: backgroundFallback, Tinted: true}
	default:
		tint = unknownFallback
	}
	return Sprite{Glyph: PlaceholderGlyph, Tint: tint, Tinted: true}
}
