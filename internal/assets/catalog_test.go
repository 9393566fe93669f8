package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

var gameKeys = []string{
	"ball", "paddle", "projectile", "brick1", "brick2", "brick3",
	"powerup_life", "powerup_shoot", "powerup_slow", "powerup_large",
	"powerup_multiball", "powerup_fast", "powerup_small",
	"background1", "background2", "background3", "background4", "background5",
}

func TestBuiltinThemeCoversGameKeys(t *testing.T) {
	c := NewCatalog(nil)
	for _, key := range gameKeys {
		_, res := c.Lookup(key)
		assert.Equal(t, Found, res, key)
	}
}

func TestLookupMissingKeyFallsBack(t *testing.T) {
	var buf bytes.Buffer
	c := NewCatalog(log.New(&buf))
	c.Remove("brick1")

	sp, res := c.Lookup("brick1")
	assert.Equal(t, Fallback, res)
	assert.Equal(t, PlaceholderGlyph, sp.Glyph)
	assert.True(t, sp.Tinted)
	assert.Equal(t, core.RGB(0x3366ff), sp.Tint)

	// Second miss is not logged again
	c.Lookup("brick1")
	assert.Equal(t, 1, strings.Count(buf.String(), "sprite missing"))
}

func TestPlaceholderColors(t *testing.T) {
	assert.Equal(t, core.RGB(0xff0000), Placeholder("powerup_fast").Tint)
	assert.Equal(t, core.RGB(0x00ff00), Placeholder("powerup_life").Tint)
	assert.Equal(t, '·', Placeholder("background9").Glyph)

	unknown := Placeholder("logo")
	assert.NotEqual(t, rune(0), unknown.Glyph)
	assert.Equal(t, unknownFallback, unknown.Tint)
}

func TestLoadThemeOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`sprites:
  ball: { glyph: "o", color: yellow }
  brick2: { glyph: "#", tint: "#00ff00" }
`), 0o600))

	c := NewCatalog(nil)
	require.NoError(t, c.LoadTheme(path))

	ball := c.Sprite("ball")
	assert.Equal(t, 'o', ball.Glyph)
	assert.Equal(t, core.ColorYellow, ball.Color)

	brick := c.Sprite("brick2")
	assert.True(t, brick.Tinted)
	assert.Equal(t, core.RGB(0x00ff00), brick.Tint)
}

func TestMergeRejectsBadEntriesAtomically(t *testing.T) {
	c := NewCatalog(nil)
	before := c.Sprite("ball")

	err := c.Merge([]byte(`sprites:
  ball: { glyph: "x" }
  paddle: { glyph: "too long" }
`))
	require.Error(t, err)
	assert.Equal(t, before, c.Sprite("ball"), "nothing merged on error")

	require.Error(t, c.Merge([]byte(`sprites: { ball: { glyph: "x", color: plaid } }`)))
	require.Error(t, c.Merge([]byte(`sprites: { ball: { glyph: "x", tint: "#zzzzzz" } }`)))
}

func TestLoadThemeMissingFile(t *testing.T) {
	c := NewCatalog(nil)
	err := c.LoadTheme(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assets:")
}
