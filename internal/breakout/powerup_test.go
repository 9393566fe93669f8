package breakout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleCollectionConsumesOnce(t *testing.T) {
	p := NewPowerUp(PowerUpSlowBall, 0, 0, 200, 4000)

	typ, ok := p.HandleCollection()
	assert.True(t, ok)
	assert.Equal(t, PowerUpSlowBall, typ)
	assert.False(t, p.Active())

	_, ok = p.HandleCollection()
	assert.False(t, ok)
	assert.False(t, p.Update(ToFixed(100)), "collected pickups stop falling")
}

func TestPowerUpFallsPastMargin(t *testing.T) {
	bottom := ToFixed(20)
	p := NewPowerUp(PowerUpExtraLife, ToFixed(5), ToFixed(23), 1000, ToFixed(4))

	assert.True(t, p.Update(bottom), "exactly at the margin is still alive")
	assert.Equal(t, ToFixed(24), p.Y)

	assert.False(t, p.Update(bottom))
	assert.False(t, p.Active())

	_, ok := p.HandleCollection()
	assert.False(t, ok, "a missed pickup cannot be collected")
}

func TestPowerUpClasses(t *testing.T) {
	beneficial := map[PowerUpType]bool{
		PowerUpExtraLife:      true,
		PowerUpShootingPaddle: true,
		PowerUpSlowBall:       true,
		PowerUpLargerPaddle:   true,
		PowerUpMiniBall:       true,
		PowerUpFastBall:       false,
		PowerUpSmallerPaddle:  false,
	}

	types := AllPowerUpTypes()
	assert.Len(t, types, len(beneficial))

	keys := make(map[string]bool)
	for _, typ := range types {
		assert.Equal(t, beneficial[typ], typ.IsBeneficial(), typ.String())
		assert.True(t, strings.HasPrefix(typ.IconKey(), "powerup_"), typ.String())
		keys[typ.IconKey()] = true
	}
	assert.Len(t, keys, len(types), "icon keys are unique")

	assert.False(t, PowerUpExtraLife.Timed())
	assert.True(t, PowerUpMiniBall.Timed())
	assert.True(t, PowerUpShootingPaddle.Timed())
}

func TestRandomPowerUpTypeInRange(t *testing.T) {
	rng := NewSimpleRNG(7)
	seen := make(map[PowerUpType]bool)
	for range 500 {
		typ := RandomPowerUpType(rng)
		assert.True(t, typ >= 0 && typ < powerUpTypeCount)
		seen[typ] = true
	}
	assert.Len(t, seen, int(powerUpTypeCount))
}
