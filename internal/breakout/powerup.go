package breakout

import "github.com/vovakirdan/loftwahnoid/internal/core"

// PowerUpType represents the kinds of falling pickups.
type PowerUpType int

const (
	PowerUpExtraLife      PowerUpType = iota // One more life
	PowerUpShootingPaddle                    // Paddle fires projectiles
	PowerUpSlowBall                          // Balls slow down
	PowerUpLargerPaddle                      // Paddle grows a stage
	PowerUpMiniBall                          // Extra balls join the play
	PowerUpFastBall                          // Balls speed up
	PowerUpSmallerPaddle                     // Paddle shrinks a stage
	powerUpTypeCount                         // Sentinel for counting types
)

// AllPowerUpTypes lists every pickup type in declaration order.
func AllPowerUpTypes() []PowerUpType {
	types := make([]PowerUpType, 0, powerUpTypeCount)
	for t := range powerUpTypeCount {
		types = append(types, t)
	}
	return types
}

// RandomPowerUpType picks a type uniformly.
func RandomPowerUpType(rng Rand) PowerUpType {
	return PowerUpType(rng.Intn(int(powerUpTypeCount)))
}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpExtraLife:
		return "ExtraLife"
	case PowerUpShootingPaddle:
		return "ShootingPaddle"
	case PowerUpSlowBall:
		return "SlowBall"
	case PowerUpLargerPaddle:
		return "LargerPaddle"
	case PowerUpMiniBall:
		return "MiniBall"
	case PowerUpFastBall:
		return "FastBall"
	case PowerUpSmallerPaddle:
		return "SmallerPaddle"
	default:
		return "Unknown"
	}
}

// Label returns the short name shown in the HUD.
func (t PowerUpType) Label() string {
	switch t {
	case PowerUpExtraLife:
		return "LIFE"
	case PowerUpShootingPaddle:
		return "SHOOT"
	case PowerUpSlowBall:
		return "SLOW"
	case PowerUpLargerPaddle:
		return "LARGE"
	case PowerUpMiniBall:
		return "MULTI"
	case PowerUpFastBall:
		return "FAST"
	case PowerUpSmallerPaddle:
		return "SMALL"
	default:
		return "?"
	}
}

// IconKey returns the asset key of the falling icon.
func (t PowerUpType) IconKey() string {
	switch t {
	case PowerUpExtraLife:
		return "powerup_life"
	case PowerUpShootingPaddle:
		return "powerup_shoot"
	case PowerUpSlowBall:
		return "powerup_slow"
	case PowerUpLargerPaddle:
		return "powerup_large"
	case PowerUpMiniBall:
		return "powerup_multiball"
	case PowerUpFastBall:
		return "powerup_fast"
	case PowerUpSmallerPaddle:
		return "powerup_small"
	default:
		return "powerup_unknown"
	}
}

// IsBeneficial reports whether the pickup helps the player.
func (t PowerUpType) IsBeneficial() bool {
	return t != PowerUpFastBall && t != PowerUpSmallerPaddle
}

// Timed reports whether collecting the type schedules an expiry.
func (t PowerUpType) Timed() bool {
	return t != PowerUpExtraLife
}

// PowerUp is a pickup falling from a destroyed brick.
type PowerUp struct {
	Type       PowerUpType
	X, Y       Fixed // Centre position
	FallSpeed  Fixed // Units per tick, positive is down
	MissMargin Fixed // How far below the playfield it may fall before vanishing

	collected bool
	gone      bool
}

// NewPowerUp creates a pickup at the given position.
func NewPowerUp(t PowerUpType, x, y, fallSpeed, missMargin Fixed) *PowerUp {
	return &PowerUp{
		Type:       t,
		X:          x,
		Y:          y,
		FallSpeed:  fallSpeed,
		MissMargin: missMargin,
	}
}

// CellX returns pickup X in cell coordinates.
func (p *PowerUp) CellX() int {
	return p.X.ToCell()
}

// Bounds returns the single cell the pickup occupies.
func (p *PowerUp) Bounds() core.Rect {
	return core.NewRect(p.CellX(), p.CellY(), 1, 1)
}

// CellY returns pickup Y in cell coordinates.
func (p *PowerUp) CellY() int {
	return p.Y.ToCell()
}

// IsBeneficial reports whether the pickup helps the player.
func (p *PowerUp) IsBeneficial() bool {
	return p.Type.IsBeneficial()
}

// Active reports whether the pickup is still falling.
func (p *PowerUp) Active() bool {
	return !p.collected && !p.gone
}

// Update moves the pickup down. It returns false once the pickup has
// fallen past bottom by more than its miss margin or was collected.
func (p *PowerUp) Update(bottom Fixed) bool {
	if !p.Active() {
		return false
	}
	p.Y += p.FallSpeed
	if p.Y > bottom+p.MissMargin {
		p.gone = true
	}
	return p.Active()
}

// HandleCollection consumes the pickup. Only the first call reports ok.
func (p *PowerUp) HandleCollection() (PowerUpType, bool) {
	if !p.Active() {
		return p.Type, false
	}
	p.collected = true
	return p.Type, true
}
