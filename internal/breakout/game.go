// Package breakout implements the Loftwahnoid brick breaker: procedurally
// generated levels, multi-hit bricks, falling power-ups and a paddle that can
// shoot. The game advances in fixed ticks and is fully deterministic for a
// given seed and input sequence.
package breakout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loftwahnoid/internal/assets"
	"github.com/vovakirdan/loftwahnoid/internal/config"
	"github.com/vovakirdan/loftwahnoid/internal/core"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
)

// Game state constants
const (
	StateActive        = "active"         // Normal play, ball docked or moving
	StatePaused        = "paused"         // Frozen, timers hold
	StateLevelComplete = "level_complete" // Transient while the next level is built
	StateGameOver      = "gameover"       // No lives left
)

// Minimum terminal size the game can be played in.
const (
	MinScreenW = 30
	MinScreenH = 15
)

// CuePlayer plays short sound cues.
type CuePlayer interface {
	Play(cue core.Cue)
}

// HighScoreKeeper persists the best score.
type HighScoreKeeper interface {
	HighScore() int
	SubmitScore(score int) (int, error)
}

// SpriteSource resolves asset keys to drawable sprites.
type SpriteSource interface {
	Sprite(key string) assets.Sprite
}

// Deps are the collaborators a game talks to. Nil fields fall back to no-ops.
type Deps struct {
	Cues       CuePlayer
	HighScores HighScoreKeeper
	Sprites    SpriteSource
	Background string // Background choice: "0".."5" or "random"
	Logger     *log.Logger
}

type silentCues struct{}

func (silentCues) Play(core.Cue) {}

type memoryHighScore struct{ high int }

func (m *memoryHighScore) HighScore() int { return m.high }

func (m *memoryHighScore) SubmitScore(score int) (int, error) {
	m.high = max(m.high, score)
	return m.high, nil
}

// Game implements the brick breaker logic.
type Game struct {
	cfg  config.GameConfig
	deps Deps
	log  *log.Logger

	runtime   core.RuntimeConfig
	rng       *SimpleRNG
	generator *Generator
	field     Playfield

	// Game state
	state      string
	score      int
	lives      int
	level      int
	highScore  int
	tick       int
	bricksLeft int
	background int

	// Game objects
	paddle  *Paddle
	balls   []*Ball
	pickups []*PowerUp
	shots   []*Projectile
	wall    *Wall
	layout  Layout
	effects *Effects

	// Per-tick values derived from the config
	baseSpeed    Fixed
	ballSpeed    Fixed
	paddleStep   Fixed
	shotSpeed    Fixed
	fallSpeed    Fixed
	missMargin   Fixed
	duration     int
	fireEvery    int
	fireCooldown int
	nextAutoFire int
	lastFire     int

	events         []core.Event
	screenTooSmall bool
}

// New creates a game. Call Reset before stepping it.
func New(cfg config.GameConfig, deps Deps) *Game {
	if deps.Cues == nil {
		deps.Cues = silentCues{}
	}
	if deps.HighScores == nil {
		deps.HighScores = &memoryHighScore{}
	}
	if deps.Sprites == nil {
		deps.Sprites = assets.NewCatalog(deps.Logger)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		cfg:       cfg,
		deps:      deps,
		log:       logger.WithPrefix("breakout"),
		generator: NewGenerator(cfg),
		effects:   NewEffects(),
	}
}

// Reset applies a runtime configuration and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.rng = NewSimpleRNG(runtime.Seed)

	g.fitScreen(runtime.ScreenW, runtime.ScreenH)

	rate := runtime.TickRate
	g.baseSpeed = PerTick(g.cfg.Physics.BallSpeed, rate)
	g.paddleStep = PerTick(g.cfg.Paddle.Speed, rate)
	g.shotSpeed = PerTick(g.cfg.Physics.ProjectileSpeed, rate)
	g.fallSpeed = PerTick(g.cfg.Physics.FallSpeed, rate)
	g.missMargin = FromFloat(g.cfg.PowerUps.MissMargin)
	g.duration = secondsToTicks(g.cfg.PowerUps.Duration, rate)
	g.fireEvery = max(1, secondsToTicks(g.cfg.PowerUps.FireInterval, rate))
	g.fireCooldown = secondsToTicks(g.cfg.PowerUps.FireCooldown, rate)

	g.StartRound()
}

// fitScreen sizes the playfield for a width x height terminal.
func (g *Game) fitScreen(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	// HUD on row 0, top wall on row 1, side walls on the outer columns
	g.field = Playfield{
		Left:   1,
		Right:  width - 1,
		Top:    2,
		Bottom: height,
	}
	g.screenTooSmall = width < MinScreenW || height < MinScreenH
}

// Resize fits a game in progress to a new terminal size. Score, lives, level
// and effects are kept. The wall is re-centred when it still fits in the upper
// two thirds of the field and regenerated for the same level otherwise.
// Balls dock on the paddle again. A game that has not ticked yet is reset.
func (g *Game) Resize(width, height int) {
	if g.tick == 0 && g.state != StateGameOver {
		runtime := g.runtime
		runtime.ScreenW, runtime.ScreenH = width, height
		g.Reset(runtime)
		return
	}

	g.fitScreen(width, height)
	g.paddle.Y = height - 1 - g.cfg.Paddle.BottomPadding
	g.clampPaddle()

	wall := g.wall.Bounds()
	if wall.W <= g.field.Width() && wall.Bottom()-g.field.Top <= (g.paddle.Y-g.field.Top)*2/3 {
		dx := g.field.Left + (g.field.Width()-wall.W)/2 - wall.X
		g.wall.Shift(dx)
		for _, p := range g.pickups {
			p.X += ToFixed(dx)
		}
	} else {
		g.buildLevel()
		g.pickups = nil
	}
	g.shots = nil
	g.balls = []*Ball{{Main: true, Docked: true}}
	g.syncDocked()

	g.log.Debug("screen resized", "width", width, "height", height, "level", g.level, "score", g.score)
}

// Abandon ends a game in progress as a loss so its score still reaches the
// high score keeper. It reports whether there was a score to keep.
func (g *Game) Abandon() bool {
	if g.state == StateGameOver || g.score == 0 {
		return false
	}
	g.gameOver()
	return true
}

func secondsToTicks(seconds float64, tickRate int) int {
	return int(math.Round(seconds * float64(tickRate)))
}

// StartRound starts a new game with the current runtime configuration.
func (g *Game) StartRound() {
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.level = max(1, g.cfg.Gameplay.StartLevel)
	g.tick = 0
	g.lastFire = -g.fireCooldown
	g.highScore = g.deps.HighScores.HighScore()
	g.background = settings.ResolveBackground(g.deps.Background, g.rng.Intn)

	g.paddle = &Paddle{
		X:      ToFixed(g.field.Left + g.field.Width()/2),
		Y:      g.runtime.ScreenH - 1 - g.cfg.Paddle.BottomPadding,
		Stages: g.cfg.Paddle.Stages,
	}
	g.clearField()
	g.buildLevel()

	g.state = StateActive
	g.deps.Cues.Play(core.CueStart)
	g.log.Debug("round started", "level", g.level, "lives", g.lives, "seed", g.runtime.Seed)
}

// clearField drops everything that belongs to a single ball life or level:
// extra balls, pickups, shots and effects. The main ball is docked again.
func (g *Game) clearField() {
	g.effects.Clear()
	g.pickups = nil
	g.shots = nil
	g.ballSpeed = g.baseSpeed
	g.paddle.SetStage(g.cfg.Paddle.DefaultStage)
	g.clampPaddle()
	g.balls = []*Ball{{Main: true, Docked: true}}
	g.syncDocked()
}

// buildLevel generates the bricks for the current level.
func (g *Game) buildLevel() {
	cols, rows, geom := g.generator.DefaultLayout(g.level, g.field.Width(), g.paddle.Y-g.field.Top)
	g.layout = g.generator.Generate(g.level, cols, rows, geom, g.rng)
	g.wall = NewWall(g.layout, g.field.Left, g.field.Top, g.cfg.PowerUps.DropChance)
	g.bricksLeft = g.wall.Remaining()

	g.log.Debug("level generated",
		"level", g.level,
		"difficulty", g.layout.Tuning.Difficulty,
		"columns", cols,
		"rows", rows,
		"bricks", len(g.wall.Bricks),
		"destructible", g.bricksLeft,
	)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if g.screenTooSmall {
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.Abandon()
		g.StartRound()
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	if g.state != StateActive {
		return g.result()
	}

	g.tick++
	g.expireEffects()

	g.movePaddle(in)
	if in.Has(core.ActionLaunch) {
		g.Launch()
	}
	if in.Has(core.ActionFire) {
		g.Fire()
	}
	g.autoFire()

	g.updateBalls()
	if g.state == StateActive {
		g.updateProjectiles()
		g.updatePickups()
	}

	if g.state == StateActive && g.bricksLeft <= 0 {
		g.completeLevel()
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) emit(kind core.EventKind, value int) {
	g.events = append(g.events, core.Event{Kind: kind, Value: value})
}

// TogglePause flips between active and paused. Other states are unaffected.
func (g *Game) TogglePause() {
	switch g.state {
	case StateActive:
		g.state = StatePaused
	case StatePaused:
		g.state = StateActive
	}
}

// Launch sends the docked main ball up at a random angle.
func (g *Game) Launch() bool {
	if g.state != StateActive {
		return false
	}
	for _, b := range g.balls {
		if b.Main && b.Docked {
			spread := g.cfg.Physics.LaunchSpread
			angle := (g.rng.Float64()*2 - 1) * spread
			b.Docked = false
			b.SetAngle(angle, g.ballSpeed)
			g.deps.Cues.Play(core.CuePing)
			return true
		}
	}
	return false
}

// MovePaddleTo centres the paddle on x (in cells), within the walls.
func (g *Game) MovePaddleTo(x float64) {
	g.paddle.X = FromFloat(x)
	g.clampPaddle()
	g.syncDocked()
}

func (g *Game) movePaddle(in core.InputFrame) {
	if in.HasPointer {
		g.paddle.X = FromFloat(in.PointerX)
	}
	if in.Has(core.ActionLeft) {
		g.paddle.X -= g.paddleStep
	}
	if in.Has(core.ActionRight) {
		g.paddle.X += g.paddleStep
	}
	g.clampPaddle()
	g.syncDocked()
}

func (g *Game) clampPaddle() {
	g.paddle.Clamp(ToFixed(g.field.Left), ToFixed(g.field.Right))
}

// syncDocked keeps docked balls resting on the paddle centre.
func (g *Game) syncDocked() {
	for _, b := range g.balls {
		if b.Docked {
			b.X = g.paddle.X
			b.Y = ToFixed(g.paddle.Y) - Scale/2
			b.VX, b.VY = 0, 0
		}
	}
}

// Fire shoots a projectile if the shooting paddle is active and the cooldown allows.
func (g *Game) Fire() bool {
	if g.state != StateActive || !g.effects.Active(PowerUpShootingPaddle) {
		return false
	}
	if g.tick-g.lastFire < g.fireCooldown {
		return false
	}
	g.shoot()
	return true
}

func (g *Game) autoFire() {
	if !g.effects.Active(PowerUpShootingPaddle) || g.tick < g.nextAutoFire {
		return
	}
	g.shoot()
	g.nextAutoFire = g.tick + g.fireEvery
}

func (g *Game) shoot() {
	g.shots = append(g.shots, &Projectile{
		X:  g.paddle.X,
		Y:  ToFixed(g.paddle.Y) - Scale,
		VY: -g.shotSpeed,
	})
	g.lastFire = g.tick
	g.deps.Cues.Play(core.CuePew)
}

// updateBalls moves every ball and handles losses.
func (g *Game) updateBalls() {
	mainLost := false
	kept := g.balls[:0]
	for _, b := range g.balls {
		if b.Docked {
			kept = append(kept, b)
			continue
		}
		if g.moveBall(b) {
			if b.Main {
				mainLost = true
			}
			continue
		}
		kept = append(kept, b)
	}
	g.balls = kept

	if mainLost {
		g.loseLife()
	}
}

// moveBall advances one ball in sub-cell steps. It reports whether the ball
// left the bottom of the playfield.
func (g *Game) moveBall(b *Ball) bool {
	steps := substeps(b.VX, b.VY)
	for range steps {
		prevX, prevY := b.X, b.Y
		b.X += b.VX.Div(steps)
		b.Y += b.VY.Div(steps)

		if g.field.Bounce(b) {
			return true
		}

		if g.paddle.Catch(b, prevY) {
			g.paddle.Rebound(b, g.cfg.Physics.MaxBounceAngle)
			g.deps.Cues.Play(core.CuePing)
			continue
		}

		if brick := g.wall.BrickAt(b.X, b.Y); brick != nil {
			deflect(b, brick, prevX, prevY)
			g.resolve(Collision{Kind: CollisionBrick, Ball: b, Brick: brick})
		}
	}
	return false
}

func (g *Game) updateProjectiles() {
	kept := g.shots[:0]
	for _, s := range g.shots {
		if g.moveProjectile(s) {
			kept = append(kept, s)
		}
	}
	g.shots = kept
}

// moveProjectile advances a shot. It reports whether the shot is still flying.
func (g *Game) moveProjectile(s *Projectile) bool {
	steps := substeps(0, s.VY)
	for range steps {
		s.Y += s.VY.Div(steps)
		if s.Y < ToFixed(g.field.Top) {
			return false
		}
		if brick := g.wall.BrickAt(s.X, s.Y); brick != nil {
			g.resolve(Collision{Kind: CollisionProjectile, Projectile: s, Brick: brick})
			return false
		}
	}
	return true
}

func (g *Game) updatePickups() {
	bottom := ToFixed(g.field.Bottom)
	kept := g.pickups[:0]
	for _, p := range g.pickups {
		if !p.Update(bottom) {
			continue
		}
		if g.pickupCaught(p) {
			g.resolve(Collision{Kind: CollisionPowerUp, PowerUp: p})
			continue
		}
		kept = append(kept, p)
	}
	g.pickups = kept
}

// pickupCaught reports whether a pickup reached the paddle row or the row above it.
func (g *Game) pickupCaught(p *PowerUp) bool {
	catch := g.paddle.Bounds()
	catch.Y--
	catch.H = 2
	return catch.Intersects(p.Bounds())
}

// resolve applies the outcome of one collision.
func (g *Game) resolve(c Collision) {
	switch c.Kind {
	case CollisionBrick, CollisionProjectile:
		g.hitBrick(c.Brick)
	case CollisionPowerUp:
		if t, ok := c.PowerUp.HandleCollection(); ok {
			g.applyPowerUp(t)
			g.deps.Cues.Play(core.CueChime)
			g.emit(core.EventPowerUpCollected, int(t))
		}
	}
}

func (g *Game) hitBrick(brick *Brick) {
	res := brick.Hit(g.rng)
	if res.Cue != core.CueNone {
		g.deps.Cues.Play(res.Cue)
	}
	if !res.Destroyed {
		return
	}

	g.score += res.Points
	g.bricksLeft--
	g.emit(core.EventBrickDestroyed, res.Points)

	if res.Drop {
		x, y := brick.Center()
		g.pickups = append(g.pickups, NewPowerUp(res.DropType, x, y, g.fallSpeed, g.missMargin))
	}
}

// applyPowerUp cancels any pending timer of the type, applies its effect and
// schedules a fresh expiry.
func (g *Game) applyPowerUp(t PowerUpType) {
	g.effects.Cancel(t)

	switch t {
	case PowerUpExtraLife:
		g.lives++
	case PowerUpShootingPaddle:
		g.nextAutoFire = g.tick + g.fireEvery
	case PowerUpSlowBall:
		g.effects.Cancel(PowerUpFastBall)
		g.setBallSpeed(g.baseSpeed.Scaled(g.cfg.PowerUps.SlowFactor))
	case PowerUpFastBall:
		g.effects.Cancel(PowerUpSlowBall)
		g.setBallSpeed(g.baseSpeed.Scaled(g.cfg.PowerUps.FastFactor))
	case PowerUpLargerPaddle:
		g.effects.Cancel(PowerUpSmallerPaddle)
		g.resizePaddle(g.paddle.Stage + 1)
	case PowerUpSmallerPaddle:
		g.effects.Cancel(PowerUpLargerPaddle)
		g.resizePaddle(g.paddle.Stage - 1)
	case PowerUpMiniBall:
		g.spawnMiniBalls()
	}

	if t.Timed() {
		g.effects.Schedule(t, g.tick+g.duration)
	}
	g.log.Debug("power-up applied", "type", t, "tick", g.tick)
}

func (g *Game) expireEffects() {
	for _, t := range g.effects.Expire(g.tick) {
		switch t {
		case PowerUpSlowBall, PowerUpFastBall:
			g.setBallSpeed(g.baseSpeed)
		case PowerUpLargerPaddle, PowerUpSmallerPaddle:
			g.resizePaddle(g.cfg.Paddle.DefaultStage)
		}
		g.emit(core.EventPowerUpExpired, int(t))
	}
}

// setBallSpeed changes the speed of every moving ball, keeping directions.
func (g *Game) setBallSpeed(speed Fixed) {
	g.ballSpeed = speed
	for _, b := range g.balls {
		if !b.Docked {
			b.SetSpeed(speed)
		}
	}
}

func (g *Game) resizePaddle(stage int) {
	g.paddle.SetStage(stage)
	g.clampPaddle()
	g.syncDocked()
}

// spawnMiniBalls adds balls at the main ball in random directions, each with
// at least the configured share of its speed pointing vertically.
func (g *Game) spawnMiniBalls() {
	var origin *Ball
	for _, b := range g.balls {
		if b.Main {
			origin = b
			break
		}
	}
	if origin == nil {
		return
	}

	speed := float64(g.baseSpeed)
	minVY := g.cfg.Physics.MinVertical * speed
	for range g.cfg.PowerUps.MiniBalls {
		rad := g.rng.Float64() * 2 * math.Pi
		vx := speed * math.Cos(rad)
		vy := speed * math.Sin(rad)
		if math.Abs(vy) < minVY {
			sign := -1.0
			if vy > 0 {
				sign = 1
			}
			vy = sign * minVY
			vx = math.Copysign(math.Sqrt(speed*speed-vy*vy), vx)
		}
		g.balls = append(g.balls, &Ball{
			X:  origin.X,
			Y:  origin.Y,
			VX: Fixed(math.Round(vx)),
			VY: Fixed(math.Round(vy)),
		})
	}
}

// loseLife handles the main ball leaving the playfield.
func (g *Game) loseLife() {
	g.lives--
	g.deps.Cues.Play(core.CueBeep)
	g.emit(core.EventLifeLost, g.lives)

	if g.lives <= 0 {
		g.gameOver()
		return
	}

	// Mini-balls go with the life; effects and pickups stay
	g.balls = []*Ball{{Main: true, Docked: true}}
	g.syncDocked()
}

func (g *Game) gameOver() {
	if g.state == StateGameOver {
		return
	}
	g.state = StateGameOver
	g.deps.Cues.Play(core.CueGameOver)

	high, err := g.deps.HighScores.SubmitScore(g.score)
	if err != nil {
		g.log.Warn("cannot save high score", "score", g.score, "err", err)
	}
	g.highScore = max(high, g.score)
	g.emit(core.EventGameOver, g.score)
	g.log.Info("game over", "score", g.score, "level", g.level)
}

// completeLevel moves on to the next level. The state guard keeps it from
// running twice for the same clear.
func (g *Game) completeLevel() {
	if g.state != StateActive {
		return
	}
	g.state = StateLevelComplete

	g.level++
	g.clearField()
	g.buildLevel()

	g.emit(core.EventLevelComplete, g.level)
	g.deps.Cues.Play(core.CueStart)
	g.state = StateActive
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lives:    g.lives,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// Phase returns the controller state name.
func (g *Game) Phase() string {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Level returns the current level number.
func (g *Game) Level() int { return g.level }

// HighScore returns the best score known to the game.
func (g *Game) HighScore() int { return max(g.highScore, g.score) }

// Tick returns the number of simulated ticks.
func (g *Game) Tick() int { return g.tick }

// BricksLeft returns the destructible bricks still standing.
func (g *Game) BricksLeft() int { return g.bricksLeft }

// Layout returns the generated layout of the current level.
func (g *Game) Layout() Layout { return g.layout }

// ActiveEffects returns the timed power-ups in effect with their remaining ticks.
func (g *Game) ActiveEffects() map[PowerUpType]int {
	out := make(map[PowerUpType]int)
	for _, t := range g.effects.Types() {
		out[t] = g.effects.Remaining(t, g.tick)
	}
	return out
}
