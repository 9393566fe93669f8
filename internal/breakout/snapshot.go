package breakout

// Snapshot contains the game state for replay checks and determinism tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	State      string
	Score      int
	Lives      int
	Level      int
	BricksLeft int
	BallSpeed  int

	PaddleX     int
	PaddleStage int

	// Each ball is 6 ints: X, Y, VX, VY, Main, Docked
	BallData []int

	// Each pickup is 3 ints: Type, X, Y
	PickupData []int

	// Each shot is 2 ints: X, Y
	ShotData []int

	// Each active effect is 2 ints: Type, UntilTick
	EffectData []int

	// Each brick is 3 ints: Row, Col, Health (-1 once destroyed, 0 for indestructible)
	BrickData []int

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	ballData := make([]int, 0, len(g.balls)*6)
	for _, b := range g.balls {
		ballData = append(ballData, int(b.X), int(b.Y), int(b.VX), int(b.VY), boolInt(b.Main), boolInt(b.Docked))
	}

	pickupData := make([]int, 0, len(g.pickups)*3)
	for _, p := range g.pickups {
		pickupData = append(pickupData, int(p.Type), int(p.X), int(p.Y))
	}

	shotData := make([]int, 0, len(g.shots)*2)
	for _, s := range g.shots {
		shotData = append(shotData, int(s.X), int(s.Y))
	}

	var effectData []int
	for _, t := range g.effects.Types() {
		effectData = append(effectData, int(t), g.effects.Until(t))
	}

	var brickData []int
	if g.wall != nil {
		brickData = make([]int, 0, len(g.wall.Bricks)*3)
		for _, b := range g.wall.Bricks {
			health := 0
			switch {
			case b.Destroyed():
				health = -1
			case !b.IsIndestructible():
				health = int(b.Health)
			}
			brickData = append(brickData, b.Row, b.Col, health)
		}
	}

	var rngState uint64
	if g.rng != nil {
		rngState = g.rng.State()
	}

	snap := Snapshot{
		Tick:       uint64(g.tick), //#nosec G115 -- tick count is always positive
		State:      g.state,
		Score:      g.score,
		Lives:      g.lives,
		Level:      g.level,
		BricksLeft: g.bricksLeft,
		BallSpeed:  int(g.ballSpeed),
		BallData:   ballData,
		PickupData: pickupData,
		ShotData:   shotData,
		EffectData: effectData,
		BrickData:  brickData,
		RNGState:   rngState,
	}
	if g.paddle != nil {
		snap.PaddleX = int(g.paddle.X)
		snap.PaddleStage = g.paddle.Stage
	}
	return snap
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, v := range []int{
		snap.Score, snap.Lives, snap.Level, snap.BricksLeft, snap.BallSpeed,
		snap.PaddleX, snap.PaddleStage,
		len(snap.BallData), len(snap.PickupData), len(snap.ShotData), len(snap.EffectData),
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, data := range [][]int{snap.BallData, snap.PickupData, snap.ShotData, snap.EffectData, snap.BrickData} {
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}

	h = h*31 + snap.RNGState
	return h
}
