package core

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventBrickDestroyed EventKind = iota
	EventPowerUpCollected
	EventPowerUpExpired
	EventLifeLost
	EventLevelComplete
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBrickDestroyed:
		return "BrickDestroyed"
	case EventPowerUpCollected:
		return "PowerUpCollected"
	case EventPowerUpExpired:
		return "PowerUpExpired"
	case EventLifeLost:
		return "LifeLost"
	case EventLevelComplete:
		return "LevelComplete"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is a single occurrence reported in a StepResult.
// Value carries the kind-specific payload: points, power-up type, new level or final score.
type Event struct {
	Kind  EventKind
	Value int
}

// Cue names a short sound effect the host should play.
type Cue string

// Sound cues used by the game.
const (
	CueNone     Cue = ""
	CueBeep     Cue = "beep"     // life lost
	CueChime    Cue = "chime"    // power-up collected
	CueCrunch   Cue = "crunch"   // brick destroyed
	CueGameOver Cue = "gameover" // game over
	CuePew      Cue = "pew"      // projectile fired
	CuePing     Cue = "ping"     // brick damaged or deflected
	CueStart    Cue = "start"    // round start
)

// AllCues lists every cue in a stable order.
func AllCues() []Cue {
	return []Cue{CueBeep, CueChime, CueCrunch, CueGameOver, CuePew, CuePing, CueStart}
}
