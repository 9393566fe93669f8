package breakout

// Effects tracks the expiry tick of each active timed power-up.
// Expiry is polled against the game tick, so a paused game holds every timer.
type Effects struct {
	until  [powerUpTypeCount]int
	active [powerUpTypeCount]bool
}

// NewEffects creates an empty effect set.
func NewEffects() *Effects {
	return &Effects{}
}

// Schedule sets the expiry of a type, replacing any pending one.
// It reports whether an earlier timer was replaced.
func (e *Effects) Schedule(t PowerUpType, untilTick int) bool {
	if !valid(t) {
		return false
	}
	replaced := e.active[t]
	e.until[t] = untilTick
	e.active[t] = true
	return replaced
}

// Cancel drops the timer of a type. It reports whether one was pending.
func (e *Effects) Cancel(t PowerUpType) bool {
	if !valid(t) || !e.active[t] {
		return false
	}
	e.active[t] = false
	e.until[t] = 0
	return true
}

// Active reports whether a type has a pending timer.
func (e *Effects) Active(t PowerUpType) bool {
	return valid(t) && e.active[t]
}

// Until returns the expiry tick of a type, 0 if it is not active.
func (e *Effects) Until(t PowerUpType) int {
	if !e.Active(t) {
		return 0
	}
	return e.until[t]
}

// Remaining returns the ticks left for a type at the given tick.
func (e *Effects) Remaining(t PowerUpType, tick int) int {
	if !e.Active(t) {
		return 0
	}
	return max(0, e.until[t]-tick)
}

// Expire removes and returns every type whose expiry tick has been reached,
// in type order.
func (e *Effects) Expire(tick int) []PowerUpType {
	var expired []PowerUpType
	for t := range powerUpTypeCount {
		if e.active[t] && e.until[t] <= tick {
			e.active[t] = false
			e.until[t] = 0
			expired = append(expired, t)
		}
	}
	return expired
}

// Types returns the active types in type order.
func (e *Effects) Types() []PowerUpType {
	var types []PowerUpType
	for t := range powerUpTypeCount {
		if e.active[t] {
			types = append(types, t)
		}
	}
	return types
}

// Clear cancels every timer.
func (e *Effects) Clear() {
	*e = Effects{}
}

func valid(t PowerUpType) bool {
	return t >= 0 && t < powerUpTypeCount
}
