package object

import "time"

// Outcome classifies a round.
type Outcome uint8

const (
	Running Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round is over.
func (o Outcome) Terminal() bool {
	return o == Won || o == Lost
}

// Round is the mutable state shared by every component during a round:
// the round clock, the time of the most recent hit anywhere in the field,
// and the outcome. It is written only from the simulation goroutine.
type Round struct {
	Now               time.Duration // Sum of frame deltas since the round started
	LastHit           time.Duration // Round clock at the most recent projectile hit
	RegenerationDelay time.Duration

	outcome Outcome
	hit     bool
}

// NewRound creates a running round at time zero.
func NewRound(regenerationDelay time.Duration) *Round {
	return &Round{RegenerationDelay: regenerationDelay}
}

// Outcome returns the current outcome.
func (r *Round) Outcome() Outcome {
	return r.outcome
}

// Running reports whether the simulation may still mutate.
func (r *Round) Running() bool {
	return r.outcome == Running
}

// Conclude moves a running round to the terminal outcome o. It returns
// false, changing nothing, when the round is already over or o is not
// terminal.
func (r *Round) Conclude(o Outcome) bool {
	if !r.Running() || !o.Terminal() {
		return false
	}
	r.outcome = o
	return true
}

// Advance moves the round clock forward.
func (r *Round) Advance(d time.Duration) {
	if d > 0 {
		r.Now += d
	}
}

// RecordHit restarts the shared regeneration clock.
func (r *Round) RecordHit() {
	r.LastHit = r.Now
	r.hit = true
}

// RegenerationDue reports whether strictly more than the regeneration
// delay has passed since the last hit. Before the first hit of the round
// it is always due.
func (r *Round) RegenerationDue() bool {
	return !r.hit || r.Now-r.LastHit > r.RegenerationDelay
}
