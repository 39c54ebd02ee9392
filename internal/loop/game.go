// Package loop drives a round: the Game lifecycle, the renderer sink and
// the terminal run loop that multiplexes frames, the countdown and input.
package loop

import (
	"fmt"
	"iter"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/object"
	"github.com/tomz197/moonshot/internal/physics"
)

// Game owns every piece of round state. It is not safe for concurrent use;
// a single goroutine drives it through StartRound, OnFrame, OnTick1Hz, Fire
// and Restart.
type Game struct {
	bounds object.Bounds
	rng    *rand.Rand
	grid   *physics.SpatialGrid

	profile     config.Profile
	id          uuid.UUID
	round       *object.Round
	field       *object.Field
	projectiles *object.ProjectileSet
	user        *object.User
	input       object.Input
	timer       int

	started   bool
	hasFrame  bool
	lastFrame time.Duration
}

// NewGame creates a game on the standard play-field. rng seeds particle
// placement; nil uses a time-seeded source.
func NewGame(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		bounds: object.Bounds{Width: config.FieldWidth, Height: config.FieldHeight},
		rng:    rng,
		grid:   physics.NewSpatialGrid(config.FieldWidth, config.FieldHeight, config.GridCellSize),
	}
}

// StartRound validates p and replaces all round state with a fresh round
// built from it. An invalid profile leaves the game untouched.
func (g *Game) StartRound(p config.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	g.profile = p
	g.reset()
	return nil
}

// Restart starts a fresh round with the current profile. It does nothing
// before the first StartRound.
func (g *Game) Restart() {
	if !g.started {
		return
	}
	g.reset()
}

func (g *Game) reset() {
	g.id = uuid.New()
	g.round = object.NewRound(g.profile.RegenerationDelay())
	g.field = object.NewField(g.profile.ParticleCount, g.bounds, g.rng)
	g.projectiles = object.NewProjectileSet(g.profile.BulletRadius)
	g.user = object.NewUser(g.bounds, g.profile.FireCooldown())
	g.input = object.Input{}
	g.timer = g.profile.TimerSeconds
	g.grid.Clear()
	g.started = true
	g.hasFrame = false
	g.lastFrame = 0
}

// SetInput stores the key state used by the next frame.
func (g *Game) SetInput(in object.Input) {
	g.input = in
}

// Fire spawns a projectile from the ship if the round is running and the
// cooldown allows it.
func (g *Game) Fire() bool {
	if !g.started {
		return false
	}
	return g.projectiles.Spawn(g.round, g.user)
}

// OnFrame advances the simulation to timestamp ts. The first frame of a
// round only establishes the time base; timestamps that go backwards
// count as a zero delta. Once the round is over the simulation is frozen.
//
// A tick indexes the active particles, moves the ship, resolves
// projectile hits and then updates the particles, so a hit recorded in a
// tick holds back regeneration in that same tick.
func (g *Game) OnFrame(ts time.Duration) {
	if !g.started {
		return
	}

	var delta time.Duration
	if g.hasFrame {
		delta = max(ts-g.lastFrame, 0)
	}
	g.hasFrame = true
	g.lastFrame = ts

	if !g.round.Running() {
		return
	}
	g.round.Advance(delta)

	ctx := object.UpdateContext{
		Delta:  delta,
		Input:  g.input,
		Bounds: g.bounds,
		Round:  g.round,
	}

	g.field.Rebuild(g.grid)
	g.user.Update(ctx)
	g.projectiles.Advance(ctx, g.grid, g.field)
	if g.round.Running() {
		g.field.Update(ctx)
	}
	g.checkOutcome()
}

// OnTick1Hz counts the round timer down by one second. Reaching zero
// loses the round.
func (g *Game) OnTick1Hz() {
	if !g.started || !g.round.Running() {
		return
	}
	g.timer--
	if g.timer <= 0 {
		g.timer = 0
		g.round.Conclude(object.Lost)
		g.projectiles.Clear()
	}
}

// checkOutcome wins a running round whose moon is gone and drops every
// projectile once the round is over.
func (g *Game) checkOutcome() {
	if g.field.ActiveCount() == 0 {
		g.round.Conclude(object.Won)
	}
	if !g.round.Running() {
		g.projectiles.Clear()
	}
}

// Shapes yields everything to draw: particles, then the ship, then
// projectiles.
func (g *Game) Shapes() iter.Seq[object.Shape] {
	return func(yield func(object.Shape) bool) {
		if !g.started {
			return
		}
		for _, d := range []object.Drawable{g.field, g.user, g.projectiles} {
			for s := range d.Shapes() {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Timer returns the seconds left on the countdown.
func (g *Game) Timer() int {
	return g.timer
}

// Outcome returns the state of the current round.
func (g *Game) Outcome() object.Outcome {
	if !g.started {
		return object.Running
	}
	return g.round.Outcome()
}

// RoundID identifies the current round in logs.
func (g *Game) RoundID() uuid.UUID {
	return g.id
}

// Profile returns the profile the current round was built from.
func (g *Game) Profile() config.Profile {
	return g.profile
}

// Remaining returns the number of particles still part of the moon.
func (g *Game) Remaining() int {
	if !g.started {
		return 0
	}
	return g.field.ActiveCount()
}

// Projectiles returns the number of projectiles in flight.
func (g *Game) Projectiles() int {
	if !g.started {
		return 0
	}
	return g.projectiles.Len()
}

// HUD returns the scalar state shown next to the play-field.
func (g *Game) HUD() HUD {
	return HUD{
		Timer:     g.Timer(),
		Remaining: g.Remaining(),
		Total:     g.profile.ParticleCount,
		Outcome:   g.Outcome(),
	}
}
