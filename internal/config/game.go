package config

import (
	"math"
	"time"
)

// Play-field dimensions in logical units. Rendering scales to the terminal.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Moon cluster
const (
	ClusterRadius     = 100.0 // Radius of the disc particles start in and regenerate toward
	ParticleRadius    = 2.0
	ParticleFriction  = 20.0  // Units per second squared, opposes velocity
	EjectSpeedSq      = 100.0 // Below this speed² an outside particle is ejected
	RegenerationRate  = 1.0   // Drift speed toward center in units per second
	RegeneratedDistSq = 1.0   // Within this distance² of center a particle reactivates
	ParticleColor     = "#ccc"
)

// Projectiles
const (
	ProjectileSpeed = 500.0 // Units per second
	ProjectileColor = "#ff0"
)

// Player
const (
	PlayerSize          = 20.0
	PlayerRotationSpeed = math.Pi // Radians per second
	PlayerMoveSpeed     = 200.0   // Units per second
	PlayerSpawnOffset   = 50.0    // Distance of the spawn point from the bottom edge
	PlayerColor         = "#f00"
)

// Spatial grid cell size; must be >= the largest projectile + particle radius sum.
const GridCellSize = 50.0

// Loop timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	CountdownPeriod = time.Second
)
