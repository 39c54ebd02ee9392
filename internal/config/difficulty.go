package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// Difficulty names one of the preset tuning tiers.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every tier in increasing order of difficulty.
var Difficulties = []Difficulty{Easy, Medium, Hard}

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidProfile    = errors.New("invalid difficulty profile")
)

// ParseDifficulty maps a case-insensitive name onto a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Profile is the tuning record of one difficulty tier. It is selected
// before a round starts and never changes during the round.
type Profile struct {
	TimerSeconds        int     `yaml:"timerSeconds"`
	ParticleCount       int     `yaml:"particleCount"`
	FireCooldownMs      int     `yaml:"fireCooldownMs"`
	RegenerationDelayMs int     `yaml:"regenerationDelayMs"`
	BulletRadius        float64 `yaml:"bulletRadius"`
}

// FireCooldown returns the minimum time between two shots.
func (p Profile) FireCooldown() time.Duration {
	return time.Duration(p.FireCooldownMs) * time.Millisecond
}

// RegenerationDelay returns the quiet time after the last hit before
// ejected particles start drifting home.
func (p Profile) RegenerationDelay() time.Duration {
	return time.Duration(p.RegenerationDelayMs) * time.Millisecond
}

// Validate rejects profiles the simulation cannot run correctly.
func (p Profile) Validate() error {
	switch {
	case p.TimerSeconds <= 0:
		return fmt.Errorf("%w: timerSeconds must be positive, got %d", ErrInvalidProfile, p.TimerSeconds)
	case p.ParticleCount <= 0:
		return fmt.Errorf("%w: particleCount must be positive, got %d", ErrInvalidProfile, p.ParticleCount)
	case p.FireCooldownMs <= 0:
		return fmt.Errorf("%w: fireCooldownMs must be positive, got %d", ErrInvalidProfile, p.FireCooldownMs)
	case p.RegenerationDelayMs < 0:
		return fmt.Errorf("%w: regenerationDelayMs must not be negative, got %d", ErrInvalidProfile, p.RegenerationDelayMs)
	case p.BulletRadius <= 0:
		return fmt.Errorf("%w: bulletRadius must be positive, got %g", ErrInvalidProfile, p.BulletRadius)
	case p.BulletRadius+ParticleRadius > GridCellSize:
		// The 3x3 grid query would miss collisions spanning more than one cell.
		return fmt.Errorf("%w: bulletRadius %g exceeds grid cell %g", ErrInvalidProfile, p.BulletRadius, GridCellSize-ParticleRadius)
	}
	return nil
}

// Profiles holds one profile per difficulty tier.
type Profiles map[Difficulty]Profile

// Get returns the profile for d.
func (ps Profiles) Get(d Difficulty) (Profile, error) {
	p, ok := ps[d]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return p, nil
}

// Validate checks that every tier is present and valid.
func (ps Profiles) Validate() error {
	for _, d := range Difficulties {
		p, ok := ps[d]
		if !ok {
			return fmt.Errorf("%w: missing tier %q", ErrInvalidProfile, d)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("tier %q: %w", d, err)
		}
	}
	return nil
}

// profileOverride mirrors Profile with optional fields so a file can
// re-tune a single key without restating the whole tier.
type profileOverride struct {
	TimerSeconds        *int     `yaml:"timerSeconds"`
	ParticleCount       *int     `yaml:"particleCount"`
	FireCooldownMs      *int     `yaml:"fireCooldownMs"`
	RegenerationDelayMs *int     `yaml:"regenerationDelayMs"`
	BulletRadius        *float64 `yaml:"bulletRadius"`
}

func (o profileOverride) apply(p Profile) Profile {
	if o.TimerSeconds != nil {
		p.TimerSeconds = *o.TimerSeconds
	}
	if o.ParticleCount != nil {
		p.ParticleCount = *o.ParticleCount
	}
	if o.FireCooldownMs != nil {
		p.FireCooldownMs = *o.FireCooldownMs
	}
	if o.RegenerationDelayMs != nil {
		p.RegenerationDelayMs = *o.RegenerationDelayMs
	}
	if o.BulletRadius != nil {
		p.BulletRadius = *o.BulletRadius
	}
	return p
}

// DefaultProfiles returns the built-in easy/medium/hard profiles.
func DefaultProfiles() Profiles {
	ps, err := ParseProfiles(nil, defaultProfilesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded profiles.yaml: %v", err))
	}
	return ps
}

// ParseProfiles overlays the YAML document data on base (nil means an
// empty set) and validates the result. Unknown tiers or keys are errors.
func ParseProfiles(base Profiles, data []byte) (Profiles, error) {
	out := make(Profiles, len(Difficulties))
	for d, p := range base {
		out[d] = p
	}

	var overrides map[Difficulty]profileOverride
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	for d, o := range overrides {
		if _, err := ParseDifficulty(string(d)); err != nil {
			return nil, err
		}
		out[d] = o.apply(out[d])
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadProfiles reads a YAML file and overlays it on the defaults.
// An empty path returns the defaults.
func LoadProfiles(path string) (Profiles, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return ParseProfiles(DefaultProfiles(), data)
}
