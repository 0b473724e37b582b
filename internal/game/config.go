package game

import (
	"os"
	"strconv"
	"time"

	"fireworks/internal/firework"
)

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Fireworks"
	CallToAction = "Fireworks - click or drag to launch"
)

// Frame timing.
const MaxFrameDelta = 0.1 // seconds; longer stalls are clamped

// Bloom.
const (
	BloomThreshold = 0.75
	BloomStrength  = 1.1
	BloomPasses    = 4
	Exposure       = 1.0
)

// Audio.
const SFXVolume = 0.58

// Camera shake on launch.
const (
	ShakeIntensity = 0.08
	ShakeDuration  = 0.18
)

// Settings are startup options read from the environment.
type Settings struct {
	Seed       uint64
	MaxSystems int
	Mute       bool
	Debug      bool
}

// LoadSettings reads FIREWORKS_SEED, FIREWORKS_MAX_SYSTEMS, FIREWORKS_MUTE
// and FIREWORKS_DEBUG. Malformed values fall back to defaults.
func LoadSettings() Settings {
	s := Settings{
		Seed:       uint64(time.Now().UnixNano()),
		MaxSystems: firework.DefaultMaxSystems,
	}
	if v := os.Getenv("FIREWORKS_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			s.Seed = n
		}
	}
	if v := os.Getenv("FIREWORKS_MAX_SYSTEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			s.MaxSystems = n
		}
	}
	s.Mute = envBool("FIREWORKS_MUTE")
	s.Debug = envBool("FIREWORKS_DEBUG")
	return s
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
