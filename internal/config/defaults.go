package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gunpong.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/gunpong.yaml.
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Width:  800,
			Height: 500,
		},
		Paddle: PaddleConfig{
			Width:  12,
			Height: 80,
			Speed:  10,
			Margin: 20,
		},
		Ball: BallConfig{
			Radius: 10,
			Speed:  6,
		},
		Bullet: BulletConfig{
			Speed:        8,
			HitTolerance: 5,
		},
		Timers: TimersConfig{
			GunCooldown: 3 * time.Second,
			Freeze:      5 * time.Second,
			Rearm:       "supersede",
			PauseTimers: false,
		},
		Match: MatchConfig{
			WinScore: 5,
		},
		AI: AIConfig{
			SpeedFactor: 0.9,
			Jitter:      10,
			DeadZone:    10,
		},
		Input: InputConfig{
			HoldWindow: 180 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
