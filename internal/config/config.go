// Package config provides YAML-based game configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gunpong/internal/effects"
)

// Config contains every tunable of the simulation and the input layer.
type Config struct {
	Arena  ArenaConfig  `yaml:"arena"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Bullet BulletConfig `yaml:"bullet"`
	Timers TimersConfig `yaml:"timers"`
	Match  MatchConfig  `yaml:"match"`
	AI     AIConfig     `yaml:"ai"`
	Input  InputConfig  `yaml:"input"`
}

// ArenaConfig defines the playfield size in arena units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines paddle geometry and speed.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`  // Units per tick
	Margin float64 `yaml:"margin"` // Gap between arena edge and paddle
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"` // Per-axis speed at serve
}

// BulletConfig defines projectiles.
type BulletConfig struct {
	Speed        float64 `yaml:"speed"`
	HitTolerance float64 `yaml:"hit_tolerance"` // Horizontal slack around the paddle face
}

// TimersConfig defines cooldown and freeze durations.
type TimersConfig struct {
	GunCooldown time.Duration `yaml:"gun_cooldown"`
	Freeze      time.Duration `yaml:"freeze"`
	Rearm       string        `yaml:"rearm"`        // "supersede" or "legacy"
	PauseTimers bool          `yaml:"pause_timers"` // Stop timers while paused
}

// MatchConfig defines match rules.
type MatchConfig struct {
	WinScore int `yaml:"win_score"`
}

// AIConfig defines the right-paddle heuristic.
type AIConfig struct {
	SpeedFactor float64 `yaml:"speed_factor"` // Fraction of paddle speed
	Jitter      float64 `yaml:"jitter"`       // Max aim error either side
	DeadZone    float64 `yaml:"dead_zone"`    // No movement within this distance
}

// InputConfig defines terminal key handling.
type InputConfig struct {
	HoldWindow time.Duration `yaml:"hold_window"`
}

// RearmPolicy returns the parsed timer re-arm policy.
func (c Config) RearmPolicy() effects.Policy {
	p, err := effects.ParsePolicy(c.Timers.Rearm)
	if err != nil {
		return effects.PolicySupersede
	}
	return p
}

// Validate checks that the configuration describes a playable match.
func (c Config) Validate() error {
	var errs []error

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, fmt.Errorf("paddle size must be positive, got %vx%v", c.Paddle.Width, c.Paddle.Height))
	}
	if c.Paddle.Height >= c.Arena.Height {
		errs = append(errs, fmt.Errorf("paddle height %v must be less than arena height %v", c.Paddle.Height, c.Arena.Height))
	}
	if c.Paddle.Margin < 0 || 2*(c.Paddle.Margin+c.Paddle.Width) >= c.Arena.Width {
		errs = append(errs, fmt.Errorf("paddle margin %v does not fit the arena", c.Paddle.Margin))
	}
	if c.Paddle.Speed <= 0 {
		errs = append(errs, errors.New("paddle speed must be positive"))
	}
	if c.Ball.Radius <= 0 || c.Ball.Speed <= 0 {
		errs = append(errs, errors.New("ball radius and speed must be positive"))
	}
	if c.Bullet.Speed <= 0 || c.Bullet.HitTolerance < 0 {
		errs = append(errs, errors.New("bullet speed must be positive and hit tolerance non-negative"))
	}
	if c.Timers.GunCooldown <= 0 || c.Timers.Freeze <= 0 {
		errs = append(errs, errors.New("gun cooldown and freeze durations must be positive"))
	}
	if _, err := effects.ParsePolicy(c.Timers.Rearm); err != nil {
		errs = append(errs, err)
	}
	if c.Match.WinScore < 1 {
		errs = append(errs, fmt.Errorf("win score must be at least 1, got %d", c.Match.WinScore))
	}
	if c.AI.SpeedFactor <= 0 || c.AI.Jitter < 0 || c.AI.DeadZone < 0 {
		errs = append(errs, errors.New("ai speed factor must be positive, jitter and dead zone non-negative"))
	}
	if c.Input.HoldWindow < 0 {
		errs = append(errs, errors.New("input hold window must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
