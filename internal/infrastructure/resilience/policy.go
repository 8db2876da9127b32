package resilience

import "time"

// Config tunes the retry loop and the per-operation circuit breakers
// shared by every outbound client.
type Config struct {
	MaxAttempts    int
	BaseBackoff    time.Duration
	BackoffCeiling time.Duration
	BackoffFactor  float64

	BreakerEnabled    bool
	BreakerWindowMin  uint32
	BreakerTripRatio  float64
	BreakerCooldown   time.Duration
	BreakerProbeCalls uint32
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseBackoff:    100 * time.Millisecond,
		BackoffCeiling: 400 * time.Millisecond,
		BackoffFactor:  2.0,

		BreakerEnabled:    true,
		BreakerWindowMin:  10,
		BreakerTripRatio:  0.5,
		BreakerCooldown:   30 * time.Second,
		BreakerProbeCalls: 2,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = def.BaseBackoff
	}
	if c.BackoffCeiling < c.BaseBackoff {
		c.BackoffCeiling = c.BaseBackoff
	}
	if c.BackoffFactor < 1.0 {
		c.BackoffFactor = def.BackoffFactor
	}
	if c.BreakerWindowMin == 0 {
		c.BreakerWindowMin = def.BreakerWindowMin
	}
	if c.BreakerTripRatio <= 0 || c.BreakerTripRatio > 1 {
		c.BreakerTripRatio = def.BreakerTripRatio
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = def.BreakerCooldown
	}
	if c.BreakerProbeCalls == 0 {
		c.BreakerProbeCalls = def.BreakerProbeCalls
	}
	return c
}
