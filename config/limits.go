package config

import "time"

// LimitsConfig contains presence tracking and rate limit configuration.
type LimitsConfig struct {
	// PresenceTTL is how long a visitor stays "active" after their last heartbeat.
	PresenceTTL time.Duration `env:"PRESENCE_TTL" envDefault:"5m"`

	// ResetMaxRequests is how many password reset requests one requester may
	// make per window.
	ResetMaxRequests int `env:"RESET_MAX_REQUESTS" envDefault:"3"`

	// ResetWindow is the fixed window for the reset limiter.
	ResetWindow time.Duration `env:"RESET_WINDOW" envDefault:"15m"`

	// ResetTokenTTL is how long an issued reset token stays valid.
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`
}

// Sanitize applies guardrails to limit configuration values.
func (l *LimitsConfig) Sanitize() {
	if l.PresenceTTL <= 0 {
		l.PresenceTTL = 5 * time.Minute
	}
	if l.ResetMaxRequests < 1 {
		l.ResetMaxRequests = 3
	}
	if l.ResetWindow <= 0 {
		l.ResetWindow = 15 * time.Minute
	}
	if l.ResetTokenTTL <= 0 {
		l.ResetTokenTTL = time.Hour
	}
}
