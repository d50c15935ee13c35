package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	t.Parallel()

	var mode AuthMode
	assert.NoError(t, mode.UnmarshalText([]byte("OAuth")))
	assert.Equal(t, AuthModeOAuth, mode)

	assert.NoError(t, mode.UnmarshalText([]byte("mock")))
	assert.Equal(t, AuthModeMock, mode)

	assert.Error(t, mode.UnmarshalText([]byte("saml")))
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	t.Parallel()

	cfg := HTTPConfig{ThrottleRPS: -5, ThrottleBurst: 0}
	cfg.Sanitize()
	assert.Equal(t, float64(20), cfg.ThrottleRPS)
	assert.Equal(t, 20, cfg.ThrottleBurst)
}

func TestLimitsConfig_Sanitize(t *testing.T) {
	t.Parallel()

	cfg := LimitsConfig{}
	cfg.Sanitize()
	assert.Equal(t, 5*time.Minute, cfg.PresenceTTL)
	assert.Equal(t, 3, cfg.ResetMaxRequests)
	assert.Equal(t, 15*time.Minute, cfg.ResetWindow)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
