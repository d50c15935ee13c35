package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	// Used to build the OAuth callback URL.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// SecureCookies marks cookies Secure. Enable behind TLS.
	SecureCookies bool `env:"HTTP_SECURE_COOKIES" envDefault:"false"`

	// ThrottleEnabled turns on the per-client request throttle.
	ThrottleEnabled bool `env:"HTTP_THROTTLE_ENABLED" envDefault:"true"`

	// ThrottleRPS is the sustained request rate allowed per client IP.
	ThrottleRPS float64 `env:"HTTP_THROTTLE_RPS" envDefault:"20"`

	// ThrottleBurst is the burst size allowed per client IP.
	ThrottleBurst int `env:"HTTP_THROTTLE_BURST" envDefault:"40"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ThrottleRPS <= 0 {
		h.ThrottleRPS = 20
	}
	if h.ThrottleBurst < 1 {
		h.ThrottleBurst = int(h.ThrottleRPS)
	}
}
