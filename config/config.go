package config

// AppConfig is the console configuration composed from the per-concern files:
//   - api.go: backend address and HTTP client behavior
//   - storage.go: token persistence (file or Redis)
//   - ui.go: list paging and notification timing
//   - observability.go: logging, StatsD metrics, OTLP tracing
//
// Values are loaded from environment variables with github.com/caarlos0/env.
type AppConfig struct {
	API   APIConfig
	Token TokenConfig
	Redis RedisConfig `envPrefix:"REDIS_"`
	UI    UIConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Token.Sanitize()
	c.Redis.Sanitize()
	c.UI.Sanitize()
	c.Observability.Sanitize()
}
