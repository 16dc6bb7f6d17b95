package config

import "time"

const (
	minPageSize = 1
	maxPageSize = 100
)

// UIConfig tunes list views and notifications.
type UIConfig struct {
	PageSize       int           `env:"PAGE_SIZE"        envDefault:"10"`
	NotifyAutoHide time.Duration `env:"NOTIFY_AUTO_HIDE" envDefault:"6s"`
}

// Sanitize clamps the page size to 1..100 and restores the auto-hide default.
func (c *UIConfig) Sanitize() {
	if c.PageSize < minPageSize {
		c.PageSize = minPageSize
	}
	if c.PageSize > maxPageSize {
		c.PageSize = maxPageSize
	}
	if c.NotifyAutoHide <= 0 {
		c.NotifyAutoHide = 6 * time.Second
	}
}
