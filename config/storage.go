package config

import "strings"

// Token store backends.
const (
	TokenBackendFile  = "file"
	TokenBackendRedis = "redis"
)

// DefaultTokenStorageKey is the fixed key the token is stored under.
const DefaultTokenStorageKey = "userToken"

// TokenConfig selects where the bearer token is persisted.
type TokenConfig struct {
	Backend string `env:"TOKEN_STORE"       envDefault:"file"`
	// File overrides the credentials file; empty uses the per-user config directory.
	File       string `env:"TOKEN_FILE"`
	StorageKey string `env:"TOKEN_STORAGE_KEY" envDefault:"userToken"`
}

// Sanitize normalizes the backend name and restores defaults for blank values.
func (c *TokenConfig) Sanitize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend != TokenBackendRedis {
		c.Backend = TokenBackendFile
	}
	c.File = strings.TrimSpace(c.File)
	if c.StorageKey = strings.TrimSpace(c.StorageKey); c.StorageKey == "" {
		c.StorageKey = DefaultTokenStorageKey
	}
}

// UsesRedis reports whether tokens live in Redis.
func (c *TokenConfig) UsesRedis() bool { return c.Backend == TokenBackendRedis }

// RedisConfig contains Redis configuration for the shared token store.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	KeyPrefix          string   `env:"KEY_PREFIX"           envDefault:"console:token:"`
	SentinelNodes      []string `env:"SENTINEL_NODES"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize clamps the database index and trims addresses.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	if c.DB < 0 {
		c.DB = 0
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		c.KeyPrefix = "console:token:"
	}
	c.SentinelNodes = trimAll(c.SentinelNodes)
	c.ClusterNodes = trimAll(c.ClusterNodes)
}

func trimAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
