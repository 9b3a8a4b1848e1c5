package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// CacheConfig configures the Redis response cache used on anonymous listing
// endpoints. Entries are never invalidated explicitly; TTL bounds staleness.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED" env-default:"true"`
	Methods      []string      `env:"CACHE_METHODS" env-default:"GET" env-separator:","`
	TTL          time.Duration `env:"CACHE_TTL" env-default:"30s"`
	Prefix       string        `env:"CACHE_PREFIX" env-default:"cache"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES" env-default:"1048576"`
}

// LoadCacheConfig reads CacheConfig. Method names are upper-cased.
func LoadCacheConfig() (CacheConfig, error) {
	var cc CacheConfig
	if err := cleanenv.ReadEnv(&cc); err != nil {
		return CacheConfig{}, err
	}
	methods := cc.Methods[:0]
	for _, m := range cc.Methods {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			methods = append(methods, m)
		}
	}
	cc.Methods = methods
	if cc.TTL <= 0 {
		cc.TTL = 30 * time.Second
	}
	return cc, nil
}

// Cacheable reports whether responses to the given HTTP method are cached.
func (cc CacheConfig) Cacheable(method string) bool {
	for _, m := range cc.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
