package cli

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/ekistations/pkg/ekidata"
	apperrors "github.com/matzehuels/ekistations/pkg/errors"
	"github.com/matzehuels/ekistations/pkg/stations"
)

// Config is the contents of config.toml. Flags override every field.
type Config struct {
	BaseURL     string      `toml:"base_url"`
	Output      string      `toml:"output"`
	Concurrency int         `toml:"concurrency"` // 0 = unbounded
	Timeout     duration    `toml:"timeout"`     // 0 = no client timeout
	UserAgent   string      `toml:"user_agent"`
	Cache       CacheConfig `toml:"cache"`
}

// CacheConfig selects and tunes the HTTP response cache.
type CacheConfig struct {
	TTL      duration `toml:"ttl"`       // 0 = caching disabled
	Dir      string   `toml:"dir"`       // default $XDG_CACHE_HOME/ekistations
	RedisURL string   `toml:"redis_url"` // use Redis instead of files when set
}

// duration decodes TOML strings such as "30s" or "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() Config {
	return Config{
		BaseURL:   ekidata.DefaultBaseURL,
		Output:    stations.DefaultOutput,
		UserAgent: userAgent(),
	}
}

// loadConfig reads the config file at path on top of the defaults.
//
// An empty path means the default location, where a missing file is not an
// error. A path given explicitly must exist.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("Unknown config key", "key", key.String(), "file", path)
	}
	logger.Debug("Loaded config", "file", path)
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a crawl.
func (c Config) Validate() error {
	if err := apperrors.ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}
	if err := apperrors.ValidateOutputPath(c.Output); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Timeout.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "timeout must not be negative, got %s", c.Timeout)
	}
	if c.Cache.TTL.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Cache.RedisURL != "" && !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache redis_url must start with redis:// or rediss://")
	}
	return nil
}
