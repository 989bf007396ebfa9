package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// duration wraps time.Duration so config files can say "5m" or "30s";
// yaml.v3 has no native decoding for duration strings.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = duration(v)
	return nil
}

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally onto the flag namespace.
type FileConfig struct {
	Engines []string `yaml:"engines"`

	Searx struct {
		URL string `yaml:"url"`
		Key string `yaml:"key"`
	} `yaml:"searx"`

	Brave struct {
		Key string `yaml:"key"`
	} `yaml:"brave"`

	Search struct {
		File string `yaml:"file"`
	} `yaml:"search"`

	UserAgent string `yaml:"userAgent"`
	Language  string `yaml:"language"`

	Engine struct {
		Timeout duration `yaml:"timeout"`
	} `yaml:"engine"`

	Cache struct {
		TTL  duration `yaml:"ttl"`
		Size int      `yaml:"size"`
	} `yaml:"cache"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse yaml: %w", err)
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields still at their
// zero value, so explicit flags keep precedence over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.Engines) == 0 {
		cfg.Engines = fc.Engines
	}
	if cfg.SearxURL == "" {
		cfg.SearxURL = fc.Searx.URL
	}
	if cfg.SearxKey == "" {
		cfg.SearxKey = fc.Searx.Key
	}
	if cfg.BraveKey == "" {
		cfg.BraveKey = fc.Brave.Key
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = fc.Search.File
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.UserAgent
	}
	if cfg.LanguageHint == "" {
		cfg.LanguageHint = fc.Language
	}
	if cfg.EngineTimeout == 0 {
		cfg.EngineTimeout = time.Duration(fc.Engine.Timeout)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Duration(fc.Cache.TTL)
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = fc.Cache.Size
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = fc.Redis.Addr
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = fc.Redis.Password
	}
	if cfg.RedisDB == 0 {
		cfg.RedisDB = fc.Redis.DB
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
