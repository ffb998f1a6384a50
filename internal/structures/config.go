package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type UpstreamConfig struct {
	BaseURL string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Token   string        `yaml:"token" validate:"required"`
	Timeout time.Duration `yaml:"timeout"`
}

type FreshnessConfig struct {
	TTL time.Duration `yaml:"ttl" validate:"required|min:1"`
}

type FetcherConfig struct {
	BatchSize    int           `yaml:"batchSize"`
	WarmInterval time.Duration `yaml:"warmInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Freshness FreshnessConfig `yaml:"freshness"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
