package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"sid/internal/structures"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("freshness.ttl", "30s")
	viper.SetDefault("fetcher.batchSize", 10)
	viper.SetDefault("upstream.timeout", "10s")

	viper.BindEnv("logger.level", "SID_LOG_LEVEL")
	viper.BindEnv("upstream.baseUrl", "SID_UPSTREAM_URL")
	viper.BindEnv("upstream.token", "SID_UPSTREAM_TOKEN")
	viper.BindEnv("freshness.ttl", "SID_FRESHNESS_TTL")
	viper.BindEnv("fetcher.warmInterval", "SID_WARM_INTERVAL")
	viper.BindEnv("cache.enabled", "SID_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SID_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SocialInsightDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
