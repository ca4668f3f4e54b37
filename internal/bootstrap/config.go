package bootstrap

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds server process configuration. Values come from a config file
// when one is given and from BALDA_* environment variables otherwise, with
// the environment taking precedence.
type Config struct {
	Host           string `mapstructure:"HOST"`
	Port           int    `mapstructure:"PORT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	DictionaryPath string `mapstructure:"DICTIONARY_PATH"`
	StorageType    string `mapstructure:"STORAGE_TYPE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
}

// Setup loads configuration. cfgPath may be empty, in which case only
// defaults and environment variables apply.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("HOST", "")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DICTIONARY_PATH", "data/words.txt")
	v.SetDefault("STORAGE_TYPE", "memory")
	v.SetDefault("REDIS_URL", "")

	v.SetEnvPrefix("BALDA")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	switch strings.ToLower(c.StorageType) {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORAGE_TYPE is redis")
		}
	default:
		return errors.New("STORAGE_TYPE must be 'memory' or 'redis'")
	}
	return nil
}
