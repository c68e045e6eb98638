package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr     string `mapstructure:"SERVER_ADDR"`
	StaticDir      string `mapstructure:"STATIC_DIR"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogDevelopment bool   `mapstructure:"LOG_DEVELOPMENT"`

	SearchMinDepth    int  `mapstructure:"SEARCH_MIN_DEPTH"`
	SearchMaxDepth    int  `mapstructure:"SEARCH_MAX_DEPTH"`
	SearchTimeLimitMs int  `mapstructure:"SEARCH_TIME_LIMIT_MS"`
	SearchParallel    bool `mapstructure:"SEARCH_PARALLEL"`
	SearchWorkers     int  `mapstructure:"SEARCH_WORKERS"`
	SearchUseTT       bool `mapstructure:"SEARCH_USE_TT"`

	// 为空时用内存实现
	RedisUrl        string `mapstructure:"REDIS_URL"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
	CacheMaxItems   int    `mapstructure:"CACHE_MAX_ITEMS"` // 只对内存缓存生效
	MongoUri        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`

	DefaultBoardSize int `mapstructure:"DEFAULT_BOARD_SIZE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("SEARCH_MIN_DEPTH", 1)
	v.SetDefault("SEARCH_MAX_DEPTH", 6)
	v.SetDefault("SEARCH_TIME_LIMIT_MS", 3000)
	v.SetDefault("SEARCH_PARALLEL", true)
	v.SetDefault("SEARCH_WORKERS", 0)
	v.SetDefault("SEARCH_USE_TT", true)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL_SECONDS", 600)
	v.SetDefault("CACHE_MAX_ITEMS", 1<<16)
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "raichu")
	v.SetDefault("DEFAULT_BOARD_SIZE", 8)
}

// Setup 读取配置：默认值 < 配置文件（cfgPath，不存在就跳过）< 环境变量
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			v.SetConfigFile(cfgPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
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
	if c.SearchMinDepth < 1 {
		return fmt.Errorf("SEARCH_MIN_DEPTH must be >= 1, got %d", c.SearchMinDepth)
	}
	if c.SearchMaxDepth < c.SearchMinDepth {
		return fmt.Errorf("SEARCH_MAX_DEPTH (%d) < SEARCH_MIN_DEPTH (%d)", c.SearchMaxDepth, c.SearchMinDepth)
	}
	if c.DefaultBoardSize < 6 || c.DefaultBoardSize > 16 || c.DefaultBoardSize%2 != 0 {
		return fmt.Errorf("DEFAULT_BOARD_SIZE must be even in [6,16], got %d", c.DefaultBoardSize)
	}
	return nil
}

func (c *Config) SearchTimeLimit() time.Duration {
	return time.Duration(c.SearchTimeLimitMs) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
