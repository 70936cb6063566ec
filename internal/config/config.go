package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Posts    PostsConfig    `mapstructure:"posts"`
}

type ServerConfig struct {
	Addr         string   `mapstructure:"addr"`
	Mode         string   `mapstructure:"mode"` // debug / release / test
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	Driver       string   `mapstructure:"driver"` // mysql / postgres / sqlite
	DSN          string   `mapstructure:"dsn"`
	Replicas     []string `mapstructure:"replicas"`
	MaxOpenConns int      `mapstructure:"max_open_conns"`
	MaxIdleConns int      `mapstructure:"max_idle_conns"`
	LogQueries   bool     `mapstructure:"log_queries"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"` // empty disables sessions check and page cache
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	IndexTTL time.Duration `mapstructure:"index_ttl"`
}

type KafkaConfig struct {
	Brokers        []string      `mapstructure:"brokers"` // empty means events are only logged
	Topic          string        `mapstructure:"topic"`
	RelayInterval  time.Duration `mapstructure:"relay_interval"`
	RelayBatchSize int           `mapstructure:"relay_batch_size"`
}

type AuthConfig struct {
	AccessSecret string `mapstructure:"access_secret"`
	LoginURL     string `mapstructure:"login_url"`
}

type PostsConfig struct {
	PerPage int `mapstructure:"per_page"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "user:password@tcp(127.0.0.1:3306)/yatube?charset=utf8mb4&parseTime=True")
	v.SetDefault("database.replicas", []string{})
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.index_ttl", 20*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "yatube.events")
	v.SetDefault("kafka.relay_interval", time.Second)
	v.SetDefault("kafka.relay_batch_size", 200)

	v.SetDefault("auth.access_secret", "")
	v.SetDefault("auth.login_url", "/auth/login/")

	v.SetDefault("posts.per_page", 10)
}

// Load reads the optional config file at path and applies YATUBE_* env overrides,
// e.g. YATUBE_DATABASE_DSN.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("yatube")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Auth.AccessSecret == "" {
		return nil, errors.New("auth.access_secret must be set")
	}
	if cfg.Posts.PerPage <= 0 {
		cfg.Posts.PerPage = 10
	}
	return &cfg, nil
}
