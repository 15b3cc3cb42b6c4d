// Package config loads the service configuration from a YAML file chosen by
// environment: APP_CONFIG points at the file to use, and TESTING=1 switches to
// the test profile so suites never touch production credentials. Individual
// values may still be overridden through PETCONNECT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Token    TokenConfig    `mapstructure:"token"`
	Email    EmailConfig    `mapstructure:"email"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Media    MediaConfig    `mapstructure:"media"`
	Log      LogConfig      `mapstructure:"log"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"` // development, testing, production
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type TokenConfig struct {
	Secret    string        `mapstructure:"secret"`
	Algorithm string        `mapstructure:"algorithm"` // HS256 unless stated otherwise
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

type EmailConfig struct {
	Backend      string `mapstructure:"backend"` // log, sendgrid
	Sender       string `mapstructure:"sender"`
	SendGridKey  string `mapstructure:"sendgrid_key"`
	SendGridURL  string `mapstructure:"sendgrid_url"`
	FrontendBase string `mapstructure:"frontend_base"`
}

type PaymentConfig struct {
	AccessToken string `mapstructure:"access_token"`
	BaseURL     string `mapstructure:"base_url"`
}

type MediaConfig struct {
	Bucket string `mapstructure:"bucket"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

func (c *Config) IsTesting() bool { return c.App.Env == "testing" }

// Load reads configuration for the current environment. With no APP_CONFIG the
// defaults alone produce a runnable development setup.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	path := os.Getenv("APP_CONFIG")
	if os.Getenv("TESTING") == "1" {
		path = "config.testing.yaml"
		v.SetDefault("app.env", "testing")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("PETCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Token.Secret == "" {
		return nil, fmt.Errorf("token.secret is required")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "petconnect")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("token.algorithm", "HS256")
	v.SetDefault("token.access_ttl", time.Hour)

	v.SetDefault("email.backend", "log")
	v.SetDefault("email.sender", "no-reply@petconnect.app")
	v.SetDefault("email.sendgrid_url", "https://api.sendgrid.com/v3/mail/send")
	v.SetDefault("email.frontend_base", "http://localhost:3000")

	v.SetDefault("media.bucket", "petconnect-media")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
