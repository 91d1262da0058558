package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	DB       DBConfig       `mapstructure:"db"`
	Blob     BlobConfig     `mapstructure:"blob"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// DBConfig selects one of two backends behind the same GORM handle:
// "postgres" (networked) or "sqlite" (embedded file database).
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"` // sqlite only
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// BlobConfig selects where uploaded note files live: "local" (uploads
// directory) or "b2" (Backblaze bucket).
type BlobConfig struct {
	Backend  string   `mapstructure:"backend"`
	LocalDir string   `mapstructure:"local_dir"`
	B2       B2Config `mapstructure:"b2"`
}

type B2Config struct {
	AccountID string `mapstructure:"account_id"`
	AppKey    string `mapstructure:"app_key"`
	Bucket    string `mapstructure:"bucket"`
}

// SessionsConfig selects the token-revocation backend used by logout:
// "redis", "bolt", or "none" (tokens stay valid until expiry).
type SessionsConfig struct {
	Backend  string      `mapstructure:"backend"`
	Redis    RedisConfig `mapstructure:"redis"`
	BoltPath string      `mapstructure:"bolt_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml (optional) and environment overrides, e.g.
// DB_DRIVER=sqlite overrides db.driver. Precedence: env > file > defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "dev")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "getupdated")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "getupdated.db")

	v.SetDefault("blob.backend", "local")
	v.SetDefault("blob.local_dir", "uploads")
	v.SetDefault("blob.b2.account_id", "")
	v.SetDefault("blob.b2.app_key", "")
	v.SetDefault("blob.b2.bucket", "")

	v.SetDefault("sessions.backend", "bolt")
	v.SetDefault("sessions.redis.addr", "")
	v.SetDefault("sessions.redis.password", "")
	v.SetDefault("sessions.redis.db", 0)
	v.SetDefault("sessions.bolt_path", "sessions.db")

	v.SetDefault("auth.jwt_secret", "dev-secret")
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; env + defaults are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
