// Package config — конфигурация feed-gateway.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// После чтения файла поверх значений из YAML накладываются переменные окружения.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	DB       DBConfig       `yaml:"db"`
	Mongo    MongoConfig    `yaml:"mongo"`
	S3       S3Config       `yaml:"s3"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Limits   LimitsConfig   `yaml:"limits"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
}

// HTTPConfig — публичный REST-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для /metrics и проб.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// DBConfig — PostgreSQL.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
	MaxConns    int32  `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"20"`
}

// MongoConfig — хранилище списка чатов. Пустой URI отключает чаты.
type MongoConfig struct {
	URI        string `yaml:"uri" env:"MONGO_URI"`
	Collection string `yaml:"collection" env:"MONGO_CHATS_COLLECTION" env-default:"chats"`
}

// S3Config — объектное хранилище медиа.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser      string        `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword  string        `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL" env-required:"true"`
	Buckets       BucketsConfig `yaml:"buckets"`
}

// BucketsConfig — имена бакетов.
type BucketsConfig struct {
	PostMedia         string `yaml:"post_media" env:"S3_BUCKET_POST_MEDIA" env-default:"post-media"`
	CommunityPictures string `yaml:"community_pictures" env:"S3_BUCKET_COMMUNITY_PICTURES" env-default:"community-display-pictures"`
	Avatars           string `yaml:"avatars" env:"S3_BUCKET_AVATARS" env-default:"avatars"`
}

// All — все бакеты, которые должны существовать на старте.
func (b BucketsConfig) All() []string {
	return []string{b.PostMedia, b.CommunityPictures, b.Avatars}
}

// RedisConfig — шина межрепликовой инвалидации. Пустой URL отключает шину.
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
	Channel  string `yaml:"channel" env:"REDIS_INVALIDATE_CHANNEL" env-default:"wavefeed:invalidate"`
}

// AuthConfig содержит параметры выпуска и валидации токенов.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
	Issuer          string        `yaml:"issuer" env:"ISSUER" env-default:"wave-feed"`
	Audience        []string      `yaml:"audience" env:"AUDIENCE" env-default:"wave-feed"`
}

// CacheConfig — кэш запросов.
type CacheConfig struct {
	Capacity            int           `yaml:"capacity" env:"CACHE_CAPACITY" env-default:"10000"`
	StaleTime           time.Duration `yaml:"stale_time" env:"CACHE_STALE_TIME" env-default:"0s"`
	FetchTimeout        time.Duration `yaml:"fetch_timeout" env:"CACHE_FETCH_TIMEOUT" env-default:"5s"`
	RefetchOnInvalidate bool          `yaml:"refetch_on_invalidate" env:"CACHE_REFETCH" env-default:"false"`
	RefetchConcurrency  int64         `yaml:"refetch_concurrency" env:"CACHE_REFETCH_CONCURRENCY" env-default:"8"`
}

// LimitsConfig — ограничения пользовательского ввода.
type LimitsConfig struct {
	CommentMaxRunes int   `yaml:"comment_max_runes" env:"COMMENT_MAX_RUNES" env-default:"400"`
	UploadMaxBytes  int64 `yaml:"upload_max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"10485760"`
	FeedLimit       int   `yaml:"feed_limit" env:"FEED_LIMIT" env-default:"50"`
}

// TimeoutsConfig — таймауты запросов и остановки.
type TimeoutsConfig struct {
	Request  time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"15s"`
	Upload   time.Duration `yaml:"upload" env:"UPLOAD_TIMEOUT" env-default:"60s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return finish(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет значения, которые cleanenv не может проверить сам.
func (c *Config) validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 bytes"))
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("auth token ttl must be positive"))
	}
	if c.Auth.RefreshTokenTTL < c.Auth.AccessTokenTTL {
		errs = append(errs, errors.New("auth.refresh_token_ttl must not be shorter than access_token_ttl"))
	}
	if c.Limits.CommentMaxRunes <= 0 {
		errs = append(errs, errors.New("limits.comment_max_runes must be positive"))
	}
	if c.Limits.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("limits.upload_max_bytes must be positive"))
	}
	if c.Limits.FeedLimit <= 0 {
		errs = append(errs, errors.New("limits.feed_limit must be positive"))
	}
	if c.Cache.Capacity <= 0 {
		errs = append(errs, errors.New("cache.capacity must be positive"))
	}
	for _, b := range c.S3.Buckets.All() {
		if b == "" {
			errs = append(errs, errors.New("s3.buckets: bucket name must not be empty"))
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
