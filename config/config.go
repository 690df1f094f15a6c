package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	RabbitMQ RabbitMQConfig
	Minio    MinioConfig
	Admin    AdminConfig
	Log      LogConfig
}

type AppConfig struct {
	Port           string
	Env            string
	RequestTimeout time.Duration
}

type DBConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	URL string
}

// JWTConfig carries two distinct expiry windows: hours for access tokens and
// days for refresh tokens.
type JWTConfig struct {
	Algorithm     string
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type PasswordConfig struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type AdminConfig struct {
	APIKey string
}

type LogConfig struct {
	Level string
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// LoadConfig reads configuration once from the environment and an optional
// .env file. Missing required values are reported together.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_REQUEST_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_REFRESH_EXPIRY_DAYS", 7)
	v.SetDefault("PASSWORD_ARGON_MEMORY_KIB", 64*1024)
	v.SetDefault("PASSWORD_ARGON_ITERATIONS", 1)
	v.SetDefault("PASSWORD_ARGON_PARALLELISM", 4)
	v.SetDefault("RABBITMQ_EXCHANGE", "clinic.events")
	v.SetDefault("MINIO_BUCKET", "profile-pictures")
	v.SetDefault("LOG_LEVEL", "info")

	var missing []string
	required := func(key string) string {
		value := strings.TrimSpace(v.GetString(key))
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		DB: DBConfig{
			URL:          required("POSTGRES_URL"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			URL: required("REDIS_URL"),
		},
		JWT: JWTConfig{
			Algorithm: required("JWT_ALG"),
			Secret:    required("JWT_SECRET"),
			Issuer:    required("ISSUER"),
		},
		Password: PasswordConfig{
			MemoryKiB:  v.GetUint32("PASSWORD_ARGON_MEMORY_KIB"),
			Iterations: v.GetUint32("PASSWORD_ARGON_ITERATIONS"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
		Admin: AdminConfig{
			APIKey: required("ADMIN_API_KEY"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	// JWT_EXPIRY is the legacy name and only ever meant hours.
	accessHours := v.GetString("JWT_ACCESS_EXPIRY_HOURS")
	if accessHours == "" {
		accessHours = v.GetString("JWT_EXPIRY")
	}
	if strings.TrimSpace(accessHours) == "" {
		missing = append(missing, "JWT_ACCESS_EXPIRY_HOURS")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	hours, err := positiveInt(accessHours)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_HOURS: %w", err)
	}
	cfg.JWT.AccessExpiry = time.Duration(hours) * time.Hour

	days, err := positiveInt(v.GetString("JWT_REFRESH_EXPIRY_DAYS"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}
	cfg.JWT.RefreshExpiry = time.Duration(days) * 24 * time.Hour

	parallelism, err := positiveInt(v.GetString("PASSWORD_ARGON_PARALLELISM"))
	if err == nil && parallelism > math.MaxUint8 {
		err = fmt.Errorf("must be at most %d, got %d", math.MaxUint8, parallelism)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_ARGON_PARALLELISM: %w", err)
	}
	cfg.Password.Parallelism = uint8(parallelism)

	timeout, err := time.ParseDuration(v.GetString("APP_REQUEST_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	cfg.App.RequestTimeout = timeout

	return cfg, nil
}

func positiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
