package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec"`
}

type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type AuthConfig struct {
	// APIKeyPrefix is stripped from incoming bearer tokens before lookup.
	APIKeyPrefix string `mapstructure:"api_key_prefix"`
	SecretPepper string `mapstructure:"secret_pepper"`
	// EnableArgon2Verification additionally verifies the key against the
	// stored PHC hash after the HMAC lookup succeeds.
	EnableArgon2Verification bool `mapstructure:"enable_argon2_verification"`

	RootEmail  string `mapstructure:"root_email"`
	RootName   string `mapstructure:"root_name"`
	RootAPIKey string `mapstructure:"root_api_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Load reads configuration from the environment (PAGECRAFT_* variables),
// with an optional .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PAGECRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "pagecraft-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout_sec", 30)
	v.SetDefault("server.write_timeout_sec", 30)
	v.SetDefault("database.dsn", "host=localhost user=pagecraft password=pagecraft dbname=pagecraft port=5432 sslmode=disable")
	v.SetDefault("database.max_open", 25)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("auth.api_key_prefix", "pc_sk_")
	v.SetDefault("auth.secret_pepper", "")
	v.SetDefault("auth.enable_argon2_verification", false)
	v.SetDefault("auth.root_email", "")
	v.SetDefault("auth.root_name", "root")
	v.SetDefault("auth.root_api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.sample_ratio", 1.0)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
