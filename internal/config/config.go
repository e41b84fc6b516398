package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"port"`
	DBPath         string        `mapstructure:"db_path"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	LogLevel       string        `mapstructure:"log_level"`
	LogPretty      bool          `mapstructure:"log_pretty"`
	PlanSeed       int64         `mapstructure:"plan_seed"`
	MetricsEnabled bool          `mapstructure:"metrics_enabled"`
}

// Load reads config.yaml from the working directory if present, then
// environment variables (PORT, DB_PATH, TOKEN_TTL, ...).
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "./data/runcoach.db")
	v.SetDefault("jwt_secret", "change-this-secret")
	v.SetDefault("token_ttl", "72h")
	v.SetDefault("cors_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("migrations_dir", "./migrations")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("plan_seed", 0)
	v.SetDefault("metrics_enabled", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)
	return cfg, nil
}

// splitList accepts both a YAML list and a comma separated env value.
func splitList(values []string) []string {
	items := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				items = append(items, trimmed)
			}
		}
	}
	return items
}
