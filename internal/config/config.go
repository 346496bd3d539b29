package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Postgres PostgresConfig `yaml:"postgres"`
	Log      LogConfig      `yaml:"log"`
	Kitchen  KitchenConfig  `yaml:"kitchen"`
}

type AppConfig struct {
	Name      string `yaml:"name"`
	Port      string `yaml:"port"`
	APIPrefix string `yaml:"api_prefix"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	Migrate         bool          `yaml:"migrate"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type KitchenConfig struct {
	AlertAfter time.Duration `yaml:"alert_after"`
}

// DSN returns a keyword/value connection string accepted by pgx.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// URL returns the same connection as a pgx5:// URL, the form golang-migrate expects.
func (p PostgresConfig) URL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

func defaults() Config {
	return Config{
		App: AppConfig{
			Name:      "restaurant-service",
			Port:      "8080",
			APIPrefix: "/api/v1",
		},
		Postgres: PostgresConfig{
			Port:            "5432",
			SSLMode:         "disable",
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: 30 * time.Minute,
			Migrate:         true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Kitchen: KitchenConfig{
			AlertAfter: 20 * time.Minute,
		},
	}
}

// NewConfig builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, a .env file in the working directory and finally the process
// environment, in that order of precedence (environment wins).
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Port, "APP_PORT")
	setString(&cfg.App.APIPrefix, "API_PREFIX")

	setString(&cfg.Postgres.Host, "DB_HOST")
	setString(&cfg.Postgres.Port, "DB_PORT")
	setString(&cfg.Postgres.User, "DB_USER")
	setString(&cfg.Postgres.Password, "DB_PASSWORD")
	setString(&cfg.Postgres.DBName, "DB_NAME")
	setString(&cfg.Postgres.SSLMode, "DB_SSLMODE")

	if err := setInt32(&cfg.Postgres.MaxConns, "DB_MAX_CONNS"); err != nil {
		return err
	}
	if err := setInt32(&cfg.Postgres.MinConns, "DB_MIN_CONNS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Postgres.MaxConnLifetime, "DB_MAX_CONN_LIFETIME"); err != nil {
		return err
	}
	if v := os.Getenv("DB_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MIGRATE %q: %w", v, err)
		}
		cfg.Postgres.Migrate = b
	}

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	return setDuration(&cfg.Kitchen.AlertAfter, "KITCHEN_ALERT_AFTER")
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DB_HOST", c.Postgres.Host},
		{"DB_PORT", c.Postgres.Port},
		{"DB_USER", c.Postgres.User},
		{"DB_PASSWORD", c.Postgres.Password},
		{"DB_NAME", c.Postgres.DBName},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if c.Postgres.MinConns > c.Postgres.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.Postgres.MinConns, c.Postgres.MaxConns)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt32(dst *int32, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = int32(n)
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
