package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	AMQP     AMQPConfig     `toml:"amqp"`
	Records  RecordsConfig  `toml:"records"`
	Grid     GridConfig     `toml:"grid"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type ServerConfig struct {
	Port            int      `toml:"port"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	App    string `toml:"app"`
}

// DatabaseConfig: DSN vacío => repos en memoria.
type DatabaseConfig struct {
	DSN string `toml:"dsn"`
}

// RedisConfig: Addr vacío => sesión de drag en memoria.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	SessionKey string `toml:"session_key"`
}

// AMQPConfig: URL vacía => los eventos sólo se loguean.
type AMQPConfig struct {
	URL   string `toml:"url"`
	Queue string `toml:"queue"`
}

// RecordsConfig: BaseURL vacío => vacunas/evaluaciones locales.
type RecordsConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

type GridConfig struct {
	DefaultDays int    `toml:"default_days"`
	WeekStart   string `toml:"week_start"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Duration permite escribir "5s" en el toml.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Log:     LogConfig{Level: "info", Format: "text", App: "kennel-scheduler"},
		Redis:   RedisConfig{SessionKey: "kennel:drag:session"},
		AMQP:    AMQPConfig{Queue: "kennel.events"},
		Records: RecordsConfig{Timeout: Duration{5 * time.Second}},
		Grid:    GridConfig{DefaultDays: 14, WeekStart: "monday"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load arma la configuración en este orden: defaults, .env (opcional),
// archivo toml (opcional) y por último variables de entorno.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}

	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT: %w", err)
		}
		c.Server.Port = p
	}
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.App, "APP_NAME")
	setString(&c.Records.BaseURL, "RECORDS_BASE_URL")
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Grid.DefaultDays != 7 && c.Grid.DefaultDays != 14 {
		return fmt.Errorf("config: grid.default_days must be 7 or 14, got %d", c.Grid.DefaultDays)
	}
	if _, err := c.Grid.Weekday(); err != nil {
		return err
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

// Weekday traduce week_start ("monday", "sunday", ...).
func (g GridConfig) Weekday() (time.Weekday, error) {
	s := strings.ToLower(strings.TrimSpace(g.WeekStart))
	if s == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("config: invalid grid.week_start %q", g.WeekStart)
}
