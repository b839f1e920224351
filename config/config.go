package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MaxSeedBatchSize keeps a batch of ten-column flight rows within the
// 65535 bind parameters postgres accepts per statement.
const MaxSeedBatchSize = 6553

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Seed     SeedConfig     `yaml:"seed"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type AppConfig struct {
	Env string `yaml:"env"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	// Path is the sqlite database file, ":memory:" for a throwaway database.
	Path string `yaml:"path"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// FlightsCacheTTL is in seconds.
	FlightsCacheTTL int `yaml:"flights_cache_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.FlightsCacheTTL) * time.Second
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	ScheduleTopic string   `yaml:"schedule_topic"`
	GroupID       string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.ScheduleTopic != ""
}

type ScheduleConfig struct {
	// StartDate pins the first day of the generated window (YYYY-MM-DD).
	// Empty means today in each service's departure zone.
	StartDate    string   `yaml:"start_date"`
	SkipServices []string `yaml:"skip_services"`
}

// Start parses StartDate. The zero time is returned when it is unset.
func (s ScheduleConfig) Start() (time.Time, error) {
	if s.StartDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule.start_date %q: %w", s.StartDate, err)
	}
	return t, nil
}

type SeedConfig struct {
	Reset     bool `yaml:"reset"`
	BatchSize int  `yaml:"batch_size"`
}

type WorkerConfig struct {
	// RefreshMinutes is how often the worker reloads the flight cache
	// without waiting for an event. Zero disables the sweep.
	RefreshMinutes int `yaml:"refresh_minutes"`
}

func (w WorkerConfig) RefreshInterval() time.Duration {
	return time.Duration(w.RefreshMinutes) * time.Minute
}

func LoadConfig(path string) (*Config, error) {
	// a missing .env is fine, real environments set variables directly
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file location from CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Driver == DriverPostgres && c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = "milkrun.db"
	}
	if c.Redis.FlightsCacheTTL == 0 {
		c.Redis.FlightsCacheTTL = 300
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "milkrun-worker"
	}
	if c.Seed.BatchSize == 0 {
		c.Seed.BatchSize = 500
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("database.host and database.name are required for postgres")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Seed.BatchSize < 0 || c.Seed.BatchSize > MaxSeedBatchSize {
		return fmt.Errorf("seed.batch_size must be between 1 and %d", MaxSeedBatchSize)
	}
	if c.Worker.RefreshMinutes < 0 {
		return errors.New("worker.refresh_minutes must not be negative")
	}
	if _, err := c.Schedule.Start(); err != nil {
		return err
	}
	return nil
}
