package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/leonid6372/lifery-bot/pkg/log"
)

const (
	EnvProd = "prod"
	EnvTest = "test"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-upd:"" env-default:"prod"`

	Log Log `yaml:"log"`

	Storage  Storage  `yaml:"storage"`
	Postgres Postgres `yaml:"postgres"`
	SQLite   SQLite   `yaml:"sqlite"`

	Bot Bot `yaml:"bot"`

	Schedule Schedule `yaml:"schedule"`
	Dispatch Dispatch `yaml:"dispatch"`
}

type Log struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-upd:"" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-upd:"" env-default:"console"`
}

type Storage struct {
	Driver   string        `yaml:"driver" env:"STORAGE_DRIVER" env-upd:"" env-default:"postgres"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"STORAGE_CACHE_TTL" env-upd:"" env-default:"1m"`
}

type Postgres struct {
	Database string `yaml:"database" env:"POSTGRES_DATABASE" env-upd:""`
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-upd:""`
	Username string `yaml:"username" env:"POSTGRES_USER" env-upd:""`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-upd:""`
	Port     int64  `yaml:"port" env:"POSTGRES_PORT" env-upd:"" env-default:"5432"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-upd:"" env-default:"./data/lifery.db"`
}

type Bot struct {
	APIKey         string        `yaml:"api_key" env:"BOT_API_KEY" env-upd:""`
	Timeout        time.Duration `yaml:"timeout" env:"BOT_TIMEOUT" env-upd:"" env-default:"10s"`
	HandlerTimeout time.Duration `yaml:"handler_timeout" env:"BOT_HANDLER_TIMEOUT" env-upd:"" env-default:"15s"`
}

// Schedule is the weekly trigger of the dispatcher.
type Schedule struct {
	Weekday  string `yaml:"weekday" env:"SCHEDULE_WEEKDAY" env-upd:"" env-default:"monday"`
	At       string `yaml:"at" env:"SCHEDULE_AT" env-upd:"" env-default:"12:00"` // HH:MM
	Location string `yaml:"location" env:"SCHEDULE_LOCATION" env-upd:"" env-default:"UTC"`
}

type Dispatch struct {
	Concurrency int           `yaml:"concurrency" env:"DISPATCH_CONCURRENCY" env-upd:"" env-default:"8"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"DISPATCH_SEND_TIMEOUT" env-upd:"" env-default:"10s"`
}

func (c *Config) GetPostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.Username, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

// Validate checks values that cleanenv can not check by itself.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvProd, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("unknown env %q", c.Env))
	}

	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if _, err := c.Schedule.GetWeekday(); err != nil {
		errs = append(errs, err)
	}

	if _, _, err := c.Schedule.GetTime(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Schedule.GetLocation(); err != nil {
		errs = append(errs, err)
	}

	if c.Dispatch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("dispatch concurrency must be positive, got %d", c.Dispatch.Concurrency))
	}

	return errors.Join(errs...)
}

func (s *Schedule) GetWeekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s.Weekday)) {
			return d, nil
		}
	}

	return 0, fmt.Errorf("unknown schedule weekday %q", s.Weekday)
}

// GetTime returns the hour and minute of the trigger.
func (s *Schedule) GetTime() (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s.At))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid schedule time %q, expected HH:MM", s.At)
	}

	return t.Hour(), t.Minute(), nil
}

// Trigger is a parsed Schedule.
type Trigger struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

func (s *Schedule) GetTrigger() (Trigger, error) {
	weekday, err := s.GetWeekday()
	if err != nil {
		return Trigger{}, err
	}

	hour, minute, err := s.GetTime()
	if err != nil {
		return Trigger{}, err
	}

	location, err := s.GetLocation()
	if err != nil {
		return Trigger{}, err
	}

	return Trigger{
		Weekday:  weekday,
		Hour:     hour,
		Minute:   minute,
		Location: location,
	}, nil
}

func (s *Schedule) GetLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return nil, fmt.Errorf("unknown schedule location %q: %w", s.Location, err)
	}

	return loc, nil
}

// Load reads the YAML file at configPath and overlays environment variables.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, errors.New("config path is required")
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetConfig is Load that exits the process on error.
func GetConfig(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
