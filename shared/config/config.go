package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr     string   `yaml:"listen_addr"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// naive time_machine_datetime values (no offset) are read in this zone
	ArchiveTimezone string    `yaml:"archive_timezone" validate:"required"`
	Storage         Storage   `yaml:"storage"`
	RateLimit       RateLimit `yaml:"rate_limit"`
	// serve Strict-Transport-Security
	IsHTTPS bool `yaml:"is_https"`
}

// RateLimit is in requests per second; zero disables that limiter.
type RateLimit struct {
	PerIP  float64 `yaml:"per_ip" validate:"gte=0"`
	Global float64 `yaml:"global" validate:"gte=0"`
}

type Storage struct {
	Driver          string        `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	SqlitePath      string        `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// Location resolves ArchiveTimezone, falling back to UTC on unknown names.
func (p *Public) Location() *time.Location {
	loc, err := time.LoadLocation(p.ArchiveTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

func defaultPublic() Public {
	return Public{
		ListenAddr:      ":8080",
		LogLevel:        "info",
		ArchiveTimezone: "UTC",
		Storage: Storage{
			Driver:          "postgres",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: time.Minute,
		},
		RateLimit: RateLimit{PerIP: 20, Global: 1000},
	}
}

func MustLoad(configFolder string) *Config {
	public := defaultPublic()
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	if cfg.Public.Storage.Driver == "postgres" && cfg.Private.Pg.Host == "" {
		panic("invalid config: pg.host is required for postgres driver")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Public.ListenAddr = ":" + port
	}
	return cfg
}
