package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	MaxBodyBytes      int64
	HandlerTimeoutSec int
	MaxConcurrent     int64
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
	CORS CORS
}

type FileLog struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  FileLog
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

type Cookie struct {
	Name         string
	BackdoorName string `mapstructure:"backdoor_name"`
	Secure       bool
	SameSite     string `mapstructure:"same_site"` // none / lax / strict
	Domain       string
}

type Session struct {
	Name string
	Key  string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type RateLimit struct {
	RPS   float64
	Burst int
	Login string // ulule format, e.g. "10-M"
}

type Notify struct {
	WebhookURL    string `mapstructure:"webhook_url"`
	MinIntervalMS int    `mapstructure:"min_interval_ms"`
	QueueSize     int    `mapstructure:"queue_size"`
	TimeoutSec    int    `mapstructure:"timeout_sec"`
}

type Tasks struct {
	StatsSpec string `mapstructure:"stats_spec"`
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	Cookie    Cookie
	Session   Session
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	RateLimit RateLimit
	Notify    Notify
	Tasks     Tasks
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "rp-market")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 15)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("app.http.handlertimeoutsec", 10)
	v.SetDefault("app.http.maxconcurrent", 256)
	v.SetDefault("app.cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxsizemb", 50)
	v.SetDefault("log.file.maxbackups", 5)
	v.SetDefault("log.file.maxagedays", 14)
	v.SetDefault("log.file.compress", false)

	// Keys without a default are invisible to AutomaticEnv during Unmarshal.
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "rp-market")
	v.SetDefault("jwt.accesstokenttlmin", 1440)

	v.SetDefault("cookie.name", "token")
	v.SetDefault("cookie.backdoor_name", "backdoor_token")
	v.SetDefault("cookie.secure", true)
	v.SetDefault("cookie.same_site", "none")
	v.SetDefault("cookie.domain", "")

	v.SetDefault("session.name", "rp_session")
	v.SetDefault("session.key", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:rp-market.db?_busy_timeout=5000")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("ratelimit.rps", 50)
	v.SetDefault("ratelimit.burst", 100)
	v.SetDefault("ratelimit.login", "10-M")

	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.min_interval_ms", 1000)
	v.SetDefault("notify.queue_size", 64)
	v.SetDefault("notify.timeout_sec", 5)

	v.SetDefault("tasks.stats_spec", "@every 1m")
}

// Read loads the YAML file at path (a missing file is tolerated) and applies
// APP_* environment overrides on top of the defaults.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (APP_JWT_SECRET)")
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		return fmt.Errorf("jwt.accesstokenttlmin must be positive, got %d", c.JWT.AccessTokenTTLMin)
	}
	return nil
}

func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}
