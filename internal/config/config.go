package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"internship-service/internal/infrastructure"
	"internship-service/internal/infrastructure/db/mongodb"
)

type Config struct {
	HTTP struct {
		Port          string        `yaml:"port"`
		GlobalRPS     int           `yaml:"global_rps"`
		GlobalBurst   int           `yaml:"global_burst"`
		ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	} `yaml:"http"`
	Mongo struct {
		URI             string        `yaml:"uri"`
		Database        string        `yaml:"database"`
		ConnectTimeout  time.Duration `yaml:"connect_timeout"`
		UseTransactions bool          `yaml:"use_transactions"`
	} `yaml:"mongo"`
	JWT struct {
		Secret string        `yaml:"secret"`
		Issuer string        `yaml:"issuer"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`
	Redis struct {
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`
	Email struct {
		APIKey string `yaml:"api_key"`
		Sender string `yaml:"sender"`
	} `yaml:"email"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	RateLimit struct {
		Window time.Duration `yaml:"window"`
		Max    int           `yaml:"max"`
	} `yaml:"rate_limit"`
}

// Load reads .env, then the optional YAML file at path, then environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(b))), cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.HTTP.GlobalRPS = 50
	cfg.HTTP.GlobalBurst = 100
	cfg.HTTP.ShutdownGrace = 10 * time.Second
	cfg.Mongo.Database = "internships"
	cfg.Mongo.ConnectTimeout = 10 * time.Second
	cfg.Mongo.UseTransactions = true
	cfg.JWT.Issuer = "internship-service"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Redis.Port = "6379"
	cfg.Log.Level = "info"
	cfg.RateLimit.Window = time.Minute
	cfg.RateLimit.Max = 10
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.HTTP.Port = envString("PORT", cfg.HTTP.Port)
	cfg.HTTP.GlobalBurst = envInt("HTTP_GLOBAL_BURST", cfg.HTTP.GlobalBurst)
	cfg.HTTP.GlobalRPS = envInt("HTTP_GLOBAL_RPS", cfg.HTTP.GlobalRPS)
	cfg.HTTP.ShutdownGrace = envDuration("HTTP_SHUTDOWN_GRACE", cfg.HTTP.ShutdownGrace)

	cfg.Mongo.URI = envString("MONGODB_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = envString("MONGODB_DATABASE", cfg.Mongo.Database)
	cfg.Mongo.ConnectTimeout = envDuration("MONGODB_CONNECT_TIMEOUT", cfg.Mongo.ConnectTimeout)
	cfg.Mongo.UseTransactions = envBool("MONGODB_USE_TRANSACTIONS", cfg.Mongo.UseTransactions)

	cfg.JWT.Secret = envString("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Issuer = envString("JWT_ISSUER", cfg.JWT.Issuer)
	cfg.JWT.TTL = envDuration("JWT_TTL", cfg.JWT.TTL)

	cfg.Redis.URL = envString("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.Host = envString("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = envString("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = envString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envInt("REDIS_DB", cfg.Redis.DB)

	cfg.NATS.URL = envString("NATS_URL", cfg.NATS.URL)

	cfg.Email.APIKey = envString("RESEND_API_KEY", cfg.Email.APIKey)
	cfg.Email.Sender = envString("EMAIL_SENDER", cfg.Email.Sender)

	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = envString("LOG_FILE", cfg.Log.File)

	cfg.RateLimit.Window = envDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window)
	cfg.RateLimit.Max = envInt("RATE_LIMIT_MAX", cfg.RateLimit.Max)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("mongo.uri is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.RateLimit.Max <= 0 {
		errs = append(errs, errors.New("rate_limit.max must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) MongoConfig() mongodb.Config {
	return mongodb.Config{
		URI:             c.Mongo.URI,
		Database:        c.Mongo.Database,
		ConnectTimeout:  c.Mongo.ConnectTimeout,
		UseTransactions: c.Mongo.UseTransactions,
	}
}

func (c *Config) RedisConfig() infrastructure.RedisConfig {
	return infrastructure.RedisConfig{
		URL:      c.Redis.URL,
		Host:     c.Redis.Host,
		Port:     c.Redis.Port,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}

// The env helpers keep the current value when a variable is unset, blank or unparsable.

func envString(key, current string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return current
}

func envInt(key string, current int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return n
	}
	return current
}

func envDuration(key string, current time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return d
	}
	return current
}

func envBool(key string, current bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return b
	}
	return current
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with its value. Unset variables are left as written.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		if value := os.Getenv(match[2 : len(match)-1]); value != "" {
			return value
		}
		return match
	})
}
