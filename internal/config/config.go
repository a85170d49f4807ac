package config

import (
	"time"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

// Default configuration values.
const (
	defaultServiceName    = "ticket-triage"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultDBHost         = "localhost"
	defaultDBPort         = 5432
	defaultDBUser         = "postgres"
	defaultDBName         = "tickets"
	defaultDBSSLMode      = "disable"
	defaultDBMaxConns     = 25
	defaultDBMaxIdleConns = 5
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultLLMModel       = "claude-sonnet-4-5-20250929"
	defaultLLMTimeoutSec  = 20
	defaultLLMMaxRetries  = 2
	defaultLLMRPS         = 5
	defaultSentimentURL   = "http://sentiment-ml:8091"
	defaultSentimentSec   = 5
)

// Config holds all configuration for the ticket triage service.
type Config struct {
	Service        ServiceConfig        `yaml:"service"`
	Database       DatabaseConfig       `yaml:"database"`
	Logging        LoggingConfig        `yaml:"logging"`
	LLM            LLMConfig            `yaml:"llm"`
	SentimentML    SentimentMLConfig    `yaml:"sentiment_ml"`
	Classification ClassificationConfig `yaml:"classification"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"TRIAGE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"   yaml:"debug"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
	Migrate         bool          `env:"DB_MIGRATE"        yaml:"migrate"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// LLMConfig holds configuration for the primary structured classifier.
type LLMConfig struct {
	Model      string        `env:"LLM_MODEL"         yaml:"model"`
	APIKey     string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RPS        int           `yaml:"rps"`
}

// SentimentMLConfig holds configuration for the sentiment model sidecar.
type SentimentMLConfig struct {
	URL     string        `env:"SENTIMENT_ML_URL" yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ClassificationConfig holds classification settings.
type ClassificationConfig struct {
	// DefaultSentiment is used by the last-resort classifier.
	DefaultSentiment string `yaml:"default_sentiment"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setLoggingDefaults(&cfg.Logging)
	setLLMDefaults(&cfg.LLM)
	setSentimentMLDefaults(&cfg.SentimentML)
	setClassificationDefaults(&cfg.Classification)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setLLMDefaults(l *LLMConfig) {
	if l.Model == "" {
		l.Model = defaultLLMModel
	}
	if l.Timeout == 0 {
		l.Timeout = defaultLLMTimeoutSec * time.Second
	}
	if l.MaxRetries == 0 {
		l.MaxRetries = defaultLLMMaxRetries
	}
	if l.RPS == 0 {
		l.RPS = defaultLLMRPS
	}
}

func setSentimentMLDefaults(s *SentimentMLConfig) {
	if s.URL == "" {
		s.URL = defaultSentimentURL
	}
	if s.Timeout == 0 {
		s.Timeout = defaultSentimentSec * time.Second
	}
}

func setClassificationDefaults(c *ClassificationConfig) {
	if c.DefaultSentiment == "" {
		c.DefaultSentiment = string(domain.SentimentNeutral)
	}
}
