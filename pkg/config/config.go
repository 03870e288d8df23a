package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"FinWeave/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Pipeline struct {
		Mode            string        `yaml:"mode"` // once or serve
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		MinSuccess      int           `yaml:"min_success"`
		FetchWorkers    int           `yaml:"fetch_workers"`
	} `yaml:"pipeline"`
	Export struct {
		Type string `yaml:"type"` // csv, clickhouse or kafka
		Path string `yaml:"path"` // csv output file
	} `yaml:"export"`
	Source struct {
		BaseURL        string        `yaml:"base_url"`
		UserAgent      string        `yaml:"user_agent"`
		Interval       string        `yaml:"interval"`
		Symbols        []string      `yaml:"symbols"`
		StartDate      string        `yaml:"start_date"` // optional, YYYY-MM-DD
		EndDate        string        `yaml:"end_date"`   // optional, YYYY-MM-DD
		LookbackYears  int           `yaml:"lookback_years"`
		Timeout        time.Duration `yaml:"timeout"`
		MaxAttempts    int           `yaml:"max_attempts"`
		RetryDelay     time.Duration `yaml:"retry_delay"`
		RequestsPerSec float64       `yaml:"requests_per_sec"`
	} `yaml:"source"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		Table       string        `yaml:"table"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchSize    int           `yaml:"batch_size"`
			BatchBytes   int           `yaml:"batch_bytes"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Source.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("EXPORT"); v != "" {
		c.Export.Type = v
	}
	if v := os.Getenv("EXPORT_PATH"); v != "" {
		c.Export.Path = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Pipeline.Mode {
	case "", "once", "serve":
	default:
		return fmt.Errorf("pipeline.mode must be 'once' or 'serve', got '%s'", c.Pipeline.Mode)
	}
	switch c.Export.Type {
	case "csv", "clickhouse", "kafka":
	default:
		return fmt.Errorf("export.type must be 'csv', 'clickhouse' or 'kafka', got '%s'", c.Export.Type)
	}
	if c.Export.Type == "csv" && c.Export.Path == "" {
		return fmt.Errorf("export.path is required for csv export")
	}
	if len(c.Source.Symbols) == 0 {
		return fmt.Errorf("source.symbols cannot be empty")
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if c.Source.StartDate != "" {
		if _, ok := util.ParseDate(c.Source.StartDate); !ok {
			return fmt.Errorf("source.start_date must be YYYY-MM-DD, got '%s'", c.Source.StartDate)
		}
	}
	if c.Source.EndDate != "" {
		if _, ok := util.ParseDate(c.Source.EndDate); !ok {
			return fmt.Errorf("source.end_date must be YYYY-MM-DD, got '%s'", c.Source.EndDate)
		}
	}
	if c.Source.StartDate == "" && c.Source.LookbackYears <= 0 {
		return fmt.Errorf("either source.start_date or source.lookback_years is required")
	}
	return nil
}
