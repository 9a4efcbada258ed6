package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Kafka struct {
		Enabled            bool     `yaml:"enabled"`
		Brokers            []string `yaml:"brokers"`
		GamesTopic         string   `yaml:"games_topic"`
		OpportunitiesTopic string   `yaml:"opportunities_topic"`
		LogsTopic          string   `yaml:"logs_topic"`
		RequiredAcks       int      `yaml:"required_acks"`
		Compression        string   `yaml:"compression"`
		Producer           struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	ESPN struct {
		BaseURL        string  `yaml:"base_url"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          float64 `yaml:"burst"`
	} `yaml:"espn"`
	OddsAPI struct {
		APIKey         string  `yaml:"api_key"`
		BaseURL        string  `yaml:"base_url"`
		Regions        string  `yaml:"regions"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          float64 `yaml:"burst"`
	} `yaml:"odds_api"`
	Scan struct {
		Sports         []string      `yaml:"sports"`
		MinEV          float64       `yaml:"min_ev"`
		IngestInterval time.Duration `yaml:"ingest_interval"`
		ScanInterval   time.Duration `yaml:"scan_interval"`
		BackfillDays   int           `yaml:"backfill_days"`
	} `yaml:"scan"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Sports map[string]SportOverride `yaml:"sports_config"`
}

// SportOverride extends the built-in team tables and thresholds from
// config without code changes.
type SportOverride struct {
	TeamNames  map[string]string `yaml:"team_names"`
	Thresholds struct {
		HighScoring   int `yaml:"high_scoring"`
		LowScoring    int `yaml:"low_scoring"`
		BlowoutMargin int `yaml:"blowout_margin"`
		CloseMargin   int `yaml:"close_margin"`
	} `yaml:"thresholds"`
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

	if v := os.Getenv("ODDS_API_KEY"); v != "" {
		c.OddsAPI.APIKey = v
	}
	if v := os.Getenv("SPORTS"); v != "" {
		c.Scan.Sports = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Scan.Sports) == 0 {
		return fmt.Errorf("scan.sports cannot be empty")
	}
	for _, s := range c.Scan.Sports {
		switch s {
		case "mlb", "nfl", "nba":
		default:
			return fmt.Errorf("scan.sports: unsupported sport '%s'", s)
		}
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
