package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		BodyLimit       string        `yaml:"body_limit" default:"1M"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool `yaml:"enabled" default:"true"`
	} `yaml:"metrics"`
	Engine struct {
		Threshold            float64       `yaml:"threshold" default:"0.60"`
		RewardRisk           float64       `yaml:"reward_risk" default:"2.8"`
		MinKellyFraction     float64       `yaml:"min_kelly_fraction" default:"0.01"`
		HighConfidenceMargin float64       `yaml:"high_confidence_margin" default:"0.10"`
		CaveatBelow          float64       `yaml:"caveat_below" default:"0.65"`
		HistoryDays          int           `yaml:"history_days" default:"365"`
		AnalysisTimeout      time.Duration `yaml:"analysis_timeout" default:"15s"`
		NotifyTimeout        time.Duration `yaml:"notify_timeout" default:"10s"`
	} `yaml:"engine"`
	Provider struct {
		Type          string        `yaml:"type" default:"yahoo"`
		ChartURL      string        `yaml:"chart_url" default:"https://query1.finance.yahoo.com"`
		SummaryURL    string        `yaml:"summary_url" default:"https://query2.finance.yahoo.com"`
		Timeout       time.Duration `yaml:"timeout" default:"8s"`
		RetryMax      int           `yaml:"retry_max" default:"2"`
		BackoffMin    time.Duration `yaml:"backoff_min" default:"200ms"`
		BackoffMax    time.Duration `yaml:"backoff_max" default:"2s"`
		RatePerMinute int           `yaml:"rate_per_minute" default:"120"`
	} `yaml:"provider"`
	Telegram struct {
		BotToken string        `yaml:"bot_token"`
		ChatID   string        `yaml:"chat_id" default:"-1003300471808"`
		BaseURL  string        `yaml:"base_url" default:"https://api.telegram.org"`
		Timeout  time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"telegram"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"vaderboot.signals"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
	} `yaml:"kafka"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Channel  string `yaml:"channel" default:"vaderboot:signals"`
	} `yaml:"redis"`
}

// Default returns a config with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	return c, nil
}

// LoadWithEnv loads config from YAML, overrides with environment variables, then validates.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := getenv("PROVIDER_TYPE"); v != "" {
		c.Provider.Type = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Enabled = true
		c.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Redis.Port = p
			}
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Engine.Threshold <= 0 || c.Engine.Threshold >= 1 {
		return fmt.Errorf("engine.threshold must be in (0,1), got %v", c.Engine.Threshold)
	}
	if c.Engine.RewardRisk <= 0 {
		return fmt.Errorf("engine.reward_risk must be positive, got %v", c.Engine.RewardRisk)
	}
	if c.Engine.MinKellyFraction < 0 || c.Engine.MinKellyFraction >= 1 {
		return fmt.Errorf("engine.min_kelly_fraction must be in [0,1), got %v", c.Engine.MinKellyFraction)
	}
	if c.Engine.HistoryDays < 2 {
		return fmt.Errorf("engine.history_days must be at least 2, got %d", c.Engine.HistoryDays)
	}
	if c.Provider.Type != "yahoo" && c.Provider.Type != "static" {
		return fmt.Errorf("provider.type must be 'yahoo' or 'static', got '%s'", c.Provider.Type)
	}
	if c.Provider.RetryMax < 0 {
		return fmt.Errorf("provider.retry_max cannot be negative")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when a bot token is set")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are set")
	}
	if c.Redis.Enabled && c.Redis.Channel == "" {
		return fmt.Errorf("redis.channel is required when redis is enabled")
	}
	return nil
}
