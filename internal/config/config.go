package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"creative_catalog/internal/domain"
)

type Config struct {
	Meta     MetaConfig     `yaml:"meta"`
	Store    StoreConfig    `yaml:"store"`
	Airtable AirtableConfig `yaml:"airtable"`
	Sync     SyncConfig     `yaml:"sync"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Database DatabaseConfig `yaml:"database"`
	LogLevel string         `yaml:"log_level"`
}

type MetaConfig struct {
	AccessToken  string        `yaml:"access_token"`
	BaseURL      string        `yaml:"base_url"`
	LibraryBase  string        `yaml:"library_base"`
	PageSize     int           `yaml:"page_size"`
	Timeout      time.Duration `yaml:"timeout"`
	MediaTimeout time.Duration `yaml:"media_timeout"`
	Retry        RetryConfig   `yaml:"retry"`
}

type StoreConfig struct {
	Owner     string        `yaml:"owner"`
	Repo      string        `yaml:"repo"`
	Branch    string        `yaml:"branch"`
	Token     string        `yaml:"token"`
	LocalPath string        `yaml:"local_path"`
	RawHost   string        `yaml:"raw_host"`
	RemoteURL string        `yaml:"remote_url"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
}

type AirtableConfig struct {
	Token      string        `yaml:"token"`
	BaseID     string        `yaml:"base_id"`
	TableID    string        `yaml:"table_id"`
	BaseURL    string        `yaml:"base_url"`
	BatchSize  int           `yaml:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	Retry      RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type SyncConfig struct {
	Accounts []domain.Account `yaml:"accounts"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Enabled reports whether the optional catalog event feed is configured.
func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether the optional run-history store is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.setDefaults()

	return &cfg, nil
}

// applyEnvOverrides honors the documented environment variables even
// when the YAML file does not reference them.
func (c *Config) applyEnvOverrides() {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*dst = n
			}
		}
	}

	setStr(&c.Meta.AccessToken, "META_ACCESS_TOKEN")
	setStr(&c.Store.Owner, "STORE_OWNER")
	setStr(&c.Store.Repo, "STORE_REPO")
	setStr(&c.Store.Branch, "STORE_BRANCH")
	setStr(&c.Store.Token, "STORE_TOKEN")
	setStr(&c.Airtable.Token, "AIRTABLE_TOKEN")
	setStr(&c.Airtable.BaseID, "AIRTABLE_BASE_ID")
	setStr(&c.Airtable.TableID, "AIRTABLE_TABLE_ID")
	setInt(&c.Meta.PageSize, "PAGE_SIZE")
	setInt(&c.Airtable.BatchSize, "BATCH_SIZE")

	if v := os.Getenv("HTTP_RETRY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Meta.Retry.MaxAttempts = n
			c.Store.Retry.MaxAttempts = n
			c.Airtable.Retry.MaxAttempts = n
		}
	}
}

func (c *Config) setDefaults() {
	if c.Meta.BaseURL == "" {
		c.Meta.BaseURL = "https://graph.facebook.com/v21.0"
	}
	if c.Meta.LibraryBase == "" {
		c.Meta.LibraryBase = "https://www.facebook.com/ads/library/"
	}
	if c.Meta.PageSize == 0 {
		c.Meta.PageSize = 50
	}
	if c.Meta.Timeout == 0 {
		c.Meta.Timeout = 15 * time.Second
	}
	if c.Meta.MediaTimeout == 0 {
		c.Meta.MediaTimeout = 60 * time.Second
	}
	c.Meta.Retry.setDefaults()

	if c.Store.Branch == "" {
		c.Store.Branch = "main"
	}
	if c.Store.RawHost == "" {
		c.Store.RawHost = "https://raw.githubusercontent.com"
	}
	if c.Store.LocalPath == "" {
		c.Store.LocalPath = "./creative-ads-repository"
	}
	if c.Store.Timeout == 0 {
		c.Store.Timeout = 10 * time.Second
	}
	c.Store.Retry.setDefaults()

	if c.Airtable.BaseURL == "" {
		c.Airtable.BaseURL = "https://api.airtable.com/v0"
	}
	if c.Airtable.BatchSize == 0 {
		c.Airtable.BatchSize = 10
	}
	if c.Airtable.BatchDelay == 0 {
		c.Airtable.BatchDelay = 200 * time.Millisecond
	}
	if c.Airtable.Timeout == 0 {
		c.Airtable.Timeout = 15 * time.Second
	}
	c.Airtable.Retry.setDefaults()

	if c.RabbitMQ.Enabled() {
		if c.RabbitMQ.Exchange == "" {
			c.RabbitMQ.Exchange = "creative_catalog"
		}
		if c.RabbitMQ.RoutingKey == "" {
			c.RabbitMQ.RoutingKey = "catalog_entries"
		}
		if c.RabbitMQ.QueueName == "" {
			c.RabbitMQ.QueueName = "catalog_entries"
		}
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (r *RetryConfig) setDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff == 0 {
		r.InitialBackoff = 1 * time.Second
	}
	if r.MaxBackoff == 0 {
		r.MaxBackoff = 30 * time.Second
	}
}

// Validate checks everything a run cannot start without.
func (c *Config) Validate() error {
	if c.Meta.AccessToken == "" {
		return fmt.Errorf("meta.access_token (META_ACCESS_TOKEN) is required")
	}
	if c.Store.Owner == "" || c.Store.Repo == "" {
		return fmt.Errorf("store.owner and store.repo are required")
	}
	if c.Store.Token == "" {
		return fmt.Errorf("store.token (STORE_TOKEN) is required")
	}
	if c.Airtable.Token == "" || c.Airtable.BaseID == "" || c.Airtable.TableID == "" {
		return fmt.Errorf("airtable.token, airtable.base_id and airtable.table_id are required")
	}
	if len(c.Sync.Accounts) == 0 {
		return fmt.Errorf("sync.accounts must list at least one account")
	}
	for _, a := range c.Sync.Accounts {
		if a.ID == "" || a.Brand == "" {
			return fmt.Errorf("every sync account needs both id and brand")
		}
	}
	return nil
}
