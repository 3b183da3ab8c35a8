package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	BaseURL   string `mapstructure:"BASE_URL"`
	LoginPath string `mapstructure:"LOGIN_PATH"`

	BackupDir    string `mapstructure:"BACKUP_DIR"`
	BackupSuffix string `mapstructure:"BACKUP_SUFFIX"`

	Headless   bool   `mapstructure:"HEADLESS"`
	ChromePath string `mapstructure:"CHROME_PATH"`
	UserAgent  string `mapstructure:"USER_AGENT"`

	PageLoadTimeout time.Duration `mapstructure:"PAGE_LOAD_TIMEOUT"`
	NavInterval     time.Duration `mapstructure:"NAV_INTERVAL"`

	VerifyLogin bool   `mapstructure:"VERIFY_LOGIN"`
	OnPostError string `mapstructure:"ON_POST_ERROR"`

	PostgresURL   string        `mapstructure:"POSTGRES_URL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	StatusTTL     time.Duration `mapstructure:"STATUS_TTL"`

	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	SelectorLoginIdentity string `mapstructure:"SELECTOR_LOGIN_IDENTITY"`
	SelectorLoginPassword string `mapstructure:"SELECTOR_LOGIN_PASSWORD"`
	SelectorLoginSubmit   string `mapstructure:"SELECTOR_LOGIN_SUBMIT"`
	SelectorPostLink      string `mapstructure:"SELECTOR_POST_LINK"`
	SelectorEditLink      string `mapstructure:"SELECTOR_EDIT_LINK"`
	SelectorEditorBody    string `mapstructure:"SELECTOR_EDITOR_BODY"`
	SelectorEditorTitle   string `mapstructure:"SELECTOR_EDITOR_TITLE"`
	SelectorEditorTags    string `mapstructure:"SELECTOR_EDITOR_TAGS"`
}

var defaults = map[string]any{
	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "json",

	"BASE_URL":   "https://qiita.com",
	"LOGIN_PATH": "/login",

	"BACKUP_DIR":    "backup",
	"BACKUP_SUFFIX": "Qiita-backup",

	"HEADLESS":    true,
	"CHROME_PATH": "",
	"USER_AGENT":  `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`,

	"PAGE_LOAD_TIMEOUT": 30 * time.Second,
	"NAV_INTERVAL":      time.Second,

	"VERIFY_LOGIN":  true,
	"ON_POST_ERROR": "skip",

	"POSTGRES_URL":   "",
	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"STATUS_TTL":     24 * time.Hour,

	"HTTP_ADDR": "",

	"SELECTOR_LOGIN_IDENTITY": "#identity",
	"SELECTOR_LOGIN_PASSWORD": "#password",
	"SELECTOR_LOGIN_SUBMIT":   `[name="commit"]`,
	"SELECTOR_POST_LINK":      "article.ItemLink .ItemLink__title a",
	"SELECTOR_EDIT_LINK":      ".it-Header_edit a",
	"SELECTOR_EDITOR_BODY":    "textarea.editorMarkdown_textarea",
	"SELECTOR_EDITOR_TITLE":   "div.editorTitle input",
	"SELECTOR_EDITOR_TAGS":    "div.editorTag input",
}

// Load reads configuration from an optional env file and the environment.
// Environment variables take precedence over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
	}
	v.AutomaticEnv()

	// A missing env file is fine; the environment and defaults still apply.
	if envFile != "" {
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) validate() error {
	switch c.OnPostError {
	case "skip", "abort":
	default:
		return fmt.Errorf("invalid ON_POST_ERROR %q: expected skip or abort", c.OnPostError)
	}
	if c.PageLoadTimeout <= 0 {
		return fmt.Errorf("PAGE_LOAD_TIMEOUT must be positive, got %s", c.PageLoadTimeout)
	}
	if c.NavInterval < 0 {
		return fmt.Errorf("NAV_INTERVAL must not be negative, got %s", c.NavInterval)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	return nil
}
