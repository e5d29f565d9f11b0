// Package config handles configuration loading for IntelliBrief.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Signals  SignalsConfig  `mapstructure:"signals"  yaml:"signals"`
	LLM      LLMConfig      `mapstructure:"llm"      yaml:"llm"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// SignalsConfig holds credentials and limits for the external signal sources.
type SignalsConfig struct {
	NewsDataKey  string `mapstructure:"newsdata_key"  yaml:"newsdata_key"`
	JSearchKey   string `mapstructure:"jsearch_key"   yaml:"jsearch_key"`
	BuiltWithKey string `mapstructure:"builtwith_key" yaml:"builtwith_key"`
	TimeoutSec   int    `mapstructure:"timeout_sec"   yaml:"timeout_sec"`
}

// Timeout returns the per-fetcher timeout as a duration.
func (c SignalsConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// LLMConfig holds the generative model configuration.
type LLMConfig struct {
	GroqKey     string  `mapstructure:"groq_key"    yaml:"groq_key"`
	BaseURL     string  `mapstructure:"base_url"    yaml:"base_url"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
	TimeoutSec  int     `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// Timeout returns the model call timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"     yaml:"host"`
	Port     int    `mapstructure:"port"     yaml:"port"`
	User     string `mapstructure:"user"     yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Name     string `mapstructure:"name"     yaml:"name"`
	SSLMode  string `mapstructure:"sslmode"  yaml:"sslmode"`
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.intellibrief/config.yaml (home directory)
//  3. /etc/intellibrief/config.yaml (system)
//
// Environment variables override config file values.
// Format: INTELLIBRIEF_<SECTION>_<KEY>, e.g., INTELLIBRIEF_LLM_GROQ_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".intellibrief"))
	v.AddConfigPath("/etc/intellibrief")

	v.SetEnvPrefix("INTELLIBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("INTELLIBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Signal source defaults
	v.SetDefault("signals.timeout_sec", 15)

	// LLM defaults
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama3-70b-8192")
	v.SetDefault("llm.temperature", 0.8)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.timeout_sec", 60)

	// Database defaults
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "intellibrief")
	v.SetDefault("database.name", "intellibrief")
	v.SetDefault("database.sslmode", "disable")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("INTELLIBRIEF_SIGNALS_NEWSDATA_KEY"); key != "" {
		cfg.Signals.NewsDataKey = key
	}
	if key := os.Getenv("INTELLIBRIEF_SIGNALS_JSEARCH_KEY"); key != "" {
		cfg.Signals.JSearchKey = key
	}
	if key := os.Getenv("INTELLIBRIEF_SIGNALS_BUILTWITH_KEY"); key != "" {
		cfg.Signals.BuiltWithKey = key
	}
	if key := os.Getenv("INTELLIBRIEF_LLM_GROQ_KEY"); key != "" {
		cfg.LLM.GroqKey = key
	}
	if pw := os.Getenv("INTELLIBRIEF_DATABASE_PASSWORD"); pw != "" {
		cfg.Database.Password = pw
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
