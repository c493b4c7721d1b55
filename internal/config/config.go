package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AI2HU/geodash/internal/palette"
)

// Environment overrides
const (
	EnvConfigPath = "GEODASH_CONFIG_PATH"
	EnvAPIKey     = "GEODASH_API_KEY"
	EnvLLMAPIKey  = "GEODASH_LLM_API_KEY"
)

// Data sources a dashboard can read from
const (
	SourceBackend = "backend"
	SourceMirror  = "mirror"
)

// Config represents the application configuration
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Source   string         `yaml:"source"` // backend or mirror
	Target   TargetConfig   `yaml:"target"`
	Brands   []string       `yaml:"brands"` // trend and heatmap columns, in display order
	Sources  SourcesConfig  `yaml:"sources"`
	Palette  palette.Tables `yaml:"palette,omitempty"` // overrides layered on the built-in tables
	Mirror   MirrorConfig   `yaml:"mirror"`
	Insights InsightsConfig `yaml:"insights"`
	Server   ServerConfig   `yaml:"server"`
	LogLevel string         `yaml:"log_level"`
}

// BackendConfig represents the hosted data backend connection
type BackendConfig struct {
	URL               string        `yaml:"url"`
	APIKey            string        `yaml:"api_key"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 disables pacing
}

// TargetConfig names the brand the dashboard is built for
type TargetConfig struct {
	Brand  string `yaml:"brand"`
	Domain string `yaml:"domain"`
}

// SourcesConfig holds the domain lists used to classify cited pages
type SourcesConfig struct {
	SocialDomains     []string `yaml:"social_domains"`
	CompetitorDomains []string `yaml:"competitor_domains"`
}

// MirrorConfig represents the local SQLite mirror
type MirrorConfig struct {
	Path     string `yaml:"path"`
	Schedule string `yaml:"schedule"` // cron expression for mirror watch
}

// InsightsConfig represents the LLM used for narrative insights
type InsightsConfig struct {
	Provider    string  `yaml:"provider"` // openai (any compatible endpoint) or google
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature"`
}

// ServerConfig represents the JSON API server
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:               "http://localhost:54321",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
		},
		Source: SourceBackend,
		Target: TargetConfig{
			Brand:  "Samsung",
			Domain: "samsung.com",
		},
		Brands: []string{"Samsung", "LG", "Sony", "TCL", "Hisense"},
		Sources: SourcesConfig{
			SocialDomains:     []string{"reddit.com", "twitter.com", "x.com", "facebook.com", "youtube.com"},
			CompetitorDomains: []string{"lg.com", "sony.com", "tcl.com", "hisense.com"},
		},
		Mirror: MirrorConfig{
			Path:     "~/.geodash/mirror.db",
			Schedule: "0 */6 * * *",
		},
		Insights: InsightsConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
		},
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       "8990",
			CORSOrigin: "*",
		},
		LogLevel: "INFO",
	}
}

// Load loads configuration from file. Missing keys keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()

	return config, nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.Backend.APIKey = key
	}
	if key := os.Getenv(EnvLLMAPIKey); key != "" {
		c.Insights.APIKey = key
	}
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	if c.Target.Brand == "" {
		return fmt.Errorf("target.brand is required")
	}
	switch c.Source {
	case SourceBackend, SourceMirror:
	default:
		return fmt.Errorf("unsupported source: %s (must be %s or %s)", c.Source, SourceBackend, SourceMirror)
	}
	return nil
}

// BuildPalette returns the built-in palette with the configured overrides applied
func (c *Config) BuildPalette() palette.Palette {
	return palette.Merge(palette.DefaultTables(), c.Palette)
}

// MirrorPath returns the mirror database path with ~ expanded
func (c *Config) MirrorPath() (string, error) {
	return ExpandPath(c.Mirror.Path)
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may hold the backend key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the config file path, honoring GEODASH_CONFIG_PATH
func GetConfigPath() string {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".geodash/config.yaml"
	}
	return filepath.Join(home, ".geodash", "config.yaml")
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Exists checks if config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
