package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location, relative to the working
// directory.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	APIBaseURL        string   `yaml:"apiBaseURL"`
	LogLevel          string   `yaml:"logLevel"`
	SessionPath       string   `yaml:"sessionPath"`
	SessionSecret     string   `yaml:"sessionSecret"`
	SessionTTL        string   `yaml:"sessionTTL"`
	RedisAddr         string   `yaml:"redisAddr"`
	RedisPassword     string   `yaml:"redisPassword"`
	PollInterval      string   `yaml:"pollInterval"`
	MaxUploadSize     string   `yaml:"maxUploadSize"`
	AllowedExtensions []string `yaml:"allowedExtensions"`
	DownloadDir       string   `yaml:"downloadDir"`
}

// Load reads config from path (defaults to config.yaml). A missing file is
// not an error: the client runs on defaults plus environment overrides.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyDefaults(&cfg)
	if v := os.Getenv("RESEARCHAI_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("RESEARCHAI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("RESEARCHAI_SESSION_PATH"); v != "" {
		cfg.SessionPath = strings.TrimSpace(v)
	}
	if v := os.Getenv("RESEARCHAI_SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	if v := os.Getenv("RESEARCHAI_SESSION_TTL"); v != "" {
		cfg.SessionTTL = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("RESEARCHAI_POLL_INTERVAL"); v != "" {
		cfg.PollInterval = strings.TrimSpace(v)
	}
	if v := os.Getenv("RESEARCHAI_MAX_UPLOAD_SIZE"); v != "" {
		cfg.MaxUploadSize = strings.TrimSpace(v)
	}
	if v := os.Getenv("RESEARCHAI_ALLOWED_EXTENSIONS"); v != "" {
		cfg.AllowedExtensions = splitCSV(v)
	}
	if v := os.Getenv("RESEARCHAI_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = strings.TrimSpace(v)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:5000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SessionPath == "" {
		cfg.SessionPath = defaultSessionPath()
	}
	if cfg.SessionTTL == "" {
		cfg.SessionTTL = "720h"
	}
	if cfg.PollInterval == "" {
		cfg.PollInterval = "1s"
	}
	if cfg.MaxUploadSize == "" {
		cfg.MaxUploadSize = "10MiB"
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = []string{"pdf", "docx", "doc", "txt"}
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".researchai", "session.json")
	}
	return filepath.Join(home, ".researchai", "session.json")
}

func validateConfig(cfg FileConfig) error {
	if cfg.APIBaseURL == "" {
		return errors.New("config: apiBaseURL is required (set in config.yaml or RESEARCHAI_API_BASE_URL)")
	}
	if cfg.SessionPath == "" && cfg.RedisAddr == "" {
		return errors.New("config: sessionPath or redisAddr is required")
	}
	if _, err := ParseMaxUploadSize(cfg.MaxUploadSize); err != nil {
		return err
	}
	if _, err := ParsePollInterval(cfg.PollInterval); err != nil {
		return err
	}
	if _, err := ParseSessionTTL(cfg.SessionTTL); err != nil {
		return err
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ParseMaxUploadSize parses a human-readable size limit ("10MiB", "512kb").
func ParseMaxUploadSize(size string) (int64, error) {
	n, err := units.RAMInBytes(size)
	if err != nil {
		return 0, fmt.Errorf("invalid maxUploadSize: %w", err)
	}
	if n <= 0 {
		return 0, errors.New("maxUploadSize must be positive")
	}
	return n, nil
}

// ParsePollInterval parses the progress poll interval duration string.
func ParsePollInterval(interval string) (time.Duration, error) {
	dur, err := time.ParseDuration(interval)
	if err != nil {
		return 0, fmt.Errorf("invalid pollInterval duration: %w", err)
	}
	if dur <= 0 {
		return 0, errors.New("pollInterval must be positive")
	}
	return dur, nil
}

// ParseSessionTTL parses the signed/redis session lifetime duration string.
func ParseSessionTTL(ttl string) (time.Duration, error) {
	if ttl == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(ttl)
	if err != nil {
		return 0, fmt.Errorf("invalid sessionTTL duration: %w", err)
	}
	return dur, nil
}
