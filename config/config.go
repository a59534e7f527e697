// Package config loads lifeplan settings from a JSONC file, .env and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ridoystarlord/lifeplan/utils"
	"github.com/tailscale/hujson"
)

// FileName is the config file looked up in the working directory.
const FileName = "lifeplan.json"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config")
)

// Config holds all configuration options.
type Config struct {
	Server    ServerConfig   `json:"server"`
	Database  DatabaseConfig `json:"database"`
	Client    ClientConfig   `json:"client"`
	Verbosity int            `json:"verbosity"`
	LogFile   string         `json:"log_file,omitempty"`
}

type ServerConfig struct {
	Addr        string `json:"addr"`
	UploadsDir  string `json:"uploads_dir"`
	BodyLimitMB int    `json:"body_limit_mb"`
}

type DatabaseConfig struct {
	URL         string `json:"url,omitempty"`
	AutoMigrate bool   `json:"auto_migrate"`
	MaxConns    int32  `json:"max_conns,omitempty"`
}

type ClientConfig struct {
	ServerURL      string `json:"server_url"`
	DataDir        string `json:"data_dir"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Timeout returns the client request timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8000",
			UploadsDir:  filepath.Join("uploads", "assets"),
			BodyLimitMB: 16,
		},
		Database: DatabaseConfig{
			AutoMigrate: true,
		},
		Client: ClientConfig{
			ServerURL:      "http://localhost:8000",
			DataDir:        "data",
			TimeoutSeconds: 10,
		},
		Verbosity: 1,
	}
}

// Load builds the configuration with the following precedence (highest wins):
// defaults, the config file, environment variables (after .env is loaded).
// An explicit path must exist; the default lifeplan.json is optional.
func Load(workDir, path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	file, mustExist := filepath.Join(workDir, FileName), false
	if path != "" {
		file, mustExist = path, true
		if !filepath.IsAbs(file) {
			file = filepath.Join(workDir, file)
		}
	}

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, file, err)
		}
	case os.IsNotExist(err) && !mustExist:
	case os.IsNotExist(err):
		return Config{}, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
	default:
		return Config{}, fmt.Errorf("read config %s: %w", file, err)
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	applyEnv(&cfg, getenv)

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errConfigInvalid, err)
	}
	return cfg, nil
}

// parse decodes JSONC on top of the values already in cfg, so absent keys keep their defaults.
func parse(data []byte, cfg *Config) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("LIFEPLAN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("LIFEPLAN_UPLOADS_DIR"); v != "" {
		cfg.Server.UploadsDir = v
	}
	if v := getenv("LIFEPLAN_SERVER_URL"); v != "" {
		cfg.Client.ServerURL = v
	}
	if v := getenv("LIFEPLAN_DATA_DIR"); v != "" {
		cfg.Client.DataDir = v
	}
	if v := getenv("LIFEPLAN_AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Database.AutoMigrate = b
		}
	}
	if url, err := utils.DatabaseURL(getenv); err == nil {
		cfg.Database.URL = url
	}
}

func validate(cfg Config) error {
	if cfg.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	if cfg.Server.UploadsDir == "" {
		return errors.New("server.uploads_dir cannot be empty")
	}
	if cfg.Server.BodyLimitMB <= 0 {
		return errors.New("server.body_limit_mb must be positive")
	}
	if cfg.Client.TimeoutSeconds <= 0 {
		return errors.New("client.timeout_seconds must be positive")
	}
	if cfg.Verbosity < 0 {
		return errors.New("verbosity cannot be negative")
	}
	return nil
}

// DatabaseURL returns the configured connection string or utils.ErrDatabaseURLMissing.
func (c Config) DatabaseURL() (string, error) {
	if c.Database.URL == "" {
		return "", utils.ErrDatabaseURLMissing
	}
	return c.Database.URL, nil
}
