package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cadastra/registryd/internal/domain"
)

// Config holds the registryd configuration. Loaded once at startup and
// immutable afterwards; a restart is required to pick up changes.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	Data    DataConfig    `yaml:"data"`
	Fields  FieldsConfig  `yaml:"fields"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig holds agent metadata. Opaque to the search core; surfaced in
// the agent card and the root view.
type AgentConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// DataConfig holds the registry table source settings.
type DataConfig struct {
	CSVPath  string `yaml:"csv_path"`
	Encoding string `yaml:"encoding"` // utf-8, latin-1, windows-1252 (default: utf-8)
}

// FieldsConfig holds the field-exposure policy. Either list may be empty:
// an empty exposed_fields is a valid degenerate case where matches are
// counted but carry no fields.
type FieldsConfig struct {
	SearchableFields []string `yaml:"searchable_fields"`
	ExposedFields    []string `yaml:"exposed_fields"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	MetadataEndpoint string `yaml:"metadata_endpoint"`
	ReadTimeoutSec   int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec  int    `yaml:"write_timeout_sec"`
	ShutdownSec      int    `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("%w: read config %s: %w", domain.ErrConfig, path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config: %w", domain.ErrConfig, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Data.Encoding == "" {
		c.Data.Encoding = "utf-8"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.MetadataEndpoint == "" {
		c.Server.MetadataEndpoint = "/metadata"
	}
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = 10
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = 10
	}
	if c.Server.ShutdownSec <= 0 {
		c.Server.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness. All failures wrap
// domain.ErrConfig and abort startup; there is no partial-start mode.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535, got %d", domain.ErrConfig, c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.MetadataEndpoint, "/") {
		return fmt.Errorf("%w: server.metadata_endpoint must start with /, got %q",
			domain.ErrConfig, c.Server.MetadataEndpoint)
	}
	if c.Data.CSVPath == "" {
		return fmt.Errorf("%w: data.csv_path is required", domain.ErrConfig)
	}
	if !fileExists(c.Data.CSVPath) {
		return fmt.Errorf("%w: data.csv_path %q does not exist", domain.ErrConfig, c.Data.CSVPath)
	}
	switch strings.ToLower(c.Data.Encoding) {
	case "utf-8", "utf8", "latin-1", "iso-8859-1", "windows-1252":
	default:
		return fmt.Errorf("%w: data.encoding %q is not supported", domain.ErrConfig, c.Data.Encoding)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
