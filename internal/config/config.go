// Package config provides configuration loading and validation for the CLI
// and the HTTP service.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-extractor/internal/logger"
)

const (
	DefaultPort              = 8080
	DefaultUploadDir         = "uploads/resumes"
	DefaultMaxUploadBytes    = 5 << 20
	DefaultWorkers           = 4
	DefaultHeaderSignals     = 2
	DefaultLineTolerance     = 2.0
	DefaultContactBandHeight = 100.0
)

// ExtractionConfig tunes the layout-aware extraction path.
type ExtractionConfig struct {
	HeaderSignalThreshold int     `json:"header_signal_threshold,omitempty" validate:"gte=0,lte=4"`
	LineTolerance         float64 `json:"line_tolerance,omitempty" validate:"gte=0"`
	ContactBandHeight     float64 `json:"contact_band_height,omitempty" validate:"gte=0"`
}

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from the
// environment.
type Config struct {
	DatabaseURL    string           `json:"database_url,omitempty"` // empty selects the in-memory store
	Port           int              `json:"port,omitempty" validate:"gte=0,lte=65535"`
	UploadDir      string           `json:"upload_dir,omitempty"`
	MaxUploadBytes int64            `json:"max_upload_bytes,omitempty" validate:"gte=0"`
	Workers        int              `json:"workers,omitempty" validate:"gte=0,lte=256"`
	SkillsFile     string           `json:"skills_file,omitempty"` // optional YAML of extra skill categories
	Log            logger.Config    `json:"log,omitempty"`
	Extraction     ExtractionConfig `json:"extraction,omitempty"`
}

var validate = validator.New()

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		UploadDir:      DefaultUploadDir,
		MaxUploadBytes: DefaultMaxUploadBytes,
		Workers:        DefaultWorkers,
		Log:            logger.Config{Level: "info", Format: "json"},
		Extraction: ExtractionConfig{
			HeaderSignalThreshold: DefaultHeaderSignals,
			LineTolerance:         DefaultLineTolerance,
			ContactBandHeight:     DefaultContactBandHeight,
		},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from DATABASE_URL, PORT, UPLOAD_DIR, WORKERS,
// SKILLS_FILE, LOG_LEVEL and LOG_FORMAT when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("SKILLS_FILE"); v != "" {
		c.SkillsFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WORKERS %q: %w", v, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Zero values are allowed since MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: unknown log format %q", c.Log.Format)
	}

	if c.SkillsFile != "" {
		if _, err := os.Stat(c.SkillsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: skills file not found: %s", c.SkillsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.SkillsFile == "" {
		result.SkillsFile = defaults.SkillsFile
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}
	if result.Log.TimeFormat == "" {
		result.Log.TimeFormat = defaults.Log.TimeFormat
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	if result.Extraction.HeaderSignalThreshold == 0 {
		result.Extraction.HeaderSignalThreshold = defaults.Extraction.HeaderSignalThreshold
	}
	if result.Extraction.LineTolerance == 0 {
		result.Extraction.LineTolerance = defaults.Extraction.LineTolerance
	}
	if result.Extraction.ContactBandHeight == 0 {
		result.Extraction.ContactBandHeight = defaults.Extraction.ContactBandHeight
	}

	return result
}

// Load reads the optional file at path, applies environment overrides,
// validates and fills defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.MergeWithDefaults(Defaults()), nil
}
