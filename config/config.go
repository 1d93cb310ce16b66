package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAddr   = ":8000"
	DefaultLogDir = "log"

	// Scroll acceleration curve
	DefaultScrollBase       = 8
	DefaultScrollRate       = 15.0 // magnitude units per second held
	DefaultScrollMax        = 100
	DefaultScrollUnit       = 4
	DefaultScrollIntervalMS = 4

	DefaultClassifierTimeoutSec = 30
	DefaultClassifierInputSize  = 224
	DefaultClassifierCacheSize  = 128
)

// Config is the process-wide configuration, built once at startup
type Config struct {
	Server     ServerConfig     `json:"server"`
	Scroll     ScrollConfig     `json:"scroll"`
	Safety     SafetyConfig     `json:"safety"`
	Classifier ClassifierConfig `json:"classifier"`
	Journal    JournalConfig    `json:"journal"`
	Tray       TrayConfig       `json:"tray"`

	// DryRun logs input primitives instead of sending them to the OS
	DryRun bool `json:"dry_run"`
}

type ServerConfig struct {
	Addr   string `json:"addr"`
	LogDir string `json:"log_dir"`
}

type ScrollConfig struct {
	BaseMagnitude    int     `json:"base_magnitude"`
	AccelerationRate float64 `json:"acceleration_rate"`
	MaxMagnitude     int     `json:"max_magnitude"`
	UnitSize         int     `json:"unit_size"`
	IntervalMS       int     `json:"interval_ms"`
}

// Interval is the pause between two wheel calls of one scroll
func (s ScrollConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// SafetyConfig controls the automation library's interlocks.
// With interlocks enabled, input is refused while the pointer rests in a screen
// corner and every primitive is followed by a short settle delay.
type SafetyConfig struct {
	DisableInterlocks bool `json:"disable_interlocks"`
}

// ClassifierConfig points at an image-classification inference endpoint.
// An empty Endpoint disables POST /classify.
type ClassifierConfig struct {
	Endpoint   string `json:"endpoint"`
	Token      string `json:"token,omitempty"`
	Model      string `json:"model"`
	TimeoutSec int    `json:"timeout_sec"`
	InputSize  int    `json:"input_size"` // images are scaled to fit InputSize x InputSize, 0 keeps the original
	CacheSize  int    `json:"cache_size"`
}

func (c ClassifierConfig) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

func (c ClassifierConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// JournalConfig enables the SQLite action history when Path is set
type JournalConfig struct {
	Path string `json:"path"`
}

type TrayConfig struct {
	Enabled bool `json:"enabled"`
}

// Default returns a Config populated with the built-in defaults
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:   DefaultAddr,
			LogDir: DefaultLogDir,
		},
		Scroll: ScrollConfig{
			BaseMagnitude:    DefaultScrollBase,
			AccelerationRate: DefaultScrollRate,
			MaxMagnitude:     DefaultScrollMax,
			UnitSize:         DefaultScrollUnit,
			IntervalMS:       DefaultScrollIntervalMS,
		},
		Classifier: ClassifierConfig{
			Model:      "hand-gesture",
			TimeoutSec: DefaultClassifierTimeoutSec,
			InputSize:  DefaultClassifierInputSize,
			CacheSize:  DefaultClassifierCacheSize,
		},
	}
}

// Load reads a JSON config file on top of the defaults.
// A missing file is not an error when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays GESTURE_* environment variables
func (c *Config) ApplyEnv() {
	c.Server.Addr = envOr("GESTURE_ADDR", c.Server.Addr)
	c.Server.LogDir = envOr("GESTURE_LOG_DIR", c.Server.LogDir)

	c.Scroll.BaseMagnitude = envOrInt("GESTURE_SCROLL_BASE", c.Scroll.BaseMagnitude)
	c.Scroll.AccelerationRate = envOrFloat("GESTURE_SCROLL_RATE", c.Scroll.AccelerationRate)
	c.Scroll.MaxMagnitude = envOrInt("GESTURE_SCROLL_MAX", c.Scroll.MaxMagnitude)
	c.Scroll.UnitSize = envOrInt("GESTURE_SCROLL_UNIT", c.Scroll.UnitSize)
	c.Scroll.IntervalMS = envOrInt("GESTURE_SCROLL_INTERVAL_MS", c.Scroll.IntervalMS)

	c.Safety.DisableInterlocks = envOrBool("GESTURE_DISABLE_INTERLOCKS", c.Safety.DisableInterlocks)

	c.Classifier.Endpoint = envOr("GESTURE_CLASSIFIER_ENDPOINT", c.Classifier.Endpoint)
	c.Classifier.Token = envOr("GESTURE_CLASSIFIER_TOKEN", c.Classifier.Token)
	c.Classifier.Model = envOr("GESTURE_CLASSIFIER_MODEL", c.Classifier.Model)
	c.Classifier.TimeoutSec = envOrInt("GESTURE_CLASSIFIER_TIMEOUT_SEC", c.Classifier.TimeoutSec)
	c.Classifier.InputSize = envOrInt("GESTURE_CLASSIFIER_INPUT_SIZE", c.Classifier.InputSize)
	c.Classifier.CacheSize = envOrInt("GESTURE_CLASSIFIER_CACHE_SIZE", c.Classifier.CacheSize)

	c.Journal.Path = envOr("GESTURE_JOURNAL_PATH", c.Journal.Path)
	c.Tray.Enabled = envOrBool("GESTURE_TRAY", c.Tray.Enabled)
	c.DryRun = envOrBool("GESTURE_DRY_RUN", c.DryRun)
}

// Validate rejects settings the scroll curve and classifier cannot work with
func (c Config) Validate() error {
	s := c.Scroll
	if s.UnitSize <= 0 {
		return errors.New("scroll.unit_size must be positive")
	}
	if s.BaseMagnitude < 0 || s.MaxMagnitude < 0 {
		return errors.New("scroll magnitudes must not be negative")
	}
	if s.MaxMagnitude < s.BaseMagnitude {
		return fmt.Errorf("scroll.max_magnitude (%d) is below scroll.base_magnitude (%d)", s.MaxMagnitude, s.BaseMagnitude)
	}
	if s.AccelerationRate < 0 {
		return errors.New("scroll.acceleration_rate must not be negative")
	}
	if s.IntervalMS < 0 {
		return errors.New("scroll.interval_ms must not be negative")
	}
	if c.Classifier.Enabled() && c.Classifier.TimeoutSec <= 0 {
		return errors.New("classifier.timeout_sec must be positive")
	}
	if c.Classifier.InputSize < 0 || c.Classifier.CacheSize < 0 {
		return errors.New("classifier sizes must not be negative")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envOrFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envOrBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
