// Package config manages rdmsim responder-fleet configuration using
// koanf/v2.
//
// Supports YAML files and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete rdmsim configuration.
type Config struct {
	Metrics    MetricsConfig     `koanf:"metrics"`
	Log        LogConfig         `koanf:"log"`
	Responders []ResponderConfig `koanf:"responders"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// Responder kind strings, the recognized values of ResponderConfig.Kind.
const (
	KindDimmer         = "dimmer"
	KindAdvancedDimmer = "advanced_dimmer"
	KindMovingLight    = "moving_light"
	KindNetwork        = "network"
	KindSensor         = "sensor"
	KindAckTimer       = "ack_timer"
)

// ValidResponderKinds lists the recognized Kind strings.
var ValidResponderKinds = map[string]bool{
	KindDimmer:         true,
	KindAdvancedDimmer: true,
	KindMovingLight:    true,
	KindNetwork:        true,
	KindSensor:         true,
	KindAckTimer:       true,
}

// ResponderConfig declares one simulated responder.
type ResponderConfig struct {
	// UID is a "manufacturer:device" hex pair, e.g. "7a70:00000001".
	UID string `koanf:"uid"`

	// Kind selects the responder state model to construct.
	Kind string `koanf:"kind"`

	// Model is an RDM device_model value. It is parsed but not used when
	// the fleet is built: each responder kind reports its own built-in
	// device_model in DEVICE_INFO.
	Model uint16 `koanf:"model"`

	// Personalities declares the personality table, in wire (1-based)
	// order. Every Kind but "dimmer" uses this.
	Personalities []PersonalityConfig `koanf:"personalities"`

	// Sensors declares the sensor vector for Kind == "sensor".
	Sensors []SensorConfig `koanf:"sensors"`

	// DNS declares the static DNS records for Kind == "network".
	DNS *DNSConfig `koanf:"dns"`

	// Presets declares the programmable preset count for
	// Kind == "advanced_dimmer", in addition to the permanent read-only
	// slot 0.
	Presets int `koanf:"presets"`
}

// PersonalityConfig declares one entry of a responder's personality table.
type PersonalityConfig struct {
	Footprint   uint16 `koanf:"footprint"`
	Description string `koanf:"description"`
}

// SensorConfig declares one entry of a sensor responder's sensor vector.
type SensorConfig struct {
	Type              string `koanf:"type"`
	Unit              string `koanf:"unit"`
	Description       string `koanf:"description"`
	SupportsRecording bool   `koanf:"supports_recording"`
}

// DNSConfig declares the static DNS records a NetworkResponder reports.
type DNSConfig struct {
	Hostname    string   `koanf:"hostname"`
	Domain      string   `koanf:"domain"`
	NameServers []string `koanf:"name_servers"`
}

// ParseUID parses the ResponderConfig's UID string.
func (rc ResponderConfig) ParseUID() (rdm.UID, error) {
	return rdm.ParseUID(rc.UID)
}

// ToPersonalities converts the declared personality table to rdm.Personalities.
func (rc ResponderConfig) ToPersonalities() rdm.Personalities {
	out := make(rdm.Personalities, len(rc.Personalities))
	for i, p := range rc.Personalities {
		out[i] = rdm.Personality{Footprint: p.Footprint, Description: p.Description}
	}
	return out
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults: no
// responders declared, metrics and logging enabled.
func DefaultConfig() *Config {
	return &Config{
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for rdmsim configuration.
// Variables are named RDMD_<section>_<key>, e.g. RDMD_METRICS_ADDR.
const envPrefix = "RDMD_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (RDMD_ prefix), and merges on top of DefaultConfig().
// Missing fields inherit defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms RDMD_METRICS_ADDR -> metrics.addr.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "_", ".")
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"metrics.addr": defaults.Metrics.Addr,
		"metrics.path": defaults.Metrics.Path,
		"log.level":    defaults.Log.Level,
		"log.format":   defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyMetricsAddr indicates the metrics listen address is empty.
	ErrEmptyMetricsAddr = errors.New("metrics.addr must not be empty")

	// ErrInvalidUID indicates a responder's UID string did not parse.
	ErrInvalidUID = errors.New("responder UID is invalid")

	// ErrInvalidResponderKind indicates a responder's Kind is unrecognized.
	ErrInvalidResponderKind = errors.New("responder kind must be one of dimmer, advanced_dimmer, moving_light, network, sensor, ack_timer")

	// ErrDuplicateResponderUID indicates two responders share the same UID.
	ErrDuplicateResponderUID = errors.New("duplicate responder UID")

	// ErrFootprintOutOfRange indicates a personality's footprint exceeds
	// the DMX universe size.
	ErrFootprintOutOfRange = errors.New("personality footprint exceeds 512")
)

// Validate checks the configuration for logical errors.
func Validate(cfg *Config) error {
	if cfg.Metrics.Addr == "" {
		return ErrEmptyMetricsAddr
	}

	return validateResponders(cfg.Responders)
}

// validateResponders checks each declarative responder entry for
// correctness: UID parseability, Kind validity, footprint bounds,
// description lengths that fit their 32-byte wire fields, and duplicate
// UIDs across the fleet.
func validateResponders(responders []ResponderConfig) error {
	seen := make(map[string]struct{}, len(responders))

	for i, rc := range responders {
		if _, err := rc.ParseUID(); err != nil {
			return fmt.Errorf("responders[%d]: %w: %w", i, ErrInvalidUID, err)
		}

		if !ValidResponderKinds[rc.Kind] {
			return fmt.Errorf("responders[%d] kind %q: %w", i, rc.Kind, ErrInvalidResponderKind)
		}

		for j, p := range rc.Personalities {
			if p.Footprint > rdm.DMXUniverseSize {
				return fmt.Errorf("responders[%d].personalities[%d]: %w", i, j, ErrFootprintOutOfRange)
			}
			if len(p.Description) > rdm.MaxRDMStringLength {
				return fmt.Errorf("responders[%d].personalities[%d] description: %w", i, j, rdm.ErrStringTooLong)
			}
		}

		for j, s := range rc.Sensors {
			if len(s.Description) > rdm.MaxRDMStringLength {
				return fmt.Errorf("responders[%d].sensors[%d] description: %w", i, j, rdm.ErrStringTooLong)
			}
		}

		if _, dup := seen[rc.UID]; dup {
			return fmt.Errorf("responders[%d] uid %q: %w", i, rc.UID, ErrDuplicateResponderUID)
		}
		seen[rc.UID] = struct{}{}
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
