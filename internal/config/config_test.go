package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openlighting/rdmresponder/internal/config"
	"github.com/openlighting/rdmresponder/internal/rdm"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	if len(cfg.Responders) != 0 {
		t.Errorf("Responders = %v, want empty", cfg.Responders)
	}

	// Defaults must pass validation.
	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
responders:
  - uid: "7a70:00000001"
    kind: dimmer
    model: 1
    personalities:
      - footprint: 1
        description: "1 Channel"
      - footprint: 3
        description: "3 Channel RGB"
  - uid: "7a70:00000002"
    kind: sensor
    model: 9
    sensors:
      - type: temperature
        unit: centigrade
        description: "Internal Temperature"
        supports_recording: true
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}

	if len(cfg.Responders) != 2 {
		t.Fatalf("len(Responders) = %d, want 2", len(cfg.Responders))
	}

	dimmer := cfg.Responders[0]
	if dimmer.UID != "7a70:00000001" {
		t.Errorf("Responders[0].UID = %q, want %q", dimmer.UID, "7a70:00000001")
	}
	if dimmer.Kind != config.KindDimmer {
		t.Errorf("Responders[0].Kind = %q, want %q", dimmer.Kind, config.KindDimmer)
	}
	if len(dimmer.Personalities) != 2 {
		t.Fatalf("len(Responders[0].Personalities) = %d, want 2", len(dimmer.Personalities))
	}
	if dimmer.Personalities[1].Footprint != 3 {
		t.Errorf("Responders[0].Personalities[1].Footprint = %d, want 3", dimmer.Personalities[1].Footprint)
	}

	sensor := cfg.Responders[1]
	if sensor.Kind != config.KindSensor {
		t.Errorf("Responders[1].Kind = %q, want %q", sensor.Kind, config.KindSensor)
	}
	if len(sensor.Sensors) != 1 || sensor.Sensors[0].Type != "temperature" {
		t.Errorf("Responders[1].Sensors = %+v, want one temperature sensor", sensor.Sensors)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	// Partial YAML: only override log.level. Everything else should
	// inherit from defaults.
	yamlContent := `
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Default values should be preserved.
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want default %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "empty metrics addr",
			modify: func(cfg *config.Config) {
				cfg.Metrics.Addr = ""
			},
			wantErr: config.ErrEmptyMetricsAddr,
		},
		{
			name: "invalid responder UID",
			modify: func(cfg *config.Config) {
				cfg.Responders = []config.ResponderConfig{
					{UID: "not-a-uid", Kind: config.KindDimmer},
				}
			},
			wantErr: config.ErrInvalidUID,
		},
		{
			name: "unknown responder kind",
			modify: func(cfg *config.Config) {
				cfg.Responders = []config.ResponderConfig{
					{UID: "7a70:00000001", Kind: "laser"},
				}
			},
			wantErr: config.ErrInvalidResponderKind,
		},
		{
			name: "duplicate responder UID",
			modify: func(cfg *config.Config) {
				cfg.Responders = []config.ResponderConfig{
					{UID: "7a70:00000001", Kind: config.KindDimmer},
					{UID: "7a70:00000001", Kind: config.KindNetwork},
				}
			},
			wantErr: config.ErrDuplicateResponderUID,
		},
		{
			name: "personality description too long for the wire",
			modify: func(cfg *config.Config) {
				cfg.Responders = []config.ResponderConfig{
					{
						UID:  "7a70:00000001",
						Kind: config.KindDimmer,
						Personalities: []config.PersonalityConfig{
							{Footprint: 1, Description: strings.Repeat("x", rdm.MaxRDMStringLength+1)},
						},
					},
				}
			},
			wantErr: rdm.ErrStringTooLong,
		},
		{
			name: "sensor description too long for the wire",
			modify: func(cfg *config.Config) {
				cfg.Responders = []config.ResponderConfig{
					{
						UID:  "7a70:00000001",
						Kind: config.KindSensor,
						Sensors: []config.SensorConfig{
							{Type: "temperature", Description: strings.Repeat("x", rdm.MaxRDMStringLength+1)},
						},
					},
				}
			},
			wantErr: rdm.ErrStringTooLong,
		},
		{
			name: "oversize personality footprint",
			modify: func(cfg *config.Config) {
				cfg.Responders = []config.ResponderConfig{
					{
						UID:  "7a70:00000001",
						Kind: config.KindDimmer,
						Personalities: []config.PersonalityConfig{
							{Footprint: 513, Description: "too big"},
						},
					},
				}
			},
			wantErr: config.ErrFootprintOutOfRange,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsAllKinds(t *testing.T) {
	t.Parallel()

	for kind := range config.ValidResponderKinds {
		cfg := config.DefaultConfig()
		cfg.Responders = []config.ResponderConfig{
			{UID: "7a70:00000001", Kind: kind},
		}

		if err := config.Validate(cfg); err != nil {
			t.Errorf("Validate() with kind %q returned error: %v", kind, err)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "Error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/rdmsim.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

func TestResponderConfigParseUID(t *testing.T) {
	t.Parallel()

	rc := config.ResponderConfig{UID: "7a70:00000001"}
	uid, err := rc.ParseUID()
	if err != nil {
		t.Fatalf("ParseUID() error: %v", err)
	}
	if uid.String() != "7a70:00000001" {
		t.Errorf("ParseUID() = %s, want 7a70:00000001", uid)
	}
}

func TestResponderConfigToPersonalities(t *testing.T) {
	t.Parallel()

	rc := config.ResponderConfig{
		Personalities: []config.PersonalityConfig{
			{Footprint: 1, Description: "1 Channel"},
			{Footprint: 3, Description: "3 Channel RGB"},
		},
	}

	got := rc.ToPersonalities()
	if len(got) != 2 {
		t.Fatalf("len(ToPersonalities()) = %d, want 2", len(got))
	}
	if got[0].Footprint != 1 || got[1].Footprint != 3 {
		t.Errorf("ToPersonalities() = %+v, want footprints [1, 3]", got)
	}
}

// -------------------------------------------------------------------------
// Environment Variable Override Tests
// -------------------------------------------------------------------------

func TestLoadEnvOverrides(t *testing.T) {
	// Environment variable tests cannot be parallel because they modify
	// process-wide state (os.Setenv).

	yamlContent := `
metrics:
  addr: ":9100"
log:
  level: "info"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("RDMD_METRICS_ADDR", ":9300")
	t.Setenv("RDMD_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Metrics.Addr != ":9300" {
		t.Errorf("Metrics.Addr = %q, want %q (from env)", cfg.Metrics.Addr, ":9300")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (from env)", cfg.Log.Level, "debug")
	}
}

func TestLoadEnvOverridesMetricsPath(t *testing.T) {
	yamlContent := `
metrics:
  addr: ":9100"
  path: "/metrics"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("RDMD_METRICS_PATH", "/custom")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Metrics.Path != "/custom" {
		t.Errorf("Metrics.Path = %q, want %q (from env)", cfg.Metrics.Path, "/custom")
	}
}

// writeTemp creates a temporary YAML file and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "rdmsim.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
