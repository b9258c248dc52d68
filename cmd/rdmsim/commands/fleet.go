package commands

import (
	"fmt"

	"github.com/openlighting/rdmresponder/internal/config"
	"github.com/openlighting/rdmresponder/internal/rdm"
)

// defaultPresetCount is the number of programmable presets an
// advanced_dimmer responder gets when its configuration leaves Presets
// unset (or zero).
const defaultPresetCount = 4

// buildFleet constructs one rdm.Responder per declared ResponderConfig,
// keyed by UID string, so the CLI and shell can address a simulated
// responder the same way a controller would.
func buildFleet(cfg *config.Config) (map[string]rdm.Responder, error) {
	fleet := make(map[string]rdm.Responder, len(cfg.Responders))

	for i, rc := range cfg.Responders {
		uid, err := rc.ParseUID()
		if err != nil {
			return nil, fmt.Errorf("responders[%d]: %w", i, err)
		}

		responder, err := buildResponder(rc, uid)
		if err != nil {
			return nil, fmt.Errorf("responders[%d] (%s): %w", i, uid, err)
		}

		fleet[uid.String()] = responder
	}

	return fleet, nil
}

func buildResponder(rc config.ResponderConfig, uid rdm.UID) (rdm.Responder, error) {
	personalities := rc.ToPersonalities()

	switch rc.Kind {
	case config.KindDimmer:
		sub := rdm.NewDimmerSubDevice(1)
		return rdm.NewDimmerRootDevice(uid, map[uint16]*rdm.DimmerSubDevice{1: sub})

	case config.KindAdvancedDimmer:
		presetCount := rc.Presets
		if presetCount <= 0 {
			presetCount = defaultPresetCount
		}
		return rdm.NewAdvancedDimmerResponder(uid, personalities, presetCount), nil

	case config.KindMovingLight:
		return rdm.NewMovingLightResponder(uid, personalities), nil

	case config.KindNetwork:
		return rdm.NewNetworkResponder(uid, personalities, buildDNS(rc.DNS)), nil

	case config.KindSensor:
		return rdm.NewSensorResponder(uid, personalities, buildSensors(rc.Sensors)), nil

	case config.KindAckTimer:
		return rdm.NewAckTimerResponder(uid, personalities, rdm.SystemClock{}), nil

	default:
		return nil, fmt.Errorf("unknown responder kind %q", rc.Kind)
	}
}

func buildDNS(dc *config.DNSConfig) rdm.StaticDNSConfig {
	if dc == nil {
		return rdm.StaticDNSConfig{}
	}
	return rdm.StaticDNSConfig{
		Host:        dc.Hostname,
		Domain:      dc.Domain,
		NameServers: dc.NameServers,
	}
}

func buildSensors(scs []config.SensorConfig) []*rdm.Sensor {
	sensors := make([]*rdm.Sensor, 0, len(scs))
	for _, sc := range scs {
		sensors = append(sensors, rdm.NewSensor(
			sensorType(sc.Type),
			sensorUnit(sc.Unit),
			sc.Description,
			sc.SupportsRecording,
			syntheticPoll(),
		))
	}
	return sensors
}

func sensorType(s string) rdm.SensorType {
	switch s {
	case "temperature":
		return rdm.SensorTypeTemperature
	case "voltage":
		return rdm.SensorTypeVoltage
	default:
		return rdm.SensorTypeOther
	}
}

func sensorUnit(s string) rdm.SensorUnit {
	switch s {
	case "centigrade":
		return rdm.SensorUnitCentigrade
	case "volts_dc":
		return rdm.SensorUnitVoltsDC
	default:
		return rdm.SensorUnitNone
	}
}

// syntheticPoll returns a PollFunc generating a slowly drifting reading,
// standing in for a real sensor's ADC read.
func syntheticPoll() rdm.PollFunc {
	var tick int16
	return func() int16 {
		tick++
		return 200 + (tick % 20)
	}
}
