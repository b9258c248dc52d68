package rdm

// UndefinedSensor is the sensor-number wire value meaning "all sensors".
// It is valid only for SET_SENSOR_VALUE (reset every sensor) and
// RECORD_SENSORS; the definition and value GETs address exactly one sensor
// and reject it.
const UndefinedSensor uint8 = 0xFF

// SensorType and SensorUnit/SensorPrefix follow ANSI E1.20 Table A-9/A-10/
// A-11; only the values this core's sample sensors use are named.
type SensorType uint8

const (
	SensorTypeTemperature SensorType = 0x00
	SensorTypeVoltage     SensorType = 0x01
	SensorTypeOther       SensorType = 0xFF
)

type SensorUnit uint8

const (
	SensorUnitNone        SensorUnit = 0x00
	SensorUnitCentigrade  SensorUnit = 0x01
	SensorUnitVoltsDC     SensorUnit = 0x02
)

type SensorPrefix uint8

const SensorPrefixNone SensorPrefix = 0x00

// PollFunc returns a sensor's current raw reading. Responders that model a
// real sensor close over hardware state here; the simulator's sensors
// close over a synthetic generator.
type PollFunc func() int16

// Sensor is one responder sensor slot: static metadata plus the mutable
// lowest/highest/recorded values every GET_SENSOR_VALUE reports.
type Sensor struct {
	Type              SensorType
	Unit              SensorUnit
	Prefix            SensorPrefix
	RangeMin          int16
	RangeMax          int16
	NormalMin         int16
	NormalMax          int16
	Description       string
	SupportsRecording bool

	// Defined distinguishes a reserved-but-unpopulated sensor slot from a
	// real one. A slot with Defined == false NACKs GET/SET_SENSOR_VALUE
	// with NRDataOutOfRange instead of returning zeroed readings.
	Defined bool

	poll     PollFunc
	lowest   int16
	highest  int16
	recorded int16
	polled   bool
}

// NewSensor builds a defined, pollable sensor.
func NewSensor(t SensorType, unit SensorUnit, description string, supportsRecording bool, poll PollFunc) *Sensor {
	return &Sensor{
		Type:              t,
		Unit:              unit,
		Description:       description,
		SupportsRecording: supportsRecording,
		Defined:           true,
		poll:              poll,
	}
}

// Poll reads the current value, updating the running lowest/highest.
func (s *Sensor) Poll() int16 {
	v := s.poll()
	if !s.polled || v < s.lowest {
		s.lowest = v
	}
	if !s.polled || v > s.highest {
		s.highest = v
	}
	s.polled = true
	return v
}

// Record snapshots the current poll into the recorded value. Only
// meaningful when SupportsRecording is true; callers check that first.
func (s *Sensor) Record() {
	s.recorded = s.Poll()
}

// Reset clears lowest/highest/recorded back to their unpolled state,
// mirroring SET_SENSOR_VALUE with any data but the sensor number.
func (s *Sensor) Reset() {
	s.polled = false
	s.lowest = 0
	s.highest = 0
	s.recorded = 0
}

// Lowest, Highest, Recorded return the last-polled running values.
func (s *Sensor) Lowest() int16   { return s.lowest }
func (s *Sensor) Highest() int16  { return s.highest }
func (s *Sensor) Recorded() int16 { return s.recorded }
