package rdm

// SensorResponder hosts a heterogeneous list of Sensor values — a mix of
// synthetic temperature/voltage readings and host load-average readings
// — behind the GET_SENSOR_DEFINITION / GET_SENSOR_VALUE / SET_SENSOR_VALUE
// / RECORD_SENSORS PIDs.
type SensorResponder struct {
	uid           UID
	startAddress  uint16
	identify      bool
	personalities *PersonalityManager
	sensors       []*Sensor
}

// NewSensorResponder builds a responder over the given sensors, indexed
// by their position in the slice (sensor number == slice index).
func NewSensorResponder(uid UID, personalities Personalities, sensors []*Sensor) *SensorResponder {
	return &SensorResponder{
		uid:           uid,
		startAddress:  1,
		personalities: NewPersonalityManager(personalities),
		sensors:       sensors,
	}
}

// LoadAverageSensor builds a Sensor that reports a host's load average
// (scaled by 100, since RDM sensor values are integral) via poll.
func LoadAverageSensor(description string, poll func() float64) *Sensor {
	return NewSensor(SensorTypeOther, SensorUnitNone, description, false, func() int16 {
		v := poll() * 100
		switch {
		case v > 32767:
			return 32767
		case v < -32768:
			return -32768
		default:
			return int16(v)
		}
	})
}

var sensorResponderOps = NewResponderOps(sensorResponderParamHandlers)

var sensorResponderParamHandlers = []ParamHandler[*SensorResponder]{
	{PID: PIDDeviceInfo, Get: (*SensorResponder).getDeviceInfo},
	{PID: PIDDmxStartAddress, Get: (*SensorResponder).getDmxStartAddress},
	{PID: PIDIdentifyDevice, Get: (*SensorResponder).getIdentifyDevice, Set: (*SensorResponder).setIdentifyDevice},
	{PID: PIDSensorDefinition, Get: (*SensorResponder).getSensorDefinition},
	{PID: PIDSensorValue, Get: (*SensorResponder).getSensorValue, Set: (*SensorResponder).setSensorValue},
	{PID: PIDRecordSensors, Set: (*SensorResponder).recordSensors},
	{PID: PIDSoftwareVersionLabel, Get: (*SensorResponder).getSoftwareVersionLabel},
}

func (r *SensorResponder) SendRDMRequest(req *RDMRequest, onComplete Callback) {
	sensorResponderOps.HandleRDMRequest(r, r.uid, RootRDMDevice, req, onComplete)
}

func (r *SensorResponder) getDeviceInfo(req *RDMRequest) *RDMResponse {
	return GetDeviceInfo(req, DeviceInfo{
		Model:           DummyDeviceModel,
		ProductCategory: ProductCategorySensor,
		SoftwareVersion: 1,
		DmxStartAddress: r.startAddress,
		SensorCount:     uint8(len(r.sensors)), //nolint:gosec // bounded by configuration
	}, r.personalities)
}

func (r *SensorResponder) getDmxStartAddress(req *RDMRequest) *RDMResponse {
	return GetDmxAddress(req, r.startAddress, r.personalities.Footprint())
}

func (r *SensorResponder) getIdentifyDevice(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, r.identify)
}

func (r *SensorResponder) setIdentifyDevice(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.identify = v
	return EmptySetResponse(req)
}

func (r *SensorResponder) getSensorDefinition(req *RDMRequest) *RDMResponse {
	n, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	return GetSensorDefinition(req, r.sensors, n)
}

func (r *SensorResponder) getSensorValue(req *RDMRequest) *RDMResponse {
	n, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	return GetSensorValue(req, r.sensors, n)
}

func (r *SensorResponder) setSensorValue(req *RDMRequest) *RDMResponse {
	n, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	return SetSensorValue(req, r.sensors, n)
}

func (r *SensorResponder) recordSensors(req *RDMRequest) *RDMResponse {
	n, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	return RecordSensor(req, r.sensors, n)
}

func (r *SensorResponder) getSoftwareVersionLabel(req *RDMRequest) *RDMResponse {
	return GetString(req, "rdmsim sensor responder")
}

// UID returns the responder's own RDM identifier.
func (r *SensorResponder) UID() UID {
	return r.uid
}
