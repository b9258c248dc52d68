package rdm

// DeviceInfo is the set of fields GetDeviceInfo packs into the 19-byte
// DEVICE_INFO record. Callers assemble it from their own state plus a
// PersonalityManager.
type DeviceInfo struct {
	Model             uint16
	ProductCategory   ProductCategory
	SoftwareVersion   uint32
	DmxStartAddress   uint16
	SubDeviceCount    uint16
	SensorCount       uint8
}

// GetDeviceInfo emits the bit-exact 19-byte DEVICE_INFO response body. When
// pm is non-nil, footprint/current-personality/personality-count are read
// from it and DmxStartAddress is overridden to 0xFFFF when the active
// footprint is 0 (E1.20 "no footprint" sentinel).
func GetDeviceInfo(req *RDMRequest, info DeviceInfo, pm *PersonalityManager) *RDMResponse {
	footprint := uint16(0)
	currentPersonality := uint8(0)
	personalityCount := uint8(0)
	startAddress := info.DmxStartAddress

	if pm != nil {
		footprint = pm.Footprint()
		currentPersonality = pm.Current()
		personalityCount = pm.Count()
		if footprint == 0 {
			startAddress = 0xFFFF
		}
	}

	w := newBufWriter().
		WriteU16BE(RdmVersion).
		WriteU16BE(info.Model).
		WriteU16BE(uint16(info.ProductCategory)).
		WriteU32BE(info.SoftwareVersion).
		WriteU16BE(footprint).
		WriteU8(currentPersonality).
		WriteU8(personalityCount).
		WriteU16BE(startAddress).
		WriteU16BE(info.SubDeviceCount).
		WriteU8(info.SensorCount)

	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetProductDetailList emits N big-endian uint16 product-detail codes.
func GetProductDetailList(req *RDMRequest, codes []uint16) *RDMResponse {
	w := newBufWriter()
	for _, c := range codes {
		w.WriteU16BE(c)
	}
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetPersonalityResponse emits (current_personality, personality_count).
func GetPersonalityResponse(req *RDMRequest, pm *PersonalityManager) *RDMResponse {
	w := newBufWriter().WriteU8(pm.Current()).WriteU8(pm.Count())
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// SetPersonality decodes a 1-based uint8 personality number and activates
// it, enforcing start+footprint-1 <= 512. startAddress is the responder's
// current DMX start address.
func SetPersonality(req *RDMRequest, pm *PersonalityManager, startAddress uint16) *RDMResponse {
	n, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}

	p, found := pm.Get(n)
	if !found {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}

	if p.Footprint != 0 && uint32(startAddress)+uint32(p.Footprint)-1 > DMXUniverseSize {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}

	pm.SetCurrent(n)
	return EmptySetResponse(req)
}

// GetPersonalityDescription decodes a uint8 personality number and returns
// (personality, footprint, 32-char description).
func GetPersonalityDescription(req *RDMRequest, pm *PersonalityManager) *RDMResponse {
	n, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}

	p, found := pm.Get(n)
	if !found {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}

	w := newBufWriter().WriteU8(n).WriteU16BE(p.Footprint).WriteFixedString32(p.Description)
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetDmxAddress returns the stored start address, or 0xFFFF when footprint
// is 0.
func GetDmxAddress(req *RDMRequest, startAddress, footprint uint16) *RDMResponse {
	addr := startAddress
	if footprint == 0 {
		addr = 0xFFFF
	}
	return GetResponseFromData(req, newBufWriter().WriteU16BE(addr).Bytes(), ResponseTypeAck, 0)
}

// DMXUniverseSize is the number of slots in one DMX512 universe.
const DMXUniverseSize = 512

// SetDmxAddress decodes a uint16 DMX start address and validates it against
// the active footprint. A zero footprint is rejected before the address
// range is checked, so a misconfigured zero-footprint responder always
// NACKs for the same reason regardless of the requested address.
func SetDmxAddress(req *RDMRequest, footprint uint16) (newAddress uint16, resp *RDMResponse) {
	addr, ok := ExtractUint16(req.ParamData)
	if !ok {
		return 0, NackWithReason(req, NRFormatError, 0)
	}

	if footprint == 0 {
		return 0, NackWithReason(req, NRDataOutOfRange, 0)
	}

	if addr == 0 || uint32(addr)+uint32(footprint)-1 > DMXUniverseSize {
		return 0, NackWithReason(req, NRDataOutOfRange, 0)
	}

	return addr, EmptySetResponse(req)
}

// GetRealTimeClockResponse emits a 7-byte record from the wall clock: year
// (uint16) then month, day, hour, minute, second.
func GetRealTimeClockResponse(req *RDMRequest) *RDMResponse {
	now := RealTimeClock()
	w := newBufWriter().
		WriteU16BE(uint16(now.Year())). //nolint:gosec // calendar year fits uint16 until year 65535
		WriteU8(uint8(now.Month())).
		WriteU8(uint8(now.Day())).
		WriteU8(uint8(now.Hour())).
		WriteU8(uint8(now.Minute())).
		WriteU8(uint8(now.Second()))
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetString emits a fixed-max-32-byte string, no padding, no terminator.
func GetString(req *RDMRequest, value string) *RDMResponse {
	w := newBufWriter().WriteFixedString32(value)
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// SetString decodes a fixed-max-32-byte string. An oversized payload is a
// format error, not a range error.
func SetString(req *RDMRequest) (string, *RDMResponse) {
	if len(req.ParamData) > MaxRDMStringLength {
		return "", NackWithReason(req, NRFormatError, 0)
	}
	return string(req.ParamData), EmptySetResponse(req)
}

// GetBoolValue emits a single 0x00/0x01 byte.
func GetBoolValue(req *RDMRequest, value bool) *RDMResponse {
	w := newBufWriter().WriteBool(value)
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// SetBoolValue decodes a single byte. A payload of the wrong length is
// NRFormatError; a value other than 0 or 1 is NRDataOutOfRange. Length is
// checked before value.
func SetBoolValue(req *RDMRequest) (bool, *RDMResponse) {
	v, ok := ExtractUint8(req.ParamData)
	if !ok {
		return false, NackWithReason(req, NRFormatError, 0)
	}
	switch v {
	case 0:
		return false, EmptySetResponse(req)
	case 1:
		return true, EmptySetResponse(req)
	default:
		return false, NackWithReason(req, NRDataOutOfRange, 0)
	}
}

// GetUInt8/SetUInt8, GetUInt16/SetUInt16, GetUInt32/SetUInt32 round-trip an
// unsigned integer with a strict payload-size check.

func GetUInt8(req *RDMRequest, value uint8) *RDMResponse {
	return GetResponseFromData(req, newBufWriter().WriteU8(value).Bytes(), ResponseTypeAck, 0)
}

func SetUInt8(req *RDMRequest) (uint8, *RDMResponse) {
	v, ok := ExtractUint8(req.ParamData)
	if !ok {
		return 0, NackWithReason(req, NRFormatError, 0)
	}
	return v, EmptySetResponse(req)
}

func GetUInt16(req *RDMRequest, value uint16) *RDMResponse {
	return GetResponseFromData(req, newBufWriter().WriteU16BE(value).Bytes(), ResponseTypeAck, 0)
}

func SetUInt16(req *RDMRequest) (uint16, *RDMResponse) {
	v, ok := ExtractUint16(req.ParamData)
	if !ok {
		return 0, NackWithReason(req, NRFormatError, 0)
	}
	return v, EmptySetResponse(req)
}

func GetUInt32(req *RDMRequest, value uint32) *RDMResponse {
	return GetResponseFromData(req, newBufWriter().WriteU32BE(value).Bytes(), ResponseTypeAck, 0)
}

func SetUInt32(req *RDMRequest) (uint32, *RDMResponse) {
	v, ok := ExtractUint32(req.ParamData)
	if !ok {
		return 0, NackWithReason(req, NRFormatError, 0)
	}
	return v, EmptySetResponse(req)
}

// GetSlotInfo emits, for every slot in the active personality, its 0-based
// offset, type, and category as (uint16, uint8, uint16) triples.
func GetSlotInfo(req *RDMRequest, slots []Slot) *RDMResponse {
	w := newBufWriter()
	for i, s := range slots {
		w.WriteU16BE(uint16(i)). //nolint:gosec // bounded by DMXUniverseSize
						WriteU8(uint8(s.Type)).
						WriteU16BE(uint16(s.Category))
	}
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetSlotDescription decodes a uint16 slot offset and returns (offset,
// 32-char description).
func GetSlotDescription(req *RDMRequest, slots []Slot) *RDMResponse {
	offset, ok := ExtractUint16(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	if int(offset) >= len(slots) {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}
	w := newBufWriter().WriteU16BE(offset).WriteFixedString32(slots[offset].Description)
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetSlotDefaultValues emits, for every slot in the active personality, its
// 0-based offset and default value as (uint16, uint8) pairs.
func GetSlotDefaultValues(req *RDMRequest, slots []Slot) *RDMResponse {
	w := newBufWriter()
	for i, s := range slots {
		w.WriteU16BE(uint16(i)).WriteU8(s.DefaultValue) //nolint:gosec // bounded by DMXUniverseSize
	}
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// --- Sensor helpers ---

// GetSensorDefinition returns the static metadata for sensor number n.
// 0xFF is rejected: GET_SENSOR_DEFINITION addresses exactly one sensor,
// unlike SET_SENSOR_VALUE and RECORD_SENSORS which accept the "all"
// sentinel.
func GetSensorDefinition(req *RDMRequest, sensors []*Sensor, n uint8) *RDMResponse {
	if n == UndefinedSensor || int(n) >= len(sensors) || !sensors[n].Defined {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}
	s := sensors[n]
	w := newBufWriter().
		WriteU8(n).
		WriteU8(uint8(s.Type)).
		WriteU8(uint8(s.Unit)).
		WriteU8(uint8(s.Prefix)).
		WriteI16BE(s.RangeMin).
		WriteI16BE(s.RangeMax).
		WriteI16BE(s.NormalMin).
		WriteI16BE(s.NormalMax).
		WriteU8(boolToU8(s.SupportsRecording)).
		WriteFixedString32(s.Description)
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// GetSensorValue emits (sensor, present, lowest, highest, recorded) with
// signed 16-bit values. Only a concrete sensor number is valid for a value
// read; 0xFF is rejected.
func GetSensorValue(req *RDMRequest, sensors []*Sensor, n uint8) *RDMResponse {
	if n == UndefinedSensor || int(n) >= len(sensors) || !sensors[n].Defined {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}
	s := sensors[n]
	present := s.Poll()
	w := newBufWriter().WriteU8(n).WriteI16BE(present).WriteI16BE(s.Lowest()).WriteI16BE(s.Highest()).WriteI16BE(s.Recorded())
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// SetSensorValue resets the addressed sensor and echoes its post-reset
// reading. Sensor number 0xFF resets every defined sensor; the response
// then echoes 0xFF with zeroed values, since no single reading can stand
// for all of them. Any payload beyond the sensor number still triggers a
// reset.
func SetSensorValue(req *RDMRequest, sensors []*Sensor, n uint8) *RDMResponse {
	if n == UndefinedSensor {
		for _, s := range sensors {
			if s.Defined {
				s.Reset()
			}
		}
		w := newBufWriter().WriteU8(UndefinedSensor).WriteI16BE(0).WriteI16BE(0).WriteI16BE(0).WriteI16BE(0)
		return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
	}

	if int(n) >= len(sensors) || !sensors[n].Defined {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}
	s := sensors[n]
	s.Reset()
	present := s.Poll()
	w := newBufWriter().WriteU8(n).WriteI16BE(present).WriteI16BE(s.Lowest()).WriteI16BE(s.Highest()).WriteI16BE(s.Recorded())
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

// RecordSensor snapshots sensor n, or every sensor that supports recording
// when n == 0xFF.
func RecordSensor(req *RDMRequest, sensors []*Sensor, n uint8) *RDMResponse {
	if n == UndefinedSensor {
		for _, s := range sensors {
			if s.Defined && s.SupportsRecording {
				s.Record()
			}
		}
		return EmptySetResponse(req)
	}

	if int(n) >= len(sensors) || !sensors[n].Defined {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}
	if !sensors[n].SupportsRecording {
		return NackWithReason(req, NRUnsupportedCommandClass, 0)
	}
	sensors[n].Record()
	return EmptySetResponse(req)
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
