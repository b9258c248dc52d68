package rdm

// MovingLightResponder models a fixture with pan/tilt invert flags, a lamp
// strike counter, and a real-time-clock report, plus a deliberately
// narrow PARAMETER_DESCRIPTION implementation: it
// only ever describes its single manufacturer-specific PID
// (ManufacturerPIDCodeVersion); any other PID is out of range, even one
// this responder otherwise supports, because every other supported PID
// here is a standard one a controller is expected to already know the
// shape of.
type MovingLightResponder struct {
	uid           UID
	startAddress  uint16
	identify      bool
	personalities *PersonalityManager

	panInvert  bool
	tiltInvert bool
	panTiltSwap bool
	lampStrikes uint32
	deviceLabel string
}

// NewMovingLightResponder builds a moving-light fixture starting at DMX
// address 1.
func NewMovingLightResponder(uid UID, personalities Personalities) *MovingLightResponder {
	return &MovingLightResponder{
		uid:           uid,
		startAddress:  1,
		personalities: NewPersonalityManager(personalities),
	}
}

var movingLightOps = NewResponderOps(movingLightParamHandlers)

var movingLightParamHandlers = []ParamHandler[*MovingLightResponder]{
	{PID: PIDDeviceInfo, Get: (*MovingLightResponder).getDeviceInfo},
	{PID: PIDDmxStartAddress, Get: (*MovingLightResponder).getDmxStartAddress, Set: (*MovingLightResponder).setDmxStartAddress},
	{PID: PIDIdentifyDevice, Get: (*MovingLightResponder).getIdentifyDevice, Set: (*MovingLightResponder).setIdentifyDevice},
	{PID: PIDDmxPersonality, Get: (*MovingLightResponder).getPersonality, Set: (*MovingLightResponder).setPersonality},
	{PID: PIDDmxPersonalityDescr, Get: (*MovingLightResponder).getPersonalityDescription},
	{PID: PIDPanInvert, Get: (*MovingLightResponder).getPanInvert, Set: (*MovingLightResponder).setPanInvert},
	{PID: PIDTiltInvert, Get: (*MovingLightResponder).getTiltInvert, Set: (*MovingLightResponder).setTiltInvert},
	{PID: PIDPanTiltSwap, Get: (*MovingLightResponder).getPanTiltSwap, Set: (*MovingLightResponder).setPanTiltSwap},
	{PID: PIDLampStrikes, Get: (*MovingLightResponder).getLampStrikes, Set: (*MovingLightResponder).setLampStrikes},
	{PID: PIDDeviceLabel, Get: (*MovingLightResponder).getDeviceLabel, Set: (*MovingLightResponder).setDeviceLabel},
	{PID: PIDRealTimeClock, Get: (*MovingLightResponder).getRealTimeClock},
	{PID: PIDProductDetailIDList, Get: (*MovingLightResponder).getProductDetailList},
	{PID: PIDParameterDescription, Get: (*MovingLightResponder).getParameterDescription},
	{PID: PIDSoftwareVersionLabel, Get: (*MovingLightResponder).getSoftwareVersionLabel},
}

func (r *MovingLightResponder) SendRDMRequest(req *RDMRequest, onComplete Callback) {
	movingLightOps.HandleRDMRequest(r, r.uid, RootRDMDevice, req, onComplete)
}

func (r *MovingLightResponder) getDeviceInfo(req *RDMRequest) *RDMResponse {
	return GetDeviceInfo(req, DeviceInfo{
		Model:           DummyMovingLightModel,
		ProductCategory: ProductCategoryFixture,
		SoftwareVersion: 1,
		DmxStartAddress: r.startAddress,
	}, r.personalities)
}

func (r *MovingLightResponder) getDmxStartAddress(req *RDMRequest) *RDMResponse {
	return GetDmxAddress(req, r.startAddress, r.personalities.Footprint())
}

func (r *MovingLightResponder) setDmxStartAddress(req *RDMRequest) *RDMResponse {
	addr, nack := SetDmxAddress(req, r.personalities.Footprint())
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.startAddress = addr
	return EmptySetResponse(req)
}

func (r *MovingLightResponder) getIdentifyDevice(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, r.identify)
}

func (r *MovingLightResponder) setIdentifyDevice(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.identify = v
	return EmptySetResponse(req)
}

func (r *MovingLightResponder) getPersonality(req *RDMRequest) *RDMResponse {
	return GetPersonalityResponse(req, r.personalities)
}

func (r *MovingLightResponder) setPersonality(req *RDMRequest) *RDMResponse {
	return SetPersonality(req, r.personalities, r.startAddress)
}

func (r *MovingLightResponder) getPersonalityDescription(req *RDMRequest) *RDMResponse {
	return GetPersonalityDescription(req, r.personalities)
}

func (r *MovingLightResponder) getPanInvert(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, r.panInvert)
}

func (r *MovingLightResponder) setPanInvert(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.panInvert = v
	return EmptySetResponse(req)
}

func (r *MovingLightResponder) getTiltInvert(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, r.tiltInvert)
}

func (r *MovingLightResponder) setTiltInvert(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.tiltInvert = v
	return EmptySetResponse(req)
}

func (r *MovingLightResponder) getPanTiltSwap(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, r.panTiltSwap)
}

func (r *MovingLightResponder) setPanTiltSwap(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.panTiltSwap = v
	return EmptySetResponse(req)
}

func (r *MovingLightResponder) getLampStrikes(req *RDMRequest) *RDMResponse {
	return GetUInt32(req, r.lampStrikes)
}

func (r *MovingLightResponder) setLampStrikes(req *RDMRequest) *RDMResponse {
	v, nack := SetUInt32(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.lampStrikes = v
	return EmptySetResponse(req)
}

// getDeviceLabel and setDeviceLabel expose a free-text label a controller
// can assign to this fixture — unlike every other parameter this responder
// supports, a SET here is a legitimate broadcast target, since a lighting
// console commonly labels an entire group of fixtures at once.
func (r *MovingLightResponder) getDeviceLabel(req *RDMRequest) *RDMResponse {
	return GetString(req, r.deviceLabel)
}

func (r *MovingLightResponder) setDeviceLabel(req *RDMRequest) *RDMResponse {
	v, nack := SetString(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.deviceLabel = v
	return EmptySetResponse(req)
}

func (r *MovingLightResponder) getRealTimeClock(req *RDMRequest) *RDMResponse {
	return GetRealTimeClockResponse(req)
}

func (r *MovingLightResponder) getProductDetailList(req *RDMRequest) *RDMResponse {
	return GetProductDetailList(req, []uint16{ProductDetailArc})
}

// getParameterDescription only ever describes ManufacturerPIDCodeVersion.
// Every other PID, including ones this responder handles directly, is
// NR_DATA_OUT_OF_RANGE here.
func (r *MovingLightResponder) getParameterDescription(req *RDMRequest) *RDMResponse {
	pid, ok := ExtractUint16(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	if pid != ManufacturerPIDCodeVersion {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}

	w := newBufWriter().
		WriteU16BE(pid).
		WriteU8(0).                 // pdl_size: not length-limited
		WriteU8(0).                 // data_type: ASCII
		WriteU8(0).                 // command_class: get only
		WriteU8(0).                 // type: not applicable
		WriteU8(0).                 // unit: none
		WriteU8(0).                 // prefix: none
		WriteU32BE(0).              // min_valid_value
		WriteU32BE(0).              // default_value
		WriteU32BE(0).              // max_valid_value
		WriteFixedString32("CODE VERSION")
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

func (r *MovingLightResponder) getSoftwareVersionLabel(req *RDMRequest) *RDMResponse {
	return GetString(req, "rdmsim moving-light responder")
}

// UID returns the responder's own RDM identifier.
func (r *MovingLightResponder) UID() UID {
	return r.uid
}
