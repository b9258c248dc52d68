package rdm

import "sort"

// DimmerSubDevice is one independently-addressable logical device under a
// DimmerRootDevice. It has its own start address and identify flag but no
// personality of its own — footprint is fixed at 1 slot.
type DimmerSubDevice struct {
	number       uint16
	startAddress uint16
	identify     bool
}

// NewDimmerSubDevice builds a sub-device at the given 1..MaxSubDeviceNumber
// sub-device number, defaulting to start address 1.
func NewDimmerSubDevice(number uint16) *DimmerSubDevice {
	return &DimmerSubDevice{number: number, startAddress: 1}
}

var dimmerSubDeviceOps = NewResponderOps(dimmerSubDeviceParamHandlers)

var dimmerSubDeviceParamHandlers = []ParamHandler[*DimmerSubDevice]{
	{PID: PIDDeviceInfo, Get: (*DimmerSubDevice).getDeviceInfo},
	{PID: PIDDmxStartAddress, Get: (*DimmerSubDevice).getDmxStartAddress, Set: (*DimmerSubDevice).setDmxStartAddress},
	{PID: PIDIdentifyDevice, Get: (*DimmerSubDevice).getIdentifyDevice, Set: (*DimmerSubDevice).setIdentifyDevice},
}

func (d *DimmerSubDevice) getDeviceInfo(req *RDMRequest) *RDMResponse {
	return GetDeviceInfo(req, DeviceInfo{
		Model:           DummyDimmerModel,
		ProductCategory: ProductCategoryFixtureDimmer,
		SoftwareVersion: 1,
		DmxStartAddress: d.startAddress,
	}, nil)
}

func (d *DimmerSubDevice) getDmxStartAddress(req *RDMRequest) *RDMResponse {
	return GetDmxAddress(req, d.startAddress, 1)
}

// setDmxStartAddress rejects 0 or values > 512; a sub-device's footprint
// is always exactly 1 slot.
func (d *DimmerSubDevice) setDmxStartAddress(req *RDMRequest) *RDMResponse {
	addr, nack := SetDmxAddress(req, 1)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	d.startAddress = addr
	return EmptySetResponse(req)
}

func (d *DimmerSubDevice) getIdentifyDevice(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, d.identify)
}

func (d *DimmerSubDevice) setIdentifyDevice(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	d.identify = v
	return EmptySetResponse(req)
}

// SendRDMRequest delegates a request addressed at this sub-device's number.
func (d *DimmerSubDevice) SendRDMRequest(uid UID, req *RDMRequest, onComplete Callback) {
	dimmerSubDeviceOps.HandleRDMRequest(d, uid, d.number, req, onComplete)
}

// DimmerRootDevice is the root device hosting up to MaxSubDeviceNumber
// DimmerSubDevice children. Its own DEVICE_INFO reports sub_device_count
// as the number of children.
type DimmerRootDevice struct {
	uid           UID
	subdevices    map[uint16]*DimmerSubDevice
	subdeviceNums []uint16 // sorted, for deterministic SUPPORTED_PARAMETERS-style iteration
}

// NewDimmerRootDevice builds a root device owning the given sub-devices,
// keyed by sub-device number. Returns ErrNoSubDevices for an empty map (a
// dimmer root exists to host sub-devices) and ErrTooManySubDevices past
// MaxSubDeviceNumber entries.
func NewDimmerRootDevice(uid UID, subdevices map[uint16]*DimmerSubDevice) (*DimmerRootDevice, error) {
	if len(subdevices) == 0 {
		return nil, ErrNoSubDevices
	}
	if len(subdevices) > MaxSubDeviceNumber {
		return nil, ErrTooManySubDevices
	}
	nums := make([]uint16, 0, len(subdevices))
	for n := range subdevices {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return &DimmerRootDevice{uid: uid, subdevices: subdevices, subdeviceNums: nums}, nil
}

var dimmerRootOps = NewResponderOps(dimmerRootParamHandlers)

var dimmerRootParamHandlers = []ParamHandler[*DimmerRootDevice]{
	{PID: PIDDeviceInfo, Get: (*DimmerRootDevice).getDeviceInfo},
	{PID: PIDIdentifyDevice, Get: (*DimmerRootDevice).getIdentifyDevice},
}

func (d *DimmerRootDevice) getDeviceInfo(req *RDMRequest) *RDMResponse {
	return GetDeviceInfo(req, DeviceInfo{
		Model:           DummyDimmerModel,
		ProductCategory: ProductCategoryFixtureDimmer,
		SoftwareVersion: 1,
		SubDeviceCount:  uint16(len(d.subdevices)), //nolint:gosec // bounded by MaxSubDeviceNumber
	}, nil)
}

// getIdentifyDevice reports the root's own identify state, which this
// responder does not expose as settable — only sub-devices are
// individually identifiable.
func (d *DimmerRootDevice) getIdentifyDevice(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, false)
}

// SendRDMRequest routes a request to the root device or, when its
// sub-device field names a child, to that DimmerSubDevice. Root-addressed
// requests (sub_device == 0 or broadcast) are handled by the root itself;
// a specific sub-device number is forwarded directly, bypassing the root's
// own filter since the child re-validates against its own number.
func (d *DimmerRootDevice) SendRDMRequest(req *RDMRequest, onComplete Callback) {
	if req.SubDevice != RootRDMDevice && req.SubDevice != SubDeviceBroadcast {
		if sub, ok := d.subdevices[req.SubDevice]; ok {
			sub.SendRDMRequest(d.uid, req, onComplete)
			return
		}
	}
	dimmerRootOps.HandleRDMRequest(d, d.uid, RootRDMDevice, req, onComplete)
}

// UID returns the responder's own RDM identifier.
func (d *DimmerRootDevice) UID() UID {
	return d.uid
}
