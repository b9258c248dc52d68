package rdm_test

import (
	"testing"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

func getReq(pid uint16, data []byte) *rdm.RDMRequest {
	return &rdm.RDMRequest{
		SourceUID:      rdm.NewUID(0x746f, 1),
		DestinationUID: rdm.NewUID(0x7a70, 1),
		CommandClass:   rdm.CCGetCommand,
		ParamID:        pid,
		ParamData:      data,
	}
}

func setReq(pid uint16, data []byte) *rdm.RDMRequest {
	req := getReq(pid, data)
	req.CommandClass = rdm.CCSetCommand
	return req
}

func TestGetDeviceInfoWireExact(t *testing.T) {
	t.Parallel()

	list := rdm.Personalities{{Footprint: 3, Description: "RGB"}}
	pm := rdm.NewPersonalityManager(list)

	info := rdm.DeviceInfo{
		Model:           rdm.DummyDimmerModel,
		ProductCategory: rdm.ProductCategoryFixtureDimmer,
		SoftwareVersion: 0x00000001,
		DmxStartAddress: 1,
		SubDeviceCount:  0,
		SensorCount:     0,
	}

	resp := rdm.GetDeviceInfo(getReq(rdm.PIDDeviceInfo, nil), info, pm)
	want := []byte{
		0x01, 0x00, // RDM protocol version
		0x00, 0x04, // model (DummyDimmerModel)
		0x01, 0x01, // product category
		0x00, 0x00, 0x00, 0x01, // software version
		0x00, 0x03, // footprint
		0x01, // current personality
		0x01, // personality count
		0x00, 0x01, // start address
		0x00, 0x00, // sub-device count
		0x00, // sensor count
	}
	if len(resp.ParamData) != len(want) {
		t.Fatalf("len = %d, want %d (%x)", len(resp.ParamData), len(want), resp.ParamData)
	}
	for i := range want {
		if resp.ParamData[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x (%x vs %x)", i, resp.ParamData[i], want[i], resp.ParamData, want)
		}
	}
}

func TestGetDeviceInfoZeroFootprintReportsNoStartAddress(t *testing.T) {
	t.Parallel()

	pm := rdm.NewPersonalityManager(nil)
	info := rdm.DeviceInfo{DmxStartAddress: 1}

	resp := rdm.GetDeviceInfo(getReq(rdm.PIDDeviceInfo, nil), info, pm)
	// Bytes 14-15 hold the start address; with no personalities configured
	// the footprint is 0 and DEVICE_INFO must advertise 0xFFFF, not the
	// responder's stored (meaningless) start address.
	got := uint16(resp.ParamData[14])<<8 | uint16(resp.ParamData[15])
	if got != 0xFFFF {
		t.Fatalf("start address = %#x, want 0xFFFF", got)
	}
}

func TestSetPersonalityRejectsOutOfRangeFootprint(t *testing.T) {
	t.Parallel()

	list := rdm.Personalities{{Footprint: 600, Description: "too big"}}
	pm := rdm.NewPersonalityManager(list)

	resp := rdm.SetPersonality(setReq(rdm.PIDDmxPersonality, []byte{1}), pm, 1)
	assertNack(t, resp, rdm.NRDataOutOfRange)
}

func TestSetPersonalityRejectsUnknownNumber(t *testing.T) {
	t.Parallel()

	pm := rdm.NewPersonalityManager(rdm.Personalities{{Footprint: 3, Description: "RGB"}})
	resp := rdm.SetPersonality(setReq(rdm.PIDDmxPersonality, []byte{2}), pm, 1)
	assertNack(t, resp, rdm.NRDataOutOfRange)
}

func TestSetPersonalityAccepts(t *testing.T) {
	t.Parallel()

	pm := rdm.NewPersonalityManager(rdm.Personalities{
		{Footprint: 3, Description: "RGB"},
		{Footprint: 5, Description: "RGBAW"},
	})
	resp := rdm.SetPersonality(setReq(rdm.PIDDmxPersonality, []byte{2}), pm, 1)
	if resp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("ResponseType = %v, want ACK", resp.ResponseType)
	}
	if pm.Current() != 2 {
		t.Fatalf("Current() = %d, want 2", pm.Current())
	}
}

func TestGetPersonalityDescriptionUnknownNumber(t *testing.T) {
	t.Parallel()

	pm := rdm.NewPersonalityManager(rdm.Personalities{{Footprint: 3, Description: "RGB"}})
	resp := rdm.GetPersonalityDescription(getReq(rdm.PIDDmxPersonalityDescr, []byte{9}), pm)
	assertNack(t, resp, rdm.NRDataOutOfRange)
}

func TestSetDmxAddressChecksFootprintBeforeRange(t *testing.T) {
	t.Parallel()

	_, resp := rdm.SetDmxAddress(setReq(rdm.PIDDmxStartAddress, []byte{0x00, 0x01}), 0)
	assertNack(t, resp, rdm.NRDataOutOfRange)
}

func TestSetDmxAddressRejectsZeroAndOverrun(t *testing.T) {
	t.Parallel()

	cases := []uint16{0, 511}
	for _, addr := range cases {
		data := []byte{byte(addr >> 8), byte(addr)}
		_, resp := rdm.SetDmxAddress(setReq(rdm.PIDDmxStartAddress, data), 3)
		assertNack(t, resp, rdm.NRDataOutOfRange)
	}
}

func TestSetDmxAddressAcceptsInRange(t *testing.T) {
	t.Parallel()

	newAddr, resp := rdm.SetDmxAddress(setReq(rdm.PIDDmxStartAddress, []byte{0x00, 0x01}), 3)
	if resp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("ResponseType = %v, want ACK", resp.ResponseType)
	}
	if newAddr != 1 {
		t.Fatalf("newAddress = %d, want 1", newAddr)
	}
}

func TestSetDmxAddressRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	_, resp := rdm.SetDmxAddress(setReq(rdm.PIDDmxStartAddress, []byte{0x01}), 3)
	assertNack(t, resp, rdm.NRFormatError)
}

func TestGetStringSetStringRoundTrip(t *testing.T) {
	t.Parallel()

	resp := rdm.GetString(getReq(rdm.PIDDeviceLabel, nil), "dimmer one")
	if string(resp.ParamData) != "dimmer one" {
		t.Fatalf("GetString payload = %q, want %q", resp.ParamData, "dimmer one")
	}

	got, setResp := rdm.SetString(setReq(rdm.PIDDeviceLabel, []byte("dimmer two")))
	if setResp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("ResponseType = %v, want ACK", setResp.ResponseType)
	}
	if got != "dimmer two" {
		t.Fatalf("SetString value = %q, want %q", got, "dimmer two")
	}
}

func TestSetStringRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	long := make([]byte, rdm.MaxRDMStringLength+1)
	_, resp := rdm.SetString(setReq(rdm.PIDDeviceLabel, long))
	assertNack(t, resp, rdm.NRFormatError)
}

func TestSetBoolValueValidationOrder(t *testing.T) {
	t.Parallel()

	// Wrong length: format error, even though the single valid byte case
	// would otherwise also be a range violation for a 2-byte payload.
	_, resp := rdm.SetBoolValue(setReq(rdm.PIDIdentifyDevice, []byte{0x01, 0x02}))
	assertNack(t, resp, rdm.NRFormatError)

	// Right length, wrong value: range error, not format error — this is
	// the two-step order callers depend on.
	_, resp = rdm.SetBoolValue(setReq(rdm.PIDIdentifyDevice, []byte{0x02}))
	assertNack(t, resp, rdm.NRDataOutOfRange)

	v, resp := rdm.SetBoolValue(setReq(rdm.PIDIdentifyDevice, []byte{0x01}))
	if resp.ResponseType != rdm.ResponseTypeAck || !v {
		t.Fatalf("SetBoolValue(1) = (%v, %v), want (true, ACK)", v, resp.ResponseType)
	}
}

func TestGetBoolValue(t *testing.T) {
	t.Parallel()

	resp := rdm.GetBoolValue(getReq(rdm.PIDIdentifyDevice, nil), true)
	if len(resp.ParamData) != 1 || resp.ParamData[0] != 1 {
		t.Fatalf("GetBoolValue(true) payload = %x, want [0x01]", resp.ParamData)
	}
}

func TestGetSetUInt8UInt16UInt32RoundTrip(t *testing.T) {
	t.Parallel()

	if resp := rdm.GetUInt8(getReq(rdm.PIDDmxPersonality, nil), 7); resp.ParamData[0] != 7 {
		t.Fatalf("GetUInt8 = %x, want [0x07]", resp.ParamData)
	}
	v8, resp := rdm.SetUInt8(setReq(rdm.PIDDmxPersonality, []byte{7}))
	if resp.ResponseType != rdm.ResponseTypeAck || v8 != 7 {
		t.Fatalf("SetUInt8 = (%d, %v), want (7, ACK)", v8, resp.ResponseType)
	}

	v16, resp := rdm.SetUInt16(setReq(rdm.PIDDmxStartAddress, []byte{0x01, 0x02}))
	if resp.ResponseType != rdm.ResponseTypeAck || v16 != 0x0102 {
		t.Fatalf("SetUInt16 = (%#x, %v), want (0x0102, ACK)", v16, resp.ResponseType)
	}

	v32, resp := rdm.SetUInt32(setReq(rdm.PIDRealTimeClock, []byte{0x01, 0x02, 0x03, 0x04}))
	if resp.ResponseType != rdm.ResponseTypeAck || v32 != 0x01020304 {
		t.Fatalf("SetUInt32 = (%#x, %v), want (0x01020304, ACK)", v32, resp.ResponseType)
	}
}

func TestSetUInt8RejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, resp := rdm.SetUInt8(setReq(rdm.PIDDmxPersonality, []byte{1, 2}))
	assertNack(t, resp, rdm.NRFormatError)
}

func TestGetSlotInfoDescriptionDefaultValues(t *testing.T) {
	t.Parallel()

	slots := []rdm.Slot{
		{Type: rdm.SlotTypePrimary, Category: rdm.SlotCategoryIntensity, DefaultValue: 0, Description: "Red"},
		{Type: rdm.SlotTypePrimary, Category: rdm.SlotCategoryIntensity, DefaultValue: 255, Description: "Green"},
	}

	info := rdm.GetSlotInfo(getReq(rdm.PIDSlotInfo, nil), slots)
	if len(info.ParamData) != 10 {
		t.Fatalf("GetSlotInfo len = %d, want 10 (2 slots * 5 bytes)", len(info.ParamData))
	}

	desc := rdm.GetSlotDescription(getReq(rdm.PIDSlotDescription, []byte{0x00, 0x01}), slots)
	if string(desc.ParamData[2:]) != "Green" {
		t.Fatalf("GetSlotDescription = %q, want %q", desc.ParamData[2:], "Green")
	}

	outOfRange := rdm.GetSlotDescription(getReq(rdm.PIDSlotDescription, []byte{0x00, 0x09}), slots)
	assertNack(t, outOfRange, rdm.NRDataOutOfRange)

	defaults := rdm.GetSlotDefaultValues(getReq(rdm.PIDDefaultSlotValue, nil), slots)
	if len(defaults.ParamData) != 6 || defaults.ParamData[5] != 255 {
		t.Fatalf("GetSlotDefaultValues = %x, want 6 bytes ending in 0xff", defaults.ParamData)
	}
}

func newTestSensor(defined bool, supportsRecording bool, value int16) *rdm.Sensor {
	s := rdm.NewSensor(rdm.SensorTypeTemperature, rdm.SensorUnitCentigrade, "ambient", supportsRecording, func() int16 { return value })
	s.Defined = defined
	return s
}

func TestGetSensorDefinitionRejectsUndefinedSentinelAndUnpopulatedSlot(t *testing.T) {
	t.Parallel()

	sensors := []*rdm.Sensor{newTestSensor(true, true, 10), {}}

	if resp := rdm.GetSensorDefinition(getReq(rdm.PIDSensorDefinition, []byte{rdm.UndefinedSensor}), sensors, rdm.UndefinedSensor); resp.ResponseType != rdm.ResponseTypeNackReason {
		t.Fatalf("GetSensorDefinition(0xFF) = %v, want NACK", resp.ResponseType)
	}
	if resp := rdm.GetSensorDefinition(getReq(rdm.PIDSensorDefinition, []byte{1}), sensors, 1); resp.ResponseType != rdm.ResponseTypeNackReason {
		t.Fatalf("GetSensorDefinition(undefined slot) = %v, want NACK", resp.ResponseType)
	}
}

func TestGetSensorValueTracksRunningExtremes(t *testing.T) {
	t.Parallel()

	s := newTestSensor(true, false, 20)
	sensors := []*rdm.Sensor{s}

	_ = rdm.GetSensorValue(getReq(rdm.PIDSensorValue, []byte{0}), sensors, 0)
	s.Poll() // re-poll at the same value to establish the baseline

	resp := rdm.GetSensorValue(getReq(rdm.PIDSensorValue, []byte{0}), sensors, 0)
	// layout: sensor(1) present(2) lowest(2) highest(2) recorded(2)
	lowest := int16(resp.ParamData[3])<<8 | int16(resp.ParamData[4])
	highest := int16(resp.ParamData[5])<<8 | int16(resp.ParamData[6])
	if lowest != 20 || highest != 20 {
		t.Fatalf("lowest/highest = %d/%d, want 20/20", lowest, highest)
	}
}

func TestRecordSensorAllAppliesOnlyToRecordingCapableDefinedSensors(t *testing.T) {
	t.Parallel()

	recordable := newTestSensor(true, true, 42)
	notRecordable := newTestSensor(true, false, 99)
	sensors := []*rdm.Sensor{recordable, notRecordable}

	resp := rdm.RecordSensor(setReq(rdm.PIDRecordSensors, []byte{rdm.UndefinedSensor}), sensors, rdm.UndefinedSensor)
	if resp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("RecordSensor(all) = %v, want ACK", resp.ResponseType)
	}
	if recordable.Recorded() != 42 {
		t.Fatalf("recordable.Recorded() = %d, want 42", recordable.Recorded())
	}
	if notRecordable.Recorded() != 0 {
		t.Fatalf("notRecordable.Recorded() = %d, want 0 (never recorded)", notRecordable.Recorded())
	}
}

func TestRecordSensorRejectsNonRecordingSensor(t *testing.T) {
	t.Parallel()

	s := newTestSensor(true, false, 1)
	resp := rdm.RecordSensor(setReq(rdm.PIDRecordSensors, []byte{0}), []*rdm.Sensor{s}, 0)
	assertNack(t, resp, rdm.NRUnsupportedCommandClass)
}

func TestSetSensorValueAllResetsEveryDefinedSensor(t *testing.T) {
	t.Parallel()

	a := newTestSensor(true, false, 5)
	b := newTestSensor(true, false, 9)
	a.Poll()
	b.Poll()

	resp := rdm.SetSensorValue(setReq(rdm.PIDSensorValue, []byte{rdm.UndefinedSensor}), []*rdm.Sensor{a, b}, rdm.UndefinedSensor)
	if resp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("SetSensorValue(0xFF) = %v, want ACK", resp.ResponseType)
	}
	// layout: sensor(1) present(2) lowest(2) highest(2) recorded(2), all
	// zeroed but the 0xFF sensor number.
	want := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0}
	if len(resp.ParamData) != len(want) || resp.ParamData[0] != 0xFF {
		t.Fatalf("payload = %x, want %x", resp.ParamData, want)
	}
	if a.Lowest() != 0 || b.Lowest() != 0 {
		t.Fatalf("lowest after reset-all = %d/%d, want 0/0", a.Lowest(), b.Lowest())
	}
}

func TestSetSensorValueResetsThenReportsFreshReading(t *testing.T) {
	t.Parallel()

	s := newTestSensor(true, false, 5)
	s.Poll()
	s.Poll()

	resp := rdm.SetSensorValue(setReq(rdm.PIDSensorValue, []byte{0xFF}), []*rdm.Sensor{s}, 0)
	if resp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("SetSensorValue = %v, want ACK", resp.ResponseType)
	}
	if s.Lowest() != 5 || s.Highest() != 5 {
		t.Fatalf("post-reset lowest/highest = %d/%d, want 5/5", s.Lowest(), s.Highest())
	}
}
