package rdm_test

import (
	"testing"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

func sendSensorResponder(r *rdm.SensorResponder, controller, uid rdm.UID, cc rdm.CommandClass, pid uint16, data []byte) *rdm.RDMResponse {
	req := &rdm.RDMRequest{SourceUID: controller, DestinationUID: uid, CommandClass: cc, ParamID: pid, ParamData: data}
	var resp *rdm.RDMResponse
	r.SendRDMRequest(req, func(_ rdm.Status, got *rdm.RDMResponse) { resp = got })
	return resp
}

func TestSensorResponderDeviceInfoReportsSensorCount(t *testing.T) {
	t.Parallel()

	temp := rdm.NewSensor(rdm.SensorTypeTemperature, rdm.SensorUnitCentigrade, "ambient", true, func() int16 { return 21 })
	uid := rdm.NewUID(0x7a70, 6)
	r := rdm.NewSensorResponder(uid, nil, []*rdm.Sensor{temp})
	controller := rdm.NewUID(0x746f, 1)

	resp := sendSensorResponder(r, controller, uid, rdm.CCGetCommand, rdm.PIDDeviceInfo, nil)
	if resp.ParamData[18] != 1 {
		t.Fatalf("sensor_count = %d, want 1", resp.ParamData[18])
	}
}

func TestSensorResponderGetSensorValueAndRecord(t *testing.T) {
	t.Parallel()

	value := int16(30)
	temp := rdm.NewSensor(rdm.SensorTypeTemperature, rdm.SensorUnitCentigrade, "ambient", true, func() int16 { return value })
	uid := rdm.NewUID(0x7a70, 6)
	r := rdm.NewSensorResponder(uid, nil, []*rdm.Sensor{temp})
	controller := rdm.NewUID(0x746f, 1)

	getResp := sendSensorResponder(r, controller, uid, rdm.CCGetCommand, rdm.PIDSensorValue, []byte{0})
	if getResp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("GET_SENSOR_VALUE = %v, want ACK", getResp.ResponseType)
	}

	recResp := sendSensorResponder(r, controller, uid, rdm.CCSetCommand, rdm.PIDRecordSensors, []byte{0})
	if recResp.ResponseType != rdm.ResponseTypeAck {
		t.Fatalf("RECORD_SENSORS(0) = %v, want ACK", recResp.ResponseType)
	}
}

func TestSensorResponderUndefinedSensorNumberRejected(t *testing.T) {
	t.Parallel()

	uid := rdm.NewUID(0x7a70, 6)
	r := rdm.NewSensorResponder(uid, nil, nil)
	controller := rdm.NewUID(0x746f, 1)

	resp := sendSensorResponder(r, controller, uid, rdm.CCGetCommand, rdm.PIDSensorValue, []byte{0})
	assertNack(t, resp, rdm.NRDataOutOfRange)
}

func TestSensorResponderIdentifyRoundTrip(t *testing.T) {
	t.Parallel()

	uid := rdm.NewUID(0x7a70, 6)
	r := rdm.NewSensorResponder(uid, nil, nil)
	controller := rdm.NewUID(0x746f, 1)

	sendSensorResponder(r, controller, uid, rdm.CCSetCommand, rdm.PIDIdentifyDevice, []byte{0x01})
	resp := sendSensorResponder(r, controller, uid, rdm.CCGetCommand, rdm.PIDIdentifyDevice, nil)
	if resp.ParamData[0] != 1 {
		t.Fatalf("IDENTIFY_DEVICE = %d, want 1 after SET", resp.ParamData[0])
	}
}

func TestLoadAverageSensorClampsToInt16Range(t *testing.T) {
	t.Parallel()

	high := rdm.LoadAverageSensor("load1", func() float64 { return 1000.0 })
	if got := high.Poll(); got != 32767 {
		t.Errorf("high load Poll() = %d, want clamped 32767", got)
	}

	low := rdm.LoadAverageSensor("load1", func() float64 { return -1000.0 })
	if got := low.Poll(); got != -32768 {
		t.Errorf("low load Poll() = %d, want clamped -32768", got)
	}
}
