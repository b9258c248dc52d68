package rdm

import "fmt"

// CommandClass identifies whether a request/response is a GET or SET and
// whether it is the command or the command's response.
type CommandClass uint8

const (
	CCDiscoveryCommand         CommandClass = 0x10
	CCDiscoveryCommandResponse CommandClass = 0x11
	CCGetCommand               CommandClass = 0x20
	CCGetCommandResponse       CommandClass = 0x21
	CCSetCommand               CommandClass = 0x30
	CCSetCommandResponse       CommandClass = 0x31
)

// IsDiscovery reports whether cc is a discovery-class command (DUB, mute,
// unmute) — these are always rejected by ResponderOps with
// StatusDiscoveryNotSupported, since this core does not implement the
// discovery-unique-branch algorithm.
func (cc CommandClass) IsDiscovery() bool {
	return cc == CCDiscoveryCommand || cc == CCDiscoveryCommandResponse
}

// ResponseType is the RDM response-type byte.
type ResponseType uint8

const (
	ResponseTypeAck         ResponseType = 0x00
	ResponseTypeAckTimer    ResponseType = 0x01
	ResponseTypeNackReason  ResponseType = 0x02
	ResponseTypeAckOverflow ResponseType = 0x03
)

// Status is the outcome a transport callback is invoked with. It is a
// plain value, never a Go error: protocol-level refusals travel as NACK
// responses, not as anything the transport has to interpret.
type Status uint8

const (
	StatusCompletedOK              Status = iota // RDM_COMPLETED_OK
	StatusWasBroadcast                           // RDM_WAS_BROADCAST
	StatusTimeout                                // RDM_TIMEOUT
	StatusDiscoveryNotSupported                  // RDM_PLUGIN_DISCOVERY_NOT_SUPPORTED
)

// String renders the status for logging.
func (s Status) String() string {
	switch s {
	case StatusCompletedOK:
		return "completed_ok"
	case StatusWasBroadcast:
		return "was_broadcast"
	case StatusTimeout:
		return "timeout"
	case StatusDiscoveryNotSupported:
		return "discovery_not_supported"
	default:
		return "unknown"
	}
}

// NackReason is the 16-bit reason code carried as a NACK response's
// parameter data.
type NackReason uint16

const (
	NRUnknownPid               NackReason = 0x0000
	NRFormatError              NackReason = 0x0001
	NRHardwareFault            NackReason = 0x0002
	NRProxyReject              NackReason = 0x0003
	NRWriteProtect             NackReason = 0x0004
	NRUnsupportedCommandClass  NackReason = 0x0005
	NRDataOutOfRange           NackReason = 0x0006
	NRBufferFull               NackReason = 0x0007
	NRPacketSizeUnsupported    NackReason = 0x0008
	NRSubDeviceOutOfRange      NackReason = 0x0009
	NRProxyBufferFull          NackReason = 0x000A
)

// String returns the reason's E1.20 name, for logs and CLI output.
func (r NackReason) String() string {
	switch r {
	case NRUnknownPid:
		return "NR_UNKNOWN_PID"
	case NRFormatError:
		return "NR_FORMAT_ERROR"
	case NRHardwareFault:
		return "NR_HARDWARE_FAULT"
	case NRProxyReject:
		return "NR_PROXY_REJECT"
	case NRWriteProtect:
		return "NR_WRITE_PROTECT"
	case NRUnsupportedCommandClass:
		return "NR_UNSUPPORTED_COMMAND_CLASS"
	case NRDataOutOfRange:
		return "NR_DATA_OUT_OF_RANGE"
	case NRBufferFull:
		return "NR_BUFFER_FULL"
	case NRPacketSizeUnsupported:
		return "NR_PACKET_SIZE_UNSUPPORTED"
	case NRSubDeviceOutOfRange:
		return "NR_SUB_DEVICE_OUT_OF_RANGE"
	case NRProxyBufferFull:
		return "NR_PROXY_BUFFER_FULL"
	default:
		return fmt.Sprintf("NR_0x%04X", uint16(r))
	}
}

// Well-known RDM parameter IDs exercised by this core. Values are the
// ANSI E1.20 / E1.37-1 / E1.37-2 assignments.
const (
	PIDQueuedMessage                  uint16 = 0x0020
	PIDStatusMessages                 uint16 = 0x0030
	PIDStatusIDDescription            uint16 = 0x0031
	PIDClearStatusID                  uint16 = 0x0032
	PIDSubDeviceStatusReportThreshold uint16 = 0x0033

	PIDDmxFailMode    uint16 = 0x0041
	PIDDmxStartupMode uint16 = 0x0042

	PIDSupportedParameters    uint16 = 0x0050
	PIDParameterDescription   uint16 = 0x0051
	PIDDeviceInfo             uint16 = 0x0060
	PIDProductDetailIDList    uint16 = 0x0070
	PIDDeviceModelDescription uint16 = 0x0080
	PIDManufacturerLabel      uint16 = 0x0081
	PIDDeviceLabel            uint16 = 0x0082
	PIDFactoryDefaults        uint16 = 0x0090
	PIDLanguageCapabilities   uint16 = 0x00A0
	PIDLanguage               uint16 = 0x00B0
	PIDSoftwareVersionLabel   uint16 = 0x00C0
	PIDBootSoftwareVersionID  uint16 = 0x00C1
	PIDDmxPersonality         uint16 = 0x00E0
	PIDDmxPersonalityDescr    uint16 = 0x00E1
	PIDDmxStartAddress        uint16 = 0x00F0

	PIDDmxBlockAddress uint16 = 0x0140

	PIDSlotInfo         uint16 = 0x0120
	PIDSlotDescription  uint16 = 0x0121
	PIDDefaultSlotValue uint16 = 0x0122

	PIDPresetInfo      uint16 = 0x0300
	PIDPresetStatus    uint16 = 0x0301
	PIDPresetMergeMode uint16 = 0x0302
	PIDPowerOnSelfTest uint16 = 0x0303
	PIDBurnIn          uint16 = 0x0310

	PIDDimmerInfo               uint16 = 0x0340
	PIDMinimumLevel             uint16 = 0x0341
	PIDMaximumLevel             uint16 = 0x0342
	PIDCurve                    uint16 = 0x0343
	PIDCurveDescription         uint16 = 0x0344
	PIDOutputResponseTime       uint16 = 0x0345
	PIDOutputResponseTimeDescr  uint16 = 0x0346
	PIDModulationFrequency      uint16 = 0x0347
	PIDModulationFrequencyDescr uint16 = 0x0348

	PIDSensorDefinition uint16 = 0x0200
	PIDSensorValue      uint16 = 0x0201
	PIDRecordSensors    uint16 = 0x0202

	PIDDeviceHours      uint16 = 0x0400
	PIDLampHours        uint16 = 0x0401
	PIDLampStrikes      uint16 = 0x0402
	PIDLampState        uint16 = 0x0403
	PIDLampOnMode       uint16 = 0x0404
	PIDDevicePowerCycles uint16 = 0x0405
	PIDPanInvert        uint16 = 0x0420
	PIDTiltInvert       uint16 = 0x0421
	PIDPanTiltSwap      uint16 = 0x0422
	PIDRealTimeClock    uint16 = 0x0480

	PIDDNSHostName   uint16 = 0x0701
	PIDDNSDomainName uint16 = 0x0702
	PIDDNSNameServer uint16 = 0x0704

	PIDIdentifyDevice      uint16 = 0x1000
	PIDResetDevice         uint16 = 0x1001
	PIDPowerState          uint16 = 0x1010
	PIDPerformSelfTest     uint16 = 0x1020
	PIDSelfTestDescription uint16 = 0x1021
	PIDCapturePreset       uint16 = 0x1030
	PIDPresetPlayback      uint16 = 0x1031

	PIDDiscUniqueBranch uint16 = 0x0001
	PIDDiscMute         uint16 = 0x0002
	PIDDiscUnMute       uint16 = 0x0003
)

// Queued-message status-type byte values, the argument to a GET
// PID_QUEUED_MESSAGE request.
const (
	StatusNone          uint8 = 0x00
	StatusGetLastMessage uint8 = 0x01
	StatusAdvisory      uint8 = 0x02
	StatusWarning       uint8 = 0x03
	StatusErrorLevel    uint8 = 0x04
)

// RdmVersion is the fixed RDM protocol version advertised in DEVICE_INFO.
const RdmVersion uint16 = 0x0100

// Product detail IDs (ANSI E1.20 Table A-5), the subset this core uses.
const (
	ProductDetailNotDeclared uint16 = 0x0000
	ProductDetailArc         uint16 = 0x0001
	ProductDetailLED         uint16 = 0x0004
)

// Product categories (ANSI E1.20 Table A-4), the subset this core uses.
type ProductCategory uint16

const (
	ProductCategoryFixtureDimmer ProductCategory = 0x0101
	ProductCategoryFixture       ProductCategory = 0x0100
	ProductCategoryNetwork       ProductCategory = 0x0700
	ProductCategorySensor        ProductCategory = 0x0900
)

// Open Lighting manufacturer-specific model IDs and PIDs.
const (
	DummyDeviceModel     uint16 = 1
	SPIDeviceModel       uint16 = 3
	DummyDimmerModel     uint16 = 4
	DummyMovingLightModel uint16 = 5

	ManufacturerPIDSerialNumber uint16 = 0x8000
	ManufacturerPIDCodeVersion  uint16 = 0x8001
)
