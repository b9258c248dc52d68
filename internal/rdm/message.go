package rdm

// RootRDMDevice is the sub-device number reserved for a responder's root
// device.
const RootRDMDevice uint16 = 0x0000

// SubDeviceBroadcast is the sub-device number meaning "every sub-device,
// including the root".
const SubDeviceBroadcast uint16 = 0xFFFF

// MaxSubDeviceNumber bounds the number of sub-devices a DimmerRootDevice
// may host.
const MaxSubDeviceNumber = 512

// RDMRequest is a decoded inbound RDM command.
type RDMRequest struct {
	SourceUID         UID
	DestinationUID    UID
	TransactionNumber uint8
	PortID            uint8
	MessageCount      uint8
	SubDevice         uint16
	CommandClass      CommandClass
	ParamID           uint16
	ParamData         []byte
}

// IsGet reports whether the request is a GET_COMMAND.
func (r *RDMRequest) IsGet() bool {
	return r.CommandClass == CCGetCommand
}

// IsSet reports whether the request is a SET_COMMAND.
func (r *RDMRequest) IsSet() bool {
	return r.CommandClass == CCSetCommand
}

// RDMResponse is an encoded outbound RDM command, constructed by a handler
// or synthesized by the dispatcher (NACK, SUPPORTED_PARAMETERS, ACK_TIMER).
type RDMResponse struct {
	SourceUID         UID
	DestinationUID    UID
	TransactionNumber uint8
	ResponseType      ResponseType
	MessageCount      uint8
	SubDevice         uint16
	CommandClass      CommandClass
	ParamID           uint16
	ParamData         []byte
}

// responseCommandClass maps a request's command class to the command class
// its response carries.
func responseCommandClass(cc CommandClass) CommandClass {
	if cc == CCSetCommand {
		return CCSetCommandResponse
	}
	return CCGetCommandResponse
}

// GetResponseFromData builds an ACK (or other response-type) response
// carrying data as parameter data, mirroring the request's transaction
// number, sub-device, and PID, and inverting source/destination.
func GetResponseFromData(req *RDMRequest, data []byte, responseType ResponseType, messageCount uint8) *RDMResponse {
	return &RDMResponse{
		SourceUID:         req.DestinationUID,
		DestinationUID:    req.SourceUID,
		TransactionNumber: req.TransactionNumber,
		ResponseType:      responseType,
		MessageCount:      messageCount,
		SubDevice:         req.SubDevice,
		CommandClass:      responseCommandClass(req.CommandClass),
		ParamID:           req.ParamID,
		ParamData:         data,
	}
}

// NackWithReason builds a NACK response carrying reason as a big-endian
// uint16 parameter-data payload.
func NackWithReason(req *RDMRequest, reason NackReason, messageCount uint8) *RDMResponse {
	data := newBufWriter().WriteU16BE(uint16(reason)).Bytes()
	resp := GetResponseFromData(req, data, ResponseTypeNackReason, messageCount)
	return resp
}

// AckTimerResponse builds an ACK_TIMER response whose payload is the number
// of tenths of a second until the deferred response becomes available.
func AckTimerResponse(req *RDMRequest, tenthsOfSecond uint16, messageCount uint8) *RDMResponse {
	data := newBufWriter().WriteU16BE(tenthsOfSecond).Bytes()
	return GetResponseFromData(req, data, ResponseTypeAckTimer, messageCount)
}

// EmptyGetResponse builds a zero-length-payload ACK response for a GET
// handler whose side effect is the only observable result.
func EmptyGetResponse(req *RDMRequest) *RDMResponse {
	return GetResponseFromData(req, nil, ResponseTypeAck, 0)
}

// EmptySetResponse builds a zero-length-payload ACK response for a SET
// handler — the common case, since SET responses rarely echo the new value.
func EmptySetResponse(req *RDMRequest) *RDMResponse {
	return GetResponseFromData(req, nil, ResponseTypeAck, 0)
}
