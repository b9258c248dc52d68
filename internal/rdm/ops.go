package rdm

// Callback is invoked exactly once per HandleRDMRequest call. response is
// nil unless status is StatusCompletedOK.
type Callback func(status Status, response *RDMResponse)

// Handler is a PID-specific handler method, bound to a concrete responder
// value of type T. It returns the outbound response — an ACK, a NACK, or an
// ACK_TIMER. Returning nil is a programmer error; the dispatcher converts
// it to a hardware-fault NACK rather than dropping the callback.
type Handler[T any] func(target T, req *RDMRequest) *RDMResponse

// ParamHandler associates a PID with its GET and/or SET handler. A nil
// Get or Set means the command class is unsupported for that PID.
type ParamHandler[T any] struct {
	PID uint16
	Get Handler[T]
	Set Handler[T]
}

// ResponderOps dispatches decoded RDM requests to the GET/SET handler
// registered for their PID, for one concrete responder type T. One
// ResponderOps value is built once per responder type and shared by every
// instance of that type — it holds no per-responder state itself.
type ResponderOps[T any] struct {
	handlers map[uint16]ParamHandler[T]
	pidOrder []uint16 // insertion order, for SUPPORTED_PARAMETERS
}

// NewResponderOps builds a ResponderOps from a static handler table. The
// table should be a package-level slice literal: a process-wide immutable
// singleton per responder type.
func NewResponderOps[T any](handlers []ParamHandler[T]) *ResponderOps[T] {
	ops := &ResponderOps[T]{
		handlers: make(map[uint16]ParamHandler[T], len(handlers)),
		pidOrder: make([]uint16, 0, len(handlers)),
	}
	for _, h := range handlers {
		ops.handlers[h.PID] = h
		ops.pidOrder = append(ops.pidOrder, h.PID)
	}
	return ops
}

// alwaysSupportedPIDs are excluded from the SUPPORTED_PARAMETERS listing:
// every responder implements them implicitly and a controller must never
// need to ask (ANSI E1.20 §10.5.1).
var alwaysSupportedPIDs = map[uint16]struct{}{
	PIDDiscUniqueBranch:     {},
	PIDDiscMute:             {},
	PIDDiscUnMute:           {},
	PIDSupportedParameters:  {},
	PIDParameterDescription: {},
	PIDDeviceInfo:           {},
	PIDSoftwareVersionLabel: {},
	PIDDmxStartAddress:      {},
	PIDIdentifyDevice:       {},
	PIDQueuedMessage:        {},
	PIDSubDeviceStatusReportThreshold: {},
}

// HandleRDMRequest filters and dispatches one decoded request. targetUID
// and subDeviceNumber identify the concrete responder instance target
// represents.
func (ops *ResponderOps[T]) HandleRDMRequest(target T, targetUID UID, subDeviceNumber uint16, req *RDMRequest, onComplete Callback) {
	// Step 1: command-class filter — discovery commands are out of scope.
	if req.CommandClass.IsDiscovery() {
		onComplete(StatusDiscoveryNotSupported, nil)
		return
	}

	broadcast := req.DestinationUID.IsBroadcast()

	// Step 2: UID filter.
	if !targetUID.Matches(req.DestinationUID) {
		if broadcast {
			onComplete(StatusWasBroadcast, nil)
		} else {
			onComplete(StatusTimeout, nil)
		}
		return
	}

	// Step 3: sub-device filter.
	if req.SubDevice != subDeviceNumber && req.SubDevice != RootRDMDevice && req.SubDevice != SubDeviceBroadcast {
		ops.respond(req, NackWithReason(req, NRSubDeviceOutOfRange, 0), broadcast, onComplete)
		return
	}

	// Step 4: PID lookup, with SUPPORTED_PARAMETERS synthesized. The PID is
	// get-only: a SET is a command-class violation, not an unknown PID.
	if req.ParamID == PIDSupportedParameters {
		if !req.IsGet() {
			ops.respond(req, NackWithReason(req, NRUnsupportedCommandClass, 0), broadcast, onComplete)
			return
		}
		ops.respond(req, ops.handleSupportedParams(req), broadcast, onComplete)
		return
	}

	handler, found := ops.handlers[req.ParamID]
	if !found {
		// Step 5: PID not found.
		ops.respond(req, NackWithReason(req, NRUnknownPid, 0), broadcast, onComplete)
		return
	}

	// Step 6: command-class / handler-presence mismatch.
	var fn Handler[T]
	switch {
	case req.IsGet():
		fn = handler.Get
	case req.IsSet():
		fn = handler.Set
	}
	if fn == nil {
		ops.respond(req, NackWithReason(req, NRUnsupportedCommandClass, 0), broadcast, onComplete)
		return
	}

	// Step 7: dispatch.
	resp := fn(target, req)
	if resp == nil {
		// Programmer error: every unicast request must yield a response or
		// NACK. Surface it as a hardware-fault NACK rather than silently
		// dropping the callback, which must fire exactly once.
		resp = NackWithReason(req, NRHardwareFault, 0)
	}

	// Step 8: broadcast suppression.
	ops.respond(req, resp, broadcast, onComplete)
}

func (ops *ResponderOps[T]) respond(req *RDMRequest, resp *RDMResponse, broadcast bool, onComplete Callback) {
	if broadcast {
		onComplete(StatusWasBroadcast, nil)
		return
	}
	onComplete(StatusCompletedOK, resp)
}

// handleSupportedParams lists the PIDs present in the handler table, in
// insertion order, excluding the always-supported subset.
func (ops *ResponderOps[T]) handleSupportedParams(req *RDMRequest) *RDMResponse {
	w := newBufWriter()
	for _, pid := range ops.pidOrder {
		if _, always := alwaysSupportedPIDs[pid]; always {
			continue
		}
		w.WriteU16BE(pid)
	}
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}
