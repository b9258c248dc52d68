package rdm

import "time"

func ackTimerDelay() time.Duration {
	return AckTimerMillis * time.Millisecond
}

// AckTimerResponder models a responder whose DMX_START_ADDRESS and
// IDENTIFY_DEVICE SETs are deferred behind an ACK_TIMER, with the real
// response collected later via QUEUED_MESSAGE.
type AckTimerResponder struct {
	uid           UID
	startAddress  uint16
	identifyMode  bool
	personalities *PersonalityManager
	queue         *AckTimerQueue
	clock         Clock
}

// NewAckTimerResponder builds an AckTimerResponder with the given UID and
// personality table, starting at DMX address 1.
func NewAckTimerResponder(uid UID, personalities Personalities, clock Clock) *AckTimerResponder {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AckTimerResponder{
		uid:           uid,
		startAddress:  1,
		personalities: NewPersonalityManager(personalities),
		queue:         NewAckTimerQueue(),
		clock:         clock,
	}
}

var ackTimerOps = NewResponderOps(ackTimerParamHandlers)

var ackTimerParamHandlers = []ParamHandler[*AckTimerResponder]{
	{PID: PIDDeviceInfo, Get: (*AckTimerResponder).getDeviceInfo},
	{PID: PIDDmxStartAddress, Get: (*AckTimerResponder).getDmxStartAddress, Set: (*AckTimerResponder).setDmxStartAddress},
	{PID: PIDIdentifyDevice, Get: (*AckTimerResponder).getIdentifyDevice, Set: (*AckTimerResponder).setIdentifyDevice},
	{PID: PIDDmxPersonality, Get: (*AckTimerResponder).getPersonality, Set: (*AckTimerResponder).setPersonality},
	{PID: PIDDmxPersonalityDescr, Get: (*AckTimerResponder).getPersonalityDescription},
	{PID: PIDQueuedMessage, Get: (*AckTimerResponder).getQueuedMessage},
	{PID: PIDSoftwareVersionLabel, Get: (*AckTimerResponder).getSoftwareVersionLabel},
}

// SendRDMRequest is the responder façade entry point: migrate any now-due
// upcoming responses, then delegate to ResponderOps.
func (r *AckTimerResponder) SendRDMRequest(req *RDMRequest, onComplete Callback) {
	r.queue.Migrate(r.clock.Now())
	// Every response from this responder reports the live queue depth, not
	// just the ones the queue itself builds, so a controller always sees
	// accurate pending-message advertising regardless of which PID it asked
	// for.
	ackTimerOps.HandleRDMRequest(r, r.uid, RootRDMDevice, req, func(status Status, resp *RDMResponse) {
		if resp != nil {
			resp.MessageCount = r.queue.MessageCount()
		}
		onComplete(status, resp)
	})
}

// QueueDepth reports the responder's live queued-message count, for
// instrumentation (rdmmetrics.Collector.SetQueueDepth).
func (r *AckTimerResponder) QueueDepth() int {
	return int(r.queue.MessageCount())
}

func (r *AckTimerResponder) getDeviceInfo(req *RDMRequest) *RDMResponse {
	return GetDeviceInfo(req, DeviceInfo{
		Model:           DummyDeviceModel,
		ProductCategory: ProductCategoryFixture,
		SoftwareVersion: 1,
		DmxStartAddress: r.startAddress,
	}, r.personalities)
}

func (r *AckTimerResponder) getDmxStartAddress(req *RDMRequest) *RDMResponse {
	return GetDmxAddress(req, r.startAddress, r.personalities.Footprint())
}

// setDmxStartAddress updates state immediately but defers the ACK behind
// an ACK_TIMER.
func (r *AckTimerResponder) setDmxStartAddress(req *RDMRequest) *RDMResponse {
	addr, nack := SetDmxAddress(req, r.personalities.Footprint())
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.startAddress = addr
	return r.deferAck(req)
}

func (r *AckTimerResponder) getIdentifyDevice(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, r.identifyMode)
}

func (r *AckTimerResponder) setIdentifyDevice(req *RDMRequest) *RDMResponse {
	v, nack := SetBoolValue(req)
	if nack.ResponseType != ResponseTypeAck {
		return nack
	}
	r.identifyMode = v
	return r.deferAck(req)
}

// deferAck enqueues the materialized empty-ACK set-response and returns the
// ACK_TIMER response advertising when it becomes available.
func (r *AckTimerResponder) deferAck(req *RDMRequest) *RDMResponse {
	r.queue.Enqueue(r.clock.Now(), ackTimerDelay(), req.ParamID, responseCommandClass(req.CommandClass), nil)
	tenths := uint16(1 + AckTimerMillis/100)
	return AckTimerResponse(req, tenths, r.queue.MessageCount())
}

func (r *AckTimerResponder) getPersonality(req *RDMRequest) *RDMResponse {
	return GetPersonalityResponse(req, r.personalities)
}

func (r *AckTimerResponder) setPersonality(req *RDMRequest) *RDMResponse {
	return SetPersonality(req, r.personalities, r.startAddress)
}

func (r *AckTimerResponder) getPersonalityDescription(req *RDMRequest) *RDMResponse {
	return GetPersonalityDescription(req, r.personalities)
}

func (r *AckTimerResponder) getQueuedMessage(req *RDMRequest) *RDMResponse {
	return r.queue.HandleQueuedMessageGet(req)
}

func (r *AckTimerResponder) getSoftwareVersionLabel(req *RDMRequest) *RDMResponse {
	return GetString(req, "rdmsim ack-timer responder")
}

// UID returns the responder's own RDM identifier.
func (r *AckTimerResponder) UID() UID {
	return r.uid
}
