package rdm

import "time"

// MaxQueuedMessageCount is the ceiling advertised in message_count,
// regardless of how many responses are actually queued.
const MaxQueuedMessageCount = 255

// AckTimerMillis is the default deferral period for AckTimerResponder,
// expressed in milliseconds.
const AckTimerMillis = 400

// queuedResponse is one deferred response awaiting collection.
type queuedResponse struct {
	validAfter   time.Time
	pid          uint16
	responseType ResponseType
	ccResponse   CommandClass
	data         []byte
}

// AckTimerQueue holds deferred responses through their upcoming ->
// ready(FIFO) -> last lifecycle. Migration from upcoming to ready happens
// only when Migrate is called, once at the start of handling each new
// request, never on a timer thread.
type AckTimerQueue struct {
	upcoming []*queuedResponse // insertion order; scanned as a strict prefix
	ready    []*queuedResponse // FIFO; front is index 0
	last     *queuedResponse
}

// NewAckTimerQueue returns an empty queue.
func NewAckTimerQueue() *AckTimerQueue {
	return &AckTimerQueue{}
}

// Enqueue adds a deferred response to the upcoming set, to become ready at
// now+delay.
func (q *AckTimerQueue) Enqueue(now time.Time, delay time.Duration, pid uint16, ccResponse CommandClass, data []byte) {
	q.upcoming = append(q.upcoming, &queuedResponse{
		validAfter: now.Add(delay),
		pid:        pid,
		ccResponse: ccResponse,
		data:       data,
	})
}

// Migrate moves every upcoming response whose valid_after has passed into
// the ready FIFO, in insertion order, stopping at the first entry that is
// not yet due. A later entry must never overtake an earlier one, even if
// its own deadline is sooner.
func (q *AckTimerQueue) Migrate(now time.Time) {
	i := 0
	for i < len(q.upcoming) && !now.Before(q.upcoming[i].validAfter) {
		q.ready = append(q.ready, q.upcoming[i])
		i++
	}
	q.upcoming = q.upcoming[i:]
}

// Len reports the number of ready (dequeueable) responses.
func (q *AckTimerQueue) Len() int {
	return len(q.ready)
}

// MessageCount reports the queued-message count to advertise, capped at
// MaxQueuedMessageCount. Pending-but-not-yet-ready entries
// count too: a controller cares about total outstanding work, not just
// what has crossed its deadline.
func (q *AckTimerQueue) MessageCount() uint8 {
	n := len(q.ready) + len(q.upcoming)
	if n > MaxQueuedMessageCount {
		n = MaxQueuedMessageCount
	}
	return uint8(n) //nolint:gosec // capped above
}

// Dequeue pops the FIFO front, recording it as the new last-queued message.
// Returns false if the ready queue is empty.
func (q *AckTimerQueue) Dequeue() (*queuedResponse, bool) {
	if len(q.ready) == 0 {
		return nil, false
	}
	front := q.ready[0]
	q.ready = q.ready[1:]
	q.last = front
	return front, true
}

// Last returns the most recently dequeued response, for re-retrieval via
// STATUS_GET_LAST_MESSAGE.
func (q *AckTimerQueue) Last() (*queuedResponse, bool) {
	if q.last == nil {
		return nil, false
	}
	return q.last, true
}

// HandleQueuedMessageGet implements GET PID_QUEUED_MESSAGE. Migrate is
// assumed to have already run for this request; the responder calls it
// once up front.
func (q *AckTimerQueue) HandleQueuedMessageGet(req *RDMRequest) *RDMResponse {
	statusType, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, q.MessageCount())
	}

	if statusType == StatusGetLastMessage {
		if last, ok := q.Last(); ok {
			return &RDMResponse{
				SourceUID:         req.DestinationUID,
				DestinationUID:    req.SourceUID,
				TransactionNumber: req.TransactionNumber,
				ResponseType:      last.responseType,
				MessageCount:      q.MessageCount(),
				SubDevice:         req.SubDevice,
				CommandClass:      last.ccResponse,
				ParamID:           last.pid,
				ParamData:         last.data,
			}
		}
		return emptyStatusMessages(req, q.MessageCount())
	}

	front, ok := q.Dequeue()
	if !ok {
		return emptyStatusMessages(req, q.MessageCount())
	}

	return &RDMResponse{
		SourceUID:         req.DestinationUID,
		DestinationUID:    req.SourceUID,
		TransactionNumber: req.TransactionNumber,
		ResponseType:      front.responseType,
		MessageCount:      q.MessageCount(),
		SubDevice:         req.SubDevice,
		CommandClass:      front.ccResponse,
		ParamID:           front.pid,
		ParamData:         front.data,
	}
}

func emptyStatusMessages(req *RDMRequest, messageCount uint8) *RDMResponse {
	resp := GetResponseFromData(req, nil, ResponseTypeAck, messageCount)
	resp.ParamID = PIDStatusMessages
	return resp
}
