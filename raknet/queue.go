package raknet

import "math"

// Queue implements the outbound reliability layer: it assigns
// reliable/order/sequence indices, fragments oversize payloads, batches
// frames into frame sets under MTU, and keeps a retransmission backup keyed
// by frame-set sequence.
type Queue struct {
	send func([]byte)

	reliableIndex uint32
	orderIndex    [maxChannels]uint32
	sequenceIndex [maxChannels]uint32
	fragmentID    uint16
	frameSetSeq   uint32

	current     []*Frame
	currentSize int

	backup map[uint32][]*Frame
}

// NewQueue creates an outbound queue that hands serialized frame sets to
// send.
func NewQueue(send func([]byte)) *Queue {
	return &Queue{send: send, backup: make(map[uint32][]*Frame)}
}

// Send enqueues a payload with the given reliability at the given priority
// on the given order channel. It implements the assignment and
// fragmentation rules described on Queue.
func (q *Queue) Send(payload []byte, reliability Reliability, channel byte, priority Priority) {
	for _, frame := range q.buildFrames(payload, reliability, channel) {
		q.enqueue(frame)
	}
	if priority == Immediate {
		q.Flush()
	}
}

// buildFrames assigns indices and splits the payload into one or more
// frames. Each fragment gets its own frame record and reliable index;
// sharing one record across fragments would let a later fragment overwrite
// an earlier one before it is enqueued.
func (q *Queue) buildFrames(payload []byte, reliability Reliability, channel byte) []*Frame {
	var orderIndex uint32
	var sequenceIndex uint32
	switch {
	case reliability.sequenced():
		orderIndex = q.orderIndex[channel]
		sequenceIndex = q.sequenceIndex[channel]
		q.sequenceIndex[channel]++
	case reliability.ordered():
		orderIndex = q.orderIndex[channel]
		q.orderIndex[channel]++
		q.sequenceIndex[channel] = 0
	}

	if len(payload) <= fragmentThreshold {
		f := &Frame{Reliability: reliability, OrderIndex: orderIndex, SequenceIndex: sequenceIndex, OrderChannel: channel, Payload: payload}
		if reliability.reliable() {
			f.ReliableIndex = q.reliableIndex
			q.reliableIndex++
		}
		return []*Frame{f}
	}

	partCount := int(math.Ceil(float64(len(payload)) / float64(fragmentThreshold)))
	fragID := q.fragmentID
	q.fragmentID++

	frames := make([]*Frame, 0, partCount)
	for i := 0; i < partCount; i++ {
		start := i * fragmentThreshold
		end := start + fragmentThreshold
		if end > len(payload) {
			end = len(payload)
		}
		f := &Frame{
			Reliability:   reliability,
			OrderIndex:    orderIndex,
			SequenceIndex: sequenceIndex,
			OrderChannel:  channel,
			Fragmented:    true,
			FragmentID:    fragID,
			FragmentSize:  uint32(partCount),
			FragmentIndex: uint32(i),
			Payload:       append([]byte(nil), payload[start:end]...),
		}
		if reliability.reliable() {
			f.ReliableIndex = q.reliableIndex
			q.reliableIndex++
		}
		frames = append(frames, f)
	}
	return frames
}

// enqueue appends a frame to the current frame set, flushing first if it
// would overflow the byte budget.
func (q *Queue) enqueue(f *Frame) {
	size := f.size()
	if q.currentSize+size > frameSetByteBudget {
		q.Flush()
	}
	q.current = append(q.current, f)
	q.currentSize += size
}

// Flush serializes and sends the current frame set, recording its reliable
// frames in the retransmission backup, then clears the current set.
func (q *Queue) Flush() {
	if len(q.current) == 0 {
		return
	}
	fs := &FrameSet{Sequence: q.frameSetSeq, Frames: q.current}
	q.frameSetSeq++

	var reliableFrames []*Frame
	for _, f := range fs.Frames {
		if f.Reliability.reliable() {
			reliableFrames = append(reliableFrames, f)
		}
	}
	if len(reliableFrames) > 0 {
		q.backup[fs.Sequence] = reliableFrames
	}

	q.send(fs.write())
	q.current = nil
	q.currentSize = 0
}

// OnACK drops the backup entry for sequence s; its frames are confirmed
// delivered.
func (q *Queue) OnACK(seq uint32) { delete(q.backup, seq) }

// OnNACK re-enqueues, at Immediate priority, every frame previously recorded
// for sequence s, keeping their existing reliable/order/sequence indices so
// the peer can dedup by reliable index.
func (q *Queue) OnNACK(seq uint32) {
	frames, ok := q.backup[seq]
	if !ok {
		return
	}
	for _, f := range frames {
		q.enqueue(f)
	}
	q.Flush()
}

// BackedUp reports whether sequence s still has an un-ACKed backup entry.
// Exposed for tests.
func (q *Queue) BackedUp(seq uint32) bool {
	_, ok := q.backup[seq]
	return ok
}
