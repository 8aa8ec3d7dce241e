package raknet

import "sort"

type fragmentAssembly struct {
	size  uint32
	parts map[uint32][]byte
}

type orderChannel struct {
	expected uint32
	pending  map[uint32]*Frame
	// nextSequence is the lowest sequence index a sequenced frame on this
	// channel may still carry; older sequenced frames are superseded.
	nextSequence uint32
}

// Reassembler implements the inbound reassembly layer: it
// deduplicates and reorders incoming frame sets, emits ACK/NACK records,
// reassembles fragments and enforces per-channel ordering before handing
// clean payloads upward.
type Reassembler struct {
	// Deliver is invoked, in order, with every payload ready to move up to
	// the batch handler.
	Deliver func(payload []byte)

	receivedSequences map[uint32]bool
	lostSequences     map[uint32]bool
	lastSequence       int64

	pendingACK  []uint32
	pendingNACK []uint32

	fragments map[uint16]*fragmentAssembly
	channels  [maxChannels]orderChannel
}

// NewReassembler creates an inbound reassembler delivering payloads to
// deliver.
func NewReassembler(deliver func(payload []byte)) *Reassembler {
	r := &Reassembler{
		Deliver:           deliver,
		receivedSequences: make(map[uint32]bool),
		lostSequences:     make(map[uint32]bool),
		lastSequence:      -1,
		fragments:         make(map[uint16]*fragmentAssembly),
	}
	for i := range r.channels {
		r.channels[i].pending = make(map[uint32]*Frame)
	}
	return r
}

// HandleFrameSet processes one inbound frame set: duplicate rejection,
// loss detection, sequence bookkeeping, then per-frame dispatch.
func (r *Reassembler) HandleFrameSet(fs *FrameSet) {
	seq := int64(fs.Sequence)
	if seq <= r.lastSequence {
		return
	}

	r.receivedSequences[fs.Sequence] = true
	r.pendingACK = append(r.pendingACK, fs.Sequence)

	for i := r.lastSequence + 1; i < seq; i++ {
		s := uint32(i)
		if !r.receivedSequences[s] {
			r.lostSequences[s] = true
			r.pendingNACK = append(r.pendingNACK, s)
		}
	}
	r.lastSequence = seq

	for _, f := range fs.Frames {
		r.dispatch(f)
	}
}

// dispatch routes a single frame through fragmentation and ordering before
// delivering its payload.
func (r *Reassembler) dispatch(f *Frame) {
	if f.Fragmented {
		r.handleFragment(f)
		return
	}
	if f.Reliability.sequenced() {
		r.handleSequenced(f)
		return
	}
	if f.Reliability.ordered() {
		r.handleOrdered(f)
		return
	}
	r.Deliver(f.Payload)
}

// handleSequenced delivers a sequenced frame only if no newer one has been
// seen on its channel; stale sequenced frames are dropped, never buffered.
func (r *Reassembler) handleSequenced(f *Frame) {
	ch := &r.channels[f.OrderChannel]
	if f.SequenceIndex < ch.nextSequence {
		return
	}
	ch.nextSequence = f.SequenceIndex + 1
	r.Deliver(f.Payload)
}

// handleFragment stashes a fragment and, once all parts of its compound ID
// have arrived, concatenates them in ascending index order and re-enters
// dispatch with a synthetic, unfragmented frame carrying the original
// reliability metadata.
func (r *Reassembler) handleFragment(f *Frame) {
	asm, ok := r.fragments[f.FragmentID]
	if !ok {
		asm = &fragmentAssembly{size: f.FragmentSize, parts: make(map[uint32][]byte)}
		r.fragments[f.FragmentID] = asm
	}
	asm.parts[f.FragmentIndex] = f.Payload

	if uint32(len(asm.parts)) < asm.size {
		return
	}
	delete(r.fragments, f.FragmentID)

	var whole []byte
	for i := uint32(0); i < asm.size; i++ {
		whole = append(whole, asm.parts[i]...)
	}

	synthetic := &Frame{
		Reliability:   f.Reliability,
		ReliableIndex: f.ReliableIndex,
		SequenceIndex: f.SequenceIndex,
		OrderIndex:    f.OrderIndex,
		OrderChannel:  f.OrderChannel,
		Payload:       whole,
	}
	r.dispatch(synthetic)
}

// handleOrdered implements the per-channel ordering state machine: process
// in-order frames immediately and drain any contiguous successors already
// parked in the queue; park out-of-order frames; drop stale duplicates.
func (r *Reassembler) handleOrdered(f *Frame) {
	ch := &r.channels[f.OrderChannel]
	switch {
	case f.OrderIndex == ch.expected:
		r.Deliver(f.Payload)
		ch.expected++
		for {
			next, ok := ch.pending[ch.expected]
			if !ok {
				break
			}
			delete(ch.pending, ch.expected)
			r.Deliver(next.Payload)
			ch.expected++
		}
	case f.OrderIndex > ch.expected:
		ch.pending[f.OrderIndex] = f
	default:
		// Duplicate of an already-processed order index; drop.
	}
}

// FlushACKNACK returns, and clears, the pending ACK and NACK sequence lists.
// The caller is expected to call this every ackFlushInterval and encode and
// send any non-empty result.
func (r *Reassembler) FlushACKNACK() (ack, nack []uint32) {
	if len(r.pendingACK) > 0 {
		ack = r.pendingACK
		sort.Slice(ack, func(i, j int) bool { return ack[i] < ack[j] })
		r.pendingACK = nil
	}
	if len(r.pendingNACK) > 0 {
		nack = r.pendingNACK
		sort.Slice(nack, func(i, j int) bool { return nack[i] < nack[j] })
		r.pendingNACK = nil
	}
	return ack, nack
}
