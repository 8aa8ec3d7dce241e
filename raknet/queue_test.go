package raknet

import (
	"bytes"
	"testing"
)

func TestQueueReliableIndexStrictlyIncreasing(t *testing.T) {
	var sent [][]byte
	q := NewQueue(func(b []byte) { sent = append(sent, b) })

	for i := 0; i < 5; i++ {
		q.Send([]byte{byte(i)}, Reliable, 0, Immediate)
	}

	var indices []uint32
	for _, raw := range sent {
		fs, err := ReadFrameSet(raw)
		if err != nil {
			t.Fatalf("ReadFrameSet: %v", err)
		}
		for _, f := range fs.Frames {
			indices = append(indices, f.ReliableIndex)
		}
	}
	for i, idx := range indices {
		if idx != uint32(i) {
			t.Fatalf("reliable index %d = %d, want %d", i, idx, i)
		}
	}
}

func TestQueueOrderedIndicesIncreaseSequencedReuse(t *testing.T) {
	var sent [][]byte
	q := NewQueue(func(b []byte) { sent = append(sent, b) })

	q.Send([]byte("a"), ReliableOrdered, 0, Immediate)
	q.Send([]byte("b"), ReliableOrdered, 0, Immediate)
	q.Send([]byte("c"), UnreliableSequenced, 0, Immediate)
	q.Send([]byte("d"), UnreliableSequenced, 0, Immediate)

	var frames []*Frame
	for _, raw := range sent {
		fs, _ := ReadFrameSet(raw)
		frames = append(frames, fs.Frames...)
	}

	if frames[0].OrderIndex != 0 || frames[1].OrderIndex != 1 {
		t.Fatalf("expected order-exclusive indices 0,1; got %d,%d", frames[0].OrderIndex, frames[1].OrderIndex)
	}
	if frames[2].OrderIndex != 2 || frames[3].OrderIndex != 2 {
		t.Fatalf("expected sequenced frames to reuse order index 2; got %d,%d", frames[2].OrderIndex, frames[3].OrderIndex)
	}
	if frames[2].SequenceIndex != 0 || frames[3].SequenceIndex != 1 {
		t.Fatalf("expected strictly increasing sequence index; got %d,%d", frames[2].SequenceIndex, frames[3].SequenceIndex)
	}
}

func TestQueueFragmentationRoundTrip(t *testing.T) {
	var sent [][]byte
	q := NewQueue(func(b []byte) { sent = append(sent, b) })

	payload := make([]byte, fragmentThreshold*3+100)
	for i := range payload {
		payload[i] = byte(i)
	}
	q.Send(payload, ReliableOrdered, 0, Immediate)

	var frames []*Frame
	for _, raw := range sent {
		fs, err := ReadFrameSet(raw)
		if err != nil {
			t.Fatalf("ReadFrameSet: %v", err)
		}
		frames = append(frames, fs.Frames...)
	}

	reassembled := NewReassembler(func(p []byte) {})
	var out []byte
	reassembled.Deliver = func(p []byte) { out = append(out, p...) }
	for _, f := range frames {
		reassembled.dispatch(f)
	}

	if !bytes.Equal(out, payload) {
		t.Fatalf("fragment round trip mismatch: got %d bytes, want %d", len(out), len(payload))
	}

	for i, f := range frames {
		want := uint32(i)
		if f.ReliableIndex != want {
			t.Fatalf("fragment %d reliable index = %d, want %d (each fragment must get its own fresh index)", i, f.ReliableIndex, want)
		}
	}
}

func TestQueueNACKRetransmitsBackup(t *testing.T) {
	var sent [][]byte
	q := NewQueue(func(b []byte) { sent = append(sent, b) })

	q.Send([]byte("one"), Reliable, 0, Immediate)
	q.Send([]byte("two"), Reliable, 0, Immediate)

	if !q.BackedUp(0) {
		t.Fatalf("expected sequence 0 to be backed up")
	}

	before := len(sent)
	q.OnNACK(0)
	if len(sent) <= before {
		t.Fatalf("expected retransmission to send a new frame set")
	}

	retransmitted, err := ReadFrameSet(sent[len(sent)-1])
	if err != nil {
		t.Fatalf("ReadFrameSet: %v", err)
	}
	if len(retransmitted.Frames) != 1 || !bytes.Equal(retransmitted.Frames[0].Payload, []byte("one")) {
		t.Fatalf("expected retransmitted frame set to carry the original payload")
	}
	if retransmitted.Frames[0].ReliableIndex != 0 {
		t.Fatalf("retransmitted frame should keep its original reliable index, got %d", retransmitted.Frames[0].ReliableIndex)
	}
}

func TestQueueACKDropsBackup(t *testing.T) {
	q := NewQueue(func(b []byte) {})
	q.Send([]byte("x"), Reliable, 0, Immediate)
	if !q.BackedUp(0) {
		t.Fatalf("expected backup after send")
	}
	q.OnACK(0)
	if q.BackedUp(0) {
		t.Fatalf("expected backup to be dropped after ACK")
	}
}
