package raknet

import (
	"reflect"
	"testing"
)

func TestReassemblerOrderBuffering(t *testing.T) {
	var delivered []string
	r := NewReassembler(func(p []byte) { delivered = append(delivered, string(p)) })

	frames := []*Frame{
		{Reliability: ReliableOrdered, OrderIndex: 0, Payload: []byte("zero")},
		{Reliability: ReliableOrdered, OrderIndex: 2, Payload: []byte("two")},
		{Reliability: ReliableOrdered, OrderIndex: 1, Payload: []byte("one")},
	}
	r.HandleFrameSet(&FrameSet{Sequence: 0, Frames: frames})

	want := []string{"zero", "one", "two"}
	if !reflect.DeepEqual(delivered, want) {
		t.Fatalf("delivered = %v, want %v", delivered, want)
	}
}

func TestReassemblerDuplicateFrameSetDiscarded(t *testing.T) {
	var count int
	r := NewReassembler(func(p []byte) { count++ })

	r.HandleFrameSet(&FrameSet{Sequence: 5, Frames: []*Frame{{Payload: []byte("a")}}})
	r.HandleFrameSet(&FrameSet{Sequence: 5, Frames: []*Frame{{Payload: []byte("a")}}})
	r.HandleFrameSet(&FrameSet{Sequence: 3, Frames: []*Frame{{Payload: []byte("stale")}}})

	if count != 1 {
		t.Fatalf("expected exactly one delivery, got %d", count)
	}
}

func TestReassemblerLossDetectionPopulatesNACK(t *testing.T) {
	r := NewReassembler(func(p []byte) {})
	r.HandleFrameSet(&FrameSet{Sequence: 0, Frames: []*Frame{{Payload: []byte("a")}}})
	r.HandleFrameSet(&FrameSet{Sequence: 3, Frames: []*Frame{{Payload: []byte("d")}}})

	ack, nack := r.FlushACKNACK()
	if !reflect.DeepEqual(ack, []uint32{0, 3}) {
		t.Fatalf("ack = %v, want [0 3]", ack)
	}
	if !reflect.DeepEqual(nack, []uint32{1, 2}) {
		t.Fatalf("nack = %v, want [1 2]", nack)
	}

	// A second flush with nothing new pending must return nil, nil.
	ack, nack = r.FlushACKNACK()
	if ack != nil || nack != nil {
		t.Fatalf("expected empty flush after drain, got ack=%v nack=%v", ack, nack)
	}
}

func TestReassemblerFragmentReassemblyOutOfOrder(t *testing.T) {
	var out []byte
	r := NewReassembler(func(p []byte) { out = append(out, p...) })

	parts := [][]byte{[]byte("AAAA"), []byte("BBBB"), []byte("CCCC"), []byte("DDDD")}
	order := []int{2, 0, 3, 1}
	var frames []*Frame
	for _, idx := range order {
		frames = append(frames, &Frame{
			Reliability:   ReliableOrdered,
			Fragmented:    true,
			FragmentID:    42,
			FragmentSize:  4,
			FragmentIndex: uint32(idx),
			OrderIndex:    0,
			Payload:       parts[idx],
		})
	}
	r.HandleFrameSet(&FrameSet{Sequence: 0, Frames: frames})

	want := "AAAABBBBCCCCDDDD"
	if string(out) != want {
		t.Fatalf("reassembled = %q, want %q", out, want)
	}
}

func TestReassemblerSequencedDropsStaleDeliversNewer(t *testing.T) {
	var delivered []string
	r := NewReassembler(func(p []byte) { delivered = append(delivered, string(p)) })

	frames := []*Frame{
		{Reliability: UnreliableSequenced, SequenceIndex: 1, Payload: []byte("one")},
		{Reliability: UnreliableSequenced, SequenceIndex: 0, Payload: []byte("zero")},
		{Reliability: UnreliableSequenced, SequenceIndex: 2, Payload: []byte("two")},
	}
	r.HandleFrameSet(&FrameSet{Sequence: 0, Frames: frames})

	want := []string{"one", "two"}
	if !reflect.DeepEqual(delivered, want) {
		t.Fatalf("delivered = %v, want %v (stale sequenced frame must be dropped)", delivered, want)
	}
}
