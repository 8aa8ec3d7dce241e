package raknet

import (
	"bytes"
	"testing"
)

func TestFrameWriteReadRoundTrip(t *testing.T) {
	f := &Frame{
		Reliability:   ReliableOrdered,
		ReliableIndex: 7,
		OrderIndex:    3,
		OrderChannel:  1,
		Payload:       []byte("hello frame"),
	}
	buf := f.write(nil)
	got, rest, err := readFrame(buf)
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no trailing bytes, got %d", len(rest))
	}
	if got.ReliableIndex != f.ReliableIndex || got.OrderIndex != f.OrderIndex || got.OrderChannel != f.OrderChannel {
		t.Fatalf("round trip metadata mismatch: %+v vs %+v", got, f)
	}
	if !bytes.Equal(got.Payload, f.Payload) {
		t.Fatalf("payload mismatch: %q vs %q", got.Payload, f.Payload)
	}
}

func TestFrameSetWriteReadRoundTrip(t *testing.T) {
	fs := &FrameSet{
		Sequence: 1234,
		Frames: []*Frame{
			{Reliability: Unreliable, Payload: []byte("a")},
			{Reliability: Reliable, ReliableIndex: 1, Payload: []byte("bb")},
		},
	}
	raw := fs.write()
	if !IsFrameSet(raw[0]) {
		t.Fatalf("expected leading byte to be recognized as a frame set")
	}
	got, err := ReadFrameSet(raw)
	if err != nil {
		t.Fatalf("ReadFrameSet: %v", err)
	}
	if got.Sequence != fs.Sequence {
		t.Fatalf("sequence = %d, want %d", got.Sequence, fs.Sequence)
	}
	if len(got.Frames) != len(fs.Frames) {
		t.Fatalf("frame count = %d, want %d", len(got.Frames), len(fs.Frames))
	}
}

func TestIsFrameSetExcludesACKNACK(t *testing.T) {
	if IsFrameSet(bitFlagDatagram | bitFlagACK) {
		t.Fatalf("ACK byte must not be recognized as a frame set")
	}
	if IsFrameSet(bitFlagDatagram | bitFlagNACK) {
		t.Fatalf("NACK byte must not be recognized as a frame set")
	}
	if !IsFrameSet(bitFlagDatagram) {
		t.Fatalf("plain datagram bit must be recognized as a frame set")
	}
}
