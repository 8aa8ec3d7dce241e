package batch

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTripUncompressed(t *testing.T) {
	packets := [][]byte{[]byte("hello"), []byte("world"), {}}
	c := Compression{}

	data, err := Encode(packets, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if data[0] != batchHeader {
		t.Fatalf("expected leading 0xFE, got 0x%02X", data[0])
	}

	got, err := Decode(data, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != len(packets) {
		t.Fatalf("got %d packets, want %d", len(got), len(packets))
	}
	for i := range packets {
		if !bytes.Equal(got[i], packets[i]) {
			t.Errorf("packet %d = %q, want %q", i, got[i], packets[i])
		}
	}
}

func TestEncodeBelowThresholdUsesNoneAlgorithm(t *testing.T) {
	c := Compression{Enabled: true, Algorithm: Zlib, Threshold: 256}
	data, err := Encode([][]byte{[]byte("short")}, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if data[0] != batchHeader || data[1] != byte(None) {
		t.Fatalf("expected 0xFE then None algorithm byte, got % X", data[:2])
	}
}

func TestEncodeAboveThresholdCompressesZlib(t *testing.T) {
	c := Compression{Enabled: true, Algorithm: Zlib, Threshold: 32}
	payload := bytes.Repeat([]byte("x"), 600)

	data, err := Encode([][]byte{payload}, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if data[0] != batchHeader || data[1] != byte(Zlib) {
		t.Fatalf("expected 0xFE then zlib algorithm byte, got % X", data[:2])
	}

	got, err := Decode(data, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || !bytes.Equal(got[0], payload) {
		t.Fatalf("round trip mismatch")
	}
}

func TestEncodeAboveThresholdSnappy(t *testing.T) {
	c := Compression{Enabled: true, Algorithm: Snappy, Threshold: 16}
	payload := bytes.Repeat([]byte("snap"), 200)

	data, err := Encode([][]byte{payload}, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if data[0] != batchHeader || data[1] != byte(Snappy) {
		t.Fatalf("expected 0xFE then snappy algorithm byte, got % X", data[:2])
	}

	got, err := Decode(data, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || !bytes.Equal(got[0], payload) {
		t.Fatalf("snappy round trip mismatch")
	}
}

func TestDecodeUnknownAlgorithmTreatedAsRaw(t *testing.T) {
	c := Compression{Enabled: true, Algorithm: Zlib, Threshold: 0}
	raw := []byte{batchHeader, 0x02, 0x02, 'h', 'i'} // unknown algorithm byte 0x02
	got, err := Decode(raw, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || string(got[0]) != "hi" {
		t.Fatalf("expected raw passthrough, got %v", got)
	}
}

func TestPacketIDMasksSubClientBits(t *testing.T) {
	// Packet ID 144 (PlayerAuthInput) with a sub-client bit (bit 10) set above
	// the low 10 ID bits:
	// varint-encoded 1168 (144 | 1<<10) is {0x90, 0x09}.
	payload := []byte{0x90, 0x09}
	id, n, err := PacketID(payload)
	if err != nil {
		t.Fatalf("PacketID: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2-byte varint header, got %d", n)
	}
	if id != 144 {
		t.Fatalf("expected packet id 144, got %d", id)
	}
}
