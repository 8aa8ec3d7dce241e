package raknet

import "testing"

func TestACKRunLengthEncodingSingleRecord(t *testing.T) {
	data := EncodeACK([]uint32{0x123456})
	if len(data) != 7 {
		t.Fatalf("ACK length = %d, want 7", len(data))
	}
	if !IsACK(data[0]) {
		t.Fatalf("leading byte not recognized as ACK")
	}
	got, err := DecodeACK(data)
	if err != nil {
		t.Fatalf("DecodeACK: %v", err)
	}
	if len(got) != 1 || got[0] != 0x123456 {
		t.Fatalf("got %v, want [0x123456]", got)
	}
}

func TestACKRunLengthEncodingRange(t *testing.T) {
	data := EncodeACK([]uint32{1, 2, 3, 4, 7})
	got, err := DecodeACK(data)
	if err != nil {
		t.Fatalf("DecodeACK: %v", err)
	}
	want := []uint32{1, 2, 3, 4, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNACKRoundTrip(t *testing.T) {
	data := EncodeNACK([]uint32{10, 11, 12})
	if !IsNACK(data[0]) {
		t.Fatalf("leading byte not recognized as NACK")
	}
	got, err := DecodeNACK(data)
	if err != nil {
		t.Fatalf("DecodeNACK: %v", err)
	}
	if len(got) != 3 || got[0] != 10 || got[2] != 12 {
		t.Fatalf("got %v", got)
	}
}
