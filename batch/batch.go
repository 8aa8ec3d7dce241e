// Package batch implements the Bedrock game-batch wire format: the
// 0xFE-prefixed payload carrying one or more length-prefixed packets,
// optionally zlib- or Snappy-compressed once compression has been
// negotiated mid-session.
package batch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
)

// Algorithm identifies the compression scheme applied to a batch, matching
// the wire byte values the protocol defines.
type Algorithm byte

const (
	Zlib Algorithm = 0x00
	// Snappy is decoded for real rather than treated as raw.
	Snappy Algorithm = 0x01
	None   Algorithm = 0xff
)

// batchHeader is the fixed leading byte of every game payload.
const batchHeader = 0xfe

// Compression is the negotiated compression state of a session. Once
// Enabled, a session never disables it again.
type Compression struct {
	Enabled   bool
	Algorithm Algorithm
	Threshold uint32
}

// Encode frames the given packet payloads with varint length prefixes,
// compresses the result if compression is enabled and the concatenated size
// exceeds the threshold, and prepends the 0xFE header.
func Encode(packets [][]byte, c Compression) ([]byte, error) {
	var framed bytes.Buffer
	for _, p := range packets {
		var lenBuf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(lenBuf[:], uint64(len(p)))
		framed.Write(lenBuf[:n])
		framed.Write(p)
	}

	if !c.Enabled {
		return append([]byte{batchHeader}, framed.Bytes()...), nil
	}

	if uint32(framed.Len()) <= c.Threshold {
		return append([]byte{batchHeader, byte(None)}, framed.Bytes()...), nil
	}

	switch c.Algorithm {
	case Snappy:
		compressed := snappy.Encode(nil, framed.Bytes())
		return append([]byte{batchHeader, byte(Snappy)}, compressed...), nil
	default:
		var out bytes.Buffer
		w, err := flate.NewWriter(&out, flate.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("batch: create deflate writer: %w", err)
		}
		if _, err := w.Write(framed.Bytes()); err != nil {
			return nil, fmt.Errorf("batch: deflate write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("batch: deflate close: %w", err)
		}
		return append([]byte{batchHeader, byte(Zlib)}, out.Bytes()...), nil
	}
}

// Decode strips the 0xFE header, inflates the body per the negotiated
// compression state, and splits the result into individual packet payloads
// by varint length framing.
func Decode(data []byte, c Compression) ([][]byte, error) {
	if len(data) == 0 || data[0] != batchHeader {
		return nil, fmt.Errorf("batch: missing 0xFE header")
	}
	body := data[1:]
	if !c.Enabled {
		return splitFramed(body)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("batch: missing compression algorithm byte")
	}
	plain, err := inflate(Algorithm(body[0]), body[1:])
	if err != nil {
		return nil, err
	}
	return splitFramed(plain)
}

func inflate(alg Algorithm, body []byte) ([]byte, error) {
	switch alg {
	case None:
		return body, nil
	case Snappy:
		out, err := snappy.Decode(nil, body)
		if err != nil {
			return nil, fmt.Errorf("batch: snappy decode: %w", err)
		}
		return out, nil
	case Zlib:
		r := flate.NewReader(bytes.NewReader(body))
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("batch: deflate decode: %w", err)
		}
		return out, nil
	default:
		// Unknown compression byte: treat as raw.
		return body, nil
	}
}

func splitFramed(buf []byte) ([][]byte, error) {
	var packets [][]byte
	for len(buf) > 0 {
		length, n := binary.Uvarint(buf)
		if n <= 0 {
			return nil, fmt.Errorf("batch: varint length overflow or truncated")
		}
		buf = buf[n:]
		if uint64(len(buf)) < length {
			return nil, fmt.Errorf("batch: length prefix %v past buffer end (have %v)", length, len(buf))
		}
		packets = append(packets, buf[:length])
		buf = buf[length:]
	}
	return packets, nil
}

// PacketID reads the varint packet ID prefixing a decoded packet payload
// and masks off everything but the low 10 bits, which carry the real packet
// ID; the upper bits carry sub-client sender/target identifiers.
func PacketID(payload []byte) (id uint32, headerLen int, err error) {
	v, n := binary.Uvarint(payload)
	if n <= 0 {
		return 0, 0, fmt.Errorf("batch: packet id varint truncated")
	}
	return uint32(v) & 0x3ff, n, nil
}
