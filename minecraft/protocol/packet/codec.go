package packet

import (
	"fmt"

	"github.com/DKMtomy/clientRewrite/batch"
	"github.com/DKMtomy/clientRewrite/minecraft/protocol"
)

// Encoder turns a list of packets into one 0xFE-prefixed batch payload via
// batch.Encode, and its Decode method reverses it, resolving each
// sub-packet's header against a Pool.
type Encoder struct {
	Pool        Pool
	Compression batch.Compression
}

// NewEncoder returns an Encoder using pool for packet identification and c
// for the batch's compression behaviour.
func NewEncoder(pool Pool, c batch.Compression) *Encoder {
	return &Encoder{Pool: pool, Compression: c}
}

// Encode serializes pks into a single 0xFE-prefixed batch payload.
func (e *Encoder) Encode(pks []Packet) ([]byte, error) {
	frames := make([][]byte, 0, len(pks))
	for _, pk := range pks {
		w := protocol.NewWriter()
		h := &Header{PacketID: pk.ID()}
		h.Write(w)
		pk.Marshal(w)
		frames = append(frames, w.Bytes())
	}
	return batch.Encode(frames, e.Compression)
}

// Decode splits and decompresses a 0xFE-prefixed batch payload, resolving
// each sub-packet against the pool. Sub-packets with no registered type
// become *Unknown rather than failing the whole batch.
func (e *Encoder) Decode(payload []byte) ([]Packet, error) {
	frames, err := batch.Decode(payload, e.Compression)
	if err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	pks := make([]Packet, 0, len(frames))
	for _, frame := range frames {
		r := protocol.NewReader(frame)
		h := &Header{}
		h.Read(r)
		if err := r.Error(); err != nil {
			return nil, fmt.Errorf("read packet header: %w", err)
		}
		ctor, ok := e.Pool[h.PacketID]
		var pk Packet
		if !ok {
			pk = &Unknown{PacketID: h.PacketID}
		} else {
			pk = ctor()
		}
		pk.Marshal(r)
		if err := r.Error(); err != nil {
			// A sub-packet that fails its typed unmarshal is demoted to an
			// Unknown carrying the raw body rather than failing the whole
			// batch; the rest of the batch still dispatches.
			raw := &Unknown{PacketID: h.PacketID}
			rr := protocol.NewReader(frame)
			(&Header{}).Read(rr)
			raw.Marshal(rr)
			pk = raw
		}
		pks = append(pks, pk)
	}
	return pks, nil
}
