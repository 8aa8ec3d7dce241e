package packet

import "github.com/DKMtomy/clientRewrite/minecraft/protocol"

// Header precedes every game packet payload: a single varuint32 whose low
// 10 bits are the packet ID and whose remaining bits carry the sender and
// target sub-client indices.
type Header struct {
	PacketID      uint32
	SenderSubID   uint8
	TargetSubID   uint8
}

const packetIDMask = 0x3ff

// Write serializes the header onto io.
func (h *Header) Write(io protocol.IO) {
	v := (h.PacketID & packetIDMask) | uint32(h.SenderSubID)<<10 | uint32(h.TargetSubID)<<12
	io.Varuint32(&v)
}

// Read parses the header from io, splitting the combined varuint32 back
// into packet ID and sub-client indices.
func (h *Header) Read(io protocol.IO) {
	var v uint32
	io.Varuint32(&v)
	h.PacketID = v & packetIDMask
	h.SenderSubID = uint8((v >> 10) & 0x3)
	h.TargetSubID = uint8((v >> 12) & 0x3)
}
