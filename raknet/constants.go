// Package raknet implements the subset of the RakNet reliability protocol
// (protocol version 11) that a Bedrock Edition client needs: the four-step
// offline handshake, reliable/ordered/sequenced framing, fragmentation and
// ACK/NACK-driven retransmission. It does not implement RakNet's server-side
// session bring-up, LAN discovery or unconnected ping/pong.
package raknet

import "time"

// ProtocolVersion is the RakNet protocol version this client speaks. Bedrock
// servers reject an OpenConnectionRequest1 carrying any other value.
const ProtocolVersion byte = 11

// MTU is the datagram size this client negotiates. No MTU discovery is
// performed; 1492 is the value most Bedrock clients settle on without ever
// probing for a larger one.
const MTU = 1492

// maxChannels is the number of independent order/sequence channels RakNet
// exposes. Bedrock only ever uses channel 0, but the session keeps per-channel
// state for all of them since the wire format allows any of the 32.
const maxChannels = 32

// Magic is the fixed 16-byte RakNet offline message ID prefixed to every
// unconnected handshake message.
var Magic = [16]byte{0x00, 0xff, 0xff, 0x00, 0xfe, 0xfe, 0xfe, 0xfe, 0xfd, 0xfd, 0xfd, 0xfd, 0x12, 0x34, 0x56, 0x78}

// Offline message IDs (unconnected handshake).
const (
	idOpenConnectionRequest1  = 0x05
	idOpenConnectionReply1    = 0x06
	idOpenConnectionRequest2  = 0x07
	idOpenConnectionReply2    = 0x08
	idConnectionRequest       = 0x09
	idConnectionRequestAccept = 0x10
	idNewIncomingConnection   = 0x13
	idConnectedPing           = 0x00
	idConnectedPong           = 0x03
	idDisconnectNotification  = 0x15
	idIncompatibleProtocol    = 0x19
)

// Frame set datagrams are identified by a leading byte with the top bit set
// and the 0x10 ACK/NACK bits clear (those are reserved for the ACK/NACK
// datagram types below).
const (
	bitFlagDatagram = 0x80
	bitFlagACK      = 0x40
	bitFlagNACK     = 0x20
)

// Reliability describes how a frame's payload is delivered. Values match the
// RakNet wire encoding (3 bits of the frame flag byte).
type Reliability byte

const (
	Unreliable Reliability = iota
	UnreliableSequenced
	Reliable
	ReliableOrdered
	ReliableSequenced
)

// reliable reports whether the reliability requires a message index and
// space in the retransmission backup.
func (r Reliability) reliable() bool {
	return r == Reliable || r == ReliableOrdered || r == ReliableSequenced
}

// sequenced reports whether the reliability carries a sequence index that
// reuses the channel's current order index rather than advancing it.
func (r Reliability) sequenced() bool {
	return r == UnreliableSequenced || r == ReliableSequenced
}

// ordered reports whether the reliability advances the channel's order
// index (order-exclusive delivery).
func (r Reliability) ordered() bool {
	return r == ReliableOrdered
}

// Priority controls when the outbound queue flushes a frame to the wire.
type Priority int

const (
	// Normal priority frames wait for the next tick flush or until enough
	// frames have accumulated to fill a frame set.
	Normal Priority = iota
	// Immediate priority frames force an out-of-band flush as soon as they
	// are enqueued.
	Immediate
)

// ackFlushInterval is the cadence at which pending ACK/NACK records are
// flushed to the peer.
const ackFlushInterval = 10 * time.Millisecond

// fragmentThreshold is the largest payload that fits unfragmented in a single
// frame: the MTU minus the worst-case frame set and frame header overhead.
const fragmentThreshold = MTU - 29

// frameSetByteBudget is the largest a frame set's serialized body may grow
// before it must be flushed, leaving room for the datagram header and the
// IP/UDP overhead under the MTU.
const frameSetByteBudget = MTU - 36
