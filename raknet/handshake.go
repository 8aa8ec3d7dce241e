package raknet

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

// handshake states, in the fixed order the four-message exchange
// moves through.
const (
	stateIdle = iota
	stateRequest1Sent
	stateRequest2Sent
	stateConnectionRequestSent
	stateEstablished
)

// Handshake drives the RakNet offline handshake: the four-message exchange
// that brings a raw UDP socket into a reliable session, plus the
// ConnectedPing/Pong keep-alive and server-initiated disconnect.
type Handshake struct {
	send  func([]byte)
	queue *Queue

	guid   uint64
	mtu    uint16
	remote *net.UDPAddr
	local  net.Addr

	state            int
	serverGUID       uint64
	lastServerStamp  int64

	// OnEstablished fires exactly once, when NewIncomingConnection has been
	// sent in response to ConnectionRequestAccepted.
	OnEstablished func()
	// OnDisconnect fires when the server sends a disconnect notification.
	OnDisconnect func()
}

// NewHandshake creates a handshake driver. send transmits a raw (non-framed)
// datagram; queue is used for the two messages the protocol requires to be
// sent reliable-ordered (ConnectionRequest, NewIncomingConnection).
func NewHandshake(send func([]byte), queue *Queue, remote *net.UDPAddr, local net.Addr) *Handshake {
	var g [8]byte
	_, _ = rand.Read(g[:])
	return &Handshake{
		send:   send,
		queue:  queue,
		guid:   binary.BigEndian.Uint64(g[:]),
		mtu:    MTU,
		remote: remote,
		local:  local,
	}
}

// Start sends OpenConnectionRequest1, beginning the handshake.
func (h *Handshake) Start() {
	buf := []byte{idOpenConnectionRequest1}
	buf = append(buf, Magic[:]...)
	buf = append(buf, ProtocolVersion)
	buf = append(buf, make([]byte, int(h.mtu)-len(buf)-1)...) // pad to MTU, minus the checksum-ish trailing byte convention
	h.send(buf)
	h.state = stateRequest1Sent
}

// HandleDatagram processes one raw RakNet datagram that is not a frame set
// or ACK/NACK (those are routed to the Queue/Reassembler directly by the
// caller). It returns an error only for malformed messages; unexpected
// messages for the current state are ignored.
func (h *Handshake) HandleDatagram(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("raknet: empty datagram")
	}
	switch b[0] {
	case idOpenConnectionReply1:
		return h.handleReply1(b)
	case idOpenConnectionReply2:
		return h.handleReply2(b)
	case idConnectionRequestAccept:
		return h.handleRequestAccepted(b)
	case idConnectedPing:
		return h.handleConnectedPing(b)
	case idDisconnectNotification:
		if h.OnDisconnect != nil {
			h.OnDisconnect()
		}
		return nil
	default:
		return nil
	}
}

func (h *Handshake) handleReply1(b []byte) error {
	if h.state != stateRequest1Sent {
		return nil
	}
	if len(b) < 1+16+8+1+2 {
		return fmt.Errorf("raknet: OpenConnectionReply1 truncated")
	}
	off := 1 + 16
	h.serverGUID = binary.BigEndian.Uint64(b[off : off+8])

	buf := []byte{idOpenConnectionRequest2}
	buf = append(buf, Magic[:]...)
	buf = appendAddress(buf, h.remote)
	buf = appendUint16BE(buf, h.mtu)
	buf = binary.BigEndian.AppendUint64(buf, h.guid)
	h.send(buf)
	h.state = stateRequest2Sent
	return nil
}

func (h *Handshake) handleReply2(b []byte) error {
	if h.state != stateRequest2Sent {
		return nil
	}
	now := nowMillis()
	buf := []byte{idConnectionRequest}
	buf = binary.BigEndian.AppendUint64(buf, h.guid)
	buf = binary.BigEndian.AppendUint64(buf, uint64(now))
	buf = append(buf, 0) // not using RakNet security
	h.queue.Send(buf, ReliableOrdered, 0, Immediate)
	h.state = stateConnectionRequestSent
	return nil
}

func (h *Handshake) handleRequestAccepted(b []byte) error {
	if h.state != stateConnectionRequestSent {
		return nil
	}
	if len(b) < 1+7+2+8 {
		return fmt.Errorf("raknet: ConnectionRequestAccepted truncated")
	}
	// Layout: id, client address, system index, 0..9 system addresses, request timestamp, timestamp.
	requestTimestamp := int64(binary.BigEndian.Uint64(b[len(b)-16 : len(b)-8]))
	serverTimestamp := int64(binary.BigEndian.Uint64(b[len(b)-8:]))
	h.lastServerStamp = serverTimestamp

	now := nowMillis()
	buf := []byte{idNewIncomingConnection}
	buf = appendAddress(buf, h.remote)
	buf = appendAddress(buf, h.local)
	buf = binary.BigEndian.AppendUint64(buf, uint64(requestTimestamp))
	buf = binary.BigEndian.AppendUint64(buf, uint64(now))
	h.queue.Send(buf, ReliableOrdered, 0, Immediate)

	h.state = stateEstablished
	if h.OnEstablished != nil {
		h.OnEstablished()
	}
	return nil
}

func (h *Handshake) handleConnectedPing(b []byte) error {
	if len(b) < 9 {
		return fmt.Errorf("raknet: ConnectedPing truncated")
	}
	echo := b[1:9]
	buf := []byte{idConnectedPong}
	buf = append(buf, echo...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(nowMillis()))
	h.queue.Send(buf, Unreliable, 0, Immediate)
	return nil
}

// Disconnect sends the raw RakNet disconnect notification, best-effort.
func (h *Handshake) Disconnect() {
	h.send([]byte{idDisconnectNotification})
}

// GUID returns the random client GUID chosen at construction.
func (h *Handshake) GUID() uint64 { return h.guid }

// Established reports whether the handshake has completed.
func (h *Handshake) Established() bool { return h.state == stateEstablished }

func nowMillis() int64 { return time.Now().UnixMilli() }

func appendAddress(buf []byte, addr net.Addr) []byte {
	host, port := splitAddr(addr)
	buf = append(buf, 4) // IPv4
	ip4 := host.To4()
	if ip4 == nil {
		ip4 = net.IPv4zero.To4()
	}
	// RakNet stores each address octet complemented.
	for _, b := range ip4 {
		buf = append(buf, ^b)
	}
	return appendUint16BE(buf, uint16(port))
}

func splitAddr(addr net.Addr) (net.IP, int) {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP, a.Port
	default:
		return net.IPv4zero, 0
	}
}
