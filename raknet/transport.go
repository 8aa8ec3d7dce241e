package raknet

import (
	"log"
	"net"
)

// Transport owns the UDP endpoint for one session and the single known
// remote peer. It is the only component allowed to touch the socket.
type Transport struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
	log    *log.Logger

	onDatagram func(b []byte)
}

// NewTransport opens an IPv4 UDP socket bound to an ephemeral local port and
// records remote as the only peer datagrams are exchanged with.
func NewTransport(remote *net.UDPAddr, logger *log.Logger) (*Transport, error) {
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, err
	}
	return &Transport{conn: conn, remote: remote, log: logger}, nil
}

// LocalAddr returns the ephemeral address the transport bound to.
func (t *Transport) LocalAddr() net.Addr { return t.conn.LocalAddr() }

// RemoteAddr returns the single peer this transport exchanges datagrams
// with.
func (t *Transport) RemoteAddr() net.Addr { return t.remote }

// Send writes a single raw datagram to the remote peer. Errors are logged,
// never fatal to the session.
func (t *Transport) Send(b []byte) {
	if _, err := t.conn.WriteToUDP(b, t.remote); err != nil {
		t.log.Printf("raknet: send error: %v", err)
	}
}

// OnDatagram registers the callback invoked for every datagram received from
// the remote peer. Datagrams from any other address are silently dropped.
func (t *Transport) OnDatagram(f func(b []byte)) { t.onDatagram = f }

// Loop blocks reading datagrams from the socket until Close is called. It is
// meant to run on its own goroutine; every datagram is handed to the
// registered callback, which must re-enter the session's single logical
// execution context itself.
func (t *Transport) Loop() {
	buf := make([]byte, 65536)
	for {
		n, addr, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if !addr.IP.Equal(t.remote.IP) || addr.Port != t.remote.Port {
			continue
		}
		if t.onDatagram != nil {
			data := append([]byte(nil), buf[:n]...)
			t.onDatagram(data)
		}
	}
}

// Close closes the UDP socket, terminating any in-flight Loop call.
func (t *Transport) Close() error { return t.conn.Close() }
