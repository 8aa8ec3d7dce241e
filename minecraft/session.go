// Package minecraft implements the client-side session controller: the
// state machine taking a raw UDP socket from connect() through the RakNet
// handshake, compression negotiation, login and resource pack exchange,
// into a spawned gameplay session that keeps itself alive with a cadenced
// input packet.
package minecraft

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/df-mc/atomic"

	"github.com/DKMtomy/clientRewrite/batch"
	"github.com/DKMtomy/clientRewrite/identity"
	"github.com/DKMtomy/clientRewrite/minecraft/protocol/packet"
	"github.com/DKMtomy/clientRewrite/raknet"
	"github.com/DKMtomy/clientRewrite/world"
)

// Phase is the session's position in the connect-to-spawned state machine.
type Phase int

const (
	Disconnected Phase = iota
	Connecting
	RaknetEstablished
	LoggingIn
	Spawning
	Spawned
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case RaknetEstablished:
		return "RaknetEstablished"
	case LoggingIn:
		return "LoggingIn"
	case Spawning:
		return "Spawning"
	case Spawned:
		return "Spawned"
	default:
		return "Unknown"
	}
}

type packetHandler func(s *Session, pk packet.Packet) error

type pendingWait struct {
	id uint32
	ch chan packet.Packet
}

// Session is a single client connection to a Bedrock server. All state
// mutation happens inside run, its single logical execution context;
// every other method communicates with run over a channel rather than
// touching session fields directly.
type Session struct {
	cfg Config
	log *log.Logger

	// phase is atomic because the public API methods read it from the
	// caller's goroutine while run's goroutine advances it.
	phase *atomic.Value[Phase]

	transport   *raknet.Transport
	handshake   *raknet.Handshake
	queue       *raknet.Queue
	reassembler *raknet.Reassembler
	codec       *packet.Encoder

	identity *identity.Identity
	player   *world.PlayerState
	entities *world.EntityTracker
	events   *eventBus
	handlers map[uint32]packetHandler

	compression          batch.Compression
	awaitingDimensionAck bool
	tickCount            uint64

	datagrams chan []byte
	apiCalls  chan func()
	done      chan struct{}

	waits []pendingWait
}

// NewSession constructs a Session in the Disconnected phase. Call Connect to
// start it.
func NewSession(cfg Config, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(os.Stderr, "minecraft: ", log.LstdFlags)
	}
	s := &Session{
		cfg:       cfg.withDefaults(),
		log:       logger,
		phase:     atomic.NewValue(Disconnected),
		player:    world.NewPlayerState(),
		entities:  world.NewEntityTracker(),
		events:    newEventBus(),
		datagrams: make(chan []byte, 64),
		apiCalls:  make(chan func(), 16),
		done:      make(chan struct{}),
	}
	s.handlers = s.buildHandlers()
	return s
}

// Connect assembles an identity, opens the UDP transport, and begins the
// RakNet handshake. It blocks
// until the session reaches Spawned or a terminal error occurs.
func (s *Session) Connect() error {
	ident, err := identity.Assemble(identity.Options{
		Username:      s.cfg.Username,
		Offline:       s.cfg.Offline,
		Provider:      s.cfg.Provider,
		Host:          s.cfg.Host,
		Port:          int(s.cfg.Port),
		GameVersion:   s.cfg.GameVersion,
		DeviceOS:      int(s.cfg.DeviceOS),
		LanguageCode:  s.cfg.LanguageCode,
		SkinOverrides: s.cfg.SkinData,
	})
	if err != nil {
		return fmt.Errorf("minecraft: identity assembly: %w", err)
	}
	s.identity = ident

	remote := &net.UDPAddr{IP: net.ParseIP(s.cfg.Host), Port: int(s.cfg.Port)}
	if remote.IP == nil {
		ips, err := net.LookupIP(s.cfg.Host)
		if err != nil || len(ips) == 0 {
			return fmt.Errorf("minecraft: resolve host %q: %w", s.cfg.Host, err)
		}
		remote.IP = ips[0]
	}

	transport, err := raknet.NewTransport(remote, s.log)
	if err != nil {
		return fmt.Errorf("minecraft: open transport: %w", err)
	}
	s.transport = transport
	s.queue = raknet.NewQueue(transport.Send)
	s.reassembler = raknet.NewReassembler(s.onPayload)
	s.handshake = raknet.NewHandshake(transport.Send, s.queue, remote, transport.LocalAddr())
	s.codec = packet.NewEncoder(packet.NewPool(), batch.Compression{})

	connected := make(chan error, 1)
	s.handshake.OnEstablished = func() {
		s.phase.Store(RaknetEstablished)
		s.events.emit(EventRaknetConnect, nil)
		s.sendRaw(&packet.RequestNetworkSettings{ClientProtocol: s.cfg.ProtocolVersion})
	}
	s.handshake.OnDisconnect = func() {
		s.events.emit(EventKick, KickEvent{Reason: "raknet disconnect notification"})
		s.teardown()
	}

	s.phase.Store(Connecting)
	transport.OnDatagram(func(b []byte) { s.datagrams <- b })
	go transport.Loop()
	go s.run(connected)
	s.handshake.Start()

	return <-connected
}

// run is the session's single logical execution context: every datagram,
// timer tick, and API call is processed here, one at a time.
func (s *Session) run(connected chan error) {
	tick := time.NewTicker(50 * time.Millisecond)
	ack := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	defer ack.Stop()

	notified := false
	notify := func(err error) {
		if !notified {
			notified = true
			connected <- err
		}
	}

	for {
		select {
		case b := <-s.datagrams:
			if err := s.handleDatagram(b); err != nil {
				s.log.Printf("minecraft: datagram error: %v", err)
			}
			if s.phase.Load() == Spawned {
				notify(nil)
			}
		case <-tick.C:
			s.onTick()
		case <-ack.C:
			s.flushACKNACK()
		case fn := <-s.apiCalls:
			fn()
		case <-s.done:
			notify(fmt.Errorf("minecraft: session closed before spawning"))
			return
		}
	}
}

func (s *Session) handleDatagram(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty datagram")
	}
	switch {
	case raknet.IsACK(b[0]):
		seqs, err := raknet.DecodeACK(b)
		if err != nil {
			return err
		}
		for _, seq := range seqs {
			s.queue.OnACK(seq)
		}
	case raknet.IsNACK(b[0]):
		seqs, err := raknet.DecodeNACK(b)
		if err != nil {
			return err
		}
		for _, seq := range seqs {
			s.queue.OnNACK(seq)
		}
	case raknet.IsFrameSet(b[0]):
		fs, err := raknet.ReadFrameSet(b)
		if err != nil {
			return err
		}
		s.reassembler.HandleFrameSet(fs)
	default:
		return s.handshake.HandleDatagram(b)
	}
	return nil
}

// onPayload receives one reassembled, in-order payload from the
// reassembler. Game batches open with 0xFE; anything else is a connected
// RakNet message (ConnectionRequestAccepted, ConnectedPing, the disconnect
// notification) that travels reliably inside frame sets and belongs to the
// handshake driver.
func (s *Session) onPayload(payload []byte) {
	if len(payload) == 0 {
		return
	}
	if payload[0] != 0xfe {
		if err := s.handshake.HandleDatagram(payload); err != nil {
			s.log.Printf("minecraft: connected message error: %v", err)
		}
		return
	}
	pks, err := s.codec.Decode(payload)
	if err != nil {
		s.log.Printf("minecraft: batch decode error: %v", err)
		return
	}
	for _, pk := range pks {
		s.dispatch(pk)
	}
}

func (s *Session) dispatch(pk packet.Packet) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Printf("minecraft: packet handler panic for id %d: %v", pk.ID(), r)
		}
	}()

	s.events.emit(EventPacket, PacketEvent{ID: pk.ID(), Name: packet.Name(pk.ID()), Packet: pk})
	s.resolveWaits(pk)

	h, ok := s.handlers[pk.ID()]
	if !ok {
		return
	}
	if err := h(s, pk); err != nil {
		s.log.Printf("minecraft: handler error for id %d: %v", pk.ID(), err)
	}
}

func (s *Session) resolveWaits(pk packet.Packet) {
	remaining := s.waits[:0]
	for _, w := range s.waits {
		if w.id == pk.ID() {
			w.ch <- pk
			continue
		}
		remaining = append(remaining, w)
	}
	s.waits = remaining
}

func (s *Session) onTick() {
	s.tickCount++
	s.queue.Flush()
	s.events.emit(EventTick, s.tickCount)

	if s.phase.Load() != Spawned || s.awaitingDimensionAck {
		return
	}
	s.send(&packet.PlayerAuthInput{
		Pitch:      s.player.Pitch,
		Yaw:        s.player.Yaw,
		HeadYaw:    s.player.HeadYaw,
		Position:   s.player.Position,
		MoveVector: [2]float32{0, 0},
		InputData:  0,
		InputMode:  1,
		PlayMode:   0,
		Tick:       s.tickCount,
	})
}

func (s *Session) flushACKNACK() {
	ack, nack := s.reassembler.FlushACKNACK()
	if len(ack) > 0 {
		s.transport.Send(raknet.EncodeACK(ack))
	}
	if len(nack) > 0 {
		s.transport.Send(raknet.EncodeNACK(nack))
	}
}

// sendRaw sends a single packet uncompressed, regardless of negotiated
// compression state. Used only for RequestNetworkSettings, the one game
// packet that must precede compression negotiation.
func (s *Session) sendRaw(pk packet.Packet) {
	enc := packet.NewEncoder(s.codec.Pool, batch.Compression{})
	body, err := enc.Encode([]packet.Packet{pk})
	if err != nil {
		s.log.Printf("minecraft: encode raw packet %d: %v", pk.ID(), err)
		return
	}
	s.queue.Send(body, raknet.ReliableOrdered, 0, raknet.Immediate)
}

// send encodes and enqueues a packet using the session's current
// compression state.
func (s *Session) send(pk packet.Packet) {
	body, err := s.codec.Encode([]packet.Packet{pk})
	if err != nil {
		s.log.Printf("minecraft: encode packet %d: %v", pk.ID(), err)
		return
	}
	s.queue.Send(body, raknet.ReliableOrdered, 0, raknet.Immediate)
}

func (s *Session) teardown() {
	s.phase.Store(Disconnected)
	if s.transport != nil {
		_ = s.transport.Close()
	}
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Phase returns the session's current phase. Safe to call from any
// goroutine.
func (s *Session) Phase() Phase { return s.phase.Load() }
