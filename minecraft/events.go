package minecraft

import "github.com/DKMtomy/clientRewrite/minecraft/protocol/packet"

// PacketEvent carries a decoded packet for generic observation, alongside
// its numeric ID and registry name.
type PacketEvent struct {
	ID     uint32
	Name   string
	Packet packet.Packet
}

// TextEvent carries an inbound chat/system message.
type TextEvent struct {
	SourceName string
	Message    string
}

// KickEvent carries the server's stated disconnect reason.
type KickEvent struct {
	Reason string
}

// eventBus is a typed, list-of-callbacks-per-name publish interface. All
// emit/on calls happen from the session's single logical execution context,
// so no locking is required.
type eventBus struct {
	handlers map[string][]func(any)
}

func newEventBus() *eventBus {
	return &eventBus{handlers: make(map[string][]func(any))}
}

// on registers cb under name and returns a function that unregisters it.
func (b *eventBus) on(name string, cb func(any)) func() {
	b.handlers[name] = append(b.handlers[name], cb)
	idx := len(b.handlers[name]) - 1
	return func() {
		handlers := b.handlers[name]
		if idx < len(handlers) {
			handlers[idx] = nil
		}
	}
}

func (b *eventBus) emit(name string, payload any) {
	for _, cb := range b.handlers[name] {
		if cb != nil {
			cb(payload)
		}
	}
}

// Event names.
const (
	EventRaknetConnect = "raknet_connect"
	EventLogin         = "login"
	EventStartGame     = "start_game"
	EventSpawn         = "spawn"
	EventTick          = "tick"
	EventPacket        = "packet"
	EventText          = "text"
	EventKick          = "kick"
	EventDisconnect    = "disconnect"
	EventReconnect     = "reconnect"
	EventError         = "error"
)
