package minecraft

import (
	"fmt"
	"strings"
	"time"

	"github.com/DKMtomy/clientRewrite/minecraft/protocol/packet"
)

// errNotSpawned is returned by API calls restricted to the Spawned phase.
var errNotSpawned = fmt.Errorf("minecraft: call is only valid once spawned")

// call runs fn inside the session's single logical execution context and
// waits for it to finish, serializing every public API entrypoint. If the
// session has already torn down, fn is dropped rather than blocking forever.
func (s *Session) call(fn func()) {
	done := make(chan struct{})
	select {
	case s.apiCalls <- func() {
		fn()
		close(done)
	}:
	case <-s.done:
		return
	}
	select {
	case <-done:
	case <-s.done:
	}
}

// Chat sends a Text chat message as the local player.
func (s *Session) Chat(message string) error {
	if s.phase.Load() != Spawned {
		s.log.Printf("minecraft: chat() called before spawned, ignored")
		return errNotSpawned
	}
	s.call(func() {
		s.send(&packet.Text{
			TextType:   1,
			SourceName: s.identity.Profile.Name,
			Message:    message,
			XUID:       s.identity.Profile.XUID,
		})
	})
	return nil
}

// SendCommand sends a slash command as the local player.
func (s *Session) SendCommand(command string) error {
	if s.phase.Load() != Spawned {
		s.log.Printf("minecraft: send_command() called before spawned, ignored")
		return errNotSpawned
	}
	if !strings.HasPrefix(command, "/") {
		command = "/" + command
	}
	s.call(func() {
		s.send(&packet.CommandRequest{CommandLine: command, Internal: false})
	})
	return nil
}

// RespondToForm answers a ModalFormRequest. A nil data means the form was
// canceled.
func (s *Session) RespondToForm(formID uint32, data *string) error {
	if s.phase.Load() != Spawned {
		s.log.Printf("minecraft: respond_to_form() called before spawned, ignored")
		return errNotSpawned
	}
	resp := &packet.ModalFormResponse{FormID: formID}
	if data == nil {
		resp.CancelReason = 1
	} else {
		resp.ResponseData = *data
	}
	s.call(func() { s.send(resp) })
	return nil
}

// SetInitialized tells the server the client has finished its own spawn
// sequence. Callable any time after StartGame.
func (s *Session) SetInitialized() {
	s.call(func() {
		s.send(&packet.SetLocalPlayerAsInitialized{RuntimeEntityID: s.player.RuntimeEntityID})
	})
}

// Disconnect tears the session down, best-effort notifying the server first
// unless notifyServer is false.
func (s *Session) Disconnect(reason string, notifyServer bool) {
	s.call(func() {
		if notifyServer && s.handshake != nil {
			s.handshake.Disconnect()
		}
		s.events.emit(EventDisconnect, reason)
		s.teardown()
	})
}

// On subscribes cb to one of the named session events (EventSpawn,
// EventKick, EventText and so on). The payload is the event's value:
// KickEvent for EventKick, TextEvent for EventText, PacketEvent for
// EventPacket, error for EventError, the tick count (uint64) for EventTick,
// the reason string for EventDisconnect, the attempt number (int) for
// EventReconnect, nil for the remaining marker events. It returns an
// unregister function.
func (s *Session) On(event string, cb func(payload any)) (unregister func()) {
	var unreg func()
	s.call(func() { unreg = s.events.on(event, cb) })
	return unreg
}

// OnPacket registers cb to be invoked for every decoded packet whose ID
// matches id. It returns an unregister function.
func (s *Session) OnPacket(id uint32, cb func(packet.Packet)) (unregister func()) {
	var unreg func()
	s.call(func() {
		unreg = s.events.on(EventPacket, func(v any) {
			ev := v.(PacketEvent)
			if ev.ID == id {
				cb(ev.Packet)
			}
		})
	})
	return unreg
}

// OnPacketNamed is the name-keyed variant of OnPacket, resolving name
// through the packet-name registry. Unknown names register nothing and
// return a no-op unregister function.
func (s *Session) OnPacketNamed(name string, cb func(packet.Packet)) (unregister func()) {
	id, ok := packet.IDByName(name)
	if !ok {
		s.log.Printf("minecraft: on_packet: unknown packet name %q", name)
		return func() {}
	}
	return s.OnPacket(id, cb)
}

// WaitForPacketNamed is the name-keyed variant of WaitForPacket.
func (s *Session) WaitForPacketNamed(name string, timeout time.Duration) (packet.Packet, error) {
	id, ok := packet.IDByName(name)
	if !ok {
		return nil, fmt.Errorf("minecraft: unknown packet name %q", name)
	}
	return s.WaitForPacket(id, timeout)
}

// WaitForPacket blocks until a packet with the given ID arrives or timeout
// elapses. A zero timeout waits forever.
func (s *Session) WaitForPacket(id uint32, timeout time.Duration) (packet.Packet, error) {
	ch := make(chan packet.Packet, 1)
	s.call(func() {
		s.waits = append(s.waits, pendingWait{id: id, ch: ch})
	})

	if timeout <= 0 {
		select {
		case pk := <-ch:
			return pk, nil
		case <-s.done:
			return nil, fmt.Errorf("minecraft: session closed while waiting for packet %d", id)
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case pk := <-ch:
		return pk, nil
	case <-timer.C:
		return nil, fmt.Errorf("minecraft: timed out waiting for packet %d", id)
	case <-s.done:
		return nil, fmt.Errorf("minecraft: session closed while waiting for packet %d", id)
	}
}
