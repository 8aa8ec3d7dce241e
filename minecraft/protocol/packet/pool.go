// Package packet is the in-module packet codec: a registry mapping numeric
// packet IDs to concrete Go types, each able to marshal/unmarshal itself
// against the shared protocol.IO wire format.
package packet

import (
	"fmt"

	"github.com/DKMtomy/clientRewrite/minecraft/protocol"
)

// Packet is implemented by every known game packet type.
type Packet interface {
	ID() uint32
	Marshal(io protocol.IO)
}

// Packet IDs this client sends or handles.
const (
	IDLogin                       = 1
	IDPlayStatus                  = 2
	IDDisconnect                  = 5
	IDResourcePacksInfo           = 6
	IDResourcePackStack           = 7
	IDResourcePackClientResponse  = 8
	IDText                        = 9
	IDStartGame                   = 11
	IDAddPlayer                   = 12
	IDAddActor                    = 13
	IDRemoveActor                 = 14
	IDMovePlayer                  = 19
	IDMoveActorAbsolute           = 33
	IDUpdateAttributes            = 29
	IDSetActorData                = 39
	IDSetActorMotion              = 40
	IDSetPlayerGameType           = 62
	IDRespawn                     = 45
	IDChangeDimension             = 61
	IDPlayerAction                = 36
	IDCommandRequest              = 77
	IDModalFormRequest            = 100
	IDModalFormResponse           = 101
	IDSetLocalPlayerAsInitialized = 113
	IDRequestChunkRadius          = 69
	IDChunkRadiusUpdated          = 70
	IDNetworkStackLatency         = 115
	IDPlayerAuthInput             = 144
	IDNetworkSettings             = 143
	IDRequestNetworkSettings      = 193
)

// Pool maps packet IDs to constructors producing a zero-valued packet of
// that type, ready to be unmarshaled into.
type Pool map[uint32]func() Packet

// NewPool returns a Pool populated with every packet type this client
// understands. IDs absent from the pool fall back to Unknown.
func NewPool() Pool {
	return Pool{
		IDLogin:                       func() Packet { return &Login{} },
		IDPlayStatus:                  func() Packet { return &PlayStatus{} },
		IDDisconnect:                  func() Packet { return &Disconnect{} },
		IDResourcePacksInfo:           func() Packet { return &ResourcePacksInfo{} },
		IDResourcePackStack:           func() Packet { return &ResourcePackStack{} },
		IDResourcePackClientResponse:  func() Packet { return &ResourcePackClientResponse{} },
		IDText:                        func() Packet { return &Text{} },
		IDStartGame:                   func() Packet { return &StartGame{} },
		IDAddPlayer:                   func() Packet { return &AddPlayer{} },
		IDAddActor:                    func() Packet { return &AddActor{} },
		IDRemoveActor:                 func() Packet { return &RemoveActor{} },
		IDMovePlayer:                  func() Packet { return &MovePlayer{} },
		IDMoveActorAbsolute:           func() Packet { return &MoveActorAbsolute{} },
		IDUpdateAttributes:            func() Packet { return &UpdateAttributes{} },
		IDSetActorData:                func() Packet { return &SetActorData{} },
		IDSetActorMotion:              func() Packet { return &SetActorMotion{} },
		IDSetPlayerGameType:           func() Packet { return &SetPlayerGameType{} },
		IDRespawn:                     func() Packet { return &Respawn{} },
		IDChangeDimension:             func() Packet { return &ChangeDimension{} },
		IDPlayerAction:                func() Packet { return &PlayerAction{} },
		IDCommandRequest:              func() Packet { return &CommandRequest{} },
		IDModalFormRequest:            func() Packet { return &ModalFormRequest{} },
		IDModalFormResponse:           func() Packet { return &ModalFormResponse{} },
		IDSetLocalPlayerAsInitialized: func() Packet { return &SetLocalPlayerAsInitialized{} },
		IDRequestChunkRadius:          func() Packet { return &RequestChunkRadius{} },
		IDChunkRadiusUpdated:          func() Packet { return &ChunkRadiusUpdated{} },
		IDNetworkSettings:             func() Packet { return &NetworkSettings{} },
		IDRequestNetworkSettings:      func() Packet { return &RequestNetworkSettings{} },
		IDNetworkStackLatency:         func() Packet { return &NetworkStackLatency{} },
		IDPlayerAuthInput:             func() Packet { return &PlayerAuthInput{} },
	}
}

// names backs the packet-name registry used for event observation and
// name-based waits.
var names = map[uint32]string{
	IDLogin:                       "Login",
	IDPlayStatus:                  "PlayStatus",
	IDDisconnect:                  "Disconnect",
	IDResourcePacksInfo:           "ResourcePacksInfo",
	IDResourcePackStack:           "ResourcePackStack",
	IDResourcePackClientResponse:  "ResourcePackClientResponse",
	IDText:                        "Text",
	IDStartGame:                   "StartGame",
	IDAddPlayer:                   "AddPlayer",
	IDAddActor:                    "AddActor",
	IDRemoveActor:                 "RemoveActor",
	IDMovePlayer:                  "MovePlayer",
	IDMoveActorAbsolute:           "MoveActorAbsolute",
	IDUpdateAttributes:            "UpdateAttributes",
	IDSetActorData:                "SetActorData",
	IDSetActorMotion:              "SetActorMotion",
	IDSetPlayerGameType:           "SetPlayerGameType",
	IDRespawn:                     "Respawn",
	IDChangeDimension:             "ChangeDimension",
	IDPlayerAction:                "PlayerAction",
	IDCommandRequest:              "CommandRequest",
	IDModalFormRequest:            "ModalFormRequest",
	IDModalFormResponse:           "ModalFormResponse",
	IDSetLocalPlayerAsInitialized: "SetLocalPlayerAsInitialized",
	IDRequestChunkRadius:          "RequestChunkRadius",
	IDChunkRadiusUpdated:          "ChunkRadiusUpdated",
	IDNetworkSettings:             "NetworkSettings",
	IDRequestNetworkSettings:      "RequestNetworkSettings",
	IDNetworkStackLatency:         "NetworkStackLatency",
	IDPlayerAuthInput:             "PlayerAuthInput",
}

// Name returns the registered name for a packet ID, or a numeric placeholder
// for IDs outside the registry.
func Name(id uint32) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", id)
}

// IDByName resolves a registered packet name back to its numeric ID,
// supporting the name-based variants of on_packet and wait_for_packet.
func IDByName(name string) (uint32, bool) {
	for id, n := range names {
		if n == name {
			return id, true
		}
	}
	return 0, false
}
