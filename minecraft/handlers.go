package minecraft

import (
	"encoding/json"
	"fmt"

	"github.com/DKMtomy/clientRewrite/batch"
	"github.com/DKMtomy/clientRewrite/minecraft/protocol/packet"
	"github.com/DKMtomy/clientRewrite/world"
)

// buildHandlers wires the packet router: a mapping from packet ID to
// handler. Handlers update the world mirror and emit typed events; none of
// them are called outside the session's single logical execution context.
func (s *Session) buildHandlers() map[uint32]packetHandler {
	return map[uint32]packetHandler{
		packet.IDNetworkSettings:     (*Session).handleNetworkSettings,
		packet.IDResourcePacksInfo:   (*Session).handleResourcePacksInfo,
		packet.IDResourcePackStack:   (*Session).handleResourcePackStack,
		packet.IDPlayStatus:          (*Session).handlePlayStatus,
		packet.IDStartGame:           (*Session).handleStartGame,
		packet.IDRespawn:             (*Session).handleRespawn,
		packet.IDChangeDimension:     (*Session).handleChangeDimension,
		packet.IDNetworkStackLatency: (*Session).handleNetworkStackLatency,
		packet.IDDisconnect:          (*Session).handleDisconnect,
		packet.IDText:                (*Session).handleText,
		packet.IDMovePlayer:          (*Session).handleMovePlayer,
		packet.IDSetPlayerGameType:   (*Session).handleSetPlayerGameType,
		packet.IDAddPlayer:           (*Session).handleAddPlayer,
		packet.IDAddActor:            (*Session).handleAddActor,
		packet.IDRemoveActor:         (*Session).handleRemoveActor,
		packet.IDMoveActorAbsolute:   (*Session).handleMoveActorAbsolute,
		packet.IDSetActorMotion:      (*Session).handleSetActorMotion,
		packet.IDSetActorData:        (*Session).handleSetActorData,
		packet.IDUpdateAttributes:    (*Session).handleUpdateAttributes,
	}
}

// loginRequest is the JSON shape this client's Login packet carries: the
// identity chain followed by the raw user chain token.
type loginRequest struct {
	Chain    []string `json:"chain"`
	RawToken string   `json:"rawToken"`
}

func (s *Session) handleNetworkSettings(pk packet.Packet) error {
	ns := pk.(*packet.NetworkSettings)
	s.compression = batch.Compression{
		Enabled:   true,
		Algorithm: batch.Algorithm(ns.CompressionAlgorithm),
		Threshold: uint32(ns.CompressionThreshold),
	}
	s.codec = packet.NewEncoder(s.codec.Pool, s.compression)

	chain := append(append([]string(nil), s.identity.ExternalChainTokens...), s.identity.IdentityChainToken)
	req := loginRequest{Chain: chain, RawToken: s.identity.UserChainToken}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal login request: %w", err)
	}
	s.send(&packet.Login{ClientProtocol: s.cfg.ProtocolVersion, ConnectionRequest: string(body)})
	s.events.emit(EventLogin, nil)
	return nil
}

func (s *Session) handleResourcePacksInfo(pk packet.Packet) error {
	s.send(&packet.ResourcePackClientResponse{Response: packet.PackResponseHaveAllPacks})
	return nil
}

func (s *Session) handleResourcePackStack(pk packet.Packet) error {
	s.send(&packet.ResourcePackClientResponse{Response: packet.PackResponseCompleted})
	return nil
}

func (s *Session) handlePlayStatus(pk packet.Packet) error {
	ps := pk.(*packet.PlayStatus)
	switch ps.Status {
	case packet.PlayStatusLoginSuccess:
		if p := s.phase.Load(); p == Connecting || p == RaknetEstablished {
			s.phase.Store(LoggingIn)
		}
	case packet.PlayStatusPlayerSpawn:
		s.phase.Store(Spawned)
		s.events.emit(EventSpawn, nil)
	case packet.PlayStatusLoginFailedClient, packet.PlayStatusLoginFailedServer,
		packet.PlayStatusLoginFailedVanillaEdu, packet.PlayStatusLoginFailedEduVanilla,
		packet.PlayStatusLoginFailedServerFull:
		s.events.emit(EventError, fmt.Errorf("minecraft: login failed, status %d", ps.Status))
		s.teardown()
	}
	return nil
}

func (s *Session) handleStartGame(pk packet.Packet) error {
	sg := pk.(*packet.StartGame)
	s.player.ApplyStartGame(sg.EntityID, sg.RuntimeEntityID, sg.SpawnPosition, sg.WorldName, sg.WorldSeed, sg.Difficulty, sg.PlayerGameMode, sg.WorldGameMode)
	s.player.Dimension = sg.Dimension
	s.player.SetTransform(sg.PlayerPosition, sg.Pitch, sg.Yaw, sg.Yaw)
	s.phase.Store(Spawning)
	s.events.emit(EventStartGame, nil)
	s.send(&packet.RequestChunkRadius{ChunkRadius: s.cfg.ViewDistance})
	return nil
}

func (s *Session) handleRespawn(pk packet.Packet) error {
	rs := pk.(*packet.Respawn)
	if rs.State != packet.RespawnStateServerReadyToSpawn {
		return nil
	}
	s.player.SetTransform(rs.Position, s.player.Pitch, s.player.Yaw, s.player.HeadYaw)
	s.send(&packet.Respawn{
		Position:        rs.Position,
		State:           packet.RespawnStateClientReadyToSpawn,
		RuntimeEntityID: rs.RuntimeEntityID,
	})
	return nil
}

func (s *Session) handleChangeDimension(pk packet.Packet) error {
	cd := pk.(*packet.ChangeDimension)
	s.awaitingDimensionAck = true
	s.player.Dimension = cd.Dimension
	s.player.SetTransform(cd.Position, s.player.Pitch, s.player.Yaw, s.player.HeadYaw)
	s.send(&packet.PlayerAction{
		RuntimeEntityID: s.player.RuntimeEntityID,
		Action:          0, // DimensionChangeAck
		Position:        [3]int32{0, 0, 0},
		Face:            0,
	})
	s.awaitingDimensionAck = false
	return nil
}

func (s *Session) handleNetworkStackLatency(pk packet.Packet) error {
	nsl := pk.(*packet.NetworkStackLatency)
	if !nsl.NeedsResponse {
		return nil
	}
	s.send(&packet.NetworkStackLatency{Timestamp: nsl.Timestamp, NeedsResponse: false})
	return nil
}

func (s *Session) handleDisconnect(pk packet.Packet) error {
	d := pk.(*packet.Disconnect)
	s.events.emit(EventKick, KickEvent{Reason: d.Message})
	s.teardown()
	return nil
}

func (s *Session) handleText(pk packet.Packet) error {
	t := pk.(*packet.Text)
	s.events.emit(EventText, TextEvent{SourceName: t.SourceName, Message: t.Message})
	return nil
}

func (s *Session) handleMovePlayer(pk packet.Packet) error {
	mp := pk.(*packet.MovePlayer)
	if mp.RuntimeEntityID == s.player.RuntimeEntityID {
		s.player.SetTransform(mp.Position, mp.Pitch, mp.Yaw, mp.HeadYaw)
		return nil
	}
	s.entities.UpdateTransform(mp.RuntimeEntityID, mp.Position, mp.Pitch, mp.Yaw, mp.HeadYaw)
	return nil
}

func (s *Session) handleSetPlayerGameType(pk packet.Packet) error {
	gt := pk.(*packet.SetPlayerGameType)
	s.player.GameMode = gt.GameType
	return nil
}

func (s *Session) handleAddPlayer(pk packet.Packet) error {
	ap := pk.(*packet.AddPlayer)
	e := s.entities.AddPlayer(ap.RuntimeEntityID, ap.UniqueEntityID, ap.Username, ap.UUID, ap.Position)
	e.Motion = ap.Velocity
	e.Pitch, e.Yaw, e.HeadYaw = ap.Pitch, ap.Yaw, ap.HeadYaw
	return nil
}

func (s *Session) handleAddActor(pk packet.Packet) error {
	aa := pk.(*packet.AddActor)
	e := s.entities.AddEntity(aa.RuntimeEntityID, aa.UniqueEntityID, aa.EntityType, aa.Position)
	e.Motion = aa.Velocity
	e.Pitch, e.Yaw, e.HeadYaw = aa.Pitch, aa.Yaw, aa.HeadYaw
	return nil
}

func (s *Session) handleRemoveActor(pk packet.Packet) error {
	ra := pk.(*packet.RemoveActor)
	s.entities.RemoveByUniqueID(ra.UniqueEntityID)
	return nil
}

func (s *Session) handleMoveActorAbsolute(pk packet.Packet) error {
	m := pk.(*packet.MoveActorAbsolute)
	s.entities.UpdateTransform(m.RuntimeEntityID, m.Position, m.Pitch, m.Yaw, m.HeadYaw)
	return nil
}

func (s *Session) handleSetActorMotion(pk packet.Packet) error {
	m := pk.(*packet.SetActorMotion)
	s.entities.UpdateMotion(m.RuntimeEntityID, m.Velocity)
	return nil
}

func (s *Session) handleSetActorData(pk packet.Packet) error {
	sd := pk.(*packet.SetActorData)
	s.entities.SetRawMetadata(sd.RuntimeEntityID, sd.Metadata)
	return nil
}

func (s *Session) handleUpdateAttributes(pk packet.Packet) error {
	ua := pk.(*packet.UpdateAttributes)
	if ua.RuntimeEntityID != s.player.RuntimeEntityID {
		return nil
	}
	attrs := make([]world.Attribute, len(ua.Attributes))
	for i, a := range ua.Attributes {
		attrs[i] = world.Attribute{Name: a.Name, Value: a.Value, Default: a.Default, Min: a.Min, Max: a.Max}
	}
	s.player.Attributes.Update(attrs)
	return nil
}
