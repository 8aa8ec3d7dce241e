package packet

import (
	"github.com/DKMtomy/clientRewrite/minecraft/protocol"
	"github.com/google/uuid"
)

// PlayStatus status values.
const (
	PlayStatusLoginSuccess = iota
	PlayStatusLoginFailedClient
	PlayStatusLoginFailedServer
	PlayStatusPlayerSpawn
	PlayStatusLoginFailedInvalidTenant
	PlayStatusLoginFailedVanillaEdu
	PlayStatusLoginFailedEduVanilla
	PlayStatusLoginFailedServerFull
)

// ResourcePackClientResponse response values.
const (
	PackResponseRefused = iota + 1
	PackResponseSendPacks
	PackResponseHaveAllPacks
	PackResponseCompleted
)

// Respawn state values.
const (
	RespawnStateSearchingForSpawn = iota
	RespawnStateServerReadyToSpawn
	RespawnStateClientReadyToSpawn
)

// Login carries the two JWT chains proving identity and device/skin
// properties.
type Login struct {
	ClientProtocol    int32
	ConnectionRequest string
}

func (pk *Login) ID() uint32 { return IDLogin }
func (pk *Login) Marshal(io protocol.IO) {
	io.Varint32(&pk.ClientProtocol)
	io.String(&pk.ConnectionRequest)
}

// PlayStatus reports server-side login progress or failure.
type PlayStatus struct {
	Status int32
}

func (pk *PlayStatus) ID() uint32 { return IDPlayStatus }
func (pk *PlayStatus) Marshal(io protocol.IO) {
	io.Int32(&pk.Status)
}

// Disconnect is sent by the server immediately before it closes the
// connection.
type Disconnect struct {
	HideDisconnectScreen bool
	Message              string
}

func (pk *Disconnect) ID() uint32 { return IDDisconnect }
func (pk *Disconnect) Marshal(io protocol.IO) {
	io.Bool(&pk.HideDisconnectScreen)
	io.String(&pk.Message)
}

// ResourcePacksInfo announces the resource packs the server wants the
// client to download, identified by UUID string.
type ResourcePacksInfo struct {
	TexturePackRequired bool
	PackUUIDs           []string
}

func (pk *ResourcePacksInfo) ID() uint32 { return IDResourcePacksInfo }
func (pk *ResourcePacksInfo) Marshal(io protocol.IO) {
	io.Bool(&pk.TexturePackRequired)
	count := uint32(len(pk.PackUUIDs))
	io.Varuint32(&count)
	for i := range pk.PackUUIDs {
		io.String(&pk.PackUUIDs[i])
	}
}

// ResourcePackStack finalizes the resource pack application order.
type ResourcePackStack struct {
	TexturePackRequired bool
	PackUUIDs           []string
}

func (pk *ResourcePackStack) ID() uint32 { return IDResourcePackStack }
func (pk *ResourcePackStack) Marshal(io protocol.IO) {
	io.Bool(&pk.TexturePackRequired)
	count := uint32(len(pk.PackUUIDs))
	io.Varuint32(&count)
	for i := range pk.PackUUIDs {
		io.String(&pk.PackUUIDs[i])
	}
}

// ResourcePackClientResponse is the client's reply at each stage of
// resource pack negotiation.
type ResourcePackClientResponse struct {
	Response        uint8
	PacksToDownload []string
}

func (pk *ResourcePackClientResponse) ID() uint32 { return IDResourcePackClientResponse }
func (pk *ResourcePackClientResponse) Marshal(io protocol.IO) {
	io.Uint8(&pk.Response)
	count := uint32(len(pk.PacksToDownload))
	io.Varuint32(&count)
	for i := range pk.PacksToDownload {
		io.String(&pk.PacksToDownload[i])
	}
}

// Text is a chat/system message, inbound or outbound.
type Text struct {
	TextType   uint8
	SourceName string
	Message    string
	XUID       string
}

func (pk *Text) ID() uint32 { return IDText }
func (pk *Text) Marshal(io protocol.IO) {
	io.Uint8(&pk.TextType)
	io.String(&pk.SourceName)
	io.String(&pk.Message)
	io.String(&pk.XUID)
}

// StartGame delivers world properties and the local player's entity
// identifiers.
type StartGame struct {
	EntityID        int64
	RuntimeEntityID uint64
	PlayerGameMode  int32
	PlayerPosition  [3]float32
	Pitch           float32
	Yaw             float32
	WorldSeed       int64
	Dimension       int32
	Difficulty      int32
	SpawnPosition   [3]float32
	WorldName       string
	LevelID         string
	WorldGameMode   int32
}

func (pk *StartGame) ID() uint32 { return IDStartGame }
func (pk *StartGame) Marshal(io protocol.IO) {
	io.Int64(&pk.EntityID)
	io.Varuint64(&pk.RuntimeEntityID)
	io.Varint32(&pk.PlayerGameMode)
	io.Vec3(&pk.PlayerPosition)
	io.Float32(&pk.Pitch)
	io.Float32(&pk.Yaw)
	io.Int64(&pk.WorldSeed)
	io.Varint32(&pk.Dimension)
	io.Varint32(&pk.Difficulty)
	io.Vec3(&pk.SpawnPosition)
	io.String(&pk.WorldName)
	io.String(&pk.LevelID)
	io.Varint32(&pk.WorldGameMode)
}

// AddPlayer introduces a remote player entity into view.
type AddPlayer struct {
	UUID            uuid.UUID
	Username        string
	RuntimeEntityID uint64
	UniqueEntityID  int64
	Position        [3]float32
	Velocity        [3]float32
	Pitch           float32
	Yaw             float32
	HeadYaw         float32
}

func (pk *AddPlayer) ID() uint32 { return IDAddPlayer }
func (pk *AddPlayer) Marshal(io protocol.IO) {
	io.UUID(&pk.UUID)
	io.String(&pk.Username)
	io.Varuint64(&pk.RuntimeEntityID)
	io.Varint64(&pk.UniqueEntityID)
	io.Vec3(&pk.Position)
	io.Vec3(&pk.Velocity)
	io.Float32(&pk.Pitch)
	io.Float32(&pk.Yaw)
	io.Float32(&pk.HeadYaw)
}

// AddActor introduces a remote non-player entity into view.
type AddActor struct {
	EntityType      string
	RuntimeEntityID uint64
	UniqueEntityID  int64
	Position        [3]float32
	Velocity        [3]float32
	Pitch           float32
	Yaw             float32
	HeadYaw         float32
}

func (pk *AddActor) ID() uint32 { return IDAddActor }
func (pk *AddActor) Marshal(io protocol.IO) {
	io.String(&pk.EntityType)
	io.Varuint64(&pk.RuntimeEntityID)
	io.Varint64(&pk.UniqueEntityID)
	io.Vec3(&pk.Position)
	io.Vec3(&pk.Velocity)
	io.Float32(&pk.Pitch)
	io.Float32(&pk.Yaw)
	io.Float32(&pk.HeadYaw)
}

// RemoveActor drops an entity from view, identified by its unique id.
type RemoveActor struct {
	UniqueEntityID int64
}

func (pk *RemoveActor) ID() uint32 { return IDRemoveActor }
func (pk *RemoveActor) Marshal(io protocol.IO) {
	io.Varint64(&pk.UniqueEntityID)
}

// MovePlayer reports the local or a remote player's new transform.
type MovePlayer struct {
	RuntimeEntityID uint64
	Position        [3]float32
	Pitch           float32
	Yaw             float32
	HeadYaw         float32
	Mode            uint8
	OnGround        bool
	RiddenRuntimeID uint64
	Tick            uint64
}

func (pk *MovePlayer) ID() uint32 { return IDMovePlayer }
func (pk *MovePlayer) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
	io.Vec3(&pk.Position)
	io.Float32(&pk.Pitch)
	io.Float32(&pk.Yaw)
	io.Float32(&pk.HeadYaw)
	io.Uint8(&pk.Mode)
	io.Bool(&pk.OnGround)
	io.Varuint64(&pk.RiddenRuntimeID)
	io.Varuint64(&pk.Tick)
}

// MoveActorAbsolute reports a tracked entity's new transform.
type MoveActorAbsolute struct {
	RuntimeEntityID uint64
	Flags           uint8
	Position        [3]float32
	Pitch           float32
	Yaw             float32
	HeadYaw         float32
}

func (pk *MoveActorAbsolute) ID() uint32 { return IDMoveActorAbsolute }
func (pk *MoveActorAbsolute) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
	io.Uint8(&pk.Flags)
	io.Vec3(&pk.Position)
	io.Float32(&pk.Pitch)
	io.Float32(&pk.Yaw)
	io.Float32(&pk.HeadYaw)
}

// AttributeValue is a single named attribute entry as carried by
// UpdateAttributes.
type AttributeValue struct {
	Name    string
	Min     float32
	Max     float32
	Value   float32
	Default float32
}

// UpdateAttributes replaces the local player's named attributes.
type UpdateAttributes struct {
	RuntimeEntityID uint64
	Attributes      []AttributeValue
	Tick            uint64
}

func (pk *UpdateAttributes) ID() uint32 { return IDUpdateAttributes }
func (pk *UpdateAttributes) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
	count := uint32(len(pk.Attributes))
	io.Varuint32(&count)
	for i := range pk.Attributes {
		a := &pk.Attributes[i]
		io.Float32(&a.Min)
		io.Float32(&a.Max)
		io.Float32(&a.Value)
		io.Float32(&a.Default)
		io.String(&a.Name)
	}
	io.Varuint64(&pk.Tick)
}

// SetActorData carries an entity's metadata blob; the metadata's internal
// key/value shape is out of scope for this codec and is handed to callers
// as an opaque byte slice.
type SetActorData struct {
	RuntimeEntityID uint64
	Metadata        []byte
	Tick            uint64
}

func (pk *SetActorData) ID() uint32 { return IDSetActorData }
func (pk *SetActorData) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
	io.ByteSlice(&pk.Metadata)
	io.Varuint64(&pk.Tick)
}

// SetActorMotion reports a tracked entity's new velocity.
type SetActorMotion struct {
	RuntimeEntityID uint64
	Velocity        [3]float32
}

func (pk *SetActorMotion) ID() uint32 { return IDSetActorMotion }
func (pk *SetActorMotion) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
	io.Vec3(&pk.Velocity)
}

// SetPlayerGameType switches the local player's gamemode mid-session.
type SetPlayerGameType struct {
	GameType int32
}

func (pk *SetPlayerGameType) ID() uint32 { return IDSetPlayerGameType }
func (pk *SetPlayerGameType) Marshal(io protocol.IO) {
	io.Varint32(&pk.GameType)
}

// Respawn is exchanged during a respawn cycle: the server
// sends state=ServerReadyToSpawn, the client echoes state=ClientReadyToSpawn.
type Respawn struct {
	Position        [3]float32
	State           uint8
	RuntimeEntityID uint64
}

func (pk *Respawn) ID() uint32 { return IDRespawn }
func (pk *Respawn) Marshal(io protocol.IO) {
	io.Vec3(&pk.Position)
	io.Uint8(&pk.State)
	io.Varuint64(&pk.RuntimeEntityID)
}

// ChangeDimension moves the local player to a different dimension.
type ChangeDimension struct {
	Dimension int32
	Position  [3]float32
	Respawn   bool
}

func (pk *ChangeDimension) ID() uint32 { return IDChangeDimension }
func (pk *ChangeDimension) Marshal(io protocol.IO) {
	io.Varint32(&pk.Dimension)
	io.Vec3(&pk.Position)
	io.Bool(&pk.Respawn)
}

// PlayerAction reports a discrete local player action (mining start/stop,
// jump, sprint toggles, and so on).
type PlayerAction struct {
	RuntimeEntityID uint64
	Action          int32
	Position        [3]int32
	Face            int32
}

func (pk *PlayerAction) ID() uint32 { return IDPlayerAction }
func (pk *PlayerAction) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
	io.Varint32(&pk.Action)
	for i := range pk.Position {
		io.Varint32(&pk.Position[i])
	}
	io.Varint32(&pk.Face)
}

// CommandRequest sends a slash command the local player issued.
type CommandRequest struct {
	CommandLine string
	Internal    bool
}

func (pk *CommandRequest) ID() uint32 { return IDCommandRequest }
func (pk *CommandRequest) Marshal(io protocol.IO) {
	io.String(&pk.CommandLine)
	io.Bool(&pk.Internal)
}

// ModalFormRequest asks the client to display a form.
type ModalFormRequest struct {
	FormID   uint32
	FormData string
}

func (pk *ModalFormRequest) ID() uint32 { return IDModalFormRequest }
func (pk *ModalFormRequest) Marshal(io protocol.IO) {
	io.Varuint32(&pk.FormID)
	io.String(&pk.FormData)
}

// ModalFormResponse answers a ModalFormRequest.
type ModalFormResponse struct {
	FormID       uint32
	ResponseData string
	CancelReason uint8
}

func (pk *ModalFormResponse) ID() uint32 { return IDModalFormResponse }
func (pk *ModalFormResponse) Marshal(io protocol.IO) {
	io.Varuint32(&pk.FormID)
	io.String(&pk.ResponseData)
	io.Uint8(&pk.CancelReason)
}

// SetLocalPlayerAsInitialized confirms the client has finished spawning.
type SetLocalPlayerAsInitialized struct {
	RuntimeEntityID uint64
}

func (pk *SetLocalPlayerAsInitialized) ID() uint32 { return IDSetLocalPlayerAsInitialized }
func (pk *SetLocalPlayerAsInitialized) Marshal(io protocol.IO) {
	io.Varuint64(&pk.RuntimeEntityID)
}

// RequestChunkRadius asks the server for a view distance in chunks.
type RequestChunkRadius struct {
	ChunkRadius int32
}

func (pk *RequestChunkRadius) ID() uint32 { return IDRequestChunkRadius }
func (pk *RequestChunkRadius) Marshal(io protocol.IO) {
	io.Varint32(&pk.ChunkRadius)
}

// ChunkRadiusUpdated reports the chunk radius the server actually granted.
type ChunkRadiusUpdated struct {
	ChunkRadius int32
}

func (pk *ChunkRadiusUpdated) ID() uint32 { return IDChunkRadiusUpdated }
func (pk *ChunkRadiusUpdated) Marshal(io protocol.IO) {
	io.Varint32(&pk.ChunkRadius)
}

// NetworkStackLatency is the server's latency probe, echoed back by the
// client with the same timestamp and NeedsResponse cleared.
type NetworkStackLatency struct {
	Timestamp     int64
	NeedsResponse bool
}

func (pk *NetworkStackLatency) ID() uint32 { return IDNetworkStackLatency }
func (pk *NetworkStackLatency) Marshal(io protocol.IO) {
	io.Int64(&pk.Timestamp)
	io.Bool(&pk.NeedsResponse)
}

// NetworkSettings negotiates the compression algorithm and threshold for
// the remainder of the session; compression flips from off to on the
// moment this packet arrives and never flips back.
type NetworkSettings struct {
	CompressionThreshold uint16
	CompressionAlgorithm uint16
}

func (pk *NetworkSettings) ID() uint32 { return IDNetworkSettings }
func (pk *NetworkSettings) Marshal(io protocol.IO) {
	io.Uint16(&pk.CompressionThreshold)
	io.Uint16(&pk.CompressionAlgorithm)
}

// RequestNetworkSettings is the very first game packet the client sends,
// before compression is negotiated.
type RequestNetworkSettings struct {
	ClientProtocol int32
}

func (pk *RequestNetworkSettings) ID() uint32 { return IDRequestNetworkSettings }
func (pk *RequestNetworkSettings) Marshal(io protocol.IO) {
	io.Varint32(&pk.ClientProtocol)
}

// PlayerAuthInput is the client's per-tick authoritative transform report;
// its absence for too long triggers a server-side timeout.
type PlayerAuthInput struct {
	Pitch      float32
	Yaw        float32
	HeadYaw    float32
	Position   [3]float32
	MoveVector [2]float32
	InputData  uint64
	InputMode  uint32
	PlayMode   uint32
	Tick       uint64
}

func (pk *PlayerAuthInput) ID() uint32 { return IDPlayerAuthInput }
func (pk *PlayerAuthInput) Marshal(io protocol.IO) {
	io.Float32(&pk.Pitch)
	io.Float32(&pk.Yaw)
	io.Float32(&pk.HeadYaw)
	io.Vec3(&pk.Position)
	io.Float32(&pk.MoveVector[0])
	io.Float32(&pk.MoveVector[1])
	io.Varuint64(&pk.InputData)
	io.Varuint32(&pk.InputMode)
	io.Varuint32(&pk.PlayMode)
	io.Varuint64(&pk.Tick)
}

// Unknown carries the raw payload of any packet ID the pool has no
// registered type for, so the session can still surface it on the generic
// packet event.
type Unknown struct {
	PacketID uint32
	Payload  []byte
}

func (pk *Unknown) ID() uint32             { return pk.PacketID }
func (pk *Unknown) Marshal(io protocol.IO) { io.Rest(&pk.Payload) }
