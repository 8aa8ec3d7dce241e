package world

// PlayerState mirrors the local player's server-known state: identity
// within the ECS, transform, and the handful of StartGame-delivered world
// properties the session needs to answer queries about.
type PlayerState struct {
	EntityID        int64
	RuntimeEntityID uint64

	Position Vec3
	Pitch    float32
	Yaw      float32
	HeadYaw  float32

	GameMode  int32
	Dimension int32

	SpawnPosition Vec3
	WorldName     string
	WorldSeed     int64
	Difficulty    int32
	WorldGameMode int32

	Attributes *AttributeMap
}

// NewPlayerState returns a PlayerState with an empty attribute map and
// every other field zeroed, ready to be populated by StartGame.
func NewPlayerState() *PlayerState {
	return &PlayerState{Attributes: NewAttributeMap()}
}

// SetTransform updates position and rotation together, as MovePlayer and
// PlayerAuthInput packets carry them.
func (p *PlayerState) SetTransform(pos Vec3, pitch, yaw, headYaw float32) {
	p.Position = pos
	p.Pitch = pitch
	p.Yaw = yaw
	p.HeadYaw = headYaw
}

// ApplyStartGame populates the world-level fields a StartGame packet
// carries.
func (p *PlayerState) ApplyStartGame(entityID int64, runtimeEntityID uint64, spawn Vec3, worldName string, seed int64, difficulty, gameMode, worldGameMode int32) {
	p.EntityID = entityID
	p.RuntimeEntityID = runtimeEntityID
	p.SpawnPosition = spawn
	p.WorldName = worldName
	p.WorldSeed = seed
	p.Difficulty = difficulty
	p.GameMode = gameMode
	p.WorldGameMode = worldGameMode
}
