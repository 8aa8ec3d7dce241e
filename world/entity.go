package world

import "github.com/google/uuid"

// Entity is a tracked remote entity mirrored from AddPlayer/AddActor packets.
type Entity struct {
	RuntimeID uint64
	UniqueID  int64
	Type      string

	Position Vec3
	Motion   Vec3
	Pitch    float32
	Yaw      float32
	HeadYaw  float32

	Metadata map[uint32]any
	// RawMetadata is the undecoded metadata blob from the latest SetActorData
	// packet. Decoding its key/value shape is out of scope for the mirror.
	RawMetadata []byte

	// Username and UUID are set only for player entities.
	Username string
	UUID     uuid.UUID
}

// EntityTracker holds every remote entity the session currently knows
// about, keyed by runtime id with a secondary lookup by unique id.
type EntityTracker struct {
	byRuntime map[uint64]*Entity
}

// NewEntityTracker returns an empty tracker.
func NewEntityTracker() *EntityTracker {
	return &EntityTracker{byRuntime: make(map[uint64]*Entity)}
}

// AddPlayer registers a remote player entity.
func (t *EntityTracker) AddPlayer(runtimeID uint64, uniqueID int64, username string, uid uuid.UUID, pos Vec3) *Entity {
	e := &Entity{
		RuntimeID: runtimeID,
		UniqueID:  uniqueID,
		Type:      "minecraft:player",
		Username:  username,
		UUID:      uid,
		Position:  pos,
		Metadata:  make(map[uint32]any),
	}
	t.byRuntime[runtimeID] = e
	return e
}

// AddEntity registers a remote non-player entity.
func (t *EntityTracker) AddEntity(runtimeID uint64, uniqueID int64, entityType string, pos Vec3) *Entity {
	e := &Entity{
		RuntimeID: runtimeID,
		UniqueID:  uniqueID,
		Type:      entityType,
		Position:  pos,
		Metadata:  make(map[uint32]any),
	}
	t.byRuntime[runtimeID] = e
	return e
}

// RemoveByUniqueID drops the entity with the given unique id, if tracked.
// A linear scan is acceptable here: entity counts in view distance are
// small and removals are infrequent relative to position updates.
func (t *EntityTracker) RemoveByUniqueID(uniqueID int64) {
	for runtimeID, e := range t.byRuntime {
		if e.UniqueID == uniqueID {
			delete(t.byRuntime, runtimeID)
			return
		}
	}
}

// Get returns the entity tracked under runtimeID, if any.
func (t *EntityTracker) Get(runtimeID uint64) (*Entity, bool) {
	e, ok := t.byRuntime[runtimeID]
	return e, ok
}

// UpdatePosition moves the tracked entity to pos, if it exists.
func (t *EntityTracker) UpdatePosition(runtimeID uint64, pos Vec3) {
	if e, ok := t.byRuntime[runtimeID]; ok {
		e.Position = pos
	}
}

// UpdateTransform moves and rotates the tracked entity together, as
// MoveActorAbsolute carries them.
func (t *EntityTracker) UpdateTransform(runtimeID uint64, pos Vec3, pitch, yaw, headYaw float32) {
	if e, ok := t.byRuntime[runtimeID]; ok {
		e.Position = pos
		e.Pitch = pitch
		e.Yaw = yaw
		e.HeadYaw = headYaw
	}
}

// UpdateMotion sets the tracked entity's motion vector, if it exists.
func (t *EntityTracker) UpdateMotion(runtimeID uint64, motion Vec3) {
	if e, ok := t.byRuntime[runtimeID]; ok {
		e.Motion = motion
	}
}

// UpdateMetadata merges metadata entries into the tracked entity, if it
// exists. Keys absent from data are left untouched, matching the
// attribute map's replace-named-entries-only semantics.
func (t *EntityTracker) UpdateMetadata(runtimeID uint64, data map[uint32]any) {
	e, ok := t.byRuntime[runtimeID]
	if !ok {
		return
	}
	for k, v := range data {
		e.Metadata[k] = v
	}
}

// SetRawMetadata replaces the tracked entity's undecoded metadata blob.
func (t *EntityTracker) SetRawMetadata(runtimeID uint64, blob []byte) {
	if e, ok := t.byRuntime[runtimeID]; ok {
		e.RawMetadata = blob
	}
}

// Nearest returns the tracked entity closest to pos, or nil if none are
// tracked.
func (t *EntityTracker) Nearest(pos Vec3) *Entity {
	var best *Entity
	var bestDist float32
	for _, e := range t.byRuntime {
		d := e.Position.Sub(pos).LenSqr()
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// Len reports how many entities are currently tracked.
func (t *EntityTracker) Len() int { return len(t.byRuntime) }
