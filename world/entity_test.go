package world

import (
	"testing"

	"github.com/google/uuid"
)

func TestEntityTrackerAddAndGet(t *testing.T) {
	tr := NewEntityTracker()
	tr.AddPlayer(1, 100, "Steve", uuid.New(), Vec3{0, 64, 0})

	e, ok := tr.Get(1)
	if !ok {
		t.Fatalf("expected entity 1 to be tracked")
	}
	if e.UniqueID != 100 {
		t.Fatalf("unique id = %d, want 100", e.UniqueID)
	}
	if e.Username != "Steve" {
		t.Fatalf("username = %s, want Steve", e.Username)
	}
	if e.Type != "minecraft:player" {
		t.Fatalf("type = %s, want minecraft:player", e.Type)
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
}

func TestEntityTrackerRemoveByUniqueID(t *testing.T) {
	tr := NewEntityTracker()
	tr.AddPlayer(1, 100, "a", uuid.UUID{}, Vec3{})
	tr.AddEntity(2, 200, "minecraft:zombie", Vec3{})

	tr.RemoveByUniqueID(100)

	if _, ok := tr.Get(1); ok {
		t.Fatalf("entity 1 should have been removed")
	}
	if _, ok := tr.Get(2); !ok {
		t.Fatalf("entity 2 should remain tracked")
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
}

func TestEntityTrackerUpdatePositionAndMotion(t *testing.T) {
	tr := NewEntityTracker()
	tr.AddEntity(1, 100, "minecraft:cow", Vec3{0, 0, 0})

	tr.UpdatePosition(1, Vec3{1, 2, 3})
	tr.UpdateMotion(1, Vec3{0.1, 0, 0})

	e, _ := tr.Get(1)
	if e.Position != (Vec3{1, 2, 3}) {
		t.Fatalf("position = %v, want {1 2 3}", e.Position)
	}
	if e.Motion != (Vec3{0.1, 0, 0}) {
		t.Fatalf("motion = %v, want {0.1 0 0}", e.Motion)
	}
}

func TestEntityTrackerUpdateTransformSetsRotation(t *testing.T) {
	tr := NewEntityTracker()
	tr.AddEntity(1, 100, "minecraft:cow", Vec3{})

	tr.UpdateTransform(1, Vec3{4, 5, 6}, 10, 20, 30)

	e, _ := tr.Get(1)
	if e.Position != (Vec3{4, 5, 6}) {
		t.Fatalf("position = %v, want {4 5 6}", e.Position)
	}
	if e.Pitch != 10 || e.Yaw != 20 || e.HeadYaw != 30 {
		t.Fatalf("rotation = %v/%v/%v, want 10/20/30", e.Pitch, e.Yaw, e.HeadYaw)
	}
}

func TestEntityTrackerUpdateMetadataMergesKeys(t *testing.T) {
	tr := NewEntityTracker()
	tr.AddEntity(1, 100, "minecraft:cow", Vec3{})

	tr.UpdateMetadata(1, map[uint32]any{1: "a", 2: "b"})
	tr.UpdateMetadata(1, map[uint32]any{2: "c"})

	e, _ := tr.Get(1)
	if e.Metadata[1] != "a" {
		t.Fatalf("metadata[1] = %v, want a (untouched)", e.Metadata[1])
	}
	if e.Metadata[2] != "c" {
		t.Fatalf("metadata[2] = %v, want c", e.Metadata[2])
	}
}

func TestEntityTrackerUpdateOnUntrackedEntityIsNoop(t *testing.T) {
	tr := NewEntityTracker()
	tr.UpdatePosition(99, Vec3{1, 1, 1})
	tr.UpdateMotion(99, Vec3{1, 1, 1})
	tr.UpdateMetadata(99, map[uint32]any{1: "x"})
	tr.SetRawMetadata(99, []byte{1})
	if tr.Len() != 0 {
		t.Fatalf("len = %d, want 0", tr.Len())
	}
}

func TestEntityTrackerNearest(t *testing.T) {
	tr := NewEntityTracker()
	tr.AddEntity(1, 100, "a", Vec3{10, 0, 0})
	tr.AddEntity(2, 200, "b", Vec3{1, 0, 0})
	tr.AddEntity(3, 300, "c", Vec3{5, 0, 0})

	nearest := tr.Nearest(Vec3{0, 0, 0})
	if nearest == nil || nearest.UniqueID != 200 {
		t.Fatalf("nearest = %+v, want unique id 200", nearest)
	}
}

func TestEntityTrackerNearestOnEmptyTrackerReturnsNil(t *testing.T) {
	tr := NewEntityTracker()
	if n := tr.Nearest(Vec3{}); n != nil {
		t.Fatalf("nearest on empty tracker = %+v, want nil", n)
	}
}
