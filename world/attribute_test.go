package world

import "testing"

func TestAttributeMapDefaults(t *testing.T) {
	m := NewAttributeMap()
	if h := m.Health(); h != 20 {
		t.Fatalf("default health = %v, want 20", h)
	}
	if s := m.MovementSpeed(); s != 0.1 {
		t.Fatalf("default movement speed = %v, want 0.1", s)
	}
}

func TestAttributeMapUpdateReplacesOnlyNamed(t *testing.T) {
	m := NewAttributeMap()
	m.Update([]Attribute{{Name: "minecraft:health", Value: 14, Max: 20}})

	if h := m.Health(); h != 14 {
		t.Fatalf("health after update = %v, want 14", h)
	}
	// Untouched attribute still reports its sentinel default.
	if s := m.MovementSpeed(); s != 0.1 {
		t.Fatalf("movement speed after unrelated update = %v, want 0.1 (untouched)", s)
	}

	m.Update([]Attribute{{Name: "minecraft:health", Value: 18}})
	if h := m.Health(); h != 18 {
		t.Fatalf("health after second update = %v, want 18", h)
	}
}

func TestAttributeMapUnknownNameHasZeroValueDefault(t *testing.T) {
	m := NewAttributeMap()
	a := m.Get("minecraft:custom.thing")
	if a.Value != 0 {
		t.Fatalf("unknown attribute value = %v, want 0", a.Value)
	}
}
