package world

import "testing"

func TestPlayerStateApplyStartGame(t *testing.T) {
	p := NewPlayerState()
	p.ApplyStartGame(42, 1, Vec3{0, 70, 0}, "my world", 1234, 0, 1, 1)

	if p.EntityID != 42 || p.RuntimeEntityID != 1 {
		t.Fatalf("ids = %d/%d, want 42/1", p.EntityID, p.RuntimeEntityID)
	}
	if p.WorldName != "my world" || p.WorldSeed != 1234 {
		t.Fatalf("world = %s/%d, want my world/1234", p.WorldName, p.WorldSeed)
	}
	if p.Attributes.Health() != 20 {
		t.Fatalf("fresh player health = %v, want 20", p.Attributes.Health())
	}
}

func TestPlayerStateSetTransform(t *testing.T) {
	p := NewPlayerState()
	p.SetTransform(Vec3{1, 2, 3}, 10, 20, 30)

	if p.Position != (Vec3{1, 2, 3}) {
		t.Fatalf("position = %v, want {1 2 3}", p.Position)
	}
	if p.Pitch != 10 || p.Yaw != 20 || p.HeadYaw != 30 {
		t.Fatalf("rotation = %v/%v/%v, want 10/20/30", p.Pitch, p.Yaw, p.HeadYaw)
	}
}
