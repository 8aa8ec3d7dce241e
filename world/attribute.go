// Package world mirrors the client-visible world state fed by inbound
// packets: local player data, its attribute map, and the tracked remote
// entity table.
package world

import "github.com/go-gl/mathgl/mgl32"

// Attribute is a single named, bounded numeric stat (health, movement
// speed, and so on) tracked only for the local player.
type Attribute struct {
	Name    string
	Value   float32
	Default float32
	Min     float32
	Max     float32
}

// attributeDefaults supplies the sentinel values the convenience accessors
// fall back to when the named attribute hasn't arrived yet.
var attributeDefaults = map[string]Attribute{
	"minecraft:health":     {Name: "minecraft:health", Value: 20, Default: 20, Min: 0, Max: 20},
	"minecraft:movement":   {Name: "minecraft:movement", Value: 0.1, Default: 0.1, Min: 0, Max: 3.4e38},
	"minecraft:health.max": {Name: "minecraft:health.max", Value: 20, Default: 20, Min: 0, Max: 20},
}

// AttributeMap holds the local player's current attributes, keyed by name.
type AttributeMap struct {
	attributes map[string]Attribute
}

// NewAttributeMap returns an empty attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{attributes: make(map[string]Attribute)}
}

// Update replaces any attribute whose name appears in attrs; attributes not
// present in attrs are left untouched.
func (m *AttributeMap) Update(attrs []Attribute) {
	for _, a := range attrs {
		m.attributes[a.Name] = a
	}
}

// Get returns the named attribute, or its sentinel default if the server
// hasn't sent it yet.
func (m *AttributeMap) Get(name string) Attribute {
	if a, ok := m.attributes[name]; ok {
		return a
	}
	if d, ok := attributeDefaults[name]; ok {
		return d
	}
	return Attribute{Name: name}
}

// Health returns the current health attribute, defaulting to 20.
func (m *AttributeMap) Health() float32 { return m.Get("minecraft:health").Value }

// MovementSpeed returns the current movement speed attribute, defaulting to
// 0.1.
func (m *AttributeMap) MovementSpeed() float32 { return m.Get("minecraft:movement").Value }

// Vec3 is the vector type used for positions and motion throughout the
// world mirror and session controller.
type Vec3 = mgl32.Vec3
