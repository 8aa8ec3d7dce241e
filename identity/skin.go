package identity

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/google/uuid"
)

// skinWidth and skinHeight describe the default 64x64 RGBA skin image
// generated when the caller supplies no skin override.
const skinWidth, skinHeight = 64, 64

// defaultGeometryName is the minimal "geometry.humanoid.custom" identifier a
// vanilla client stamps into the skin resource patch when it hasn't picked
// a custom model.
const defaultGeometryName = "geometry.humanoid.custom"

// defaultSkin builds the skin-related fields of a user chain token: a
// flat-colored 64x64 RGBA image, a default geometry descriptor, and the
// assorted skin flags vanilla clients always send.
func defaultSkin() map[string]any {
	pixels := make([]byte, skinWidth*skinHeight*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = 0x90, 0x90, 0x90, 0xff
	}

	geometry, _ := json.Marshal(map[string]any{"geometry": map[string]any{"default": defaultGeometryName}})
	resourcePatch, _ := json.Marshal(map[string]any{"geometry": map[string]any{"default": defaultGeometryName}})

	return map[string]any{
		"SkinId":            "Custom_" + newUUID(),
		"SkinResourcePatch": base64.StdEncoding.EncodeToString(resourcePatch),
		"SkinImageWidth":    skinWidth,
		"SkinImageHeight":   skinHeight,
		"SkinData":          base64.StdEncoding.EncodeToString(pixels),
		"SkinGeometryData":  base64.StdEncoding.EncodeToString(geometry),
		"CapeData":          "",
		"CapeId":            "",
		"CapeImageWidth":    0,
		"CapeImageHeight":   0,
		"CapeOnClassicSkin": false,
		"ArmSize":           "wide",
		"SkinColor":         "#0",
		"PersonaSkin":       false,
		"PremiumSkin":       false,
		"TrustedSkin":       false,
		"PersonaPieces":     []any{},
		"PieceTintColors":   []any{},
		"AnimatedImageData": []any{},
	}
}

func newUUID() string { return uuid.New().String() }

// randomInt63 produces a random, positive integer used for ClientRandomId;
// the user token carries no JWT timestamp claim to derive one from.
func randomInt63() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	v := int64(binary.BigEndian.Uint64(b[:]))
	if v < 0 {
		v = -v
	}
	return v % math.MaxInt32
}
