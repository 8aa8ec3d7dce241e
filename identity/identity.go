// Package identity assembles the two signed tokens a Bedrock client presents
// in its Login packet: an identity chain attesting who the player is, and a
// user chain describing the device, session and skin. It generates
// the ephemeral EC key pair both tokens are bound to and supports both an
// offline (self-signed) and an online (external-provider-backed) flow.
package identity

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// offlineNamespace is the fixed UUID namespace used to deterministically
// derive an offline player's UUID from their username.
var offlineNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// Profile identifies the player this identity belongs to.
type Profile struct {
	Name string
	UUID string
	XUID string
}

// Identity is the immutable artifact produced once by Assemble during
// connect.
type Identity struct {
	Profile             Profile
	IdentityChainToken  string
	UserChainToken      string
	ExternalChainTokens []string

	// PrivateKey is the ephemeral EC key pair this identity (and any
	// post-login encryption handshake, were one negotiated) is bound to.
	PrivateKey *ecdsa.PrivateKey
}

// Options configures Assemble; see Config for the user-facing surface that
// maps onto it.
type Options struct {
	Username string
	Offline  bool
	// Provider supplies the external identity chain when Offline is false.
	Provider Provider
	Host     string
	Port     int

	GameVersion   string
	DeviceOS      int
	LanguageCode  string
	SkinOverrides map[string]any
}

// Assemble runs the identity assembly step: generate an ephemeral
// key pair, obtain or self-sign an identity chain, and build a user chain
// bound to the same key.
func Assemble(opts Options) (*Identity, error) {
	key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("identity: generate key pair: %w", err)
	}
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("identity: marshal public key: %w", err)
	}
	x5u := base64.StdEncoding.EncodeToString(pub)

	id := &Identity{PrivateKey: key}

	if opts.Offline {
		id.Profile = Profile{
			Name: opts.Username,
			UUID: uuid.NewMD5(offlineNamespace, []byte(opts.Username)).String(),
			XUID: "0",
		}
		token, err := buildOfflineIdentityToken(key, x5u, id.Profile)
		if err != nil {
			return nil, fmt.Errorf("identity: build offline identity token: %w", err)
		}
		id.IdentityChainToken = token
	} else {
		if opts.Provider == nil {
			return nil, fmt.Errorf("identity: online mode requires a Provider")
		}
		chain, err := opts.Provider.Tokens(x5u, opts.Username)
		if err != nil {
			return nil, fmt.Errorf("identity: external identity provider: %w", err)
		}
		if len(chain) == 0 {
			return nil, fmt.Errorf("identity: external identity provider returned no tokens")
		}
		profile, err := profileFromChain(chain)
		if err != nil {
			return nil, fmt.Errorf("identity: decode profile from chain: %w", err)
		}
		id.Profile = profile
		id.ExternalChainTokens = chain
		token, err := buildOnlineIdentityToken(key, x5u, mojangPublicKey(chain))
		if err != nil {
			return nil, fmt.Errorf("identity: build online identity token: %w", err)
		}
		id.IdentityChainToken = token
	}

	userToken, err := buildUserToken(key, x5u, opts, id.Profile)
	if err != nil {
		return nil, fmt.Errorf("identity: build user token: %w", err)
	}
	id.UserChainToken = userToken

	return id, nil
}

// profileFromChain decodes the last token in an external identity chain to
// extract displayName/identity/XUID.
func profileFromChain(chain []string) (Profile, error) {
	payload, err := decodeJWTPayload(chain[len(chain)-1])
	if err != nil {
		return Profile{}, err
	}
	var extra struct {
		ExtraData struct {
			DisplayName string `json:"displayName"`
			Identity    string `json:"identity"`
			XUID        string `json:"XUID"`
		} `json:"extraData"`
	}
	if err := json.Unmarshal(payload, &extra); err != nil {
		return Profile{}, fmt.Errorf("unmarshal chain payload: %w", err)
	}
	return Profile{Name: extra.ExtraData.DisplayName, UUID: extra.ExtraData.Identity, XUID: extra.ExtraData.XUID}, nil
}

// mojangPublicKeyConstant is the fallback Mojang root key used when the
// first token in an external chain doesn't carry one in its header.
const mojangPublicKeyConstant = "MHYwEAYHKoZIzj0CAQYFK4EEACIDYgAECRXueJeTDqNRRgJi/vlRufByu/2G0i2Ebt6YMar5QX/R0DIIyrJMcUpruK4QveTfJSTp3Shlq4Gk34cijNKMqwgsjcdPrvxzpuaFTuyFq5Px4M9ExKK6YfvZiDtCHSiM"

// mojangPublicKey reads the first token's header for a server-chosen Mojang
// public key, falling back to the hard-coded constant.
func mojangPublicKey(chain []string) string {
	if len(chain) == 0 {
		return mojangPublicKeyConstant
	}
	header, err := decodeJWTHeader(chain[0])
	if err != nil {
		return mojangPublicKeyConstant
	}
	var h struct {
		X5U string `json:"x5u"`
	}
	if err := json.Unmarshal(header, &h); err != nil || h.X5U == "" {
		return mojangPublicKeyConstant
	}
	return h.X5U
}
