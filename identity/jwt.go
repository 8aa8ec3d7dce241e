package identity

import (
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	jose "github.com/go-jose/go-jose/v3"
	"golang.org/x/text/language"
)

// sign produces a compact ES384 JWS over payload, with the given extra
// header fields merged in alongside the standard "alg" header go-jose
// writes automatically.
func sign(key *ecdsa.PrivateKey, extraHeaders map[string]any, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	opts := &jose.SignerOptions{}
	for k, v := range extraHeaders {
		opts.WithHeader(jose.HeaderKey(k), v)
	}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.ES384, Key: key}, opts)
	if err != nil {
		return "", fmt.Errorf("create signer: %w", err)
	}
	obj, err := signer.Sign(body)
	if err != nil {
		return "", fmt.Errorf("sign payload: %w", err)
	}
	compact, err := obj.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("serialize jws: %w", err)
	}
	return compact, nil
}

// buildOfflineIdentityToken builds the self-signed identity chain token for
// offline sessions.
func buildOfflineIdentityToken(key *ecdsa.PrivateKey, x5u string, profile Profile) (string, error) {
	payload := map[string]any{
		"extraData": map[string]any{
			"displayName": profile.Name,
			"identity":    profile.UUID,
			"titleId":     "89692877",
			"XUID":        profile.XUID,
		},
		"certificateAuthority": true,
		"identityPublicKey":    x5u,
		"notBefore":            0,
		"issuer":               "self",
		"expiresIn":            3600,
	}
	return sign(key, map[string]any{"x5u": x5u}, payload)
}

// buildOnlineIdentityToken builds the identity chain token for online
// sessions, asserting the server-chosen Mojang public key as the
// certificate authority.
func buildOnlineIdentityToken(key *ecdsa.PrivateKey, x5u, mojangKey string) (string, error) {
	payload := map[string]any{
		"identityPublicKey":    mojangKey,
		"certificateAuthority": true,
	}
	return sign(key, map[string]any{"x5u": x5u}, payload)
}

// buildUserToken builds the user chain token carrying device identity,
// session properties and the skin descriptor.
func buildUserToken(key *ecdsa.PrivateKey, x5u string, opts Options, profile Profile) (string, error) {
	skin := defaultSkin()
	for k, v := range opts.SkinOverrides {
		skin[k] = v
	}

	lang := languageCode(opts.LanguageCode)
	version := opts.GameVersion
	if version == "" {
		version = "1.21.1.03"
	}

	payload := map[string]any{
		"DeviceId":         newUUID(),
		"SelfSignedId":     newUUID(),
		"PlayFabId":        newUUID()[:16],
		"ClientRandomId":   randomInt63(),
		"GameVersion":      version,
		"LanguageCode":     lang,
		"ServerAddress":    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		"ThirdPartyName":   profile.Name,
		"DeviceOS":         opts.DeviceOS,
		"CurrentInputMode": 1,
		"DefaultInputMode": 1,
		"UIProfile":        0,
		"GuiScale":         0,
	}
	for k, v := range skin {
		payload[k] = v
	}

	// Unlike the identity chain token, the user token carries a typ header.
	return sign(key, map[string]any{"x5u": x5u, "typ": "JWT"}, payload)
}

// languageCode canonicalizes a configured language tag into the ll_RR form
// the user token carries, falling back to American English for empty or
// unparseable input.
func languageCode(code string) string {
	tag := language.AmericanEnglish
	if code != "" {
		if parsed, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err == nil {
			tag = parsed
		}
	}
	return strings.ReplaceAll(tag.String(), "-", "_")
}

func decodeJWTHeader(token string) ([]byte, error) { return decodeJWTPart(token, 0) }
func decodeJWTPayload(token string) ([]byte, error) { return decodeJWTPart(token, 1) }

func decodeJWTPart(token string, index int) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed JWT: expected 3 segments, got %d", len(parts))
	}
	return base64.RawURLEncoding.DecodeString(parts[index])
}
