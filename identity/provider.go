package identity

import (
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
)

// Provider is the external identity provider: it exchanges an ephemeral
// public key and username for an ordered chain of signed tokens. The client
// never implements the Xbox Live OAuth flow itself, it only drives this
// interface.
type Provider interface {
	Tokens(x5uBase64, username string) ([]string, error)
}

// TokenRequest is the shape of the request an XBLProvider's HTTPClient must
// turn into a call against the real external Bedrock token endpoint.
type TokenRequest struct {
	X5U      string
	Username string
	Token    *oauth2.Token
}

// TokenResponse is the shape of the response an XBLProvider's HTTPClient
// must decode from the real external Bedrock token endpoint.
type TokenResponse struct {
	Chain []string `json:"chain"`
}

// DecodeTokenResponse is a helper HTTPClient implementations can use to turn
// a raw JSON body from the token endpoint into a TokenResponse.
func DecodeTokenResponse(body []byte) (TokenResponse, error) {
	var resp TokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return TokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	return resp, nil
}

// XBLProvider implements Provider against the real Xbox Live Bedrock token
// endpoint, authenticating via an oauth2.TokenSource the caller supplies
// (typically obtained through a device-code flow run outside this module).
type XBLProvider struct {
	Source     oauth2.TokenSource
	Endpoint   string
	HTTPClient interface {
		Do(req *TokenRequest) (*TokenResponse, error)
	}
}

// Tokens fetches a fresh oauth2 token and exchanges it, together with x5u
// and username, for the signed chain the real endpoint would return.
func (p *XBLProvider) Tokens(x5uBase64, username string) ([]string, error) {
	if p.Source == nil {
		return nil, fmt.Errorf("identity: XBLProvider requires a token source")
	}
	tok, err := p.Source.Token()
	if err != nil {
		return nil, fmt.Errorf("identity: refresh xbox live token: %w", err)
	}
	if p.HTTPClient == nil {
		return nil, fmt.Errorf("identity: XBLProvider requires an HTTPClient")
	}
	resp, err := p.HTTPClient.Do(&TokenRequest{X5U: x5uBase64, Username: username, Token: tok})
	if err != nil {
		return nil, fmt.Errorf("identity: exchange bedrock token: %w", err)
	}
	return resp.Chain, nil
}
