package minecraft

import (
	"time"

	"github.com/DKMtomy/clientRewrite/identity"
)

// Config collects every external configuration key named in the session's
// external-interfaces table.
type Config struct {
	Host string
	Port uint16

	Username string
	Offline  bool
	// Provider supplies the external identity chain when Offline is false.
	Provider identity.Provider

	ProtocolVersion int32
	GameVersion     string
	ViewDistance    int32
	DeviceOS        int32
	LanguageCode    string
	SkinData        map[string]any

	AutoReconnect        bool
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
}

// withDefaults fills the zero-valued optional fields with their documented
// defaults.
func (c Config) withDefaults() Config {
	if c.ProtocolVersion == 0 {
		c.ProtocolVersion = 685
	}
	if c.GameVersion == "" {
		c.GameVersion = "1.21.1.03"
	}
	if c.ViewDistance == 0 {
		c.ViewDistance = 10
	}
	if c.DeviceOS == 0 {
		c.DeviceOS = 7
	}
	if c.ReconnectDelay == 0 {
		c.ReconnectDelay = 3 * time.Second
	}
	if c.MaxReconnectAttempts == 0 {
		c.MaxReconnectAttempts = 3
	}
	return c
}
