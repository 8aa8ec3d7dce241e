package minecraft

import (
	"log"
	"time"
)

// ConnectWithReconnect drives Connect and, when the session disconnects
// after having reached Spawned and AutoReconnect is enabled, rebuilds the
// session and reconnects with a linearly increasing backoff, up to
// MaxReconnectAttempts.
//
// onSpawn is invoked with the freshly (re)connected session every time it
// reaches Spawned, including the first connection, so callers can
// re-register handlers against the new Session value.
func ConnectWithReconnect(cfg Config, logger *log.Logger, onSpawn func(*Session)) error {
	cfg = cfg.withDefaults()
	attempt := 0
	reachedSpawn := false

	for {
		s := NewSession(cfg, logger)
		s.events.on(EventSpawn, func(any) { reachedSpawn = true })

		err := s.Connect()
		if err == nil {
			onSpawn(s)
			attempt = 0
			<-s.done
			reachedSpawn = true
		}

		if !cfg.AutoReconnect || !reachedSpawn {
			return err
		}
		attempt++
		if attempt > cfg.MaxReconnectAttempts {
			return err
		}
		s.events.emit(EventReconnect, attempt)
		time.Sleep(cfg.ReconnectDelay * time.Duration(attempt))
	}
}
