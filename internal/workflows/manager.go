package workflows

import (
	"github.com/PolarWolf314/envvault/internal/configs"
	"github.com/PolarWolf314/envvault/internal/secrets"
	"github.com/PolarWolf314/envvault/internal/store"
)

// Manager adds, lists and removes groups of prefixed store variables, and
// encrypts plaintext settings file entries in bulk.
type Manager struct {
	store   store.Store
	codec   *secrets.Codec
	session *configs.Session
}

// NewManager returns a manager over st. session is only used for audit
// entries and may be nil.
func NewManager(st store.Store, codec *secrets.Codec, session *configs.Session) *Manager {
	return &Manager{store: st, codec: codec, session: session}
}
