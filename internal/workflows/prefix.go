package workflows

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/envvault/internal/audit"
	"github.com/PolarWolf314/envvault/internal/configs"
)

// PrefixSeparator ends every non-empty prefix.
const PrefixSeparator = "_"

// saveSession persists the session; replaced in tests.
var saveSession = configs.SaveSession

// recordAudit appends to the audit trail; replaced in tests.
var recordAudit = audit.Log

// NormalizePrefix appends the separator when missing. An empty prefix stays
// empty and means unscoped.
func NormalizePrefix(p string) string {
	if p == "" || strings.HasSuffix(p, PrefixSeparator) {
		return p
	}
	return p + PrefixSeparator
}

// MatchesPrefix reports whether name starts with prefix ignoring case.
// Every name matches the empty prefix.
func MatchesPrefix(name, prefix string) bool {
	return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
}

// SetPrefixes normalizes and stores both prefixes in the session, then
// persists it.
func SetPrefixes(session *configs.Session, envPrefix, filePrefix string) error {
	if session == nil {
		return fmt.Errorf("setting prefixes: no session loaded")
	}

	session.Prefixes.Env = NormalizePrefix(strings.TrimSpace(envPrefix))
	session.Prefixes.File = NormalizePrefix(strings.TrimSpace(filePrefix))

	if err := saveSession(session); err != nil {
		return err
	}

	entry := audit.LogWithUser(audit.OpSetPrefixes, session)
	entry.Prefix = session.Prefixes.Env
	recordAudit(entry)

	return nil
}
