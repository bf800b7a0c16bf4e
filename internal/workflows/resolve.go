package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/envvault/internal/appsettings"
	"github.com/PolarWolf314/envvault/internal/audit"
	"github.com/PolarWolf314/envvault/internal/configs"
	kerrors "github.com/PolarWolf314/envvault/internal/errors"
	"github.com/PolarWolf314/envvault/internal/secrets"
	"github.com/PolarWolf314/envvault/internal/store"
)

// Origin is where a resolved value came from.
type Origin int

const (
	OriginNotFound Origin = iota
	OriginStore
	OriginFile
)

func (o Origin) String() string {
	switch o {
	case OriginStore:
		return "store"
	case OriginFile:
		return "file"
	default:
		return "not found"
	}
}

// saveDocument writes a settings document; replaced in tests.
var saveDocument = func(doc *appsettings.Document) error {
	return doc.Save()
}

// Resolution is the outcome of looking a setting up.
//
// The file flags are filled in order and stop at the first check that
// fails, so callers can tell which precondition was not met.
type Resolution struct {
	Origin Origin

	// Value is the decoded value, or a failure marker when decoding failed.
	Value string

	// WasEncryptedInSource is true when the stored value carried the tag.
	WasEncryptedInSource bool

	// DecryptSucceeded is true when a tagged value was decoded.
	DecryptSucceeded bool

	// DecodeErr holds the codec error when DecryptSucceeded is false for a
	// tagged value.
	DecodeErr error

	FoundInStore    bool
	FileExists      bool
	FileParsed      bool
	ContainerExists bool
	EntryFound      bool

	// ConfigPath is the settings file consulted, if any.
	ConfigPath string

	// Entry and Document reference the matched file entry so it can be
	// rewritten by EncryptAndPersist.
	Entry    *appsettings.Entry
	Document *appsettings.Document
}

// Found reports whether a value was located in either source.
func (r *Resolution) Found() bool {
	return r.Origin != OriginNotFound
}

// Usable reports whether Value holds a real value rather than a failure marker.
func (r *Resolution) Usable() bool {
	return r.Found() && (!r.WasEncryptedInSource || r.DecryptSucceeded)
}

// PlaintextInFile reports whether the value came from an untagged file entry
// that could be upgraded with EncryptAndPersist.
func (r *Resolution) PlaintextInFile() bool {
	return r.Origin == OriginFile && !r.WasEncryptedInSource
}

// Resolver looks settings up in the store first and the settings file second.
type Resolver struct {
	store   store.Store
	codec   *secrets.Codec
	session *configs.Session
}

// NewResolver returns a resolver over st. session is only used for audit
// entries and may be nil.
func NewResolver(st store.Store, codec *secrets.Codec, session *configs.Session) *Resolver {
	return &Resolver{store: st, codec: codec, session: session}
}

// Resolve returns the value of envName from the store or, when the store
// has no such variable, the value of fileName from the settings file at
// configPath.
//
// A store value ends the lookup even when it cannot be decoded. Codec
// failures are reported in the result, never as an error. The returned
// Resolution is always non-nil; an error is returned only when the store
// cannot be read or the settings file exists but cannot be read or parsed.
func (r *Resolver) Resolve(ctx context.Context, envName, fileName, configPath string) (*Resolution, error) {
	res := &Resolution{ConfigPath: configPath}

	raw, found, err := r.store.Get(ctx, envName)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w: %w", envName, kerrors.ErrStoreAccess, err)
	}
	if found {
		res.FoundInStore = true
		res.Origin = OriginStore
		r.applyDecoded(res, raw)
		return res, nil
	}

	doc, err := appsettings.Load(configPath)
	switch {
	case errors.Is(err, kerrors.ErrConfigNotFound):
		return res, nil
	case err != nil:
		res.FileExists = true
		return res, err
	}
	res.FileExists = true
	res.FileParsed = true
	res.Document = doc

	if !doc.HasContainer() {
		return res, nil
	}
	res.ContainerExists = true

	entry := doc.Find(fileName)
	if entry == nil || !entry.HasValue {
		return res, nil
	}
	res.EntryFound = true
	res.Entry = entry
	res.Origin = OriginFile
	r.applyDecoded(res, entry.Value)

	return res, nil
}

func (r *Resolver) applyDecoded(res *Resolution, raw string) {
	decoded := r.codec.Decode(raw)
	res.Value = decoded.Value
	res.WasEncryptedInSource = decoded.WasTagged
	if decoded.WasTagged {
		res.DecryptSucceeded = decoded.OK()
		res.DecodeErr = decoded.Err
	}
}

// EncryptAndPersist encodes plaintext, writes it onto the file entry found
// by Resolve and saves the whole document.
//
// Nothing is written when encoding fails or when the entry no longer
// belongs to the document.
func (r *Resolver) EncryptAndPersist(res *Resolution, plaintext string) error {
	if res == nil || res.Entry == nil || res.Document == nil {
		return kerrors.ErrEntryNotFound
	}

	encoded, err := r.codec.Encode(plaintext)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", res.Entry.Key, err)
	}

	if err := res.Document.SetValue(res.Entry, encoded); err != nil {
		return err
	}

	if err := saveDocument(res.Document); err != nil {
		return err
	}

	res.Value = plaintext
	res.WasEncryptedInSource = true
	res.DecryptSucceeded = true
	res.DecodeErr = nil

	entry := audit.LogWithUser(audit.OpEncryptEntry, r.session)
	entry.Names = []string{res.Entry.Key}
	entry.ConfigPath = res.Document.Path()
	entry.EncryptedCount = 1
	recordAudit(entry)

	return nil
}
