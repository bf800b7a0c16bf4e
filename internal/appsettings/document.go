package appsettings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"

	"github.com/beevik/etree"
)

// Element and attribute names of the settings file.
const (
	ContainerTag = "appSettings"
	EntryTag     = "add"
	KeyAttr      = "key"
	ValueAttr    = "value"
)

// Document is a parsed settings file. Everything outside the entries it
// edits is written back as it was read.
type Document struct {
	path string
	doc  *etree.Document
}

// Entry is one <add key="..." value="..."/> element of a Document.
type Entry struct {
	Key      string
	Value    string
	HasValue bool

	el    *etree.Element
	owner *Document
}

// Load reads and parses the settings file at path.
//
// It returns an error wrapping ErrConfigNotFound, ErrConfigIO or
// ErrConfigParse so callers can tell the preconditions apart.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, kerrors.ErrConfigNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", path, kerrors.ErrConfigIO, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %w", path, kerrors.ErrConfigParse, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing %s: no root element: %w", path, kerrors.ErrConfigParse)
	}

	return &Document{path: path, doc: doc}, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

func (d *Document) container() *etree.Element {
	return d.doc.SelectElement(ContainerTag)
}

// HasContainer reports whether the root settings element is present.
func (d *Document) HasContainer() bool {
	return d.container() != nil
}

// Entries returns the container's entries in document order.
func (d *Document) Entries() []*Entry {
	container := d.container()
	if container == nil {
		return nil
	}

	var entries []*Entry
	for _, el := range container.SelectElements(EntryTag) {
		entry := &Entry{
			Key:   el.SelectAttrValue(KeyAttr, ""),
			el:    el,
			owner: d,
		}
		if attr := el.SelectAttr(ValueAttr); attr != nil {
			entry.Value = attr.Value
			entry.HasValue = true
		}
		entries = append(entries, entry)
	}
	return entries
}

// Find returns the first entry whose key matches key ignoring case, or nil.
func (d *Document) Find(key string) *Entry {
	for _, entry := range d.Entries() {
		if strings.EqualFold(entry.Key, key) {
			return entry
		}
	}
	return nil
}

// SetValue rewrites the value attribute of e in memory.
func (d *Document) SetValue(e *Entry, value string) error {
	if e == nil {
		return kerrors.ErrEntryNotFound
	}
	if e.owner != d || !d.owns(e.el) {
		return fmt.Errorf("entry %q: %w", e.Key, kerrors.ErrStaleEntry)
	}

	e.el.CreateAttr(ValueAttr, value)
	e.Value = value
	e.HasValue = true
	return nil
}

// owns reports whether el is still attached to this document.
func (d *Document) owns(el *etree.Element) bool {
	if el == nil {
		return false
	}
	for p := el; p != nil; p = p.Parent() {
		if p == &d.doc.Element {
			return true
		}
	}
	return false
}

// Save writes the whole document back to its path. The file is rewritten
// in place.
func (d *Document) Save() error {
	if err := d.doc.WriteToFile(d.path); err != nil {
		return fmt.Errorf("writing %s: %w: %w", d.path, kerrors.ErrConfigIO, err)
	}
	return nil
}
