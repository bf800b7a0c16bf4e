package store

import (
	"context"
	"sort"
	"strings"
)

// Store is a per-user namespace of named string values.
//
// Names are compared case-insensitively. Delete is best effort: a deleted
// name may still be visible to the next Get, which callers must verify.
type Store interface {
	Get(ctx context.Context, name string) (value string, found bool, err error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
	Names(ctx context.Context) ([]string, error)
}

// Closer is implemented by stores holding resources such as open databases.
type Closer interface {
	Close() error
}

// lookupKey is the case-folded form used to match names.
func lookupKey(name string) string {
	return strings.ToUpper(name)
}

// sortNames orders names case-insensitively, breaking ties by exact value.
func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := lookupKey(names[i]), lookupKey(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}
