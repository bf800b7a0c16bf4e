package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/PolarWolf314/envvault/internal/audit"
	kerrors "github.com/PolarWolf314/envvault/internal/errors"
	"github.com/PolarWolf314/envvault/internal/store"
)

func TestRemoveAll(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t, map[string]string{
		"TEST_A":  "1",
		"test_b":  "2",
		"KEEP_ME": "3",
	})
	manager := NewManager(st, newTestCodec(t, "alice"), nil)

	result, err := manager.RemoveAll(ctx, "TEST", RemoveOptions{})
	if err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if result.RemovedCount != 2 || result.BlankedCount != 0 || len(result.FailedNames) != 0 {
		t.Errorf("Unexpected result: %+v", result)
	}

	names, _ := st.Names(ctx)
	if len(names) != 1 || names[0] != "KEEP_ME" {
		t.Errorf("Expected only KEEP_ME to remain, got %v", names)
	}

	if e := lastAudit(t); e.Operation != audit.OpRemove || e.RemovedCount != 2 {
		t.Errorf("Unexpected audit entry: %+v", e)
	}
}

func TestRemoveAllBlanksStickyVariable(t *testing.T) {
	ctx := context.Background()
	st := &stickyStore{
		Store:        seedStore(t, map[string]string{"TEST_A": "1", "TEST_B": "2", "TEST_C": "3"}),
		ignoreDelete: map[string]bool{"TEST_B": true},
	}

	result, err := NewManager(st, newTestCodec(t, "alice"), nil).RemoveAll(ctx, "TEST_", RemoveOptions{})
	if err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	states := make(map[string]RemovalState)
	for _, o := range result.Outcomes {
		states[o.Name] = o.State
	}
	if states["TEST_A"] != Removed || states["TEST_C"] != Removed {
		t.Errorf("Expected TEST_A and TEST_C removed, got %v", states)
	}
	if states["TEST_B"] != Blanked {
		t.Errorf("Expected TEST_B blanked, got %s", states["TEST_B"])
	}
	if result.RemovedCount != 2 || result.BlankedCount != 1 || len(result.FailedNames) != 0 {
		t.Errorf("Unexpected counts: %+v", result)
	}

	value, found, _ := st.Get(ctx, "TEST_B")
	if !found || value != "" {
		t.Errorf("Expected TEST_B to be present and empty, got %q (found=%v)", value, found)
	}
}

func TestRemoveAllPersistedFailure(t *testing.T) {
	ctx := context.Background()
	codec := newTestCodec(t, "alice")
	encoded, _ := codec.Encode("survivor")
	st := &stickyStore{
		Store:        seedStore(t, map[string]string{"TEST_A": "1", "TEST_B": encoded, "TEST_C": "3"}),
		ignoreDelete: map[string]bool{"TEST_B": true},
		ignoreBlank:  map[string]bool{"TEST_B": true},
	}

	result, err := NewManager(st, codec, nil).RemoveAll(ctx, "TEST_", RemoveOptions{})
	if err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	if result.RemovedCount != 2 || result.BlankedCount != 0 {
		t.Errorf("Unexpected counts: %+v", result)
	}
	if len(result.FailedNames) != 1 || result.FailedNames[0] != "TEST_B" {
		t.Fatalf("Expected TEST_B to fail, got %v", result.FailedNames)
	}

	for _, o := range result.Outcomes {
		if o.Name != "TEST_B" {
			continue
		}
		if o.State != PersistedFailure || o.Err == nil {
			t.Errorf("Unexpected outcome: %+v", o)
		}
		if o.Remaining != "survivor" {
			t.Errorf("Expected decoded remaining value, got %q", o.Remaining)
		}
	}
}

func TestRemoveAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(seedStore(t, map[string]string{"TEST_A": "1"}), newTestCodec(t, "alice"), nil)

	if _, err := manager.RemoveAll(ctx, "TEST_", RemoveOptions{}); err != nil {
		t.Fatalf("First RemoveAll failed: %v", err)
	}

	result, err := manager.RemoveAll(ctx, "TEST_", RemoveOptions{})
	if err != nil {
		t.Fatalf("Second RemoveAll failed: %v", err)
	}
	if result.RemovedCount != 0 || result.BlankedCount != 0 || len(result.FailedNames) != 0 {
		t.Errorf("Expected an empty result, got %+v", result)
	}
}

func TestRemoveAllDryRun(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t, map[string]string{"TEST_A": "1", "TEST_B": "2"})
	before := auditCount()

	result, err := NewManager(st, newTestCodec(t, "alice"), nil).RemoveAll(ctx, "TEST_", RemoveOptions{DryRun: true})
	if err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if !result.DryRun || len(result.Targeted) != 2 || len(result.Outcomes) != 0 {
		t.Errorf("Unexpected dry run result: %+v", result)
	}

	names, _ := st.Names(ctx)
	if len(names) != 2 {
		t.Errorf("Dry run must not remove anything, got %v", names)
	}
	if auditCount() != before {
		t.Error("Dry run must not be audited")
	}
}

func TestRemoveAllRequiresPrefix(t *testing.T) {
	manager := NewManager(store.NewMemoryStore(), newTestCodec(t, "alice"), nil)
	if _, err := manager.RemoveAll(context.Background(), "", RemoveOptions{}); !errors.Is(err, kerrors.ErrPrefixRequired) {
		t.Errorf("Expected ErrPrefixRequired, got %v", err)
	}
}

func TestRemoveAllStoreError(t *testing.T) {
	_, err := NewManager(brokenStore{}, newTestCodec(t, "alice"), nil).RemoveAll(context.Background(), "P", RemoveOptions{})
	if !errors.Is(err, kerrors.ErrStoreAccess) {
		t.Errorf("Expected ErrStoreAccess, got %v", err)
	}
}

func TestRemoveAllContinuesAfterReadFailure(t *testing.T) {
	ctx := context.Background()
	st := &failingGetStore{
		Store: seedStore(t, map[string]string{"P_A": "a", "P_B": "b"}),
		name:  "P_A",
	}

	result, err := NewManager(st, newTestCodec(t, "alice"), nil).RemoveAll(ctx, "P", RemoveOptions{})
	if err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if len(result.FailedNames) != 1 || result.FailedNames[0] != "P_A" {
		t.Errorf("Expected P_A to fail verification, got %v", result.FailedNames)
	}
	if result.RemovedCount != 1 {
		t.Errorf("Expected P_B removed, got %+v", result)
	}
}

func TestRemovalStateString(t *testing.T) {
	if Removed.String() != "removed" || Blanked.String() != "blanked" || PersistedFailure.String() != "failed" {
		t.Error("Unexpected RemovalState strings")
	}
}
