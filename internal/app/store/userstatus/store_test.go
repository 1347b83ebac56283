package userstatus_test

import (
	"testing"

	"github.com/dalemusser/buddyhub/internal/app/store/userstatus"
	"github.com/dalemusser/buddyhub/internal/testutil"
)

func TestStore_Get_DefaultsToZeroRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstatus.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st, err := store.Get(ctx, 5)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if st.UserID != 5 || st.Away || st.StatusText != "" {
		t.Errorf("expected zero record for user 5, got %+v", st)
	}
}

func TestStore_SetAndAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstatus.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Set(ctx, 1, true, "at lunch"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := store.Set(ctx, 2, false, ""); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := store.Set(ctx, 3, false, "in a meeting"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Away || got.StatusText != "at lunch" {
		t.Errorf("Get: got %+v", got)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	ids := map[int64]bool{}
	for _, st := range all {
		ids[st.UserID] = true
	}
	if len(ids) != 2 || !ids[1] || !ids[3] {
		t.Errorf("All: got users %v, want 1 and 3", ids)
	}

	// Clearing the flag drops the user from All.
	if _, err := store.Set(ctx, 1, false, ""); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	all, err = store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 || all[0].UserID != 3 {
		t.Errorf("All after clear: got %+v", all)
	}
}
