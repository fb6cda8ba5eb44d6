package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("repository-test", false)
	os.Exit(m.Run())
}

func openTempStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.json")
	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() error: %v", err)
	}
	return store, path
}

func TestFileStore_SeedsFileOnFirstOpen(t *testing.T) {
	ctx := context.Background()
	store, path := openTempStore(t)

	products, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("seeded store has %d products, want 10", len(products))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("seed file not written: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("seed file is not valid JSON: %v", err)
	}
	for _, key := range []string{"products", "nextId"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("seed document missing %q key", key)
		}
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, path := openTempStore(t)
	store.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	created, err := store.Insert(ctx, domain.Draft{Name: "Desk Lamp", Category: "Home", Price: 24.99, Quantity: 12, Status: "Active"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if _, err := store.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}

	got, err := reopened.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if *got != *created {
		t.Errorf("reloaded record = %+v, want %+v", got, created)
	}
	if _, err := reopened.Get(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted record survived reopen: err = %v", err)
	}

	// The id counter must survive the round trip too.
	next, err := reopened.Insert(ctx, domain.Draft{Name: "Chair", Category: "Home", Price: 80, Quantity: 4, Status: "Active"})
	if err != nil {
		t.Fatalf("Insert() after reopen error: %v", err)
	}
	if next.ID != created.ID+1 {
		t.Errorf("ID after reopen = %d, want %d", next.ID, created.ID+1)
	}
}

func TestFileStore_UpdateRewritesDocument(t *testing.T) {
	ctx := context.Background()
	store, path := openTempStore(t)

	quantity := 99
	if _, err := store.Update(ctx, 2, domain.Patch{Quantity: &quantity}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, err := reopened.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Quantity != 99 {
		t.Errorf("Quantity after reopen = %d, want 99", got.Quantity)
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() on corrupt file error: %v", err)
	}

	products, _ := store.ListAll(ctx)
	if len(products) != 0 {
		t.Errorf("corrupt file produced %d products, want 0", len(products))
	}

	// The next insert starts the counter at 1.
	p, err := store.Insert(ctx, domain.Draft{Name: "Fresh", Category: "Home", Price: 1, Quantity: 1, Status: "Active"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("first ID = %d, want 1", p.ID)
	}
}

func TestFileStore_Ping(t *testing.T) {
	ctx := context.Background()
	store, path := openTempStore(t)

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	os.Remove(path)
	err := store.Ping(ctx)
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Errorf("Ping() on missing file error = %v, want StoreError", err)
	}
}
