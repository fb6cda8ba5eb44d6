package repository

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

func fixedClock(date string) func() time.Time {
	t, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestMemoryStore_SeededState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	products, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("seeded store has %d products, want 10", len(products))
	}
	if products[0].Name != "iPhone 15 Pro" {
		t.Errorf("first seed row is %q, want iPhone 15 Pro", products[0].Name)
	}

	// Seed consumed IDs 1..10, so the next insert gets 11.
	p, err := store.Insert(ctx, domain.Draft{Name: "Widget", Category: "Home", Price: 10, Quantity: 5, Status: "Active"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if p.ID != 11 {
		t.Errorf("inserted ID = %d, want 11", p.ID)
	}
}

func TestMemoryStore_InsertAssignsIDAndDate(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{nextID: 1, now: fixedClock("2024-03-01")}

	p, err := store.Insert(ctx, domain.Draft{Name: "Widget", Category: "Home", Price: 10, Quantity: 5, Status: "Active"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}
	if p.Date != "2024-03-01" {
		t.Errorf("Date = %q, want 2024-03-01", p.Date)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if *got != *p {
		t.Errorf("Get() = %+v, want %+v", got, p)
	}
}

func TestMemoryStore_InsertValidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Insert(ctx, domain.Draft{Name: "", Category: "Home", Price: 10, Quantity: 5, Status: "Active"})
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Insert() error = %v, want ValidationError", err)
	}

	_, err = store.Insert(ctx, domain.Draft{Name: "X", Category: "Home", Price: -1, Quantity: 5, Status: "Active"})
	if !errors.As(err, &validation) {
		t.Fatalf("Insert() with negative price error = %v, want ValidationError", err)
	}
}

func TestMemoryStore_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{nextID: 1, now: time.Now}

	draft := domain.Draft{Name: "A", Category: "C", Price: 1, Quantity: 1, Status: "Active"}
	first, _ := store.Insert(ctx, draft)

	if _, err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	second, _ := store.Insert(ctx, draft)
	if second.ID != first.ID+1 {
		t.Errorf("ID after delete = %d, want %d", second.ID, first.ID+1)
	}
}

func TestMemoryStore_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{nextID: 1, now: fixedClock("2024-03-01")}

	p, _ := store.Insert(ctx, domain.Draft{Name: "Widget", Category: "Home", Price: 10, Quantity: 5, Status: "Active"})

	price := 12.5
	updated, err := store.Update(ctx, p.ID, domain.Patch{Price: &price})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Price != 12.5 {
		t.Errorf("Price = %v, want 12.5", updated.Price)
	}
	if updated.Name != "Widget" || updated.Quantity != 5 || updated.Date != "2024-03-01" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestMemoryStore_UpdateEmptyPatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	before, _ := store.Get(ctx, 3)
	after, err := store.Update(ctx, 3, domain.Patch{})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if *after != *before {
		t.Errorf("empty patch changed record: %+v != %+v", after, before)
	}
}

func TestMemoryStore_DeleteReturnsRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p, err := store.Delete(ctx, 3)
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if p.Name != "Nike Air Max" {
		t.Errorf("deleted record = %q, want Nike Air Max", p.Name)
	}

	if _, err := store.Get(ctx, 3); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_DeleteUnknownLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Delete(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete(999) error = %v, want ErrNotFound", err)
	}

	products, _ := store.ListAll(ctx)
	if len(products) != 10 {
		t.Errorf("ListAll() after failed delete has %d rows, want 10", len(products))
	}
}

func TestMemoryStore_ListAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{nextID: 1, now: time.Now}

	for _, name := range []string{"a", "b", "c"} {
		store.Insert(ctx, domain.Draft{Name: name, Category: "C", Price: 1, Quantity: 1, Status: "Active"})
	}
	store.Delete(ctx, 2)
	store.Insert(ctx, domain.Draft{Name: "d", Category: "C", Price: 1, Quantity: 1, Status: "Active"})

	products, _ := store.ListAll(ctx)
	var names []string
	for _, p := range products {
		names = append(names, p.Name)
	}
	want := []string{"a", "c", "d"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestMemoryStore_FillIsDeterministicPerSource(t *testing.T) {
	ctx := context.Background()

	a := NewMemoryStore()
	a.Fill(5, rand.NewSource(42))
	b := NewMemoryStore()
	b.Fill(5, rand.NewSource(42))

	rowsA, _ := a.ListAll(ctx)
	rowsB, _ := b.ListAll(ctx)
	if len(rowsA) != 15 {
		t.Fatalf("filled store has %d rows, want 15", len(rowsA))
	}
	for i := range rowsA {
		if rowsA[i] != rowsB[i] {
			t.Fatalf("same source produced different rows at %d: %+v vs %+v", i, rowsA[i], rowsB[i])
		}
	}

	// Filler consumed IDs 11..15.
	next, _ := a.Insert(ctx, domain.Draft{Name: "X", Category: "C", Price: 1, Quantity: 1, Status: "Active"})
	if next.ID != 16 {
		t.Errorf("ID after fill = %d, want 16", next.ID)
	}
}

func TestMemoryStore_ListAllReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snapshot, _ := store.ListAll(ctx)
	snapshot[0].Name = "mutated"

	fresh, _ := store.ListAll(ctx)
	if fresh[0].Name == "mutated" {
		t.Error("ListAll() exposed internal state")
	}
}
