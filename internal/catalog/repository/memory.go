package repository

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

// MemoryStore keeps the catalog in process memory. State resets on restart.
// A RWMutex serializes mutations; single-instance semantics only.
type MemoryStore struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int
	now      func() time.Time
}

// NewMemoryStore returns a store pre-seeded with the deterministic sample
// rows.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: seedProducts(),
		nextID:   seedNextID,
		now:      time.Now,
	}
}

// Fill appends n pseudo-random rows from src. Meant for demo datasets; the
// rows consume IDs from the store counter like any insert.
func (s *MemoryStore) Fill(n int, src rand.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := fillerProducts(n, s.nextID, src)
	s.products = append(s.products, rows...)
	s.nextID += n
}

func (s *MemoryStore) Insert(ctx context.Context, draft domain.Draft) (*domain.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:       s.nextID,
		Name:     draft.Name,
		Category: draft.Category,
		Price:    draft.Price,
		Quantity: draft.Quantity,
		Status:   draft.Status,
		Date:     s.now().Format(domain.DateFormat),
	}
	s.nextID++
	s.products = append(s.products, product)
	return &product, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) Update(ctx context.Context, id int, patch domain.Patch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			patch.Apply(&s.products[i])
			product := s.products[i]
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) Delete(ctx context.Context, id int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			s.products = append(s.products[:i], s.products[i+1:]...)
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.Product, len(s.products))
	copy(snapshot, s.products)
	return snapshot, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
