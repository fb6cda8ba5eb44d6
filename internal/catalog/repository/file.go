package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/pkg/logger"
)

// document is the on-disk layout: the whole collection plus the id counter,
// rewritten in full on every mutation.
type document struct {
	Products []domain.Product `json:"products"`
	NextID   int              `json:"nextId"`
}

// FileStore persists the catalog as a single JSON document. The file is
// created with the seed rows on first open. A store-wide mutex serializes
// read-modify-write cycles within this process; nothing protects the file
// against other processes, and a crash mid-write can corrupt it.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  document
	now  func() time.Time
}

// OpenFileStore loads the catalog from path, seeding the file if it does not
// exist. An unreadable or corrupt file is logged and replaced with an empty
// in-memory view so the service still comes up.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.doc = document{Products: seedProducts(), NextID: seedNextID}
		if err := s.flush(); err != nil {
			return nil, err
		}
		logger.Logger.Info().Str("path", path).Msg("Catalog file initialized with sample data")
		return s, nil
	case err != nil:
		logger.Logger.Error().Err(err).Str("path", path).Msg("Failed to read catalog file, starting empty")
		s.doc = document{NextID: 1}
		return s, nil
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		logger.Logger.Error().Err(err).Str("path", path).Msg("Failed to parse catalog file, starting empty")
		s.doc = document{NextID: 1}
		return s, nil
	}
	if s.doc.NextID < 1 {
		s.doc.NextID = 1
	}
	return s, nil
}

// flush rewrites the whole document. Callers hold the mutex.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return &domain.StoreError{Op: "encode", Err: err}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &domain.StoreError{Op: "write", Err: err}
	}
	return nil
}

func (s *FileStore) Insert(ctx context.Context, draft domain.Draft) (*domain.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:       s.doc.NextID,
		Name:     draft.Name,
		Category: draft.Category,
		Price:    draft.Price,
		Quantity: draft.Quantity,
		Status:   draft.Status,
		Date:     s.now().Format(domain.DateFormat),
	}
	s.doc.Products = append(s.doc.Products, product)
	s.doc.NextID++

	if err := s.flush(); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *FileStore) Get(ctx context.Context, id int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.doc.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *FileStore) Update(ctx context.Context, id int, patch domain.Patch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Products {
		if s.doc.Products[i].ID == id {
			patch.Apply(&s.doc.Products[i])
			product := s.doc.Products[i]
			if err := s.flush(); err != nil {
				return nil, err
			}
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *FileStore) Delete(ctx context.Context, id int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Products {
		if s.doc.Products[i].ID == id {
			product := s.doc.Products[i]
			s.doc.Products = append(s.doc.Products[:i], s.doc.Products[i+1:]...)
			if err := s.flush(); err != nil {
				return nil, err
			}
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *FileStore) ListAll(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Product, len(s.doc.Products))
	copy(snapshot, s.doc.Products)
	return snapshot, nil
}

// Ping verifies the backing file is still reachable.
func (s *FileStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return &domain.StoreError{Op: "stat", Err: err}
	}
	return nil
}
