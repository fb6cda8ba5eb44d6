package query

import (
	"context"
	"fmt"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID.
type GetProductQuery struct {
	ID int
}

// GetProductHandler handles get product queries.
type GetProductHandler struct {
	repo domain.Repository
}

// NewGetProductHandler creates a new get product handler.
func NewGetProductHandler(repo domain.Repository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	if q.ID <= 0 {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrNotFound)
	}
	return h.repo.Get(ctx, q.ID)
}
