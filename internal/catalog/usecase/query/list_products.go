package query

import (
	"context"
	"fmt"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	pipeline "github.com/nurtai/product-catalog/internal/catalog/query"
)

// ListProductsQuery represents the query to list products through the
// filter/sort/paginate pipeline.
type ListProductsQuery struct {
	Spec pipeline.Spec
}

// ListProductsHandler handles list products queries.
type ListProductsHandler struct {
	repo domain.Repository
}

// NewListProductsHandler creates a new list products handler.
func NewListProductsHandler(repo domain.Repository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle snapshots the store and runs the pipeline over it.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*pipeline.Result, error) {
	records, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := pipeline.Execute(records, q.Spec)
	return &result, nil
}
