package query

import (
	"context"
	"fmt"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics.
type GetStatsQuery struct{}

// CategoryStat summarizes one category.
type CategoryStat struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// StatusStat summarizes one status value.
type StatusStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PriceRange is the min/max price across the whole catalog.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CatalogStats represents catalog-wide statistics.
type CatalogStats struct {
	TotalProducts int            `json:"totalProducts"`
	Categories    []CategoryStat `json:"categories"`
	Statuses      []StatusStat   `json:"statuses"`
	PriceRange    PriceRange     `json:"priceRange"`
}

// GetStatsHandler handles stats queries.
type GetStatsHandler struct {
	repo domain.Repository
}

// NewGetStatsHandler creates a new get stats handler.
func NewGetStatsHandler(repo domain.Repository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle computes per-category and per-status breakdowns over the full
// catalog. Categories and statuses appear in first-seen order; an empty
// catalog reports a zero price range.
func (h *GetStatsHandler) Handle(ctx context.Context, q GetStatsQuery) (*CatalogStats, error) {
	products, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &CatalogStats{
		TotalProducts: len(products),
		Categories:    []CategoryStat{},
		Statuses:      []StatusStat{},
	}

	categoryIndex := make(map[string]int)
	statusIndex := make(map[string]int)

	for i, p := range products {
		if idx, ok := categoryIndex[p.Category]; ok {
			stats.Categories[idx].Count++
			stats.Categories[idx].TotalValue += p.Price * float64(p.Quantity)
		} else {
			categoryIndex[p.Category] = len(stats.Categories)
			stats.Categories = append(stats.Categories, CategoryStat{
				Category:   p.Category,
				Count:      1,
				TotalValue: p.Price * float64(p.Quantity),
			})
		}

		if idx, ok := statusIndex[p.Status]; ok {
			stats.Statuses[idx].Count++
		} else {
			statusIndex[p.Status] = len(stats.Statuses)
			stats.Statuses = append(stats.Statuses, StatusStat{Status: p.Status, Count: 1})
		}

		if i == 0 || p.Price < stats.PriceRange.Min {
			stats.PriceRange.Min = p.Price
		}
		if p.Price > stats.PriceRange.Max {
			stats.PriceRange.Max = p.Price
		}
	}

	return stats, nil
}
