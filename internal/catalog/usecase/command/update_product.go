package command

import (
	"context"
	"fmt"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/kafka"
	"github.com/nurtai/product-catalog/pkg/logger"
)

// UpdateProductCommand represents a partial update. Nil fields are left
// unchanged; the ID and creation date can never be rewritten.
type UpdateProductCommand struct {
	ID       int
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	Status   *string
}

// UpdateProductHandler handles product updates.
type UpdateProductHandler struct {
	repo      domain.Repository
	publisher *kafka.Publisher
}

// NewUpdateProductHandler creates a new update product handler.
func NewUpdateProductHandler(repo domain.Repository, publisher *kafka.Publisher) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, publisher: publisher}
}

// Handle executes the update product command.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID <= 0 {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrNotFound)
	}

	patch := domain.Patch{
		Name:     cmd.Name,
		Category: cmd.Category,
		Price:    cmd.Price,
		Quantity: cmd.Quantity,
		Status:   cmd.Status,
	}

	product, err := h.repo.Update(ctx, cmd.ID, patch)
	if err != nil {
		return nil, err
	}

	if err := h.publisher.PublishProductEvent(ctx, kafka.EventTypeProductUpdated, *product); err != nil {
		logger.Logger.Warn().Err(err).Int("product_id", product.ID).Msg("Failed to publish updated event")
	}

	return product, nil
}
