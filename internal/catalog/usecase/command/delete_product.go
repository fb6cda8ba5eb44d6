package command

import (
	"context"
	"fmt"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/kafka"
	"github.com/nurtai/product-catalog/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product.
type DeleteProductCommand struct {
	ID int
}

// DeleteProductHandler handles product deletion.
type DeleteProductHandler struct {
	repo      domain.Repository
	publisher *kafka.Publisher
}

// NewDeleteProductHandler creates a new delete product handler.
func NewDeleteProductHandler(repo domain.Repository, publisher *kafka.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, publisher: publisher}
}

// Handle executes the delete product command and returns the removed record.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (*domain.Product, error) {
	if cmd.ID <= 0 {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrNotFound)
	}

	product, err := h.repo.Delete(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if err := h.publisher.PublishProductEvent(ctx, kafka.EventTypeProductDeleted, *product); err != nil {
		logger.Logger.Warn().Err(err).Int("product_id", product.ID).Msg("Failed to publish deleted event")
	}

	return product, nil
}
