package command

import (
	"context"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/kafka"
	"github.com/nurtai/product-catalog/pkg/logger"
)

// CreateProductCommand represents the command to create a new product.
type CreateProductCommand struct {
	Name     string
	Category string
	Price    float64
	Quantity int
	Status   string
}

// CreateProductHandler handles product creation.
type CreateProductHandler struct {
	repo      domain.Repository
	publisher *kafka.Publisher
}

// NewCreateProductHandler creates a new create product handler.
func NewCreateProductHandler(repo domain.Repository, publisher *kafka.Publisher) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, publisher: publisher}
}

// Handle executes the create product command. The store assigns the ID and
// stamps the creation date; validation errors surface unchanged.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	draft := domain.Draft{
		Name:     cmd.Name,
		Category: cmd.Category,
		Price:    cmd.Price,
		Quantity: cmd.Quantity,
		Status:   cmd.Status,
	}

	product, err := h.repo.Insert(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := h.publisher.PublishProductEvent(ctx, kafka.EventTypeProductCreated, *product); err != nil {
		// Eventing is best effort; the record is already committed.
		logger.Logger.Warn().Err(err).Int("product_id", product.ID).Msg("Failed to publish created event")
	}

	return product, nil
}
