//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"

	httpDelivery "github.com/nurtai/product-catalog/internal/catalog/delivery/http"
	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/internal/catalog/usecase/command"
	"github.com/nurtai/product-catalog/internal/catalog/usecase/query"
	"github.com/nurtai/product-catalog/kafka"
)

// HandlerSet provides the command and query handlers.
var HandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewGetStatsHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies.
func InitializeHTTPHandler(repo domain.Repository, publisher *kafka.Publisher, cache *httpDelivery.ResponseCache) *httpDelivery.CatalogHandler {
	wire.Build(
		HandlerSet,
		httpDelivery.NewCatalogHandler,
	)
	return nil
}
