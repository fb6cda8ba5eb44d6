package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers the Swagger UI route.
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Health godoc
// @Summary Health check
// @Description Check service health and store reachability
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string,timestamp=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/health [get]
func (h *CatalogHandler) HealthDoc() {}

// ListProducts godoc
// @Summary List products
// @Description Filter, sort and paginate the catalog; aggregations cover the filtered set
// @Tags Products
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Param category query string false "Category filter"
// @Param status query string false "Status filter"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} object{success=bool,data=array,pagination=object,aggregations=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create a new product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body object{name=string,category=string,price=number,quantity=int,status=string} true "Product data"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Partial update; omitted fields keep their current value
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{name=string,category=string,price=number,quantity=int,status=string} true "Fields to change"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProductDoc() {}

// GetStats godoc
// @Summary Get catalog statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} object{success=bool,data=object{totalProducts=int,categories=array,statuses=array,priceRange=object}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/stats [get]
func (h *CatalogHandler) GetStatsDoc() {}
