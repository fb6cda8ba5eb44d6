package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	pipeline "github.com/nurtai/product-catalog/internal/catalog/query"
	"github.com/nurtai/product-catalog/internal/catalog/usecase/command"
	"github.com/nurtai/product-catalog/internal/catalog/usecase/query"
	"github.com/nurtai/product-catalog/pkg/logger"
)

// CatalogHandler handles HTTP requests for the product catalog using CQRS
// command/query handlers.
type CatalogHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	statsHandler      *query.GetStatsHandler

	repo  domain.Repository
	cache *ResponseCache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a catalog handler with manual DI, registering its
// metrics on the default Prometheus registerer.
func NewCatalogHandler(repo domain.Repository, cache *ResponseCache,
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	statsHandler *query.GetStatsHandler,
) *CatalogHandler {
	return newCatalogHandler(prometheus.DefaultRegisterer, repo, cache,
		createHandler, updateHandler, deleteHandler,
		getProductHandler, listHandler, statsHandler)
}

// newCatalogHandler is the internal constructor. The registerer is injected
// so tests can use a private registry.
func newCatalogHandler(reg prometheus.Registerer, repo domain.Repository, cache *ResponseCache,
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	statsHandler *query.GetStatsHandler,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with percentiles",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, requestSummary, totalProducts)

	return &CatalogHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
		statsHandler:      statsHandler,
		repo:              repo,
		cache:             cache,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		requestSummary:    requestSummary,
		totalProducts:     totalProducts,
	}
}

// Response is the common envelope for non-list endpoints.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// listResponse carries the query pipeline output.
type listResponse struct {
	Success      bool                  `json:"success"`
	Data         []domain.Product      `json:"data"`
	Pagination   pipeline.Pagination   `json:"pagination"`
	Aggregations pipeline.Aggregations `json:"aggregations"`
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics.
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes wires the API surface onto the router. Reads go through the
// response cache; writes invalidate it.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/health", h.metricsMiddleware("/api/health", h.Health)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.cache.Middleware(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/stats", h.metricsMiddleware("/api/stats", h.cache.Middleware(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")
}

// Health handles GET /api/health.
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Store unavailable")
		respondJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Store unavailable",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ListProducts handles GET /api/products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{Spec: parseSpec(r)}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, listResponse{
		Success:      true,
		Data:         result.Data,
		Pagination:   result.Pagination,
		Aggregations: result.Aggregations,
	})
}

// GetProduct handles GET /api/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, err, "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string  `json:"name"`
		Category *string  `json:"category"`
		Price    *float64 `json:"price"`
		Quantity *int     `json:"quantity"`
		Status   *string  `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.Name == nil || req.Category == nil || req.Price == nil || req.Quantity == nil || req.Status == nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Missing required fields: name, category, price, quantity, status",
		})
		return
	}

	cmd := command.CreateProductCommand{
		Name:     *req.Name,
		Category: *req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
		Status:   *req.Status,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, err, err.Error())
		return
	}

	h.afterMutation(r)

	respondJSON(w, http.StatusCreated, Response{Success: true, Data: product})
}

// UpdateProduct handles PUT /api/products/{id}. Only fields present in the
// body are changed.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name     *string  `json:"name"`
		Category *string  `json:"category"`
		Price    *float64 `json:"price"`
		Quantity *int     `json:"quantity"`
		Status   *string  `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateProductCommand{
		ID:       id,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
		Status:   req.Status,
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondError(w, err, "Product not found")
		return
	}

	h.afterMutation(r)

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// DeleteProduct handles DELETE /api/products/{id} and returns the removed
// record.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondError(w, err, "Product not found")
		return
	}

	h.afterMutation(r)

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// GetStats handles GET /api/stats.
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get stats")
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   "Failed to get statistics",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// afterMutation refreshes the products gauge and drops cached GET responses.
func (h *CatalogHandler) afterMutation(r *http.Request) {
	if products, err := h.repo.ListAll(r.Context()); err == nil {
		h.totalProducts.Set(float64(len(products)))
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to invalidate response cache")
	}
}

// parseSpec builds the pipeline spec from URL parameters. Malformed numeric
// values are treated as absent.
func parseSpec(r *http.Request) pipeline.Spec {
	params := r.URL.Query()

	spec := pipeline.Spec{
		Search:    params.Get("search"),
		Category:  params.Get("category"),
		Status:    params.Get("status"),
		SortBy:    params.Get("sortBy"),
		SortOrder: params.Get("sortOrder"),
	}

	spec.Page, _ = strconv.Atoi(params.Get("page"))
	spec.Limit, _ = strconv.Atoi(params.Get("limit"))

	if v, err := strconv.ParseFloat(params.Get("minPrice"), 64); err == nil {
		spec.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(params.Get("maxPrice"), 64); err == nil {
		spec.MaxPrice = &v
	}

	return spec
}

// pathID extracts and validates the {id} path variable.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	var validation *domain.ValidationError
	var store *domain.StoreError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &store):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an error response, hiding internals behind fallback for
// 5xx statuses.
func respondError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	msg := fallback
	if status == http.StatusBadRequest {
		msg = err.Error()
	}
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	respondJSON(w, status, Response{Success: false, Error: msg})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
