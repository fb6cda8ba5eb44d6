package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurtai/product-catalog/internal/catalog/repository"
	"github.com/nurtai/product-catalog/internal/catalog/usecase/command"
	"github.com/nurtai/product-catalog/internal/catalog/usecase/query"
	"github.com/nurtai/product-catalog/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("handler-test", false)
	os.Exit(m.Run())
}

// newTestRouter builds the full route surface over a fresh seeded memory
// store, with caching and eventing disabled.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	store := repository.NewMemoryStore()
	cache := NewResponseCache(nil, 0)

	handler := newCatalogHandler(prometheus.NewRegistry(), store, cache,
		command.NewCreateProductHandler(store, nil),
		command.NewUpdateProductHandler(store, nil),
		command.NewDeleteProductHandler(store, nil),
		query.NewGetProductHandler(store),
		query.NewListProductsHandler(store),
		query.NewGetStatsHandler(store),
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Server is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestListProducts_Envelope(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok, "data must be an array")
	assert.Len(t, data, 10)

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok, "pagination must be an object")
	assert.EqualValues(t, 1, pagination["currentPage"])
	assert.EqualValues(t, 1, pagination["totalPages"])
	assert.EqualValues(t, 10, pagination["totalItems"])
	assert.EqualValues(t, 10, pagination["limit"])

	aggregations, ok := body["aggregations"].(map[string]interface{})
	require.True(t, ok, "aggregations must be an object")
	assert.EqualValues(t, 10, aggregations["totalRecords"])
}

func TestListProducts_AggregationsCoverFilteredSet(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products?category=Electronics&limit=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	data := body["data"].([]interface{})
	assert.Len(t, data, 2)

	// Aggregations span all three Electronics rows, not just the page.
	aggregations := body["aggregations"].(map[string]interface{})
	assert.EqualValues(t, 3, aggregations["totalRecords"])
	assert.InDelta(t, 1299.99, aggregations["maxPrice"].(float64), 0.001)

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["totalPages"])
	assert.EqualValues(t, 3, pagination["totalItems"])
}

func TestListProducts_MalformedPriceBoundIgnored(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products?minPrice=abc&maxPrice=", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["data"].([]interface{}), 10)
}

func TestListProducts_SortAndPage(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products?sortBy=price&sortOrder=desc&limit=3&page=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	data := body["data"].([]interface{})
	require.Len(t, data, 3)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "MacBook Air M3", first["name"])
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products/4", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "The Great Gatsby", data["name"])
	assert.EqualValues(t, 4, data["id"])
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products/404", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Product not found", body["error"])
}

func TestGetProduct_InvalidID(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/products/abc", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid product ID", body["error"])
}

func TestCreateProduct(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/products",
		`{"name":"Desk Lamp","category":"Home","price":24.99,"quantity":12,"status":"Active"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 11, data["id"])
	assert.Equal(t, "Desk Lamp", data["name"])
	assert.NotEmpty(t, data["date"])

	// The new record is immediately readable.
	rec = doRequest(t, router, http.MethodGet, "/api/products/11", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProduct_MissingFields(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/products", `{"name":"Desk Lamp","price":24.99}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields: name, category, price, quantity, status", body["error"])
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/products", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestUpdateProduct_Partial(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPut, "/api/products/1", `{"price":899.99}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})

	assert.InDelta(t, 899.99, data["price"].(float64), 0.001)
	assert.Equal(t, "iPhone 15 Pro", data["name"])
	assert.Equal(t, "2024-01-15", data["date"])
}

func TestUpdateProduct_NotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPut, "/api/products/404", `{"price":1}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Product not found", body["error"])
}

func TestDeleteProduct(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodDelete, "/api/products/10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Tennis Racket", data["name"])

	// Deleting again reports not found.
	rec = doRequest(t, router, http.MethodDelete, "/api/products/10", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStats(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 10, data["totalProducts"])

	categories := data["categories"].([]interface{})
	assert.Len(t, categories, 5)
	statuses := data["statuses"].([]interface{})
	assert.Len(t, statuses, 2)

	priceRange := data["priceRange"].(map[string]interface{})
	assert.InDelta(t, 12.99, priceRange["min"].(float64), 0.001)
	assert.InDelta(t, 1299.99, priceRange["max"].(float64), 0.001)
}
