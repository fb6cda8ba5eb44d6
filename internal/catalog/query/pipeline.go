// Package query implements the filter/sort/paginate/aggregate pipeline shared
// by the HTTP list endpoint and the catalog client. Execute is a pure function
// of (records, spec); it never touches the store.
package query

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

// DefaultLimit is the page size used when the spec carries none.
const DefaultLimit = 10

// Spec describes one read request. The search term matches case-insensitively
// against every field (numeric fields stringified as they appear in JSON);
// category and status are case-insensitive equality filters; price bounds are
// inclusive. A nil price bound means no bound.
type Spec struct {
	Search    string
	Category  string
	Status    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination describes the page served relative to the filtered set.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit"`
}

// Aggregations summarize the filtered set, not the served page.
type Aggregations struct {
	TotalRecords int     `json:"totalRecords"`
	AvgPrice     float64 `json:"avgPrice"`
	TotalValue   float64 `json:"totalValue"`
	MaxPrice     float64 `json:"maxPrice"`
}

// Result is the output of Execute.
type Result struct {
	Data         []domain.Product `json:"data"`
	Pagination   Pagination       `json:"pagination"`
	Aggregations Aggregations     `json:"aggregations"`
}

// comparators maps a sort field to its comparison semantics. Unknown fields
// fall back to id rather than failing or reflecting over the struct.
var comparators = map[string]func(a, b domain.Product) int{
	"id":       func(a, b domain.Product) int { return compareInt(a.ID, b.ID) },
	"quantity": func(a, b domain.Product) int { return compareInt(a.Quantity, b.Quantity) },
	"price":    func(a, b domain.Product) int { return compareFloat(a.Price, b.Price) },
	"date":     func(a, b domain.Product) int { return compareDate(a.Date, b.Date) },
	"name":     func(a, b domain.Product) int { return compareFold(a.Name, b.Name) },
	"category": func(a, b domain.Product) int { return compareFold(a.Category, b.Category) },
	"status":   func(a, b domain.Product) int { return compareFold(a.Status, b.Status) },
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareDate parses both values as calendar dates. Unparseable values sort
// by their raw string, which keeps the order total.
func compareDate(a, b string) int {
	ta, errA := time.Parse(domain.DateFormat, a)
	tb, errB := time.Parse(domain.DateFormat, b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	}
	return 0
}

// Execute runs the pipeline stages in fixed order: search, category, status,
// price range, stable sort, aggregate, paginate. The input slice is not
// modified.
func Execute(records []domain.Product, spec Spec) Result {
	filtered := filter(records, spec)

	cmp, ok := comparators[spec.SortBy]
	if !ok {
		cmp = comparators["id"]
	}
	desc := strings.EqualFold(spec.SortOrder, "desc")
	sort.SliceStable(filtered, func(i, j int) bool {
		c := cmp(filtered[i], filtered[j])
		if desc {
			// Negate the comparison instead of reversing the slice so that
			// equal keys keep their pre-sort order.
			c = -c
		}
		return c < 0
	})

	agg := aggregate(filtered)

	page := spec.Page
	if page <= 0 {
		page = 1
	}
	limit := spec.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	total := len(filtered)
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Data: filtered[start:end],
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       limit,
		},
		Aggregations: agg,
	}
}

func filter(records []domain.Product, spec Spec) []domain.Product {
	filtered := make([]domain.Product, 0, len(records))
	search := strings.ToLower(spec.Search)
	for _, p := range records {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if spec.Category != "" && !strings.EqualFold(p.Category, spec.Category) {
			continue
		}
		if spec.Status != "" && !strings.EqualFold(p.Status, spec.Status) {
			continue
		}
		if spec.MinPrice != nil && p.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesSearch(p domain.Product, term string) bool {
	fields := []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Category,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.Quantity),
		p.Status,
		p.Date,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func aggregate(records []domain.Product) Aggregations {
	agg := Aggregations{TotalRecords: len(records)}
	if len(records) == 0 {
		return agg
	}
	var sum float64
	for _, p := range records {
		sum += p.Price
		agg.TotalValue += p.Price * float64(p.Quantity)
		if p.Price > agg.MaxPrice {
			agg.MaxPrice = p.Price
		}
	}
	agg.AvgPrice = sum / float64(len(records))
	return agg
}
