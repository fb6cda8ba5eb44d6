package repository

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

// seedNextID is the counter value after the deterministic seed rows.
const seedNextID = 11

// seedProducts returns the deterministic sample rows every fresh store starts
// with.
func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "iPhone 15 Pro", Category: "Electronics", Price: 999.99, Quantity: 50, Status: "Active", Date: "2024-01-15"},
		{ID: 2, Name: "MacBook Air M3", Category: "Electronics", Price: 1299.99, Quantity: 25, Status: "Active", Date: "2024-01-20"},
		{ID: 3, Name: "Nike Air Max", Category: "Clothing", Price: 159.99, Quantity: 100, Status: "Active", Date: "2024-01-12"},
		{ID: 4, Name: "The Great Gatsby", Category: "Books", Price: 12.99, Quantity: 200, Status: "Active", Date: "2024-01-08"},
		{ID: 5, Name: "Coffee Maker", Category: "Home", Price: 89.99, Quantity: 30, Status: "Active", Date: "2024-01-22"},
		{ID: 6, Name: "Samsung Galaxy S24", Category: "Electronics", Price: 799.99, Quantity: 75, Status: "Active", Date: "2024-01-18"},
		{ID: 7, Name: "Adidas T-Shirt", Category: "Clothing", Price: 29.99, Quantity: 150, Status: "Active", Date: "2024-01-14"},
		{ID: 8, Name: "JavaScript Guide", Category: "Books", Price: 45.99, Quantity: 80, Status: "Active", Date: "2024-01-10"},
		{ID: 9, Name: "Vacuum Cleaner", Category: "Home", Price: 199.99, Quantity: 20, Status: "Inactive", Date: "2024-01-05"},
		{ID: 10, Name: "Tennis Racket", Category: "Sports", Price: 129.99, Quantity: 40, Status: "Active", Date: "2024-01-25"},
	}
}

var (
	fillerCategories = []string{"Electronics", "Clothing", "Books", "Home", "Sports"}
	fillerStatuses   = []string{"Active", "Inactive"}
)

// fillerProducts generates n pseudo-random rows starting at firstID. Callers
// control the source so tests stay deterministic.
func fillerProducts(n, firstID int, src rand.Source) []domain.Product {
	rng := rand.New(src)
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		id := firstID + i
		products = append(products, domain.Product{
			ID:       id,
			Name:     fmt.Sprintf("Sample Product %d", id),
			Category: fillerCategories[rng.Intn(len(fillerCategories))],
			Price:    math.Round((rng.Float64()*2000+10)*100) / 100,
			Quantity: rng.Intn(200) + 1,
			Status:   fillerStatuses[rng.Intn(len(fillerStatuses))],
			Date:     fmt.Sprintf("2024-01-%02d", rng.Intn(28)+1),
		})
	}
	return products
}
