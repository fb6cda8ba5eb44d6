package domain

import "context"

// DateFormat is the layout used for the store-assigned creation date.
const DateFormat = "2006-01-02"

// Product represents one catalog entry.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
	Date     string  `json:"date"`
}

// Draft holds the client-supplied fields for a new product. The store
// assigns ID and Date.
type Draft struct {
	Name     string
	Category string
	Price    float64
	Quantity int
	Status   string
}

// Patch is a partial update. Nil fields keep their current value;
// ID and Date are never touched by an update.
type Patch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	Status   *string
}

// Apply merges the patch over p, field by field.
func (patch Patch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
}

// Repository defines the contract for product storage. Implementations keep
// insertion order in ListAll and never reuse an ID after delete.
type Repository interface {
	Insert(ctx context.Context, draft Draft) (*Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Update(ctx context.Context, id int, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int) (*Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Ping(ctx context.Context) error
}
