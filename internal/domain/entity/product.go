package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item owned by exactly one User.
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	Description string
	OwnerID     uuid.UUID // Set at creation, never reassigned.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether userID owns the product.
func (p *Product) OwnedBy(userID uuid.UUID) bool {
	return p != nil && p.OwnerID == userID
}

// ProductFields are the mutable parts of a Product.
type ProductFields struct {
	Name        string
	Price       float64
	Description string
}
