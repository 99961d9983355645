package model

import (
	"time"

	"github.com/google/uuid"
)

// Product prices are denominated in credits.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Purchase struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	ProductID   uuid.UUID `json:"productId" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	TotalCost   int64     `json:"totalCost" db:"total_cost"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PurchaseResult is returned after a successful checkout.
type PurchaseResult struct {
	PurchaseID uuid.UUID `json:"purchaseId"`
	TotalCost  int64     `json:"totalCost"`
	Balance    int64     `json:"balance"`
}
