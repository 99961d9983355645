package model

import (
	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type ProductsPayload struct {
	Category string `json:"category" query:"category" validate:"omitempty,max=64"`
}

func (p *ProductsPayload) Validate() error {
	return validation.Struct(p)
}

type ProductIDPayload struct {
	ProductID uuid.UUID `json:"productId" query:"productId" validate:"required"`
}

func (p *ProductIDPayload) Validate() error {
	return validation.Struct(p)
}

type PurchasePayload struct {
	UserID    uuid.UUID `json:"userId" validate:"required"`
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0,lte=100"`
}

func (p *PurchasePayload) Validate() error {
	return validation.Struct(p)
}
