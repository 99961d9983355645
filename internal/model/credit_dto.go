package model

import (
	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type AddCreditPayload struct {
	UserID        uuid.UUID  `json:"userId" validate:"required"`
	Amount        int64      `json:"amount" validate:"ne=0,gte=-1000000,lte=1000000"`
	Type          CreditType `json:"type" validate:"required,oneof=earn spend bonus refund purchase"`
	Description   string     `json:"description" validate:"required,max=500"`
	ReferenceID   *string    `json:"referenceId" validate:"omitempty,max=100"`
	ReferenceType *string    `json:"referenceType" validate:"omitempty,max=50"`
}

func (p *AddCreditPayload) Validate() error {
	return validation.Struct(p)
}

type CreditHistory struct {
	Transactions []CreditTransaction `json:"transactions"`
	TotalCredits int64               `json:"totalCredits"`
}

type CreditAddResult struct {
	Success       bool      `json:"success"`
	TransactionID uuid.UUID `json:"transactionId"`
	Balance       int64     `json:"balance"`
	Message       string    `json:"message"`
}

type CreditBalance struct {
	Credits int64     `json:"credits"`
	UserID  uuid.UUID `json:"userId"`
}
