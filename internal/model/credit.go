package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditType string

const (
	CreditTypeEarn     CreditType = "earn"
	CreditTypeSpend    CreditType = "spend"
	CreditTypeBonus    CreditType = "bonus"
	CreditTypeRefund   CreditType = "refund"
	CreditTypePurchase CreditType = "purchase"
)

// CreditTransaction is an append-only ledger row. Amount is signed.
type CreditTransaction struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"userId" db:"user_id"`
	Amount        int64      `json:"amount" db:"amount"`
	Type          CreditType `json:"type" db:"type"`
	Description   string     `json:"description" db:"description"`
	ReferenceID   *string    `json:"referenceId,omitempty" db:"reference_id"`
	ReferenceType *string    `json:"referenceType,omitempty" db:"reference_type"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

type NewCreditTransaction struct {
	UserID        uuid.UUID
	Amount        int64
	Type          CreditType
	Description   string
	ReferenceID   *string
	ReferenceType *string
	ExpiresAt     *time.Time
}

// CreditResult reports the ledger row written and the new cached balance.
type CreditResult struct {
	TransactionID uuid.UUID
	Balance       int64
}
