package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddCreditPayload_Validate(t *testing.T) {
	valid := func(amount int64) *AddCreditPayload {
		return &AddCreditPayload{
			UserID:      uuid.New(),
			Amount:      amount,
			Type:        CreditTypeBonus,
			Description: "Weekly bonus",
		}
	}

	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{name: "credit", amount: 250},
		{name: "debit", amount: -40},
		{name: "upper bound", amount: 1_000_000},
		{name: "lower bound", amount: -1_000_000},
		{name: "zero", amount: 0, wantErr: true},
		{name: "too large", amount: 1_000_001, wantErr: true},
		{name: "near int64 max", amount: 1 << 62, wantErr: true},
		{name: "too small", amount: -1_000_001, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := valid(tt.amount).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
