package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/repository"
	"github.com/vitasports/backend/internal/sqlerr"
)

func TestStoreService_Purchase(t *testing.T) {
	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		quantity   int
		wantQty    int
		repoErr    error
		wantStatus int
		wantMsg    string
	}{
		{name: "defaults to one", quantity: 0, wantQty: 1},
		{name: "explicit quantity", quantity: 3, wantQty: 3},
		{
			name: "insufficient credits", quantity: 1, wantQty: 1,
			repoErr:    fmt.Errorf("purchase: %w", repository.ErrInsufficientCredits),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Insufficient credits",
		},
		{
			name: "missing product", quantity: 1, wantQty: 1,
			repoErr:    sqlerr.NotFound("products"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Product or user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			store.On("Purchase", ctx, userID, productID, tt.wantQty).
				Return(model.PurchaseResult{PurchaseID: uuid.New(), TotalCost: 60, Balance: 40}, tt.repoErr)

			res, err := NewStoreService(store).Purchase(ctx, &model.PurchasePayload{
				UserID: userID, ProductID: productID, Quantity: tt.quantity,
			})

			if tt.wantStatus != 0 {
				httpErr := requireStatus(t, err, tt.wantStatus)
				assert.Equal(t, tt.wantMsg, httpErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(40), res.Balance)
			store.AssertExpectations(t)
		})
	}
}

func TestStoreService_GetProducts_Category(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{}
	category := "equipment"
	store.On("ListProducts", ctx, &category).Return(nil, nil)
	store.On("ListProducts", ctx, (*string)(nil)).Return([]model.Product{{Name: "Band"}}, nil)

	svc := NewStoreService(store)

	got, err := svc.GetProducts(ctx, &model.ProductsPayload{Category: category})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = svc.GetProducts(ctx, &model.ProductsPayload{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
