package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/repository"
	"github.com/vitasports/backend/internal/sqlerr"
)

type storeRepo interface {
	ListProducts(ctx context.Context, category *string) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Purchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.PurchaseResult, error)
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error)
}

type StoreService struct {
	store storeRepo
}

func NewStoreService(store storeRepo) *StoreService {
	return &StoreService{store: store}
}

func (s *StoreService) GetProducts(ctx context.Context, p *model.ProductsPayload) ([]model.Product, error) {
	var category *string
	if p.Category != "" {
		category = &p.Category
	}
	products, err := s.store.ListProducts(ctx, category)
	return nonNil(products), err
}

func (s *StoreService) GetProductByID(ctx context.Context, p *model.ProductIDPayload) (*model.Product, error) {
	return s.store.GetProduct(ctx, p.ProductID)
}

// Purchase charges quantity × price against the user's balance. A missing
// product or user are reported alike.
func (s *StoreService) Purchase(ctx context.Context, p *model.PurchasePayload) (*model.PurchaseResult, error) {
	quantity := p.Quantity
	if quantity == 0 {
		quantity = 1
	}

	res, err := s.store.Purchase(ctx, p.UserID, p.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientCredits):
			return nil, errInsufficientCredits()
		case sqlerr.IsNotFound(err):
			return nil, errs.NewNotFoundError("Product or user not found", true, nil)
		}
		return nil, err
	}

	return &res, nil
}

func (s *StoreService) GetPurchases(ctx context.Context, p *model.UserIDPayload) ([]model.Purchase, error) {
	purchases, err := s.store.ListPurchases(ctx, p.UserID)
	return nonNil(purchases), err
}
