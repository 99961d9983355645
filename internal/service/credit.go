package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/repository"
)

// creditExpiry applies to transactions tied to a reference such as a
// challenge or purchase.
const creditExpiry = 365 * 24 * time.Hour

type creditStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CreditTransaction, error)
	Add(ctx context.Context, in model.NewCreditTransaction) (model.CreditResult, error)
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
}

type CreditService struct {
	credits creditStore
	now     func() time.Time
}

func NewCreditService(credits creditStore) *CreditService {
	return &CreditService{credits: credits, now: time.Now}
}

func errInsufficientCredits() error {
	return errs.NewBadRequestError("Insufficient credits", true, nil, nil, nil)
}

func (s *CreditService) GetByUser(ctx context.Context, p *model.UserIDPayload) (*model.CreditHistory, error) {
	txs, err := s.credits.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	history := &model.CreditHistory{Transactions: txs}
	for _, tx := range txs {
		history.TotalCredits += tx.Amount
	}
	if history.Transactions == nil {
		history.Transactions = []model.CreditTransaction{}
	}

	return history, nil
}

func (s *CreditService) AddTransaction(ctx context.Context, p *model.AddCreditPayload) (*model.CreditAddResult, error) {
	in := model.NewCreditTransaction{
		UserID:        p.UserID,
		Amount:        p.Amount,
		Type:          p.Type,
		Description:   p.Description,
		ReferenceID:   p.ReferenceID,
		ReferenceType: p.ReferenceType,
	}
	if p.ReferenceType != nil {
		expires := s.now().Add(creditExpiry)
		in.ExpiresAt = &expires
	}

	res, err := s.credits.Add(ctx, in)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return nil, errInsufficientCredits()
		}
		return nil, err
	}

	return &model.CreditAddResult{
		Success:       true,
		TransactionID: res.TransactionID,
		Balance:       res.Balance,
		Message:       creditMessage(p.Amount),
	}, nil
}

func (s *CreditService) GetBalance(ctx context.Context, p *model.UserIDPayload) (*model.CreditBalance, error) {
	credits, err := s.credits.Balance(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &model.CreditBalance{Credits: credits, UserID: p.UserID}, nil
}

func creditMessage(amount int64) string {
	if amount > 0 {
		return fmt.Sprintf("Added %d credits", amount)
	}
	return fmt.Sprintf("Spent %d credits", -amount)
}
