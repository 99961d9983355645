package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/lib/auth"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

type accountStore interface {
	Create(ctx context.Context, in model.NewUser) (*model.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*model.Credentials, error)
}

type tokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

type AuthService struct {
	users  accountStore
	tokens tokenIssuer
	jobs   TaskEnqueuer
	logger *zerolog.Logger
}

func NewAuthService(users accountStore, tokens tokenIssuer, jobs TaskEnqueuer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		jobs:   jobs,
		logger: logger,
	}
}

func errUserExists() error {
	return errs.NewConflictError("User already exists with this email", true, nil)
}

// SignUp creates the account, its leaderboard row and schedules the
// onboarding emails. Email scheduling never fails the sign-up.
func (s *AuthService) SignUp(ctx context.Context, p *model.SignUpPayload) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))

	_, err := s.users.GetCredentialsByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, errUserExists()
	case !sqlerr.IsNotFound(err):
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.NewUser{
		Email:        email,
		Name:         strings.TrimSpace(p.Name),
		PasswordHash: hash,
		Credits:      model.InitialCredits,
	})
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errUserExists()
		}
		return nil, err
	}

	if err := s.jobs.EnqueueSignupEmails(ctx, user.ID.String(), user.Email, user.Name); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to enqueue signup emails")
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user signed up")

	return s.respond(user.ID, user.Email, user.Name)
}

func (s *AuthService) SignIn(ctx context.Context, p *model.SignInPayload) (*model.AuthResponse, error) {
	creds, err := s.users.GetCredentialsByEmail(ctx, strings.ToLower(strings.TrimSpace(p.Email)))
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("User not found with this email", true, nil)
		}
		return nil, err
	}

	if creds.PasswordHash == nil || !auth.VerifyPassword(*creds.PasswordHash, p.Password) {
		return nil, errs.NewUnauthorizedError("Invalid credentials", true)
	}

	return s.respond(creds.ID, creds.Email, creds.Name)
}

func (s *AuthService) respond(id uuid.UUID, email, name string) (*model.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.AuthResponse{
		UserID:    id,
		Email:     email,
		Name:      name,
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
