package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/lib/auth"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

func newAuthService(t *testing.T) (*AuthService, *mockAccounts, *mockJobs, *auth.TokenManager) {
	t.Helper()
	accounts := &mockAccounts{}
	jobs := &mockJobs{}
	tokens := auth.NewTokenManager("test-secret-key-0123456789", time.Hour)
	return NewAuthService(accounts, tokens, jobs, nopLogger()), accounts, jobs, tokens
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates the account and schedules emails", func(t *testing.T) {
		svc, accounts, jobs, tokens := newAuthService(t)

		accounts.On("GetCredentialsByEmail", ctx, "ana@example.com").Return(nil, sqlerr.NotFound("users"))
		accounts.On("Create", ctx, mock.MatchedBy(func(in model.NewUser) bool {
			return in.Email == "ana@example.com" &&
				in.Name == "Ana" &&
				in.Credits == model.InitialCredits &&
				in.TotalScore == 0 &&
				auth.VerifyPassword(in.PasswordHash, "secret1")
		})).Return(&model.User{ID: userID, Email: "ana@example.com", Name: "Ana", Credits: 100}, nil)
		jobs.On("EnqueueSignupEmails", ctx, userID.String(), "ana@example.com", "Ana").Return(nil)

		res, err := svc.SignUp(ctx, &model.SignUpPayload{Email: " Ana@Example.com ", Password: "secret1", Name: "Ana"})
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, userID, res.UserID)
		parsed, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)

		accounts.AssertExpectations(t)
		jobs.AssertExpectations(t)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc, accounts, _, _ := newAuthService(t)
		accounts.On("GetCredentialsByEmail", ctx, "ana@example.com").Return(&model.Credentials{ID: userID}, nil)

		_, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "ana@example.com", Password: "secret1", Name: "Ana"})

		httpErr := requireStatus(t, err, http.StatusConflict)
		assert.Equal(t, "User already exists with this email", httpErr.Message)
		accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique violation on insert is a conflict", func(t *testing.T) {
		svc, accounts, _, _ := newAuthService(t)
		accounts.On("GetCredentialsByEmail", ctx, "ana@example.com").Return(nil, sqlerr.NotFound("users"))
		accounts.On("Create", ctx, mock.Anything).Return(nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "ana@example.com", Password: "secret1", Name: "Ana"})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("enqueue failure does not fail the sign-up", func(t *testing.T) {
		svc, accounts, jobs, _ := newAuthService(t)
		accounts.On("GetCredentialsByEmail", ctx, "ana@example.com").Return(nil, sqlerr.NotFound("users"))
		accounts.On("Create", ctx, mock.Anything).Return(&model.User{ID: userID, Email: "ana@example.com", Name: "Ana"}, nil)
		jobs.On("EnqueueSignupEmails", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		res, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "ana@example.com", Password: "secret1", Name: "Ana"})
		require.NoError(t, err)
		assert.True(t, res.Success)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		creds      *model.Credentials
		lookupErr  error
		password   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:     "valid credentials",
			creds:    &model.Credentials{ID: userID, Email: "ana@example.com", Name: "Ana", PasswordHash: &hash},
			password: "secret1",
		},
		{
			name:       "unknown email",
			lookupErr:  sqlerr.NotFound("users"),
			password:   "secret1",
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found with this email",
		},
		{
			name:       "wrong password",
			creds:      &model.Credentials{ID: userID, Email: "ana@example.com", Name: "Ana", PasswordHash: &hash},
			password:   "wrong-password",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "account without password",
			creds:      &model.Credentials{ID: userID, Email: "ana@example.com", Name: "Ana"},
			password:   "secret1",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, _, _ := newAuthService(t)
			accounts.On("GetCredentialsByEmail", ctx, "ana@example.com").Return(tt.creds, tt.lookupErr)

			res, err := svc.SignIn(ctx, &model.SignInPayload{Email: "ANA@example.com", Password: tt.password})

			if tt.wantStatus != 0 {
				httpErr := requireStatus(t, err, tt.wantStatus)
				assert.Equal(t, tt.wantMsg, httpErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, res.UserID)
			assert.NotEmpty(t, res.Token)
			assert.True(t, res.Success)
		})
	}
}
