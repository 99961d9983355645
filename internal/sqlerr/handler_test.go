package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "unique violation names the column",
			err:         fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_ALREADY_EXISTS",
			wantMessage: "A User with this Email already exists",
		},
		{
			name:        "foreign key violation uses the id column",
			err:         &pgconn.PgError{Code: "23503", TableName: "test_results", ColumnName: "user_id"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "TEST_RESULT_NOT_FOUND",
			wantMessage: "The referenced User does not exist",
		},
		{
			name:        "not null violation",
			err:         &pgconn.PgError{Code: "23502", TableName: "mentors", ColumnName: "name"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "MENTOR_REQUIRED",
			wantMessage: "The Name is required",
		},
		{
			name:        "tagged no rows",
			err:         fmt.Errorf("get mentor: %w", NotFound("mentors")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Mentor not found",
		},
		{
			name:        "multi word table",
			err:         NotFound("body_logs"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Body Log not found",
		},
		{
			name:        "untagged no rows",
			err:         fmt.Errorf("scan: %w", pgx.ErrNoRows),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Resource not found",
		},
		{
			name:        "numeric overflow",
			err:         fmt.Errorf("add credits: %w", &pgconn.PgError{Code: "22003", Message: "bigint out of range"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "A numeric value is out of range",
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(tt.err))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, httpErr.Code)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, httpErr.Message)
			}
		})
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewForbiddenError("nope", true)
	assert.Same(t, original, HandleError(original))
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("outer: %w", NotFound("users"))))
	assert.False(t, IsNotFound(errors.New("users")))
}
