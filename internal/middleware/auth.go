package middleware

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/server"
)

type tokenParser interface {
	Parse(tokenString string) (uuid.UUID, error)
}

// AuthMiddleware resolves bearer tokens issued by auth:signIn and auth:signUp.
type AuthMiddleware struct {
	server *server.Server
	tokens tokenParser
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: s.Tokens,
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// OptionalAuth sets user_id when the request carries a valid token. Requests
// without one, or with an invalid one, continue anonymously and protected
// functions reject them later.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return next(c)
		}

		userID, err := auth.tokens.Parse(token)
		if err != nil {
			auth.server.Logger.Debug().
				Err(err).
				Str("function", "OptionalAuth").
				Str("request_id", GetRequestID(c)).
				Msg("ignoring invalid bearer token")
			return next(c)
		}

		c.Set(UserIDKey, userID.String())
		return next(c)
	}
}

// RequireAuth rejects requests that OptionalAuth left anonymous.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if GetUserID(c) == "" {
			auth.server.Logger.Warn().
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("request without valid credentials")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		return next(c)
	}
}
