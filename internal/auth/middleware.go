package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-catalog/internal/domain"
	apperrors "github.com/spec-kit/movie-catalog/pkg/util"
)

const principalKey = "auth_principal"

// SessionCookie is the cookie carrying the credential.
const SessionCookie = "session"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID string
	Role   domain.Role
}

// SessionMiddleware validates the session cookie on protected routes.
// A credential authorizes a request only when its signature and expiry
// check out AND the session store still holds the identical token for
// that user; logout or a newer login revokes older tokens.
type SessionMiddleware struct {
	tokens   *TokenManager
	sessions *SessionStore
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, sessions *SessionStore) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, sessions: sessions}
}

// Handle authenticates the request and attaches the principal.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookie)
	if token == "" {
		return apperrors.NewUnauthorized("session expired, please log in again")
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		return apperrors.NewUnauthorized("session expired, please log in again")
	}

	stored, err := m.sessions.Get(c.UserContext(), claims.UserID)
	if errors.Is(err, ErrNoSession) {
		return apperrors.NewUnauthorized("session expired, please log in again")
	}
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if stored != token {
		// A newer login replaced this credential.
		return apperrors.NewUnauthorized("session expired, please log in again")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
