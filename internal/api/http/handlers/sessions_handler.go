package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-catalog/internal/api/dto"
	"github.com/spec-kit/movie-catalog/internal/service"
	apperrors "github.com/spec-kit/movie-catalog/pkg/util"
)

// SessionsHandler exposes the admin-only session diagnostics endpoint.
// The keyspace scan behind it is unbounded, so it is only reachable here
// and from the audit worker, never on the authorization path.
type SessionsHandler struct {
	auth *service.AuthService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(authService *service.AuthService) *SessionsHandler {
	return &SessionsHandler{auth: authService}
}

// List GET /api/sessions.
func (h *SessionsHandler) List(c *fiber.Ctx) error {
	sessions, err := h.auth.ActiveSessions(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, dto.SessionResponse{UserID: session.UserID, Token: session.Token})
	}
	return c.JSON(fiber.Map{"data": items})
}
