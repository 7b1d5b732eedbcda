package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

// SessionHandler serves the client's bootstrap read: who am I, what does my
// profile look like, and which shop (if any) is my session bound to.
type SessionHandler struct {
	sessions ports.SessionStore
}

func NewSessionHandler(sessions ports.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Username string              `json:"username"`
	Role     string              `json:"role"`
	Profile  *domain.UserProfile `json:"profile,omitempty"`
	ShopID   string              `json:"shop_id,omitempty"`
}

// State handles GET /v1/session.
//
// @Summary      Read the session bootstrap state
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) State(c echo.Context) error {
	username, role, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	resp := sessionResponse{Username: username, Role: role}

	// The KV store is the source of truth for profile and binding; absent
	// keys just leave the fields empty.
	if stored, err := h.sessions.Role(ctx, username); err == nil && stored != "" {
		resp.Role = stored
	}
	if profile, err := h.sessions.Profile(ctx, username); err == nil {
		resp.Profile = profile
	}
	if shopID, err := h.sessions.Binding(ctx, username); err == nil {
		resp.ShopID = shopID
	}

	return c.JSON(http.StatusOK, resp)
}
