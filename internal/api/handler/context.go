package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - username and role must be non-empty (presence proves the middleware ran).
//   - operator role requires a non-empty shop_id; without it the JWT is
//     structurally valid but operationally unusable, reject with 401.
func ctxClaims(c echo.Context) (username, role, shopID string, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if username == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	shopID, _ = c.Get("shop_id").(string)
	if role == domain.RoleOperator && shopID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing shop identity")
	}

	return username, role, shopID, nil
}
