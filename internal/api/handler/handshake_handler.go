package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/ports"
)

// HandshakeHandler drives the customer's pairing flow with a shop.
type HandshakeHandler struct {
	handshakes ports.HandshakeService
}

func NewHandshakeHandler(handshakes ports.HandshakeService) *HandshakeHandler {
	return &HandshakeHandler{handshakes: handshakes}
}

// Begin handles POST /v1/handshake/begin.
//
// @Summary      Start the pairing flow
// @Tags         handshake
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handshakeResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/handshake/begin [post]
func (h *HandshakeHandler) Begin(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.handshakes.Begin(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHandshakeResponse(view))
}

// Permission handles POST /v1/handshake/permission, recording the camera
// permission outcome.
//
// @Summary      Record the camera permission outcome
// @Tags         handshake
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      permissionRequest  true  "Permission outcome"
// @Success      200   {object}  handshakeResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/handshake/permission [post]
func (h *HandshakeHandler) Permission(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.handshakes.Permission(c.Request().Context(), username, req.Granted)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHandshakeResponse(view))
}

// Frame handles POST /v1/handshake/frames. The device's decoder posts each
// decoded candidate string; non-matching frames leave the flow in scanning.
//
// @Summary      Feed one decoded scanner frame
// @Tags         handshake
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      frameRequest  true  "Decoded frame text"
// @Success      200   {object}  handshakeResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/handshake/frames [post]
func (h *HandshakeHandler) Frame(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req frameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.handshakes.Frame(c.Request().Context(), username, req.Raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHandshakeResponse(view))
}

// State handles GET /v1/handshake.
//
// @Summary      Get the current pairing state
// @Tags         handshake
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handshakeResponse
// @Router       /v1/handshake [get]
func (h *HandshakeHandler) State(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.handshakes.State(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHandshakeResponse(view))
}

// Unbind handles DELETE /v1/handshake.
//
// @Summary      Disconnect from the bound shop
// @Tags         handshake
// @Produce      json
// @Security     BearerAuth
// @Success      204  "binding cleared"
// @Router       /v1/handshake [delete]
func (h *HandshakeHandler) Unbind(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.handshakes.Unbind(c.Request().Context(), username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toHandshakeResponse(v *ports.HandshakeView) handshakeResponse {
	return handshakeResponse{
		State:    string(v.State),
		ShopID:   v.ShopID,
		ShopName: v.ShopName,
	}
}
