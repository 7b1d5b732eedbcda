package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

// OperatorHandler exposes the shop console: lifecycle advances, shop setup,
// rates, and the pause switch. All routes sit behind the operator RBAC.
type OperatorHandler struct {
	jobs  ports.JobService
	shops ports.ShopService
}

func NewOperatorHandler(jobs ports.JobService, shops ports.ShopService) *OperatorHandler {
	return &OperatorHandler{jobs: jobs, shops: shops}
}

// AdvanceJob handles POST /v1/operator/jobs/:id/status.
//
// @Summary      Advance a job to the requested status
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Job identifier"
// @Param        body  body      advanceJobRequest  true  "Target status"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/operator/jobs/{id}/status [post]
func (h *OperatorHandler) AdvanceJob(c echo.Context) error {
	_, role, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req advanceJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.jobs.Advance(c.Request().Context(), ports.AdvanceJobInput{
		JobID:  c.Param("id"),
		To:     domain.JobStatus(req.Status),
		Role:   role,
		ShopID: shopID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(view))
}

// Configure handles POST /v1/operator/shop/configure.
//
// @Summary      Complete the one-time shop setup
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      configureShopRequest  true  "Shop setup"
// @Success      200   {object}  shopResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/operator/shop/configure [post]
func (h *OperatorHandler) Configure(c echo.Context) error {
	_, _, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req configureShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.shops.Configure(c.Request().Context(), ports.ConfigureShopInput{
		ShopID:         shopID,
		Name:           req.Name,
		Location:       req.Location,
		PrinterCount:   req.PrinterCount,
		PagesPerMin:    req.PagesPerMin,
		Rates:          toRateTable(req.Rates),
		VerifyLocation: req.VerifyLocation,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShopResponse(shop))
}

// Shop handles GET /v1/operator/shop.
//
// @Summary      Get the caller's shop record
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  shopResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/operator/shop [get]
func (h *OperatorHandler) Shop(c echo.Context) error {
	_, _, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	shop, err := h.shops.Get(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShopResponse(shop))
}

// UpdateRates handles PUT /v1/operator/shop/rates. Edits apply to future
// submissions only; in-flight jobs keep their frozen cost.
//
// @Summary      Replace the shop's rate table
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ratesRequest  true  "New rate table"
// @Success      200   {object}  shopResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/operator/shop/rates [put]
func (h *OperatorHandler) UpdateRates(c echo.Context) error {
	_, _, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req ratesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.shops.UpdateRates(c.Request().Context(), shopID, toRateTable(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShopResponse(shop))
}

// SetPaused handles POST /v1/operator/shop/pause.
//
// @Summary      Pause or resume new submissions
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pauseRequest  true  "Pause flag"
// @Success      200   {object}  shopResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/operator/shop/pause [post]
func (h *OperatorHandler) SetPaused(c echo.Context) error {
	_, _, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req pauseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	shop, err := h.shops.SetPaused(c.Request().Context(), shopID, req.Paused)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShopResponse(shop))
}

func toRateTable(r ratesRequest) domain.RateTable {
	return domain.RateTable{
		BWSingle:    r.BWSingle,
		BWDouble:    r.BWDouble,
		ColorSingle: r.ColorSingle,
		ColorDouble: r.ColorDouble,
	}
}

func toShopResponse(s *domain.Shop) shopResponse {
	return shopResponse{
		ID:           s.ID,
		Name:         s.Name,
		Location:     s.Location,
		Address:      s.Address,
		MapsURL:      s.MapsURL,
		PrinterCount: s.PrinterCount,
		PagesPerMin:  s.PagesPerMin,
		Rates: ratesRequest{
			BWSingle:    s.Rates.BWSingle,
			BWDouble:    s.Rates.BWDouble,
			ColorSingle: s.Rates.ColorSingle,
			ColorDouble: s.Rates.ColorDouble,
		},
		Paused:     s.Paused,
		Configured: s.Configured,
	}
}
