package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/ports"
)

// JobHandler exposes the customer side of the job lifecycle.
type JobHandler struct {
	jobs ports.JobService
}

func NewJobHandler(jobs ports.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Submit handles POST /v1/jobs.
//
// @Summary      Submit a new print job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitJobRequest  true  "Print job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Submit(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.jobs.Submit(c.Request().Context(), ports.SubmitJobInput{
		CustomerID: username,
		FileName:   req.FileName,
		PageCount:  req.PageCount,
		Color:      req.Color,
		Duplex:     req.Duplex,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toJobResponse(view))
}

// Active handles GET /v1/jobs/active.
//
// @Summary      Get the caller's active job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/active [get]
func (h *JobHandler) Active(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.jobs.Active(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(view))
}

// StartPayment handles POST /v1/jobs/active/payment.
//
// @Summary      Start the payment for the pending job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/jobs/active/payment [post]
func (h *JobHandler) StartPayment(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.jobs.StartPayment(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, toJobResponse(view))
}

// CancelPayment handles DELETE /v1/jobs/active/payment.
//
// @Summary      Abandon an in-flight payment
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      204  "payment abandoned"
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/active/payment [delete]
func (h *JobHandler) CancelPayment(c echo.Context) error {
	username, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.jobs.CancelPayment(c.Request().Context(), username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toJobResponse(v *ports.JobView) jobResponse {
	return jobResponse{
		ID:              v.ID,
		ShopID:          v.ShopID,
		FileName:        v.FileName,
		PageCount:       v.PageCount,
		Color:           v.Color,
		Duplex:          v.Duplex,
		Status:          string(v.Status),
		Cost:            v.Cost,
		CreatedAt:       v.CreatedAt,
		ExpectedMinutes: v.ExpectedMinutes,
		EstimatedReady:  v.EstimatedReady,
	}
}
