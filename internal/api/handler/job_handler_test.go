package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

type stubJobService struct {
	submitFn  func(ctx context.Context, in ports.SubmitJobInput) (*ports.JobView, error)
	activeFn  func(ctx context.Context, customerID string) (*ports.JobView, error)
	startFn   func(ctx context.Context, customerID string) (*ports.JobView, error)
	cancelFn  func(ctx context.Context, customerID string) error
	advanceFn func(ctx context.Context, in ports.AdvanceJobInput) (*ports.JobView, error)
}

func (s *stubJobService) Submit(ctx context.Context, in ports.SubmitJobInput) (*ports.JobView, error) {
	return s.submitFn(ctx, in)
}

func (s *stubJobService) Active(ctx context.Context, customerID string) (*ports.JobView, error) {
	return s.activeFn(ctx, customerID)
}

func (s *stubJobService) StartPayment(ctx context.Context, customerID string) (*ports.JobView, error) {
	return s.startFn(ctx, customerID)
}

func (s *stubJobService) CancelPayment(ctx context.Context, customerID string) error {
	return s.cancelFn(ctx, customerID)
}

func (s *stubJobService) Advance(ctx context.Context, in ports.AdvanceJobInput) (*ports.JobView, error) {
	return s.advanceFn(ctx, in)
}

func (s *stubJobService) DiscardActive(ctx context.Context, customerID string) error {
	return nil
}

// newAuthedContext builds an echo context carrying the claims the Auth
// middleware would have injected.
func newAuthedContext(e *echo.Echo, method, target, body, username, role, shopID string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", username)
	c.Set("role", role)
	if shopID != "" {
		c.Set("shop_id", shopID)
	}
	return c, rec
}

func TestJobHandler_Submit_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubJobService{
		submitFn: func(ctx context.Context, in ports.SubmitJobInput) (*ports.JobView, error) {
			if in.CustomerID != "student_1" || in.FileName != "thesis-final.pdf" || in.PageCount != 15 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.JobView{
				ID:       "JOB-1",
				FileName: in.FileName,
				Status:   domain.StatusPendingPayment,
				Cost:     45,
			}, nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newAuthedContext(e, http.MethodPost, "/v1/jobs",
		`{"file_name":"thesis-final.pdf","page_count":15,"duplex":true}`,
		"student_1", "customer", "")

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp jobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "JOB-1" || resp.Cost != 45 || resp.Status != "pending_payment" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestJobHandler_Submit_RejectsZeroPages(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubJobService{
		submitFn: func(ctx context.Context, in ports.SubmitJobInput) (*ports.JobView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewJobHandler(stub)

	c, _ := newAuthedContext(e, http.MethodPost, "/v1/jobs",
		`{"file_name":"notes.pdf","page_count":0}`,
		"student_1", "customer", "")

	err := handler.Submit(c)
	var he *echo.HTTPError
	if err == nil || !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 error, got %v", err)
	}
}

func TestJobHandler_Submit_MissingClaims(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewJobHandler(&stubJobService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Submit(c)
	var he *echo.HTTPError
	if err == nil || !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestJobHandler_Active_Success(t *testing.T) {
	e := echo.New()
	stub := &stubJobService{
		activeFn: func(ctx context.Context, customerID string) (*ports.JobView, error) {
			return &ports.JobView{ID: "JOB-2", Status: domain.StatusPrinting}, nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newAuthedContext(e, http.MethodGet, "/v1/jobs/active", "", "student_1", "customer", "")

	if err := handler.Active(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJobHandler_StartPayment_Accepted(t *testing.T) {
	e := echo.New()
	stub := &stubJobService{
		startFn: func(ctx context.Context, customerID string) (*ports.JobView, error) {
			return &ports.JobView{ID: "JOB-3", Status: domain.StatusPendingPayment}, nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newAuthedContext(e, http.MethodPost, "/v1/jobs/active/payment", "", "student_1", "customer", "")

	if err := handler.StartPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func TestJobHandler_CancelPayment_NoContent(t *testing.T) {
	e := echo.New()
	called := false
	stub := &stubJobService{
		cancelFn: func(ctx context.Context, customerID string) error {
			called = true
			return nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newAuthedContext(e, http.MethodDelete, "/v1/jobs/active/payment", "", "student_1", "customer", "")

	if err := handler.CancelPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestOperatorHandler_AdvanceJob_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubJobService{
		advanceFn: func(ctx context.Context, in ports.AdvanceJobInput) (*ports.JobView, error) {
			if in.JobID != "JOB-4" || in.To != domain.StatusReady || in.Role != "operator" || in.ShopID != "SHOP-AB12CD" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.JobView{ID: in.JobID, Status: in.To}, nil
		},
	}
	handler := NewOperatorHandler(stub, nil)

	c, rec := newAuthedContext(e, http.MethodPost, "/v1/operator/jobs/JOB-4/status",
		`{"status":"ready"}`, "priya", "operator", "SHOP-AB12CD")
	c.SetParamNames("id")
	c.SetParamValues("JOB-4")

	if err := handler.AdvanceJob(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOperatorHandler_AdvanceJob_RejectsUnknownStatus(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewOperatorHandler(&stubJobService{}, nil)

	c, _ := newAuthedContext(e, http.MethodPost, "/v1/operator/jobs/JOB-5/status",
		`{"status":"teleported"}`, "priya", "operator", "SHOP-AB12CD")
	c.SetParamNames("id")
	c.SetParamValues("JOB-5")

	err := handler.AdvanceJob(c)
	var he *echo.HTTPError
	if err == nil || !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 error, got %v", err)
	}
}

func TestOperatorHandler_AdvanceJob_MissingShopClaim(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewOperatorHandler(&stubJobService{}, nil)

	c, _ := newAuthedContext(e, http.MethodPost, "/v1/operator/jobs/JOB-6/status",
		`{"status":"ready"}`, "priya", "operator", "")

	err := handler.AdvanceJob(c)
	var he *echo.HTTPError
	if err == nil || !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}
