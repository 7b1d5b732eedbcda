package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

type stubHandshakeService struct {
	beginFn      func(ctx context.Context, customerID string) (*ports.HandshakeView, error)
	permissionFn func(ctx context.Context, customerID string, granted bool) (*ports.HandshakeView, error)
	frameFn      func(ctx context.Context, customerID, raw string) (*ports.HandshakeView, error)
	stateFn      func(ctx context.Context, customerID string) (*ports.HandshakeView, error)
	unbindFn     func(ctx context.Context, customerID string) error
}

func (s *stubHandshakeService) Begin(ctx context.Context, customerID string) (*ports.HandshakeView, error) {
	return s.beginFn(ctx, customerID)
}

func (s *stubHandshakeService) Permission(ctx context.Context, customerID string, granted bool) (*ports.HandshakeView, error) {
	return s.permissionFn(ctx, customerID, granted)
}

func (s *stubHandshakeService) Frame(ctx context.Context, customerID, raw string) (*ports.HandshakeView, error) {
	return s.frameFn(ctx, customerID, raw)
}

func (s *stubHandshakeService) State(ctx context.Context, customerID string) (*ports.HandshakeView, error) {
	return s.stateFn(ctx, customerID)
}

func (s *stubHandshakeService) Unbind(ctx context.Context, customerID string) error {
	return s.unbindFn(ctx, customerID)
}

func TestHandshakeHandler_Frame_Binds(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubHandshakeService{
		frameFn: func(ctx context.Context, customerID, raw string) (*ports.HandshakeView, error) {
			if raw != "visit SHOP-AB12CD today" {
				t.Fatalf("raw frame not forwarded: %q", raw)
			}
			return &ports.HandshakeView{
				State:    domain.ScanBound,
				ShopID:   "SHOP-AB12CD",
				ShopName: "Campus Fast-Print Hub",
			}, nil
		},
	}
	handler := NewHandshakeHandler(stub)

	c, rec := newAuthedContext(e, http.MethodPost, "/v1/handshake/frames",
		`{"raw":"visit SHOP-AB12CD today"}`, "student_1", "customer", "")

	if err := handler.Frame(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp handshakeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.State != "bound" || resp.ShopID != "SHOP-AB12CD" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandshakeHandler_Permission_ForwardsOutcome(t *testing.T) {
	e := echo.New()
	stub := &stubHandshakeService{
		permissionFn: func(ctx context.Context, customerID string, granted bool) (*ports.HandshakeView, error) {
			if granted {
				t.Fatalf("expected denied permission")
			}
			return &ports.HandshakeView{State: domain.ScanDenied}, nil
		},
	}
	handler := NewHandshakeHandler(stub)

	c, rec := newAuthedContext(e, http.MethodPost, "/v1/handshake/permission",
		`{"granted":false}`, "student_1", "customer", "")

	if err := handler.Permission(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandshakeHandler_Unbind_NoContent(t *testing.T) {
	e := echo.New()
	called := false
	stub := &stubHandshakeService{
		unbindFn: func(ctx context.Context, customerID string) error {
			called = true
			return nil
		},
	}
	handler := NewHandshakeHandler(stub)

	c, rec := newAuthedContext(e, http.MethodDelete, "/v1/handshake", "", "student_1", "customer", "")

	if err := handler.Unbind(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
