package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pickit/print-system/internal/core/domain"
)

type handshakeFixture struct {
	svc      *HandshakeService
	shops    *stubShopRepo
	sessions *stubSessionStore
	jobs     *JobService
	jobRepo  *stubJobRepo
}

func newHandshakeFixture(t *testing.T) *handshakeFixture {
	t.Helper()
	f := &handshakeFixture{
		shops:    newStubShopRepo(),
		sessions: newStubSessionStore(),
		jobRepo:  newStubJobRepo(),
	}
	for _, shop := range []*domain.Shop{
		{ID: "SHOP-AB12CD", Name: "Campus Fast-Print Hub", Configured: true, PagesPerMin: 20,
			Rates: domain.RateTable{BWSingle: 2, BWDouble: 3, ColorSingle: 10, ColorDouble: 15}},
		{ID: "SHOP-XY99ZZ", Name: "Dorm Copy Corner", Configured: true, PagesPerMin: 10,
			Rates: domain.RateTable{BWSingle: 1, BWDouble: 2, ColorSingle: 8, ColorDouble: 12}},
	} {
		if err := f.shops.Create(context.Background(), shop); err != nil {
			t.Fatalf("seed shop: %v", err)
		}
	}
	f.jobs = NewJobService(f.jobRepo, f.shops, &stubHistoryRepo{}, f.sessions, newStubGateway(), &recordingDispatcher{}, discardLogger)
	f.svc = NewHandshakeService(f.shops, f.sessions, f.jobs, discardLogger)
	return f
}

func (f *handshakeFixture) toScanning(t *testing.T, customerID string) {
	t.Helper()
	if _, err := f.svc.Begin(context.Background(), customerID); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := f.svc.Permission(context.Background(), customerID, true); err != nil {
		t.Fatalf("grant permission: %v", err)
	}
}

func TestHandshake_FlowToBound(t *testing.T) {
	f := newHandshakeFixture(t)

	view, err := f.svc.Begin(context.Background(), testCustomer)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if view.State != domain.ScanAwaitingPermission {
		t.Fatalf("expected awaiting_permission, got %s", view.State)
	}

	view, err = f.svc.Permission(context.Background(), testCustomer, true)
	if err != nil {
		t.Fatalf("permission: %v", err)
	}
	if view.State != domain.ScanScanning {
		t.Fatalf("expected scanning, got %s", view.State)
	}

	view, err = f.svc.Frame(context.Background(), testCustomer, "visit SHOP-AB12CD today")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if view.State != domain.ScanBound {
		t.Fatalf("expected bound, got %s", view.State)
	}
	if view.ShopID != "SHOP-AB12CD" || view.ShopName != "Campus Fast-Print Hub" {
		t.Fatalf("unexpected binding: %+v", view)
	}

	// Binding is persisted for the session.
	bound, err := f.sessions.Binding(context.Background(), testCustomer)
	if err != nil || bound != "SHOP-AB12CD" {
		t.Fatalf("expected persisted binding, got %q, %v", bound, err)
	}
}

func TestHandshake_MalformedFramesIgnored(t *testing.T) {
	f := newHandshakeFixture(t)
	f.toScanning(t, testCustomer)

	for _, raw := range []string{"SHOP-1", "lunch menu", "shop-ab12cd", ""} {
		view, err := f.svc.Frame(context.Background(), testCustomer, raw)
		if err != nil {
			t.Fatalf("frame %q: %v", raw, err)
		}
		if view.State != domain.ScanScanning {
			t.Fatalf("frame %q must leave the flow scanning, got %s", raw, view.State)
		}
	}
}

func TestHandshake_UnknownShopFrameIgnored(t *testing.T) {
	f := newHandshakeFixture(t)
	f.toScanning(t, testCustomer)

	view, err := f.svc.Frame(context.Background(), testCustomer, "SHOP-NO12HA")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if view.State != domain.ScanScanning {
		t.Fatalf("unknown shop must be ignored, got %s", view.State)
	}
}

func TestHandshake_FrameOutsideScanning(t *testing.T) {
	f := newHandshakeFixture(t)

	_, err := f.svc.Frame(context.Background(), testCustomer, "SHOP-AB12CD")
	if !errors.Is(err, domain.ErrScanNotActive) {
		t.Fatalf("expected ErrScanNotActive, got %v", err)
	}
}

func TestHandshake_DeniedIsRetryable(t *testing.T) {
	f := newHandshakeFixture(t)

	if _, err := f.svc.Begin(context.Background(), testCustomer); err != nil {
		t.Fatalf("begin: %v", err)
	}
	view, err := f.svc.Permission(context.Background(), testCustomer, false)
	if err != nil {
		t.Fatalf("deny permission: %v", err)
	}
	if view.State != domain.ScanDenied {
		t.Fatalf("expected denied, got %s", view.State)
	}

	// Retry goes back through awaiting_permission.
	view, err = f.svc.Begin(context.Background(), testCustomer)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if view.State != domain.ScanAwaitingPermission {
		t.Fatalf("expected awaiting_permission after retry, got %s", view.State)
	}
}

func TestHandshake_DuplicateFrameKeepsBinding(t *testing.T) {
	f := newHandshakeFixture(t)
	f.toScanning(t, testCustomer)

	if _, err := f.svc.Frame(context.Background(), testCustomer, "SHOP-AB12CD"); err != nil {
		t.Fatalf("first frame: %v", err)
	}

	// The scanner delivers the same code on several frames before it
	// stops; repeats must come back bound, never as an error.
	for i := 0; i < 3; i++ {
		view, err := f.svc.Frame(context.Background(), testCustomer, "SHOP-AB12CD")
		if err != nil {
			t.Fatalf("repeated frame %d: %v", i, err)
		}
		if view.State != domain.ScanBound || view.ShopID != "SHOP-AB12CD" {
			t.Fatalf("repeated frame must report the binding, got %+v", view)
		}
	}

	bound, _ := f.sessions.Binding(context.Background(), testCustomer)
	if bound != "SHOP-AB12CD" {
		t.Fatalf("binding lost: %q", bound)
	}
}

func TestHandshake_RebindDiscardsPreviousShopJob(t *testing.T) {
	f := newHandshakeFixture(t)
	f.toScanning(t, testCustomer)
	if _, err := f.svc.Frame(context.Background(), testCustomer, "SHOP-AB12CD"); err != nil {
		t.Fatalf("bind first shop: %v", err)
	}

	// Active job against the first shop.
	if _, err := f.jobs.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Scan a different shop: previous binding and its job must go.
	if err := f.svc.bind(context.Background(), testCustomer, "SHOP-XY99ZZ"); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	bound, _ := f.sessions.Binding(context.Background(), testCustomer)
	if bound != "SHOP-XY99ZZ" {
		t.Fatalf("expected new binding, got %q", bound)
	}
	if _, err := f.jobs.Active(context.Background(), testCustomer); !errors.Is(err, domain.ErrNoActiveJob) {
		t.Fatal("rebinding must discard the previous shop's job")
	}
}

func TestHandshake_Unbind(t *testing.T) {
	f := newHandshakeFixture(t)
	f.toScanning(t, testCustomer)
	if _, err := f.svc.Frame(context.Background(), testCustomer, "SHOP-AB12CD"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := f.jobs.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := f.svc.Unbind(context.Background(), testCustomer); err != nil {
		t.Fatalf("unbind: %v", err)
	}

	if bound, _ := f.sessions.Binding(context.Background(), testCustomer); bound != "" {
		t.Fatalf("unbind must clear the association, got %q", bound)
	}
	view, err := f.svc.State(context.Background(), testCustomer)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.State != domain.ScanIdle {
		t.Fatalf("expected idle after unbind, got %s", view.State)
	}
}

func TestHandshake_StateRestoredFromSessionStore(t *testing.T) {
	f := newHandshakeFixture(t)
	// A binding written by a previous process survives restarts.
	if err := f.sessions.SaveBinding(context.Background(), testCustomer, "SHOP-AB12CD"); err != nil {
		t.Fatalf("seed binding: %v", err)
	}

	view, err := f.svc.State(context.Background(), testCustomer)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.State != domain.ScanBound || view.ShopID != "SHOP-AB12CD" {
		t.Fatalf("expected restored binding, got %+v", view)
	}
}
