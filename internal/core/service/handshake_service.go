package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/api/metrics"
	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

// JobDiscarder is the slice of the job service the handshake needs when a
// rebinding invalidates the previous shop's job.
type JobDiscarder interface {
	DiscardActive(ctx context.Context, customerID string) error
}

// HandshakeService pairs a customer session with a shop. The scan flow state
// is in-memory per session; the committed binding is persisted to the session
// store so it survives restarts.
type HandshakeService struct {
	shops    ports.ShopRepository
	sessions ports.SessionStore
	jobs     JobDiscarder
	log      zerolog.Logger

	mu     sync.Mutex
	states map[string]domain.ScanState
}

func NewHandshakeService(shops ports.ShopRepository, sessions ports.SessionStore, jobs JobDiscarder, log zerolog.Logger) *HandshakeService {
	return &HandshakeService{
		shops:    shops,
		sessions: sessions,
		jobs:     jobs,
		log:      log,
		states:   make(map[string]domain.ScanState),
	}
}

// Begin moves the flow from idle to awaiting_permission.
func (s *HandshakeService) Begin(ctx context.Context, customerID string) (*ports.HandshakeView, error) {
	if err := s.transition(customerID, domain.ScanAwaitingPermission); err != nil {
		return nil, err
	}
	return s.State(ctx, customerID)
}

// Permission records the camera permission outcome.
func (s *HandshakeService) Permission(ctx context.Context, customerID string, granted bool) (*ports.HandshakeView, error) {
	next := domain.ScanScanning
	if !granted {
		next = domain.ScanDenied
	}
	if err := s.transition(customerID, next); err != nil {
		return nil, err
	}
	return s.State(ctx, customerID)
}

// Frame feeds one decoded candidate string from the scanner. The first
// candidate containing a well-formed shop identifier commits the binding;
// everything else is ignored and the flow stays in scanning.
func (s *HandshakeService) Frame(ctx context.Context, customerID, raw string) (*ports.HandshakeView, error) {
	switch s.current(customerID) {
	case domain.ScanScanning:
	case domain.ScanBound:
		// The decoder keeps delivering frames for a moment after the
		// commit; repeats are a no-op, not an error.
		return s.State(ctx, customerID)
	default:
		return nil, domain.ErrScanNotActive
	}

	shopID, ok := domain.ExtractShopID(raw)
	if !ok {
		metrics.HandshakeFramesTotal.WithLabelValues("noise").Inc()
		return s.State(ctx, customerID)
	}

	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		// A frame naming an unknown shop is scanner noise, not a failure.
		metrics.HandshakeFramesTotal.WithLabelValues("unknown_shop").Inc()
		s.log.Debug().Str("shop_id", shopID).Msg("frame matched grammar but no such shop")
		return s.State(ctx, customerID)
	}

	if err := s.bind(ctx, customerID, shop.ID); err != nil {
		return nil, err
	}

	metrics.HandshakeFramesTotal.WithLabelValues("bound").Inc()
	s.setState(customerID, domain.ScanBound)
	s.log.Info().Str("customer_id", customerID).Str("shop_id", shop.ID).Msg("shop bound")

	return &ports.HandshakeView{State: domain.ScanBound, ShopID: shop.ID, ShopName: shop.Name}, nil
}

// bind commits the association. Binding to a new shop first clears the prior
// binding and discards any non-terminal job tied to the previous shop.
func (s *HandshakeService) bind(ctx context.Context, customerID, shopID string) error {
	prior, err := s.sessions.Binding(ctx, customerID)
	if err != nil {
		return fmt.Errorf("bind: read prior binding: %w", err)
	}
	if prior == shopID {
		return nil // duplicate frame for the same shop, binding already holds
	}
	if prior != "" {
		if err := s.jobs.DiscardActive(ctx, customerID); err != nil {
			return fmt.Errorf("bind: discard job of previous shop: %w", err)
		}
		if err := s.sessions.ClearBinding(ctx, customerID); err != nil {
			return fmt.Errorf("bind: clear prior binding: %w", err)
		}
	}
	if err := s.sessions.SaveBinding(ctx, customerID, shopID); err != nil {
		return fmt.Errorf("bind: persist binding: %w", err)
	}
	return nil
}

// State returns the current flow snapshot. A binding persisted by an earlier
// session is reported as bound even when no scan ran in this process.
func (s *HandshakeService) State(ctx context.Context, customerID string) (*ports.HandshakeView, error) {
	shopID, err := s.sessions.Binding(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if shopID != "" {
		view := &ports.HandshakeView{State: domain.ScanBound, ShopID: shopID}
		if shop, err := s.shops.FindByID(ctx, shopID); err == nil {
			view.ShopName = shop.Name
		}
		return view, nil
	}
	return &ports.HandshakeView{State: s.current(customerID)}, nil
}

// Unbind clears the association and discards any non-terminal job.
func (s *HandshakeService) Unbind(ctx context.Context, customerID string) error {
	if err := s.jobs.DiscardActive(ctx, customerID); err != nil {
		return err
	}
	if err := s.sessions.ClearBinding(ctx, customerID); err != nil {
		return err
	}
	s.setState(customerID, domain.ScanIdle)
	s.log.Info().Str("customer_id", customerID).Msg("shop unbound")
	return nil
}

func (s *HandshakeService) current(customerID string) domain.ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[customerID]; ok {
		return st
	}
	return domain.ScanIdle
}

func (s *HandshakeService) setState(customerID string, st domain.ScanState) {
	s.mu.Lock()
	s.states[customerID] = st
	s.mu.Unlock()
}

func (s *HandshakeService) transition(customerID string, next domain.ScanState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.states[customerID]
	if !ok {
		cur = domain.ScanIdle
	}
	if cur == next {
		return nil
	}
	if !cur.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, cur, next)
	}
	s.states[customerID] = next
	return nil
}
