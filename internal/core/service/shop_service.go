package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

var errInvalidRates = errors.New("rates must be non-negative")
var errInvalidShopSetup = errors.New("printer count and pages per minute must be positive")

// ShopService manages shop configuration, the rate table, and the pause flag.
type ShopService struct {
	shops    ports.ShopRepository
	geocoder ports.Geocoder
	log      zerolog.Logger
}

func NewShopService(shops ports.ShopRepository, geocoder ports.Geocoder, log zerolog.Logger) *ShopService {
	return &ShopService{shops: shops, geocoder: geocoder, log: log}
}

// Configure completes the one-time shop setup. The external place lookup is
// best effort: on failure the shop keeps its manually entered location.
func (s *ShopService) Configure(ctx context.Context, in ports.ConfigureShopInput) (*domain.Shop, error) {
	shop, err := s.shops.FindByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.Configured {
		return nil, domain.ErrShopAlreadyConfigured
	}
	if !in.Rates.Valid() {
		return nil, errInvalidRates
	}
	if in.PrinterCount < 1 || in.PagesPerMin <= 0 {
		return nil, errInvalidShopSetup
	}

	shop.Name = in.Name
	shop.Location = in.Location
	shop.PrinterCount = in.PrinterCount
	shop.PagesPerMin = in.PagesPerMin
	shop.Rates = in.Rates
	shop.Configured = true

	if in.VerifyLocation && s.geocoder != nil {
		if place, err := s.geocoder.Lookup(ctx, in.Name, in.Location); err != nil {
			s.log.Warn().Err(err).Str("shop_id", shop.ID).Msg("place lookup failed, keeping manual location")
		} else {
			shop.Address = place.Address
			shop.MapsURL = place.MapsURL
		}
	}

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("configure shop: %w", err)
	}

	s.log.Info().Str("shop_id", shop.ID).Str("name", shop.Name).Msg("shop configured")
	return shop, nil
}

func (s *ShopService) Get(ctx context.Context, shopID string) (*domain.Shop, error) {
	return s.shops.FindByID(ctx, shopID)
}

// UpdateRates replaces the rate table. In-flight jobs keep their frozen cost;
// only future submissions see the new rates.
func (s *ShopService) UpdateRates(ctx context.Context, shopID string, rates domain.RateTable) (*domain.Shop, error) {
	if !rates.Valid() {
		return nil, errInvalidRates
	}
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !shop.Configured {
		return nil, domain.ErrShopNotConfigured
	}

	shop.Rates = rates
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("update rates: %w", err)
	}

	s.log.Info().Str("shop_id", shop.ID).Msg("rate table updated")
	return shop, nil
}

// SetPaused flips whether the shop accepts new submissions. Jobs already in
// flight are unaffected.
func (s *ShopService) SetPaused(ctx context.Context, shopID string, paused bool) (*domain.Shop, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.Paused == paused {
		return shop, nil
	}

	shop.Paused = paused
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("set paused: %w", err)
	}

	s.log.Info().Str("shop_id", shop.ID).Bool("paused", paused).Msg("shop pause flag changed")
	return shop, nil
}
