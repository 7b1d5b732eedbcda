package ports

import (
	"context"

	"github.com/pickit/print-system/internal/core/domain"
)

// ShopRepository defines persistence operations for shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	FindByID(ctx context.Context, shopID string) (*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
}

// ConfigureShopInput holds the one-time setup data for a shop.
type ConfigureShopInput struct {
	ShopID       string
	Name         string
	Location     string
	PrinterCount int
	PagesPerMin  int
	Rates        domain.RateTable
	// VerifyLocation asks the external place lookup to fill the official
	// address and maps link. Lookup failure degrades to manual input.
	VerifyLocation bool
}

// ShopService manages shop configuration, rates, and the pause flag.
type ShopService interface {
	// Configure completes the one-time setup. A second call fails with
	// domain.ErrShopAlreadyConfigured.
	Configure(ctx context.Context, in ConfigureShopInput) (*domain.Shop, error)
	Get(ctx context.Context, shopID string) (*domain.Shop, error)
	// UpdateRates replaces the rate table. Edits apply only to future
	// submissions; in-flight jobs keep their frozen cost.
	UpdateRates(ctx context.Context, shopID string, rates domain.RateTable) (*domain.Shop, error)
	SetPaused(ctx context.Context, shopID string, paused bool) (*domain.Shop, error)
}

// PlaceInfo is the result of an external location lookup. Values are taken
// verbatim from the provider, never invented locally.
type PlaceInfo struct {
	Address string
	MapsURL string
}

// Geocoder resolves a shop name and free-form location to an official
// address and maps link. Failures affect only this feature.
type Geocoder interface {
	Lookup(ctx context.Context, name, location string) (*PlaceInfo, error)
}
