package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Job request / response types ---

type submitJobRequest struct {
	FileName  string `json:"file_name"  validate:"required"`
	PageCount int    `json:"page_count" validate:"required,gt=0"`
	Color     bool   `json:"color"`
	Duplex    bool   `json:"duplex"`
}

type jobResponse struct {
	ID              string    `json:"id"`
	ShopID          string    `json:"shop_id"`
	FileName        string    `json:"file_name"`
	PageCount       int       `json:"page_count"`
	Color           bool      `json:"color"`
	Duplex          bool      `json:"duplex"`
	Status          string    `json:"status"`
	Cost            float64   `json:"cost"`
	CreatedAt       time.Time `json:"created_at"`
	ExpectedMinutes int       `json:"expected_minutes"`
	EstimatedReady  time.Time `json:"estimated_ready"`
}

type advanceJobRequest struct {
	Status string `json:"status" validate:"required,oneof=printing ready collected"`
}

// --- Shop request / response types ---

type ratesRequest struct {
	BWSingle    float64 `json:"bw_ss"    validate:"gte=0"`
	BWDouble    float64 `json:"bw_ds"    validate:"gte=0"`
	ColorSingle float64 `json:"color_ss" validate:"gte=0"`
	ColorDouble float64 `json:"color_ds" validate:"gte=0"`
}

type configureShopRequest struct {
	Name           string       `json:"name"            validate:"required"`
	Location       string       `json:"location"        validate:"required"`
	PrinterCount   int          `json:"printer_count"   validate:"required,min=1"`
	PagesPerMin    int          `json:"pages_per_min"   validate:"required,gt=0"`
	Rates          ratesRequest `json:"rates"           validate:"required"`
	VerifyLocation bool         `json:"verify_location"`
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

type shopResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Location     string       `json:"location"`
	Address      string       `json:"address,omitempty"`
	MapsURL      string       `json:"maps_url,omitempty"`
	PrinterCount int          `json:"printer_count"`
	PagesPerMin  int          `json:"pages_per_min"`
	Rates        ratesRequest `json:"rates"`
	Paused       bool         `json:"paused"`
	Configured   bool         `json:"configured"`
}

// --- Handshake request / response types ---

type permissionRequest struct {
	Granted bool `json:"granted"`
}

type frameRequest struct {
	Raw string `json:"raw" validate:"required"`
}

type handshakeResponse struct {
	State    string `json:"state"`
	ShopID   string `json:"shop_id,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
}
