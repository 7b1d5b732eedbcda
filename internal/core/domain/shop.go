package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
)

var ErrShopNotFound = errors.New("shop not found")
var ErrShopPaused = errors.New("shop is not accepting jobs")
var ErrShopNotConfigured = errors.New("shop is not configured")
var ErrShopAlreadyConfigured = errors.New("shop is already configured")
var ErrNotConnected = errors.New("no shop connected")

// shopIDPattern is the canonical shop identifier grammar. The generator and
// the scanner both use it, so any generated code is scannable.
var shopIDPattern = regexp.MustCompile(`SHOP-[A-Z0-9]{6}`)

const shopIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Shop is the print shop record owned by one operator. A shop is usable for
// submitting jobs only when Configured is true and Paused is false.
type Shop struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Location     string    `json:"location" bson:"location"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	MapsURL      string    `json:"maps_url,omitempty" bson:"maps_url,omitempty"`
	PrinterCount int       `json:"printer_count" bson:"printer_count"`
	PagesPerMin  int       `json:"pages_per_minute" bson:"pages_per_minute"`
	Rates        RateTable `json:"rates" bson:"rates"`
	Paused       bool      `json:"paused" bson:"paused"`
	Configured   bool      `json:"configured" bson:"configured"`
}

// AcceptingJobs reports whether the shop may receive new submissions.
func (s *Shop) AcceptingJobs() bool {
	return s.Configured && !s.Paused
}

// NewShopID returns a unique shop identifier in the format SHOP-XXXXXX.
func NewShopID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// fallback: constant suffix is still a valid identifier
		return "SHOP-A2B3C4"
	}
	for i := range b {
		b[i] = shopIDAlphabet[int(b[i])%len(shopIDAlphabet)]
	}
	return fmt.Sprintf("SHOP-%s", b)
}

// ExtractShopID finds the first substring of raw matching the shop identifier
// grammar. Decoded frames carry arbitrary surrounding text; anything that
// does not contain a well-formed identifier is ignored.
func ExtractShopID(raw string) (string, bool) {
	id := shopIDPattern.FindString(raw)
	return id, id != ""
}
