package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pickit/print-system/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the place lookup provider.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// PlacesClient resolves shop names to official addresses through an external
// place search API. Results are passed through verbatim.
type PlacesClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewPlacesClient(cfg Config) *PlacesClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PlacesClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type placeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		MapsURL          string `json:"maps_url"`
	} `json:"results"`
	Status string `json:"status"`
}

func (c *PlacesClient) Lookup(ctx context.Context, name, location string) (*ports.PlaceInfo, error) {
	q := url.Values{}
	q.Set("query", name+" "+location)
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place lookup: http %d", resp.StatusCode)
	}

	var pr placeResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(pr.Results) == 0 {
		return nil, fmt.Errorf("no place found for %q", name)
	}

	return &ports.PlaceInfo{
		Address: pr.Results[0].FormattedAddress,
		MapsURL: pr.Results[0].MapsURL,
	}, nil
}
