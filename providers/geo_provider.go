package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weatherdesk.app/config"
	"weatherdesk.app/errors"
	"weatherdesk.app/models"
)

// IPGeolocationProvider resolves the host's approximate coordinates from its
// public IP address. It stands in for device geolocation.
type IPGeolocationProvider struct {
	baseURL    string
	httpClient *http.Client
}

type ipGeolocationResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPGeolocationProvider creates a geolocator from geo configuration
func NewIPGeolocationProvider(cfg *config.GeoConfig, timeout time.Duration) *IPGeolocationProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IPGeolocationProvider{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Locate returns the coordinates the IP geolocation service reports
func (p *IPGeolocationProvider) Locate(ctx context.Context) (*models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, errors.NewGeolocationError("build geolocation request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewGeolocationError("geolocation request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewGeolocationError(fmt.Sprintf("geolocation: HTTP %d error", resp.StatusCode), nil)
	}

	var geo ipGeolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return nil, errors.NewGeolocationError("decode geolocation response", err)
	}

	if geo.Status != "success" {
		return nil, errors.NewGeolocationError(fmt.Sprintf("geolocation lookup failed: %s", geo.Message), nil)
	}

	return &models.Coordinates{Lat: geo.Lat, Lon: geo.Lon}, nil
}
