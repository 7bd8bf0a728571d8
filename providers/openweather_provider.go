package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherdesk.app/config"
	"weatherdesk.app/errors"
	"weatherdesk.app/models"
)

// OpenWeatherMapProvider fetches current conditions and forecasts from the
// OpenWeatherMap data/2.5 API.
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a provider from weather configuration
func NewOpenWeatherMapProvider(cfg *config.WeatherConfig, timeout time.Duration) *OpenWeatherMapProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherMapProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentByCity retrieves current conditions for a place name
func (p *OpenWeatherMapProvider) CurrentByCity(ctx context.Context, city string, units models.Units) (*models.CurrentWeather, error) {
	var current models.CurrentWeather
	if err := p.get(ctx, "/weather", cityQuery(city, units), &current); err != nil {
		return nil, err
	}
	return &current, nil
}

// CurrentByCoords retrieves current conditions for a coordinate pair
func (p *OpenWeatherMapProvider) CurrentByCoords(ctx context.Context, lat, lon float64, units models.Units) (*models.CurrentWeather, error) {
	var current models.CurrentWeather
	if err := p.get(ctx, "/weather", coordQuery(lat, lon, units), &current); err != nil {
		return nil, err
	}
	return &current, nil
}

// ForecastByCity retrieves the multi-day forecast list for a place name
func (p *OpenWeatherMapProvider) ForecastByCity(ctx context.Context, city string, units models.Units) (*models.ForecastResponse, error) {
	var forecast models.ForecastResponse
	if err := p.get(ctx, "/forecast", cityQuery(city, units), &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// ForecastByCoords retrieves the multi-day forecast list for a coordinate pair
func (p *OpenWeatherMapProvider) ForecastByCoords(ctx context.Context, lat, lon float64, units models.Units) (*models.ForecastResponse, error) {
	var forecast models.ForecastResponse
	if err := p.get(ctx, "/forecast", coordQuery(lat, lon, units), &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

func cityQuery(city string, units models.Units) url.Values {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", string(units))
	return q
}

func coordQuery(lat, lon float64, units models.Units) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", string(units))
	return q
}

func (p *OpenWeatherMapProvider) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	query.Set("appid", p.apiKey)
	requestURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.NewExternalAPIError("build openweathermap request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("openweathermap request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return p.handleHTTPError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("decode openweathermap response", err)
	}

	return nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusNotFound:
		return errors.NewNotFoundError("city not found")
	case http.StatusUnauthorized:
		return errors.NewExternalAPIError("openweathermap: invalid API key", nil)
	case http.StatusTooManyRequests:
		return errors.NewExternalAPIError("openweathermap: rate limit exceeded", nil)
	case http.StatusServiceUnavailable:
		return errors.NewExternalAPIError("openweathermap: service unavailable", nil)
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("openweathermap: HTTP %d error", statusCode), nil)
	}
}
