// Package service implements the lookup client's session state and the
// operations that mutate it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"weatherdesk.app/errors"
	"weatherdesk.app/forecast"
	"weatherdesk.app/metrics"
	"weatherdesk.app/models"
	"weatherdesk.app/pkg/validation"
	"weatherdesk.app/presentation"
	"weatherdesk.app/providers"
)

// User-facing notice texts
const (
	msgEmptyCity     = "Please enter a city name."
	msgCityFailed    = "City not found or API error."
	msgCoordsFailed  = "Location fetch failed or API error."
	msgGeoFailed     = "Permission denied or location unavailable."
	msgNothingLoaded = "Try “Mumbai”, “Hyderabad”, or use your location."
)

// WeatherService owns the session state and orchestrates lookups. All
// location-dependent state is replaced wholesale on a successful fetch and
// left untouched on any failure. Orchestrations are serialized: overlapping
// requests queue on a mutex instead of racing for last-response-wins.
type WeatherService struct {
	provider   providers.WeatherProvider
	geolocator providers.Geolocator
	history    *HistoryLedger
	preference *UnitPreference
	notifier   *Notifier
	metrics    *metrics.LookupMetrics

	opMu sync.Mutex // serializes orchestrations
	mu   sync.RWMutex
	now  func() time.Time

	units      models.Units
	searchText string
	loading    bool
	current    *models.CurrentWeather
	daily      []models.ForecastSample
}

// Dependencies bundles everything a WeatherService needs
type Dependencies struct {
	Provider   providers.WeatherProvider
	Geolocator providers.Geolocator
	History    *HistoryLedger
	Preference *UnitPreference
	Notifier   *Notifier
	Metrics    *metrics.LookupMetrics
}

// NewWeatherService creates the session controller. The persisted unit
// preference is loaded immediately so the first lookup uses it.
func NewWeatherService(deps Dependencies) (*WeatherService, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Geolocator == nil {
		return nil, errors.NewValidationError("geolocator is required")
	}
	if deps.History == nil {
		return nil, errors.NewValidationError("history ledger is required")
	}
	if deps.Preference == nil {
		return nil, errors.NewValidationError("unit preference is required")
	}
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("notifier is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &WeatherService{
		provider:   deps.Provider,
		geolocator: deps.Geolocator,
		history:    deps.History,
		preference: deps.Preference,
		notifier:   deps.Notifier,
		metrics:    deps.Metrics,
		now:        time.Now,
		units:      deps.Preference.Load(),
	}, nil
}

// FetchByCity looks up current conditions and forecast for a place name.
// An empty name fails before any network call.
func (s *WeatherService) FetchByCity(ctx context.Context, name string) error {
	trimmed, ok := validation.TrimAndValidate(name)
	if !ok {
		s.notify(msgEmptyCity)
		s.metrics.RecordLookup("city", errors.NewValidationError("city name cannot be empty"))
		return errors.NewValidationError("city name cannot be empty")
	}

	s.mu.Lock()
	s.searchText = trimmed
	s.mu.Unlock()

	err := s.lookup(ctx, "city", s.Units(), func(ctx context.Context, units models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
		return s.fetchByCity(ctx, trimmed, units)
	})
	if err != nil {
		s.notify(msgCityFailed)
	}
	return err
}

// FetchByCoords looks up current conditions and forecast for a coordinate
// pair. Coordinates pass through unvalidated; the provider validates range.
func (s *WeatherService) FetchByCoords(ctx context.Context, lat, lon float64) error {
	err := s.lookup(ctx, "coords", s.Units(), func(ctx context.Context, units models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
		return s.fetchByCoords(ctx, lat, lon, units)
	})
	if err != nil {
		s.notify(msgCoordsFailed)
	}
	return err
}

// UseDeviceLocation resolves the device's coordinates and fetches for them
func (s *WeatherService) UseDeviceLocation(ctx context.Context) error {
	coords, err := s.geolocator.Locate(ctx)
	if err != nil {
		slog.Error("Geolocation failed", "error", err)
		s.notify(msgGeoFailed)
		s.metrics.RecordLookup("locate", err)
		return err
	}

	err = s.lookup(ctx, "locate", s.Units(), func(ctx context.Context, units models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
		return s.fetchByCoords(ctx, coords.Lat, coords.Lon, units)
	})
	if err != nil {
		s.notify(msgCoordsFailed)
	}
	return err
}

// ToggleUnits flips the measurement system, persists it, and re-fetches the
// active location under the new system. The persisted preference keeps the
// new value even if the re-fetch fails: last user intent wins. The active
// snapshot's coordinates are preferred over re-resolving the search text.
func (s *WeatherService) ToggleUnits(ctx context.Context) (models.Units, error) {
	s.mu.Lock()
	s.units = s.units.Toggle()
	units := s.units
	current := s.current
	searchText := s.searchText
	s.mu.Unlock()

	if err := s.preference.Save(units); err != nil {
		slog.Error("Failed to persist unit preference", "error", err, "units", units)
	}

	var err error
	switch {
	case current != nil:
		err = s.lookup(ctx, "coords", units, func(ctx context.Context, u models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
			return s.fetchByCoords(ctx, current.Coord.Lat, current.Coord.Lon, u)
		})
		if err != nil {
			s.notify(msgCoordsFailed)
		}
	case searchText != "":
		err = s.lookup(ctx, "city", units, func(ctx context.Context, u models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
			return s.fetchByCity(ctx, searchText, u)
		})
		if err != nil {
			s.notify(msgCityFailed)
		}
	}
	return units, err
}

// Refresh re-fetches the active snapshot's location, if any. Used by the
// background scheduler to keep a long-lived session current.
func (s *WeatherService) Refresh(ctx context.Context) error {
	s.mu.RLock()
	current := s.current
	units := s.units
	s.mu.RUnlock()

	if current == nil {
		return nil
	}
	return s.lookup(ctx, "refresh", units, func(ctx context.Context, u models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
		return s.fetchByCoords(ctx, current.Coord.Lat, current.Coord.Lon, u)
	})
}

// ClearHistory empties the search history
func (s *WeatherService) ClearHistory() error {
	return s.history.Clear()
}

// History returns the persisted search history, most recent first
func (s *WeatherService) History() []string {
	return s.history.List()
}

// Units returns the active measurement system
func (s *WeatherService) Units() models.Units {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units
}

// ViewState assembles the full state the view renders from
func (s *WeatherService) ViewState() models.ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := models.ViewState{
		Loading:         s.loading,
		Units:           s.units,
		TemperatureUnit: presentation.TemperatureUnit(s.units),
		WindSpeedUnit:   presentation.WindSpeedUnit(s.units),
		Theme:           presentation.ThemeDefault,
		History:         s.history.List(),
		Notice:          s.notifier.Current(),
	}

	if s.current != nil {
		state.Theme = presentation.ClassifyTheme(s.current.ConditionCode())
		state.Current = presentation.BuildCurrentView(s.current, s.units)
		state.Forecast = presentation.BuildForecastViews(s.daily)
	} else if !s.loading {
		state.Hint = msgNothingLoaded
	}
	return state
}

type fetchFunc func(ctx context.Context, units models.Units) (*models.CurrentWeather, *models.ForecastResponse, error)

// lookup runs one orchestration: both provider calls must succeed before any
// state is applied; on failure the previously displayed snapshot and
// forecast stay visible unchanged.
func (s *WeatherService) lookup(ctx context.Context, method string, units models.Units, fetch fetchFunc) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	current, forecastResp, err := fetch(ctx, units)
	s.metrics.RecordLookup(method, err)
	if err != nil {
		slog.Error("Lookup failed", "method", method, "error", err)
		return err
	}

	daily := forecast.ReduceDaily(forecastResp.List, s.now())

	s.mu.Lock()
	s.current = current
	s.daily = daily
	s.mu.Unlock()

	if current.Name != "" {
		if _, err := s.history.Record(current.Name); err != nil {
			slog.Warn("Failed to record history entry", "error", err, "name", current.Name)
		}
	}

	slog.Debug("Lookup applied", "method", method, "name", current.Name, "days", len(daily))
	return nil
}

func (s *WeatherService) fetchByCity(ctx context.Context, city string, units models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
	start := time.Now()
	current, err := s.provider.CurrentByCity(ctx, city, units)
	s.metrics.ObserveProviderCall("current", time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("current conditions for %q: %w", city, err)
	}

	start = time.Now()
	forecastResp, err := s.provider.ForecastByCity(ctx, city, units)
	s.metrics.ObserveProviderCall("forecast", time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("forecast for %q: %w", city, err)
	}
	return current, forecastResp, nil
}

func (s *WeatherService) fetchByCoords(ctx context.Context, lat, lon float64, units models.Units) (*models.CurrentWeather, *models.ForecastResponse, error) {
	start := time.Now()
	current, err := s.provider.CurrentByCoords(ctx, lat, lon, units)
	s.metrics.ObserveProviderCall("current", time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("current conditions for (%v, %v): %w", lat, lon, err)
	}

	start = time.Now()
	forecastResp, err := s.provider.ForecastByCoords(ctx, lat, lon, units)
	s.metrics.ObserveProviderCall("forecast", time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("forecast for (%v, %v): %w", lat, lon, err)
	}
	return current, forecastResp, nil
}

func (s *WeatherService) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *WeatherService) notify(message string) {
	s.notifier.Notify(message)
	s.metrics.RecordNotice()
}
