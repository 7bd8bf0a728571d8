package providers

import (
	"context"

	"weatherdesk.app/models"
)

// WeatherProvider defines the interface for weather data providers
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city string, units models.Units) (*models.CurrentWeather, error)
	CurrentByCoords(ctx context.Context, lat, lon float64, units models.Units) (*models.CurrentWeather, error)
	ForecastByCity(ctx context.Context, city string, units models.Units) (*models.ForecastResponse, error)
	ForecastByCoords(ctx context.Context, lat, lon float64, units models.Units) (*models.ForecastResponse, error)
}

// Geolocator resolves the device's approximate coordinates
type Geolocator interface {
	Locate(ctx context.Context) (*models.Coordinates, error)
}
