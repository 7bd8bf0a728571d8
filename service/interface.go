package service

import (
	"context"

	"weatherdesk.app/models"
)

// WeatherClientInterface defines the operations the HTTP surface drives
type WeatherClientInterface interface {
	FetchByCity(ctx context.Context, name string) error
	FetchByCoords(ctx context.Context, lat, lon float64) error
	UseDeviceLocation(ctx context.Context) error
	ToggleUnits(ctx context.Context) (models.Units, error)
	ClearHistory() error
	History() []string
	Units() models.Units
	ViewState() models.ViewState
}
