package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdesk.app/config"
	weathererr "weatherdesk.app/errors"
	"weatherdesk.app/models"
)

type mockWeatherClient struct {
	fetchByCityErr   error
	fetchByCoordsErr error
	locateErr        error
	toggleErr        error
	clearErr         error

	lastCity  string
	lastLat   float64
	lastLon   float64
	toggled   bool
	units     models.Units
	history   []string
	viewState models.ViewState
}

func (m *mockWeatherClient) FetchByCity(_ context.Context, name string) error {
	m.lastCity = name
	return m.fetchByCityErr
}

func (m *mockWeatherClient) FetchByCoords(_ context.Context, lat, lon float64) error {
	m.lastLat, m.lastLon = lat, lon
	return m.fetchByCoordsErr
}

func (m *mockWeatherClient) UseDeviceLocation(_ context.Context) error {
	return m.locateErr
}

func (m *mockWeatherClient) ToggleUnits(_ context.Context) (models.Units, error) {
	m.toggled = true
	m.units = m.units.Toggle()
	return m.units, m.toggleErr
}

func (m *mockWeatherClient) ClearHistory() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.history = nil
	return nil
}

func (m *mockWeatherClient) History() []string {
	return m.history
}

func (m *mockWeatherClient) Units() models.Units {
	return m.units
}

func (m *mockWeatherClient) ViewState() models.ViewState {
	return m.viewState
}

func newTestServer(client *mockWeatherClient) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Server: config.ServerConfig{Port: 8080}}
	return NewServer(cfg, client)
}

func performRequest(server *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, req)
	return w
}

func TestGetState(t *testing.T) {
	client := &mockWeatherClient{
		units: models.UnitsMetric,
		viewState: models.ViewState{
			Units:           models.UnitsMetric,
			TemperatureUnit: "°C",
			Theme:           "default",
			History:         []string{"Mumbai"},
			Hint:            "Search a city to see the weather.",
		},
	}
	server := newTestServer(client)

	w := performRequest(server, http.MethodGet, "/api/state")
	assert.Equal(t, http.StatusOK, w.Code)

	var state models.ViewState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, models.UnitsMetric, state.Units)
	assert.Equal(t, "default", state.Theme)
	assert.Equal(t, []string{"Mumbai"}, state.History)
}

func TestGetWeatherByCity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := &mockWeatherClient{units: models.UnitsMetric}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather?city=Mumbai")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Mumbai", client.lastCity)
	})

	t.Run("ValidationErrorReturns400", func(t *testing.T) {
		client := &mockWeatherClient{
			fetchByCityErr: weathererr.NewValidationError("city name cannot be empty"),
		}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather?city=")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "city name cannot be empty", resp.Error)
	})

	t.Run("NotFoundReturns404", func(t *testing.T) {
		client := &mockWeatherClient{
			fetchByCityErr: weathererr.NewNotFoundError("city not found"),
		}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather?city=Nowhereville")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ExternalAPIErrorReturns503", func(t *testing.T) {
		client := &mockWeatherClient{
			fetchByCityErr: weathererr.NewExternalAPIError("upstream down", nil),
		}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather?city=Mumbai")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Weather service unavailable", resp.Error)
	})
}

func TestGetWeatherByCoords(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := &mockWeatherClient{}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather/coords?lat=19.07&lon=72.87")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, 19.07, client.lastLat, 0.001)
		assert.InDelta(t, 72.87, client.lastLon, 0.001)
	})

	t.Run("MissingParametersReturns400", func(t *testing.T) {
		client := &mockWeatherClient{}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather/coords?lat=19.07")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "lat and lon parameters are required", resp.Error)
	})

	t.Run("ZeroCoordinatesAreValid", func(t *testing.T) {
		client := &mockWeatherClient{}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/weather/coords?lat=0&lon=0")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLocate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := &mockWeatherClient{}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/locate")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GeolocationFailureReturns503", func(t *testing.T) {
		client := &mockWeatherClient{
			locateErr: weathererr.NewGeolocationError("lookup failed", nil),
		}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/locate")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Unable to determine device location", resp.Error)
	})
}

func TestToggleUnits(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := &mockWeatherClient{units: models.UnitsMetric}
		server := newTestServer(client)

		w := performRequest(server, http.MethodPost, "/api/units/toggle")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, client.toggled)
		assert.Equal(t, models.UnitsImperial, client.units)
	})

	t.Run("RefetchFailureStillTogglesPreference", func(t *testing.T) {
		client := &mockWeatherClient{
			units:     models.UnitsMetric,
			toggleErr: weathererr.NewExternalAPIError("upstream down", nil),
		}
		server := newTestServer(client)

		w := performRequest(server, http.MethodPost, "/api/units/toggle")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, models.UnitsImperial, client.units)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	t.Run("GetHistory", func(t *testing.T) {
		client := &mockWeatherClient{history: []string{"Paris", "London"}}
		server := newTestServer(client)

		w := performRequest(server, http.MethodGet, "/api/history")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			History []string `json:"history"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Paris", "London"}, resp.History)
	})

	t.Run("ClearHistory", func(t *testing.T) {
		client := &mockWeatherClient{history: []string{"Paris"}}
		server := newTestServer(client)

		w := performRequest(server, http.MethodDelete, "/api/history")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, client.history)
	})

	t.Run("ClearHistoryStorageFailureReturns500", func(t *testing.T) {
		client := &mockWeatherClient{
			history:  []string{"Paris"},
			clearErr: weathererr.NewStorageError("write failed", nil),
		}
		server := newTestServer(client)

		w := performRequest(server, http.MethodDelete, "/api/history")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Internal server error", resp.Error)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(&mockWeatherClient{})

	w := performRequest(server, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
