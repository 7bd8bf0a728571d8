package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weatherdesk.app/config"
	weathererr "weatherdesk.app/errors"
	"weatherdesk.app/models"
	"weatherdesk.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router        *gin.Engine
	config        *config.Config
	weatherClient service.WeatherClientInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(config *config.Config, weatherClient service.WeatherClientInterface) *Server {
	router := gin.Default()

	server := &Server{
		router:        router,
		config:        config,
		weatherClient: weatherClient,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/state", s.getState)
		api.GET("/weather", s.getWeatherByCity)
		api.GET("/weather/coords", s.getWeatherByCoords)
		api.GET("/locate", s.locate)
		api.POST("/units/toggle", s.toggleUnits)
		api.GET("/history", s.getHistory)
		api.DELETE("/history", s.clearHistory)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.weatherClient.ViewState())
}

func (s *Server) getWeatherByCity(c *gin.Context) {
	city := c.Query("city")
	slog.Debug("Fetching weather by city", "city", city)

	if err := s.weatherClient.FetchByCity(c.Request.Context(), city); err != nil {
		slog.Error("City lookup error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.weatherClient.ViewState())
}

type coordsRequest struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lon *float64 `form:"lon" binding:"required"`
}

func (s *Server) getWeatherByCoords(c *gin.Context) {
	var req coordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("lat and lon parameters are required"))
		return
	}

	slog.Debug("Fetching weather by coordinates", "lat", *req.Lat, "lon", *req.Lon)

	if err := s.weatherClient.FetchByCoords(c.Request.Context(), *req.Lat, *req.Lon); err != nil {
		slog.Error("Coordinate lookup error", "error", err, "lat", *req.Lat, "lon", *req.Lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.weatherClient.ViewState())
}

func (s *Server) locate(c *gin.Context) {
	slog.Debug("Fetching weather for device location")

	if err := s.weatherClient.UseDeviceLocation(c.Request.Context()); err != nil {
		slog.Error("Device location error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.weatherClient.ViewState())
}

func (s *Server) toggleUnits(c *gin.Context) {
	units, err := s.weatherClient.ToggleUnits(c.Request.Context())
	if err != nil {
		// The preference change already took effect; report the re-fetch
		// failure but include the new units so the toggle stays consistent.
		slog.Error("Unit toggle re-fetch error", "error", err, "units", units)
		s.handleError(c, err)
		return
	}

	slog.Debug("Units toggled", "units", units)
	c.JSON(http.StatusOK, s.weatherClient.ViewState())
}

func (s *Server) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": s.weatherClient.History()})
}

func (s *Server) clearHistory(c *gin.Context) {
	if err := s.weatherClient.ClearHistory(); err != nil {
		slog.Error("Clear history error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": []string{}})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case weathererr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "Weather service unavailable"
		case weathererr.GeolocationError:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to determine device location"
		case weathererr.StorageError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
