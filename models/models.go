// Package models defines data structures used throughout the application
package models

// Units identifies the active measurement system
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// IsValid reports whether the units token is one of the two known systems
func (u Units) IsValid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Toggle returns the other measurement system
func (u Units) Toggle() Units {
	if u == UnitsImperial {
		return UnitsMetric
	}
	return UnitsImperial
}

// DefaultConditionCode is assumed when the provider omits the condition block
const DefaultConditionCode = 800

// Coordinates is a latitude/longitude pair in floating point degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the provider's weather array
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentWeather represents the provider's current-conditions response
type CurrentWeather struct {
	Name    string      `json:"name"`
	Coord   Coordinates `json:"coord"`
	Weather []Condition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Timezone int `json:"timezone"`
}

// ConditionCode returns the primary condition code, falling back to
// DefaultConditionCode when the provider omits the weather array.
func (w *CurrentWeather) ConditionCode() int {
	if len(w.Weather) == 0 || w.Weather[0].ID == 0 {
		return DefaultConditionCode
	}
	return w.Weather[0].ID
}

// PrimaryCondition returns the first condition entry, zero value when absent
func (w *CurrentWeather) PrimaryCondition() Condition {
	if len(w.Weather) == 0 {
		return Condition{}
	}
	return w.Weather[0]
}

// ForecastSample is one timestamped entry of the provider's forecast list
type ForecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
}

// PrimaryCondition returns the first condition entry, zero value when absent
func (s ForecastSample) PrimaryCondition() Condition {
	if len(s.Weather) == 0 {
		return Condition{}
	}
	return s.Weather[0]
}

// ForecastResponse represents the provider's forecast response
type ForecastResponse struct {
	List []ForecastSample `json:"list"`
}

// Notice is a transient user-facing message with a fixed display duration
type Notice struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// CurrentView is the presentation form of the active weather snapshot
type CurrentView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feels_like"`
	Humidity    int    `json:"humidity"`
	Pressure    int    `json:"pressure"`
	WindSpeed   int    `json:"wind_speed"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
}

// ForecastView is the presentation form of one daily forecast entry
type ForecastView struct {
	Day     string `json:"day"`
	IconURL string `json:"icon_url"`
	TempMax int    `json:"temp_max"`
	TempMin int    `json:"temp_min"`
}

// ViewState is the full state fed to the view layer
type ViewState struct {
	Loading         bool           `json:"loading"`
	Units           Units          `json:"units"`
	TemperatureUnit string         `json:"temperature_unit"`
	WindSpeedUnit   string         `json:"wind_speed_unit"`
	Theme           string         `json:"theme"`
	Current         *CurrentView   `json:"current,omitempty"`
	Forecast        []ForecastView `json:"forecast,omitempty"`
	History         []string       `json:"history"`
	Notice          *Notice        `json:"notice,omitempty"`
	Hint            string         `json:"hint,omitempty"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
