// Package presentation derives display values from weather data: theme
// classification, unit labels, rounding and local-time formatting.
package presentation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"weatherdesk.app/models"
)

// Background/icon themes derived from the provider's condition code
const (
	ThemeDefault = "default"
	ThemeThunder = "thunder"
	ThemeRain    = "rain"
	ThemeSnow    = "snow"
	ThemeFog     = "fog"
	ThemeClear   = "clear"
	ThemeClouds  = "clouds"
)

// ClassifyTheme maps a condition code to a theme. The mapping is total:
// any code outside the known ranges yields ThemeDefault.
func ClassifyTheme(code int) string {
	switch {
	case code >= 200 && code < 300:
		return ThemeThunder
	case code >= 300 && code < 600:
		return ThemeRain
	case code >= 600 && code < 700:
		return ThemeSnow
	case code >= 700 && code < 800:
		return ThemeFog
	case code == 800:
		return ThemeClear
	case code > 800:
		return ThemeClouds
	default:
		return ThemeDefault
	}
}

// TemperatureUnit returns the display label for temperatures
func TemperatureUnit(u models.Units) string {
	if u == models.UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedUnit returns the display label for wind speeds
func WindSpeedUnit(u models.Units) string {
	if u == models.UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Round rounds a display value to the nearest integer, halves away from zero
func Round(v float64) int {
	return int(math.Round(v))
}

// FormatClockTime renders an epoch instant shifted by the location's UTC
// offset as a 12-hour clock time. The shifted instant is read as UTC; the
// offset application is the whole localization. Zero input yields a dash.
func FormatClockTime(epoch int64, offsetSec int) string {
	if epoch == 0 {
		return "-"
	}
	t := time.Unix(epoch+int64(offsetSec), 0).UTC()
	return t.Format("03:04 PM")
}

// Weekday returns the short weekday name for an epoch timestamp
func Weekday(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("Mon")
}

// IconURL returns the provider's image URL for a condition icon code
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

// TitleCase upcases the first letter of each word in a description
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// BuildCurrentView derives the presentation form of a weather snapshot
func BuildCurrentView(w *models.CurrentWeather, units models.Units) *models.CurrentView {
	cond := w.PrimaryCondition()
	return &models.CurrentView{
		Name:        w.Name,
		Description: TitleCase(cond.Description),
		IconURL:     IconURL(cond.Icon),
		Temperature: Round(w.Main.Temp),
		FeelsLike:   Round(w.Main.FeelsLike),
		Humidity:    w.Main.Humidity,
		Pressure:    w.Main.Pressure,
		WindSpeed:   Round(w.Wind.Speed),
		Sunrise:     FormatClockTime(w.Sys.Sunrise, w.Timezone),
		Sunset:      FormatClockTime(w.Sys.Sunset, w.Timezone),
	}
}

// BuildForecastViews derives the presentation form of daily forecast entries
func BuildForecastViews(daily []models.ForecastSample) []models.ForecastView {
	views := make([]models.ForecastView, 0, len(daily))
	for _, s := range daily {
		views = append(views, models.ForecastView{
			Day:     Weekday(s.Dt),
			IconURL: IconURL(s.PrimaryCondition().Icon),
			TempMax: Round(s.Main.TempMax),
			TempMin: Round(s.Main.TempMin),
		})
	}
	return views
}
