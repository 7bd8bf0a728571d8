package presentation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"weatherdesk.app/models"
)

func TestClassifyTheme(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected string
	}{
		{"NegativeCode", -5, ThemeDefault},
		{"BelowKnownRanges", 199, ThemeDefault},
		{"Thunderstorm", 201, ThemeThunder},
		{"Drizzle", 321, ThemeRain},
		{"Rain", 502, ThemeRain},
		{"Snow", 611, ThemeSnow},
		{"Fog", 741, ThemeFog},
		{"Clear", 800, ThemeClear},
		{"Clouds", 802, ThemeClouds},
		{"Zero", 0, ThemeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTheme(tt.code))
		})
	}
}

func TestUnitLabels(t *testing.T) {
	assert.Equal(t, "°C", TemperatureUnit(models.UnitsMetric))
	assert.Equal(t, "m/s", WindSpeedUnit(models.UnitsMetric))
	assert.Equal(t, "°F", TemperatureUnit(models.UnitsImperial))
	assert.Equal(t, "mph", WindSpeedUnit(models.UnitsImperial))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1, Round(1.4))
	assert.Equal(t, 2, Round(1.5))
	assert.Equal(t, -2, Round(-1.5))
	assert.Equal(t, 0, Round(-0.4))
	assert.Equal(t, 23, Round(22.96))
}

func TestFormatClockTime(t *testing.T) {
	t.Run("MissingInputShowsDash", func(t *testing.T) {
		assert.Equal(t, "-", FormatClockTime(0, 19800))
	})

	t.Run("OffsetShiftsIntoLocalTime", func(t *testing.T) {
		// 06:00 UTC with a +05:30 offset reads 11:30 local
		epoch := time.Date(2023, 7, 10, 6, 0, 0, 0, time.UTC).Unix()
		assert.Equal(t, "11:30 AM", FormatClockTime(epoch, 19800))
	})

	t.Run("TwelveHourClock", func(t *testing.T) {
		// 19:05 UTC with no offset
		epoch := time.Date(2023, 7, 10, 19, 5, 0, 0, time.UTC).Unix()
		assert.Equal(t, "07:05 PM", FormatClockTime(epoch, 0))
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		// 02:00 UTC with a -05:00 offset reads 21:00 the prior day
		epoch := time.Date(2023, 7, 10, 2, 0, 0, 0, time.UTC).Unix()
		assert.Equal(t, "09:00 PM", FormatClockTime(epoch, -18000))
	})
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Scattered Clouds", TitleCase("scattered clouds"))
	assert.Equal(t, "Mist", TitleCase("mist"))
	assert.Equal(t, "", TitleCase(""))
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", IconURL("10d"))
	assert.Equal(t, "", IconURL(""))
}

func TestBuildCurrentView(t *testing.T) {
	w := &models.CurrentWeather{Name: "Mumbai", Timezone: 19800}
	w.Weather = []models.Condition{{ID: 802, Main: "Clouds", Description: "scattered clouds", Icon: "03d"}}
	w.Main.Temp = 28.6
	w.Main.FeelsLike = 32.4
	w.Main.Humidity = 74
	w.Main.Pressure = 1005
	w.Wind.Speed = 4.63
	w.Sys.Sunrise = time.Date(2023, 7, 10, 0, 36, 0, 0, time.UTC).Unix()
	w.Sys.Sunset = time.Date(2023, 7, 10, 13, 49, 0, 0, time.UTC).Unix()

	view := BuildCurrentView(w, models.UnitsMetric)

	assert.Equal(t, "Mumbai", view.Name)
	assert.Equal(t, "Scattered Clouds", view.Description)
	assert.Equal(t, "https://openweathermap.org/img/wn/03d@2x.png", view.IconURL)
	assert.Equal(t, 29, view.Temperature)
	assert.Equal(t, 32, view.FeelsLike)
	assert.Equal(t, 74, view.Humidity)
	assert.Equal(t, 1005, view.Pressure)
	assert.Equal(t, 5, view.WindSpeed)
	assert.Equal(t, "06:06 AM", view.Sunrise)
	assert.Equal(t, "07:19 PM", view.Sunset)
}

func TestBuildForecastViews(t *testing.T) {
	var s models.ForecastSample
	s.Dt = time.Date(2023, 7, 10, 12, 0, 0, 0, time.UTC).Unix() // a Monday
	s.Main.TempMax = 31.5
	s.Main.TempMin = 26.2
	s.Weather = []models.Condition{{Icon: "10d"}}

	views := BuildForecastViews([]models.ForecastSample{s})

	assert.Len(t, views, 1)
	assert.Equal(t, "Mon", views[0].Day)
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", views[0].IconURL)
	assert.Equal(t, 32, views[0].TempMax)
	assert.Equal(t, 26, views[0].TempMin)
}
