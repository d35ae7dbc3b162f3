// Package view maps fetch results into render-ready view models for the
// card, the weekly grid, and the chart. Unit conversion happens here and
// nowhere else; stored results stay in Celsius so a unit toggle re-renders
// without refetching.
package view

import (
	"math"
	"time"

	"github.com/skylineapp/skyline/internal/weather"
	"github.com/skylineapp/skyline/internal/weather/openweather"
)

// Card is the current-conditions panel.
type Card struct {
	City         string  `json:"city"`
	Description  string  `json:"description"`
	Temperature  float64 `json:"temperature"`
	Unit         string  `json:"unit"`
	HumidityPct  int     `json:"humidityPct"`
	WindSpeedMps float64 `json:"windSpeedMps"`
	IconURL      string  `json:"iconUrl"`
	Theme        string  `json:"theme"`
}

// GridDay is one cell of the weekly grid. Its temperature is rounded to the
// nearest whole degree after conversion.
type GridDay struct {
	Label       string `json:"label"`
	Temperature int    `json:"temperature"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

// ChartPoint is one point of the temperature chart series, full precision.
type ChartPoint struct {
	Label       string  `json:"label"`
	Temperature float64 `json:"temperature"`
}

// Page bundles everything the UI renders for one result.
type Page struct {
	Card  Card         `json:"card"`
	Week  []GridDay    `json:"week"`
	Chart []ChartPoint `json:"chart"`
	Unit  string       `json:"unit"`
}

// dateLabel matches the UI's short date format, e.g. "Mon Jan 2".
const dateLabel = "Mon Jan 2"

// Render builds the page view model for a result and a unit preference.
// A nil tz renders date labels in the process-local timezone.
func Render(res weather.FetchResult, unit weather.Unit, tz *time.Location) Page {
	if unit != weather.UnitFahrenheit {
		unit = weather.UnitCelsius
	}
	if tz == nil {
		tz = time.Local
	}

	page := Page{
		Card: Card{
			City:         res.Current.LocationName,
			Description:  res.Current.Description,
			Temperature:  weather.ToDisplay(res.Current.TemperatureC, unit),
			Unit:         string(unit),
			HumidityPct:  res.Current.HumidityPct,
			WindSpeedMps: res.Current.WindSpeedMps,
			IconURL:      openweather.IconURL(res.Current.IconID),
			Theme:        themeFor(res.Current.ConditionGroup),
		},
		Week:  make([]GridDay, 0, len(res.Daily)),
		Chart: make([]ChartPoint, 0, len(res.Daily)),
		Unit:  string(unit),
	}

	for _, day := range res.Daily {
		label := time.Unix(day.TimestampUnix, 0).In(tz).Format(dateLabel)
		temp := weather.ToDisplay(day.TemperatureC, unit)

		page.Week = append(page.Week, GridDay{
			Label:       label,
			Temperature: int(math.Round(temp)),
			Unit:        string(unit),
			Description: day.Description,
			IconURL:     openweather.IconURL(day.IconID),
		})
		page.Chart = append(page.Chart, ChartPoint{
			Label:       label,
			Temperature: temp,
		})
	}

	return page
}

// themeFor picks the background theme key for a condition group. Groups
// without a dedicated backdrop fall back to the default.
func themeFor(group string) string {
	switch group {
	case "Clear", "Clouds", "Rain", "Snow":
		return group
	default:
		return "default"
	}
}
