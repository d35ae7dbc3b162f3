package view

import (
	"math"
	"testing"
	"time"

	"github.com/skylineapp/skyline/internal/weather"
)

func parisResult() weather.FetchResult {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return weather.FetchResult{
		Location: weather.Location{Name: "Paris", Latitude: 48.85, Longitude: 2.35},
		Current: weather.CurrentConditions{
			LocationName:   "Paris",
			Description:    "scattered clouds",
			TemperatureC:   18,
			HumidityPct:    64,
			WindSpeedMps:   4.1,
			IconID:         "03d",
			ConditionGroup: "Clouds",
		},
		Daily: weather.DailyForecast{
			{TimestampUnix: day1.Unix(), TemperatureC: 17.6, Description: "light rain", IconID: "10d"},
			{TimestampUnix: day1.AddDate(0, 0, 1).Unix(), TemperatureC: 19.2, Description: "clear sky", IconID: "01d"},
		},
	}
}

func TestRenderCelsius(t *testing.T) {
	page := Render(parisResult(), weather.UnitCelsius, time.UTC)

	if page.Card.City != "Paris" || page.Card.Temperature != 18 || page.Card.Unit != "C" {
		t.Fatalf("card = %+v", page.Card)
	}
	if page.Card.IconURL != "https://openweathermap.org/img/wn/03d@2x.png" {
		t.Fatalf("icon url = %q", page.Card.IconURL)
	}
	if page.Card.Theme != "Clouds" {
		t.Fatalf("theme = %q", page.Card.Theme)
	}
	if len(page.Week) != 2 || len(page.Chart) != 2 {
		t.Fatalf("week=%d chart=%d, want 2 each", len(page.Week), len(page.Chart))
	}
	if page.Week[0].Label != "Mon Mar 2" {
		t.Fatalf("label = %q", page.Week[0].Label)
	}
	// Grid temperature is rounded; chart keeps full precision.
	if page.Week[0].Temperature != 18 {
		t.Fatalf("grid temp = %d, want 18 (17.6 rounded)", page.Week[0].Temperature)
	}
	if page.Chart[0].Temperature != 17.6 {
		t.Fatalf("chart temp = %v, want 17.6", page.Chart[0].Temperature)
	}
}

func TestRenderFahrenheitConvertsEverywhere(t *testing.T) {
	page := Render(parisResult(), weather.UnitFahrenheit, time.UTC)

	if math.Abs(page.Card.Temperature-64.4) > 1e-9 {
		t.Fatalf("card temp = %v, want 64.4", page.Card.Temperature)
	}
	// 17.6C = 63.68F, rounds to 64.
	if page.Week[0].Temperature != 64 {
		t.Fatalf("grid temp = %d, want 64", page.Week[0].Temperature)
	}
	if math.Abs(page.Chart[1].Temperature-66.56) > 1e-9 {
		t.Fatalf("chart temp = %v, want 66.56", page.Chart[1].Temperature)
	}
	if page.Unit != "F" || page.Week[0].Unit != "F" {
		t.Fatalf("unit labels: page=%q grid=%q", page.Unit, page.Week[0].Unit)
	}
}

func TestRenderUnknownUnitFallsBackToCelsius(t *testing.T) {
	page := Render(parisResult(), weather.Unit("K"), time.UTC)
	if page.Unit != "C" || page.Card.Temperature != 18 {
		t.Fatalf("unit=%q temp=%v, want Celsius fallback", page.Unit, page.Card.Temperature)
	}
}

func TestThemeFallsBackToDefault(t *testing.T) {
	res := parisResult()
	res.Current.ConditionGroup = "Haze"
	page := Render(res, weather.UnitCelsius, time.UTC)
	if page.Card.Theme != "default" {
		t.Fatalf("theme = %q, want default", page.Card.Theme)
	}
}
