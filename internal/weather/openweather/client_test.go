package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skylineapp/skyline/internal/weather"
)

const currentBody = `{
	"cod": 200,
	"name": "Paris",
	"coord": {"lat": 48.8566, "lon": 2.3522},
	"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
	"main": {"temp": 18.0, "humidity": 64},
	"wind": {"speed": 4.1}
}`

// The forecast endpoint reports its success indicator as a numeric string,
// unlike the current-conditions endpoint.
const forecastBody = `{
	"cod": "200",
	"list": [
		{"dt": 1772344800, "main": {"temp": 17.2}, "weather": [{"description": "light rain", "icon": "10d"}]},
		{"dt": 1772355600, "main": {"temp": 19.4}, "weather": [{"description": "clear sky", "icon": "01d"}]}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), "test-key", srv.URL), srv
}

func TestCurrentByCityParsesCanonicalLocation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "paris" {
			t.Errorf("q = %q, want %q", got, "paris")
		}
		if r.URL.Query().Get("appid") != "test-key" {
			t.Error("missing appid")
		}
		if r.URL.Query().Get("units") != "metric" {
			t.Error("missing units=metric")
		}
		w.Write([]byte(currentBody))
	})

	obs, err := client.CurrentByCity(context.Background(), "paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.Location.Name != "Paris" || obs.Location.Latitude != 48.8566 || obs.Location.Longitude != 2.3522 {
		t.Fatalf("location = %+v", obs.Location)
	}
	if obs.Current.TemperatureC != 18.0 || obs.Current.HumidityPct != 64 || obs.Current.WindSpeedMps != 4.1 {
		t.Fatalf("current = %+v", obs.Current)
	}
	if obs.Current.ConditionGroup != "Clouds" || obs.Current.IconID != "03d" {
		t.Fatalf("condition = %+v", obs.Current)
	}
}

func TestCurrentByCityNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": 404, "message": "city not found"}`))
	})

	_, err := client.CurrentByCity(context.Background(), "nowhere")
	if weather.KindOf(err) != weather.FailureNotFound {
		t.Fatalf("kind = %v, want not_found", weather.KindOf(err))
	}
}

func TestCurrentByCityMalformedBodyIsNetworkFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cod": 200, "name": `))
	})

	_, err := client.CurrentByCity(context.Background(), "paris")
	if weather.KindOf(err) != weather.FailureNetwork {
		t.Fatalf("kind = %v, want network", weather.KindOf(err))
	}
}

func TestForecastToleratesStringSuccessIndicator(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lon") == "" {
			t.Error("missing coordinates")
		}
		w.Write([]byte(forecastBody))
	})

	samples, err := client.Forecast(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].TimestampUnix != 1772344800 || samples[0].TemperatureC != 17.2 {
		t.Fatalf("sample 0 = %+v", samples[0])
	}
	if samples[1].Description != "clear sky" || samples[1].IconID != "01d" {
		t.Fatalf("sample 1 = %+v", samples[1])
	}
}

func TestForecastNonSuccessIndicator(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cod": "401", "message": "invalid api key"}`))
	})

	_, err := client.Forecast(context.Background(), 48.8566, 2.3522)
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestForecastMalformedBodyIsNetworkFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cod": "200", "list": [{`))
	})

	_, err := client.Forecast(context.Background(), 48.8566, 2.3522)
	if weather.KindOf(err) != weather.FailureNetwork {
		t.Fatalf("kind = %v, want network", weather.KindOf(err))
	}
}

func TestServerErrorIsNetworkFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CurrentByCity(context.Background(), "paris")
	if weather.KindOf(err) != weather.FailureNetwork {
		t.Fatalf("kind = %v, want network", weather.KindOf(err))
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient(http.DefaultClient, "", "http://127.0.0.1:0")

	_, err := client.CurrentByCity(context.Background(), "paris")
	if weather.KindOf(err) != weather.FailureNetwork {
		t.Fatalf("kind = %v, want network", weather.KindOf(err))
	}
}
