// Package openweather implements weather.Provider against the OpenWeatherMap
// current-conditions and forecast endpoints.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/skylineapp/skyline/internal/weather"
)

// DefaultBaseURL is the provider's v2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// IconURL returns the provider's icon image URL for an icon id.
func IconURL(iconID string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", iconID)
}

// Client talks to OpenWeatherMap. Each call is a single attempt behind a
// circuit breaker; there is no retry or backoff.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(httpClient *http.Client, apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		circuit: cb,
	}
}

// statusCode tolerates the provider's inconsistent success indicator: the
// current-conditions endpoint sends `"cod": 200` while the forecast endpoint
// sends `"cod": "200"`. Both normalize to one integer here, before any
// business logic looks at it.
type statusCode int

func (c *statusCode) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("success indicator %q is not numeric", s)
	}
	*c = statusCode(n)
	return nil
}

func (c statusCode) ok() bool {
	return c == http.StatusOK
}

// CurrentByCity resolves a free-text city via the provider's fuzzy match and
// returns current conditions plus the canonical location it echoed back.
func (c *Client) CurrentByCity(ctx context.Context, city string) (weather.Observation, error) {
	values := url.Values{}
	values.Set("q", city)
	return c.current(ctx, values)
}

// CurrentByCoords is the reverse lookup for device coordinates.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (weather.Observation, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.current(ctx, values)
}

func (c *Client) current(ctx context.Context, values url.Values) (weather.Observation, error) {
	var payload struct {
		Cod  statusCode `json:"cod"`
		Name string     `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}

	if err := c.get(ctx, "/weather", values, &payload); err != nil {
		return weather.Observation{}, err
	}
	if !payload.Cod.ok() {
		return weather.Observation{}, weather.NewFetchError(weather.FailureNotFound,
			fmt.Errorf("provider reported no match (cod %d)", payload.Cod))
	}

	obs := weather.Observation{
		Location: weather.Location{
			Name:      payload.Name,
			Latitude:  payload.Coord.Lat,
			Longitude: payload.Coord.Lon,
		},
		Current: weather.CurrentConditions{
			LocationName: payload.Name,
			TemperatureC: payload.Main.Temp,
			HumidityPct:  payload.Main.Humidity,
			WindSpeedMps: payload.Wind.Speed,
		},
	}
	if len(payload.Weather) > 0 {
		obs.Current.Description = payload.Weather[0].Description
		obs.Current.IconID = payload.Weather[0].Icon
		obs.Current.ConditionGroup = payload.Weather[0].Main
	}
	return obs, nil
}

// Forecast fetches the sub-daily forecast series for resolved coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]weather.ForecastSample, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload struct {
		Cod  statusCode `json:"cod"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := c.get(ctx, "/forecast", values, &payload); err != nil {
		return nil, err
	}
	if !payload.Cod.ok() {
		return nil, weather.NewFetchError(weather.FailureNotFound,
			fmt.Errorf("provider reported no forecast (cod %d)", payload.Cod))
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.ForecastSample{
			TimestampUnix: item.Dt,
			TemperatureC:  item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			s.Description = item.Weather[0].Description
			s.IconID = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// get issues one GET through the circuit breaker and decodes the body into
// out. Transport failures, breaker rejections, and undecodable bodies all
// classify as network failures. The provider reports business-level errors
// through the cod field with a 2xx-or-4xx HTTP status and a decodable body,
// so the body is decoded regardless of HTTP status.
func (c *Client) get(ctx context.Context, path string, values url.Values, out any) error {
	if c.apiKey == "" {
		return weather.NewFetchError(weather.FailureNetwork, errors.New("openweather api key is not configured"))
	}

	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.NewFetchError(weather.FailureNetwork, err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("server error: %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return weather.NewFetchError(weather.FailureNetwork, fmt.Errorf("circuit breaker: %w", err))
		}
		return weather.NewFetchError(weather.FailureNetwork, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return weather.NewFetchError(weather.FailureNetwork, errors.New("unexpected result type from circuit breaker"))
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return weather.NewFetchError(weather.FailureNetwork, fmt.Errorf("malformed response body: %w", err))
	}
	return nil
}

var _ weather.Provider = (*Client)(nil)
