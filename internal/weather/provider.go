package weather

import "context"

// Observation bundles what the provider's current-conditions endpoint
// returns: the canonical location it resolved the query to, plus the
// conditions themselves. Resolution and the first fetch are one call.
type Observation struct {
	Location Location
	Current  CurrentConditions
}

// Provider abstracts the upstream weather data source. CurrentByCity relies
// on the provider's fuzzy city matching; CurrentByCoords is the reverse
// lookup used for device coordinates. Both report FailureNotFound when the
// provider confirms no match and FailureNetwork for transport-level trouble.
type Provider interface {
	CurrentByCity(ctx context.Context, city string) (Observation, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (Observation, error)
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastSample, error)
}

// Locator yields the device's coordinates. The concrete implementation lives
// with the embedding client (browser geolocation, OS location service); the
// pipeline only depends on this boundary. Implementations must honor context
// cancellation and must not serve cached positions.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}
