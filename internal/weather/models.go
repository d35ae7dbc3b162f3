package weather

// Location is a canonical place resolved from user input: the provider's
// echoed name plus the coordinates the forecast call is keyed by.
// Immutable once produced.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is the normalized current-weather view for a location.
// Temperature is always Celsius internally; unit conversion happens only at
// the presentation boundary.
type CurrentConditions struct {
	LocationName string  `json:"locationName"`
	Description  string  `json:"description"`
	TemperatureC float64 `json:"temperatureC"`
	HumidityPct  int     `json:"humidityPct"`
	WindSpeedMps float64 `json:"windSpeedMps"`
	IconID       string  `json:"iconId"`

	// ConditionGroup is the provider's coarse condition label
	// (Clear, Clouds, Rain, Snow, ...), used for theming.
	ConditionGroup string `json:"conditionGroup"`
}

// ForecastSample is one raw entry of the multi-day forecast feed, arriving at
// fixed sub-daily intervals (every 3 hours for the upstream provider).
type ForecastSample struct {
	TimestampUnix int64   `json:"timestampUnix"`
	TemperatureC  float64 `json:"temperatureC"`
	Description   string  `json:"description"`
	IconID        string  `json:"iconId"`
}

// DailyForecast holds one sample per distinct calendar date, each the first
// sample seen for that date in feed order, ascending. Derived from the raw
// feed by BucketDaily and never persisted independently of its fetch.
type DailyForecast []ForecastSample

// FetchResult is the unified outcome of a successful combined fetch: current
// conditions plus the bucketized daily forecast. It is the unit of caching
// and the unit handed to presentation. Failed fetches are represented by
// *FetchError instead and are never cached.
type FetchResult struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Daily    DailyForecast     `json:"daily"`
}
