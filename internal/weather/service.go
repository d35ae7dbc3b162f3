package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Cache memoizes successful fetch results by (location query, hour of day).
// The hour component makes entries expire implicitly when the wall-clock
// hour changes; no sweep runs.
type Cache interface {
	Get(query string, hour int) (FetchResult, bool)
	Put(query string, hour int, res FetchResult)
}

// DefaultLocateTimeout bounds how long a device-coordinate lookup may wait
// for the Locator before failing closed.
const DefaultLocateTimeout = 5 * time.Second

// Service runs the acquisition pipeline: resolve the location, consult the
// cache, issue the two dependent provider calls, bucketize the forecast,
// store the pair, and apply the outcome to the session.
type Service struct {
	provider Provider
	cache    Cache
	session  *Session

	locator       Locator
	locateTimeout time.Duration

	now func() time.Time
	tz  *time.Location
}

// NewService creates a Service. The session is owned by the caller so a
// fresh one can be injected per test or per user session.
func NewService(provider Provider, cache Cache, session *Session) *Service {
	return &Service{
		provider:      provider,
		cache:         cache,
		session:       session,
		locateTimeout: DefaultLocateTimeout,
		now:           time.Now,
		tz:            time.Local,
	}
}

// SetLocator installs the device-coordinate source. A non-positive timeout
// keeps the default.
func (s *Service) SetLocator(l Locator, timeout time.Duration) {
	s.locator = l
	if timeout > 0 {
		s.locateTimeout = timeout
	}
}

// SetClock overrides the wall-clock source used for cache keying.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetTimezone overrides the local timezone used for daily bucketing.
func (s *Service) SetTimezone(tz *time.Location) {
	if tz != nil {
		s.tz = tz
	}
}

// LookupCity runs the pipeline for a free-text city query. An empty or
// whitespace-only query is rejected before any network call and does not
// touch displayed state.
func (s *Service) LookupCity(ctx context.Context, city string) (FetchResult, error) {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return FetchResult{}, ErrEmptyQuery
	}

	seq := s.session.nextSeq()
	res, err := s.fetch(ctx, strings.ToLower(trimmed), func(ctx context.Context) (Observation, error) {
		return s.provider.CurrentByCity(ctx, trimmed)
	})
	s.finish(seq, trimmed, res, err)
	return res, err
}

// LookupCoords runs the pipeline for known device coordinates, using the
// provider's reverse lookup to obtain the canonical name.
func (s *Service) LookupCoords(ctx context.Context, lat, lon float64) (FetchResult, error) {
	seq := s.session.nextSeq()
	res, err := s.fetch(ctx, coordKey(lat, lon), func(ctx context.Context) (Observation, error) {
		return s.provider.CurrentByCoords(ctx, lat, lon)
	})
	s.finish(seq, "", res, err)
	return res, err
}

// LookupDevice obtains coordinates from the configured Locator and runs the
// coordinate pipeline. Locator failure (permission denied, timeout) fails
// closed; there is no fallback city.
func (s *Service) LookupDevice(ctx context.Context) (FetchResult, error) {
	if s.locator == nil {
		return FetchResult{}, NewFetchError(FailureNetwork, errors.New("no locator configured"))
	}

	locateCtx, cancel := context.WithTimeout(ctx, s.locateTimeout)
	defer cancel()

	lat, lon, err := s.locator.Locate(locateCtx)
	if err != nil {
		ferr := NewFetchError(FailureNetwork, fmt.Errorf("geolocation: %w", err))
		seq := s.session.nextSeq()
		s.finish(seq, "", FetchResult{}, ferr)
		return FetchResult{}, ferr
	}

	return s.LookupCoords(ctx, lat, lon)
}

// Warm runs the city pipeline without touching session display state, so a
// background job can populate the cache while a user is mid-session.
func (s *Service) Warm(ctx context.Context, city string) error {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return ErrEmptyQuery
	}
	_, err := s.fetch(ctx, strings.ToLower(trimmed), func(ctx context.Context) (Observation, error) {
		return s.provider.CurrentByCity(ctx, trimmed)
	})
	return err
}

// fetch is the shared pipeline body: cache consult, then the two dependent
// calls, then bucketize and store. Only successes are cached, so a NotFound
// or transport failure never serves a stale negative later.
func (s *Service) fetch(ctx context.Context, key string, current func(context.Context) (Observation, error)) (FetchResult, error) {
	hour := s.now().Hour()
	if res, ok := s.cache.Get(key, hour); ok {
		return res, nil
	}

	obs, err := current(ctx)
	if err != nil {
		return FetchResult{}, err
	}

	samples, err := s.provider.Forecast(ctx, obs.Location.Latitude, obs.Location.Longitude)
	if err != nil {
		// Current conditions without forecast must not be presented; the
		// combined fetch fails as a whole.
		return FetchResult{}, NewFetchError(FailurePartialData, err)
	}

	res := FetchResult{
		Location: obs.Location,
		Current:  obs.Current,
		Daily:    BucketDaily(samples, s.tz),
	}
	s.cache.Put(key, hour, res)
	return res, nil
}

// finish applies the outcome to the session and remembers successful city
// searches.
func (s *Service) finish(seq uint64, query string, res FetchResult, err error) {
	if err != nil {
		if !s.session.apply(seq, nil, err) {
			log.Printf("weather: discarding stale lookup result (seq %d)", seq)
		}
		return
	}
	if !s.session.apply(seq, &res, nil) {
		log.Printf("weather: discarding stale lookup result (seq %d)", seq)
		return
	}
	if query != "" {
		s.session.RememberSearch(query)
	}
}

func coordKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
