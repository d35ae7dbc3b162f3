package weather

import "time"

// MaxDailyEntries caps the bucketized forecast length.
const MaxDailyEntries = 7

// BucketDaily reduces the raw fixed-interval feed to one sample per local
// calendar date, keeping the first sample seen for each date in feed order.
// The feed arrives in ascending timestamp order, so the result preserves
// ascending date order. If the feed does not start at local midnight, the
// first entry still stands in for that partial day.
func BucketDaily(samples []ForecastSample, tz *time.Location) DailyForecast {
	if tz == nil {
		tz = time.Local
	}

	seen := make(map[string]struct{}, MaxDailyEntries)
	daily := make(DailyForecast, 0, MaxDailyEntries)

	for _, s := range samples {
		day := time.Unix(s.TimestampUnix, 0).In(tz).Format("2006-01-02")
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}

		daily = append(daily, s)
		if len(daily) == MaxDailyEntries {
			break
		}
	}

	return daily
}
