package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/skylineapp/skyline/internal/weather"
)

// Prefetcher warms the result cache for a fixed city list at the top of each
// hour. The cache keys on (query, hour), so entries fetched at minute zero
// serve every lookup for the rest of that hour; this job is a prefetch, not
// an eviction sweep — nothing is ever removed.
type Prefetcher struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []string
}

// New creates a Prefetcher for the given cities.
func New(cities []string, service *weather.Service) *Prefetcher {
	s := gocron.NewScheduler(time.UTC)
	return &Prefetcher{
		scheduler: s,
		service:   service,
		cities:    cities,
	}
}

// Start schedules the hourly job and starts the underlying scheduler. It
// also runs one warm-up pass immediately so the current hour is covered.
func (p *Prefetcher) Start() error {
	if len(p.cities) == 0 {
		log.Println("prefetch: no cities configured; nothing to schedule")
		return nil
	}

	_, err := p.scheduler.Cron("0 * * * *").Do(p.Run)
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	go p.Run()
	return nil
}

// Run fetches every configured city once. Failures are logged and skipped;
// the next hourly pass tries again.
func (p *Prefetcher) Run() {
	for _, city := range p.cities {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		if err := p.service.Warm(ctx, city); err != nil {
			log.Printf("prefetch: fetch failed for %q: %v", city, err)
		}
		cancel()
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (p *Prefetcher) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}
