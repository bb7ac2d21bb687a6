// Package progress throttles simulation progress reporting. Monte
// Carlo callbacks fire thousands of times a second; the reporter turns
// them into a log line at most once per interval.
package progress

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Reporter logs trial progress with rate and remaining-time estimates.
// Safe for concurrent Update calls from simulation workers.
type Reporter struct {
	logger   *log.Logger
	clock    quartz.Clock
	total    int
	interval time.Duration

	mu    sync.Mutex
	start time.Time
	last  time.Time
}

// NewReporter returns a reporter for total trials that logs at most
// once per interval. The clock is injected so tests can control time.
func NewReporter(logger *log.Logger, clock quartz.Clock, total int, interval time.Duration) *Reporter {
	now := clock.Now()
	return &Reporter{
		logger:   logger.WithPrefix("progress"),
		clock:    clock,
		total:    total,
		interval: interval,
		start:    now,
		last:     now,
	}
}

// Update records that done trials have completed and logs if the
// interval has elapsed since the last line.
func (r *Reporter) Update(done int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if now.Sub(r.last) < r.interval {
		return
	}
	r.last = now

	elapsed := now.Sub(r.start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed.Seconds()
	}
	var remaining time.Duration
	if rate > 0 && done < r.total {
		remaining = time.Duration(float64(r.total-done) / rate * float64(time.Second))
	}
	r.logger.Info("running",
		"done", done,
		"total", r.total,
		"rate", int(rate),
		"remaining", remaining.Round(time.Second))
}

// Done logs the final summary regardless of throttling.
func (r *Reporter) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	elapsed := r.clock.Now().Sub(r.start)
	r.logger.Info("finished", "trials", r.total, "elapsed", elapsed.Round(time.Millisecond))
}
