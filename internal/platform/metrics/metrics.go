package metrics

import (
	"sync/atomic"
	"time"
)

// Outcome labels for backend calls.
const (
	OutcomeOK          = "ok"
	OutcomeTransport   = "transport"
	OutcomeHTTPStatus  = "http_status"
	OutcomeApplication = "application"
	OutcomeParse       = "parse"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	backendCalls      uint64
	backendOK         uint64
	backendTransport  uint64
	backendHTTP       uint64
	backendApp        uint64
	backendParse      uint64
	backendDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

// Record counts one console request.
func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordBackend counts one call to the HRM backend by outcome.
func (c *Collector) RecordBackend(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.backendCalls, 1)
	switch outcome {
	case OutcomeOK:
		atomic.AddUint64(&c.backendOK, 1)
	case OutcomeTransport:
		atomic.AddUint64(&c.backendTransport, 1)
	case OutcomeHTTPStatus:
		atomic.AddUint64(&c.backendHTTP, 1)
	case OutcomeApplication:
		atomic.AddUint64(&c.backendApp, 1)
	case OutcomeParse:
		atomic.AddUint64(&c.backendParse, 1)
	}
	atomic.AddUint64(&c.backendDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	calls := atomic.LoadUint64(&c.backendCalls)
	backendMs := atomic.LoadUint64(&c.backendDurationMs)
	backendAvg := float64(0)
	if calls > 0 {
		backendAvg = float64(backendMs) / float64(calls)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      errs,
		"rateLimitedTotal": limited,
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
		"backend": map[string]any{
			"callsTotal":    calls,
			"avgDurationMs": backendAvg,
			"outcomes": map[string]uint64{
				OutcomeOK:          atomic.LoadUint64(&c.backendOK),
				OutcomeTransport:   atomic.LoadUint64(&c.backendTransport),
				OutcomeHTTPStatus:  atomic.LoadUint64(&c.backendHTTP),
				OutcomeApplication: atomic.LoadUint64(&c.backendApp),
				OutcomeParse:       atomic.LoadUint64(&c.backendParse),
			},
		},
	}
}
