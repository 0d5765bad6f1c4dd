package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/telemetry/metrics"
)

// LookupProgress reports enrichment progress on a terminal line. It
// satisfies enrich.Metrics and forwards every event to Next when set.
type LookupProgress struct {
	mu       sync.Mutex
	writer   io.Writer
	started  int
	finished int
	failed   int
	begin    time.Time

	// Next receives the same lookup events, usually the metrics collector.
	Next enrich.Metrics
}

var _ enrich.Metrics = (*LookupProgress)(nil)

// NewLookupProgress creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewLookupProgress(w io.Writer, next enrich.Metrics) *LookupProgress {
	if w == nil {
		w = os.Stderr
	}
	return &LookupProgress{writer: w, Next: next}
}

// LookupStarted counts a lookup in flight.
func (p *LookupProgress) LookupStarted() {
	p.mu.Lock()
	if p.started == 0 {
		p.begin = time.Now()
	}
	p.started++
	p.render()
	p.mu.Unlock()

	if p.Next != nil {
		p.Next.LookupStarted()
	}
}

// LookupFinished counts a completed lookup.
func (p *LookupProgress) LookupFinished(backend, status string, duration time.Duration) {
	p.mu.Lock()
	p.finished++
	if status == metrics.LookupError {
		p.failed++
	}
	p.render()
	p.mu.Unlock()

	if p.Next != nil {
		p.Next.LookupFinished(backend, status, duration)
	}
}

// Finish ends the progress line. It prints nothing when no lookup ran.
func (p *LookupProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started == 0 {
		return
	}
	fmt.Fprintf(p.writer, "\n")
}

// Counts returns started, finished and failed lookups.
func (p *LookupProgress) Counts() (started, finished, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started, p.finished, p.failed
}

func (p *LookupProgress) render() {
	rate := 0.0
	if elapsed := time.Since(p.begin).Seconds(); elapsed > 0 {
		rate = float64(p.finished) / elapsed
	}
	fmt.Fprintf(p.writer, "\rFetching DB data: %d/%d done, %d failed (%.1f/s)",
		p.finished, p.started, p.failed, rate)
}
