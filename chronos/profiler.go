// Package chronos is an in-process function-timing profiler. Call sites
// bracket a region with Start/Stop keyed by a function name and a call id;
// at program end the per-call records are folded into one row per function
// and emitted as comma- and tab-separated reports.
package chronos

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/colorfulnotion/chronos/log"
)

type recordKey struct {
	name string
	id   string
}

// Profiler owns the timing records of one process. It is safe for
// concurrent use; a single mutex guards lookup, insertion and aggregation.
type Profiler struct {
	mu      sync.Mutex
	records []*Record
	index   map[recordKey]int
	// folded is set by aggregate and cleared by any later Start or Stop.
	folded bool

	now  func() time.Time
	tick func() int64
}

// Option configures a Profiler.
type Option func(*Profiler)

// WithClock replaces the clock used to stamp start and stop events.
func WithClock(now func() time.Time) Option {
	return func(p *Profiler) { p.now = now }
}

// WithTickSource replaces the microsecond tick source used by ID.
func WithTickSource(tick func() int64) Option {
	return func(p *Profiler) { p.tick = tick }
}

// New returns an empty profiler.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		index: make(map[recordKey]int),
		now:   time.Now,
		tick:  steadyMicros,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var instance atomic.Pointer[Profiler]

// Instance returns the process-wide profiler, creating it on first access.
func Instance() *Profiler {
	if p := instance.Load(); p != nil {
		return p
	}
	instance.CompareAndSwap(nil, New())
	return instance.Load()
}

// SetInstance installs p as the process-wide profiler.
func SetInstance(p *Profiler) {
	instance.Store(p)
}

// Release drops the process-wide profiler. The next Instance call starts
// from an empty registry.
func Release() {
	instance.Store(nil)
}

// lookup returns the position of the (name, id) record, or -1.
// Caller holds p.mu.
func (p *Profiler) lookup(name, id string) int {
	if i, ok := p.index[recordKey{name, id}]; ok {
		return i
	}
	return -1
}

// Start stamps the start time of the (name, id) record, creating it if it
// has not been seen. A repeated Start discards the pending interval.
func (p *Profiler) Start(name, id string, enabled bool) {
	if !enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.folded = false
	if i := p.lookup(name, id); i >= 0 {
		p.records[i].SetStart(p.now())
		return
	}
	r := NewRecord(name, id)
	r.SetStart(p.now())
	p.index[recordKey{name, id}] = len(p.records)
	p.records = append(p.records, r)
}

// Stop closes the interval opened by Start and records its length. A Stop
// with no matching Start is ignored and creates nothing.
func (p *Profiler) Stop(name, id string, enabled bool) {
	if !enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.lookup(name, id)
	if i < 0 {
		log.Debug(log.ProfilerMonitoring, "stop without start", "func", name, "id", id)
		return
	}
	p.folded = false
	r := p.records[i]
	r.SetStop(p.now())
	r.AddTime(r.Stop().Sub(r.Start()).Seconds())
}

// Track starts (name, id) and returns the matching stop, for use with defer.
func (p *Profiler) Track(name, id string, enabled bool) func() {
	p.Start(name, id, enabled)
	return func() { p.Stop(name, id, enabled) }
}

// ID returns a best-effort unique call id derived from the monotonic clock
// at microsecond resolution. Two calls within the same microsecond collide.
func (p *Profiler) ID() string {
	return HashTick(p.tick())
}

// Len returns the number of records currently held.
func (p *Profiler) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.records)
}

// Records returns a copy of the records in registry order.
func (p *Profiler) Records() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Record, len(p.records))
	for i, r := range p.records {
		out[i] = *r
	}
	return out
}

// Aggregate folds every record sharing a function name into one summary
// record and replaces the registry contents with the summaries, ordered by
// name. Each member's total is fed to the summary as one sample, so max and
// min describe per-call-id totals; the call count is the number of completed
// calls across all ids, and the mean is the summed total divided by that
// call count rather than by the number of ids. The summary keeps the id of
// the first member seen.
// Aggregating again without an intervening Start or Stop changes nothing.
func (p *Profiler) Aggregate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aggregate()
}

func (p *Profiler) aggregate() {
	if p.folded {
		return
	}
	groups := make(map[string]*Record)
	calls := make(map[string]int64)
	var names []string
	for _, r := range p.records {
		agg, ok := groups[r.Name]
		if !ok {
			agg = NewRecord(r.Name, r.ID)
			groups[r.Name] = agg
			names = append(names, r.Name)
		}
		if r.calls == 0 {
			continue
		}
		agg.AddTime(r.total)
		calls[r.Name] += r.calls
	}
	sort.Strings(names)

	records := make([]*Record, 0, len(names))
	index := make(map[recordKey]int, len(names))
	for _, name := range names {
		agg := groups[name]
		if n := calls[name]; n > 0 {
			agg.calls = n
			agg.mean = agg.total / float64(n)
		}
		index[recordKey{agg.Name, agg.ID}] = len(records)
		records = append(records, agg)
	}
	log.Debug(log.ProfilerMonitoring, "aggregated", "records", len(p.records), "functions", len(records))
	p.records = records
	p.index = index
	p.folded = true
}
