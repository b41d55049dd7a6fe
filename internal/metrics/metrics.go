// Package metrics collects split statistics for partsplit.
//
// A Collector is safe to share between runs; every counter is atomic.
//
// Usage:
//
//	collector := metrics.NewCollector("nightly-backup")
//	result, err := splitter.Split(path, &splitter.Options{ChunkSize: 1 << 20, Metrics: collector})
//	snap := collector.GetSnapshot()
//	fmt.Println(snap.PartsWritten, snap.BytesWritten)
package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

// Collector tracks split metrics.
type Collector struct {
	name string

	// Run counters
	runsTotal  atomic.Uint64
	runsFailed atomic.Uint64

	// Part counters
	partsWritten  atomic.Uint64
	bytesWritten  atomic.Uint64
	partsVerified atomic.Uint64
	comparisons   atomic.Uint64
	mismatches    atomic.Uint64

	// Errors by kind
	configErrors atomic.Uint64
	openErrors   atomic.Uint64
	readErrors   atomic.Uint64
	writeErrors  atomic.Uint64
	spaceErrors  atomic.Uint64

	// Runs halted by a reference mismatch
	mismatchRuns atomic.Uint64

	chunkDurations *durationHistogram
	lastRunSec     atomic.Int64 // Unix seconds
}

// NewCollector creates a new metrics collector.
func NewCollector(name string) *Collector {
	return &Collector{
		name:           name,
		chunkDurations: newDurationHistogram(),
	}
}

// RecordPart records one written part file of size bytes.
// duration covers write, verification and comparison of that part.
func (c *Collector) RecordPart(size int, duration time.Duration) {
	c.partsWritten.Add(1)
	c.bytesWritten.Add(uint64(size)) //nolint:gosec // G115: size is a non-negative read count
	c.chunkDurations.observe(duration)
}

// RecordVerify records a part checksummed after writing.
func (c *Collector) RecordVerify() {
	c.partsVerified.Add(1)
}

// RecordComparison records a part compared against its reference.
func (c *Collector) RecordComparison(matched bool) {
	c.comparisons.Add(1)
	if !matched {
		c.mismatches.Add(1)
	}
}

// RecordRun records a completed split.
func (c *Collector) RecordRun() {
	c.runsTotal.Add(1)
	c.lastRunSec.Store(time.Now().Unix())
}

// RecordRunError records a failed split. kind is one of "config", "open",
// "read", "write", "space" or "mismatch"; any other kind only counts as a
// failed run.
func (c *Collector) RecordRunError(kind string) {
	c.runsTotal.Add(1)
	c.runsFailed.Add(1)
	c.lastRunSec.Store(time.Now().Unix())

	switch kind {
	case "config":
		c.configErrors.Add(1)
	case "open":
		c.openErrors.Add(1)
	case "read":
		c.readErrors.Add(1)
	case "write":
		c.writeErrors.Add(1)
	case "space":
		c.spaceErrors.Add(1)
	case "mismatch":
		c.mismatchRuns.Add(1)
	}
}

// GetSnapshot returns a snapshot of current metrics.
func (c *Collector) GetSnapshot() *Snapshot {
	return &Snapshot{
		Name:             c.name,
		RunsTotal:        c.runsTotal.Load(),
		RunsFailed:       c.runsFailed.Load(),
		PartsWritten:     c.partsWritten.Load(),
		BytesWritten:     c.bytesWritten.Load(),
		PartsVerified:    c.partsVerified.Load(),
		Comparisons:      c.comparisons.Load(),
		Mismatches:       c.mismatches.Load(),
		ConfigErrors:     c.configErrors.Load(),
		OpenErrors:       c.openErrors.Load(),
		ReadErrors:       c.readErrors.Load(),
		WriteErrors:      c.writeErrors.Load(),
		SpaceErrors:      c.spaceErrors.Load(),
		MismatchRuns:     c.mismatchRuns.Load(),
		ChunkDurationP50: c.chunkDurations.percentile(0.50),
		ChunkDurationP95: c.chunkDurations.percentile(0.95),
		ChunkDurationP99: c.chunkDurations.percentile(0.99),
		LastRunUnixSec:   c.lastRunSec.Load(),
	}
}

// Reset resets all metrics (useful for testing).
func (c *Collector) Reset() {
	for _, v := range []*atomic.Uint64{
		&c.runsTotal, &c.runsFailed,
		&c.partsWritten, &c.bytesWritten, &c.partsVerified, &c.comparisons, &c.mismatches,
		&c.configErrors, &c.openErrors, &c.readErrors, &c.writeErrors,
		&c.spaceErrors, &c.mismatchRuns,
	} {
		v.Store(0)
	}
	c.chunkDurations.reset()
	c.lastRunSec.Store(0)
}

// Snapshot is a point-in-time view of metrics.
type Snapshot struct {
	Name string

	RunsTotal  uint64
	RunsFailed uint64

	PartsWritten  uint64
	BytesWritten  uint64
	PartsVerified uint64
	Comparisons   uint64
	Mismatches    uint64

	ConfigErrors uint64
	OpenErrors   uint64
	ReadErrors   uint64
	WriteErrors  uint64
	SpaceErrors  uint64
	MismatchRuns uint64

	// Per-chunk processing time percentiles (bucket upper bounds)
	ChunkDurationP50 time.Duration
	ChunkDurationP95 time.Duration
	ChunkDurationP99 time.Duration

	LastRunUnixSec int64
}

// bucketBounds are the exclusive upper bounds of the histogram buckets.
// The last bucket is unbounded.
var bucketBounds = [...]time.Duration{
	time.Microsecond,
	10 * time.Microsecond,
	100 * time.Microsecond,
	time.Millisecond,
	10 * time.Millisecond,
	100 * time.Millisecond,
	time.Second,
	10 * time.Second,
	100 * time.Second,
}

// bucketEstimates are the values reported for a percentile landing in each bucket.
var bucketEstimates = [...]time.Duration{
	500 * time.Nanosecond,
	5 * time.Microsecond,
	50 * time.Microsecond,
	500 * time.Microsecond,
	5 * time.Millisecond,
	50 * time.Millisecond,
	500 * time.Millisecond,
	5 * time.Second,
	50 * time.Second,
	100 * time.Second,
}

// durationHistogram is a fixed-bucket histogram for chunk durations.
type durationHistogram struct {
	buckets [len(bucketEstimates)]atomic.Uint64
}

func newDurationHistogram() *durationHistogram {
	return &durationHistogram{}
}

func (h *durationHistogram) observe(d time.Duration) {
	bucket := len(bucketBounds)
	for i, bound := range bucketBounds {
		if d < bound {
			bucket = i
			break
		}
	}
	h.buckets[bucket].Add(1)
}

func (h *durationHistogram) reset() {
	for i := range h.buckets {
		h.buckets[i].Store(0)
	}
}

// percentile approximates a percentile from the histogram buckets.
func (h *durationHistogram) percentile(p float64) time.Duration {
	var total uint64
	for i := range h.buckets {
		total += h.buckets[i].Load()
	}

	if total == 0 {
		return 0
	}

	target := uint64(math.Ceil(float64(total) * p))
	if target == 0 {
		target = 1
	}
	var count uint64
	for i := range h.buckets {
		count += h.buckets[i].Load()
		if count >= target {
			return bucketEstimates[i]
		}
	}

	return 0
}

// NoopCollector is a metrics collector that does nothing.
type NoopCollector struct{}

func (NoopCollector) RecordPart(int, time.Duration) {}
func (NoopCollector) RecordVerify()                 {}
func (NoopCollector) RecordComparison(bool)         {}
func (NoopCollector) RecordRun()                    {}
func (NoopCollector) RecordRunError(string)         {}
