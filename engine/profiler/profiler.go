package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, animated rig counts, update cost and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	rigCount       int
	updateTime     time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// Stats is the summary of the last logged interval.
type Stats struct {
	FPS           float64
	RigsPerFrame  float64
	AvgUpdateTime time.Duration
	HeapMB        float64
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the clock to time.Now.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame, after every rig has been updated.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, rigs animated per frame, average update time, heap usage,
// allocation rate, GC count/pause times.
//
// Parameters:
//   - rigs: the number of rigs animated this frame
//   - updateTime: the wall time spent updating them
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(rigs int, updateTime time.Duration) bool {
	p.frameCount++
	p.rigCount += rigs
	p.updateTime += updateTime

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	rigsPerFrame := float64(p.rigCount) / float64(p.frameCount)
	avgUpdate := p.updateTime / time.Duration(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024

	// Allocation rate in MB/sec; a steady animation loop should keep this near zero.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Rigs/frame: %.1f | Avg update: %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max: %d µs)",
		fps, rigsPerFrame, avgUpdate, allocMB, allocRateMB, gcCount, maxPauseUs)

	p.last = Stats{
		FPS:           fps,
		RigsPerFrame:  rigsPerFrame,
		AvgUpdateTime: avgUpdate,
		HeapMB:        allocMB,
	}
	p.frameCount = 0
	p.rigCount = 0
	p.updateTime = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// LastStats returns the statistics of the most recently logged interval.
func (p *Profiler) LastStats() Stats {
	return p.last
}
