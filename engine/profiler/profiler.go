package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats is one reporting window of the Profiler.
type Stats struct {
	// TickRate is loop iterations per second.
	TickRate float64
	// RenderRate is presented frames per second. With render-on-demand it drops to zero while idle.
	RenderRate float64
	// HeapMB is the live heap in MiB.
	HeapMB float64
	// AllocRateMB is heap churn in MiB per second.
	AllocRateMB float64
	// GCCount is the cumulative number of collections.
	GCCount uint32
	// LastPauseUs and MaxPauseUs are GC pause times in microseconds.
	LastPauseUs uint64
	MaxPauseUs  uint64
	// SysMB is the memory obtained from the OS in MiB.
	SysMB float64
}

// Profiler tracks loop rate, render rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger         *zap.Logger
	now            func() time.Time
	tickCount      int
	renderCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         zap.NewNop(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per loop iteration.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - rendered: whether a frame was presented this iteration
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(rendered bool) bool {
	p.tickCount++
	if rendered {
		p.renderCount++
	}
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	seconds := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		TickRate:    float64(p.tickCount) / seconds,
		RenderRate:  float64(p.renderCount) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.logger.Info("profiler",
		zap.Float64("tps", s.TickRate),
		zap.Float64("fps", s.RenderRate),
		zap.Float64("heap_mb", s.HeapMB),
		zap.Float64("alloc_rate_mb", s.AllocRateMB),
		zap.Uint32("gc", s.GCCount),
		zap.Uint64("gc_last_us", s.LastPauseUs),
		zap.Uint64("gc_max_us", s.MaxPauseUs),
		zap.Float64("sys_mb", s.SysMB),
	)

	p.last = s
	p.tickCount = 0
	p.renderCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently logged window.
//
// Returns:
//   - Stats: the last reported statistics; zero before the first report
func (p *Profiler) Last() Stats {
	return p.last
}
