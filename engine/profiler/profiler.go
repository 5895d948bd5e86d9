package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-scenes/log"
)

var logger = log.New("profiler")

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	Frames      int
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for a render loop.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	name           string
	frameCount     int
	totalFrames    uint64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	now            func() time.Time
}

// NewProfiler creates a new Profiler labelled with the owning loop's name.
// Update interval defaults to 1 second.
//
// Parameters:
//   - name: label printed with every report
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(name string) *Profiler {
	return &Profiler{
		name:           name,
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
}

// SetInterval changes the reporting interval. Non-positive values are ignored.
//
// Parameters:
//   - d: the new interval
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// TotalFrames returns the number of frames recorded since creation.
func (p *Profiler) TotalFrames() uint64 {
	return p.totalFrames
}

// Last returns the most recently reported window.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	p.totalFrames++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		Frames:  p.frameCount,
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

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

	logger.Infof("%s: FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.name, s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
