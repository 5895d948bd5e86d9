// Package frame provides the refresh signal that drives a render loop.
package frame

import (
	"sync"
	"time"
)

// DefaultFPS is the refresh rate used when a non-positive rate is requested.
const DefaultFPS = 60.0

// Source delivers one value per display refresh. The receiver renders one frame per value.
type Source interface {
	// Frames returns the channel of refresh signals. It is never closed; use Done to detect Stop.
	//
	// Returns:
	//   - <-chan time.Time: refresh timestamps
	Frames() <-chan time.Time

	// Done returns a channel closed once Stop has been called.
	//
	// Returns:
	//   - <-chan struct{}: the stop signal
	Done() <-chan struct{}

	// FrameDone is called by the consumer after every completed frame.
	FrameDone()

	// Stop ends the signal. Safe to call more than once.
	Stop()
}

// tickerSource delivers frames on a wall-clock ticker.
type tickerSource struct {
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

var _ Source = &tickerSource{}

// NewTickerSource creates a real-time refresh signal at the given rate.
//
// Parameters:
//   - fps: frames per second (defaults to 60 if <= 0)
//
// Returns:
//   - Source: the running source
func NewTickerSource(fps float64) Source {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &tickerSource{
		ticker: time.NewTicker(time.Duration(float64(time.Second) / fps)),
		done:   make(chan struct{}),
	}
}

func (s *tickerSource) Frames() <-chan time.Time {
	return s.ticker.C
}

func (s *tickerSource) Done() <-chan struct{} {
	return s.done
}

func (s *tickerSource) FrameDone() {}

func (s *tickerSource) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

// ManualSource is a Source advanced explicitly by the caller, one frame per Tick.
type ManualSource struct {
	frames   chan time.Time
	finished chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu  *sync.Mutex
	now time.Time
}

var _ Source = &ManualSource{}

// NewManualSource creates a source that only emits frames on Tick.
//
// Returns:
//   - *ManualSource: the source
func NewManualSource() *ManualSource {
	return &ManualSource{
		frames:   make(chan time.Time),
		finished: make(chan struct{}),
		done:     make(chan struct{}),
		mu:       &sync.Mutex{},
		now:      time.Unix(0, 0),
	}
}

// Tick emits one frame and blocks until the consumer reports it finished.
// Each tick advances the synthetic clock by one 60 Hz interval.
//
// Returns:
//   - bool: false if the source was stopped before the frame completed
func (s *ManualSource) Tick() bool {
	s.mu.Lock()
	s.now = s.now.Add(time.Second / time.Duration(DefaultFPS))
	now := s.now
	s.mu.Unlock()

	select {
	case s.frames <- now:
	case <-s.done:
		return false
	}
	select {
	case <-s.finished:
		return true
	case <-s.done:
		return false
	}
}

// TickN calls Tick n times and returns how many frames completed.
//
// Parameters:
//   - n: number of frames
//
// Returns:
//   - int: completed frames
func (s *ManualSource) TickN(n int) int {
	completed := 0
	for i := 0; i < n; i++ {
		if !s.Tick() {
			break
		}
		completed++
	}
	return completed
}

func (s *ManualSource) Frames() <-chan time.Time {
	return s.frames
}

func (s *ManualSource) Done() <-chan struct{} {
	return s.done
}

func (s *ManualSource) FrameDone() {
	select {
	case s.finished <- struct{}{}:
	case <-s.done:
	}
}

func (s *ManualSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
