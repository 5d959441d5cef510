package stats

import (
	"fmt"
	"time"
)

// FrameTimeAverager keeps the mean of the last N frame durations.
// not thread safe
type FrameTimeAverager struct {
	values []time.Duration
	index  int
	count  int
	total  int64
}

func NewFrameTimeAverager(window int) (*FrameTimeAverager, error) {
	if window <= 0 {
		return nil, fmt.Errorf("stats: window must be positive, got %d", window)
	}
	return &FrameTimeAverager{values: make([]time.Duration, window)}, nil
}

// Push records one frame, evicting the oldest once the window is full.
func (a *FrameTimeAverager) Push(d time.Duration) {
	a.values[a.index] = d
	a.index = (a.index + 1) % len(a.values)
	if a.count < len(a.values) {
		a.count++
	}
	a.total++
}

// Average is the mean over the window, 0 before the first Push.
func (a *FrameTimeAverager) Average() time.Duration {
	if a.count == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < a.count; i++ {
		sum += a.values[i]
	}
	return sum / time.Duration(a.count)
}

// FPS is the frame rate implied by Average.
func (a *FrameTimeAverager) FPS() float64 {
	avg := a.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Frames is the number of frames pushed since creation.
func (a *FrameTimeAverager) Frames() int64 {
	return a.total
}
