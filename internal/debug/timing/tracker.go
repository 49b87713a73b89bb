package timing

import (
	"sync"
	"time"
)

type EventPublisher interface {
	Publish(eventType string, data map[string]interface{})
}

// Tracker records how long named operations take.
type Tracker struct {
	timings  map[string][]time.Duration
	mu       sync.RWMutex
	eventBus EventPublisher
	enabled  bool
	now      func() time.Time
}

func NewTracker(eventBus EventPublisher) *Tracker {
	return &Tracker{
		timings:  make(map[string][]time.Duration),
		eventBus: eventBus,
		enabled:  true,
		now:      time.Now,
	}
}

// Start begins timing operation; call the returned func when it ends.
func (tt *Tracker) Start(operation string) func() {
	tt.mu.RLock()
	enabled := tt.enabled
	tt.mu.RUnlock()
	if !enabled {
		return func() {}
	}

	start := tt.now()
	var once sync.Once
	return func() {
		once.Do(func() { tt.record(operation, start) })
	}
}

func (tt *Tracker) record(operation string, start time.Time) {
	duration := tt.now().Sub(start)

	tt.mu.Lock()
	tt.timings[operation] = append(tt.timings[operation], duration)
	tt.mu.Unlock()

	if tt.eventBus != nil {
		tt.eventBus.Publish("timing_completed", map[string]interface{}{
			"operation": operation,
			"duration":  duration,
		})
	}
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Operations lists every operation with at least one sample.
func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	return ops
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

// Reset drops samples for operation, or for everything when it is empty.
func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
