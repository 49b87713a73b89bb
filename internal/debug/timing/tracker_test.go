package timing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	mu     sync.Mutex
	events []string
}

func (p *published) Publish(eventType string, _ map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func fakeClock(steps ...time.Duration) func() time.Time {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		t := base.Add(steps[i])
		i++
		return t
	}
}

func TestStartRecordsDuration(t *testing.T) {
	events := &published{}
	tt := NewTracker(events)
	tt.now = fakeClock(0, 30*time.Millisecond, 100*time.Millisecond, 110*time.Millisecond)

	stop := tt.Start("load_program")
	stop()
	stop()
	tt.Start("load_program")()

	require.Equal(t, []time.Duration{30 * time.Millisecond, 10 * time.Millisecond}, tt.GetTimings("load_program"))
	assert.Equal(t, 20*time.Millisecond, tt.GetAverageTime("load_program"))
	assert.Equal(t, []string{"timing_completed", "timing_completed"}, events.events)
	assert.Equal(t, []string{"load_program"}, tt.Operations())
}

func TestDisabledAndReset(t *testing.T) {
	tt := NewTracker(nil)
	tt.SetEnabled(false)
	tt.Start("noop")()
	assert.Nil(t, tt.GetTimings("noop"))
	assert.Zero(t, tt.GetAverageTime("noop"))

	tt.SetEnabled(true)
	tt.Start("a")()
	tt.Start("b")()
	tt.Reset("a")
	assert.Nil(t, tt.GetTimings("a"))
	assert.Len(t, tt.GetTimings("b"), 1)

	tt.Reset("")
	assert.Empty(t, tt.Operations())
}
