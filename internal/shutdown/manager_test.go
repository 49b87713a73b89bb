package shutdown

import (
	"sync"
	"testing"
	"time"

	"intuition-toolbar/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseOrderOnce(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)

	var mu sync.Mutex
	var order []string
	record := func(name string) Func {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}
	m.Register("bus", record("bus"))
	m.Register("poller", record("poller"))
	m.Register("frontend", record("frontend"))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"frontend", "poller", "bus"}, order)
	assert.Error(t, m.Context().Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestSlowComponentTimesOut(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, 10*time.Millisecond)
	release := make(chan struct{})
	defer close(release)

	stopped := false
	m.Register("fast", Func(func() { stopped = true }))
	m.Register("stuck", Func(func() { <-release }))

	start := time.Now()
	m.Shutdown()
	require.Less(t, time.Since(start), time.Second)
	assert.True(t, stopped)
}
