// Package memtracker counts buffers whose ownership crosses the toolbar/host
// boundary, so a repeated-invocation run can prove every transfer was released.
package memtracker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

type AllocationInfo struct {
	Size        int64
	Tag         string
	AllocatedAt time.Time
	StackTrace  []uintptr
}

type MemoryStats struct {
	TotalAllocated   int64
	TotalDeallocated int64
	CurrentlyActive  int64
	AllocationCount  int64
	// Releases of handles the tracker never saw; a double free shows up here.
	UntrackedReleases int64
}

type EventPublisher interface {
	Publish(eventType string, data map[string]interface{})
}

type Tracker struct {
	allocations  map[uintptr]AllocationInfo
	mu           sync.RWMutex
	events       EventPublisher
	enabled      bool
	stackTraces  bool
	nextHandle   atomic.Uintptr
	totalAlloc   int64
	totalDealloc int64
	allocCount   int64
	untracked    int64
}

func NewTracker(events EventPublisher, enableStackTraces bool) *Tracker {
	return &Tracker{
		allocations: make(map[uintptr]AllocationInfo),
		events:      events,
		enabled:     true,
		stackTraces: enableStackTraces,
	}
}

// NextHandle issues a synthetic handle for Go-side buffers that have no
// stable address of their own.
func (mt *Tracker) NextHandle() uintptr {
	return mt.nextHandle.Add(1)
}

func (mt *Tracker) TrackAllocation(ptr uintptr, size int64, tag string) {
	mt.mu.Lock()
	if !mt.enabled {
		mt.mu.Unlock()
		return
	}

	info := AllocationInfo{
		Size:        size,
		Tag:         tag,
		AllocatedAt: time.Now(),
	}
	if mt.stackTraces {
		var pcs [32]uintptr
		n := runtime.Callers(2, pcs[:])
		info.StackTrace = pcs[:n]
	}
	mt.allocations[ptr] = info
	mt.mu.Unlock()

	atomic.AddInt64(&mt.totalAlloc, size)
	atomic.AddInt64(&mt.allocCount, 1)

	if mt.events != nil {
		mt.events.Publish("memory_allocated", map[string]interface{}{
			"ptr":  ptr,
			"size": size,
			"tag":  tag,
		})
	}
}

func (mt *Tracker) TrackDeallocation(ptr uintptr, tag string) {
	mt.mu.Lock()
	if !mt.enabled {
		mt.mu.Unlock()
		return
	}
	info, exists := mt.allocations[ptr]
	if exists {
		delete(mt.allocations, ptr)
	}
	mt.mu.Unlock()

	if exists {
		atomic.AddInt64(&mt.totalDealloc, info.Size)
	} else {
		atomic.AddInt64(&mt.untracked, 1)
	}

	if mt.events == nil {
		return
	}

	data := map[string]interface{}{
		"ptr": ptr,
		"tag": tag,
	}
	if exists {
		data["size"] = info.Size
		data["lifetime"] = time.Since(info.AllocatedAt)
		mt.events.Publish("memory_deallocated", data)
	} else {
		mt.events.Publish("memory_untracked_deallocation", data)
	}
}

func (mt *Tracker) GetStats() MemoryStats {
	mt.mu.RLock()
	currentlyActive := int64(len(mt.allocations))
	mt.mu.RUnlock()

	return MemoryStats{
		TotalAllocated:    atomic.LoadInt64(&mt.totalAlloc),
		TotalDeallocated:  atomic.LoadInt64(&mt.totalDealloc),
		CurrentlyActive:   currentlyActive,
		AllocationCount:   atomic.LoadInt64(&mt.allocCount),
		UntrackedReleases: atomic.LoadInt64(&mt.untracked),
	}
}

func (mt *Tracker) SetEnabled(enabled bool) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.enabled = enabled
}

// Outstanding lists live allocations carrying tag.
func (mt *Tracker) Outstanding(tag string) []AllocationInfo {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	var result []AllocationInfo
	for _, info := range mt.allocations {
		if info.Tag == tag {
			result = append(result, info)
		}
	}
	return result
}

func (mt *Tracker) DetectLeaks(olderThan time.Duration) []AllocationInfo {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	threshold := time.Now().Add(-olderThan)
	var leaks []AllocationInfo
	for _, info := range mt.allocations {
		if info.AllocatedAt.Before(threshold) {
			leaks = append(leaks, info)
		}
	}
	return leaks
}
