package memtracker

import "intuition-toolbar/internal/logger"

// Report logs every outstanding allocation as a warning, then a one-line
// summary of the tracker's counters.
func (mt *Tracker) Report(log logger.Logger) {
	for _, leak := range mt.DetectLeaks(0) {
		log.Warning("MemoryTracker", "allocation still outstanding at exit", map[string]interface{}{
			"tag":  leak.Tag,
			"size": leak.Size,
		})
	}

	stats := mt.GetStats()
	log.Info("MemoryTracker", "allocation summary", map[string]interface{}{
		"allocations":        stats.AllocationCount,
		"active":             stats.CurrentlyActive,
		"untracked_releases": stats.UntrackedReleases,
	})
}
