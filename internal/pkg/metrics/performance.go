package metrics

import (
	"runtime"
	"time"
)

type PerformanceMetrics struct {
	StartTime    time.Time     `json:"startTime" yaml:"startTime"`
	EndTime      time.Time     `json:"endTime" yaml:"endTime"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	TotalAllocMB float64       `json:"totalAllocMB" yaml:"totalAllocMB"`
	AllocObjects uint64        `json:"allocObjects" yaml:"allocObjects"`
	GCCycles     uint32        `json:"gcCycles" yaml:"gcCycles"`
	Goroutines   int           `json:"goroutines" yaml:"goroutines"`
}

// CapturePerformance runs fn and reports the runtime cost of the call.
func CapturePerformance(fn func() error) (*PerformanceMetrics, error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	startAlloc := stats.TotalAlloc
	startMallocs := stats.Mallocs
	startGC := stats.NumGC

	metrics := &PerformanceMetrics{
		StartTime: time.Now(),
	}

	err := fn()

	runtime.ReadMemStats(&stats)
	metrics.EndTime = time.Now()
	metrics.Duration = metrics.EndTime.Sub(metrics.StartTime)
	metrics.TotalAllocMB = float64(stats.TotalAlloc-startAlloc) / (1024 * 1024)
	metrics.AllocObjects = stats.Mallocs - startMallocs
	metrics.GCCycles = stats.NumGC - startGC
	metrics.Goroutines = runtime.NumGoroutine()

	return metrics, err
}
