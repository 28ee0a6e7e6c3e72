package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"passwordCrackerSim/internal/core/domain"
)

// HostSample is one reading of host utilisation.
type HostSample struct {
	CPUPercent    float64
	MemoryUsedPct float64
}

// SampleFunc reads the host once.
type SampleFunc func() (HostSample, error)

// SampleHost reads CPU and memory utilisation through gopsutil. The CPU
// figure covers the interval since the previous call.
func SampleHost() (HostSample, error) {
	var s HostSample

	cpuUsage, err := cpu.Percent(0, false)
	if err != nil {
		return s, err
	}
	if len(cpuUsage) > 0 {
		s.CPUPercent = cpuUsage[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, err
	}
	s.MemoryUsedPct = vm.UsedPercent
	return s, nil
}

type jobMetrics struct {
	metrics domain.ResourceMetrics
	cpuSum  float64
	stop    chan struct{}
	done    chan struct{}
}

// Collector samples host resources for every running simulation.
type Collector struct {
	mu             sync.RWMutex
	jobs           map[string]*jobMetrics
	updateInterval time.Duration
	sample         SampleFunc
	log            *zap.Logger
}

func NewCollector(interval time.Duration, log *zap.Logger) *Collector {
	if interval <= 0 {
		interval = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		jobs:           make(map[string]*jobMetrics),
		updateInterval: interval,
		sample:         SampleHost,
		log:            log,
	}
}

// WithSampler replaces the gopsutil sampler.
func (c *Collector) WithSampler(fn SampleFunc) *Collector {
	c.sample = fn
	return c
}

func (c *Collector) StartCollection(jobID string) {
	c.mu.Lock()
	if _, exists := c.jobs[jobID]; exists {
		c.mu.Unlock()
		return
	}
	jm := &jobMetrics{
		metrics: domain.ResourceMetrics{LastUpdated: time.Now()},
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.jobs[jobID] = jm
	c.mu.Unlock()

	go c.collect(jobID, jm)
}

// StopCollection ends sampling for jobID and returns what was gathered.
func (c *Collector) StopCollection(jobID string) domain.ResourceMetrics {
	c.mu.Lock()
	jm, exists := c.jobs[jobID]
	if exists {
		delete(c.jobs, jobID)
	}
	c.mu.Unlock()

	if !exists {
		return domain.ResourceMetrics{}
	}
	close(jm.stop)
	<-jm.done
	return jm.metrics
}

func (c *Collector) GetMetrics(jobID string) (domain.ResourceMetrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if jm, exists := c.jobs[jobID]; exists {
		return jm.metrics, true
	}
	return domain.ResourceMetrics{}, false
}

func (c *Collector) collect(jobID string, jm *jobMetrics) {
	defer close(jm.done)

	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	c.record(jobID, jm)
	for {
		select {
		case <-jm.stop:
			c.record(jobID, jm)
			return
		case <-ticker.C:
			c.record(jobID, jm)
		}
	}
}

func (c *Collector) record(jobID string, jm *jobMetrics) {
	s, err := c.sample()
	if err != nil {
		c.log.Debug("host sample failed", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.mu.Lock()
	defer c.mu.Unlock()
	jm.cpuSum += s.CPUPercent
	jm.metrics.Samples++
	jm.metrics.CPUUsage = jm.cpuSum / float64(jm.metrics.Samples)
	jm.metrics.MemoryUsedPct = s.MemoryUsedPct
	jm.metrics.HeapAllocMB = int64(m.HeapAlloc / 1024 / 1024)
	jm.metrics.LastUpdated = time.Now()
}
