package qhack

import (
	"sort"
	"sync"
	"time"
)

type Metrics struct {
	mu           sync.RWMutex
	WorkerCount  int
	JobQueueSize int
	TotalJobTime time.Duration
	JobCount     int64
	FailedJobs   int64

	AverageJobLatency  time.Duration
	P95JobLatency      time.Duration
	P99JobLatency      time.Duration
	JobSuccessRate     float64
	SchedulingFailures int64

	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 1000), // Store last 1000 measurements
		windowSize: 1000,
	}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += duration
	m.JobCount++
	if !success {
		m.FailedJobs++
	}
	m.JobSuccessRate = float64(m.JobCount-m.FailedJobs) / float64(m.JobCount)

	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordSchedulingFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchedulingFailures++
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}
}

// percentiles sorts the latency window only when someone asks for it.
func (m *Metrics) percentiles() (p95, p99 time.Duration) {
	if len(m.latencies) == 0 {
		return 0, 0
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)
	return sorted[p95Index], sorted[p99Index]
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.P95JobLatency, m.P99JobLatency = m.percentiles()

	return map[string]interface{}{
		"worker_count":        m.WorkerCount,
		"queue_size":          m.JobQueueSize,
		"job_count":           m.JobCount,
		"failed_jobs":         m.FailedJobs,
		"scheduling_failures": m.SchedulingFailures,
		"success_rate":        m.JobSuccessRate,
		"avg_latency_us":      m.AverageJobLatency.Microseconds(),
		"p95_latency_us":      m.P95JobLatency.Microseconds(),
		"p99_latency_us":      m.P99JobLatency.Microseconds(),
	}
}
