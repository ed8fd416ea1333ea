package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one completed search.
type SearchMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Descents   int64
	Rollouts   int64
	Chunks     int64
	Sims       float64
	TreeReused bool
}

type MetricsCollector interface {
	Start()
	AddDescent()
	AddRollouts(n int64)
	AddChunk()
	ReusedTree()
	Complete(sims float64) SearchMetrics
}

type metricsCollector struct {
	startTime  time.Time
	descents   atomic.Int64
	rollouts   atomic.Int64
	chunks     atomic.Int64
	treeReused atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
}

func (m *metricsCollector) AddDescent() {
	m.descents.Add(1)
}

func (m *metricsCollector) AddRollouts(n int64) {
	m.rollouts.Add(n)
}

func (m *metricsCollector) AddChunk() {
	m.chunks.Add(1)
}

func (m *metricsCollector) ReusedTree() {
	m.treeReused.Store(true)
}

func (m *metricsCollector) Complete(sims float64) SearchMetrics {
	return SearchMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Descents:   m.descents.Load(),
		Rollouts:   m.rollouts.Load(),
		Chunks:     m.chunks.Load(),
		Sims:       sims,
		TreeReused: m.treeReused.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (noMetricsCollector) Start()                         {}
func (noMetricsCollector) AddDescent()                    {}
func (noMetricsCollector) AddRollouts(int64)              {}
func (noMetricsCollector) AddChunk()                      {}
func (noMetricsCollector) ReusedTree()                    {}
func (noMetricsCollector) Complete(float64) SearchMetrics { return SearchMetrics{} }
