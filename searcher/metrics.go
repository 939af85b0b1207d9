package searcher

import "time"

type SearchMetric struct {
	Depth    int
	Pruning  Pruning
	Duration time.Duration
	Nodes    int // Every position visited, leaves included
	Leaves   int // Positions scored by the evaluator
	Cutoffs  int // Sibling lists abandoned by alpha-beta
}

type MetricsCollector interface {
	Start(depth int, pruning Pruning)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

// Searches are single-threaded, so plain counters are enough
type metricsCollector struct {
	startTime time.Time
	depth     int
	pruning   Pruning
	nodes     int
	leaves    int
	cutoffs   int
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth int, pruning Pruning) {
	*m = metricsCollector{startTime: time.Now(), depth: depth, pruning: pruning}
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) AddLeaf() {
	m.leaves++
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs++
}

func (m *metricsCollector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Pruning:  m.pruning,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes,
		Leaves:   m.leaves,
		Cutoffs:  m.cutoffs,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int, Pruning)     {}
func (m *noMetricsCollector) AddNode()               {}
func (m *noMetricsCollector) AddLeaf()               {}
func (m *noMetricsCollector) AddCutoff()             {}
func (m *noMetricsCollector) Complete() SearchMetric { return SearchMetric{} }
