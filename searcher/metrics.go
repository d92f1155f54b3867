package searcher

import "time"

// SearchMetric summarizes one ChooseMove call.
type SearchMetric struct {
	Depth    int // effective depth limit
	Nodes    int // positions visited
	Leaves   int // heuristic evaluations at the depth limit
	Cutoffs  int // alpha-beta prunes
	Duration time.Duration
}

// Collector accumulates search counters. The search runs on a single
// goroutine, so implementations need no locking.
type Collector interface {
	Start(depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	nodes     int
	leaves    int
	cutoffs   int
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(depth int) {
	c.depth = depth
	c.nodes = 0
	c.leaves = 0
	c.cutoffs = 0
	c.startTime = time.Now()
}

func (c *collector) AddNode()   { c.nodes++ }
func (c *collector) AddLeaf()   { c.leaves++ }
func (c *collector) AddCutoff() { c.cutoffs++ }

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    c.depth,
		Nodes:    c.nodes,
		Leaves:   c.leaves,
		Cutoffs:  c.cutoffs,
		Duration: time.Since(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)        {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddLeaf()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
