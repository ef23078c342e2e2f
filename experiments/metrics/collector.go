package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Simulations  int
	Exploration  float64
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // Simulations that ran a random rollout
	TerminalHits int // Simulations that stopped on a terminal node
	TreeSize     int
}

type MoveMetric struct {
	Step     int
	Actor    int // +1 or -1
	Agent    int // 1 or 2
	Action   int
	Duration time.Duration
	SearchMetric
}

type GameMetric struct {
	StartingAgent int // 1 or 2
	Winner        int // 1 or 2, 0 for a draw
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

type Collector interface {
	Start(simulations int, exploration float64)
	AddEpisode()
	AddFullPlayout()
	AddTerminalHit()
	SetTreeSize(size int)
	Complete() SearchMetric
}

type collector struct {
	simulations  int
	exploration  float64
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	terminalHits atomic.Int32
	treeSize     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(simulations int, exploration float64) {
	m.startTime = time.Now()
	m.simulations = simulations
	m.exploration = exploration
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.terminalHits.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int32(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Simulations:  m.simulations,
		Exploration:  m.exploration,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		TreeSize:     int(m.treeSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(simulations int, exploration float64) {}
func (m *dummyCollector) AddEpisode()                                {}
func (m *dummyCollector) AddFullPlayout()                            {}
func (m *dummyCollector) AddTerminalHit()                            {}
func (m *dummyCollector) SetTreeSize(size int)                       {}
func (m *dummyCollector) Complete() SearchMetric                     { return SearchMetric{} }
