package metrics

import (
	"chessrl/game"
	"chessrl/searcher"
	"time"
)

// AgentConfig describes an engine taking part in an experiment
type AgentConfig struct {
	ID      int              `yaml:"id"`
	Depth   int              `yaml:"depth"`
	Pruning searcher.Pruning `yaml:"pruning"`
	Path    string           `yaml:"path,omitempty"` // Engine snapshot; an untrained network if empty
}

type MoveMetric struct {
	Step int
	Side game.Side
	Move string // UCI notation
	searcher.SearchMetric
}

type GameMetric struct {
	Outcome    game.Outcome
	Method     string // How the game ended, e.g. Checkmate or ThreefoldRepetition
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start()
	AddMove(side game.Side, move string, search searcher.SearchMetric)
	Complete(outcome game.Outcome, method string) (GameMetric, []MoveMetric)
}

type collector struct {
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.moves = nil
}

func (m *collector) AddMove(side game.Side, move string, search searcher.SearchMetric) {
	m.moves = append(m.moves, MoveMetric{
		Step:         len(m.moves) + 1,
		Side:         side,
		Move:         move,
		SearchMetric: search,
	})
}

func (m *collector) Complete(outcome game.Outcome, method string) (GameMetric, []MoveMetric) {
	endTime := time.Now()
	return GameMetric{
		Outcome:    outcome,
		Method:     method,
		StartTime:  m.startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(m.startTime),
		TotalMoves: len(m.moves),
	}, m.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                                           {}
func (m *dummyCollector) AddMove(game.Side, string, searcher.SearchMetric) {}
func (m *dummyCollector) Complete(outcome game.Outcome, method string) (GameMetric, []MoveMetric) {
	return GameMetric{Outcome: outcome, Method: method}, nil
}

// MeanMoveTime averages the search time of moves
func MeanMoveTime(moves []MoveMetric) time.Duration {
	if len(moves) == 0 {
		return 0
	}
	var total time.Duration
	for _, m := range moves {
		total += m.Duration
	}
	return total / time.Duration(len(moves))
}
