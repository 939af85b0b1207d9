package searcher

import (
	"chessrl/evaluator"
	"chessrl/game"
	"math"
)

type Option func(e *Engine)

// WithNetwork hands ownership of an evaluator network to the engine. The
// caller must not use or share the network afterwards.
func WithNetwork(network *evaluator.Network) Option {
	return func(e *Engine) {
		if network != nil {
			e.network = network
		}
	}
}

// WithNetworkOptions configures the untrained network built when no network is given
func WithNetworkOptions(options ...evaluator.Option) Option {
	return func(e *Engine) {
		e.networkOptions = append(e.networkOptions, options...)
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = NewMetricsCollector()
	}
}

// Engine picks moves by negamax search over a fixed number of plies, scoring
// leaves with its own evaluator network. Engines never share networks.
type Engine struct {
	depth          int
	pruning        Pruning
	network        *evaluator.Network
	networkOptions []evaluator.Option
	metrics        MetricsCollector
	last           SearchMetric
}

func NewEngine(depth int, pruning Pruning, options ...Option) *Engine {
	if depth < 0 {
		panic("search depth must be non-negative")
	}
	if pruning != NoPruning && pruning != AlphaBeta {
		panic("unknown pruning mode")
	}
	e := &Engine{ // Default values
		depth:   depth,
		pruning: pruning,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.network == nil {
		e.network = evaluator.New(e.networkOptions...)
	}
	return e
}

func (e *Engine) Depth() int {
	return e.depth
}

func (e *Engine) Pruning() Pruning {
	return e.pruning
}

// Network exposes the engine's evaluator, e.g. for training
func (e *Engine) Network() *evaluator.Network {
	return e.network
}

// Metrics returns the metrics of the last completed EvaluatePosition or BestMove
// call. They are empty unless the engine was built WithMetrics.
func (e *Engine) Metrics() SearchMetric {
	return e.last
}

// Clone returns an engine with the same configuration and a copy of the network
func (e *Engine) Clone() *Engine {
	c := *e
	c.network = e.network.Clone()
	c.networkOptions = nil
	if _, ok := e.metrics.(*metricsCollector); ok {
		c.metrics = NewMetricsCollector()
	}
	c.last = SearchMetric{}
	return &c
}

// EvaluatePosition returns the negamax value of state from the point of view
// of the side to move.
func (e *Engine) EvaluatePosition(state game.State) float64 {
	e.metrics.Start(e.depth, e.pruning)
	value := e.search(state)
	e.last = e.metrics.Complete()
	return value
}

// BestMove scores every legal move by evaluating the position it leads to and
// returns the move with the greatest score; the earliest move wins ties. The
// score is EvaluatePosition of the child, i.e. from the perspective of the
// side to move after the move.
func (e *Engine) BestMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}

	e.metrics.Start(e.depth, e.pruning)
	bestMove := moves[0]
	bestValue := math.Inf(-1)
	for _, move := range moves {
		value := e.search(state.Play(move))
		// Strictly greater so the first of equal moves is kept
		if value > bestValue {
			bestValue, bestMove = value, move
		}
	}
	e.last = e.metrics.Complete()
	return bestMove, nil
}

func (e *Engine) search(state game.State) float64 {
	if e.pruning == AlphaBeta {
		return e.alphaBeta(state, e.depth, math.Inf(-1), math.Inf(1))
	}
	return e.negamax(state, e.depth)
}
