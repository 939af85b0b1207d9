package engine

import (
	"chessrl/experiments/metrics"
	"chessrl/game"
	"chessrl/meta"
	"chessrl/searcher"
	"chessrl/utils"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Option func(l *Local)

// WithMatch plays from a given match instead of the standard initial position
func WithMatch(match game.Match) Option {
	return func(l *Local) {
		l.match = match
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(l *Local) {
		l.collector = collector
	}
}

func WithMaxPlies(plies int) Option {
	return func(l *Local) {
		l.maxPlies = plies
	}
}

// Local plays a game between two in-process engines
type Local struct {
	white     *searcher.Engine
	black     *searcher.Engine
	match     game.Match
	collector metrics.Collector
	maxPlies  int
}

var _ Engine = (*Local)(nil)

func NewLocal(white, black *searcher.Engine, options ...Option) *Local {
	if white == nil || black == nil {
		panic("need an engine for each side")
	}
	l := &Local{ // Default values
		white:     white,
		black:     black,
		collector: metrics.NewCollector(),
		maxPlies:  meta.MAX_PLIES,
	}
	for _, option := range options {
		option(l)
	}
	if l.match == nil {
		l.match = game.NewMatch()
	}
	return l
}

// Run executes the entire game loop until the game is over. Draws are claimed
// as soon as they become claimable.
func (l *Local) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	l.collector.Start()

	for plies := 0; ; plies++ {
		if outcome, over := l.match.Result(); over {
			gameMetric, moveMetrics := l.collector.Complete(outcome, method(l.match))
			log.Debug().Msgf("game over after %d plies: %s by %s", plies, outcome, gameMetric.Method)
			return outcome, gameMetric, moveMetrics, nil
		}
		if plies >= l.maxPlies {
			return game.Draw, metrics.GameMetric{}, nil, fmt.Errorf("no result after %d plies", plies)
		}
		if l.match.ClaimDraw() {
			continue
		}

		state := l.match.State()
		player := l.white
		if state.Turn() == game.Black {
			player = l.black
		}

		move, err := player.BestMove(state)
		if err != nil {
			return game.Draw, metrics.GameMetric{}, nil, fmt.Errorf("%s failed to move at ply %d: %w", state.Turn(), plies+1, err)
		}
		if !isLegal(state, move) {
			return game.Draw, metrics.GameMetric{}, nil, fmt.Errorf("%w: %s played %s", ErrIllegalMove, state.Turn(), move)
		}
		if err := l.match.Play(move); err != nil {
			return game.Draw, metrics.GameMetric{}, nil, err
		}
		l.collector.AddMove(state.Turn(), move.String(), player.Metrics())
	}
}

func isLegal(state game.State, move game.Move) bool {
	names := utils.Map(state.LegalMoves(), game.Move.String)
	return utils.FindIndex(names, move.String()) >= 0
}

func method(match game.Match) string {
	if m, ok := match.(interface{ Method() string }); ok {
		return m.Method()
	}
	return ""
}
