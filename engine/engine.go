package engine

import (
	"chessrl/experiments/metrics"
	"chessrl/game"
	"errors"
)

var ErrIllegalMove = errors.New("engine chose an illegal move")

type Engine interface {
	// Run plays a game till it is decided, drawn or a max number of plies is reached
	Run() (outcome game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
