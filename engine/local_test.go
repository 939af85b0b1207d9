package engine

import (
	"chessrl/experiments/metrics"
	"chessrl/game"
	"chessrl/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

func matchFromFEN(t *testing.T, fen string) *game.ChessMatch {
	m, err := game.NewMatchFromFEN(fen)
	require.NoError(t, err)
	return m
}

func TestLocal(t *testing.T) {
	t.Run("decided position", func(t *testing.T) {
		match := matchFromFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
		l := NewLocal(searcher.NewEngine(1, searcher.AlphaBeta), searcher.NewEngine(1, searcher.AlphaBeta), WithMatch(match))

		outcome, gameMetric, moveMetrics, err := l.Run()

		require.NoError(t, err)
		require.Equal(t, game.BlackWins, outcome)
		require.Equal(t, "Checkmate", gameMetric.Method)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics)
	})

	t.Run("claims the fifty-move draw", func(t *testing.T) {
		match := matchFromFEN(t, "8/5k2/3p4/1p1Pp2p/pP2Pp1P/P4P1K/8/8 b - - 100 60")
		l := NewLocal(searcher.NewEngine(0, searcher.NoPruning), searcher.NewEngine(0, searcher.NoPruning), WithMatch(match))

		outcome, gameMetric, _, err := l.Run()

		require.NoError(t, err)
		require.Equal(t, game.Draw, outcome)
		require.Equal(t, "FiftyMoveRule", gameMetric.Method)
	})

	t.Run("plies limit", func(t *testing.T) {
		l := NewLocal(searcher.NewEngine(0, searcher.NoPruning), searcher.NewEngine(0, searcher.NoPruning), WithMaxPlies(2))

		_, _, _, err := l.Run()

		require.Error(t, err)
	})

	t.Run("full game", func(t *testing.T) {
		if testing.Short() {
			t.Skip("plays a full game of chess")
		}
		match := game.NewMatch()
		white := searcher.NewEngine(1, searcher.AlphaBeta, searcher.WithMetrics())
		black := searcher.NewEngine(0, searcher.NoPruning, searcher.WithMetrics())
		l := NewLocal(white, black, WithMatch(match))

		outcome, gameMetric, moveMetrics, err := l.Run()

		require.NoError(t, err)
		result, over := match.Result()
		require.True(t, over)
		require.Equal(t, result, outcome)
		require.Equal(t, gameMetric.Outcome, outcome)
		require.Equal(t, match.Plies(), gameMetric.TotalMoves)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			if i%2 == 0 {
				require.Equal(t, game.White, m.Side)
				require.Equal(t, 1, m.Depth)
			} else {
				require.Equal(t, game.Black, m.Side)
				require.Equal(t, 0, m.Depth)
			}
			require.Positive(t, m.Nodes)
		}
	})

	t.Run("dummy collector", func(t *testing.T) {
		match := matchFromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
		l := NewLocal(searcher.NewEngine(0, searcher.NoPruning), searcher.NewEngine(0, searcher.NoPruning),
			WithMatch(match), WithCollector(metrics.NewDummyCollector()))

		outcome, gameMetric, moveMetrics, err := l.Run()

		require.NoError(t, err)
		require.Equal(t, game.Draw, outcome)
		require.Equal(t, "Stalemate", gameMetric.Method)
		require.Nil(t, moveMetrics)
	})
}

func TestIsLegal(t *testing.T) {
	start := game.StartingPosition()
	var e4 game.Move
	for _, m := range start.LegalMoves() {
		if m.String() == "e2e4" {
			e4 = m
		}
	}
	require.NotNil(t, e4)

	require.True(t, isLegal(start, e4))
	require.False(t, isLegal(start.Play(e4), e4))
}
