package metrics

import (
	"chessrl/game"
	"chessrl/searcher"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("records moves in order", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddMove(game.White, "e2e4", searcher.SearchMetric{Depth: 2, Nodes: 10})
		c.AddMove(game.Black, "e7e5", searcher.SearchMetric{Depth: 2, Nodes: 12})

		gm, moves := c.Complete(game.Draw, "ThreefoldRepetition")

		require.Equal(t, game.Draw, gm.Outcome)
		require.Equal(t, "ThreefoldRepetition", gm.Method)
		require.Equal(t, 2, gm.TotalMoves)
		require.False(t, gm.EndTime.Before(gm.StartTime))
		require.Len(t, moves, 2)
		require.Equal(t, 2, moves[1].Step)
		require.Equal(t, game.Black, moves[1].Side)
		require.Equal(t, "e7e5", moves[1].Move)
		require.Equal(t, 12, moves[1].Nodes)
	})

	t.Run("start resets", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddMove(game.White, "e2e4", searcher.SearchMetric{})
		c.Start()

		gm, moves := c.Complete(game.WhiteWins, "Checkmate")

		require.Zero(t, gm.TotalMoves)
		require.Empty(t, moves)
	})

	t.Run("dummy keeps only the result", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddMove(game.White, "e2e4", searcher.SearchMetric{})

		gm, moves := c.Complete(game.BlackWins, "Resignation")

		require.Equal(t, GameMetric{Outcome: game.BlackWins, Method: "Resignation"}, gm)
		require.Nil(t, moves)
	})
}

func TestMeanMoveTime(t *testing.T) {
	moves := []MoveMetric{
		{Side: game.White, SearchMetric: searcher.SearchMetric{Duration: 10 * time.Millisecond}},
		{Side: game.Black, SearchMetric: searcher.SearchMetric{Duration: 4 * time.Millisecond}},
		{Side: game.White, SearchMetric: searcher.SearchMetric{Duration: 19 * time.Millisecond}},
	}

	require.Equal(t, 11*time.Millisecond, MeanMoveTime(moves))
	require.Equal(t, 4*time.Millisecond, MeanMoveTime(moves[1:2]))
	require.Zero(t, MeanMoveTime(nil))
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "elo")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Depth: 2, Pruning: searcher.AlphaBeta, Path: "engine.json"},
		{ID: 2, Depth: 1, Pruning: searcher.NoPruning},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{
		{ID: 1, Matchup: 1, White: 1, Black: 2, GameMetric: GameMetric{Outcome: game.WhiteWins, Method: "Checkmate", TotalMoves: 4}},
	}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Side: game.White, Move: "f2f3", SearchMetric: searcher.SearchMetric{Depth: 2, Pruning: searcher.AlphaBeta, Nodes: 30, Leaves: 25, Cutoffs: 3}}},
	}))
	require.NoError(t, w.WriteRatings([]RatingRecord{
		{Matchup: 1, AgentA: 1, AgentB: 2, Games: 2, RatingA: 1516, RatingB: 1484, ScoreB: 0.5},
	}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{
		{"id", "depth", "pruning", "path"},
		{"1", "2", "alphabeta", "engine.json"},
		{"2", "1", "none", ""},
	}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{"1", "1", "1", "2", "1-0", "Checkmate"}, games[1][:6])
	require.Equal(t, "4", games[1][9])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, []string{"1", "1", "white", "f2f3", "2", "alphabeta"}, moves[1][:6])
	require.Equal(t, []string{"30", "25", "3"}, moves[1][7:])

	ratings := readCSV(t, filepath.Join(w.Dir(), "ratings.csv"))
	require.Len(t, ratings, 2)
	require.Equal(t, []string{"1", "1", "2", "2", "1516", "1484"}, ratings[1][:6])
	require.Equal(t, "0.5000", ratings[1][8])
}
