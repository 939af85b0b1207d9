package experiments

import (
	"chessrl/engine"
	"chessrl/experiments/metrics"
	"chessrl/game"
	"chessrl/meta"
	"chessrl/searcher"
	"fmt"
	"math"
)

const (
	KFactor       = 32
	InitialRating = 1500
)

// GameResult reports one rated game. A is the first engine passed to Run.
type GameResult struct {
	Game        int // 1-based
	Games       int
	AWhite      bool
	Outcome     game.Outcome
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
	RatingA     float64 // Ratings after this game
	RatingB     float64
}

type EloOption func(e *Elo)

// WithProgress is called after every game. It must not hold on to the engines.
func WithProgress(progress func(GameResult)) EloOption {
	return func(e *Elo) {
		e.progress = progress
	}
}

func WithMaxPlies(plies int) EloOption {
	return func(e *Elo) {
		e.maxPlies = plies
	}
}

// WithStartFEN plays every game from the given position instead of the standard one
func WithStartFEN(fen string) EloOption {
	return func(e *Elo) {
		e.fen = fen
	}
}

// Elo rates two engines by playing them against each other with alternating
// colours and applying a standard Elo update after every game.
type Elo struct {
	progress func(GameResult)
	maxPlies int
	fen      string
}

func NewElo(options ...EloOption) *Elo {
	e := &Elo{ // Default values
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Expected returns the expected score of a player rated own against one rated opp
func Expected(own, opp float64) float64 {
	return 1 / (1 + math.Pow(10, (opp-own)/400))
}

// Run plays numGames games, a taking White in even games and b in odd ones,
// and returns both final ratings rounded to the nearest integer. Both engines
// start at InitialRating.
func (e *Elo) Run(a, b *searcher.Engine, numGames int) (int, int, error) {
	ratingA, ratingB := float64(InitialRating), float64(InitialRating)

	for i := 0; i < numGames; i++ {
		aWhite := i%2 == 0
		white, black, sideA := a, b, game.White
		if !aWhite {
			white, black, sideA = b, a, game.Black
		}

		options := []engine.Option{engine.WithMaxPlies(e.maxPlies)}
		if e.fen != "" {
			match, err := game.NewMatchFromFEN(e.fen)
			if err != nil {
				return 0, 0, err
			}
			options = append(options, engine.WithMatch(match))
		}

		outcome, gameMetric, moveMetrics, err := engine.NewLocal(white, black, options...).Run()
		if err != nil {
			return 0, 0, fmt.Errorf("game %d of %d: %w", i+1, numGames, err)
		}

		// Both expectations use the ratings from before this game
		expectedA, expectedB := Expected(ratingA, ratingB), Expected(ratingB, ratingA)
		scoreA := outcome.Score(sideA)
		ratingA += KFactor * (scoreA - expectedA)
		ratingB += KFactor * ((1 - scoreA) - expectedB)

		if e.progress != nil {
			e.progress(GameResult{
				Game:        i + 1,
				Games:       numGames,
				AWhite:      aWhite,
				Outcome:     outcome,
				GameMetric:  gameMetric,
				MoveMetrics: moveMetrics,
				RatingA:     ratingA,
				RatingB:     ratingB,
			})
		}
	}
	return int(math.Round(ratingA)), int(math.Round(ratingB)), nil
}

// EngineScore relates an engine's strength per unit of thinking time to a
// standard engine's: above 1 is better than the standard.
func EngineScore(eloStandard, elo, meanTimeStandard, meanTime float64) float64 {
	return (elo / eloStandard) * (meanTimeStandard / meanTime)
}
