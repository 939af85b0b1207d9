package player

import (
	"chessrl/game"
	"chessrl/meta"
	"chessrl/searcher"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrInvariantViolation is returned when a self-play game stops without a result
var ErrInvariantViolation = errors.New("self-play game ended without a result")

// Episode is one self-play game: the features of every position reached,
// starting with the initial one, and the final result.
type Episode struct {
	Outcome  game.Outcome
	Features []game.Features
}

func (e Episode) Plies() int {
	return len(e.Features) - 1
}

type Stats struct {
	WhiteWins int
	BlackWins int
	Draws     int
	Updates   int // Training steps applied, one per recorded position
	Plies     int
}

type Progress struct {
	Game    int // 1-based
	Games   int
	Outcome game.Outcome
	Plies   int
	Stats   Stats // Totals so far, this game included
}

type Option func(t *Trainer)

// WithNewMatch sets the factory for the match each self-play game is played in
func WithNewMatch(newMatch func() game.Match) Option {
	return func(t *Trainer) {
		t.newMatch = newMatch
	}
}

func WithProgress(progress func(Progress)) Option {
	return func(t *Trainer) {
		t.progress = progress
	}
}

func WithMaxPlies(plies int) Option {
	return func(t *Trainer) {
		t.maxPlies = plies
	}
}

// Trainer improves an engine's evaluator by playing the engine against itself
// and regressing every visited position towards the game's final result.
type Trainer struct {
	engine   *searcher.Engine
	newMatch func() game.Match
	progress func(Progress)
	maxPlies int
}

func NewTrainer(engine *searcher.Engine, options ...Option) *Trainer {
	t := &Trainer{ // Default values
		engine:   engine,
		newMatch: func() game.Match { return game.NewMatch() },
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// PlaySelf plays one game with the engine choosing the moves of both sides.
// Draws are claimed as soon as they become claimable.
func (t *Trainer) PlaySelf() (Episode, error) {
	match := t.newMatch()
	features := []game.Features{game.Extract(match.State())}

	for plies := 0; ; plies++ {
		if outcome, over := match.Result(); over {
			return Episode{Outcome: outcome, Features: features}, nil
		}
		if plies >= t.maxPlies {
			return Episode{}, fmt.Errorf("%w: still running after %d plies", ErrInvariantViolation, plies)
		}
		if match.ClaimDraw() {
			outcome, over := match.Result()
			if !over {
				return Episode{}, fmt.Errorf("%w: draw claimed but game not over", ErrInvariantViolation)
			}
			return Episode{Outcome: outcome, Features: features}, nil
		}

		move, err := t.engine.BestMove(match.State())
		if err != nil {
			return Episode{}, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		if err := match.Play(move); err != nil {
			return Episode{}, fmt.Errorf("failed to play %s: %w", move, err)
		}
		features = append(features, game.Extract(match.State()))
	}
}

// Train plays numGames self-play games. After each game every recorded
// position gets one training step towards the outcome (+1, 0 or -1, from
// White's point of view), so moves within a game are chosen by a fixed network.
func (t *Trainer) Train(numGames int) (Stats, error) {
	var stats Stats
	network := t.engine.Network()

	for i := 0; i < numGames; i++ {
		episode, err := t.PlaySelf()
		if err != nil {
			return stats, fmt.Errorf("game %d of %d: %w", i+1, numGames, err)
		}

		switch episode.Outcome {
		case game.WhiteWins:
			stats.WhiteWins++
		case game.BlackWins:
			stats.BlackWins++
		default:
			stats.Draws++
		}

		target := float64(episode.Outcome)
		for _, f := range episode.Features {
			network.TrainStep(f, target)
		}
		stats.Updates += len(episode.Features)
		stats.Plies += episode.Plies()

		log.Debug().Msgf("self-play game %d of %d: %s after %d plies", i+1, numGames, episode.Outcome, episode.Plies())

		if t.progress != nil {
			t.progress(Progress{
				Game:    i + 1,
				Games:   numGames,
				Outcome: episode.Outcome,
				Plies:   episode.Plies(),
				Stats:   stats,
			})
		}
	}
	return stats, nil
}
