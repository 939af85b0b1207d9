package experiments

import (
	"chessrl/experiments/metrics"
	"chessrl/game"
	"chessrl/searcher"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Matchup struct {
	A     int `yaml:"a"`               // AgentConfig.ID
	B     int `yaml:"b"`               // AgentConfig.ID
	Games int `yaml:"games,omitempty"` // Overrides Setup.Games
}

// Setup describes an experiment: the agents taking part and who plays whom.
//
//	name: depth
//	games: 20
//	agents:
//	  - {id: 1, depth: 1, pruning: alphabeta}
//	  - {id: 2, depth: 2, pruning: alphabeta, path: engine.json}
//	matchups:
//	  - {a: 1, b: 2}
type Setup struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"`
	MaxPlies int                   `yaml:"max_plies,omitempty"`
	FEN      string                `yaml:"fen,omitempty"` // Start position of every game
	Agents   []metrics.AgentConfig `yaml:"agents"`
	Matchups []Matchup             `yaml:"matchups"`
}

func ParseSetup(data []byte) (Setup, error) {
	var setup Setup
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return Setup{}, fmt.Errorf("failed to parse experiment setup: %w", err)
	}
	if err := setup.Validate(); err != nil {
		return Setup{}, err
	}
	return setup, nil
}

func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("failed to read experiment setup: %w", err)
	}
	return ParseSetup(data)
}

func (s Setup) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	ids := make(map[int]bool, len(s.Agents))
	for _, agent := range s.Agents {
		if ids[agent.ID] {
			errs = append(errs, fmt.Errorf("duplicate agent %d", agent.ID))
		}
		ids[agent.ID] = true
		if agent.Depth < 0 {
			errs = append(errs, fmt.Errorf("agent %d has negative depth", agent.ID))
		}
	}
	if s.FEN != "" {
		if _, err := game.ParseFEN(s.FEN); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.Matchups) == 0 {
		errs = append(errs, errors.New("no matchups"))
	}
	for i, m := range s.Matchups {
		if !ids[m.A] || !ids[m.B] {
			errs = append(errs, fmt.Errorf("matchup %d refers to an unknown agent", i+1))
		}
		if s.games(m) <= 0 {
			errs = append(errs, fmt.Errorf("matchup %d has no games", i+1))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid experiment setup: %w", err)
	}
	return nil
}

func (s Setup) games(m Matchup) int {
	if m.Games > 0 {
		return m.Games
	}
	return s.Games
}

func (s Setup) agent(id int) metrics.AgentConfig {
	for _, agent := range s.Agents {
		if agent.ID == id {
			return agent
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}

// RunExperiment rates every matchup of the setup and writes agent configs,
// game records, move records and ratings as CSV files into a new directory
// under dir, whose path is returned.
func RunExperiment(setup Setup, dir string) (string, error) {
	if err := setup.Validate(); err != nil {
		return "", err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	ratings := []metrics.RatingRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchup := range setup.Matchups {
		configA, configB := setup.agent(matchup.A), setup.agent(matchup.B)
		a, err := createEngine(configA)
		if err != nil {
			return "", err
		}
		b, err := createEngine(configB)
		if err != nil {
			return "", err
		}

		log.Info().Msgf("starting matchup %d of %d between agentA=%+v and agentB=%+v...", mi+1, len(setup.Matchups), configA, configB)

		var movesA, movesB []metrics.MoveMetric
		options := []EloOption{WithProgress(func(r GameResult) {
			count++
			white, black, sideA := configA.ID, configB.ID, game.White
			if !r.AWhite {
				white, black, sideA = configB.ID, configA.ID, game.Black
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Matchup:    mi + 1,
				White:      white,
				Black:      black,
				GameMetric: r.GameMetric,
			})
			for _, mm := range r.MoveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
				if mm.Side == sideA {
					movesA = append(movesA, mm)
				} else {
					movesB = append(movesB, mm)
				}
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d: %s by %s, ratings %.0f/%.0f",
				mi+1, len(setup.Matchups), r.Game, r.Games, r.Outcome, r.GameMetric.Method, r.RatingA, r.RatingB)
		})}
		if setup.MaxPlies > 0 {
			options = append(options, WithMaxPlies(setup.MaxPlies))
		}
		if setup.FEN != "" {
			options = append(options, WithStartFEN(setup.FEN))
		}

		games := setup.games(matchup)
		ratingA, ratingB, err := NewElo(options...).Run(a, b, games)
		if err != nil {
			return "", fmt.Errorf("matchup %d: %w", mi+1, err)
		}

		meanA, meanB := metrics.MeanMoveTime(movesA), metrics.MeanMoveTime(movesB)
		ratings = append(ratings, metrics.RatingRecord{
			Matchup:       mi + 1,
			AgentA:        configA.ID,
			AgentB:        configB.ID,
			Games:         games,
			RatingA:       ratingA,
			RatingB:       ratingB,
			MeanMoveTimeA: meanA,
			MeanMoveTimeB: meanB,
			ScoreB:        score(ratingA, ratingB, meanA, meanB),
		})

		log.Info().Msgf("completed matchup %d of %d with ratings %d/%d", mi+1, len(setup.Matchups), ratingA, ratingB)
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(dir, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(setup.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteRatings(ratings); err != nil {
		return "", fmt.Errorf("failed to write ratings: %w", err)
	}
	log.Info().Msg("stored ratings")

	return writer.Dir(), nil
}

func createEngine(config metrics.AgentConfig) (*searcher.Engine, error) {
	if config.Path == "" {
		return searcher.NewEngine(config.Depth, config.Pruning, searcher.WithMetrics()), nil
	}

	loaded, err := searcher.Load(config.Path)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	// The configured search overrides the one stored with the network
	return searcher.NewEngine(config.Depth, config.Pruning, searcher.WithNetwork(loaded.Network()), searcher.WithMetrics()), nil
}

func score(ratingA, ratingB int, meanA, meanB time.Duration) float64 {
	if ratingA == 0 || meanB == 0 {
		return 0
	}
	return EngineScore(float64(ratingA), float64(ratingB), meanA.Seconds(), meanB.Seconds())
}
