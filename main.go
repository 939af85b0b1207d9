package main

import (
	"chessrl/evaluator"
	"chessrl/experiments"
	"chessrl/game"
	"chessrl/meta"
	"chessrl/player"
	"chessrl/searcher"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode     string
	engine   string
	opponent string
	games    int
	depth    int
	pruning  string
	setup    string
	out      string
	fen      string
}

func main() {
	var o options
	flag.StringVar(&o.mode, "mode", "train", "One of new, train, elo, eval, experiment")
	flag.StringVar(&o.engine, "engine", meta.ENGINE_PATH, "Engine snapshot to read and write")
	flag.StringVar(&o.opponent, "opponent", "", "Engine snapshot to rate against, an untrained engine if empty")
	flag.IntVar(&o.games, "games", meta.GAMES, "Number of games to train or rate with")
	flag.IntVar(&o.depth, "depth", meta.SEARCH_DEPTH, "Search depth of new engines")
	flag.StringVar(&o.pruning, "pruning", meta.PRUNING, "Pruning mode of new engines: none or alphabeta")
	flag.StringVar(&o.setup, "setup", "", "Experiment setup file (YAML)")
	flag.StringVar(&o.out, "out", meta.EXPERIMENTS_DIR, "Directory for experiment results")
	flag.StringVar(&o.fen, "fen", "", "Start position for eval and elo, the initial position if empty")
	debug := flag.Bool("debug", false, "Log every game")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(o); err != nil {
		log.Error().Err(err).Msgf("%s failed", o.mode)
		os.Exit(1)
	}
}

func run(o options) error {
	switch o.mode {
	case "new":
		return newEngine(o)
	case "train":
		return train(o)
	case "elo":
		return rate(o)
	case "eval":
		return evaluate(o)
	case "experiment":
		return experiment(o)
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
}

func newEngine(o options) error {
	pruning, err := searcher.ParsePruning(o.pruning)
	if err != nil {
		return err
	}
	if o.depth < 0 {
		return errors.New("search depth must be non-negative")
	}

	e := searcher.NewEngine(o.depth, pruning, searcher.WithNetworkOptions(
		evaluator.WithSeed(uint64(time.Now().UnixNano())),
	))
	if err := e.Save(o.engine); err != nil {
		return err
	}
	log.Info().Msgf("created engine with depth %d and %s pruning at %s", e.Depth(), e.Pruning(), o.engine)
	return nil
}

func train(o options) error {
	e, err := searcher.Load(o.engine)
	if err != nil {
		return err
	}

	log.Info().Msgf("training %s for %d games...", o.engine, o.games)
	trainer := player.NewTrainer(e, player.WithProgress(func(p player.Progress) {
		log.Info().Msgf("completed game %d of %d: %s after %d plies", p.Game, p.Games, p.Outcome, p.Plies)
	}))
	stats, err := trainer.Train(o.games)
	if err != nil {
		return err
	}
	log.Info().Msgf("white won %d, black won %d, drawn %d; %d updates over %d plies",
		stats.WhiteWins, stats.BlackWins, stats.Draws, stats.Updates, stats.Plies)

	if err := e.Save(o.engine); err != nil {
		return err
	}
	log.Info().Msgf("saved %s", o.engine)
	return nil
}

func rate(o options) error {
	e, err := searcher.Load(o.engine, searcher.WithMetrics())
	if err != nil {
		return err
	}
	var opponent *searcher.Engine
	if o.opponent == "" {
		opponent = searcher.NewEngine(e.Depth(), e.Pruning(), searcher.WithMetrics())
	} else if opponent, err = searcher.Load(o.opponent, searcher.WithMetrics()); err != nil {
		return err
	}

	eloOptions := []experiments.EloOption{experiments.WithProgress(func(r experiments.GameResult) {
		log.Info().Msgf("completed game %d of %d: %s by %s, ratings %.0f/%.0f",
			r.Game, r.Games, r.Outcome, r.GameMetric.Method, r.RatingA, r.RatingB)
	})}
	if o.fen != "" {
		eloOptions = append(eloOptions, experiments.WithStartFEN(o.fen))
	}

	ratingA, ratingB, err := experiments.NewElo(eloOptions...).Run(e, opponent, o.games)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d\nopponent: %d\n", o.engine, ratingA, ratingB)
	return nil
}

func evaluate(o options) error {
	e, err := searcher.Load(o.engine, searcher.WithMetrics())
	if err != nil {
		return err
	}

	state := game.State(game.StartingPosition())
	if o.fen != "" {
		if state, err = game.ParseFEN(o.fen); err != nil {
			return err
		}
	}

	value := e.EvaluatePosition(state)
	fmt.Printf("value: %.4f (%s to move)\n", value, state.Turn())

	move, err := e.BestMove(state)
	if errors.Is(err, searcher.ErrNoLegalMoves) {
		fmt.Println("no legal moves")
		return nil
	}
	if err != nil {
		return err
	}
	m := e.Metrics()
	fmt.Printf("best move: %s (%d nodes, %d cutoffs, %s)\n", move, m.Nodes, m.Cutoffs, m.Duration)
	return nil
}

func experiment(o options) error {
	if o.setup == "" {
		return errors.New("missing -setup")
	}
	setup, err := experiments.LoadSetup(o.setup)
	if err != nil {
		return err
	}
	dir, err := experiments.RunExperiment(setup, o.out)
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", dir)
	return nil
}
