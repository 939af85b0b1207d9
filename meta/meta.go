// meta/meta.go
package meta

// SEARCH_DEPTH defines the default number of plies searched per move.
const SEARCH_DEPTH = 2

// PRUNING defines the default pruning mode of new engines.
const PRUNING = "alphabeta"

// GAMES defines the default number of games for training and rating.
const GAMES = 10

// MAX_PLIES bounds the length of a single game. With fifty-move claims no
// legal chess game exceeds 11898 plies.
const MAX_PLIES = 12000

// ENGINE_PATH defines where the CLI reads and writes its engine snapshot.
const ENGINE_PATH = "engine.json"

// EXPERIMENTS_DIR defines where experiment results are written.
const EXPERIMENTS_DIR = "experiments/results"
