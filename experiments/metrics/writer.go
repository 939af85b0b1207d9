package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID      int
	Matchup int
	White   int // AgentConfig.ID
	Black   int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// RatingRecord is the result of one matchup between agents A and B
type RatingRecord struct {
	Matchup       int
	AgentA        int // AgentConfig.ID
	AgentB        int // AgentConfig.ID
	Games         int
	RatingA       int
	RatingB       int
	MeanMoveTimeA time.Duration
	MeanMoveTimeB time.Duration
	ScoreB        float64 // Score of B with A as the standard
}

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh directory for an experiment's results under dir
func NewWriter(dir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "depth", "pruning", "path"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			config.Pruning.String(),
			config.Path,
		}
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "white", "black", "outcome", "method", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.White),
			strconv.Itoa(record.Black),
			record.Outcome.String(),
			record.Method,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "side", "move", "depth", "pruning", "duration", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side.String(),
			record.Move,
			strconv.Itoa(record.Depth),
			record.Pruning.String(),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
		}
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteRatings(records []RatingRecord) error {
	header := []string{"matchup", "agent_a", "agent_b", "games", "rating_a", "rating_b", "mean_move_time_a", "mean_move_time_b", "score_b"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.AgentA),
			strconv.Itoa(record.AgentB),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.RatingA),
			strconv.Itoa(record.RatingB),
			record.MeanMoveTimeA.String(),
			record.MeanMoveTimeB.String(),
			strconv.FormatFloat(record.ScoreB, 'f', 4, 64),
		}
	}
	return w.write("ratings.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
