package searcher

import (
	"chessrl/evaluator"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type snapshot struct {
	SearchDepth *int               `json:"search_depth"`
	PruningMode *Pruning           `json:"pruning_mode"`
	Evaluator   *evaluator.Network `json:"evaluator"`
}

// Save writes the engine to path as JSON. The file is replaced atomically, so
// an interrupted save never leaves a partial snapshot behind.
func (e *Engine) Save(path string) error {
	depth, pruning := e.depth, e.pruning
	data, err := json.Marshal(snapshot{
		SearchDepth: &depth,
		PruningMode: &pruning,
		Evaluator:   e.network,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize engine: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // No-op after a successful rename

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write engine: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync engine: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close engine file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move engine into place: %w", err)
	}
	return nil
}

// Load reads an engine saved with Save. Options are applied as for NewEngine,
// except that the loaded network always wins over WithNetwork.
func Load(path string, options ...Option) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDeserialization, path, err)
	}
	switch {
	case s.SearchDepth == nil:
		return nil, fmt.Errorf("%w: %s: missing search_depth", ErrDeserialization, path)
	case *s.SearchDepth < 0:
		return nil, fmt.Errorf("%w: %s: negative search_depth %d", ErrDeserialization, path, *s.SearchDepth)
	case s.PruningMode == nil:
		return nil, fmt.Errorf("%w: %s: missing pruning_mode", ErrDeserialization, path)
	case s.Evaluator == nil:
		return nil, fmt.Errorf("%w: %s: missing evaluator", ErrDeserialization, path)
	}

	options = append(options, WithNetwork(s.Evaluator))
	return NewEngine(*s.SearchDepth, *s.PruningMode, options...), nil
}
