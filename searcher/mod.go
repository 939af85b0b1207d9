package searcher

import (
	"errors"
	"fmt"
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrDeserialization marks a corrupt, incompatible or missing engine snapshot
	ErrDeserialization = errors.New("failed to deserialize engine")
)

// Pruning selects the negamax variant used by an Engine.
type Pruning int

const (
	NoPruning Pruning = iota
	AlphaBeta
)

func (p Pruning) String() string {
	switch p {
	case NoPruning:
		return "none"
	case AlphaBeta:
		return "alphabeta"
	default:
		return fmt.Sprintf("Pruning(%d)", int(p))
	}
}

func ParsePruning(s string) (Pruning, error) {
	switch s {
	case "none":
		return NoPruning, nil
	case "alphabeta", "alpha-beta":
		return AlphaBeta, nil
	default:
		return NoPruning, fmt.Errorf("unknown pruning mode %q", s)
	}
}

func (p Pruning) MarshalText() ([]byte, error) {
	if p != NoPruning && p != AlphaBeta {
		return nil, fmt.Errorf("unknown pruning mode %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Pruning) UnmarshalText(text []byte) error {
	parsed, err := ParsePruning(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
