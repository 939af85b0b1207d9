package game

// TODO: Match and State could be defined in the searcher package so that any two-player game could be searched without importing chess specifics

import "fmt"

// Side identifies a player. Its numeric value is the sign used by the feature
// encoding and by negamax: +1 for White, -1 for Black.
type Side int8

const (
	White Side = 1
	Black Side = -1
)

func (s Side) Other() Side {
	return -s
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

type PieceKind int8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

type Piece struct {
	Kind PieceKind
	Side Side
}

type Move interface {
	fmt.Stringer
}

// State should be immutable - operations on State always return a new copy
type State interface {
	Turn() Side
	LegalMoves() []Move
	Play(Move) State
	// Terminal reports whether the game is over at this position regardless of history
	Terminal() bool
	// Piece returns the piece on a square (0..63, a1 first, rank by rank)
	Piece(square int) (Piece, bool)
}

// Match is a game in progress. Unlike State it keeps the move history, so it
// knows about repetitions and which draws can be claimed.
type Match interface {
	State() State
	Play(Move) error
	// ClaimDraw claims a draw if one is claimable and reports whether it did
	ClaimDraw() bool
	// Result returns the outcome once the game is over
	Result() (Outcome, bool)
}

// Outcome of a finished game from White's point of view.
type Outcome int8

const (
	BlackWins Outcome = -1
	Draw      Outcome = 0
	WhiteWins Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// Score returns the points side earned: 1 for a win, 0.5 for a draw, 0 for a loss
func (o Outcome) Score(side Side) float64 {
	switch {
	case o == Draw:
		return 0.5
	case int8(o) == int8(side):
		return 1
	default:
		return 0
	}
}
