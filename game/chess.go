package game

import (
	"fmt"

	"github.com/notnil/chess"
)

var pieceKinds = map[chess.PieceType]PieceKind{
	chess.Pawn:   Pawn,
	chess.Knight: Knight,
	chess.Bishop: Bishop,
	chess.Rook:   Rook,
	chess.Queen:  Queen,
	chess.King:   King,
}

// Position is a State backed by a notnil/chess position.
type Position struct {
	pos *chess.Position
}

func NewPosition(pos *chess.Position) Position {
	return Position{pos: pos}
}

func StartingPosition() Position {
	return Position{pos: chess.StartingPosition()}
}

// ParseFEN builds a position from Forsyth-Edwards notation
func ParseFEN(fen string) (Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse fen %q: %w", fen, err)
	}
	return Position{pos: chess.NewGame(opt).Position()}, nil
}

func (p Position) Turn() Side {
	if p.pos.Turn() == chess.White {
		return White
	}
	return Black
}

func (p Position) LegalMoves() []Move {
	valid := p.pos.ValidMoves()
	moves := make([]Move, len(valid))
	for i, m := range valid {
		moves[i] = m
	}
	return moves
}

func (p Position) Play(move Move) State {
	m, ok := move.(*chess.Move)
	if !ok {
		panic("unexpected move type")
	}
	return Position{pos: p.pos.Update(m)}
}

func (p Position) Terminal() bool {
	return p.pos.Status() != chess.NoMethod
}

func (p Position) Piece(square int) (Piece, bool) {
	piece := p.pos.Board().Piece(chess.Square(square))
	if piece == chess.NoPiece {
		return Piece{}, false
	}
	side := White
	if piece.Color() == chess.Black {
		side = Black
	}
	return Piece{Kind: pieceKinds[piece.Type()], Side: side}, true
}

// String returns the position in FEN
func (p Position) String() string {
	return p.pos.String()
}

// ChessMatch is a Match backed by a notnil/chess game, which also applies the
// automatic draws (fivefold repetition, 75-move rule, insufficient material).
type ChessMatch struct {
	game *chess.Game
}

// NewMatch starts a game from the standard initial position
func NewMatch() *ChessMatch {
	return &ChessMatch{game: chess.NewGame()}
}

func NewMatchFromFEN(fen string) (*ChessMatch, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fen %q: %w", fen, err)
	}
	return &ChessMatch{game: chess.NewGame(opt)}, nil
}

func (m *ChessMatch) State() State {
	return NewPosition(m.game.Position())
}

func (m *ChessMatch) Play(move Move) error {
	cm, ok := move.(*chess.Move)
	if !ok {
		return fmt.Errorf("unexpected move type %T", move)
	}
	if err := m.game.Move(cm); err != nil {
		return fmt.Errorf("failed to play %s: %w", move, err)
	}
	return nil
}

func (m *ChessMatch) ClaimDraw() bool {
	for _, method := range m.game.EligibleDraws() {
		// A draw offer is always listed as eligible, but it is not a claim
		if method != chess.ThreefoldRepetition && method != chess.FiftyMoveRule {
			continue
		}
		if err := m.game.Draw(method); err == nil {
			return true
		}
	}
	return false
}

func (m *ChessMatch) Result() (Outcome, bool) {
	switch m.game.Outcome() {
	case chess.WhiteWon:
		return WhiteWins, true
	case chess.BlackWon:
		return BlackWins, true
	case chess.Draw:
		return Draw, true
	default:
		return Draw, false
	}
}

// Method describes how the game ended, e.g. "Checkmate"
func (m *ChessMatch) Method() string {
	return m.game.Method().String()
}

// Plies returns the number of moves played so far
func (m *ChessMatch) Plies() int {
	return len(m.game.Moves())
}
