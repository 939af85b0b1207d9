package searcher

import (
	"chessrl/game"
	"strconv"

	"golang.org/x/exp/rand"
)

type mockMove struct {
	id int
}

func (m mockMove) String() string {
	return strconv.Itoa(m.id)
}

type mockNode struct {
	id       int
	children []*mockNode
	terminal bool
}

// mockState walks a hand-built or random game tree
type mockState struct {
	node *mockNode
	turn game.Side
}

func (s mockState) Turn() game.Side {
	return s.turn
}

func (s mockState) LegalMoves() []game.Move {
	if s.node.terminal {
		return nil
	}
	moves := make([]game.Move, len(s.node.children))
	for i := range s.node.children {
		moves[i] = mockMove{id: i}
	}
	return moves
}

func (s mockState) Play(move game.Move) game.State {
	return mockState{node: s.node.children[move.(mockMove).id], turn: s.turn.Other()}
}

func (s mockState) Terminal() bool {
	return s.node.terminal
}

// Piece derives a board from the node id so that every node gets its own features
func (s mockState) Piece(square int) (game.Piece, bool) {
	h := (s.node.id+1)*2654435761 + square*40503
	kind := (h >> 3) % 9
	if kind >= 6 {
		return game.Piece{}, false
	}
	side := game.White
	if (h>>7)%2 == 1 {
		side = game.Black
	}
	return game.Piece{Kind: game.PieceKind(kind), Side: side}, true
}

func randomTree(rnd *rand.Rand, depth int, next *int) *mockNode {
	node := &mockNode{id: *next}
	*next++
	if depth == 0 {
		return node
	}
	branching := rnd.Intn(5)
	if branching == 0 {
		// Either a real terminal or a dead end the rules engine failed to flag
		node.terminal = rnd.Intn(2) == 0
		return node
	}
	for i := 0; i < branching; i++ {
		node.children = append(node.children, randomTree(rnd, depth-1, next))
	}
	return node
}

func leaf(id int) *mockNode {
	return &mockNode{id: id}
}
