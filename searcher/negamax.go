package searcher

import (
	"chessrl/game"
	"math"
)

/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node
    value := −∞
    foreach child of node do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
*/

// leaf scores a state from the side to move's perspective. Training targets
// are game outcomes from White's point of view, hence the sign.
func (e *Engine) leaf(state game.State) float64 {
	e.metrics.AddLeaf()
	return float64(state.Turn()) * e.network.Evaluate(game.Extract(state))
}

func (e *Engine) negamax(state game.State, depth int) float64 {
	e.metrics.AddNode()
	if depth == 0 || state.Terminal() {
		return e.leaf(state)
	}

	moves := state.LegalMoves()
	// Only reachable if the rules engine missed a terminal position
	if len(moves) == 0 {
		return e.leaf(state)
	}

	value := math.Inf(-1)
	for _, move := range moves {
		value = math.Max(value, -e.negamax(state.Play(move), depth-1))
	}
	return value
}

// alphaBeta is negamax with a (alpha, beta) window passed by value. The
// window is negated and swapped for the child, which searches from the
// opponent's perspective. Called with an infinite window it returns exactly
// the negamax value.
func (e *Engine) alphaBeta(state game.State, depth int, alpha, beta float64) float64 {
	e.metrics.AddNode()
	if depth == 0 || state.Terminal() {
		return e.leaf(state)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return e.leaf(state)
	}

	value := math.Inf(-1)
	for i, move := range moves {
		value = math.Max(value, -e.alphaBeta(state.Play(move), depth-1, -beta, -alpha))
		alpha = math.Max(alpha, value)
		if value >= beta {
			if i < len(moves)-1 {
				e.metrics.AddCutoff()
			}
			break
		}
	}
	return value
}
